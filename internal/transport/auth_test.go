package transport

import (
	"net/http"
	"testing"
)

// TestNoAuth tests that NoAuth applies no authentication.
func TestNoAuth(t *testing.T) {
	auth := &NoAuth{}
	req := &http.Request{Header: make(http.Header)}

	auth.Apply(req)

	if len(req.Header) != 0 {
		t.Errorf("Expected no headers, got %d", len(req.Header))
	}
}

// TestBearerAuth tests Bearer token authentication.
func TestBearerAuth(t *testing.T) {
	t.Run("with token", func(t *testing.T) {
		req := &http.Request{Header: make(http.Header)}
		(&BearerAuth{Token: "ss-token"}).Apply(req)

		if got := req.Header.Get("Authorization"); got != "Bearer ss-token" {
			t.Errorf("Expected Authorization header 'Bearer ss-token', got '%s'", got)
		}
	})

	t.Run("empty token", func(t *testing.T) {
		req := &http.Request{Header: make(http.Header)}
		(&BearerAuth{}).Apply(req)

		if req.Header.Get("Authorization") != "" {
			t.Error("Should not set Authorization header without a token")
		}
	})
}

// TestHeaderAuth tests custom header authentication.
func TestHeaderAuth(t *testing.T) {
	req := &http.Request{Header: make(http.Header)}
	(&HeaderAuth{Header: "Assume-User", Value: "ops@example.com"}).Apply(req)

	if got := req.Header.Get("Assume-User"); got != "ops@example.com" {
		t.Errorf("Expected Assume-User header, got '%s'", got)
	}
	if req.Header.Get("Authorization") != "" {
		t.Error("Should not have Authorization header")
	}
}
