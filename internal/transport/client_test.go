package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/conductor/pkg/errors"
)

func TestClientGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "Bearer ss-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Empty(t, r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`{"id": 5509709919741828, "value": 5509709919741828}`))
	}))
	defer server.Close()

	client := New(&BearerAuth{Token: "ss-token"})
	resp, err := client.Get(context.Background(), server.URL+"/sheets/1")
	require.NoError(t, err)

	var out struct {
		ID    int64 `json:"id"`
		Value any   `json:"value"`
	}
	require.NoError(t, DecodeResponse(resp, &out))
	assert.Equal(t, int64(5509709919741828), out.ID)
	assert.Equal(t, json.Number("5509709919741828"), out.Value)
}

func TestClientPut(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"type":"PICKLIST"}`, string(body))
		_, _ = w.Write([]byte(`{"message":"SUCCESS","resultCode":0}`))
	}))
	defer server.Close()

	client := New(nil)
	resp, err := client.Put(context.Background(), server.URL, map[string]string{"type": "PICKLIST"})
	require.NoError(t, err)
	require.NoError(t, DecodeResponse(resp, nil))
}

func TestDecodeResponseErrors(t *testing.T) {
	t.Run("service error envelope", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"errorCode":1006,"message":"Not Found","refId":"xyz"}`))
		}))
		defer server.Close()

		resp, err := New(nil).Get(context.Background(), server.URL+"/sheets/9")
		require.NoError(t, err)

		err = DecodeResponse(resp, &struct{}{})
		require.Error(t, err)
		var apiErr *errors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 404, apiErr.StatusCode)
		assert.Equal(t, 1006, apiErr.Code)
		assert.Equal(t, "xyz", apiErr.RefID)
		assert.Equal(t, "GET /sheets/9", apiErr.Endpoint)
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("plain body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		resp, err := New(nil).Get(context.Background(), server.URL)
		require.NoError(t, err)

		err = DecodeResponse(resp, nil)
		assert.True(t, errors.IsRateLimited(err))
		assert.Contains(t, err.Error(), "Too Many Requests")
	})

	t.Run("malformed JSON", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data": [`))
		}))
		defer server.Close()

		resp, err := New(nil).Get(context.Background(), server.URL)
		require.NoError(t, err)

		var out map[string]any
		err = DecodeResponse(resp, &out)
		var parseErr *errors.ParseError
		assert.ErrorAs(t, err, &parseErr)
	})
}

func TestClientTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := New(nil, WithTimeout(20*time.Millisecond))
	_, err := client.Get(context.Background(), server.URL)
	assert.Error(t, err)
}
