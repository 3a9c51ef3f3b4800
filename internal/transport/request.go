package transport

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/agentstation/conductor/pkg/constants"
	"github.com/agentstation/conductor/pkg/errors"
)

// ErrorBody is the error envelope returned by the Smartsheet API.
type ErrorBody struct {
	ErrorCode int    `json:"errorCode"`
	Message   string `json:"message"`
	RefID     string `json:"refId"`
}

// DecodeResponse decodes a JSON response into target. Numbers decode as
// json.Number when target holds interface values, so 16 digit ids survive.
// Non 2xx responses become *errors.APIError. A nil target discards the body.
func DecodeResponse(resp *http.Response, target any) error {
	defer drain(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapResource("read", "response body", "", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp, body)
	}

	if target == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(target); err != nil {
		return errors.WrapParse("json", "response", err)
	}

	return nil
}

// apiError builds an APIError from a failed response, using the service's
// error envelope when the body carries one.
func apiError(resp *http.Response, body []byte) error {
	apiErr := &errors.APIError{
		Service:    constants.ServiceName,
		StatusCode: resp.StatusCode,
		Message:    strings.TrimSpace(string(body)),
	}
	if resp.Request != nil && resp.Request.URL != nil {
		apiErr.Endpoint = resp.Request.Method + " " + resp.Request.URL.Path
	}

	var envelope ErrorBody
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
		apiErr.Code = envelope.ErrorCode
		apiErr.RefID = envelope.RefID
		apiErr.Message = envelope.Message
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
