package vendorclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/georgemunganga/printa-vendors/internal/modules/vendor"
)

// APIError is a non-2xx answer from the vendor API.
type APIError struct {
	StatusCode int
	Message    string
	Fields     []vendor.FieldError
}

func (e *APIError) Error() string {
	return e.Message
}

// FieldMessages maps each failing field to its message.
func (e *APIError) FieldMessages() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		out[f.Field] = f.Message
	}
	return out
}

// TransportError means the request produced no usable HTTP response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// GenericNetworkMessage is shown when the API could not be reached at all.
const GenericNetworkMessage = "Network error: the vendor service could not be reached"

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Message returns a human-readable description of err suitable for display.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return GenericNetworkMessage
	}
	return err.Error()
}

// decodeAPIError builds an APIError from an error response body, falling back
// to a status-based message when the body carries no structured error.
func decodeAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}
	var payload vendor.ErrorResponse
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		apiErr.Message = payload.Error
		apiErr.Fields = payload.Fields
		return apiErr
	}
	apiErr.Message = fmt.Sprintf("Request failed with status code %d", status)
	return apiErr
}
