package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

// FallbackMessage is shown when a failed response carries no message.
const FallbackMessage = "Something went wrong. Please try again."

// ErrNoProfile is returned by the "my profile" call when the barber has not
// created a profile yet. It is not an authentication failure.
var ErrNoProfile = errors.New("barber profile not created yet")

// APIError is a non-2xx response from the REST API. Message is the server's
// text, unchanged.
type APIError struct {
	Status    int               `json:"status"`
	Message   string            `json:"message"`
	Code      string            `json:"error_code,omitempty"`
	Timestamp string            `json:"timestamp,omitempty"`
	Fields    map[string]string `json:"errors,omitempty"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: %d %s", e.Status, http.StatusText(e.Status))
}

// Decode builds an APIError from a response body. Bodies that are not JSON
// keep an empty message so callers fall back to FallbackMessage.
func Decode(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}

	var raw struct {
		Message string            `json:"message"`
		Code    string            `json:"error_code"`
		Error   string            `json:"error"`
		Time    string            `json:"timestamp"`
		Fields  map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(raw.Message)
	apiErr.Code = raw.Code
	if apiErr.Code == "" {
		apiErr.Code = raw.Error
	}
	apiErr.Timestamp = raw.Time
	apiErr.Fields = raw.Fields
	return apiErr
}

func IsStatus(err error, status int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == status
	}
	return false
}

func IsNotFound(err error) bool {
	return IsStatus(err, http.StatusNotFound)
}

func IsUnauthorized(err error) bool {
	return IsStatus(err, http.StatusUnauthorized) || IsStatus(err, http.StatusForbidden)
}

// Message picks the text to show the user for err: the server message when
// present, a client rule or field message, or FallbackMessage.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return FallbackMessage
	}

	var be BusinessError
	if errors.As(err, &be) && be.Message != "" {
		return be.Message
	}

	var fe *validators.FieldError
	if errors.As(err, &fe) {
		return fe.Error()
	}

	return FallbackMessage
}
