package dto

import "encoding/json"

// ErrorBody is a GitLab error response. Message is either a string
// ("404 Not found") or an object mapping field names to validation messages.
type ErrorBody struct {
	Message json.RawMessage `json:"message"`
	Error   string          `json:"error,omitempty"`
}
