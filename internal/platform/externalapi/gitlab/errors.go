package gitlab

import (
	"encoding/json"
	"errors"
	"fmt"

	"lucius_backend/internal/platform/externalapi/gitlab/dto"
)

// ErrMalformedResponse is wrapped by every error caused by a response body
// that does not have the expected shape.
var ErrMalformedResponse = errors.New("gitlab: malformed response")

// APIError is returned when GitLab answers with a status code >= 400.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gitlab %s %s: http %d", e.Method, e.Path, e.StatusCode)
}

// IsClientError reports a 4xx status.
func (e *APIError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// FieldMessage returns the first validation message GitLab reported for field,
// e.g. {"message":{"fingerprint":["has already been taken"]}}.
// ok is false when the body does not carry such a message.
func (e *APIError) FieldMessage(field string) (msg string, ok bool) {
	var body dto.ErrorBody
	if err := json.Unmarshal(e.Body, &body); err != nil || len(body.Message) == 0 {
		return "", false
	}
	var fields map[string][]string
	if err := json.Unmarshal(body.Message, &fields); err != nil {
		return "", false
	}
	messages := fields[field]
	if len(messages) == 0 {
		return "", false
	}
	return messages[0], true
}
