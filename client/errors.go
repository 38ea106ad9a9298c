package client

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrAuthExpired signals that the backend rejected the bearer credential.
// The client clears the persisted session before returning it; callers
// transition the UI to the logged-out state.
var ErrAuthExpired = errors.New("authentication expired")

// APIError is any other non-success backend response, carrying the
// backend-supplied message when present.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend error (%d): %s", e.Status, e.Message)
}

// backendMessage extracts the human-readable message the backend embeds in
// error bodies, under either of the field names it uses.
func backendMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Err     string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Err
}
