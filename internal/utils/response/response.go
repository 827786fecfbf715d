// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every JSON handler in this application goes through WriteJSON. Error
// bodies come in exactly two shapes, so API consumers always know what to
// expect:
//
//	{ "message": "Contact not found" }                 — single error
//	{ "errors": ["name is required", "..."] }           — validation failures
package response

import (
	"encoding/json"
	"net/http"
)

// NotFoundMessage is the body message for every unknown contact id.
const NotFoundMessage = "Contact not found"

// Message is the body for not-found and unexpected errors.
type Message struct {
	Message string `json:"message"`
}

// Errors is the body for validation failures: one entry per failed field.
type Errors struct {
	Errors []string `json:"errors"`
}

// ─────────────────────────────────────────────────────────────────────────────
// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
// ─────────────────────────────────────────────────────────────────────────────
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps a context-specific message into the Message shape.
//
// Example usage:
//
//	response.WriteJSON(w, http.StatusInternalServerError,
//	    response.GeneralError("failed to create contact"))
func GeneralError(msg string) Message {
	return Message{Message: msg}
}

// NotFound is the fixed body for unknown contact ids.
func NotFound() Message {
	return Message{Message: NotFoundMessage}
}

// ValidationError wraps per-field failure messages into the Errors shape.
func ValidationError(msgs []string) Errors {
	if msgs == nil {
		msgs = []string{}
	}
	return Errors{Errors: msgs}
}
