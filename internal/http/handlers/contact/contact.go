// Package contact contains all HTTP handlers related to the Contact resource.
//
// Every exported function is a factory: it receives its dependencies once
// at startup and returns the http.HandlerFunc the router calls on every
// request.
//
//	router.HandleFunc("POST /contacts", contact.New(store))
package contact

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/contacts-api/internal/storage"
	"github.com/aanand-mishra/contacts-api/internal/types"
	"github.com/aanand-mishra/contacts-api/internal/utils/response"
)

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /contacts
//
// Request body (JSON):
//
//	{ "name": "Ann", "phone": "555-0100", "email": "ann@example.com", "bookmarked": true }
//
// Success response (201 Created): the created contact, including its id.
//
// Error responses:
//
//	400 Bad Request  — empty body, malformed JSON, or failed validation
//	500 Internal     — storage error
//
// ─────────────────────────────────────────────────────────────────────────────
func New(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a contact")

		in, ok := decodeInput(w, r)
		if !ok {
			return
		}

		created, err := storage.Create(in)
		if err != nil {
			writeStoreError(w, err, "failed to create contact")
			return
		}

		slog.Info("contact created", slog.String("id", created.ID))
		response.WriteJSON(w, http.StatusCreated, created)
	}
}

// GetByID handles GET /contacts/{id}
func GetByID(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("getting a contact", slog.String("id", id))

		contact, err := storage.Get(id)
		if err != nil {
			writeStoreError(w, err, "failed to get contact")
			return
		}

		response.WriteJSON(w, http.StatusOK, contact)
	}
}

// GetList handles GET /contacts
// Returns an empty array [] (not null) when there are no contacts.
func GetList(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all contacts")

		contacts, err := storage.List()
		if err != nil {
			writeStoreError(w, err, "failed to list contacts")
			return
		}

		response.WriteJSON(w, http.StatusOK, contacts)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PATCH /contacts/{id}
//
// Despite the method, the body must carry the full validated shape (name,
// phone and email) exactly as for creation. Only bookmarked may be left
// out, in which case the stored value is kept.
//
// Error responses:
//
//	400 Bad Request  — empty body, malformed JSON, or failed validation
//	404 Not Found    — no contact with that id
//	500 Internal     — storage error
//
// ─────────────────────────────────────────────────────────────────────────────
func Update(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("updating a contact", slog.String("id", id))

		in, ok := decodeInput(w, r)
		if !ok {
			return
		}

		updated, err := storage.Update(id, in)
		if err != nil {
			writeStoreError(w, err, "failed to update contact")
			return
		}

		slog.Info("contact updated", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// Delete handles DELETE /contacts/{id}
// Responds 204 No Content with an empty body on success.
func Delete(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("deleting a contact", slog.String("id", id))

		if err := storage.Delete(id); err != nil {
			writeStoreError(w, err, "failed to delete contact")
			return
		}

		slog.Info("contact deleted", slog.String("id", id))
		w.WriteHeader(http.StatusNoContent)
	}
}

// decodeInput reads the request body into a ContactInput. On failure it
// has already written the 400 response and returns ok == false.
func decodeInput(w http.ResponseWriter, r *http.Request) (types.ContactInput, bool) {
	var in types.ContactInput

	err := json.NewDecoder(r.Body).Decode(&in)
	if errors.Is(err, io.EOF) {
		response.WriteJSON(w, http.StatusBadRequest,
			response.ValidationError([]string{"request body is empty"}))
		return in, false
	}
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest,
			response.ValidationError([]string{err.Error()}))
		return in, false
	}
	return in, true
}

// writeStoreError maps a storage error onto the HTTP error contract:
// validation → 400, not found → 404, anything else is logged and → 500
// with msg as the body message.
func writeStoreError(w http.ResponseWriter, err error, msg string) {
	var verr *storage.ValidationError
	switch {
	case errors.As(err, &verr):
		response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(verr.Fields))
	case errors.Is(err, storage.ErrNotFound):
		response.WriteJSON(w, http.StatusNotFound, response.NotFound())
	default:
		slog.Error(msg, slog.String("error", err.Error()))
		response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(msg))
	}
}
