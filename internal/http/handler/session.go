package handler

import (
	"net/http"

	"folio/internal/auth"
)

type SessionHandler struct{}

// New hands out a session token for clients that cannot generate one.
// The server keeps no record of it.
func (h *SessionHandler) New(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusCreated, map[string]any{
		"session_id": auth.NewSessionToken(),
	})
}
