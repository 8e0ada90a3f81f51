package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"folio/internal/auth"
	"folio/internal/note"
)

type AdminHandler struct {
	Admin *auth.Admin
	Svc   *note.Service
}

type loginReq struct {
	Password string `json:"password"`
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if !h.Admin.CheckPassword(req.Password) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"success": false,
			"error":   "invalid password",
		})
		return
	}
	if err := h.Admin.Login(w); err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Admin.Logout(w)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *AdminHandler) Check(w http.ResponseWriter, r *http.Request) {
	if !auth.IsAdmin(r.Context()) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"admin": true})
}

func (h *AdminHandler) Seed(w http.ResponseWriter, r *http.Request) {
	results, err := h.Svc.Seed(r.Context(), auth.ActorFromContext(r.Context()))
	if err != nil {
		writeErr(w, err)
		return
	}
	slog.Info("seed finished", "notes", len(results))
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"results": results,
	})
}

func (h *AdminHandler) Cleanup(w http.ResponseWriter, r *http.Request) {
	report, err := h.Svc.Cleanup(r.Context(), auth.ActorFromContext(r.Context()))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"deleted": report.Deleted,
		"failed":  report.Failed,
	})
}
