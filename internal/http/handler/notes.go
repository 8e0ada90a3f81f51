package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"folio/internal/auth"
	"folio/internal/note"
	"folio/internal/render"

	"github.com/go-chi/chi/v5"
)

const excerptLen = 100

type NoteHandler struct {
	Svc *note.Service
	Now func() time.Time
}

type noteDTO struct {
	ID        string    `json:"id"`
	Slug      *string   `json:"slug"`
	Title     string    `json:"title"`
	Emoji     string    `json:"emoji"`
	Content   string    `json:"content"`
	Excerpt   string    `json:"excerpt"`
	HTML      string    `json:"html,omitempty"`
	IsPublic  bool      `json:"is_public"`
	IsPinned  bool      `json:"is_pinned"`
	IsOwner   bool      `json:"is_owner"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type groupDTO struct {
	Label note.BucketLabel `json:"label"`
	Notes []noteDTO        `json:"notes"`
}

func toDTO(n note.Note, tok note.SessionToken) noteDTO {
	return noteDTO{
		ID:        n.ID,
		Slug:      n.Slug,
		Title:     n.Title,
		Emoji:     n.Emoji,
		Content:   n.Content,
		Excerpt:   note.Excerpt(n.Content, excerptLen),
		IsPublic:  n.IsPublic,
		IsPinned:  n.IsPinned,
		IsOwner:   note.IsOwner(n, tok),
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func toDTOs(rows []note.Note, tok note.SessionToken) []noteDTO {
	out := make([]noteDTO, 0, len(rows))
	for _, n := range rows {
		out = append(out, toDTO(n, tok))
	}
	return out
}

func (h *NoteHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	tok := auth.SessionFromContext(r.Context())

	if strings.EqualFold(r.URL.Query().Get("view"), "grouped") {
		groups, err := h.Svc.Grouped(r.Context(), h.now())
		if err != nil {
			writeErr(w, err)
			return
		}
		out := make([]groupDTO, 0, len(groups))
		for _, g := range groups {
			out = append(out, groupDTO{Label: g.Label, Notes: toDTOs(g.Notes, tok)})
		}
		writeJSON(w, http.StatusOK, out)
		return
	}

	rows, err := h.Svc.PublicNotes(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDTOs(rows, tok))
}

func (h *NoteHandler) Mine(w http.ResponseWriter, r *http.Request) {
	tok := auth.SessionFromContext(r.Context())
	rows, err := h.Svc.SessionNotes(r.Context(), tok)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDTOs(rows, tok))
}

func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	n, err := h.Svc.Get(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		writeErr(w, err)
		return
	}
	actor := auth.ActorFromContext(r.Context())
	if !n.IsPublic && !actor.CanEdit(n) {
		// private notes are only visible to their owner
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	dto := toDTO(n, actor.Session)
	html, err := render.Markdown(n.Content)
	if err != nil {
		slog.Warn("markdown render failed", "id", n.ID, "err", err)
	}
	dto.HTML = html
	writeJSON(w, http.StatusOK, dto)
}

type createNoteReq struct {
	Title    string  `json:"title"`
	Slug     *string `json:"slug"`
	Emoji    string  `json:"emoji"`
	Content  string  `json:"content"`
	IsPublic bool    `json:"is_public"`
	IsPinned bool    `json:"is_pinned"`
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createNoteReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	actor := auth.ActorFromContext(r.Context())
	n, err := h.Svc.Create(r.Context(), actor, note.Insert{
		Title:    strings.TrimSpace(req.Title),
		Slug:     req.Slug,
		Emoji:    strings.TrimSpace(req.Emoji),
		Content:  req.Content,
		IsPublic: req.IsPublic,
		IsPinned: req.IsPinned,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDTO(n, actor.Session))
}

func (h *NoteHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var p note.Patch
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	actor := auth.ActorFromContext(r.Context())
	n, err := h.Svc.Update(r.Context(), actor, chi.URLParam(r, "token"), p)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDTO(n, actor.Session))
}

func (h *NoteHandler) TogglePin(w http.ResponseWriter, r *http.Request) {
	actor := auth.ActorFromContext(r.Context())
	n, err := h.Svc.TogglePin(r.Context(), actor, chi.URLParam(r, "token"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDTO(n, actor.Session))
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := auth.ActorFromContext(r.Context())
	if err := h.Svc.Delete(r.Context(), actor, chi.URLParam(r, "token")); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, note.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, note.ErrUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, note.ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, note.ErrInvalid):
		http.Error(w, "invalid note", http.StatusBadRequest)
	case errors.Is(err, note.ErrConflict):
		http.Error(w, "slug already taken", http.StatusConflict)
	default:
		slog.Error("request failed", "err", err)
		http.Error(w, "server error", http.StatusInternalServerError)
	}
}
