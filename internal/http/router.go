package http

import (
	"log/slog"
	"net/http"

	"folio/internal/auth"
	"folio/internal/config"
	"folio/internal/http/handler"
	mw "folio/internal/http/middleware"
	"folio/internal/note"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, svc *note.Service, admin *auth.Admin, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.Logger(log))
	r.Use(chimw.Recoverer)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))
	}
	r.Use(auth.Identify(admin))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	sh := &handler.SessionHandler{}
	r.Post("/sessions", sh.New)

	nh := &handler.NoteHandler{Svc: svc}
	r.Route("/notes", func(r chi.Router) {
		r.Get("/", nh.List)
		r.Post("/", nh.Create)
		r.Get("/mine", nh.Mine)

		r.Get("/{token}", nh.Get)
		r.Patch("/{token}", nh.Patch)
		r.Delete("/{token}", nh.Delete)
		r.Post("/{token}/pin", nh.TogglePin)
	})

	ah := &handler.AdminHandler{Admin: admin, Svc: svc}
	r.Route("/admin", func(r chi.Router) {
		r.Post("/auth", ah.Login)
		r.Delete("/auth", ah.Logout)
		r.Get("/check", ah.Check)

		r.With(auth.RequireAdmin).Post("/seed", ah.Seed)
		r.With(auth.RequireAdmin).Post("/cleanup", ah.Cleanup)
	})

	return r
}
