package auth

import (
	"context"
	"net/http"
	"strings"

	"folio/internal/note"

	"github.com/google/uuid"
)

type ctxKey string

const (
	adminKey   ctxKey = "admin"
	sessionKey ctxKey = "session"
)

// SessionHeader carries the client-generated session token.
const SessionHeader = "X-Session-Id"

func IsAdmin(ctx context.Context) bool {
	v, _ := ctx.Value(adminKey).(bool)
	return v
}

func SessionFromContext(ctx context.Context) note.SessionToken {
	v, _ := ctx.Value(sessionKey).(note.SessionToken)
	return v
}

// ActorFromContext is the caller as seen by note.Service.
func ActorFromContext(ctx context.Context) note.Actor {
	return note.Actor{Admin: IsAdmin(ctx), Session: SessionFromContext(ctx)}
}

// NewSessionToken returns a fresh random token for clients that cannot make one.
func NewSessionToken() note.SessionToken {
	return note.SessionToken(uuid.NewString())
}

// Identify records the admin flag and the session token of every request.
// It never rejects a request.
func Identify(admin *Admin) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if admin != nil && admin.Authenticated(r) {
				ctx = context.WithValue(ctx, adminKey, true)
			}
			if tok := strings.TrimSpace(r.Header.Get(SessionHeader)); tok != "" {
				ctx = context.WithValue(ctx, sessionKey, note.SessionToken(tok))
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(r.Context()) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
