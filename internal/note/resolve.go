package note

import (
	"context"
	"errors"
	"log/slog"
	"strings"
)

// Resolver maps a route token to exactly one note: id first, then slug.
// A public note owns its slug even when private notes reuse it.
type Resolver struct {
	Gateway Gateway
	Log     *slog.Logger
}

// Resolve never returns an error for the no-match case; ok is false instead.
func (r *Resolver) Resolve(ctx context.Context, token string) (Note, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Note{}, false
	}

	n, err := r.Gateway.GetOne(ctx, ByID(token))
	if err == nil {
		return n, true
	}
	r.report("id", token, err)

	n, err = r.Gateway.GetOne(ctx, ByPublicSlug(token))
	if err == nil {
		return n, true
	}
	r.report("public slug", token, err)

	n, err = r.Gateway.GetOne(ctx, BySlug(token))
	if err == nil {
		return n, true
	}
	r.report("slug", token, err)

	return Note{}, false
}

func (r *Resolver) report(key, token string, err error) {
	if errors.Is(err, ErrNotFound) {
		return
	}
	log := r.Log
	if log == nil {
		log = slog.Default()
	}
	if errors.Is(err, ErrAmbiguous) {
		log.Warn("ambiguous note lookup", "key", key, "token", token)
		return
	}
	log.Error("note lookup failed", "key", key, "token", token, "err", err)
}
