package note

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

const (
	newNoteTitle   = "New Note"
	newNoteContent = "# New Note\n\nStart writing here..."
)

// Actor is the caller of a mutating operation: the admin, or whoever holds
// Session. Session is passed explicitly on every call that needs it.
type Actor struct {
	Admin   bool
	Session SessionToken
}

// CanEdit is the advisory ownership check.
func (a Actor) CanEdit(n Note) bool {
	return a.Admin || IsOwner(n, a.Session)
}

type Service struct {
	Gateway    Gateway
	Resolver   *Resolver
	Reconciler *Reconciler
	Ranks      Ranks
	Log        *slog.Logger
}

// NewService wires a Service around gw with the embedded canonical set.
func NewService(gw Gateway, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	set := DefaultCanonical()
	return &Service{
		Gateway:    gw,
		Resolver:   &Resolver{Gateway: gw, Log: log},
		Reconciler: &Reconciler{Gateway: gw, Set: set, Log: log},
		Ranks:      set.Ranks(),
		Log:        log,
	}
}

func (s *Service) PublicNotes(ctx context.Context) ([]Note, error) {
	rows, err := s.Gateway.List(ctx, PublicCriteria(
		SortKey{Field: FieldPinned, Desc: true},
		SortKey{Field: FieldCreatedAt, Desc: true},
	))
	if err != nil {
		return nil, err
	}
	return s.Ranks.Order(rows), nil
}

// SessionNotes lists the notes owned by tok. An empty token owns nothing.
func (s *Service) SessionNotes(ctx context.Context, tok SessionToken) ([]Note, error) {
	if !tok.Valid() {
		return []Note{}, nil
	}
	id := string(tok)
	rows, err := s.Gateway.List(ctx, Criteria{
		SessionID: &id,
		Sort: []SortKey{
			{Field: FieldPinned, Desc: true},
			{Field: FieldCreatedAt, Desc: true},
		},
	})
	if err != nil {
		return nil, err
	}
	return s.Ranks.Order(rows), nil
}

func (s *Service) Grouped(ctx context.Context, now time.Time) (Buckets, error) {
	rows, err := s.PublicNotes(ctx)
	if err != nil {
		return nil, err
	}
	return Bucket(rows, now), nil
}

func (s *Service) Get(ctx context.Context, token string) (Note, error) {
	n, ok := s.Resolver.Resolve(ctx, token)
	if !ok {
		return Note{}, ErrNotFound
	}
	return n, nil
}

// Create inserts a note. Public notes need the admin; private notes are bound
// to the actor's session.
func (s *Service) Create(ctx context.Context, a Actor, in Insert) (Note, error) {
	if in.IsPublic && !a.Admin {
		return Note{}, ErrUnauthorized
	}
	if !in.IsPublic {
		if !a.Session.Valid() {
			return Note{}, ErrInvalid
		}
		in.SessionID = ptr(string(a.Session))
	} else {
		in.SessionID = nil
	}

	if strings.TrimSpace(in.Title) == "" {
		in.Title = newNoteTitle
		if in.Content == "" && in.IsPublic {
			in.Content = newNoteContent
		}
	}
	if in.Slug != nil {
		in.Slug = optional(*in.Slug)
	}

	n, err := s.Gateway.Insert(ctx, in)
	if err != nil {
		return Note{}, err
	}
	s.Log.Info("note created", "id", n.ID, "public", n.IsPublic)
	return n, nil
}

func (s *Service) editable(ctx context.Context, a Actor, token string) (Note, error) {
	n, err := s.Get(ctx, token)
	if err != nil {
		return Note{}, err
	}
	if !a.CanEdit(n) {
		return Note{}, ErrForbidden
	}
	return n, nil
}

func (s *Service) Update(ctx context.Context, a Actor, token string, p Patch) (Note, error) {
	n, err := s.editable(ctx, a, token)
	if err != nil {
		return Note{}, err
	}
	if p.IsPublic != nil && !*p.IsPublic && n.SessionID == nil {
		// a private note without an owner could never be found again
		return Note{}, ErrInvalid
	}
	return s.Gateway.Update(ctx, n.ID, p)
}

func (s *Service) TogglePin(ctx context.Context, a Actor, token string) (Note, error) {
	n, err := s.editable(ctx, a, token)
	if err != nil {
		return Note{}, err
	}
	return s.Gateway.Update(ctx, n.ID, Patch{IsPinned: ptr(!n.IsPinned)})
}

func (s *Service) Delete(ctx context.Context, a Actor, token string) error {
	n, err := s.editable(ctx, a, token)
	if err != nil {
		return err
	}
	ok, err := s.Gateway.Delete(ctx, n.ID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	s.Log.Info("note deleted", "id", n.ID)
	return nil
}

func (s *Service) Seed(ctx context.Context, a Actor) ([]SeedResult, error) {
	return s.Reconciler.Seed(ctx, a.Admin)
}

func (s *Service) Cleanup(ctx context.Context, a Actor) (CleanupReport, error) {
	return s.Reconciler.Cleanup(ctx, a.Admin)
}
