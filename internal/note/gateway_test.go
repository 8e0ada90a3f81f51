package note_test

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"folio/internal/db"
	"folio/internal/note"

	"github.com/stretchr/testify/require"
)

// memGateway is an in-memory note.Gateway that counts calls and can be told
// to fail.
type memGateway struct {
	notes []note.Note
	seq   int
	now   time.Time
	calls int

	failInsert map[string]error // by title
	failUpdate map[string]error // by id
	failDelete map[string]error // by id
	failList   error
}

func newMemGateway(notes ...note.Note) *memGateway {
	return &memGateway{
		notes: notes,
		now:   time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (g *memGateway) tick() time.Time {
	g.now = g.now.Add(time.Second)
	return g.now
}

func matches(n note.Note, c note.Criteria) bool {
	if c.ID != nil && n.ID != *c.ID {
		return false
	}
	if c.Slug != nil && (n.Slug == nil || *n.Slug != *c.Slug) {
		return false
	}
	if c.SessionID != nil && (n.SessionID == nil || *n.SessionID != *c.SessionID) {
		return false
	}
	if c.IsPublic != nil && n.IsPublic != *c.IsPublic {
		return false
	}
	return true
}

func (g *memGateway) List(ctx context.Context, c note.Criteria) ([]note.Note, error) {
	g.calls++
	if g.failList != nil {
		return nil, g.failList
	}
	var out []note.Note
	for _, n := range g.notes {
		if matches(n, c) {
			out = append(out, n)
		}
	}
	for i := len(c.Sort) - 1; i >= 0; i-- {
		k := c.Sort[i]
		sort.SliceStable(out, func(a, b int) bool {
			x, y := out[a], out[b]
			var less bool
			switch k.Field {
			case note.FieldPinned:
				less = !x.IsPinned && y.IsPinned
				if k.Desc {
					less = x.IsPinned && !y.IsPinned
				}
				return less
			case note.FieldCreatedAt:
				if k.Desc {
					return x.CreatedAt.After(y.CreatedAt)
				}
				return x.CreatedAt.Before(y.CreatedAt)
			default:
				if k.Desc {
					return x.UpdatedAt.After(y.UpdatedAt)
				}
				return x.UpdatedAt.Before(y.UpdatedAt)
			}
		})
	}
	return out, nil
}

func (g *memGateway) GetOne(ctx context.Context, c note.Criteria) (note.Note, error) {
	g.calls++
	var found []note.Note
	for _, n := range g.notes {
		if matches(n, c) {
			found = append(found, n)
		}
	}
	switch len(found) {
	case 0:
		return note.Note{}, note.ErrNotFound
	case 1:
		return found[0], nil
	default:
		return note.Note{}, note.ErrAmbiguous
	}
}

func (g *memGateway) Insert(ctx context.Context, in note.Insert) (note.Note, error) {
	g.calls++
	if err := g.failInsert[in.Title]; err != nil {
		return note.Note{}, &note.GatewayError{Op: "insert", Err: err}
	}
	g.seq++
	now := g.tick()
	n := note.Note{
		ID:        fmt.Sprintf("id-%d", g.seq),
		Slug:      in.Slug,
		Title:     in.Title,
		Emoji:     in.Emoji,
		Content:   in.Content,
		IsPublic:  in.IsPublic,
		IsPinned:  in.IsPinned,
		SessionID: in.SessionID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	g.notes = append(g.notes, n)
	return n, nil
}

func (g *memGateway) Update(ctx context.Context, id string, p note.Patch) (note.Note, error) {
	g.calls++
	if err := g.failUpdate[id]; err != nil {
		return note.Note{}, &note.GatewayError{Op: "update", Err: err}
	}
	for i := range g.notes {
		if g.notes[i].ID == id {
			p.Apply(&g.notes[i])
			g.notes[i].UpdatedAt = g.tick()
			return g.notes[i], nil
		}
	}
	return note.Note{}, note.ErrNotFound
}

func (g *memGateway) Delete(ctx context.Context, id string) (bool, error) {
	g.calls++
	if err := g.failDelete[id]; err != nil {
		return false, &note.GatewayError{Op: "delete", Err: err}
	}
	for i := range g.notes {
		if g.notes[i].ID == id {
			g.notes = append(g.notes[:i], g.notes[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

var _ note.Gateway = (*memGateway)(nil)

// newSQLiteStore returns a Store on a fresh in-memory database.
func newSQLiteStore(t *testing.T) *note.Store {
	t.Helper()
	gdb, err := db.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrateAndIndexes(gdb))
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	clock := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return &note.Store{
		DB: gdb,
		Now: func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		},
	}
}

func at(day int) time.Time {
	return time.Date(2024, 1, day, 9, 0, 0, 0, time.UTC)
}

func sp(s string) *string { return &s }
func bp(b bool) *bool     { return &b }

func titles(notes []note.Note) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.Title)
	}
	return out
}
