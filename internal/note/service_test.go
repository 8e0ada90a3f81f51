package note_test

import (
	"context"
	"testing"
	"time"

	"folio/internal/note"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_PublicAndSessionNotes(t *testing.T) {
	ctx := context.Background()
	gw := newMemGateway(
		note.Note{ID: "1", Title: "Old post", IsPublic: true, CreatedAt: at(1)},
		note.Note{ID: "2", Title: "Now", IsPublic: true, IsPinned: true, CreatedAt: at(2)},
		note.Note{ID: "3", Title: "About Me", IsPublic: true, IsPinned: true, CreatedAt: at(3)},
		note.Note{ID: "4", Title: "New post", IsPublic: true, CreatedAt: at(9)},
		note.Note{ID: "5", Title: "Secret", SessionID: sp("tok"), CreatedAt: at(4)},
	)
	svc := note.NewService(gw, nil)

	public, err := svc.PublicNotes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"About Me", "Now", "New post", "Old post"}, titles(public))

	mine, err := svc.SessionNotes(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, []string{"Secret"}, titles(mine))

	none, err := svc.SessionNotes(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, none)

	groups, err := svc.Grouped(ctx, at(9).Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []string{"New post"}, titles(groups.Get(note.Today)))
	assert.Equal(t, []string{"About Me", "Now"}, titles(groups.Get(note.LastWeek)))
	assert.Equal(t, []string{"Old post"}, titles(groups.Get(note.LastMonth)))
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	svc := note.NewService(newMemGateway(), nil)

	_, err := svc.Create(ctx, note.Actor{Session: "tok"}, note.Insert{Title: "Hi", IsPublic: true})
	assert.ErrorIs(t, err, note.ErrUnauthorized)

	_, err = svc.Create(ctx, note.Actor{}, note.Insert{Title: "Hi"})
	assert.ErrorIs(t, err, note.ErrInvalid)

	n, err := svc.Create(ctx, note.Actor{Session: "tok"}, note.Insert{})
	require.NoError(t, err)
	assert.Equal(t, "New Note", n.Title)
	assert.Empty(t, n.Content)
	require.NotNil(t, n.SessionID)
	assert.Equal(t, "tok", *n.SessionID)

	pub, err := svc.Create(ctx, note.Actor{Admin: true, Session: "tok"}, note.Insert{IsPublic: true, Slug: sp("  ")})
	require.NoError(t, err)
	assert.Nil(t, pub.SessionID)
	assert.Nil(t, pub.Slug)
	assert.Contains(t, pub.Content, "Start writing here")
}

func TestService_EditRequiresOwnerOrAdmin(t *testing.T) {
	ctx := context.Background()
	gw := newMemGateway(
		note.Note{ID: "p", Slug: sp("now"), Title: "Now", IsPublic: true},
		note.Note{ID: "s", Title: "Mine", SessionID: sp("tok")},
	)
	svc := note.NewService(gw, nil)

	_, err := svc.Update(ctx, note.Actor{Session: "other"}, "s", note.Patch{Title: sp("stolen")})
	assert.ErrorIs(t, err, note.ErrForbidden)

	n, err := svc.Update(ctx, note.Actor{Session: "tok"}, "s", note.Patch{Title: sp("Still mine")})
	require.NoError(t, err)
	assert.Equal(t, "Still mine", n.Title)

	_, err = svc.TogglePin(ctx, note.Actor{Session: "tok"}, "now")
	assert.ErrorIs(t, err, note.ErrForbidden)

	n, err = svc.TogglePin(ctx, note.Actor{Admin: true}, "now")
	require.NoError(t, err)
	assert.True(t, n.IsPinned)

	_, err = svc.Update(ctx, note.Actor{Admin: true}, "now", note.Patch{IsPublic: bp(false)})
	assert.ErrorIs(t, err, note.ErrInvalid)

	err = svc.Delete(ctx, note.Actor{Session: "tok"}, "s")
	require.NoError(t, err)
	_, err = svc.Get(ctx, "s")
	assert.ErrorIs(t, err, note.ErrNotFound)

	err = svc.Delete(ctx, note.Actor{Admin: true}, "missing")
	assert.ErrorIs(t, err, note.ErrNotFound)
}

func TestExcerpt(t *testing.T) {
	content := "# Title\n\n## sub\n  \nThis is **bold** and `code` here.\nsecond line"
	assert.Equal(t, "This is bold and code here.", note.Excerpt(content, 100))
	assert.Equal(t, "This", note.Excerpt(content, 4))
	assert.Equal(t, "", note.Excerpt("# only heading", 100))
	assert.Equal(t, "héllo", note.Excerpt("héllo wörld", 5))
}

func TestPatch(t *testing.T) {
	assert.True(t, note.Patch{}.Empty())

	n := note.Note{Title: "a", Emoji: "x", Slug: sp("a")}
	note.Patch{Emoji: sp("y"), Slug: sp("")}.Apply(&n)
	assert.Equal(t, "a", n.Title)
	assert.Equal(t, "y", n.Emoji)
	assert.Nil(t, n.Slug)
}
