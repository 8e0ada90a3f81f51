package note

import (
	"context"
	"errors"
	"log/slog"
	"sort"
)

type SeedStatus string

const (
	SeedCreated SeedStatus = "created"
	SeedUpdated SeedStatus = "updated"
	SeedError   SeedStatus = "error"
)

type SeedResult struct {
	Slug     string     `json:"slug"`
	Status   SeedStatus `json:"status"`
	ID       string     `json:"id,omitempty"`
	OldTitle string     `json:"old_title,omitempty"`
	Error    string     `json:"error,omitempty"`
}

type Removed struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type RemoveFailure struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Error string `json:"error"`
}

type CleanupReport struct {
	Deleted []Removed       `json:"deleted"`
	Failed  []RemoveFailure `json:"failed,omitempty"`
}

// Reconciler aligns stored notes with a canonical set and removes
// title duplicates. Gateway calls are issued one at a time.
type Reconciler struct {
	Gateway Gateway
	Set     CanonicalSet
	Log     *slog.Logger
}

func (r *Reconciler) log() *slog.Logger {
	if r.Log != nil {
		return r.Log
	}
	return slog.Default()
}

// Seed upserts every canonical note. A failing note is reported and the pass
// moves on to the next one.
func (r *Reconciler) Seed(ctx context.Context, admin bool) ([]SeedResult, error) {
	if !admin {
		return nil, ErrUnauthorized
	}

	results := make([]SeedResult, 0, len(r.Set.Notes))
	for _, c := range r.Set.Notes {
		res := r.seedOne(ctx, c)
		if res.Status == SeedError {
			r.log().Warn("seed failed", "slug", c.Slug, "err", res.Error)
		} else {
			r.log().Info("seeded note", "slug", c.Slug, "status", res.Status, "id", res.ID)
		}
		results = append(results, res)
	}
	return results, nil
}

func (r *Reconciler) seedOne(ctx context.Context, c Canonical) SeedResult {
	res := SeedResult{Slug: c.Slug}

	existing, found, err := r.locate(ctx, c)
	if err != nil {
		res.Status = SeedError
		res.Error = err.Error()
		return res
	}

	if found {
		n, err := r.Gateway.Update(ctx, existing.ID, Patch{
			Title:    ptr(c.Title),
			Slug:     ptr(c.Slug),
			Emoji:    ptr(c.Emoji),
			Content:  ptr(c.Content),
			IsPublic: ptr(c.IsPublic),
			IsPinned: ptr(c.IsPinned),
		})
		if err != nil {
			res.Status = SeedError
			res.Error = err.Error()
			return res
		}
		res.Status = SeedUpdated
		res.ID = n.ID
		res.OldTitle = existing.Title
		return res
	}

	n, err := r.Gateway.Insert(ctx, Insert{
		Title:    c.Title,
		Slug:     ptr(c.Slug),
		Emoji:    c.Emoji,
		Content:  c.Content,
		IsPublic: c.IsPublic,
		IsPinned: c.IsPinned,
	})
	if err != nil {
		res.Status = SeedError
		res.Error = err.Error()
		return res
	}
	res.Status = SeedCreated
	res.ID = n.ID
	return res
}

// locate finds the stored public note for c: by slug, then by title or alias.
// Private notes are never adopted.
func (r *Reconciler) locate(ctx context.Context, c Canonical) (Note, bool, error) {
	n, err := r.Gateway.GetOne(ctx, ByPublicSlug(c.Slug))
	switch {
	case err == nil:
		return n, true, nil
	case errors.Is(err, ErrNotFound):
	case errors.Is(err, ErrAmbiguous):
		r.log().Warn("slug matches several notes", "slug", c.Slug)
	default:
		return Note{}, false, err
	}

	public, err := r.Gateway.List(ctx, PublicCriteria(SortKey{Field: FieldUpdatedAt, Desc: true}))
	if err != nil {
		return Note{}, false, err
	}
	want := NormalizeTitle(c.Title)
	for _, p := range public {
		key := NormalizeTitle(p.Title)
		if key == want || r.Set.Aliases[key] == c.Title {
			return p, true, nil
		}
	}
	return Note{}, false, nil
}

// Duplicates returns the notes to delete so that no two notes share a
// normalized title. notes must be ordered most recently updated first; the
// first note of every title group is kept.
func Duplicates(notes []Note) []Note {
	seen := make(map[string]struct{}, len(notes))
	var out []Note
	for _, n := range notes {
		key := NormalizeTitle(n.Title)
		if _, ok := seen[key]; ok {
			out = append(out, n)
			continue
		}
		seen[key] = struct{}{}
	}
	return out
}

// Cleanup deletes public notes whose normalized title repeats, keeping the
// most recently updated one of each group.
func (r *Reconciler) Cleanup(ctx context.Context, admin bool) (CleanupReport, error) {
	if !admin {
		return CleanupReport{}, ErrUnauthorized
	}

	public, err := r.Gateway.List(ctx, PublicCriteria(SortKey{Field: FieldUpdatedAt, Desc: true}))
	if err != nil {
		return CleanupReport{}, err
	}
	sort.SliceStable(public, func(i, j int) bool {
		return public[i].UpdatedAt.After(public[j].UpdatedAt)
	})

	report := CleanupReport{Deleted: []Removed{}}
	for _, n := range Duplicates(public) {
		ok, err := r.Gateway.Delete(ctx, n.ID)
		switch {
		case err != nil:
			r.log().Warn("delete duplicate failed", "id", n.ID, "title", n.Title, "err", err)
			report.Failed = append(report.Failed, RemoveFailure{ID: n.ID, Title: n.Title, Error: err.Error()})
		case ok:
			r.log().Info("deleted duplicate", "id", n.ID, "title", n.Title)
			report.Deleted = append(report.Deleted, Removed{ID: n.ID, Title: n.Title})
		}
	}
	return report, nil
}
