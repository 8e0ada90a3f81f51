package note

import (
	"math"
	"sort"
)

// Ranks is the curated reading order of pinned notes, keyed by normalized
// title. Lower ranks come first.
type Ranks map[string]int

const unranked = math.MaxInt

func (r Ranks) of(title string) int {
	if v, ok := r[NormalizeTitle(title)]; ok {
		return v
	}
	return unranked
}

// Order returns notes in display order: pinned first (by curated rank), then
// everything else newest first. The sort is stable and notes is not modified.
func (r Ranks) Order(notes []Note) []Note {
	out := make([]Note, len(notes))
	copy(out, notes)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.IsPinned != b.IsPinned {
			return a.IsPinned
		}
		if a.IsPinned {
			ra, rb := r.of(a.Title), r.of(b.Title)
			if ra != rb {
				return ra < rb
			}
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	return out
}

// Order sorts with the ranks of the embedded canonical set.
func Order(notes []Note) []Note {
	return CuratedRanks().Order(notes)
}
