package note

import "time"

type BucketLabel string

const (
	Today     BucketLabel = "today"
	Yesterday BucketLabel = "yesterday"
	LastWeek  BucketLabel = "7 days"
	LastMonth BucketLabel = "30 days"
	Older     BucketLabel = "older"
)

// BucketLabels is the fixed iteration order.
var BucketLabels = []BucketLabel{Today, Yesterday, LastWeek, LastMonth, Older}

type Group struct {
	Label BucketLabel `json:"label"`
	Notes []Note      `json:"notes"`
}

// Buckets always holds one group per label, in BucketLabels order.
type Buckets []Group

func (b Buckets) Get(label BucketLabel) []Note {
	for _, g := range b {
		if g.Label == label {
			return g.Notes
		}
	}
	return nil
}

// LabelFor maps the age of a note to its bucket. Future timestamps count as today.
func LabelFor(createdAt, now time.Time) BucketLabel {
	days := int64(now.Sub(createdAt) / (24 * time.Hour))
	if now.Before(createdAt) {
		days = 0
	}
	switch {
	case days <= 0:
		return Today
	case days == 1:
		return Yesterday
	case days <= 7:
		return LastWeek
	case days <= 30:
		return LastMonth
	default:
		return Older
	}
}

// Bucket partitions notes by created_at, keeping input order within a bucket.
func Bucket(notes []Note, now time.Time) Buckets {
	out := make(Buckets, len(BucketLabels))
	idx := make(map[BucketLabel]int, len(BucketLabels))
	for i, l := range BucketLabels {
		out[i] = Group{Label: l, Notes: []Note{}}
		idx[l] = i
	}
	for _, n := range notes {
		i := idx[LabelFor(n.CreatedAt, now)]
		out[i].Notes = append(out[i].Notes, n)
	}
	return out
}
