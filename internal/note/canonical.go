package note

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed canonical.yaml
var canonicalYAML []byte

// Canonical is one curated note the seed pass reconciles against the store.
type Canonical struct {
	Title    string `yaml:"title"`
	Slug     string `yaml:"slug"`
	Emoji    string `yaml:"emoji"`
	Content  string `yaml:"content"`
	IsPublic bool   `yaml:"public"`
	IsPinned bool   `yaml:"pinned"`
	Rank     int    `yaml:"rank"`
}

// CanonicalSet is the curated reference set plus the alias table mapping
// historical lowercase titles to canonical titles.
type CanonicalSet struct {
	Notes   []Canonical       `yaml:"notes"`
	Aliases map[string]string `yaml:"aliases"`
}

// ParseCanonical decodes and validates a canonical set document.
func ParseCanonical(b []byte) (CanonicalSet, error) {
	var set CanonicalSet
	if err := yaml.Unmarshal(b, &set); err != nil {
		return CanonicalSet{}, fmt.Errorf("parse canonical set: %w", err)
	}

	slugs := map[string]struct{}{}
	titles := map[string]struct{}{}
	for i, c := range set.Notes {
		if strings.TrimSpace(c.Title) == "" || strings.TrimSpace(c.Slug) == "" {
			return CanonicalSet{}, fmt.Errorf("canonical note %d: title and slug required", i)
		}
		if _, dup := slugs[c.Slug]; dup {
			return CanonicalSet{}, fmt.Errorf("canonical note %d: duplicate slug %q", i, c.Slug)
		}
		if _, dup := titles[NormalizeTitle(c.Title)]; dup {
			return CanonicalSet{}, fmt.Errorf("canonical note %d: duplicate title %q", i, c.Title)
		}
		slugs[c.Slug] = struct{}{}
		titles[NormalizeTitle(c.Title)] = struct{}{}
	}

	aliases := make(map[string]string, len(set.Aliases))
	for k, v := range set.Aliases {
		aliases[NormalizeTitle(k)] = v
	}
	set.Aliases = aliases
	return set, nil
}

// Ranks returns the curated priority table of the set.
func (s CanonicalSet) Ranks() Ranks {
	r := make(Ranks, len(s.Notes))
	for _, c := range s.Notes {
		if c.Rank > 0 {
			r[NormalizeTitle(c.Title)] = c.Rank
		}
	}
	return r
}

var (
	defaultSetOnce sync.Once
	defaultSet     CanonicalSet
)

// DefaultCanonical is the set embedded in the binary.
func DefaultCanonical() CanonicalSet {
	defaultSetOnce.Do(func() {
		set, err := ParseCanonical(canonicalYAML)
		if err != nil {
			panic(err)
		}
		defaultSet = set
	})
	return defaultSet
}

func CuratedRanks() Ranks { return DefaultCanonical().Ranks() }
