package note

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultEmoji = "📝"

// Note is the single persisted content entity. Public notes are listed on the
// site; private notes are owned by whoever holds SessionID.
type Note struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Slug      *string   `gorm:"type:text;index" json:"slug"`
	Title     string    `gorm:"type:text;not null;default:''" json:"title"`
	Emoji     string    `gorm:"type:text;not null;default:''" json:"emoji"`
	Content   string    `gorm:"type:text;not null;default:''" json:"content"`
	IsPublic  bool      `gorm:"index;not null;default:false" json:"is_public"`
	IsPinned  bool      `gorm:"not null;default:false" json:"is_pinned"`
	SessionID *string   `gorm:"type:text;index" json:"-"`
	CreatedAt time.Time `gorm:"index;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"index;not null" json:"updated_at"`
}

func (Note) TableName() string { return "notes" }

// BeforeCreate assigns the id. Callers never choose it.
func (n *Note) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}

// Insert holds the fields of a note that does not exist yet.
type Insert struct {
	Title     string
	Slug      *string
	Emoji     string
	Content   string
	IsPublic  bool
	IsPinned  bool
	SessionID *string
}

// Patch is a partial update: nil fields are left unchanged.
// id, created_at and session_id cannot be patched.
type Patch struct {
	Title    *string `json:"title"`
	Slug     *string `json:"slug"`
	Emoji    *string `json:"emoji"`
	Content  *string `json:"content"`
	IsPublic *bool   `json:"is_public"`
	IsPinned *bool   `json:"is_pinned"`
}

func (p Patch) Empty() bool {
	return p.Title == nil && p.Slug == nil && p.Emoji == nil &&
		p.Content == nil && p.IsPublic == nil && p.IsPinned == nil
}

// Apply sets every present field on n.
func (p Patch) Apply(n *Note) {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Slug != nil {
		n.Slug = optional(*p.Slug)
	}
	if p.Emoji != nil {
		n.Emoji = *p.Emoji
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.IsPublic != nil {
		n.IsPublic = *p.IsPublic
	}
	if p.IsPinned != nil {
		n.IsPinned = *p.IsPinned
	}
}

// columns maps the patch to column updates for the store.
func (p Patch) columns() map[string]any {
	m := map[string]any{}
	if p.Title != nil {
		m["title"] = *p.Title
	}
	if p.Slug != nil {
		m["slug"] = optional(*p.Slug)
	}
	if p.Emoji != nil {
		m["emoji"] = *p.Emoji
	}
	if p.Content != nil {
		m["content"] = *p.Content
	}
	if p.IsPublic != nil {
		m["is_public"] = *p.IsPublic
	}
	if p.IsPinned != nil {
		m["is_pinned"] = *p.IsPinned
	}
	return m
}

// NormalizeTitle is the key used for de-duplication and curated ranks.
func NormalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// SessionToken is the client-held capability token that marks ownership of
// private notes. It is not verified server side.
type SessionToken string

func (t SessionToken) Valid() bool { return strings.TrimSpace(string(t)) != "" }

// IsOwner reports whether tok matches the note's owner. Advisory only.
func IsOwner(n Note, tok SessionToken) bool {
	return tok.Valid() && n.SessionID != nil && *n.SessionID == string(tok)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func ptr[T any](v T) *T { return &v }
