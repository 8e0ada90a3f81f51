package note

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Gateway is the persistence boundary used by the resolver, the service and
// the reconciler.
type Gateway interface {
	List(ctx context.Context, c Criteria) ([]Note, error)
	GetOne(ctx context.Context, c Criteria) (Note, error)
	Insert(ctx context.Context, in Insert) (Note, error)
	Update(ctx context.Context, id string, p Patch) (Note, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type Field string

const (
	FieldPinned    Field = "is_pinned"
	FieldCreatedAt Field = "created_at"
	FieldUpdatedAt Field = "updated_at"
)

type SortKey struct {
	Field Field
	Desc  bool
}

// Criteria are equality predicates plus sort keys. Nil predicates match all.
type Criteria struct {
	ID        *string
	Slug      *string
	SessionID *string
	IsPublic  *bool
	Sort      []SortKey
}

func ByID(id string) Criteria     { return Criteria{ID: &id} }
func BySlug(slug string) Criteria { return Criteria{Slug: &slug} }

// ByPublicSlug matches at most one note: public slugs are unique.
func ByPublicSlug(slug string) Criteria {
	return Criteria{Slug: &slug, IsPublic: ptr(true)}
}

func PublicCriteria(sort ...SortKey) Criteria {
	return Criteria{IsPublic: ptr(true), Sort: sort}
}

// Store implements Gateway on gorm.
type Store struct {
	DB  *gorm.DB
	Now func() time.Time
}

func (s *Store) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *Store) query(ctx context.Context, c Criteria) (*gorm.DB, error) {
	q := s.DB.WithContext(ctx).Model(&Note{})
	if c.ID != nil {
		q = q.Where("id = ?", *c.ID)
	}
	if c.Slug != nil {
		q = q.Where("slug = ?", *c.Slug)
	}
	if c.SessionID != nil {
		q = q.Where("session_id = ?", *c.SessionID)
	}
	if c.IsPublic != nil {
		q = q.Where("is_public = ?", *c.IsPublic)
	}
	for _, k := range c.Sort {
		switch k.Field {
		case FieldPinned, FieldCreatedAt, FieldUpdatedAt:
		default:
			return nil, fmt.Errorf("unsupported sort field %q", k.Field)
		}
		dir := "asc"
		if k.Desc {
			dir = "desc"
		}
		q = q.Order(string(k.Field) + " " + dir)
	}
	return q, nil
}

func (s *Store) List(ctx context.Context, c Criteria) ([]Note, error) {
	q, err := s.query(ctx, c)
	if err != nil {
		return nil, err
	}
	var rows []Note
	if err := q.Find(&rows).Error; err != nil {
		return nil, gatewayErr("list", err)
	}
	return rows, nil
}

// GetOne returns ErrNotFound for zero rows and ErrAmbiguous for more than one.
func (s *Store) GetOne(ctx context.Context, c Criteria) (Note, error) {
	q, err := s.query(ctx, c)
	if err != nil {
		return Note{}, err
	}
	var rows []Note
	if err := q.Limit(2).Find(&rows).Error; err != nil {
		return Note{}, gatewayErr("get", err)
	}
	switch len(rows) {
	case 0:
		return Note{}, ErrNotFound
	case 1:
		return rows[0], nil
	default:
		return Note{}, ErrAmbiguous
	}
}

func (s *Store) Insert(ctx context.Context, in Insert) (Note, error) {
	now := s.now()
	n := Note{
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
	if n.Emoji == "" {
		n.Emoji = DefaultEmoji
	}
	if err := s.DB.WithContext(ctx).Create(&n).Error; err != nil {
		return Note{}, gatewayErr("insert", err)
	}
	return n, nil
}

// Update applies p and refreshes updated_at, even when p is empty.
func (s *Store) Update(ctx context.Context, id string, p Patch) (Note, error) {
	var out Note
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur Note
		if err := tx.Where("id = ?", id).First(&cur).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		cols := p.columns()
		now := s.now()
		if now.Before(cur.CreatedAt) {
			now = cur.CreatedAt
		}
		cols["updated_at"] = now

		if err := tx.Model(&Note{}).Where("id = ?", id).Updates(cols).Error; err != nil {
			return err
		}

		p.Apply(&cur)
		cur.UpdatedAt = now
		out = cur
		return nil
	})
	if err != nil {
		return Note{}, gatewayErr("update", err)
	}
	return out, nil
}

func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	res := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&Note{})
	if res.Error != nil {
		return false, gatewayErr("delete", res.Error)
	}
	return res.RowsAffected > 0, nil
}
