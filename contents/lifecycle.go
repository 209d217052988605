package contents

import (
	"context"
	"errors"

	"content-admin/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Find loads a content the actor may read with its brands and ranks.
// ErrForbidden means the content exists outside the actor's scope.
func (s *Service) Find(ctx context.Context, actor Actor, id uuid.UUID) (*models.Content, error) {
	var content models.Content
	err := s.AccessibleScope(ctx, actor).
		Preload("ContentRelations", func(db *gorm.DB) *gorm.DB {
			return db.Order("content_relations.id")
		}).
		Preload("ContentRelations.Brand").
		Preload("ContentRanks.Rank").
		First(&content, "contents.id = ?", id).Error
	if err == nil {
		return &content, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Content{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrForbidden
	}
	return nil, ErrNotFound
}

// Discard soft-deletes the content and its brand and rank rows.
func (s *Service) Discard(ctx context.Context, actor Actor, id uuid.UUID) error {
	content, err := s.Find(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := content.Discard(s.db.WithContext(ctx)); err != nil {
		return &PersistenceError{Op: "discard", Err: err}
	}
	return nil
}

// Destroy removes the content and its brand and rank rows for good.
func (s *Service) Destroy(ctx context.Context, actor Actor, id uuid.UUID) error {
	content, err := s.Find(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := content.Destroy(s.db.WithContext(ctx)); err != nil {
		return &PersistenceError{Op: "destroy", Err: err}
	}
	return nil
}
