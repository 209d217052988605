package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const RelationTypeBrand = "Brand"

// ContentRelation links a content to the brand it is shown for.
type ContentRelation struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ContentID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"content_id"`
	RelationType string         `gorm:"not null;default:Brand;index:idx_content_relations_target" json:"relation_type"`
	RelationID   uuid.UUID      `gorm:"type:uuid;not null;index:idx_content_relations_target" json:"relation_id"`
	Brand        *Brand         `gorm:"foreignKey:RelationID" json:"brand,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DiscardedAt  gorm.DeletedAt `gorm:"column:discarded_at;index" json:"-"`
}

func (r *ContentRelation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = NewID()
	}
	if r.RelationType == "" {
		r.RelationType = RelationTypeBrand
	}
	return nil
}
