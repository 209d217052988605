package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContentRank restricts a content to customers of the given rank.
type ContentRank struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ContentID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"content_id"`
	RankID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"rank_id"`
	Rank        *Rank          `gorm:"foreignKey:RankID" json:"rank,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DiscardedAt gorm.DeletedAt `gorm:"column:discarded_at;index" json:"-"`
}

func (r *ContentRank) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = NewID()
	}
	return nil
}

// IsNew reports whether the row has not been persisted yet.
func (r *ContentRank) IsNew() bool {
	return r.ID == uuid.Nil
}
