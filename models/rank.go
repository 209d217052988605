package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rank is a customer tier within a company.
type Rank struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	CompanyID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"company_id"`
	Position    int            `gorm:"default:0" json:"position"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DiscardedAt gorm.DeletedAt `gorm:"column:discarded_at;index" json:"-"`
}

func (r *Rank) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = NewID()
	}
	return nil
}
