package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Company struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Domain      string         `gorm:"uniqueIndex;not null" json:"domain"`
	CompanyCode string         `json:"company_code"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DiscardedAt gorm.DeletedAt `gorm:"column:discarded_at;index" json:"-"`
	Brands      []Brand        `gorm:"foreignKey:CompanyID" json:"brands,omitempty"`
	Ranks       []Rank         `gorm:"foreignKey:CompanyID" json:"ranks,omitempty"`
}

func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = NewID()
	}
	return nil
}
