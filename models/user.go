package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin        = "admin"
	RoleCompanyStaff = "company_staff"
)

// User is an administration panel account. An admin without a company has
// global scope; company staff always belong to one company.
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Name      string         `json:"name"`
	Role      string         `gorm:"not null;default:company_staff" json:"role"` // admin, company_staff
	CompanyID *uuid.UUID     `gorm:"type:uuid;index" json:"company_id,omitempty"`
	Company   *Company       `gorm:"foreignKey:CompanyID" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = NewID()
	}
	return nil
}
