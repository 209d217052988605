// Package contents implements the admin workflow for promotional contents:
// building a form state, confirming it, persisting it with its brand and rank
// associations, and listing what an admin user may see.
package contents

import (
	"errors"
	"fmt"

	"content-admin/config"
	"content-admin/models"
	"content-admin/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("content not found")
	ErrForbidden = errors.New("access denied")
)

// PersistenceError reports a store failure while saving a content. No changes
// from the failed command remain in the store.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s content: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

type Options struct {
	DefaultPageSize int
	MaxPageSize     int
}

type Service struct {
	db   *gorm.DB
	opts Options
}

func NewService(db *gorm.DB, opts Options) *Service {
	if opts.DefaultPageSize <= 0 {
		opts.DefaultPageSize = config.DefaultPageSize
	}
	if opts.MaxPageSize > 0 && opts.MaxPageSize < opts.DefaultPageSize {
		opts.MaxPageSize = opts.DefaultPageSize
	}
	return &Service{db: db, opts: opts}
}

// Actor is the admin user a command runs for.
type Actor struct {
	UserID    uuid.UUID
	Role      string
	CompanyID *uuid.UUID
}

// Global reports whether the actor may see and edit every company's contents.
func (a Actor) Global() bool {
	return a.Role == models.RoleAdmin && a.CompanyID == nil
}

func (a Actor) owns(companyID *uuid.UUID) bool {
	if a.Global() {
		return true
	}
	return a.CompanyID != nil && companyID != nil && *a.CompanyID == *companyID
}

// RankData is one rank row of the content form.
type RankData struct {
	Rank        models.Rank         `json:"rank"`
	ContentRank *models.ContentRank `json:"content_rank"`
	Checked     bool                `json:"checked"`
}

// Result is what every workflow command returns. Errors is empty unless the
// command validated and found problems.
type Result struct {
	Content      *models.Content          `json:"content"`
	Relations    []models.ContentRelation `json:"relations"`
	ContentRanks []models.ContentRank     `json:"content_ranks"`
	RanksData    []RankData               `json:"ranks_data"`
	Params       Params                   `json:"params"`
	AllBrands    []models.Brand           `json:"all_brands"`
	Errors       validation.Errors        `json:"errors,omitempty"`
}

// Valid reports whether the result carries no validation errors.
func (r *Result) Valid() bool {
	return r.Errors.Empty()
}
