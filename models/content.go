package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TargetFlagAllUser  = "all_user"
	TargetFlagCustomer = "customer"
	TargetFlagEmployee = "employee"

	ContentKindBrand = "brand"
)

// RelationNameSeparator joins brand names for display.
const RelationNameSeparator = "、"

var targetFlags = map[string]bool{
	TargetFlagAllUser:  true,
	TargetFlagCustomer: true,
	TargetFlagEmployee: true,
}

// ValidTargetFlag reports whether flag is one of the known target flags.
func ValidTargetFlag(flag string) bool {
	return targetFlags[flag]
}

// Content is a promotional item shown to customers. A nil CompanyID means the
// content is global and not owned by any company.
type Content struct {
	ID               uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	Title            string            `gorm:"size:200;not null" json:"title"`
	Body             string            `gorm:"type:text;not null" json:"body"`
	StartTime        *time.Time        `gorm:"index" json:"start_time"`
	EndTime          *time.Time        `gorm:"index" json:"end_time"`
	TargetFlag       string            `gorm:"not null;default:all_user" json:"target_flag"`
	ForCustomer      bool              `gorm:"not null;default:false" json:"for_customer"`
	ForEmployee      bool              `gorm:"not null;default:false" json:"for_employee"`
	Kind             string            `gorm:"not null;default:brand" json:"kind"`
	CompanyID        *uuid.UUID        `gorm:"type:uuid;index" json:"company_id"`
	Company          *Company          `gorm:"foreignKey:CompanyID" json:"-"`
	ContentRelations []ContentRelation `gorm:"foreignKey:ContentID" json:"content_relations,omitempty"`
	ContentRanks     []ContentRank     `gorm:"foreignKey:ContentID" json:"content_ranks,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
	DiscardedAt      gorm.DeletedAt    `gorm:"column:discarded_at;index" json:"-"`
}

// NewContent returns an unsaved content with the column defaults applied.
func NewContent(companyID *uuid.UUID) *Content {
	return &Content{
		TargetFlag: TargetFlagAllUser,
		Kind:       ContentKindBrand,
		CompanyID:  companyID,
	}
}

func (c *Content) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = NewID()
	}
	if c.TargetFlag == "" {
		c.TargetFlag = TargetFlagAllUser
	}
	if c.Kind == "" {
		c.Kind = ContentKindBrand
	}
	return nil
}

// IsNew reports whether the content has not been persisted yet.
func (c *Content) IsNew() bool {
	return c.ID == uuid.Nil
}

// RelationIDs returns the ids of the loaded relations in insertion order.
func (c *Content) RelationIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(c.ContentRelations))
	for _, r := range c.ContentRelations {
		ids = append(ids, r.RelationID)
	}
	return ids
}

// RankIDs returns the ids of the loaded content ranks.
func (c *Content) RankIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(c.ContentRanks))
	for _, r := range c.ContentRanks {
		ids = append(ids, r.RankID)
	}
	return ids
}

// RelationNames joins the names of the related brands. ContentRelations and
// their Brand must be preloaded.
func (c *Content) RelationNames() string {
	names := make([]string, 0, len(c.ContentRelations))
	for _, r := range c.ContentRelations {
		if r.Brand != nil {
			names = append(names, r.Brand.Name)
		}
	}
	return strings.Join(names, RelationNameSeparator)
}

// Discard soft-deletes the content together with its relation and rank rows.
func (c *Content) Discard(tx *gorm.DB) error {
	return tx.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("content_id = ?", c.ID).Delete(&ContentRelation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("content_id = ?", c.ID).Delete(&ContentRank{}).Error; err != nil {
			return err
		}
		return tx.Delete(c).Error
	})
}

// Destroy removes the content row and every row it owns, discarded or not.
func (c *Content) Destroy(tx *gorm.DB) error {
	return tx.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("content_id = ?", c.ID).Delete(&ContentRelation{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("content_id = ?", c.ID).Delete(&ContentRank{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(c).Error
	})
}

// ByRelationID limits a content query to contents related to the given brand.
func ByRelationID(relationID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("contents.id IN (?)",
			db.Session(&gorm.Session{NewDB: true}).Model(&ContentRelation{}).
				Select("content_id").
				Where("relation_type = ? AND relation_id = ?", RelationTypeBrand, relationID))
	}
}
