package contents

import (
	"context"
	"strings"

	"content-admin/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Query is the search part of a list request. RelationIDEq keeps only the
// contents related to that brand.
type Query struct {
	S               string     `form:"s" json:"s"`
	TitleOrBodyCont string     `form:"title_or_body_cont" json:"title_or_body_cont"`
	PerPage         int        `form:"per_page" json:"per_page"`
	RelationIDEq    *uuid.UUID `form:"relation_id_eq" json:"relation_id_eq,omitempty"`
}

type ListQuery struct {
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Q       Query `json:"q"`
}

type ListResult struct {
	Records []models.Content `json:"contents"`
	Total   int64            `json:"total"`
	Page    int              `json:"page"`
	PerPage int              `json:"per_page"`
}

var sortColumns = map[string]string{
	"id":         "contents.id",
	"title":      "contents.title",
	"body":       "contents.body",
	"start_time": "contents.start_time",
	"end_time":   "contents.end_time",
}

const defaultOrder = "contents.id DESC"

// AccessibleScope returns the contents the actor may read. Discarded contents
// are never included, and global contents only for a global admin.
func (s *Service) AccessibleScope(ctx context.Context, actor Actor) *gorm.DB {
	db := s.db.WithContext(ctx).Model(&models.Content{})
	if actor.Global() {
		return db
	}
	if actor.CompanyID == nil {
		return db.Where("1 = 0")
	}
	return db.Where("contents.company_id = ?", *actor.CompanyID)
}

// GetList filters, sorts and paginates scope.
func (s *Service) GetList(scope *gorm.DB, q ListQuery) (*ListResult, error) {
	db := scope.Session(&gorm.Session{})
	if kw := strings.TrimSpace(q.Q.TitleOrBodyCont); kw != "" {
		pattern := "%" + escapeLike(kw) + "%"
		db = db.Where("(LOWER(contents.title) LIKE LOWER(?) ESCAPE '\\' OR LOWER(contents.body) LIKE LOWER(?) ESCAPE '\\')", pattern, pattern)
	}
	if q.Q.RelationIDEq != nil {
		db = db.Scopes(models.ByRelationID(*q.Q.RelationIDEq))
	}

	var total int64
	if err := db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	perPage := s.pageSize(q)

	var records []models.Content
	err := db.Preload("ContentRelations", func(db *gorm.DB) *gorm.DB {
		return db.Order("content_relations.id")
	}).Preload("ContentRelations.Brand").
		Order(orderClause(q.Q.S)).
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return &ListResult{Records: records, Total: total, Page: page, PerPage: perPage}, nil
}

func (s *Service) pageSize(q ListQuery) int {
	n := q.PerPage
	if n <= 0 {
		n = q.Q.PerPage
	}
	if n <= 0 {
		n = s.opts.DefaultPageSize
	}
	if s.opts.MaxPageSize > 0 && n > s.opts.MaxPageSize {
		n = s.opts.MaxPageSize
	}
	return n
}

// orderClause parses "<field> <asc|desc>". Anything it does not recognise
// falls back to newest first.
func orderClause(sort string) string {
	parts := strings.Fields(strings.ToLower(sort))
	if len(parts) == 0 || len(parts) > 2 {
		return defaultOrder
	}
	col, ok := sortColumns[parts[0]]
	if !ok {
		return defaultOrder
	}
	dir := "ASC"
	if len(parts) == 2 {
		switch parts[1] {
		case "asc":
		case "desc":
			dir = "DESC"
		default:
			return defaultOrder
		}
	}
	if col == sortColumns["id"] {
		return col + " " + dir
	}
	return col + " " + dir + ", contents.id " + dir
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
