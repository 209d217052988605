package contents

import (
	"context"
	"strings"
	"time"

	"content-admin/models"
	"content-admin/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// New returns an unsaved content owned by the actor's company. Only a global
// admin may choose the owner, and a nil companyID makes the content global.
func (s *Service) New(actor Actor, companyID *uuid.UUID) *models.Content {
	if actor.Global() {
		return models.NewContent(companyID)
	}
	return models.NewContent(actor.CompanyID)
}

// Build applies p onto content and prepares the brand and rank choices of the
// form. Nothing is written.
func (s *Service) Build(ctx context.Context, actor Actor, content *models.Content, p Params) (*Result, error) {
	if !actor.owns(content.CompanyID) {
		return nil, ErrForbidden
	}
	if !actor.Global() && p.CompanyID != nil && !actor.owns(p.CompanyID) {
		return nil, ErrForbidden
	}

	db := s.db.WithContext(ctx)
	assign(content, p)

	brands, err := s.brandsFor(db, content.CompanyID)
	if err != nil {
		return nil, err
	}
	relations, err := s.resolveRelations(db, content, brands, p)
	if err != nil {
		return nil, err
	}
	content.ContentRelations = relations

	ranksData, checked, err := s.loadOrBuildContentRanks(db, content, p)
	if err != nil {
		return nil, err
	}
	content.ContentRanks = checked

	p.Content.Title = &content.Title
	p.BrandIDs = StringParam(JoinIDs(content.RelationIDs()))
	p.RankIDs = StringParam(JoinIDs(content.RankIDs()))

	return &Result{
		Content:      content,
		Relations:    relations,
		ContentRanks: checked,
		RanksData:    ranksData,
		Params:       p,
		AllBrands:    brands,
		Errors:       validation.Errors{},
	}, nil
}

// Confirm builds the form state and validates it without saving.
func (s *Service) Confirm(ctx context.Context, actor Actor, content *models.Content, p Params) (*Result, error) {
	res, err := s.Build(ctx, actor, content, p)
	if err != nil {
		return nil, err
	}
	res.Errors = validate(res.Content)
	return res, nil
}

func validate(c *models.Content) validation.Errors {
	return validation.Validate(validation.Input{
		Title:       c.Title,
		Body:        c.Body,
		StartTime:   c.StartTime,
		EndTime:     c.EndTime,
		TargetFlag:  c.TargetFlag,
		RelationIDs: c.RelationIDs(),
	})
}

func assign(c *models.Content, p Params) {
	in := p.Content
	if p.returning() {
		c.Title = strings.TrimSpace(deref(in.Title))
		c.Body = deref(in.Body)
		c.StartTime = timeOrNil(in.StartTime)
		c.EndTime = timeOrNil(in.EndTime)
		if in.TargetFlag != nil {
			c.TargetFlag = *in.TargetFlag
		}
		c.ForCustomer = in.ForCustomer != nil && *in.ForCustomer
		c.ForEmployee = in.ForEmployee != nil && *in.ForEmployee
		return
	}

	if in.Title != nil {
		c.Title = strings.TrimSpace(*in.Title)
	}
	if in.Body != nil {
		c.Body = *in.Body
	}
	if in.StartTime != nil {
		c.StartTime = timeOrNil(in.StartTime)
	}
	if in.EndTime != nil {
		c.EndTime = timeOrNil(in.EndTime)
	}
	if in.TargetFlag != nil {
		c.TargetFlag = *in.TargetFlag
	}
	if in.ForCustomer != nil {
		c.ForCustomer = *in.ForCustomer
	}
	if in.ForEmployee != nil {
		c.ForEmployee = *in.ForEmployee
	}
}

func timeOrNil(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	v := *t
	return &v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// companyScope limits a query to one company's rows. Global content only
// sees rows without a company, so it never offers another company's brands or
// ranks.
func companyScope(companyID *uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if companyID == nil {
			return db.Where("company_id IS NULL")
		}
		return db.Where("company_id = ?", *companyID)
	}
}

func (s *Service) brandsFor(db *gorm.DB, companyID *uuid.UUID) ([]models.Brand, error) {
	var brands []models.Brand
	err := db.Scopes(companyScope(companyID)).Order("id").Find(&brands).Error
	return brands, err
}

func (s *Service) existingRelations(db *gorm.DB, content *models.Content) ([]models.ContentRelation, error) {
	if content.IsNew() {
		return nil, nil
	}
	var relations []models.ContentRelation
	err := db.Preload("Brand").
		Where("content_id = ? AND relation_type = ?", content.ID, models.RelationTypeBrand).
		Order("id").Find(&relations).Error
	return relations, err
}

// resolveRelations returns the relation rows for the submitted brand ids,
// reusing persisted rows that are kept. Ids of brands the content's company
// does not have are dropped.
func (s *Service) resolveRelations(db *gorm.DB, content *models.Content, brands []models.Brand, p Params) ([]models.ContentRelation, error) {
	existing, err := s.existingRelations(db, content)
	if err != nil {
		return nil, err
	}
	if !p.returning() && p.BrandIDs == nil {
		return existing, nil
	}

	byID := make(map[uuid.UUID]*models.Brand, len(brands))
	allowed := make(map[uuid.UUID]bool, len(brands))
	for i := range brands {
		byID[brands[i].ID] = &brands[i]
		allowed[brands[i].ID] = true
	}
	kept := make(map[uuid.UUID]models.ContentRelation, len(existing))
	for _, r := range existing {
		kept[r.RelationID] = r
	}

	ids := filterIDs(ParseIDs(deref(p.BrandIDs)), allowed)
	relations := make([]models.ContentRelation, 0, len(ids))
	for _, id := range ids {
		if r, ok := kept[id]; ok {
			relations = append(relations, r)
			continue
		}
		relations = append(relations, models.ContentRelation{
			ContentID:    content.ID,
			RelationType: models.RelationTypeBrand,
			RelationID:   id,
			Brand:        byID[id],
		})
	}
	return relations, nil
}

// loadOrBuildContentRanks pairs every rank of the content's company with its
// persisted content rank, or a new unsaved one, and marks the selected ones.
func (s *Service) loadOrBuildContentRanks(db *gorm.DB, content *models.Content, p Params) ([]RankData, []models.ContentRank, error) {
	var ranks []models.Rank
	if err := db.Scopes(companyScope(content.CompanyID)).Order("position, id").Find(&ranks).Error; err != nil {
		return nil, nil, err
	}

	existing := make(map[uuid.UUID]models.ContentRank)
	if !content.IsNew() {
		var rows []models.ContentRank
		if err := db.Where("content_id = ?", content.ID).Find(&rows).Error; err != nil {
			return nil, nil, err
		}
		for _, r := range rows {
			existing[r.RankID] = r
		}
	}

	selected := make(map[uuid.UUID]bool)
	if p.returning() || p.RankIDs != nil {
		for _, id := range ParseIDs(deref(p.RankIDs)) {
			selected[id] = true
		}
	} else {
		for id := range existing {
			selected[id] = true
		}
	}

	data := make([]RankData, 0, len(ranks))
	checked := []models.ContentRank{}
	for i := range ranks {
		rank := ranks[i]
		cr, ok := existing[rank.ID]
		if !ok {
			cr = models.ContentRank{ContentID: content.ID, RankID: rank.ID}
		}
		cr.Rank = &ranks[i]
		data = append(data, RankData{Rank: rank, ContentRank: &cr, Checked: selected[rank.ID]})
		if selected[rank.ID] {
			checked = append(checked, cr)
		}
	}
	return data, checked, nil
}
