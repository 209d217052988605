package contents

import (
	"context"

	"content-admin/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Update confirms p against content and, when valid, saves the content and
// replaces its brand and rank sets in one transaction. An invalid result
// leaves the store untouched.
func (s *Service) Update(ctx context.Context, actor Actor, content *models.Content, p Params) (*Result, error) {
	res, err := s.Confirm(ctx, actor, content, p)
	if err != nil {
		return nil, err
	}
	if !res.Valid() {
		return res, nil
	}

	wasNew := content.IsNew()
	relations := append([]models.ContentRelation(nil), content.ContentRelations...)
	ranks := append([]models.ContentRank(nil), content.ContentRanks...)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if wasNew {
			if err := tx.Omit(clause.Associations).Create(content).Error; err != nil {
				return err
			}
		} else if err := tx.Omit(clause.Associations).Save(content).Error; err != nil {
			return err
		}
		if err := replaceRelations(tx, content.ID, relations); err != nil {
			return err
		}
		return replaceRanks(tx, content.ID, ranks)
	})
	if err != nil {
		if wasNew {
			content.ID = uuid.Nil
		}
		op := "update"
		if wasNew {
			op = "create"
		}
		return res, &PersistenceError{Op: op, Err: err}
	}

	content.ContentRelations = relations
	content.ContentRanks = ranks
	res.Relations = relations
	res.ContentRanks = ranks
	return res, nil
}

// Create saves a new content owned by the actor's company.
func (s *Service) Create(ctx context.Context, actor Actor, p Params) (*Result, error) {
	return s.Update(ctx, actor, s.New(actor, p.CompanyID), p)
}

// replaceRelations makes the content's brand relations exactly rows. Kept rows
// are left alone, rows for brands no longer selected are removed.
func replaceRelations(tx *gorm.DB, contentID uuid.UUID, rows []models.ContentRelation) error {
	keep := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		keep = append(keep, r.RelationID)
	}

	del := tx.Unscoped().Where("content_id = ? AND relation_type = ?", contentID, models.RelationTypeBrand)
	if len(keep) > 0 {
		del = del.Where("relation_id NOT IN ?", keep)
	}
	if err := del.Delete(&models.ContentRelation{}).Error; err != nil {
		return err
	}

	for i := range rows {
		if rows[i].ID != uuid.Nil {
			continue
		}
		rows[i].ContentID = contentID
		if err := tx.Omit(clause.Associations).Create(&rows[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func replaceRanks(tx *gorm.DB, contentID uuid.UUID, rows []models.ContentRank) error {
	keep := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		keep = append(keep, r.RankID)
	}

	del := tx.Unscoped().Where("content_id = ?", contentID)
	if len(keep) > 0 {
		del = del.Where("rank_id NOT IN ?", keep)
	}
	if err := del.Delete(&models.ContentRank{}).Error; err != nil {
		return err
	}

	for i := range rows {
		if !rows[i].IsNew() {
			continue
		}
		rows[i].ContentID = contentID
		if err := tx.Omit(clause.Associations).Create(&rows[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
