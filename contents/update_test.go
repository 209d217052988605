package contents

import (
	"errors"
	"strings"
	"testing"
	"time"

	"content-admin/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUpdateSavesContent(t *testing.T) {
	f := newFixture(t)
	existing := createContent(t, f.db, &f.company.ID, f.brands[0])
	p := validParams(JoinIDs(brandIDs(f.brands[1], f.brands[2])))

	res, err := f.svc.Update(f.ctx, f.staff, f.load(t, existing.ID), p)
	require.NoError(t, err)
	require.True(t, res.Valid(), "unexpected errors: %v", res.Errors)

	saved := f.load(t, existing.ID)
	assert.Equal(t, "new content title", saved.Title)
	assert.Equal(t, "new content body", saved.Body)
	assert.Equal(t, brandIDs(f.brands[1], f.brands[2]), relationIDsInStore(t, f.db, existing.ID))
	for _, r := range res.Relations {
		assert.NotEqual(t, uuid.Nil, r.ID)
	}
}

func TestUpdateTrimsTitle(t *testing.T) {
	f := newFixture(t)
	existing := createContent(t, f.db, &f.company.ID, f.brands[0])
	p := validParams(f.brands[0].ID.String())
	p.Content.Title = StringParam("   trimmed   ")

	_, err := f.svc.Update(f.ctx, f.staff, f.load(t, existing.ID), p)
	require.NoError(t, err)
	assert.Equal(t, "trimmed", f.load(t, existing.ID).Title)
}

func TestUpdateValidationLeavesStoreUntouched(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name  string
		field string
		msg   string
		edit  func(p *Params)
	}{
		{"title blank", "title", "を入力してください。", func(p *Params) { p.Content.Title = StringParam("") }},
		{"title too long", "title", "は正しく入力されていません。", func(p *Params) { p.Content.Title = StringParam(strings.Repeat("a", 201)) }},
		{"body blank", "body", "を入力してください。", func(p *Params) { p.Content.Body = StringParam("") }},
		{"end before start", "end_time", "は 適用開始日時 より後の日付にしてください。", func(p *Params) {
			end := p.Content.StartTime.Add(-time.Hour)
			p.Content.EndTime = &end
		}},
		{"end equals start", "end_time", "は 適用開始日時 より後の日付にしてください。", func(p *Params) {
			end := *p.Content.StartTime
			p.Content.EndTime = &end
		}},
		{"no brands", "content_relations", "を選択してください。", func(p *Params) { p.BrandIDs = StringParam("") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			existing := createContent(t, f.db, &f.company.ID, f.brands[0])
			before := countContents(t, f.db)
			p := validParams(f.brands[1].ID.String())
			tt.edit(&p)

			res, err := f.svc.Update(f.ctx, f.staff, f.load(t, existing.ID), p)
			require.NoError(t, err)

			assert.Contains(t, res.Errors[tt.field], tt.msg)
			assert.Equal(t, before, countContents(t, f.db))
			stored := f.load(t, existing.ID)
			assert.Equal(t, existing.Title, stored.Title)
			assert.Equal(t, []uuid.UUID{f.brands[0].ID}, relationIDsInStore(t, f.db, existing.ID))
		})
	}
}

func TestUpdateIsIdempotent(t *testing.T) {
	f := newFixture(t)
	existing := createContent(t, f.db, &f.company.ID, f.brands[0], f.brands[1])
	ids := brandIDs(f.brands[1], f.brands[2])
	raw := JoinIDs(ids) + "," + f.brands[2].ID.String()

	for i := 0; i < 2; i++ {
		res, err := f.svc.Update(f.ctx, f.staff, f.load(t, existing.ID), validParams(raw))
		require.NoError(t, err)
		require.True(t, res.Valid())
	}

	assert.ElementsMatch(t, ids, relationIDsInStore(t, f.db, existing.ID))

	var discarded int64
	f.db.Unscoped().Model(&models.ContentRelation{}).Where("content_id = ?", existing.ID).Count(&discarded)
	assert.EqualValues(t, 2, discarded, "replaced rows must not linger")
}

func TestUpdateKeepsMatchingRelationRows(t *testing.T) {
	f := newFixture(t)
	existing := createContent(t, f.db, &f.company.ID, f.brands[0])
	var before models.ContentRelation
	require.NoError(t, f.db.Where("content_id = ?", existing.ID).First(&before).Error)

	_, err := f.svc.Update(f.ctx, f.staff, f.load(t, existing.ID), validParams(JoinIDs(brandIDs(f.brands[0], f.brands[1]))))
	require.NoError(t, err)

	var after models.ContentRelation
	require.NoError(t, f.db.Where("content_id = ? AND relation_id = ?", existing.ID, f.brands[0].ID).First(&after).Error)
	assert.Equal(t, before.ID, after.ID)
}

func TestUpdateReplacesRanks(t *testing.T) {
	f := newFixture(t)
	existing := createContent(t, f.db, &f.company.ID, f.brands[0])
	gold := createRank(t, f.db, f.company.ID, 1)
	silver := createRank(t, f.db, f.company.ID, 2)
	require.NoError(t, f.db.Create(&models.ContentRank{ContentID: existing.ID, RankID: gold.ID}).Error)

	p := validParams(f.brands[0].ID.String())
	p.RankIDs = StringParam(silver.ID.String())
	_, err := f.svc.Update(f.ctx, f.staff, f.load(t, existing.ID), p)
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{silver.ID}, f.load(t, existing.ID).RankIDs())

	// An empty selection clears every rank
	p.RankIDs = StringParam("")
	_, err = f.svc.Update(f.ctx, f.staff, f.load(t, existing.ID), p)
	require.NoError(t, err)
	assert.Empty(t, f.load(t, existing.ID).RankIDs())
}

func TestUpdateRollsBackOnRelationFailure(t *testing.T) {
	f := newFixture(t)
	existing := createContent(t, f.db, &f.company.ID, f.brands[0])
	boom := errors.New("relation insert failed")
	require.NoError(t, f.db.Callback().Create().Before("gorm:create").Register("test:fail_relations", func(tx *gorm.DB) {
		if tx.Statement.Schema != nil && tx.Statement.Schema.Table == "content_relations" {
			tx.AddError(boom)
		}
	}))

	res, err := f.svc.Update(f.ctx, f.staff, f.load(t, existing.ID), validParams(f.brands[1].ID.String()))

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "new content title", res.Content.Title, "submitted fields are kept")

	stored := f.load(t, existing.ID)
	assert.Equal(t, existing.Title, stored.Title)
	assert.Equal(t, []uuid.UUID{f.brands[0].ID}, relationIDsInStore(t, f.db, existing.ID))
}

func TestCreatePersistsContent(t *testing.T) {
	f := newFixture(t)
	before := countContents(t, f.db)
	p := validParams(JoinIDs(brandIDs(f.brands[0], f.brands[1])))
	p.CompanyID = &f.company.ID

	res, err := f.svc.Create(f.ctx, f.staff, p)
	require.NoError(t, err)
	require.True(t, res.Valid(), "unexpected errors: %v", res.Errors)

	assert.Equal(t, before+1, countContents(t, f.db))
	assert.False(t, res.Content.IsNew())
	assert.Equal(t, models.ContentKindBrand, res.Content.Kind)
	assert.Equal(t, &f.company.ID, res.Content.CompanyID)
	assert.Equal(t, brandIDs(f.brands[0], f.brands[1]), relationIDsInStore(t, f.db, res.Content.ID))
}

func TestCreateInvalidCreatesNothing(t *testing.T) {
	f := newFixture(t)
	p := validParams("")

	res, err := f.svc.Create(f.ctx, f.staff, p)
	require.NoError(t, err)

	assert.False(t, res.Valid())
	assert.True(t, res.Content.IsNew())
	assert.Zero(t, countContents(t, f.db))

	var relations int64
	f.db.Model(&models.ContentRelation{}).Count(&relations)
	assert.Zero(t, relations)
}

func TestCreateRollsBackOnFailure(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Callback().Create().Before("gorm:create").Register("test:fail_relations", func(tx *gorm.DB) {
		if tx.Statement.Schema != nil && tx.Statement.Schema.Table == "content_relations" {
			tx.AddError(errors.New("boom"))
		}
	}))

	res, err := f.svc.Create(f.ctx, f.staff, validParams(f.brands[0].ID.String()))

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "create", perr.Op)
	assert.True(t, res.Content.IsNew())
	assert.Zero(t, countContents(t, f.db))
}

func TestCreateForOtherCompanyForbidden(t *testing.T) {
	f := newFixture(t)
	p := validParams(f.brands[0].ID.String())
	p.CompanyID = &f.other.ID

	_, err := f.svc.Create(f.ctx, f.staff, p)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Zero(t, countContents(t, f.db))
}
