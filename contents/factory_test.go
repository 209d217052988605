package contents

import (
	"context"
	"testing"
	"time"

	"content-admin/models"
	"content-admin/testutil"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	ctx     context.Context
	db      *gorm.DB
	svc     *Service
	company *models.Company
	other   *models.Company
	staff   Actor
	admin   Actor
	brands  []models.Brand
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	f := &fixture{
		ctx: context.Background(),
		db:  db,
		svc: NewService(db, Options{DefaultPageSize: 25, MaxPageSize: 100}),
	}
	f.company = createCompany(t, db)
	f.other = createCompany(t, db)
	f.staff = Actor{UserID: uuid.New(), Role: models.RoleCompanyStaff, CompanyID: &f.company.ID}
	f.admin = Actor{UserID: uuid.New(), Role: models.RoleAdmin}
	for i := 0; i < 3; i++ {
		f.brands = append(f.brands, createBrand(t, db, f.company.ID))
	}
	return f
}

func createCompany(t *testing.T, db *gorm.DB) *models.Company {
	t.Helper()
	c := &models.Company{Name: gofakeit.Company(), Domain: gofakeit.DomainName() + "-" + uuid.NewString()[:8]}
	require.NoError(t, db.Create(c).Error)
	return c
}

func createBrand(t *testing.T, db *gorm.DB, companyID uuid.UUID) models.Brand {
	t.Helper()
	b := models.Brand{Name: gofakeit.Company(), Code: gofakeit.LetterN(8), CompanyID: &companyID}
	require.NoError(t, db.Create(&b).Error)
	return b
}

func createRank(t *testing.T, db *gorm.DB, companyID uuid.UUID, position int) models.Rank {
	t.Helper()
	r := models.Rank{Name: gofakeit.Color(), CompanyID: companyID, Position: position}
	require.NoError(t, db.Create(&r).Error)
	return r
}

// createContent persists a valid content related to brands.
func createContent(t *testing.T, db *gorm.DB, companyID *uuid.UUID, brands ...models.Brand) *models.Content {
	t.Helper()
	start := time.Now().Truncate(time.Second)
	end := start.Add(24 * time.Hour)
	c := models.NewContent(companyID)
	c.Title = gofakeit.Sentence(4)
	c.Body = gofakeit.Paragraph(1, 2, 8, " ")
	c.StartTime = &start
	c.EndTime = &end
	require.NoError(t, db.Create(c).Error)
	for _, b := range brands {
		require.NoError(t, db.Create(&models.ContentRelation{ContentID: c.ID, RelationID: b.ID}).Error)
	}
	return c
}

func (f *fixture) load(t *testing.T, id uuid.UUID) *models.Content {
	t.Helper()
	c, err := f.svc.Find(f.ctx, f.admin, id)
	require.NoError(t, err)
	return c
}

// validParams returns a complete submission selecting brandIDs.
func validParams(brandIDs string) Params {
	start := time.Now().Truncate(time.Second)
	end := start.Add(24 * time.Hour)
	flag := models.TargetFlagAllUser
	no := false
	return Params{
		Content: ContentParams{
			Title:       StringParam("new content title"),
			Body:        StringParam("new content body"),
			StartTime:   &start,
			EndTime:     &end,
			TargetFlag:  &flag,
			ForCustomer: &no,
			ForEmployee: &no,
		},
		BrandIDs: StringParam(brandIDs),
	}
}

func brandIDs(brands ...models.Brand) []uuid.UUID {
	ids := make([]uuid.UUID, len(brands))
	for i, b := range brands {
		ids[i] = b.ID
	}
	return ids
}

func relationIDsInStore(t *testing.T, db *gorm.DB, contentID uuid.UUID) []uuid.UUID {
	t.Helper()
	var rows []models.ContentRelation
	require.NoError(t, db.Where("content_id = ?", contentID).Order("id").Find(&rows).Error)
	ids := make([]uuid.UUID, len(rows))
	for i, r := range rows {
		ids[i] = r.RelationID
	}
	return ids
}

func countContents(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Content{}).Count(&n).Error)
	return n
}
