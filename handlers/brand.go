package handlers

import (
	"net/http"
	"strings"

	"content-admin/models"
	"content-admin/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BrandHandler struct {
	DB *gorm.DB
}

// ownerCompany returns the company a new brand or rank belongs to. Only a
// global admin may pick one; everyone else writes into their own company.
func ownerCompany(c *gin.Context, requested *uuid.UUID) (*uuid.UUID, bool) {
	actor := currentActor(c)
	if actor.Global() {
		return requested, true
	}
	if requested != nil && *requested != *actor.CompanyID {
		return nil, false
	}
	return actor.CompanyID, true
}

// companyFilter limits a query to the actor's company. A global admin may
// narrow it with ?company_id=.
func companyFilter(c *gin.Context, db *gorm.DB) *gorm.DB {
	actor := currentActor(c)
	if !actor.Global() {
		return db.Where("company_id = ?", *actor.CompanyID)
	}
	if id, err := uuid.Parse(c.Query("company_id")); err == nil {
		return db.Where("company_id = ?", id)
	}
	return db
}

func (h *BrandHandler) GetBrands(c *gin.Context) {
	query := companyFilter(c, h.DB.Model(&models.Brand{}))

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(code) LIKE LOWER(?)", pattern, pattern)
	}

	var brands []models.Brand
	if err := query.Order("name").Find(&brands).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch brands"})
		return
	}

	c.JSON(http.StatusOK, brands)
}

func (h *BrandHandler) CreateBrand(c *gin.Context) {
	var req struct {
		Name      string     `json:"name" binding:"required,max=255"`
		Code      string     `json:"code" binding:"max=64"`
		KanaName  string     `json:"kana_name"`
		CompanyID *uuid.UUID `json:"company_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	companyID, ok := ownerCompany(c, req.CompanyID)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	brand := models.Brand{
		Name:      strings.TrimSpace(req.Name),
		Code:      req.Code,
		KanaName:  req.KanaName,
		CompanyID: companyID,
	}
	if err := h.DB.Create(&brand).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create brand"})
		return
	}

	c.JSON(http.StatusCreated, brand)
}
