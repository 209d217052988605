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

type RankHandler struct {
	DB *gorm.DB
}

func (h *RankHandler) GetRanks(c *gin.Context) {
	var ranks []models.Rank
	if err := companyFilter(c, h.DB.Model(&models.Rank{})).Order("position, name").Find(&ranks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ranks"})
		return
	}

	c.JSON(http.StatusOK, ranks)
}

func (h *RankHandler) CreateRank(c *gin.Context) {
	var req struct {
		Name      string     `json:"name" binding:"required,max=255"`
		Position  int        `json:"position"`
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
	// Ranks always belong to a company.
	if companyID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company_id is required"})
		return
	}

	rank := models.Rank{
		Name:      strings.TrimSpace(req.Name),
		Position:  req.Position,
		CompanyID: *companyID,
	}
	if err := h.DB.Create(&rank).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create rank"})
		return
	}

	c.JSON(http.StatusCreated, rank)
}
