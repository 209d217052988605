package handlers

import (
	"content-admin/contents"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentActor reads the admin user set by AuthMiddleware.
func currentActor(c *gin.Context) contents.Actor {
	var actor contents.Actor
	if id, ok := c.Get("user_id"); ok {
		actor.UserID, _ = id.(uuid.UUID)
	}
	actor.Role = c.GetString("user_role")
	if v, ok := c.Get("company_id"); ok {
		if companyID, ok := v.(uuid.UUID); ok {
			actor.CompanyID = &companyID
		}
	}
	return actor
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	return id, err == nil
}
