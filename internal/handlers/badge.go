package handlers

import (
	"net/http"
	"wenda/internal/db"
	"wenda/internal/models"

	"github.com/gin-gonic/gin"
)

type BadgeHandler struct{}

func NewBadgeHandler() *BadgeHandler {
	return &BadgeHandler{}
}

func (h *BadgeHandler) List(c *gin.Context) {
	var badges []models.Badge
	db.DB.Order("id ASC").Find(&badges)

	Render(c, http.StatusOK, "badge/list.html", gin.H{
		"Title":  "徽章",
		"Badges": badges,
		"Active": "badges",
	})
}

// Detail 徽章详情和获得者名单
func (h *BadgeHandler) Detail(c *gin.Context) {
	slug := c.Param("slug")

	var badge models.Badge
	if err := db.DB.Where("slug = ?", slug).First(&badge).Error; err != nil {
		RenderError(c, http.StatusNotFound, "徽章不存在")
		return
	}

	var profiles []models.Profile
	db.DB.Preload("User").
		Joins("JOIN profile_badges ON profile_badges.profile_id = profiles.id").
		Where("profile_badges.badge_id = ?", badge.ID).
		Find(&profiles)

	Render(c, http.StatusOK, "badge/detail.html", gin.H{
		"Title":   badge.Name,
		"Badge":   badge,
		"Holders": profiles,
		"Active":  "badges",
	})
}
