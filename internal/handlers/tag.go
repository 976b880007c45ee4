package handlers

import (
	"math"
	"net/http"
	"strconv"
	"wenda/internal/db"
	"wenda/internal/models"

	"github.com/gin-gonic/gin"
)

type TagHandler struct{}

func NewTagHandler() *TagHandler {
	return &TagHandler{}
}

// List 全部标签及各自的问题数
func (h *TagHandler) List(c *gin.Context) {
	var tags []models.Tag
	db.DB.Order("name ASC").Find(&tags)

	type TagWithCount struct {
		models.Tag
		QuestionCount int64
	}

	tagViews := make([]TagWithCount, len(tags))
	for i, tag := range tags {
		var count int64
		db.DB.Table("question_tags").Where("tag_id = ?", tag.ID).Count(&count)
		tagViews[i] = TagWithCount{Tag: tag, QuestionCount: count}
	}

	Render(c, http.StatusOK, "tag/list.html", gin.H{
		"Title":  "标签",
		"Tags":   tagViews,
		"Active": "tags",
	})
}

// Questions 某标签下的问题列表
func (h *TagHandler) Questions(c *gin.Context) {
	slug := c.Param("slug")

	var tag models.Tag
	if err := db.DB.Where("slug = ?", slug).First(&tag).Error; err != nil {
		RenderError(c, http.StatusNotFound, "标签不存在")
		return
	}

	page := 1
	if p := c.Query("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			page = pageNum
		}
	}

	perPage := 30
	offset := (page - 1) * perPage

	var total int64
	db.DB.Table("question_tags").Where("tag_id = ?", tag.ID).Count(&total)

	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	if totalPages == 0 {
		totalPages = 1
	}

	var questions []models.Question
	db.DB.Preload("User").Preload("Tags").
		Joins("JOIN question_tags ON question_tags.question_id = questions.id").
		Where("question_tags.tag_id = ?", tag.ID).
		Order("questions.created_at DESC").
		Limit(perPage).
		Offset(offset).
		Find(&questions)

	fillAnswerCounts(questions)

	Render(c, http.StatusOK, "question/list.html", gin.H{
		"Questions":   questions,
		"Tag":         tag,
		"Active":      "tag",
		"Title":       tag.Name,
		"CurrentPage": page,
		"TotalPages":  totalPages,
	})
}
