package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"wenda/internal/db"
	"wenda/internal/models"

	"github.com/gin-gonic/gin"
)

type APIHandler struct{}

func NewAPIHandler() *APIHandler {
	return &APIHandler{}
}

const (
	apiDefaultPageSize = 10
	apiMaxPageSize     = 50
)

// questionJSON API 输出结构，不直接暴露模型
type questionJSON struct {
	Qid         string   `json:"qid"`
	Title       string   `json:"title"`
	Body        string   `json:"body"`
	Author      string   `json:"author"`
	Tags        []string `json:"tags"`
	Views       int      `json:"views"`
	AnswerCount int      `json:"answer_count"`
	CreatedAt   string   `json:"created_at"`
}

// pageLink 生成翻页链接，越界返回 nil
func pageLink(c *gin.Context, page, totalPages int) *string {
	if page < 1 || page > totalPages {
		return nil
	}
	q := url.Values{}
	for k, vs := range c.Request.URL.Query() {
		if k == "page" {
			continue
		}
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set("page", strconv.Itoa(page))
	link := c.Request.URL.Path + "?" + q.Encode()
	return &link
}

// ListQuestions GET /api/questions 问题列表，支持搜索和按标签过滤
func (h *APIHandler) ListQuestions(c *gin.Context) {
	page := 1
	if p := c.Query("page"); p != "" {
		if n, err := strconv.Atoi(p); err == nil && n > 0 {
			page = n
		}
	}

	pageSize := apiDefaultPageSize
	if ps := c.Query("page_size"); ps != "" {
		if n, err := strconv.Atoi(ps); err == nil && n > 0 {
			pageSize = n
		}
	}
	if pageSize > apiMaxPageSize {
		pageSize = apiMaxPageSize
	}

	query := db.DB.Model(&models.Question{}).Preload("User").Preload("Tags")

	// search 为标准参数，q 作为别名保留
	search := c.Query("search")
	if search == "" {
		search = c.Query("q")
	}
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("LOWER(title) LIKE LOWER(?) OR LOWER(body) LIKE LOWER(?)", pattern, pattern)
	}

	// tag 参数可重复，取并集。子查询避免 JOIN 带来的重复行
	if tagSlugs := c.QueryArray("tag"); len(tagSlugs) > 0 {
		sub := db.DB.Table("question_tags").
			Select("question_tags.question_id").
			Joins("JOIN tags ON tags.id = question_tags.tag_id").
			Where("tags.slug IN ?", tagSlugs)
		query = query.Where("questions.id IN (?)", sub)
	}

	var total int64
	query.Count(&total)

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if totalPages == 0 {
		totalPages = 1
	}

	var questions []models.Question
	query.Order("questions.created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&questions)

	fillAnswerCounts(questions)

	results := make([]questionJSON, len(questions))
	for i, q := range questions {
		tagNames := make([]string, len(q.Tags))
		for j, t := range q.Tags {
			tagNames[j] = t.Name
		}
		results[i] = questionJSON{
			Qid:         q.Qid,
			Title:       q.Title,
			Body:        q.Body,
			Author:      q.User.Username,
			Tags:        tagNames,
			Views:       q.Views,
			AnswerCount: q.AnswerCount,
			CreatedAt:   q.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"count":     total,
		"next":      pageLink(c, page+1, totalPages),
		"previous":  pageLink(c, page-1, totalPages),
		"results":   results,
		"page_size": pageSize,
	})
}

// GetQuestion GET /api/questions/:qid 单个问题详情
func (h *APIHandler) GetQuestion(c *gin.Context) {
	qid := c.Param("qid")

	var question models.Question
	if err := db.DB.Preload("User").Preload("Tags").Where("qid = ?", qid).First(&question).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("question %s not found", qid)})
		return
	}

	var answerCount int64
	db.DB.Model(&models.Answer{}).Where("question_id = ?", question.ID).Count(&answerCount)
	question.AnswerCount = int(answerCount)

	tagNames := make([]string, len(question.Tags))
	for i, t := range question.Tags {
		tagNames[i] = t.Name
	}

	c.JSON(http.StatusOK, questionJSON{
		Qid:         question.Qid,
		Title:       question.Title,
		Body:        question.Body,
		Author:      question.User.Username,
		Tags:        tagNames,
		Views:       question.Views,
		AnswerCount: question.AnswerCount,
		CreatedAt:   question.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}
