package handlers

import (
	"fmt"
	"html/template"
	"math"
	"net/http"
	"strconv"
	"time"
	"wenda/internal/db"
	"wenda/internal/middleware"
	"wenda/internal/models"
	"wenda/internal/services"
	"wenda/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type QuestionHandler struct {
	mailService *services.MailService
}

func NewQuestionHandler() *QuestionHandler {
	return &QuestionHandler{
		mailService: services.NewMailService(),
	}
}

// fillAnswerCounts 批量填充问题的回答数量
func fillAnswerCounts(questions []models.Question) {
	if len(questions) == 0 {
		return
	}

	questionIDs := make([]uint, len(questions))
	for i, q := range questions {
		questionIDs[i] = q.ID
	}

	type CountResult struct {
		QuestionID uint
		Count      int
	}
	var results []CountResult
	db.DB.Model(&models.Answer{}).
		Select("question_id, COUNT(*) as count").
		Where("question_id IN ?", questionIDs).
		Group("question_id").
		Scan(&results)

	countMap := make(map[uint]int)
	for _, r := range results {
		countMap[r.QuestionID] = r.Count
	}

	for i := range questions {
		questions[i].AnswerCount = countMap[questions[i].ID]
	}
}

// CommentView 详情页用的两级评论树节点
type CommentView struct {
	models.Comment
	ContentHTML template.HTML
	Children    []CommentView
}

// buildCommentTree 把直接评论和它们的子评论组装成两级树
func buildCommentTree(kind models.TargetKind, id uint) []CommentView {
	var direct []models.Comment
	db.DB.Preload("User").
		Where("target_kind = ? AND target_id = ?", kind, id).
		Order("created_at ASC").
		Find(&direct)

	if len(direct) == 0 {
		return nil
	}

	directIDs := make([]uint, len(direct))
	for i, com := range direct {
		directIDs[i] = com.ID
	}

	var children []models.Comment
	db.DB.Preload("User").
		Where("target_kind = ? AND target_id IN ?", models.TargetComment, directIDs).
		Order("created_at ASC").
		Find(&children)

	childMap := make(map[uint][]CommentView)
	for _, com := range children {
		childMap[com.TargetID] = append(childMap[com.TargetID], CommentView{
			Comment:     com,
			ContentHTML: utils.RenderMarkdown(com.Content),
		})
	}

	tree := make([]CommentView, len(direct))
	for i, com := range direct {
		tree[i] = CommentView{
			Comment:     com,
			ContentHTML: utils.RenderMarkdown(com.Content),
			Children:    childMap[com.ID],
		}
	}
	return tree
}

// AnswerView 详情页回答 + 其评论树
type AnswerView struct {
	models.Answer
	ContentHTML template.HTML
	Comments    []CommentView
	UpvoteCount int64
}

func (h *QuestionHandler) ListNewest(c *gin.Context) {
	page := 1
	if p := c.Query("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			page = pageNum
		}
	}

	cacheKey := fmt.Sprintf("question:newest:page:%d", page)
	if cachedData := utils.GetCache().Get(cacheKey); cachedData != nil {
		if hData, ok := cachedData.(gin.H); ok {
			Render(c, http.StatusOK, "question/list.html", hData)
			return
		}
	}

	perPage := 30
	offset := (page - 1) * perPage

	var total int64
	db.DB.Model(&models.Question{}).Count(&total)

	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	if totalPages == 0 {
		totalPages = 1
	}

	var questions []models.Question
	db.DB.Preload("User").Preload("Tags").
		Order("created_at DESC").
		Limit(perPage).
		Offset(offset).
		Find(&questions)

	fillAnswerCounts(questions)

	// 标签列表用于侧边栏导航
	var tags []models.Tag
	db.DB.Order("id ASC").Find(&tags)

	renderData := gin.H{
		"Questions":   questions,
		"Tags":        tags,
		"Active":      "newest",
		"Title":       "最新问题",
		"CurrentPage": page,
		"TotalPages":  totalPages,
	}

	// 列表页缓存 1 分钟
	utils.GetCache().Set(cacheKey, renderData, 1*time.Minute)

	Render(c, http.StatusOK, "question/list.html", renderData)
}

func (h *QuestionHandler) Search(c *gin.Context) {
	query := c.Query("q")

	var questions []models.Question
	if query != "" {
		searchPattern := "%" + query + "%"
		db.DB.Preload("User").Preload("Tags").
			Where("title ILIKE ? OR body ILIKE ?", searchPattern, searchPattern).
			Order("created_at DESC").
			Limit(50).
			Find(&questions)
	}

	fillAnswerCounts(questions)

	Render(c, http.StatusOK, "search.html", gin.H{
		"Questions": questions,
		"Query":     query,
		"Active":    "search",
		"Title":     "搜索 - " + query,
	})
}

func (h *QuestionHandler) Detail(c *gin.Context) {
	qid := c.Param("qid")

	var question models.Question
	if err := db.DB.Preload("User").Preload("Tags").Where("qid = ?", qid).First(&question).Error; err != nil {
		RenderError(c, http.StatusNotFound, "问题不存在")
		return
	}

	// 增加浏览量
	db.DB.Model(&question).UpdateColumn("views", gorm.Expr("views + 1"))
	question.Views++

	// 回答按采纳优先、时间正序
	var answers []models.Answer
	db.DB.Preload("User").
		Where("question_id = ?", question.ID).
		Order("is_accepted DESC, created_at ASC").
		Find(&answers)

	answerViews := make([]AnswerView, len(answers))
	for i, ans := range answers {
		var upvotes int64
		db.DB.Model(&models.Vote{}).
			Where("target_kind = ? AND target_id = ? AND value = 1", models.TargetAnswer, ans.ID).
			Count(&upvotes)
		answerViews[i] = AnswerView{
			Answer:      ans,
			ContentHTML: utils.RenderMarkdown(ans.Content),
			Comments:    buildCommentTree(models.TargetAnswer, ans.ID),
			UpvoteCount: upvotes,
		}
	}

	var upvoteCount int64
	db.DB.Model(&models.Vote{}).
		Where("target_kind = ? AND target_id = ? AND value = 1", models.TargetQuestion, question.ID).
		Count(&upvoteCount)

	var downvoteCount int64
	db.DB.Model(&models.Vote{}).
		Where("target_kind = ? AND target_id = ? AND value = -1", models.TargetQuestion, question.ID).
		Count(&downvoteCount)

	Render(c, http.StatusOK, "question/detail.html", gin.H{
		"Question":      question,
		"QuestionBody":  utils.RenderMarkdown(question.Body),
		"Answers":       answerViews,
		"Comments":      buildCommentTree(models.TargetQuestion, question.ID),
		"Title":         question.Title,
		"UpvoteCount":   upvoteCount,
		"DownvoteCount": downvoteCount,
	})
}

func (h *QuestionHandler) ShowCreate(c *gin.Context) {
	var tags []models.Tag
	db.DB.Order("id ASC").Find(&tags)

	Render(c, http.StatusOK, "question/create.html", gin.H{
		"Title": "提问",
		"Tags":  tags,
	})
}

func (h *QuestionHandler) Create(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	if !ensureCanPost(c, user) {
		return
	}

	var form QuestionForm
	if err := bindAndValidate(&form, c.ShouldBind); err != nil {
		var tags []models.Tag
		db.DB.Order("id ASC").Find(&tags)
		Render(c, http.StatusBadRequest, "question/create.html", gin.H{
			"Error": "标题或内容不符合要求",
			"Tags":  tags,
		})
		return
	}

	question := models.Question{
		Qid:    utils.RandStringBytesMaskImpr(8),
		UserID: user.ID,
		Title:  form.Title,
		Body:   form.Body,
	}

	if len(form.Tags) > 0 {
		var tags []models.Tag
		db.DB.Where("id IN ?", form.Tags).Find(&tags)
		question.Tags = tags
	}

	if err := db.DB.Create(&question).Error; err != nil {
		var tags []models.Tag
		db.DB.Order("id ASC").Find(&tags)
		Render(c, http.StatusInternalServerError, "question/create.html", gin.H{
			"Error": "发布失败",
			"Tags":  tags,
		})
		return
	}

	utils.GetCache().Delete("question:newest:page:1")

	c.Redirect(http.StatusFound, "/q/"+question.Qid)
}

func (h *QuestionHandler) ShowEdit(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	qid := c.Param("qid")

	var question models.Question
	if err := db.DB.Preload("Tags").Where("qid = ?", qid).First(&question).Error; err != nil {
		RenderError(c, http.StatusNotFound, "问题不存在")
		return
	}

	if err := services.AuthorizeMutation(&question, user); err != nil {
		RenderError(c, http.StatusForbidden, "无权编辑此问题")
		return
	}

	var tags []models.Tag
	db.DB.Order("id ASC").Find(&tags)

	Render(c, http.StatusOK, "question/edit.html", gin.H{
		"Title":    "编辑问题",
		"Question": question,
		"Tags":     tags,
	})
}

func (h *QuestionHandler) Update(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	qid := c.Param("qid")

	var question models.Question
	if err := db.DB.Where("qid = ?", qid).First(&question).Error; err != nil {
		RenderError(c, http.StatusNotFound, "问题不存在")
		return
	}

	if err := services.AuthorizeMutation(&question, user); err != nil {
		RenderError(c, http.StatusForbidden, "无权编辑此问题")
		return
	}
	// 禁言中同样不能借编辑改旧问题
	if !ensureCanPost(c, user) {
		return
	}

	var form QuestionForm
	if err := bindAndValidate(&form, c.ShouldBind); err != nil {
		var tags []models.Tag
		db.DB.Order("id ASC").Find(&tags)
		Render(c, http.StatusBadRequest, "question/edit.html", gin.H{
			"Error":    "标题或内容不符合要求",
			"Question": question,
			"Tags":     tags,
		})
		return
	}

	question.Title = form.Title
	question.Body = form.Body

	if err := db.DB.Save(&question).Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "保存失败")
		return
	}

	// 标签整体替换
	var tags []models.Tag
	if len(form.Tags) > 0 {
		db.DB.Where("id IN ?", form.Tags).Find(&tags)
	}
	db.DB.Model(&question).Association("Tags").Replace(tags)

	c.Redirect(http.StatusFound, "/q/"+qid)
}

// Delete 删除问题及其全部回答、评论和投票
func (h *QuestionHandler) Delete(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	qid := c.Param("qid")

	var question models.Question
	if err := db.DB.Where("qid = ?", qid).First(&question).Error; err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	if err := services.AuthorizeMutation(&question, user); err != nil {
		c.Status(http.StatusForbidden)
		return
	}

	if err := services.CascadeDeleteQuestion(question.ID); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	utils.GetCache().Delete("question:newest:page:1")

	HtmxRedirect(c, "/")
}
