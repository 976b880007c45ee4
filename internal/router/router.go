package router

import (
	"wenda/internal/handlers"
	"wenda/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	questionHandler := handlers.NewQuestionHandler()
	answerHandler := handlers.NewAnswerHandler()
	commentHandler := handlers.NewCommentHandler()
	voteHandler := handlers.NewVoteHandler()
	userHandler := handlers.NewUserHandler()
	tagHandler := handlers.NewTagHandler()
	badgeHandler := handlers.NewBadgeHandler()
	notificationHandler := handlers.NewNotificationHandler()
	adminHandler := handlers.NewAdminHandler()
	apiHandler := handlers.NewAPIHandler()
	imageHandler := handlers.NewImageHandler()

	// 公共路由 (Public Routes)
	r.GET("/", questionHandler.ListNewest)      // 首页 - 最新问题
	r.GET("/search", questionHandler.Search)    // 搜索页面
	r.GET("/q/:qid", questionHandler.Detail)    // 问题详情页
	r.GET("/tags", tagHandler.List)             // 标签列表
	r.GET("/t/:slug", tagHandler.Questions)     // 标签下的问题列表
	r.GET("/badges", badgeHandler.List)         // 徽章列表
	r.GET("/badges/:slug", badgeHandler.Detail) // 徽章详情
	r.GET("/u/:id", userHandler.Profile)        // 用户主页

	r.GET("/signup", authHandler.ShowRegister)   // 注册页面
	r.POST("/signup", authHandler.Register)      // 提交注册
	r.GET("/activate", authHandler.ShowActivate) // 激活页面
	r.POST("/activate", authHandler.Activate)    // 提交激活码
	r.GET("/login", authHandler.ShowLogin)       // 登录页面
	r.POST("/login", authHandler.Login)          // 提交登录
	r.GET("/logout", authHandler.Logout)         // 退出登录
	r.GET("/forgot-password", authHandler.ShowForgotPassword)
	r.POST("/forgot-password", authHandler.ForgotPassword)
	r.GET("/reset-password", authHandler.ShowResetPassword)
	r.POST("/reset-password", authHandler.ResetPassword)
	r.GET("/captcha/refresh", authHandler.RefreshCaptcha)

	// JSON API
	api := r.Group("/api")
	{
		api.GET("/questions", apiHandler.ListQuestions)
		api.GET("/questions/:qid", apiHandler.GetQuestion)
	}

	// 受保护路由 (Protected Routes)
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/ask", questionHandler.ShowCreate) // 提问页面
		authorized.POST("/ask", questionHandler.Create)    // 提交问题
		authorized.GET("/q/:qid/edit", questionHandler.ShowEdit)
		authorized.POST("/q/:qid/edit", questionHandler.Update)
		authorized.DELETE("/q/:qid", questionHandler.Delete)

		authorized.POST("/q/:qid/answer", answerHandler.Create) // 发布回答
		authorized.GET("/a/:aid/edit", answerHandler.ShowEdit)
		authorized.POST("/a/:aid/edit", answerHandler.Update)
		authorized.DELETE("/a/:aid", answerHandler.Delete)
		authorized.POST("/a/:aid/accept", answerHandler.Accept) // 采纳回答

		authorized.POST("/comment", commentHandler.Create) // 发表评论（目标用表单指定）
		authorized.POST("/comment/:cid/edit", commentHandler.Update)
		authorized.DELETE("/comment/:cid", commentHandler.Delete)

		authorized.POST("/vote/:kind/:id", voteHandler.Upvote)        // 点赞
		authorized.POST("/vote/:kind/:id/down", voteHandler.Downvote) // 点踩
		authorized.DELETE("/vote/:kind/:id", voteHandler.Unvote)      // 撤票

		authorized.GET("/notifications", notificationHandler.List)
		authorized.POST("/notifications/:id/read", notificationHandler.Read)
		authorized.DELETE("/notifications/:id", notificationHandler.Delete)
		authorized.POST("/notifications/read-all", notificationHandler.ReadAll)

		authorized.GET("/settings", userHandler.ShowSettings)
		authorized.POST("/settings", userHandler.UpdateSettings)
		authorized.POST("/settings/password", userHandler.ChangePassword)

		authorized.POST("/api/upload", imageHandler.Upload) // 图片上传
	}

	// 管理面板路由 (Staff Routes)
	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.StaffRequired())
	{
		admin.GET("", adminHandler.Dashboard)
		admin.GET("/users", adminHandler.ListUsers)
		admin.POST("/users/:id/groups", adminHandler.AddToGroup)
		admin.DELETE("/users/:id/groups", adminHandler.RemoveFromGroup)
		admin.POST("/users/:id/punish", adminHandler.PunishUser)
		admin.DELETE("/q/:qid", adminHandler.DeleteQuestion)

		admin.GET("/tags", adminHandler.ListTags)
		admin.POST("/tags", adminHandler.CreateTag)
		admin.POST("/tags/:id", adminHandler.UpdateTag)
		admin.DELETE("/tags/:id", adminHandler.DeleteTag)

		admin.GET("/badges", adminHandler.ListBadges)
		admin.POST("/badges", adminHandler.CreateBadge)
		admin.DELETE("/badges/:id", adminHandler.DeleteBadge)
		admin.POST("/badges/award", adminHandler.AwardBadge)
		admin.POST("/badges/revoke", adminHandler.RevokeBadge)
	}
}
