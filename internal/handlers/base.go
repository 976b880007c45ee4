package handlers

import (
	"net/http"
	"time"
	"wenda/internal/db"
	"wenda/internal/middleware"
	"wenda/internal/models"

	"github.com/gin-gonic/gin"
)

// Render 统一注入 CurrentUser / UnreadCount 等模板公共变量
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	if user, exists := c.Get(middleware.CheckUserKey); exists {
		obj["CurrentUser"] = user
		if count, ok := c.Get(middleware.UnreadCountKey); ok {
			obj["UnreadCount"] = int(count.(int64))
		} else {
			obj["UnreadCount"] = 0
		}
	}

	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

// HtmxRedirect 通过响应头让 HTMX 在前端跳转
func HtmxRedirect(c *gin.Context, path string) {
	c.Header("HX-Redirect", path)
	c.Status(http.StatusOK)
}

func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Error": message})
}

// ensureCanPost 发布/编辑前的封禁、禁言检查，禁言到期自动恢复。
// 返回 false 时错误页已经渲染
func ensureCanPost(c *gin.Context, user *models.User) bool {
	if user.Status == 2 {
		RenderError(c, http.StatusForbidden, "您的账号已被封禁，无法发布内容。")
		return false
	}
	if user.Status == 1 {
		if user.PunishExpires != nil && time.Now().After(*user.PunishExpires) {
			db.DB.Model(user).Updates(map[string]interface{}{
				"status":         0,
				"punish_expires": nil,
			})
			user.Status = 0
			return true
		}
		RenderError(c, http.StatusForbidden, "您处于禁言状态，暂时无法发布内容。")
		return false
	}
	return true
}

// currentUser 取 LoadUser 放进 context 的用户，未登录返回 nil
func currentUser(c *gin.Context) *models.User {
	if u, exists := c.Get(middleware.CheckUserKey); exists {
		return u.(*models.User)
	}
	return nil
}
