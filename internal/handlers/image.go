package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"wenda/internal/services"

	"github.com/gin-gonic/gin"
)

// ImageHandler 图片上传 Handler
type ImageHandler struct{}

func NewImageHandler() *ImageHandler {
	return &ImageHandler{}
}

// Upload 处理图片上传请求 (POST /api/upload)
// 需要用户已登录
func (h *ImageHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "请选择要上传的图片",
		})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "只允许上传图片文件",
		})
		return
	}

	if header.Size > services.MaxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "图片大小不能超过 10MB",
		})
		return
	}

	result, err := services.UploadImage(file, header)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   fmt.Sprintf("上传失败: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"url":     result.URL,
		"id":      result.ID,
	})
}
