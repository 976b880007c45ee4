package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxUploadSize 单个附件上限 10MB
const MaxUploadSize = 10 << 20

// 允许的图片扩展名
var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ImageUploadResult 上传结果
type ImageUploadResult struct {
	URL string `json:"url"` // 站内访问路径
	ID  string `json:"id"`  // 文件 ID
}

// mediaRoot 本地媒体目录，可用 MEDIA_ROOT 覆盖
func mediaRoot() string {
	if root := os.Getenv("MEDIA_ROOT"); root != "" {
		return root
	}
	return filepath.Join("web", "media")
}

// UploadImage 保存图片到本地媒体目录，文件名用 uuid 防冲突
func UploadImage(file multipart.File, header *multipart.FileHeader) (*ImageUploadResult, error) {
	if header.Size > MaxUploadSize {
		return nil, fmt.Errorf("文件超过 %dMB 限制", MaxUploadSize>>20)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExts[ext] {
		return nil, fmt.Errorf("不支持的图片格式: %s", ext)
	}

	id := uuid.NewString()
	dir := filepath.Join(mediaRoot(), "uploads")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("创建媒体目录失败: %w", err)
	}

	dst, err := os.Create(filepath.Join(dir, id+ext))
	if err != nil {
		return nil, fmt.Errorf("创建文件失败: %w", err)
	}
	defer dst.Close()

	// 再兜一层大小限制，防止 header.Size 不可信
	if _, err := io.Copy(dst, io.LimitReader(file, MaxUploadSize+1)); err != nil {
		return nil, fmt.Errorf("写入文件失败: %w", err)
	}
	if info, err := dst.Stat(); err == nil && info.Size() > MaxUploadSize {
		os.Remove(dst.Name())
		return nil, fmt.Errorf("文件超过 %dMB 限制", MaxUploadSize>>20)
	}

	return &ImageUploadResult{
		URL: fmt.Sprintf("/media/uploads/%s%s", id, ext),
		ID:  id,
	}, nil
}
