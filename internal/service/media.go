package service

import (
	"context"
	"io"

	"playtube/pkg/logger"

	"go.uber.org/zap"
)

// MediaFile 待上传的媒体文件（由 handler 层从 multipart 表单解析）
type MediaFile struct {
	Filename    string
	Size        int64
	ContentType string
	Reader      io.Reader
}

// MediaStore 媒体对象存储
// Upload 返回公开访问 URL 和对象键，对象键用于后续删除
type MediaStore interface {
	Upload(ctx context.Context, folder, filename string, reader io.Reader, size int64, contentType string) (string, string, error)
	Remove(ctx context.Context, objectKey string) error
}

// 媒体目录
const (
	FolderAvatars    = "avatars"
	FolderCovers     = "covers"
	FolderVideos     = "videos"
	FolderThumbnails = "thumbnails"
)

// removeQuietly 清理对象，失败只记日志（主流程已成功或已失败，清理不改变结果）
func removeQuietly(ctx context.Context, media MediaStore, objectKey string) {
	if objectKey == "" {
		return
	}
	if err := media.Remove(ctx, objectKey); err != nil {
		logger.Warn("Failed to remove media object", zap.String("key", objectKey), zap.Error(err))
	}
}
