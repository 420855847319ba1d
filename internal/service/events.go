package service

import (
	"context"

	"playtube/internal/model"
)

// VideoEventPublisher 视频生命周期事件发布器，驱动搜索索引异步同步
// 发布失败不影响主流程，由调用方记录日志
type VideoEventPublisher interface {
	// VideoUpserted 视频发布或已发布视频内容变更
	VideoUpserted(ctx context.Context, video *model.Video, ownerName string) error
	// VideoRemoved 视频删除或取消发布
	VideoRemoved(ctx context.Context, videoID int64) error
}

// NopEventPublisher 空实现（事件通道未启用时使用）
type NopEventPublisher struct{}

func (NopEventPublisher) VideoUpserted(context.Context, *model.Video, string) error { return nil }
func (NopEventPublisher) VideoRemoved(context.Context, int64) error                 { return nil }
