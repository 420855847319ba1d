package kafka

import (
	"context"
	"time"

	"playtube/internal/model"
)

// Publisher 把视频生命周期事件发到 Kafka，供索引消费者同步 ES
type Publisher struct {
	topic string
}

func NewPublisher(topic string) *Publisher {
	return &Publisher{topic: topic}
}

func (p *Publisher) VideoUpserted(ctx context.Context, video *model.Video, ownerName string) error {
	return SendVideoEvent(ctx, p.topic, &VideoEvent{
		Type:        VideoEventUpserted,
		VideoID:     video.ID,
		OwnerID:     video.OwnerID,
		OwnerName:   ownerName,
		Title:       video.Title,
		Description: video.Description,
		Duration:    video.Duration,
		Views:       video.Views,
		CreatedAt:   video.CreatedAt.Format(time.RFC3339),
	})
}

func (p *Publisher) VideoRemoved(ctx context.Context, videoID int64) error {
	return SendVideoEvent(ctx, p.topic, &VideoEvent{
		Type:    VideoEventRemoved,
		VideoID: videoID,
	})
}
