package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"playtube/internal/config"
	"playtube/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var producer *kafka.Writer

// 视频事件类型
const (
	VideoEventUpserted = "upserted" // 发布或已发布视频更新，需要写入搜索索引
	VideoEventRemoved  = "removed"  // 删除或取消发布，需要移出搜索索引
)

// VideoEvent 视频生命周期事件，驱动搜索索引同步
// Upserted 事件携带完整文档，消费者无需回查数据库
type VideoEvent struct {
	Type        string `json:"type"`
	VideoID     int64  `json:"video_id"`
	OwnerID     int64  `json:"owner_id,omitempty"`
	OwnerName   string `json:"owner_name,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Duration    int    `json:"duration,omitempty"`
	Views       int64  `json:"views,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// InitProducer 初始化 Kafka 生产者
func InitProducer(cfg *config.KafkaConfig) error {
	producer = &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	logger.Info("Kafka producer initialized",
		zap.Strings("brokers", cfg.Brokers),
	)

	return nil
}

// SendVideoEvent 发送视频事件
func SendVideoEvent(ctx context.Context, topic string, event *VideoEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal video event: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(fmt.Sprintf("video-%d", event.VideoID)),
		Value: payload,
	}

	if err := producer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send video event: %w", err)
	}

	logger.Info("Video event sent",
		zap.Int64("video_id", event.VideoID),
		zap.String("type", event.Type),
		zap.String("topic", topic),
	)

	return nil
}

// CloseProducer 关闭生产者
func CloseProducer() error {
	if producer == nil {
		return nil
	}
	logger.Info("Kafka producer closed")
	return producer.Close()
}
