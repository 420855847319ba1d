package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"playtube/internal/config"
	"playtube/internal/infra/database"
	infraES "playtube/internal/infra/elasticsearch"
	infraKafka "playtube/internal/infra/kafka"
	"playtube/internal/repository"
	"playtube/pkg/logger"

	"go.uber.org/zap"
)

// 搜索索引同步器：消费视频事件，把已发布视频写入/移出 Elasticsearch。
// -reindex 启动时先全量重建一遍索引（索引丢失或长时间停机后使用）。
func main() {
	reindex := flag.Bool("reindex", false, "rebuild the whole videos index from the database before consuming")
	flag.Parse()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.FilePath); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	if err := infraES.Init(&cfg.Elasticsearch); err != nil {
		logger.Fatal("Failed to init elasticsearch", zap.Error(err))
	}
	defer infraES.Close()

	if err := infraES.InitIndexes(); err != nil {
		logger.Fatal("Failed to init elasticsearch indexes", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 监听系统信号，优雅退出
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("Received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	}()

	videoRepo := repository.NewVideoRepository(database.Get())

	if *reindex {
		if err := reindexAll(ctx, videoRepo); err != nil {
			logger.Fatal("Full reindex failed", zap.Error(err))
		}
	}

	topic := cfg.Kafka.Topics["video_events"]
	if topic == "" {
		logger.Fatal("Kafka topic video_events is not configured")
	}

	infraKafka.StartVideoEventConsumer(ctx, cfg.Kafka.Brokers, topic, "playtube-indexer", handleEvent)
}

// handleEvent 把视频事件应用到搜索索引
func handleEvent(event *infraKafka.VideoEvent) error {
	ctx := context.Background()

	switch event.Type {
	case infraKafka.VideoEventUpserted:
		return infraES.SyncVideo(ctx, &infraES.ESVideoDoc{
			ID:          event.VideoID,
			OwnerID:     event.OwnerID,
			OwnerName:   event.OwnerName,
			Title:       event.Title,
			Description: event.Description,
			Views:       event.Views,
			Duration:    event.Duration,
			CreatedAt:   event.CreatedAt,
		})
	case infraKafka.VideoEventRemoved:
		return infraES.DeleteVideo(ctx, event.VideoID)
	default:
		logger.Warn("Unknown video event type", zap.String("type", event.Type))
		return nil
	}
}

// reindexAll 从数据库分页拉取全部已发布视频，批量写入索引
func reindexAll(ctx context.Context, videoRepo *repository.VideoRepository) error {
	const batchSize = 500

	total := 0
	for skip := 0; ; skip += batchSize {
		videos, _, err := videoRepo.List(skip, batchSize, repository.ListFilter{PublishedOnly: true})
		if err != nil {
			return err
		}
		if len(videos) == 0 {
			break
		}

		docs := make([]*infraES.ESVideoDoc, 0, len(videos))
		for i := range videos {
			docs = append(docs, infraES.VideoToDoc(&videos[i], videos[i].Owner.Username))
		}

		success, failed, err := infraES.BulkSyncVideos(ctx, docs)
		if err != nil {
			return err
		}
		total += success
		if failed > 0 {
			logger.Warn("Some documents failed to index", zap.Int("failed", failed))
		}
	}

	logger.Info("Full reindex completed", zap.Int("indexed", total))
	return nil
}
