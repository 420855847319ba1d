package main

import (
	"fmt"
	"net/http"
	"time"

	"playtube/internal/api/handler"
	"playtube/internal/api/middleware"
	"playtube/internal/api/router"
	"playtube/internal/config"
	"playtube/internal/infra/database"
	infraES "playtube/internal/infra/elasticsearch"
	infraKafka "playtube/internal/infra/kafka"
	infraMinio "playtube/internal/infra/minio"
	infraRedis "playtube/internal/infra/redis"
	"playtube/internal/model"
	"playtube/internal/repository"
	"playtube/internal/service"
	"playtube/internal/session"
	"playtube/pkg/logger"

	_ "playtube/api/openapi"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title PlayTube API
// @version 1.0
// @description 视频托管平台 API 服务

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host 127.0.0.1:8000
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 输入格式: Bearer {token}

func main() {
	// 加载配置文件
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 初始化日志系统
	if err := logger.Init(
		cfg.Log.Level,
		cfg.Log.Format,
		cfg.Log.Output,
		cfg.Log.FilePath,
	); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	// 初始化数据库
	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	// 自动迁移数据库表
	if err := database.AutoMigrate(
		&model.User{},
		&model.Video{},
		&model.Comment{},
		&model.Like{},
		&model.Subscription{},
		&model.Playlist{},
		&model.PlaylistVideo{},
		&model.WatchHistory{},
	); err != nil {
		logger.Fatal("Failed to auto migrate", zap.Error(err))
	}

	// 初始化Redis（刷新令牌会话存储）
	if err := infraRedis.Init(&cfg.Redis); err != nil {
		logger.Fatal("Failed to init redis", zap.Error(err))
	}
	defer infraRedis.Close()

	// 初始化MinIO（媒体对象存储）
	if err := infraMinio.Init(&cfg.MinIO); err != nil {
		logger.Fatal("Failed to init minio", zap.Error(err))
	}

	// 初始化Kafka生产者（视频事件）
	if err := infraKafka.InitProducer(&cfg.Kafka); err != nil {
		logger.Fatal("Failed to init kafka producer", zap.Error(err))
	}
	defer infraKafka.CloseProducer()

	// 初始化 Elasticsearch（可选，失败则搜索降级到 DB）
	if err := infraES.Init(&cfg.Elasticsearch); err != nil {
		logger.Warn("Elasticsearch init failed, search will fallback to DB", zap.Error(err))
	} else {
		defer infraES.Close()
		if err := infraES.InitIndexes(); err != nil {
			logger.Warn("Elasticsearch index init failed", zap.Error(err))
		}
	}

	// 设置Gin模式
	gin.SetMode(cfg.App.Mode)

	// 创建Gin路由器（不使用默认中间件）
	r := gin.New()

	// 使用自定义中间件
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())

	// 初始化依赖（Repository -> Service -> Handler）
	db := database.Get()
	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)
	historyRepo := repository.NewWatchHistoryRepository(db)

	sessionStore := session.NewRedisStore(infraRedis.Get())
	mediaStore := infraMinio.NewObjectStore(&cfg.MinIO)

	var events service.VideoEventPublisher = service.NopEventPublisher{}
	if topic, ok := cfg.Kafka.Topics["video_events"]; ok {
		events = infraKafka.NewPublisher(topic)
	}

	authService := service.NewAuthService(userRepo, sessionStore, mediaStore)
	userService := service.NewUserService(userRepo, subRepo, videoRepo, historyRepo, mediaStore)
	videoService := service.NewVideoService(videoRepo, likeRepo, subRepo, historyRepo, mediaStore, events)
	commentService := service.NewCommentService(commentRepo, videoRepo, likeRepo)
	likeService := service.NewLikeService(likeRepo, videoRepo, commentRepo)
	subService := service.NewSubscriptionService(subRepo, userRepo)
	playlistService := service.NewPlaylistService(playlistRepo, videoRepo)
	dashboardService := service.NewDashboardService(videoRepo, likeRepo, subRepo, userRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	videoHandler := handler.NewVideoHandler(videoService)
	commentHandler := handler.NewCommentHandler(commentService)
	likeHandler := handler.NewLikeHandler(likeService)
	subscriptionHandler := handler.NewSubscriptionHandler(subService)
	playlistHandler := handler.NewPlaylistHandler(playlistService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	// 注册基础路由
	r.GET("/healthz", healthCheckHandler)

	// Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册业务路由
	router.Setup(r, authHandler, userHandler, videoHandler, commentHandler,
		likeHandler, subscriptionHandler, playlistHandler, dashboardHandler)

	// 启动服务器
	addr := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("Starting application",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("mode", cfg.App.Mode),
		zap.String("addr", addr),
	)
	logger.Info("Configuration loaded",
		zap.String("database", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)),
		zap.String("redis", cfg.Redis.Addr()),
		zap.String("minio", cfg.MinIO.Endpoint),
	)

	if err := r.Run(addr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

// healthCheckHandler 健康检查接口
func healthCheckHandler(c *gin.Context) {
	cfg := config.Get()

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   cfg.App.Name,
		"version":   cfg.App.Version,
		"mode":      cfg.App.Mode,
	})
}
