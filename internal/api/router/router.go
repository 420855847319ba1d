package router

import (
	"playtube/internal/api/handler"
	"playtube/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// Setup 注册所有业务路由
func Setup(
	r *gin.Engine,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	videoHandler *handler.VideoHandler,
	commentHandler *handler.CommentHandler,
	likeHandler *handler.LikeHandler,
	subscriptionHandler *handler.SubscriptionHandler,
	playlistHandler *handler.PlaylistHandler,
	dashboardHandler *handler.DashboardHandler,
) {
	v1 := r.Group("/api/v1")

	// --- 用户与认证模块 ---
	users := v1.Group("/users")
	{
		users.POST("/register", authHandler.Register)
		users.POST("/login", authHandler.Login)
		users.POST("/refresh-token", authHandler.Refresh)

		// 频道主页公开可见，登录时额外返回订阅状态
		users.GET("/channel/:username", middleware.AuthOptional(), userHandler.GetChannelProfile)

		usersAuth := users.Group("", middleware.AuthRequired())
		{
			usersAuth.POST("/logout", authHandler.Logout)
			usersAuth.POST("/change-password", authHandler.ChangePassword)
			usersAuth.GET("/current-user", userHandler.Me)
			usersAuth.PATCH("/update-account", userHandler.UpdateAccount)
			usersAuth.PATCH("/avatar", userHandler.UpdateAvatar)
			usersAuth.PATCH("/cover-image", userHandler.UpdateCover)
			usersAuth.GET("/history", userHandler.GetWatchHistory)
		}
	}

	// --- 视频模块 ---
	videos := v1.Group("/videos")
	{
		// 公开接口（登录时记录观看历史、返回点赞状态）
		videos.GET("", middleware.AuthOptional(), videoHandler.List)
		videos.GET("/:id", middleware.AuthOptional(), videoHandler.GetDetail)
		videos.GET("/:id/comments", middleware.AuthOptional(), commentHandler.ListByVideo)

		videosAuth := videos.Group("", middleware.AuthRequired())
		{
			videosAuth.POST("", videoHandler.Publish)
			videosAuth.PATCH("/:id", videoHandler.Update)
			videosAuth.DELETE("/:id", videoHandler.Delete)
			videosAuth.PATCH("/:id/publish", videoHandler.TogglePublish)
			videosAuth.POST("/:id/comments", commentHandler.Create)
		}
	}

	// --- 评论模块 ---
	comments := v1.Group("/comments", middleware.AuthRequired())
	{
		comments.PATCH("/:id", commentHandler.Update)
		comments.DELETE("/:id", commentHandler.Delete)
	}

	// --- 点赞模块 ---
	likes := v1.Group("/likes", middleware.AuthRequired())
	{
		likes.POST("/video/:id", likeHandler.ToggleVideo)
		likes.POST("/comment/:id", likeHandler.ToggleComment)
		likes.GET("/videos", likeHandler.GetLikedVideos)
	}

	// --- 订阅模块 ---
	subscriptions := v1.Group("/subscriptions", middleware.AuthRequired())
	{
		subscriptions.POST("/:id", subscriptionHandler.Toggle)
		subscriptions.GET("/:id/subscribers", subscriptionHandler.GetSubscribers)
		subscriptions.GET("/:id/channels", subscriptionHandler.GetSubscribedChannels)
	}

	// --- 播放列表模块 ---
	playlists := v1.Group("/playlists")
	{
		playlists.GET("/:id", playlistHandler.GetDetail)
		playlists.GET("/user/:id", playlistHandler.GetUserPlaylists)

		playlistsAuth := playlists.Group("", middleware.AuthRequired())
		{
			playlistsAuth.POST("", playlistHandler.Create)
			playlistsAuth.PATCH("/:id", playlistHandler.Update)
			playlistsAuth.DELETE("/:id", playlistHandler.Delete)
			playlistsAuth.POST("/:id/videos/:video_id", playlistHandler.AddVideo)
			playlistsAuth.DELETE("/:id/videos/:video_id", playlistHandler.RemoveVideo)
		}
	}

	// --- 创作者后台模块 ---
	dashboard := v1.Group("/dashboard", middleware.AuthRequired())
	{
		dashboard.GET("/stats", dashboardHandler.GetStats)
		dashboard.GET("/videos", dashboardHandler.GetVideos)
	}
}
