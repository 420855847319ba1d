package dto

import "time"

// VideoInfo 视频列表项
type VideoInfo struct {
	ID           int64        `json:"id"`
	Owner        OwnerSummary `json:"owner"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	ThumbnailURL string       `json:"thumbnail_url"`
	Duration     int          `json:"duration"`
	Views        int64        `json:"views"`
	IsPublished  bool         `json:"is_published"`
	CreatedAt    time.Time    `json:"created_at"`
}

// ChannelSummary 视频详情里的作者信息（摘要 + 订阅状态）
type ChannelSummary struct {
	OwnerSummary
	SubscribersCount int64 `json:"subscribers_count"`
	IsSubscribed     bool  `json:"is_subscribed"`
}

// VideoDetail 视频详情（含播放地址与点赞信息）
// Owner 覆盖 VideoInfo 里的作者摘要，序列化时以这里的为准
type VideoDetail struct {
	VideoInfo
	Owner      ChannelSummary `json:"owner"`
	VideoURL   string         `json:"video_url"`
	LikesCount int64          `json:"likes_count"`
	IsLiked    bool           `json:"is_liked"`
}

// VideoPublishRequest 视频发布请求（multipart 表单，视频与封面文件在 handler 层解析）
type VideoPublishRequest struct {
	Title       string `form:"title" binding:"required,min=1,max=200"`
	Description string `form:"description" binding:"max=5000"`
	Duration    int    `form:"duration" binding:"omitempty,min=0"`
}

// VideoUpdateRequest 视频信息更新请求（封面文件可选，在 handler 层解析）
type VideoUpdateRequest struct {
	Title       *string `form:"title" binding:"omitempty,min=1,max=200"`
	Description *string `form:"description" binding:"omitempty,max=5000"`
}

// VideoListQuery 视频列表查询参数
type VideoListQuery struct {
	Query    string `form:"query"`
	OwnerID  *int64 `form:"user_id"`
	SortBy   string `form:"sort_by"`
	SortType string `form:"sort_type"`
}

// ToggleResult 点赞/订阅等开关操作的结果
type ToggleResult struct {
	Active bool `json:"active"`
}
