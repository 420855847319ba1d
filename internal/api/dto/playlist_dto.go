package dto

import "time"

// PlaylistCreateRequest 创建播放列表请求
type PlaylistCreateRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"required,max=5000"`
}

// PlaylistUpdateRequest 更新播放列表请求
type PlaylistUpdateRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
}

// PlaylistInfo 播放列表概要，统计只计已发布视频
type PlaylistInfo struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	TotalVideos int64     `json:"total_videos"`
	TotalViews  int64     `json:"total_views"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PlaylistDetail 播放列表详情，videos 按加入顺序排列且只含已发布视频
type PlaylistDetail struct {
	PlaylistInfo
	Owner  OwnerSummary `json:"owner"`
	Videos []VideoInfo  `json:"videos"`
}
