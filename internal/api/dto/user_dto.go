package dto

import "time"

// UserInfo 用户本人视角的完整信息（含邮箱）
type UserInfo struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	AvatarURL string    `json:"avatar_url"`
	CoverURL  *string   `json:"cover_url"`
	CreatedAt time.Time `json:"created_at"`
}

// OwnerSummary 嵌在视频/评论等资源里的作者摘要，不含邮箱
type OwnerSummary struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`
}

// ChannelProfile 频道主页信息
// 邮箱只在这个视图里对外暴露，其余作者摘要一律不带邮箱
type ChannelProfile struct {
	ID                int64   `json:"id"`
	Username          string  `json:"username"`
	Email             string  `json:"email"`
	FullName          string  `json:"full_name"`
	AvatarURL         string  `json:"avatar_url"`
	CoverURL          *string `json:"cover_url"`
	SubscribersCount  int64   `json:"subscribers_count"`
	SubscribedToCount int64   `json:"subscribed_to_count"`
	IsSubscribed      bool    `json:"is_subscribed"`
}

// UpdateAccountRequest 更新账号资料请求
type UpdateAccountRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,min=1,max=255"`
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
}

// PaginationMeta 分页元数据
type PaginationMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

// PaginatedData 带分页的数据
type PaginatedData struct {
	Items interface{}    `json:"items"`
	Meta  PaginationMeta `json:"meta"`
}

// NewPaginationMeta 根据总数计算分页元数据
func NewPaginationMeta(page, limit int, total int64) PaginationMeta {
	totalPages := int64(0)
	if limit > 0 {
		totalPages = (total + int64(limit) - 1) / int64(limit)
	}
	return PaginationMeta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
