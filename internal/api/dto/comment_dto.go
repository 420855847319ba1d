package dto

import "time"

// CommentCreateRequest 发表评论请求
type CommentCreateRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

// CommentUpdateRequest 编辑评论请求
type CommentUpdateRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

// CommentInfo 评论视图，点赞数实时计算
// IsLiked 表示当前请求用户是否点赞过这条评论，未登录恒为 false
type CommentInfo struct {
	ID         int64        `json:"id"`
	VideoID    int64        `json:"video_id"`
	Owner      OwnerSummary `json:"owner"`
	Content    string       `json:"content"`
	LikesCount int64        `json:"likes_count"`
	IsLiked    bool         `json:"is_liked"`
	CreatedAt  time.Time    `json:"created_at"`
}
