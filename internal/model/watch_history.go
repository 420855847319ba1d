package model

import "time"

// WatchHistory 观看历史
// 唯一索引实现集合语义：重复观看不新增记录，也不改变原有位置
// （列表按 WatchedAt 升序输出，即首次观看顺序）
type WatchHistory struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:记录ID" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:uq_watch_history_pair;index:idx_watch_history_user;comment:用户ID" json:"user_id"`
	VideoID   int64     `gorm:"not null;uniqueIndex:uq_watch_history_pair;comment:视频ID" json:"video_id"`
	WatchedAt time.Time `gorm:"autoCreateTime;comment:首次观看时间" json:"watched_at"`
}

func (WatchHistory) TableName() string {
	return "watch_history"
}
