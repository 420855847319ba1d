package model

import "time"

// Playlist 播放列表模型
type Playlist struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;comment:播放列表ID" json:"id"`
	OwnerID     int64     `gorm:"not null;index:idx_playlists_owner_id;comment:所属用户ID" json:"owner_id"`
	Name        string    `gorm:"size:200;not null;comment:名称" json:"name"`
	Description string    `gorm:"type:text;not null;comment:描述" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime;comment:创建时间" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`

	// 关联关系
	Owner User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

func (Playlist) TableName() string {
	return "playlists"
}

// PlaylistVideo 播放列表与视频的关联（有序集合，唯一索引保证去重）
type PlaylistVideo struct {
	ID         int64     `gorm:"primaryKey;autoIncrement;comment:关联记录ID" json:"id"`
	PlaylistID int64     `gorm:"not null;uniqueIndex:uq_playlist_video;index:idx_playlist_videos_playlist;comment:播放列表ID" json:"playlist_id"`
	VideoID    int64     `gorm:"not null;uniqueIndex:uq_playlist_video;comment:视频ID" json:"video_id"`
	AddedAt    time.Time `gorm:"autoCreateTime;comment:加入时间" json:"added_at"`
}

func (PlaylistVideo) TableName() string {
	return "playlist_videos"
}
