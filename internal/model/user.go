package model

import "time"

// User 用户模型
// 刷新令牌不存储在用户表上，而是放在独立的会话存储（Redis）中
type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;comment:用户标识" json:"id"`
	Username     string    `gorm:"size:255;not null;uniqueIndex;comment:用户名（小写存储）" json:"username"`
	Email        string    `gorm:"size:255;not null;uniqueIndex;comment:邮箱" json:"email"`
	Password     string    `gorm:"size:255;not null;comment:密码哈希" json:"-"` // json:"-" 序列化时忽略密码
	FullName     string    `gorm:"size:255;not null;comment:昵称" json:"full_name"`
	AvatarURL    string    `gorm:"size:500;comment:头像地址" json:"avatar_url"`
	AvatarKey    string    `gorm:"size:500;comment:头像对象存储键" json:"-"`
	CoverURL     *string   `gorm:"size:500;comment:主页封面地址" json:"cover_url"`
	CoverKey     *string   `gorm:"size:500;comment:主页封面对象存储键" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime;comment:注册时间" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`

	// 关联关系
	Videos    []Video    `gorm:"foreignKey:OwnerID" json:"videos,omitempty"`
	Comments  []Comment  `gorm:"foreignKey:OwnerID" json:"comments,omitempty"`
	Playlists []Playlist `gorm:"foreignKey:OwnerID" json:"playlists,omitempty"`
}

func (User) TableName() string {
	return "users"
}
