package model

import "time"

// Subscription 订阅关系模型（订阅者 -> 频道，均为用户ID）
type Subscription struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;comment:订阅关系ID" json:"id"`
	SubscriberID int64     `gorm:"not null;uniqueIndex:uq_subscriptions_pair;index:idx_subscriptions_subscriber;comment:订阅者用户ID" json:"subscriber_id"`
	ChannelID    int64     `gorm:"not null;uniqueIndex:uq_subscriptions_pair;index:idx_subscriptions_channel;comment:频道用户ID" json:"channel_id"`
	CreatedAt    time.Time `gorm:"autoCreateTime;comment:订阅时间" json:"created_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
