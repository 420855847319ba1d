package repository

import (
	"playtube/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Create 创建订阅关系（唯一索引去重，返回 false 表示已订阅）
func (r *SubscriptionRepository) Create(subscriberID, channelID int64) (bool, error) {
	sub := &model.Subscription{
		SubscriberID: subscriberID,
		ChannelID:    channelID,
	}
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(sub)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete 删除订阅关系，返回是否真的删除了
func (r *SubscriptionRepository) Delete(subscriberID, channelID int64) (bool, error) {
	result := r.db.Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Delete(&model.Subscription{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Exists 检查订阅关系是否存在
func (r *SubscriptionRepository) Exists(subscriberID, channelID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Count(&count).Error
	return count > 0, err
}

// CountSubscribers 统计频道的订阅者数量
func (r *SubscriptionRepository) CountSubscribers(channelID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).Where("channel_id = ?", channelID).Count(&count).Error
	return count, err
}

// CountSubscribedTo 统计用户订阅的频道数量
func (r *SubscriptionRepository) CountSubscribedTo(subscriberID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).Where("subscriber_id = ?", subscriberID).Count(&count).Error
	return count, err
}

// ListSubscriberIDs 频道的订阅者用户 ID 列表（分页，按订阅时间倒序）
func (r *SubscriptionRepository) ListSubscriberIDs(channelID int64, skip, limit int) ([]int64, error) {
	var ids []int64
	err := r.db.Model(&model.Subscription{}).
		Where("channel_id = ?", channelID).
		Order("created_at DESC").
		Offset(skip).Limit(limit).
		Pluck("subscriber_id", &ids).Error
	return ids, err
}

// ListChannelIDs 用户订阅的频道用户 ID 列表（分页，按订阅时间倒序）
func (r *SubscriptionRepository) ListChannelIDs(subscriberID int64, skip, limit int) ([]int64, error) {
	var ids []int64
	err := r.db.Model(&model.Subscription{}).
		Where("subscriber_id = ?", subscriberID).
		Order("created_at DESC").
		Offset(skip).Limit(limit).
		Pluck("channel_id", &ids).Error
	return ids, err
}
