package repository

import (
	"playtube/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WatchHistoryRepository struct {
	db *gorm.DB
}

func NewWatchHistoryRepository(db *gorm.DB) *WatchHistoryRepository {
	return &WatchHistoryRepository{db: db}
}

// Add 记录观看（集合语义：重复观看既不产生新记录，也不改变原有位置）
func (r *WatchHistoryRepository) Add(userID, videoID int64) error {
	entry := &model.WatchHistory{
		UserID:  userID,
		VideoID: videoID,
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(entry).Error
}

// ListByUser 用户的观看历史，按首次观看时间升序（即插入顺序）
func (r *WatchHistoryRepository) ListByUser(userID int64) ([]model.WatchHistory, error) {
	var entries []model.WatchHistory
	err := r.db.Where("user_id = ?", userID).Order("watched_at ASC, id ASC").Find(&entries).Error
	return entries, err
}
