package repository

import (
	"playtube/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PlaylistRepository struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// Create 创建播放列表
func (r *PlaylistRepository) Create(playlist *model.Playlist) error {
	return r.db.Create(playlist).Error
}

// GetByID 根据 ID 查询播放列表
func (r *PlaylistRepository) GetByID(id int64) (*model.Playlist, error) {
	var playlist model.Playlist
	err := r.db.Where("id = ?", id).First(&playlist).Error
	if err != nil {
		return nil, err
	}
	return &playlist, nil
}

// GetByIDWithOwner 根据 ID 查询播放列表并预加载所有者
func (r *PlaylistRepository) GetByIDWithOwner(id int64) (*model.Playlist, error) {
	var playlist model.Playlist
	err := r.db.Preload("Owner").Where("id = ?", id).First(&playlist).Error
	if err != nil {
		return nil, err
	}
	return &playlist, nil
}

// Update 更新播放列表字段
func (r *PlaylistRepository) Update(id int64, updates map[string]interface{}) (*model.Playlist, error) {
	result := r.db.Model(&model.Playlist{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

// Delete 删除播放列表及其视频关联
func (r *PlaylistRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", id).Delete(&model.PlaylistVideo{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Playlist{}).Error
	})
}

// ListByOwner 某用户的全部播放列表
func (r *PlaylistRepository) ListByOwner(ownerID int64) ([]model.Playlist, error) {
	var playlists []model.Playlist
	err := r.db.Where("owner_id = ?", ownerID).Order("updated_at DESC").Find(&playlists).Error
	return playlists, err
}

// AddVideo 向播放列表添加视频（集合语义：重复添加不产生新记录）
func (r *PlaylistRepository) AddVideo(playlistID, videoID int64) (bool, error) {
	pv := &model.PlaylistVideo{
		PlaylistID: playlistID,
		VideoID:    videoID,
	}
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(pv)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// RemoveVideo 从播放列表移除视频
func (r *PlaylistRepository) RemoveVideo(playlistID, videoID int64) (bool, error) {
	result := r.db.Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Delete(&model.PlaylistVideo{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListPublishedVideos 播放列表中已发布的视频，按加入顺序输出，预加载作者
func (r *PlaylistRepository) ListPublishedVideos(playlistID int64) ([]model.Video, error) {
	var videos []model.Video
	err := r.db.Model(&model.Video{}).
		Preload("Owner").
		Joins("JOIN playlist_videos ON playlist_videos.video_id = videos.id").
		Where("playlist_videos.playlist_id = ? AND videos.is_published = ?", playlistID, true).
		Order("playlist_videos.added_at ASC").
		Find(&videos).Error
	return videos, err
}

// PlaylistStats 播放列表的派生统计
type PlaylistStats struct {
	TotalVideos int64
	TotalViews  int64
}

// GetStats 统计播放列表中已发布视频的数量与播放量之和
func (r *PlaylistRepository) GetStats(playlistID int64) (*PlaylistStats, error) {
	var stats PlaylistStats
	err := r.db.Model(&model.Video{}).
		Joins("JOIN playlist_videos ON playlist_videos.video_id = videos.id").
		Where("playlist_videos.playlist_id = ? AND videos.is_published = ?", playlistID, true).
		Select("COUNT(*) AS total_videos, COALESCE(SUM(videos.views), 0) AS total_views").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
