package repository

import (
	"strings"

	"playtube/internal/model"

	"gorm.io/gorm"
)

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// Create 创建视频记录
func (r *VideoRepository) Create(video *model.Video) error {
	return r.db.Create(video).Error
}

// GetByID 根据 ID 查询视频
func (r *VideoRepository) GetByID(id int64) (*model.Video, error) {
	var video model.Video
	err := r.db.Where("id = ?", id).First(&video).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// GetByIDWithOwner 根据 ID 查询视频并预加载作者
func (r *VideoRepository) GetByIDWithOwner(id int64) (*model.Video, error) {
	var video model.Video
	err := r.db.Preload("Owner").Where("id = ?", id).First(&video).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// Update 更新视频字段
func (r *VideoRepository) Update(id int64, updates map[string]interface{}) (*model.Video, error) {
	result := r.db.Model(&model.Video{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

// IncrementViews 播放量原子 +1（存储层自增，避免并发丢失更新）
func (r *VideoRepository) IncrementViews(id int64) error {
	return r.db.Model(&model.Video{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// Delete 删除视频并级联清理所有关联数据（点赞、评论及评论的点赞、
// 观看历史、播放列表引用），在一个事务内完成
func (r *VideoRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var commentIDs []int64
		if err := tx.Model(&model.Comment{}).Where("video_id = ?", id).
			Pluck("id", &commentIDs).Error; err != nil {
			return err
		}

		if len(commentIDs) > 0 {
			if err := tx.Where("target_kind = ? AND target_id IN ?", model.LikeTargetComment, commentIDs).
				Delete(&model.Like{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("target_kind = ? AND target_id = ?", model.LikeTargetVideo, id).
			Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&model.WatchHistory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&model.PlaylistVideo{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Video{}).Error
	})
}

// ListFilter 视频列表查询条件
type ListFilter struct {
	OwnerID       *int64
	PublishedOnly bool
	Query         string // 标题/描述模糊匹配（ES 不可用时的降级路径）
	SortBy        string // created_at / views / duration
	SortType      string // asc / desc
}

// List 带筛选和分页的视频列表，预加载作者
func (r *VideoRepository) List(skip, limit int, f ListFilter) ([]model.Video, int64, error) {
	query := r.db.Model(&model.Video{})

	if f.PublishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if f.OwnerID != nil {
		query = query.Where("owner_id = ?", *f.OwnerID)
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := f.SortBy
	switch sortBy {
	case "views", "duration", "created_at":
	default:
		sortBy = "created_at"
	}
	sortType := "DESC"
	if strings.EqualFold(f.SortType, "asc") {
		sortType = "ASC"
	}

	var videos []model.Video
	err := query.Preload("Owner").
		Order(sortBy + " " + sortType).
		Offset(skip).Limit(limit).
		Find(&videos).Error
	if err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

// GetByIDsWithOwner 批量查询视频并预加载作者（不保证顺序）
func (r *VideoRepository) GetByIDsWithOwner(ids []int64) ([]model.Video, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var videos []model.Video
	err := r.db.Preload("Owner").Where("id IN ?", ids).Find(&videos).Error
	return videos, err
}

// CountByOwner 统计某作者的视频总数
func (r *VideoRepository) CountByOwner(ownerID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Video{}).Where("owner_id = ?", ownerID).Count(&count).Error
	return count, err
}

// SumViewsByOwner 统计某作者所有视频的播放量之和（没有视频时返回 0）
func (r *VideoRepository) SumViewsByOwner(ownerID int64) (int64, error) {
	var total int64
	err := r.db.Model(&model.Video{}).Where("owner_id = ?", ownerID).
		Select("COALESCE(SUM(views), 0)").Scan(&total).Error
	return total, err
}

// ListByOwner 某作者的全部视频（含未发布），按创建时间倒序
func (r *VideoRepository) ListByOwner(ownerID int64, skip, limit int) ([]model.Video, int64, error) {
	query := r.db.Model(&model.Video{}).Where("owner_id = ?", ownerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var videos []model.Video
	err := query.Order("created_at DESC").Offset(skip).Limit(limit).Find(&videos).Error
	if err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}
