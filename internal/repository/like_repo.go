package repository

import (
	"playtube/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// Create 创建点赞记录
// 借助唯一索引 + ON CONFLICT DO NOTHING，并发重复点赞不会产生两条记录；
// 返回 false 表示记录已存在
func (r *LikeRepository) Create(likedBy int64, targetKind string, targetID int64) (bool, error) {
	like := &model.Like{
		LikedBy:    likedBy,
		TargetKind: targetKind,
		TargetID:   targetID,
	}
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(like)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete 删除点赞记录，返回是否真的删除了
func (r *LikeRepository) Delete(likedBy int64, targetKind string, targetID int64) (bool, error) {
	result := r.db.Where("liked_by = ? AND target_kind = ? AND target_id = ?",
		likedBy, targetKind, targetID).Delete(&model.Like{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Exists 检查点赞记录是否存在
func (r *LikeRepository) Exists(likedBy int64, targetKind string, targetID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Like{}).
		Where("liked_by = ? AND target_kind = ? AND target_id = ?", likedBy, targetKind, targetID).
		Count(&count).Error
	return count > 0, err
}

// CountByTarget 统计目标的点赞数（实时计算）
func (r *LikeRepository) CountByTarget(targetKind string, targetID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Like{}).
		Where("target_kind = ? AND target_id = ?", targetKind, targetID).
		Count(&count).Error
	return count, err
}

// SumByVideoOwner 统计某作者所有视频收到的点赞总数
func (r *LikeRepository) SumByVideoOwner(ownerID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Like{}).
		Joins("JOIN videos ON videos.id = likes.target_id").
		Where("likes.target_kind = ? AND videos.owner_id = ?", model.LikeTargetVideo, ownerID).
		Count(&count).Error
	return count, err
}

// BatchCheckLiked 批量查询某用户对一组目标的点赞状态
func (r *LikeRepository) BatchCheckLiked(likedBy int64, targetKind string, targetIDs []int64) (map[int64]bool, error) {
	result := make(map[int64]bool, len(targetIDs))
	if len(targetIDs) == 0 {
		return result, nil
	}

	var likedIDs []int64
	err := r.db.Model(&model.Like{}).
		Where("liked_by = ? AND target_kind = ? AND target_id IN ?", likedBy, targetKind, targetIDs).
		Pluck("target_id", &likedIDs).Error
	if err != nil {
		return nil, err
	}

	likedSet := make(map[int64]bool, len(likedIDs))
	for _, id := range likedIDs {
		likedSet[id] = true
	}
	for _, id := range targetIDs {
		result[id] = likedSet[id]
	}
	return result, nil
}

// ListLikedVideoIDs 某用户点赞过的视频 ID 列表，按点赞时间倒序
// 连表过滤掉已下架或已删除的视频，total 与返回条目保持一致
func (r *LikeRepository) ListLikedVideoIDs(likedBy int64, skip, limit int) ([]int64, int64, error) {
	query := r.db.Model(&model.Like{}).
		Joins("JOIN videos ON videos.id = likes.target_id").
		Where("likes.liked_by = ? AND likes.target_kind = ? AND videos.is_published = ?",
			likedBy, model.LikeTargetVideo, true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ids []int64
	err := query.Order("likes.created_at DESC").Offset(skip).Limit(limit).Pluck("likes.target_id", &ids).Error
	return ids, total, err
}
