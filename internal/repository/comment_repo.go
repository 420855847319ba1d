package repository

import (
	"playtube/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create 发表评论
func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

// GetByID 根据 ID 查询评论，预加载评论作者
func (r *CommentRepository) GetByID(id int64) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.Preload("Owner").Where("id = ?", id).First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateContent 更新评论内容（仅限 ownerID 本人的评论，返回是否命中）
func (r *CommentRepository) UpdateContent(id, ownerID int64, content string) (bool, error) {
	result := r.db.Model(&model.Comment{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Update("content", content)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete 删除评论并级联删除该评论的点赞
func (r *CommentRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_kind = ? AND target_id = ?", model.LikeTargetComment, id).
			Delete(&model.Like{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Comment{}).Error
	})
}

// ListByVideo 某视频的评论列表，按时间倒序分页，预加载评论作者
func (r *CommentRepository) ListByVideo(videoID int64, skip, limit int) ([]model.Comment, int64, error) {
	query := r.db.Model(&model.Comment{}).Where("video_id = ?", videoID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []model.Comment
	err := query.Preload("Owner").
		Order("created_at DESC").
		Offset(skip).Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}
