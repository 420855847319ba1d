package service

import (
	"errors"

	"playtube/internal/api/dto"
	"playtube/internal/model"
	"playtube/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrCommentNotFound = errors.New("评论不存在")
	ErrNotCommentOwner = errors.New("没有权限操作该评论")
)

type CommentService struct {
	commentRepo *repository.CommentRepository
	videoRepo   *repository.VideoRepository
	likeRepo    *repository.LikeRepository
}

func NewCommentService(
	commentRepo *repository.CommentRepository,
	videoRepo *repository.VideoRepository,
	likeRepo *repository.LikeRepository,
) *CommentService {
	return &CommentService{commentRepo: commentRepo, videoRepo: videoRepo, likeRepo: likeRepo}
}

// ListByVideo 某视频的评论列表，按时间倒序分页
// 点赞数实时计算；IsLiked 只对当前请求用户计算，未登录恒为 false
func (s *CommentService) ListByVideo(videoID int64, viewerID *int64, page, limit int) ([]dto.CommentInfo, *dto.PaginationMeta, error) {
	if _, err := s.visibleVideo(videoID, viewerID); err != nil {
		return nil, nil, err
	}

	comments, total, err := s.commentRepo.ListByVideo(videoID, (page-1)*limit, limit)
	if err != nil {
		return nil, nil, err
	}

	ids := make([]int64, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.ID)
	}

	likedMap := make(map[int64]bool)
	if viewerID != nil {
		likedMap, err = s.likeRepo.BatchCheckLiked(*viewerID, model.LikeTargetComment, ids)
		if err != nil {
			return nil, nil, err
		}
	}

	infos := make([]dto.CommentInfo, 0, len(comments))
	for i := range comments {
		c := &comments[i]
		likes, err := s.likeRepo.CountByTarget(model.LikeTargetComment, c.ID)
		if err != nil {
			return nil, nil, err
		}
		infos = append(infos, dto.CommentInfo{
			ID:         c.ID,
			VideoID:    c.VideoID,
			Owner:      toOwnerSummary(&c.Owner),
			Content:    c.Content,
			LikesCount: likes,
			IsLiked:    likedMap[c.ID],
			CreatedAt:  c.CreatedAt,
		})
	}

	meta := dto.NewPaginationMeta(page, limit, total)
	return infos, &meta, nil
}

// Create 发表评论
func (s *CommentService) Create(videoID, ownerID int64, req *dto.CommentCreateRequest) (*dto.CommentInfo, error) {
	if _, err := s.visibleVideo(videoID, &ownerID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		VideoID: videoID,
		OwnerID: ownerID,
		Content: req.Content,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	created, err := s.commentRepo.GetByID(comment.ID)
	if err != nil {
		return nil, err
	}
	return s.toCommentInfo(created, &ownerID)
}

// Update 编辑评论（仅评论作者）
func (s *CommentService) Update(commentID, userID int64, req *dto.CommentUpdateRequest) (*dto.CommentInfo, error) {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	if comment.OwnerID != userID {
		return nil, ErrNotCommentOwner
	}

	if _, err := s.commentRepo.UpdateContent(commentID, userID, req.Content); err != nil {
		return nil, err
	}

	updated, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		return nil, err
	}
	return s.toCommentInfo(updated, &userID)
}

// Delete 删除评论（仅评论作者），连带删除评论的点赞
func (s *CommentService) Delete(commentID, userID int64) error {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	if comment.OwnerID != userID {
		return ErrNotCommentOwner
	}

	return s.commentRepo.Delete(commentID)
}

// visibleVideo 视频必须存在；未发布的只有作者可见
func (s *CommentService) visibleVideo(videoID int64, viewerID *int64) (*model.Video, error) {
	video, err := s.videoRepo.GetByID(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	if !video.IsPublished && (viewerID == nil || *viewerID != video.OwnerID) {
		return nil, ErrVideoNotFound
	}
	return video, nil
}

func (s *CommentService) toCommentInfo(comment *model.Comment, viewerID *int64) (*dto.CommentInfo, error) {
	likes, err := s.likeRepo.CountByTarget(model.LikeTargetComment, comment.ID)
	if err != nil {
		return nil, err
	}

	isLiked := false
	if viewerID != nil {
		isLiked, err = s.likeRepo.Exists(*viewerID, model.LikeTargetComment, comment.ID)
		if err != nil {
			return nil, err
		}
	}

	return &dto.CommentInfo{
		ID:         comment.ID,
		VideoID:    comment.VideoID,
		Owner:      toOwnerSummary(&comment.Owner),
		Content:    comment.Content,
		LikesCount: likes,
		IsLiked:    isLiked,
		CreatedAt:  comment.CreatedAt,
	}, nil
}
