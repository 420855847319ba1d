package service

import (
	"errors"

	"playtube/internal/api/dto"
	"playtube/internal/model"
	"playtube/internal/repository"

	"gorm.io/gorm"
)

type LikeService struct {
	likeRepo    *repository.LikeRepository
	videoRepo   *repository.VideoRepository
	commentRepo *repository.CommentRepository
}

func NewLikeService(
	likeRepo *repository.LikeRepository,
	videoRepo *repository.VideoRepository,
	commentRepo *repository.CommentRepository,
) *LikeService {
	return &LikeService{likeRepo: likeRepo, videoRepo: videoRepo, commentRepo: commentRepo}
}

// ToggleVideoLike 点赞/取消点赞视频
// 唯一索引保证并发下同一用户至多一条点赞记录；插入失败说明已点赞，转为取消
func (s *LikeService) ToggleVideoLike(userID, videoID int64) (*dto.ToggleResult, error) {
	video, err := s.videoRepo.GetByID(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	if !video.IsPublished && video.OwnerID != userID {
		return nil, ErrVideoNotFound
	}

	return s.toggle(userID, model.LikeTargetVideo, videoID)
}

// ToggleCommentLike 点赞/取消点赞评论
func (s *LikeService) ToggleCommentLike(userID, commentID int64) (*dto.ToggleResult, error) {
	if _, err := s.commentRepo.GetByID(commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	return s.toggle(userID, model.LikeTargetComment, commentID)
}

// GetLikedVideos 用户点赞过的视频，按点赞时间倒序
// 点赞后被下架或删除的视频不再出现
func (s *LikeService) GetLikedVideos(userID int64, page, limit int) ([]dto.VideoInfo, *dto.PaginationMeta, error) {
	ids, total, err := s.likeRepo.ListLikedVideoIDs(userID, (page-1)*limit, limit)
	if err != nil {
		return nil, nil, err
	}

	videos, err := s.videoRepo.GetByIDsWithOwner(ids)
	if err != nil {
		return nil, nil, err
	}

	byID := make(map[int64]*model.Video, len(videos))
	for i := range videos {
		byID[videos[i].ID] = &videos[i]
	}

	infos := make([]dto.VideoInfo, 0, len(ids))
	for _, id := range ids {
		v, ok := byID[id]
		if !ok || !v.IsPublished {
			continue
		}
		infos = append(infos, *toVideoInfo(v))
	}

	meta := dto.NewPaginationMeta(page, limit, total)
	return infos, &meta, nil
}

func (s *LikeService) toggle(userID int64, targetKind string, targetID int64) (*dto.ToggleResult, error) {
	created, err := s.likeRepo.Create(userID, targetKind, targetID)
	if err != nil {
		return nil, err
	}
	if created {
		return &dto.ToggleResult{Active: true}, nil
	}

	if _, err := s.likeRepo.Delete(userID, targetKind, targetID); err != nil {
		return nil, err
	}
	return &dto.ToggleResult{Active: false}, nil
}
