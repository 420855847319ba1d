package service

import (
	"playtube/internal/api/dto"
	"playtube/internal/repository"
)

type DashboardService struct {
	videoRepo *repository.VideoRepository
	likeRepo  *repository.LikeRepository
	subRepo   *repository.SubscriptionRepository
	userRepo  *repository.UserRepository
}

func NewDashboardService(
	videoRepo *repository.VideoRepository,
	likeRepo *repository.LikeRepository,
	subRepo *repository.SubscriptionRepository,
	userRepo *repository.UserRepository,
) *DashboardService {
	return &DashboardService{videoRepo: videoRepo, likeRepo: likeRepo, subRepo: subRepo, userRepo: userRepo}
}

// GetStats 创作者后台统计，全部实时计算
// 没有任何视频或订阅时各项为 0，不报错
func (s *DashboardService) GetStats(userID int64) (*dto.ChannelStats, error) {
	totalVideos, err := s.videoRepo.CountByOwner(userID)
	if err != nil {
		return nil, err
	}
	totalViews, err := s.videoRepo.SumViewsByOwner(userID)
	if err != nil {
		return nil, err
	}
	totalSubscribers, err := s.subRepo.CountSubscribers(userID)
	if err != nil {
		return nil, err
	}
	totalLikes, err := s.likeRepo.SumByVideoOwner(userID)
	if err != nil {
		return nil, err
	}

	return &dto.ChannelStats{
		TotalVideos:      totalVideos,
		TotalViews:       totalViews,
		TotalSubscribers: totalSubscribers,
		TotalLikes:       totalLikes,
	}, nil
}

// GetChannelVideos 创作者自己的全部视频（含未发布），按创建时间倒序
func (s *DashboardService) GetChannelVideos(userID int64, page, limit int) ([]dto.VideoInfo, *dto.PaginationMeta, error) {
	videos, total, err := s.videoRepo.ListByOwner(userID, (page-1)*limit, limit)
	if err != nil {
		return nil, nil, err
	}

	owner, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, nil, err
	}

	infos := make([]dto.VideoInfo, 0, len(videos))
	for i := range videos {
		videos[i].Owner = *owner
		infos = append(infos, *toVideoInfo(&videos[i]))
	}

	meta := dto.NewPaginationMeta(page, limit, total)
	return infos, &meta, nil
}
