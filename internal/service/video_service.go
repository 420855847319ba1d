package service

import (
	"context"
	"errors"

	"playtube/internal/api/dto"
	"playtube/internal/infra/elasticsearch"
	"playtube/internal/model"
	"playtube/internal/repository"
	"playtube/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrVideoNotFound = errors.New("视频不存在")
	ErrNotVideoOwner = errors.New("没有权限操作该视频")
)

type VideoService struct {
	videoRepo   *repository.VideoRepository
	likeRepo    *repository.LikeRepository
	subRepo     *repository.SubscriptionRepository
	historyRepo *repository.WatchHistoryRepository
	media       MediaStore
	events      VideoEventPublisher
}

func NewVideoService(
	videoRepo *repository.VideoRepository,
	likeRepo *repository.LikeRepository,
	subRepo *repository.SubscriptionRepository,
	historyRepo *repository.WatchHistoryRepository,
	media MediaStore,
	events VideoEventPublisher,
) *VideoService {
	return &VideoService{
		videoRepo:   videoRepo,
		likeRepo:    likeRepo,
		subRepo:     subRepo,
		historyRepo: historyRepo,
		media:       media,
		events:      events,
	}
}

// Publish 上传视频文件和封面并创建记录，新视频默认未发布
// 任一步骤失败时清理已上传的对象
func (s *VideoService) Publish(ctx context.Context, ownerID int64, req *dto.VideoPublishRequest, videoFile, thumbnail *MediaFile) (*dto.VideoInfo, error) {
	videoURL, videoKey, err := s.media.Upload(ctx, FolderVideos, videoFile.Filename, videoFile.Reader, videoFile.Size, videoFile.ContentType)
	if err != nil {
		return nil, err
	}

	thumbURL, thumbKey, err := s.media.Upload(ctx, FolderThumbnails, thumbnail.Filename, thumbnail.Reader, thumbnail.Size, thumbnail.ContentType)
	if err != nil {
		removeQuietly(ctx, s.media, videoKey)
		return nil, err
	}

	video := &model.Video{
		OwnerID:      ownerID,
		Title:        req.Title,
		Description:  req.Description,
		VideoURL:     videoURL,
		VideoKey:     videoKey,
		ThumbnailURL: thumbURL,
		ThumbnailKey: thumbKey,
		Duration:     req.Duration,
		IsPublished:  false,
	}

	if err := s.videoRepo.Create(video); err != nil {
		removeQuietly(ctx, s.media, videoKey)
		removeQuietly(ctx, s.media, thumbKey)
		return nil, err
	}

	created, err := s.videoRepo.GetByIDWithOwner(video.ID)
	if err != nil {
		return nil, err
	}

	// 未发布的视频不进搜索索引，事件在切换为发布时才发出
	return toVideoInfo(created), nil
}

// GetByID 视频详情
// 未发布的视频只有作者可见，其他人一律当作不存在
// 成功的详情访问会原子自增播放量，登录用户同时记入观看历史
func (s *VideoService) GetByID(ctx context.Context, videoID int64, viewerID *int64) (*dto.VideoDetail, error) {
	video, err := s.videoRepo.GetByIDWithOwner(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	if !video.IsPublished && (viewerID == nil || *viewerID != video.OwnerID) {
		return nil, ErrVideoNotFound
	}

	if err := s.videoRepo.IncrementViews(videoID); err != nil {
		return nil, err
	}
	video.Views++

	if viewerID != nil {
		if err := s.historyRepo.Add(*viewerID, videoID); err != nil {
			logger.Warn("Failed to record watch history",
				zap.Int64("user_id", *viewerID),
				zap.Int64("video_id", videoID),
				zap.Error(err),
			)
		}
	}

	likes, err := s.likeRepo.CountByTarget(model.LikeTargetVideo, videoID)
	if err != nil {
		return nil, err
	}

	subscribers, err := s.subRepo.CountSubscribers(video.OwnerID)
	if err != nil {
		return nil, err
	}

	isLiked := false
	isSubscribed := false
	if viewerID != nil {
		isLiked, err = s.likeRepo.Exists(*viewerID, model.LikeTargetVideo, videoID)
		if err != nil {
			return nil, err
		}
		isSubscribed, err = s.subRepo.Exists(*viewerID, video.OwnerID)
		if err != nil {
			return nil, err
		}
	}

	return &dto.VideoDetail{
		VideoInfo: *toVideoInfo(video),
		Owner: dto.ChannelSummary{
			OwnerSummary:     toOwnerSummary(&video.Owner),
			SubscribersCount: subscribers,
			IsSubscribed:     isSubscribed,
		},
		VideoURL:   video.VideoURL,
		LikesCount: likes,
		IsLiked:    isLiked,
	}, nil
}

// Update 更新视频信息（仅作者），可选替换封面
func (s *VideoService) Update(ctx context.Context, videoID, ownerID int64, req *dto.VideoUpdateRequest, thumbnail *MediaFile) (*dto.VideoInfo, error) {
	video, err := s.getOwnedVideo(videoID, ownerID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	var newThumbKey string
	if thumbnail != nil {
		thumbURL, thumbKey, err := s.media.Upload(ctx, FolderThumbnails, thumbnail.Filename, thumbnail.Reader, thumbnail.Size, thumbnail.ContentType)
		if err != nil {
			return nil, err
		}
		updates["thumbnail_url"] = thumbURL
		updates["thumbnail_key"] = thumbKey
		newThumbKey = thumbKey
	}

	if len(updates) == 0 {
		return toVideoInfo(video), nil
	}

	if _, err := s.videoRepo.Update(videoID, updates); err != nil {
		removeQuietly(ctx, s.media, newThumbKey)
		return nil, err
	}
	if newThumbKey != "" {
		removeQuietly(ctx, s.media, video.ThumbnailKey)
	}

	updated, err := s.videoRepo.GetByIDWithOwner(videoID)
	if err != nil {
		return nil, err
	}

	if updated.IsPublished {
		s.publishUpserted(ctx, updated)
	}
	return toVideoInfo(updated), nil
}

// Delete 删除视频（仅作者）：级联清理关联数据，再删媒体对象
func (s *VideoService) Delete(ctx context.Context, videoID, ownerID int64) error {
	video, err := s.getOwnedVideo(videoID, ownerID)
	if err != nil {
		return err
	}

	if err := s.videoRepo.Delete(videoID); err != nil {
		return err
	}

	removeQuietly(ctx, s.media, video.VideoKey)
	removeQuietly(ctx, s.media, video.ThumbnailKey)
	s.publishRemoved(ctx, videoID)
	return nil
}

// TogglePublish 切换发布状态（仅作者）
func (s *VideoService) TogglePublish(ctx context.Context, videoID, ownerID int64) (*dto.VideoInfo, error) {
	video, err := s.getOwnedVideo(videoID, ownerID)
	if err != nil {
		return nil, err
	}

	if _, err := s.videoRepo.Update(videoID, map[string]interface{}{"is_published": !video.IsPublished}); err != nil {
		return nil, err
	}

	updated, err := s.videoRepo.GetByIDWithOwner(videoID)
	if err != nil {
		return nil, err
	}

	if updated.IsPublished {
		s.publishUpserted(ctx, updated)
	} else {
		s.publishRemoved(ctx, videoID)
	}
	return toVideoInfo(updated), nil
}

// List 公开视频列表，支持关键词搜索、按作者筛选、排序和分页
// 有关键词时优先走 ES 全文检索，ES 不可用或出错时降级为数据库模糊匹配
func (s *VideoService) List(ctx context.Context, q *dto.VideoListQuery, page, limit int) ([]dto.VideoInfo, *dto.PaginationMeta, error) {
	skip := (page - 1) * limit

	if q.Query != "" && q.OwnerID == nil && elasticsearch.Get() != nil {
		infos, meta, err := s.searchByES(ctx, q, page, limit)
		if err == nil {
			return infos, meta, nil
		}
		logger.Warn("ES search failed, falling back to database", zap.Error(err))
	}

	videos, total, err := s.videoRepo.List(skip, limit, repository.ListFilter{
		OwnerID:       q.OwnerID,
		PublishedOnly: true,
		Query:         q.Query,
		SortBy:        q.SortBy,
		SortType:      q.SortType,
	})
	if err != nil {
		return nil, nil, err
	}

	infos := make([]dto.VideoInfo, 0, len(videos))
	for i := range videos {
		infos = append(infos, *toVideoInfo(&videos[i]))
	}
	meta := dto.NewPaginationMeta(page, limit, total)
	return infos, &meta, nil
}

func (s *VideoService) searchByES(ctx context.Context, q *dto.VideoListQuery, page, limit int) ([]dto.VideoInfo, *dto.PaginationMeta, error) {
	sortBy := q.SortBy
	switch sortBy {
	case "views", "duration", "created_at", "":
	default:
		sortBy = ""
	}

	ids, total, err := elasticsearch.SearchVideoIDs(ctx, q.Query, (page-1)*limit, limit, sortBy, q.SortType)
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

	// 索引可能滞后于数据库，丢弃已删除或已下架的命中
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

func (s *VideoService) getOwnedVideo(videoID, ownerID int64) (*model.Video, error) {
	video, err := s.videoRepo.GetByID(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	if video.OwnerID != ownerID {
		return nil, ErrNotVideoOwner
	}
	return video, nil
}

func (s *VideoService) publishUpserted(ctx context.Context, video *model.Video) {
	if err := s.events.VideoUpserted(ctx, video, video.Owner.Username); err != nil {
		logger.Warn("Failed to publish video upserted event", zap.Int64("video_id", video.ID), zap.Error(err))
	}
}

func (s *VideoService) publishRemoved(ctx context.Context, videoID int64) {
	if err := s.events.VideoRemoved(ctx, videoID); err != nil {
		logger.Warn("Failed to publish video removed event", zap.Int64("video_id", videoID), zap.Error(err))
	}
}

func toVideoInfo(video *model.Video) *dto.VideoInfo {
	return &dto.VideoInfo{
		ID:           video.ID,
		Owner:        toOwnerSummary(&video.Owner),
		Title:        video.Title,
		Description:  video.Description,
		ThumbnailURL: video.ThumbnailURL,
		Duration:     video.Duration,
		Views:        video.Views,
		IsPublished:  video.IsPublished,
		CreatedAt:    video.CreatedAt,
	}
}
