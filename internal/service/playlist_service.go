package service

import (
	"errors"

	"playtube/internal/api/dto"
	"playtube/internal/model"
	"playtube/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrPlaylistNotFound = errors.New("播放列表不存在")
	ErrNotPlaylistOwner = errors.New("没有权限操作该播放列表")
)

type PlaylistService struct {
	playlistRepo *repository.PlaylistRepository
	videoRepo    *repository.VideoRepository
}

func NewPlaylistService(playlistRepo *repository.PlaylistRepository, videoRepo *repository.VideoRepository) *PlaylistService {
	return &PlaylistService{playlistRepo: playlistRepo, videoRepo: videoRepo}
}

// Create 创建播放列表
func (s *PlaylistService) Create(ownerID int64, req *dto.PlaylistCreateRequest) (*dto.PlaylistInfo, error) {
	playlist := &model.Playlist{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.playlistRepo.Create(playlist); err != nil {
		return nil, err
	}
	return s.toPlaylistInfo(playlist)
}

// Update 更新播放列表（仅创建者）
func (s *PlaylistService) Update(playlistID, userID int64, req *dto.PlaylistUpdateRequest) (*dto.PlaylistInfo, error) {
	if _, err := s.getOwnedPlaylist(playlistID, userID); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if len(updates) == 0 {
		playlist, err := s.playlistRepo.GetByID(playlistID)
		if err != nil {
			return nil, err
		}
		return s.toPlaylistInfo(playlist)
	}

	updated, err := s.playlistRepo.Update(playlistID, updates)
	if err != nil {
		return nil, err
	}
	return s.toPlaylistInfo(updated)
}

// Delete 删除播放列表（仅创建者），连带删除视频关联
// 不影响视频本身
func (s *PlaylistService) Delete(playlistID, userID int64) error {
	if _, err := s.getOwnedPlaylist(playlistID, userID); err != nil {
		return err
	}
	return s.playlistRepo.Delete(playlistID)
}

// AddVideo 向播放列表添加视频（仅创建者）
// 重复添加是幂等操作，不报错也不产生第二条记录
func (s *PlaylistService) AddVideo(playlistID, videoID, userID int64) (*dto.PlaylistInfo, error) {
	if _, err := s.getOwnedPlaylist(playlistID, userID); err != nil {
		return nil, err
	}

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

	if _, err := s.playlistRepo.AddVideo(playlistID, videoID); err != nil {
		return nil, err
	}

	playlist, err := s.playlistRepo.GetByID(playlistID)
	if err != nil {
		return nil, err
	}
	return s.toPlaylistInfo(playlist)
}

// RemoveVideo 从播放列表移除视频（仅创建者）
func (s *PlaylistService) RemoveVideo(playlistID, videoID, userID int64) (*dto.PlaylistInfo, error) {
	if _, err := s.getOwnedPlaylist(playlistID, userID); err != nil {
		return nil, err
	}

	if _, err := s.playlistRepo.RemoveVideo(playlistID, videoID); err != nil {
		return nil, err
	}

	playlist, err := s.playlistRepo.GetByID(playlistID)
	if err != nil {
		return nil, err
	}
	return s.toPlaylistInfo(playlist)
}

// GetUserPlaylists 某用户的全部播放列表（带统计）
func (s *PlaylistService) GetUserPlaylists(ownerID int64) ([]dto.PlaylistInfo, error) {
	playlists, err := s.playlistRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}

	infos := make([]dto.PlaylistInfo, 0, len(playlists))
	for i := range playlists {
		info, err := s.toPlaylistInfo(&playlists[i])
		if err != nil {
			return nil, err
		}
		infos = append(infos, *info)
	}
	return infos, nil
}

// GetByID 播放列表详情，videos 按加入顺序排列且只含已发布视频
func (s *PlaylistService) GetByID(playlistID int64) (*dto.PlaylistDetail, error) {
	playlist, err := s.playlistRepo.GetByIDWithOwner(playlistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaylistNotFound
		}
		return nil, err
	}

	info, err := s.toPlaylistInfo(playlist)
	if err != nil {
		return nil, err
	}

	videos, err := s.playlistRepo.ListPublishedVideos(playlistID)
	if err != nil {
		return nil, err
	}

	videoInfos := make([]dto.VideoInfo, 0, len(videos))
	for i := range videos {
		videoInfos = append(videoInfos, *toVideoInfo(&videos[i]))
	}

	return &dto.PlaylistDetail{
		PlaylistInfo: *info,
		Owner:        toOwnerSummary(&playlist.Owner),
		Videos:       videoInfos,
	}, nil
}

func (s *PlaylistService) getOwnedPlaylist(playlistID, userID int64) (*model.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(playlistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaylistNotFound
		}
		return nil, err
	}
	if playlist.OwnerID != userID {
		return nil, ErrNotPlaylistOwner
	}
	return playlist, nil
}

func (s *PlaylistService) toPlaylistInfo(playlist *model.Playlist) (*dto.PlaylistInfo, error) {
	stats, err := s.playlistRepo.GetStats(playlist.ID)
	if err != nil {
		return nil, err
	}
	return &dto.PlaylistInfo{
		ID:          playlist.ID,
		OwnerID:     playlist.OwnerID,
		Name:        playlist.Name,
		Description: playlist.Description,
		TotalVideos: stats.TotalVideos,
		TotalViews:  stats.TotalViews,
		CreatedAt:   playlist.CreatedAt,
		UpdatedAt:   playlist.UpdatedAt,
	}, nil
}
