package service

import (
	"context"
	"errors"
	"strings"

	"playtube/internal/api/dto"
	"playtube/internal/model"
	"playtube/internal/repository"

	"gorm.io/gorm"
)

type UserService struct {
	userRepo    *repository.UserRepository
	subRepo     *repository.SubscriptionRepository
	videoRepo   *repository.VideoRepository
	historyRepo *repository.WatchHistoryRepository
	media       MediaStore
}

func NewUserService(
	userRepo *repository.UserRepository,
	subRepo *repository.SubscriptionRepository,
	videoRepo *repository.VideoRepository,
	historyRepo *repository.WatchHistoryRepository,
	media MediaStore,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		subRepo:     subRepo,
		videoRepo:   videoRepo,
		historyRepo: historyRepo,
		media:       media,
	}
}

// GetCurrentUser 当前登录用户的账号信息
func (s *UserService) GetCurrentUser(userID int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toUserInfo(user), nil
}

// UpdateAccount 更新账号资料（昵称、邮箱）
func (s *UserService) UpdateAccount(userID int64, req *dto.UpdateAccountRequest) (*dto.UserInfo, error) {
	updates := make(map[string]interface{})
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Email != nil {
		email := strings.ToLower(*req.Email)
		taken, err := s.userRepo.ExistsByUsernameOrEmail("", email)
		if err != nil {
			return nil, err
		}
		if taken {
			current, err := s.userRepo.GetByID(userID)
			if err != nil {
				return nil, err
			}
			if current.Email != email {
				return nil, ErrUserExists
			}
		}
		updates["email"] = email
	}

	if len(updates) == 0 {
		return s.GetCurrentUser(userID)
	}

	user, err := s.userRepo.Update(userID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toUserInfo(user), nil
}

// UpdateAvatar 更换头像：先上传新对象，落库成功后再删旧对象
// 落库失败时删除刚上传的新对象，保证存储里不残留孤儿文件
func (s *UserService) UpdateAvatar(ctx context.Context, userID int64, file *MediaFile) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	newURL, newKey, err := s.media.Upload(ctx, FolderAvatars, file.Filename, file.Reader, file.Size, file.ContentType)
	if err != nil {
		return nil, err
	}

	updated, err := s.userRepo.Update(userID, map[string]interface{}{
		"avatar_url": newURL,
		"avatar_key": newKey,
	})
	if err != nil {
		removeQuietly(ctx, s.media, newKey)
		return nil, err
	}

	if user.AvatarKey != "" {
		removeQuietly(ctx, s.media, user.AvatarKey)
	}
	return toUserInfo(updated), nil
}

// UpdateCover 更换主页封面，流程与 UpdateAvatar 相同
func (s *UserService) UpdateCover(ctx context.Context, userID int64, file *MediaFile) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	newURL, newKey, err := s.media.Upload(ctx, FolderCovers, file.Filename, file.Reader, file.Size, file.ContentType)
	if err != nil {
		return nil, err
	}

	updated, err := s.userRepo.Update(userID, map[string]interface{}{
		"cover_url": newURL,
		"cover_key": newKey,
	})
	if err != nil {
		removeQuietly(ctx, s.media, newKey)
		return nil, err
	}

	if user.CoverKey != nil && *user.CoverKey != "" {
		removeQuietly(ctx, s.media, *user.CoverKey)
	}
	return toUserInfo(updated), nil
}

// GetChannelProfile 频道主页：用户信息 + 订阅统计
// viewerID 非空时计算 IsSubscribed，未登录恒为 false
func (s *UserService) GetChannelProfile(username string, viewerID *int64) (*dto.ChannelProfile, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	subscribers, err := s.subRepo.CountSubscribers(user.ID)
	if err != nil {
		return nil, err
	}
	subscribedTo, err := s.subRepo.CountSubscribedTo(user.ID)
	if err != nil {
		return nil, err
	}

	isSubscribed := false
	if viewerID != nil {
		isSubscribed, err = s.subRepo.Exists(*viewerID, user.ID)
		if err != nil {
			return nil, err
		}
	}

	return &dto.ChannelProfile{
		ID:                user.ID,
		Username:          user.Username,
		Email:             user.Email,
		FullName:          user.FullName,
		AvatarURL:         user.AvatarURL,
		CoverURL:          user.CoverURL,
		SubscribersCount:  subscribers,
		SubscribedToCount: subscribedTo,
		IsSubscribed:      isSubscribed,
	}, nil
}

// GetWatchHistory 观看历史，按首次观看时间升序
// 已被删除的视频自然消失，未发布的视频也不再展示
func (s *UserService) GetWatchHistory(userID int64) ([]dto.VideoInfo, error) {
	entries, err := s.historyRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.VideoID)
	}

	videos, err := s.videoRepo.GetByIDsWithOwner(ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*model.Video, len(videos))
	for i := range videos {
		byID[videos[i].ID] = &videos[i]
	}

	result := make([]dto.VideoInfo, 0, len(ids))
	for _, id := range ids {
		v, ok := byID[id]
		if !ok || !v.IsPublished {
			continue
		}
		result = append(result, *toVideoInfo(v))
	}
	return result, nil
}

func toOwnerSummary(user *model.User) dto.OwnerSummary {
	return dto.OwnerSummary{
		ID:        user.ID,
		Username:  user.Username,
		FullName:  user.FullName,
		AvatarURL: user.AvatarURL,
	}
}
