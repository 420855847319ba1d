package service

import (
	"errors"

	"playtube/internal/api/dto"
	"playtube/internal/model"
	"playtube/internal/repository"

	"gorm.io/gorm"
)

var ErrSelfSubscribe = errors.New("不能订阅自己的频道")

type SubscriptionService struct {
	subRepo  *repository.SubscriptionRepository
	userRepo *repository.UserRepository
}

func NewSubscriptionService(subRepo *repository.SubscriptionRepository, userRepo *repository.UserRepository) *SubscriptionService {
	return &SubscriptionService{subRepo: subRepo, userRepo: userRepo}
}

// Toggle 订阅/退订频道
// 唯一索引保证并发下同一对至多一条订阅记录
func (s *SubscriptionService) Toggle(subscriberID, channelID int64) (*dto.ToggleResult, error) {
	if subscriberID == channelID {
		return nil, ErrSelfSubscribe
	}

	if _, err := s.userRepo.GetByID(channelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	created, err := s.subRepo.Create(subscriberID, channelID)
	if err != nil {
		return nil, err
	}
	if created {
		return &dto.ToggleResult{Active: true}, nil
	}

	if _, err := s.subRepo.Delete(subscriberID, channelID); err != nil {
		return nil, err
	}
	return &dto.ToggleResult{Active: false}, nil
}

// GetSubscribers 频道的订阅者列表，按订阅时间倒序
func (s *SubscriptionService) GetSubscribers(channelID int64, page, limit int) ([]dto.OwnerSummary, *dto.PaginationMeta, error) {
	if _, err := s.userRepo.GetByID(channelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	total, err := s.subRepo.CountSubscribers(channelID)
	if err != nil {
		return nil, nil, err
	}

	ids, err := s.subRepo.ListSubscriberIDs(channelID, (page-1)*limit, limit)
	if err != nil {
		return nil, nil, err
	}

	summaries, err := s.summariesInOrder(ids)
	if err != nil {
		return nil, nil, err
	}

	meta := dto.NewPaginationMeta(page, limit, total)
	return summaries, &meta, nil
}

// GetSubscribedChannels 用户订阅的频道列表，按订阅时间倒序
func (s *SubscriptionService) GetSubscribedChannels(subscriberID int64, page, limit int) ([]dto.OwnerSummary, *dto.PaginationMeta, error) {
	if _, err := s.userRepo.GetByID(subscriberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	total, err := s.subRepo.CountSubscribedTo(subscriberID)
	if err != nil {
		return nil, nil, err
	}

	ids, err := s.subRepo.ListChannelIDs(subscriberID, (page-1)*limit, limit)
	if err != nil {
		return nil, nil, err
	}

	summaries, err := s.summariesInOrder(ids)
	if err != nil {
		return nil, nil, err
	}

	meta := dto.NewPaginationMeta(page, limit, total)
	return summaries, &meta, nil
}

func (s *SubscriptionService) summariesInOrder(ids []int64) ([]dto.OwnerSummary, error) {
	users, err := s.userRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*model.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}

	summaries := make([]dto.OwnerSummary, 0, len(ids))
	for _, id := range ids {
		u, ok := byID[id]
		if !ok {
			continue
		}
		summaries = append(summaries, toOwnerSummary(u))
	}
	return summaries, nil
}
