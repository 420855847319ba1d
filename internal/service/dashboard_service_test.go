package service

import (
	"testing"

	"playtube/internal/model"
	"playtube/internal/repository"

	"gorm.io/gorm"
)

func newDashboardService(t *testing.T, db *gorm.DB) *DashboardService {
	t.Helper()
	return NewDashboardService(
		repository.NewVideoRepository(db),
		repository.NewLikeRepository(db),
		repository.NewSubscriptionRepository(db),
		repository.NewUserRepository(db),
	)
}

func TestDashboardStatsEmptyChannel(t *testing.T) {
	db := newTestDB(t)
	svc := newDashboardService(t, db)
	user := seedUser(t, db, "newcomer")

	stats, err := svc.GetStats(user.ID)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.TotalVideos != 0 || stats.TotalViews != 0 || stats.TotalSubscribers != 0 || stats.TotalLikes != 0 {
		t.Errorf("empty channel stats = %+v, want all zero", stats)
	}
}

func TestDashboardStats(t *testing.T) {
	db := newTestDB(t)
	svc := newDashboardService(t, db)
	videoRepo := repository.NewVideoRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)

	owner := seedUser(t, db, "creator")
	fan1 := seedUser(t, db, "fan1")
	fan2 := seedUser(t, db, "fan2")
	published := seedVideo(t, db, owner.ID, "pub", true)
	seedVideo(t, db, owner.ID, "draft", false)

	for i := 0; i < 5; i++ {
		if err := videoRepo.IncrementViews(published.ID); err != nil {
			t.Fatalf("IncrementViews: %v", err)
		}
	}
	for _, fan := range []int64{fan1.ID, fan2.ID} {
		if _, err := likeRepo.Create(fan, model.LikeTargetVideo, published.ID); err != nil {
			t.Fatalf("like: %v", err)
		}
		if _, err := subRepo.Create(fan, owner.ID); err != nil {
			t.Fatalf("subscribe: %v", err)
		}
	}

	stats, err := svc.GetStats(owner.ID)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	// 草稿也计入视频总数
	if stats.TotalVideos != 2 {
		t.Errorf("TotalVideos = %d, want 2", stats.TotalVideos)
	}
	if stats.TotalViews != 5 {
		t.Errorf("TotalViews = %d, want 5", stats.TotalViews)
	}
	if stats.TotalSubscribers != 2 {
		t.Errorf("TotalSubscribers = %d, want 2", stats.TotalSubscribers)
	}
	if stats.TotalLikes != 2 {
		t.Errorf("TotalLikes = %d, want 2", stats.TotalLikes)
	}
}

func TestDashboardChannelVideosIncludeDrafts(t *testing.T) {
	db := newTestDB(t)
	svc := newDashboardService(t, db)
	owner := seedUser(t, db, "creator")
	other := seedUser(t, db, "other")
	seedVideo(t, db, owner.ID, "pub", true)
	seedVideo(t, db, owner.ID, "draft", false)
	seedVideo(t, db, other.ID, "noise", true)

	videos, meta, err := svc.GetChannelVideos(owner.ID, 1, 10)
	if err != nil {
		t.Fatalf("GetChannelVideos: %v", err)
	}
	if meta.Total != 2 || len(videos) != 2 {
		t.Errorf("channel videos total=%d len=%d, want 2/2", meta.Total, len(videos))
	}
	for _, v := range videos {
		if v.Owner.Username != "creator" {
			t.Errorf("video %d owner = %q, want creator", v.ID, v.Owner.Username)
		}
	}
}
