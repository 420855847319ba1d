package repository

import (
	"testing"

	"playtube/internal/model"
)

func TestIncrementViews(t *testing.T) {
	db := newTestDB(t)
	repo := NewVideoRepository(db)
	user := createTestUser(t, db, "owner")
	video := createTestVideo(t, db, user.ID, "v1", true)

	for i := 0; i < 3; i++ {
		if err := repo.IncrementViews(video.ID); err != nil {
			t.Fatalf("IncrementViews: %v", err)
		}
	}

	got, err := repo.GetByID(video.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Views != 3 {
		t.Errorf("views = %d, want 3", got.Views)
	}
}

func TestDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	repo := NewVideoRepository(db)
	owner := createTestUser(t, db, "owner")
	fan := createTestUser(t, db, "fan")
	video := createTestVideo(t, db, owner.ID, "v1", true)
	keep := createTestVideo(t, db, owner.ID, "keep", true)

	comment := &model.Comment{VideoID: video.ID, OwnerID: fan.ID, Content: "first"}
	if err := db.Create(comment).Error; err != nil {
		t.Fatalf("create comment: %v", err)
	}
	likeRepo := NewLikeRepository(db)
	if _, err := likeRepo.Create(fan.ID, model.LikeTargetVideo, video.ID); err != nil {
		t.Fatalf("like video: %v", err)
	}
	if _, err := likeRepo.Create(owner.ID, model.LikeTargetComment, comment.ID); err != nil {
		t.Fatalf("like comment: %v", err)
	}
	historyRepo := NewWatchHistoryRepository(db)
	if err := historyRepo.Add(fan.ID, video.ID); err != nil {
		t.Fatalf("add history: %v", err)
	}
	playlistRepo := NewPlaylistRepository(db)
	playlist := &model.Playlist{OwnerID: fan.ID, Name: "favs", Description: "d"}
	if err := playlistRepo.Create(playlist); err != nil {
		t.Fatalf("create playlist: %v", err)
	}
	if _, err := playlistRepo.AddVideo(playlist.ID, video.ID); err != nil {
		t.Fatalf("add to playlist: %v", err)
	}

	if err := repo.Delete(video.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	for name, m := range map[string]interface{}{
		"comments":        &model.Comment{},
		"likes":           &model.Like{},
		"watch_history":   &model.WatchHistory{},
		"playlist_videos": &model.PlaylistVideo{},
	} {
		var count int64
		if err := db.Model(m).Count(&count).Error; err != nil {
			t.Fatalf("count %s: %v", name, err)
		}
		if count != 0 {
			t.Errorf("%s not cleaned up, %d rows left", name, count)
		}
	}

	// 其他视频不受影响
	if _, err := repo.GetByID(keep.ID); err != nil {
		t.Errorf("unrelated video deleted: %v", err)
	}
	if _, err := repo.GetByID(video.ID); err == nil {
		t.Error("deleted video still present")
	}
}

func TestListFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewVideoRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	createTestVideo(t, db, alice.ID, "Go tutorial", true)
	createTestVideo(t, db, alice.ID, "hidden draft", false)
	createTestVideo(t, db, bob.ID, "Cooking with Go", true)

	videos, total, err := repo.List(0, 10, ListFilter{PublishedOnly: true})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 || len(videos) != 2 {
		t.Errorf("published list: total=%d len=%d, want 2/2", total, len(videos))
	}

	videos, total, err = repo.List(0, 10, ListFilter{PublishedOnly: true, OwnerID: &alice.ID})
	if err != nil {
		t.Fatalf("List by owner: %v", err)
	}
	if total != 1 || len(videos) != 1 || videos[0].Title != "Go tutorial" {
		t.Errorf("owner filter: total=%d len=%d", total, len(videos))
	}

	videos, total, err = repo.List(0, 10, ListFilter{PublishedOnly: true, Query: "go"})
	if err != nil {
		t.Fatalf("List with query: %v", err)
	}
	if total != 2 {
		t.Errorf("query match total = %d, want 2 (case insensitive)", total)
	}

	// 分页越界返回空页，总数不变
	videos, total, err = repo.List(10, 10, ListFilter{PublishedOnly: true})
	if err != nil {
		t.Fatalf("List overflow page: %v", err)
	}
	if total != 2 || len(videos) != 0 {
		t.Errorf("overflow page: total=%d len=%d, want 2/0", total, len(videos))
	}
}

func TestOwnerAggregates(t *testing.T) {
	db := newTestDB(t)
	repo := NewVideoRepository(db)
	owner := createTestUser(t, db, "owner")
	empty := createTestUser(t, db, "empty")

	v1 := createTestVideo(t, db, owner.ID, "v1", true)
	createTestVideo(t, db, owner.ID, "v2", false)

	for i := 0; i < 5; i++ {
		if err := repo.IncrementViews(v1.ID); err != nil {
			t.Fatalf("IncrementViews: %v", err)
		}
	}

	count, err := repo.CountByOwner(owner.ID)
	if err != nil {
		t.Fatalf("CountByOwner: %v", err)
	}
	if count != 2 {
		t.Errorf("video count = %d, want 2", count)
	}

	views, err := repo.SumViewsByOwner(owner.ID)
	if err != nil {
		t.Fatalf("SumViewsByOwner: %v", err)
	}
	if views != 5 {
		t.Errorf("total views = %d, want 5", views)
	}

	// 没有视频的作者聚合为 0，不报错
	views, err = repo.SumViewsByOwner(empty.ID)
	if err != nil {
		t.Fatalf("SumViewsByOwner(empty): %v", err)
	}
	if views != 0 {
		t.Errorf("empty owner views = %d, want 0", views)
	}
}
