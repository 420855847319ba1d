package repository

import (
	"testing"

	"playtube/internal/model"
)

func TestPlaylistAddRemoveVideo(t *testing.T) {
	db := newTestDB(t)
	repo := NewPlaylistRepository(db)
	user := createTestUser(t, db, "owner")
	video := createTestVideo(t, db, user.ID, "v1", true)

	playlist := &model.Playlist{OwnerID: user.ID, Name: "mix", Description: "d"}
	if err := repo.Create(playlist); err != nil {
		t.Fatalf("Create: %v", err)
	}

	added, err := repo.AddVideo(playlist.ID, video.ID)
	if err != nil {
		t.Fatalf("AddVideo: %v", err)
	}
	if !added {
		t.Fatal("first AddVideo returned false")
	}

	// 重复添加是幂等操作
	added, err = repo.AddVideo(playlist.ID, video.ID)
	if err != nil {
		t.Fatalf("AddVideo twice: %v", err)
	}
	if added {
		t.Error("duplicate AddVideo returned true")
	}

	removed, err := repo.RemoveVideo(playlist.ID, video.ID)
	if err != nil {
		t.Fatalf("RemoveVideo: %v", err)
	}
	if !removed {
		t.Error("RemoveVideo returned false")
	}

	removed, err = repo.RemoveVideo(playlist.ID, video.ID)
	if err != nil {
		t.Fatalf("RemoveVideo twice: %v", err)
	}
	if removed {
		t.Error("RemoveVideo of absent video returned true")
	}
}

func TestPlaylistPublishedVideosAndStats(t *testing.T) {
	db := newTestDB(t)
	repo := NewPlaylistRepository(db)
	videoRepo := NewVideoRepository(db)
	user := createTestUser(t, db, "owner")

	published := createTestVideo(t, db, user.ID, "pub", true)
	draft := createTestVideo(t, db, user.ID, "draft", false)

	for i := 0; i < 4; i++ {
		if err := videoRepo.IncrementViews(published.ID); err != nil {
			t.Fatalf("IncrementViews: %v", err)
		}
	}

	playlist := &model.Playlist{OwnerID: user.ID, Name: "mix", Description: "d"}
	if err := repo.Create(playlist); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := repo.AddVideo(playlist.ID, published.ID); err != nil {
		t.Fatalf("AddVideo: %v", err)
	}
	if _, err := repo.AddVideo(playlist.ID, draft.ID); err != nil {
		t.Fatalf("AddVideo: %v", err)
	}

	// 未发布视频不出现在详情里，也不计入统计
	videos, err := repo.ListPublishedVideos(playlist.ID)
	if err != nil {
		t.Fatalf("ListPublishedVideos: %v", err)
	}
	if len(videos) != 1 || videos[0].ID != published.ID {
		t.Errorf("published videos = %d entries, want only the published one", len(videos))
	}

	stats, err := repo.GetStats(playlist.ID)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.TotalVideos != 1 {
		t.Errorf("TotalVideos = %d, want 1", stats.TotalVideos)
	}
	if stats.TotalViews != 4 {
		t.Errorf("TotalViews = %d, want 4", stats.TotalViews)
	}
}

func TestPlaylistDeleteKeepsVideos(t *testing.T) {
	db := newTestDB(t)
	repo := NewPlaylistRepository(db)
	videoRepo := NewVideoRepository(db)
	user := createTestUser(t, db, "owner")
	video := createTestVideo(t, db, user.ID, "v1", true)

	playlist := &model.Playlist{OwnerID: user.ID, Name: "mix", Description: "d"}
	if err := repo.Create(playlist); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := repo.AddVideo(playlist.ID, video.ID); err != nil {
		t.Fatalf("AddVideo: %v", err)
	}

	if err := repo.Delete(playlist.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var count int64
	if err := db.Model(&model.PlaylistVideo{}).Count(&count).Error; err != nil {
		t.Fatalf("count playlist_videos: %v", err)
	}
	if count != 0 {
		t.Errorf("playlist_videos rows left = %d, want 0", count)
	}

	// 删除播放列表不影响视频本身
	if _, err := videoRepo.GetByID(video.ID); err != nil {
		t.Errorf("video deleted along with playlist: %v", err)
	}
}
