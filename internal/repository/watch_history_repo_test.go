package repository

import (
	"testing"
)

func TestWatchHistoryDedup(t *testing.T) {
	db := newTestDB(t)
	repo := NewWatchHistoryRepository(db)
	user := createTestUser(t, db, "viewer")
	v1 := createTestVideo(t, db, user.ID, "v1", true)
	v2 := createTestVideo(t, db, user.ID, "v2", true)

	if err := repo.Add(user.ID, v1.ID); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := repo.Add(user.ID, v2.ID); err != nil {
		t.Fatalf("Add: %v", err)
	}
	// 重复观看不改变历史
	if err := repo.Add(user.ID, v1.ID); err != nil {
		t.Fatalf("Add duplicate: %v", err)
	}

	entries, err := repo.ListByUser(user.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("history length = %d, want 2", len(entries))
	}

	// 顺序保持首次观看顺序
	if entries[0].VideoID != v1.ID || entries[1].VideoID != v2.ID {
		t.Errorf("history order = [%d %d], want [%d %d]",
			entries[0].VideoID, entries[1].VideoID, v1.ID, v2.ID)
	}
}

func TestWatchHistoryPerUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewWatchHistoryRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	video := createTestVideo(t, db, alice.ID, "v1", true)

	if err := repo.Add(alice.ID, video.ID); err != nil {
		t.Fatalf("Add: %v", err)
	}

	entries, err := repo.ListByUser(bob.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("bob's history length = %d, want 0", len(entries))
	}
}
