package repository

import (
	"testing"

	"playtube/internal/model"
)

func TestLikeCreateIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewLikeRepository(db)
	user := createTestUser(t, db, "liker")
	video := createTestVideo(t, db, user.ID, "v1", true)

	created, err := repo.Create(user.ID, model.LikeTargetVideo, video.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !created {
		t.Fatal("first Create returned false")
	}

	// 重复点赞不产生第二条记录
	created, err = repo.Create(user.ID, model.LikeTargetVideo, video.ID)
	if err != nil {
		t.Fatalf("Create twice: %v", err)
	}
	if created {
		t.Error("duplicate Create returned true")
	}

	count, err := repo.CountByTarget(model.LikeTargetVideo, video.ID)
	if err != nil {
		t.Fatalf("CountByTarget: %v", err)
	}
	if count != 1 {
		t.Errorf("like count = %d, want 1", count)
	}
}

func TestLikeDeleteReportsMiss(t *testing.T) {
	db := newTestDB(t)
	repo := NewLikeRepository(db)
	user := createTestUser(t, db, "liker")
	video := createTestVideo(t, db, user.ID, "v1", true)

	deleted, err := repo.Delete(user.ID, model.LikeTargetVideo, video.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted {
		t.Error("Delete of absent like returned true")
	}

	if _, err := repo.Create(user.ID, model.LikeTargetVideo, video.ID); err != nil {
		t.Fatalf("Create: %v", err)
	}
	deleted, err = repo.Delete(user.ID, model.LikeTargetVideo, video.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !deleted {
		t.Error("Delete of existing like returned false")
	}
}

func TestLikeTargetKindsAreIndependent(t *testing.T) {
	db := newTestDB(t)
	repo := NewLikeRepository(db)
	user := createTestUser(t, db, "liker")
	video := createTestVideo(t, db, user.ID, "v1", true)

	comment := &model.Comment{VideoID: video.ID, OwnerID: user.ID, Content: "nice"}
	if err := db.Create(comment).Error; err != nil {
		t.Fatalf("create comment: %v", err)
	}

	// 同一 ID 的视频点赞和评论点赞互不影响
	if _, err := repo.Create(user.ID, model.LikeTargetVideo, video.ID); err != nil {
		t.Fatalf("Create video like: %v", err)
	}
	created, err := repo.Create(user.ID, model.LikeTargetComment, video.ID)
	if err != nil {
		t.Fatalf("Create comment like: %v", err)
	}
	if !created {
		t.Error("comment like blocked by video like with same target id")
	}
}

func TestBatchCheckLiked(t *testing.T) {
	db := newTestDB(t)
	repo := NewLikeRepository(db)
	user := createTestUser(t, db, "liker")
	v1 := createTestVideo(t, db, user.ID, "v1", true)
	v2 := createTestVideo(t, db, user.ID, "v2", true)

	if _, err := repo.Create(user.ID, model.LikeTargetVideo, v1.ID); err != nil {
		t.Fatalf("Create: %v", err)
	}

	liked, err := repo.BatchCheckLiked(user.ID, model.LikeTargetVideo, []int64{v1.ID, v2.ID})
	if err != nil {
		t.Fatalf("BatchCheckLiked: %v", err)
	}
	if !liked[v1.ID] {
		t.Error("v1 should be liked")
	}
	if liked[v2.ID] {
		t.Error("v2 should not be liked")
	}
}

func TestSumByVideoOwner(t *testing.T) {
	db := newTestDB(t)
	repo := NewLikeRepository(db)
	owner := createTestUser(t, db, "owner")
	fan1 := createTestUser(t, db, "fan1")
	fan2 := createTestUser(t, db, "fan2")
	v1 := createTestVideo(t, db, owner.ID, "v1", true)
	v2 := createTestVideo(t, db, owner.ID, "v2", true)

	for _, pair := range []struct{ user, video int64 }{
		{fan1.ID, v1.ID}, {fan2.ID, v1.ID}, {fan1.ID, v2.ID},
	} {
		if _, err := repo.Create(pair.user, model.LikeTargetVideo, pair.video); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	total, err := repo.SumByVideoOwner(owner.ID)
	if err != nil {
		t.Fatalf("SumByVideoOwner: %v", err)
	}
	if total != 3 {
		t.Errorf("total likes = %d, want 3", total)
	}
}
