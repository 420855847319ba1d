package service

import (
	"errors"
	"testing"

	"playtube/internal/api/dto"
	"playtube/internal/model"
	"playtube/internal/repository"

	"gorm.io/gorm"
)

func newCommentService(t *testing.T, db *gorm.DB) *CommentService {
	t.Helper()
	return NewCommentService(
		repository.NewCommentRepository(db),
		repository.NewVideoRepository(db),
		repository.NewLikeRepository(db),
	)
}

func seedComment(t *testing.T, db *gorm.DB, videoID, ownerID int64, content string) *model.Comment {
	t.Helper()
	comment := &model.Comment{VideoID: videoID, OwnerID: ownerID, Content: content}
	if err := db.Create(comment).Error; err != nil {
		t.Fatalf("seed comment: %v", err)
	}
	return comment
}

func TestCommentCreateOnDraftVideo(t *testing.T) {
	db := newTestDB(t)
	svc := newCommentService(t, db)
	owner := seedUser(t, db, "creator")
	stranger := seedUser(t, db, "stranger")
	draft := seedVideo(t, db, owner.ID, "draft", false)

	// 未发布视频对其他用户不可见，评论时当作不存在
	_, err := svc.Create(draft.ID, stranger.ID, &dto.CommentCreateRequest{Content: "hi"})
	if !errors.Is(err, ErrVideoNotFound) {
		t.Errorf("stranger comment error = %v, want ErrVideoNotFound", err)
	}

	// 作者自己可以评论
	info, err := svc.Create(draft.ID, owner.ID, &dto.CommentCreateRequest{Content: "note to self"})
	if err != nil {
		t.Fatalf("owner comment: %v", err)
	}
	if info.Owner.Username != "creator" {
		t.Errorf("comment owner = %q, want creator", info.Owner.Username)
	}
}

func TestCommentListIsLiked(t *testing.T) {
	db := newTestDB(t)
	svc := newCommentService(t, db)
	likeRepo := repository.NewLikeRepository(db)
	owner := seedUser(t, db, "creator")
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	video := seedVideo(t, db, owner.ID, "v1", true)

	liked := seedComment(t, db, video.ID, alice.ID, "first")
	seedComment(t, db, video.ID, bob.ID, "second")

	if _, err := likeRepo.Create(alice.ID, model.LikeTargetComment, liked.ID); err != nil {
		t.Fatalf("like comment: %v", err)
	}
	if _, err := likeRepo.Create(bob.ID, model.LikeTargetComment, liked.ID); err != nil {
		t.Fatalf("like comment: %v", err)
	}

	infos, meta, err := svc.ListByVideo(video.ID, &alice.ID, 1, 10)
	if err != nil {
		t.Fatalf("ListByVideo: %v", err)
	}
	if meta.Total != 2 || len(infos) != 2 {
		t.Fatalf("list total=%d len=%d, want 2/2", meta.Total, len(infos))
	}

	// IsLiked 只反映请求用户自己的点赞状态，点赞数是全局的
	for _, info := range infos {
		if info.ID == liked.ID {
			if !info.IsLiked {
				t.Error("alice's liked comment reported IsLiked=false")
			}
			if info.LikesCount != 2 {
				t.Errorf("likes count = %d, want 2", info.LikesCount)
			}
		} else if info.IsLiked {
			t.Error("unliked comment reported IsLiked=true")
		}
	}

	// 匿名用户 IsLiked 恒为 false
	infos, _, err = svc.ListByVideo(video.ID, nil, 1, 10)
	if err != nil {
		t.Fatalf("ListByVideo anonymous: %v", err)
	}
	for _, info := range infos {
		if info.IsLiked {
			t.Error("anonymous viewer got IsLiked=true")
		}
	}
}

func TestCommentListPagination(t *testing.T) {
	db := newTestDB(t)
	svc := newCommentService(t, db)
	owner := seedUser(t, db, "creator")
	video := seedVideo(t, db, owner.ID, "v1", true)

	for i := 0; i < 5; i++ {
		seedComment(t, db, video.ID, owner.ID, "comment")
	}

	tests := []struct {
		name      string
		page      int
		wantCount int
	}{
		{"full page", 1, 2},
		{"tail page has the remainder", 3, 1},
		{"past the end is empty, not an error", 4, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			infos, meta, err := svc.ListByVideo(video.ID, nil, tt.page, 2)
			if err != nil {
				t.Fatalf("ListByVideo(page=%d): %v", tt.page, err)
			}
			if len(infos) != tt.wantCount {
				t.Errorf("page %d size = %d, want %d", tt.page, len(infos), tt.wantCount)
			}
			if meta.Total != 5 || meta.TotalPages != 3 {
				t.Errorf("meta = total %d / pages %d, want 5/3", meta.Total, meta.TotalPages)
			}
			if meta.Page != tt.page || meta.Limit != 2 {
				t.Errorf("meta echo = page %d limit %d, want %d/2", meta.Page, meta.Limit, tt.page)
			}
		})
	}
}

func TestCommentUpdateDeleteOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := newCommentService(t, db)
	owner := seedUser(t, db, "creator")
	author := seedUser(t, db, "author")
	stranger := seedUser(t, db, "stranger")
	video := seedVideo(t, db, owner.ID, "v1", true)
	comment := seedComment(t, db, video.ID, author.ID, "original")

	if _, err := svc.Update(comment.ID, stranger.ID, &dto.CommentUpdateRequest{Content: "hijack"}); !errors.Is(err, ErrNotCommentOwner) {
		t.Errorf("stranger update error = %v, want ErrNotCommentOwner", err)
	}
	if err := svc.Delete(comment.ID, stranger.ID); !errors.Is(err, ErrNotCommentOwner) {
		t.Errorf("stranger delete error = %v, want ErrNotCommentOwner", err)
	}

	info, err := svc.Update(comment.ID, author.ID, &dto.CommentUpdateRequest{Content: "edited"})
	if err != nil {
		t.Fatalf("author update: %v", err)
	}
	if info.Content != "edited" {
		t.Errorf("content = %q, want edited", info.Content)
	}

	if err := svc.Delete(comment.ID, author.ID); err != nil {
		t.Fatalf("author delete: %v", err)
	}
	if _, err := svc.Update(comment.ID, author.ID, &dto.CommentUpdateRequest{Content: "x"}); !errors.Is(err, ErrCommentNotFound) {
		t.Errorf("deleted comment update error = %v, want ErrCommentNotFound", err)
	}
}
