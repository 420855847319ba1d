package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"playtube/internal/config"
	"playtube/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Video{},
		&model.Comment{},
		&model.Like{},
		&model.Subscription{},
		&model.Playlist{},
		&model.PlaylistVideo{},
		&model.WatchHistory{},
	); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	return db
}

func setTestConfig(t *testing.T) {
	t.Helper()
	config.Set(&config.Config{
		App: config.AppConfig{Name: "playtube-test"},
		JWT: config.JWTConfig{
			Secret:             "test-secret",
			AccessExpireMins:   30,
			RefreshExpireHours: 24,
		},
	})
}

// fakeMediaStore 内存媒体存储：记录上传与删除，可按目录注入失败
type fakeMediaStore struct {
	mu      sync.Mutex
	seq     int
	objects map[string]bool
	removed []string
	failOn  string // 该目录的上传会失败
}

func newFakeMediaStore() *fakeMediaStore {
	return &fakeMediaStore{objects: map[string]bool{}}
}

func (f *fakeMediaStore) Upload(_ context.Context, folder, filename string, _ io.Reader, _ int64, _ string) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if folder == f.failOn {
		return "", "", fmt.Errorf("upload to %s failed", folder)
	}
	f.seq++
	key := fmt.Sprintf("%s/%d-%s", folder, f.seq, filename)
	f.objects[key] = true
	return "http://media.local/" + key, key, nil
}

func (f *fakeMediaStore) Remove(_ context.Context, objectKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, objectKey)
	f.removed = append(f.removed, objectKey)
	return nil
}

func (f *fakeMediaStore) stored() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}

// recordingPublisher 记录发布的视频事件
type recordingPublisher struct {
	mu       sync.Mutex
	upserted []int64
	removed  []int64
}

func (r *recordingPublisher) VideoUpserted(_ context.Context, video *model.Video, _ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upserted = append(r.upserted, video.ID)
	return nil
}

func (r *recordingPublisher) VideoRemoved(_ context.Context, videoID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removed = append(r.removed, videoID)
	return nil
}

func testMediaFile(name string) *MediaFile {
	return &MediaFile{
		Filename:    name,
		Size:        int64(len(name)),
		ContentType: "application/octet-stream",
		Reader:      strings.NewReader(name),
	}
}

func seedUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	user := &model.User{
		Username:  username,
		Email:     username + "@example.com",
		Password:  "$2a$10$invalidhashforseeding000000000000000000000000000000000",
		FullName:  "Test " + username,
		AvatarURL: "http://media.local/avatars/" + username,
		AvatarKey: "avatars/" + username,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedVideo(t *testing.T, db *gorm.DB, ownerID int64, title string, published bool) *model.Video {
	t.Helper()
	video := &model.Video{
		OwnerID:      ownerID,
		Title:        title,
		Description:  "about " + title,
		VideoURL:     "http://media.local/videos/" + title,
		VideoKey:     "videos/" + title,
		ThumbnailURL: "http://media.local/thumbnails/" + title,
		ThumbnailKey: "thumbnails/" + title,
		Duration:     60,
		IsPublished:  published,
	}
	if err := db.Create(video).Error; err != nil {
		t.Fatalf("seed video: %v", err)
	}
	return video
}
