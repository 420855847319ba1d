package repository

import (
	"testing"

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

func createTestUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	user := &model.User{
		Username:  username,
		Email:     username + "@example.com",
		Password:  "hashed",
		FullName:  "Test " + username,
		AvatarURL: "http://media.local/avatars/" + username + ".png",
		AvatarKey: "avatars/" + username + ".png",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func createTestVideo(t *testing.T, db *gorm.DB, ownerID int64, title string, published bool) *model.Video {
	t.Helper()
	video := &model.Video{
		OwnerID:      ownerID,
		Title:        title,
		Description:  "description of " + title,
		VideoURL:     "http://media.local/videos/" + title + ".mp4",
		VideoKey:     "videos/" + title + ".mp4",
		ThumbnailURL: "http://media.local/thumbnails/" + title + ".png",
		ThumbnailKey: "thumbnails/" + title + ".png",
		Duration:     120,
		IsPublished:  published,
	}
	if err := db.Create(video).Error; err != nil {
		t.Fatalf("create video: %v", err)
	}
	return video
}
