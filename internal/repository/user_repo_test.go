package repository

import (
	"errors"
	"testing"

	"playtube/internal/model"

	"gorm.io/gorm"
)

func TestUserCreateDuplicateTranslated(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	createTestUser(t, db, "alice")

	// 用户名冲突要翻译成 gorm.ErrDuplicatedKey，上层据此返回 409
	dup := &model.User{
		Username:  "alice",
		Email:     "other@example.com",
		Password:  "hashed",
		FullName:  "Dup",
		AvatarURL: "http://media.local/avatars/dup.png",
		AvatarKey: "avatars/dup.png",
	}
	if err := repo.Create(dup); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("duplicate username error = %v, want gorm.ErrDuplicatedKey", err)
	}

	// 邮箱冲突同理
	dup.Username = "someone-else"
	dup.Email = "alice@example.com"
	if err := repo.Create(dup); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("duplicate email error = %v, want gorm.ErrDuplicatedKey", err)
	}
}
