package service

import (
	"context"
	"errors"
	"testing"

	"playtube/internal/api/dto"
	"playtube/internal/repository"
	"playtube/internal/session"
)

func newAuthService(t *testing.T) (*AuthService, *fakeMediaStore, *session.MemoryStore) {
	t.Helper()
	setTestConfig(t)
	db := newTestDB(t)
	media := newFakeMediaStore()
	sessions := session.NewMemoryStore()
	svc := NewAuthService(repository.NewUserRepository(db), sessions, media)
	return svc, media, sessions
}

func registerReq(username string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		FullName: "Test " + username,
		Password: "password123",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc, media, _ := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, registerReq("Alice"), testMediaFile("avatar.png"), nil)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	// 用户名小写存储
	if user.Username != "alice" {
		t.Errorf("username = %q, want alice", user.Username)
	}
	if media.stored() != 1 {
		t.Errorf("stored objects = %d, want 1 (avatar)", media.stored())
	}

	// 用户名和邮箱都能登录，大小写不敏感
	for _, identifier := range []string{"alice", "ALICE", "alice@example.com"} {
		tokens, err := svc.Login(ctx, &dto.LoginRequest{Identifier: identifier, Password: "password123"})
		if err != nil {
			t.Fatalf("Login(%s): %v", identifier, err)
		}
		if tokens.AccessToken == "" || tokens.RefreshToken == "" {
			t.Errorf("Login(%s): empty tokens", identifier)
		}
	}

	if _, err := svc.Login(ctx, &dto.LoginRequest{Identifier: "alice", Password: "wrong"}); !errors.Is(err, ErrInvalidCredential) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredential", err)
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{Identifier: "nobody", Password: "password123"}); !errors.Is(err, ErrInvalidCredential) {
		t.Errorf("unknown user error = %v, want ErrInvalidCredential", err)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerReq("alice"), testMediaFile("a.png"), nil); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// 用户名冲突（大小写不敏感）
	if _, err := svc.Register(ctx, registerReq("ALICE"), testMediaFile("a.png"), nil); !errors.Is(err, ErrUserExists) {
		t.Errorf("duplicate username error = %v, want ErrUserExists", err)
	}

	// 邮箱冲突
	req := registerReq("bob")
	req.Email = "alice@example.com"
	if _, err := svc.Register(ctx, req, testMediaFile("b.png"), nil); !errors.Is(err, ErrUserExists) {
		t.Errorf("duplicate email error = %v, want ErrUserExists", err)
	}
}

func TestRegisterCleansUpOnFailure(t *testing.T) {
	svc, media, _ := newAuthService(t)
	ctx := context.Background()

	// 封面上传失败时，已上传的头像要被清理掉
	media.failOn = FolderCovers
	_, err := svc.Register(ctx, registerReq("alice"), testMediaFile("a.png"), testMediaFile("c.png"))
	if err == nil {
		t.Fatal("Register should fail when cover upload fails")
	}
	if media.stored() != 0 {
		t.Errorf("stored objects = %d, want 0 after cleanup", media.stored())
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerReq("alice"), testMediaFile("a.png"), nil); err != nil {
		t.Fatalf("Register: %v", err)
	}
	tokens, err := svc.Login(ctx, &dto.LoginRequest{Identifier: "alice", Password: "password123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	refreshed, err := svc.Refresh(ctx, tokens.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if refreshed.AccessToken == "" {
		t.Error("Refresh returned empty access token")
	}

	// 旧刷新令牌已被轮换，再次使用必须失败
	if _, err := svc.Refresh(ctx, tokens.RefreshToken); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Errorf("reused refresh token error = %v, want ErrInvalidRefreshToken", err)
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	userInfo, err := svc.Register(ctx, registerReq("alice"), testMediaFile("a.png"), nil)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	tokens, err := svc.Login(ctx, &dto.LoginRequest{Identifier: "alice", Password: "password123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := svc.Logout(ctx, userInfo.ID); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	if _, err := svc.Refresh(ctx, tokens.RefreshToken); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Errorf("refresh after logout error = %v, want ErrInvalidRefreshToken", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	userInfo, err := svc.Register(ctx, registerReq("alice"), testMediaFile("a.png"), nil)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	err = svc.ChangePassword(userInfo.ID, &dto.ChangePasswordRequest{
		OldPassword: "not-the-password",
		NewPassword: "newpassword",
	})
	if !errors.Is(err, ErrWrongPassword) {
		t.Errorf("wrong old password error = %v, want ErrWrongPassword", err)
	}

	err = svc.ChangePassword(userInfo.ID, &dto.ChangePasswordRequest{
		OldPassword: "password123",
		NewPassword: "newpassword",
	})
	if err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	if _, err := svc.Login(ctx, &dto.LoginRequest{Identifier: "alice", Password: "password123"}); !errors.Is(err, ErrInvalidCredential) {
		t.Error("old password still works after change")
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{Identifier: "alice", Password: "newpassword"}); err != nil {
		t.Errorf("new password rejected: %v", err)
	}
}
