package service

import (
	"context"
	"errors"
	"strings"

	"playtube/internal/api/dto"
	"playtube/internal/config"
	"playtube/internal/model"
	"playtube/internal/repository"
	"playtube/internal/session"
	"playtube/pkg/utils"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound        = errors.New("用户不存在")
	ErrUserExists          = errors.New("用户名或邮箱已被占用")
	ErrInvalidCredential   = errors.New("用户名或密码错误")
	ErrInvalidRefreshToken = errors.New("刷新令牌无效或已过期")
	ErrWrongPassword       = errors.New("原密码不正确")
)

type AuthService struct {
	userRepo *repository.UserRepository
	sessions session.Store
	media    MediaStore
}

func NewAuthService(userRepo *repository.UserRepository, sessions session.Store, media MediaStore) *AuthService {
	return &AuthService{userRepo: userRepo, sessions: sessions, media: media}
}

// Register 用户注册，头像必传，封面可选
// 任一步骤失败时清理已上传的对象，避免存储里残留孤儿文件
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest, avatar, cover *MediaFile) (*dto.UserInfo, error) {
	exists, err := s.userRepo.ExistsByUsernameOrEmail(req.Username, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserExists
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	avatarURL, avatarKey, err := s.media.Upload(ctx, FolderAvatars, avatar.Filename, avatar.Reader, avatar.Size, avatar.ContentType)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:  strings.ToLower(req.Username),
		Email:     strings.ToLower(req.Email),
		Password:  hashedPassword,
		FullName:  req.FullName,
		AvatarURL: avatarURL,
		AvatarKey: avatarKey,
	}

	if cover != nil {
		coverURL, coverKey, err := s.media.Upload(ctx, FolderCovers, cover.Filename, cover.Reader, cover.Size, cover.ContentType)
		if err != nil {
			removeQuietly(ctx, s.media, avatarKey)
			return nil, err
		}
		user.CoverURL = &coverURL
		user.CoverKey = &coverKey
	}

	if err := s.userRepo.Create(user); err != nil {
		removeQuietly(ctx, s.media, avatarKey)
		if user.CoverKey != nil {
			removeQuietly(ctx, s.media, *user.CoverKey)
		}
		// 并发注册可能越过前面的存在性检查，唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	return toUserInfo(user), nil
}

// Login 用户登录，签发访问令牌和刷新令牌
// 刷新令牌写入会话存储，重新登录会轮换掉旧会话
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenData, error) {
	user, err := s.userRepo.GetByUsernameOrEmail(req.Identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredential
		}
		return nil, err
	}

	if !utils.VerifyPassword(req.Password, user.Password) {
		return nil, ErrInvalidCredential
	}

	return s.issueTokens(ctx, user)
}

// Logout 登出，删除会话中的刷新令牌
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	return s.sessions.Delete(ctx, userID)
}

// Refresh 用刷新令牌换取新的令牌对
// 令牌必须与会话存储中的一致（旧令牌在刷新后立即失效）
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenData, error) {
	claims, err := utils.ParseToken(refreshToken, utils.TokenTypeRefresh)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	stored, err := s.sessions.Get(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	if stored != refreshToken {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// ChangePassword 修改密码，需验证原密码
func (s *AuthService) ChangePassword(userID int64, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if !utils.VerifyPassword(req.OldPassword, user.Password) {
		return ErrWrongPassword
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	_, err = s.userRepo.Update(userID, map[string]interface{}{"password": hashed})
	return err
}

func (s *AuthService) issueTokens(ctx context.Context, user *model.User) (*dto.TokenData, error) {
	accessToken, err := utils.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := utils.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Save(ctx, user.ID, refreshToken, config.GetJWT().RefreshExpireDuration()); err != nil {
		return nil, err
	}

	return &dto.TokenData{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		User:         *toUserInfo(user),
	}, nil
}

func toUserInfo(user *model.User) *dto.UserInfo {
	return &dto.UserInfo{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FullName:  user.FullName,
		AvatarURL: user.AvatarURL,
		CoverURL:  user.CoverURL,
		CreatedAt: user.CreatedAt,
	}
}
