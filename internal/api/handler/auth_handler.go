package handler

import (
	"errors"
	"mime/multipart"

	"playtube/internal/api/dto"
	"playtube/internal/api/middleware"
	"playtube/internal/api/response"
	"playtube/internal/service"
	"playtube/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register 用户注册
// @Summary 用户注册
// @Description 注册新用户账号（multipart 表单，头像必传，封面可选）
// @Tags 认证
// @Accept multipart/form-data
// @Produce json
// @Param username formData string true "用户名"
// @Param email formData string true "邮箱"
// @Param full_name formData string true "昵称"
// @Param password formData string true "密码"
// @Param avatar formData file true "头像"
// @Param cover_image formData file false "主页封面"
// @Success 201 {object} response.Response{data=dto.UserInfo} "注册成功"
// @Failure 400 {object} response.ErrorResponse "请求参数无效"
// @Failure 409 {object} response.ErrorResponse "用户名或邮箱已被占用"
// @Router /users/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	avatar, avatarFile, err := openFormFile(c, "avatar")
	if err != nil {
		response.BadRequest(c, "请上传头像文件")
		return
	}
	defer avatarFile.Close()

	var cover *service.MediaFile
	if coverMedia, coverFile, err := openFormFile(c, "cover_image"); err == nil {
		defer coverFile.Close()
		cover = coverMedia
	}

	userInfo, err := h.authService.Register(c.Request.Context(), &req, avatar, cover)
	if err != nil {
		handleAuthError(c, err)
		return
	}

	response.Created(c, "注册成功", userInfo)
}

// Login 用户登录
// @Summary 用户登录
// @Description 用用户名或邮箱登录，返回访问令牌和刷新令牌
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录信息"
// @Success 200 {object} response.Response{data=dto.TokenData} "登录成功"
// @Failure 401 {object} response.ErrorResponse "用户名或密码错误"
// @Router /users/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	tokenData, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		handleAuthError(c, err)
		return
	}

	response.OK(c, "登录成功", tokenData)
}

// Logout 登出，使会话中的刷新令牌失效
func (h *AuthHandler) Logout(c *gin.Context) {
	currentUserID, _ := middleware.GetCurrentUserID(c)

	if err := h.authService.Logout(c.Request.Context(), currentUserID); err != nil {
		logger.Error("Logout failed", zap.Int64("user_id", currentUserID), zap.Error(err))
		response.InternalError(c, "登出失败，请稍后重试")
		return
	}

	response.OK(c, "登出成功", nil)
}

// Refresh 用刷新令牌换取新的令牌对
// @Summary 刷新令牌
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body dto.RefreshRequest true "刷新令牌"
// @Success 200 {object} response.Response{data=dto.TokenData} "刷新成功"
// @Failure 401 {object} response.ErrorResponse "刷新令牌无效或已过期"
// @Router /users/refresh-token [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	tokenData, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		handleAuthError(c, err)
		return
	}

	response.OK(c, "令牌刷新成功", tokenData)
}

// ChangePassword 修改密码
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	if err := h.authService.ChangePassword(currentUserID, &req); err != nil {
		handleAuthError(c, err)
		return
	}

	response.OK(c, "密码修改成功", nil)
}

func handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserExists):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredential):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrInvalidRefreshToken):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrWrongPassword):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("Auth operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}

// openFormFile 打开 multipart 表单中的文件，调用方负责关闭返回的文件句柄
func openFormFile(c *gin.Context, field string) (*service.MediaFile, multipart.File, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &service.MediaFile{
		Filename:    fh.Filename,
		Size:        fh.Size,
		ContentType: fh.Header.Get("Content-Type"),
		Reader:      f,
	}, f, nil
}
