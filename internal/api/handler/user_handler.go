package handler

import (
	"errors"

	"playtube/internal/api/dto"
	"playtube/internal/api/middleware"
	"playtube/internal/api/response"
	"playtube/internal/service"
	"playtube/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Me GET /users/current-user
func (h *UserHandler) Me(c *gin.Context) {
	currentUserID, _ := middleware.GetCurrentUserID(c)

	userInfo, err := h.userService.GetCurrentUser(currentUserID)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "获取当前用户成功", userInfo)
}

// UpdateAccount PATCH /users/update-account
func (h *UserHandler) UpdateAccount(c *gin.Context) {
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	userInfo, err := h.userService.UpdateAccount(currentUserID, &req)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "账号资料更新成功", userInfo)
}

// UpdateAvatar PATCH /users/avatar
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	file, f, err := openFormFile(c, "avatar")
	if err != nil {
		response.BadRequest(c, "请上传头像文件")
		return
	}
	defer f.Close()

	currentUserID, _ := middleware.GetCurrentUserID(c)

	userInfo, err := h.userService.UpdateAvatar(c.Request.Context(), currentUserID, file)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "头像更新成功", userInfo)
}

// UpdateCover PATCH /users/cover-image
func (h *UserHandler) UpdateCover(c *gin.Context) {
	file, f, err := openFormFile(c, "cover_image")
	if err != nil {
		response.BadRequest(c, "请上传封面文件")
		return
	}
	defer f.Close()

	currentUserID, _ := middleware.GetCurrentUserID(c)

	userInfo, err := h.userService.UpdateCover(c.Request.Context(), currentUserID, file)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "封面更新成功", userInfo)
}

// GetChannelProfile 频道主页
// @Summary 频道主页
// @Description 按用户名查询频道信息，登录时返回是否已订阅
// @Tags 用户
// @Produce json
// @Param username path string true "用户名"
// @Success 200 {object} response.Response{data=dto.ChannelProfile} "获取成功"
// @Failure 404 {object} response.ErrorResponse "用户不存在"
// @Router /users/channel/{username} [get]
func (h *UserHandler) GetChannelProfile(c *gin.Context) {
	username := c.Param("username")
	if username == "" {
		response.BadRequest(c, "用户名不能为空")
		return
	}

	profile, err := h.userService.GetChannelProfile(username, currentViewer(c))
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "获取频道信息成功", profile)
}

// GetWatchHistory GET /users/history
func (h *UserHandler) GetWatchHistory(c *gin.Context) {
	currentUserID, _ := middleware.GetCurrentUserID(c)

	videos, err := h.userService.GetWatchHistory(currentUserID)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "获取观看历史成功", videos)
}

func handleUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrUserExists):
		response.Conflict(c, err.Error())
	default:
		logger.Error("User operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}

// currentViewer 当前登录用户 ID，未登录返回 nil
func currentViewer(c *gin.Context) *int64 {
	if id, ok := middleware.GetCurrentUserID(c); ok {
		return &id
	}
	return nil
}
