package handler

import (
	"errors"
	"strconv"

	"playtube/internal/api/dto"
	"playtube/internal/api/middleware"
	"playtube/internal/api/response"
	"playtube/internal/service"
	"playtube/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LikeHandler struct {
	likeService *service.LikeService
}

func NewLikeHandler(likeService *service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// ToggleVideo POST /likes/video/:id
func (h *LikeHandler) ToggleVideo(c *gin.Context) {
	videoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	result, err := h.likeService.ToggleVideoLike(currentUserID, videoID)
	if err != nil {
		handleLikeError(c, err)
		return
	}

	response.OK(c, "操作成功", result)
}

// ToggleComment POST /likes/comment/:id
func (h *LikeHandler) ToggleComment(c *gin.Context) {
	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的评论ID")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	result, err := h.likeService.ToggleCommentLike(currentUserID, commentID)
	if err != nil {
		handleLikeError(c, err)
		return
	}

	response.OK(c, "操作成功", result)
}

// GetLikedVideos GET /likes/videos
func (h *LikeHandler) GetLikedVideos(c *gin.Context) {
	currentUserID, _ := middleware.GetCurrentUserID(c)
	page, limit := parsePagination(c)

	videos, meta, err := h.likeService.GetLikedVideos(currentUserID, page, limit)
	if err != nil {
		handleLikeError(c, err)
		return
	}

	response.OK(c, "获取点赞视频成功", dto.PaginatedData{Items: videos, Meta: *meta})
}

func handleLikeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrVideoNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrCommentNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("Like operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
