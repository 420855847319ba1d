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

// 上传限制
const (
	maxVideoSize     = 500 * 1024 * 1024
	maxThumbnailSize = 10 * 1024 * 1024
)

type VideoHandler struct {
	videoService *service.VideoService
}

func NewVideoHandler(videoService *service.VideoService) *VideoHandler {
	return &VideoHandler{videoService: videoService}
}

// List 视频列表/搜索
// @Summary 视频列表
// @Description 已发布视频列表，支持关键词搜索、按作者筛选、排序和分页
// @Tags 视频
// @Produce json
// @Param query query string false "搜索关键词"
// @Param user_id query int false "按作者筛选"
// @Param sort_by query string false "排序字段（created_at/views/duration）"
// @Param sort_type query string false "排序方向（asc/desc）"
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} response.Response{data=dto.PaginatedData} "获取成功"
// @Router /videos [get]
func (h *VideoHandler) List(c *gin.Context) {
	var q dto.VideoListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}
	page, limit := parsePagination(c)

	videos, meta, err := h.videoService.List(c.Request.Context(), &q, page, limit)
	if err != nil {
		logger.Error("List videos failed", zap.Error(err))
		response.InternalError(c, "获取视频列表失败")
		return
	}

	response.OK(c, "获取视频列表成功", dto.PaginatedData{Items: videos, Meta: *meta})
}

// Publish 创建视频
// @Summary 创建视频
// @Description 上传视频文件和封面并创建视频（multipart 表单），新视频默认未发布
// @Tags 视频
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "标题"
// @Param description formData string false "描述"
// @Param duration formData int false "时长（秒）"
// @Param video_file formData file true "视频文件"
// @Param thumbnail formData file true "封面图"
// @Success 201 {object} response.Response{data=dto.VideoInfo} "创建成功"
// @Failure 400 {object} response.ErrorResponse "请求参数无效"
// @Router /videos [post]
func (h *VideoHandler) Publish(c *gin.Context) {
	var req dto.VideoPublishRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	videoFile, vf, err := openFormFile(c, "video_file")
	if err != nil {
		response.BadRequest(c, "请上传视频文件")
		return
	}
	defer vf.Close()

	if videoFile.Size == 0 || videoFile.Size > maxVideoSize {
		response.BadRequest(c, "视频文件大小无效（不能为空，最大 500MB）")
		return
	}

	thumbnail, tf, err := openFormFile(c, "thumbnail")
	if err != nil {
		response.BadRequest(c, "请上传封面图")
		return
	}
	defer tf.Close()

	if thumbnail.Size == 0 || thumbnail.Size > maxThumbnailSize {
		response.BadRequest(c, "封面文件大小无效（不能为空，最大 10MB）")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.videoService.Publish(c.Request.Context(), currentUserID, &req, videoFile, thumbnail)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.Created(c, "视频发布成功", info)
}

// GetDetail 视频详情（公开，登录用户会记录观看历史）
func (h *VideoHandler) GetDetail(c *gin.Context) {
	videoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	detail, err := h.videoService.GetByID(c.Request.Context(), videoID, currentViewer(c))
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "获取视频详情成功", detail)
}

// Update 更新视频信息（仅作者，可选替换封面）
func (h *VideoHandler) Update(c *gin.Context) {
	videoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	var req dto.VideoUpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	var thumbnail *service.MediaFile
	if media, f, err := openFormFile(c, "thumbnail"); err == nil {
		defer f.Close()
		if media.Size == 0 || media.Size > maxThumbnailSize {
			response.BadRequest(c, "封面文件大小无效（不能为空，最大 10MB）")
			return
		}
		thumbnail = media
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.videoService.Update(c.Request.Context(), videoID, currentUserID, &req, thumbnail)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "视频更新成功", info)
}

// Delete 删除视频（仅作者）
func (h *VideoHandler) Delete(c *gin.Context) {
	videoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	if err := h.videoService.Delete(c.Request.Context(), videoID, currentUserID); err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "视频删除成功", nil)
}

// TogglePublish 切换发布状态（仅作者）
func (h *VideoHandler) TogglePublish(c *gin.Context) {
	videoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.videoService.TogglePublish(c.Request.Context(), videoID, currentUserID)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "发布状态切换成功", info)
}

func handleVideoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrVideoNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrNotVideoOwner):
		response.Forbidden(c, err.Error())
	default:
		logger.Error("Video operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}

func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}
