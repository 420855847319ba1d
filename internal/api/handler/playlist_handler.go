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

type PlaylistHandler struct {
	playlistService *service.PlaylistService
}

func NewPlaylistHandler(playlistService *service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlistService: playlistService}
}

// Create POST /playlists
func (h *PlaylistHandler) Create(c *gin.Context) {
	var req dto.PlaylistCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.playlistService.Create(currentUserID, &req)
	if err != nil {
		handlePlaylistError(c, err)
		return
	}

	response.Created(c, "播放列表创建成功", info)
}

// GetDetail GET /playlists/:id（公开）
func (h *PlaylistHandler) GetDetail(c *gin.Context) {
	playlistID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的播放列表ID")
		return
	}

	detail, err := h.playlistService.GetByID(playlistID)
	if err != nil {
		handlePlaylistError(c, err)
		return
	}

	response.OK(c, "获取播放列表成功", detail)
}

// Update PATCH /playlists/:id
func (h *PlaylistHandler) Update(c *gin.Context) {
	playlistID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的播放列表ID")
		return
	}

	var req dto.PlaylistUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.playlistService.Update(playlistID, currentUserID, &req)
	if err != nil {
		handlePlaylistError(c, err)
		return
	}

	response.OK(c, "播放列表更新成功", info)
}

// Delete DELETE /playlists/:id
func (h *PlaylistHandler) Delete(c *gin.Context) {
	playlistID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的播放列表ID")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	if err := h.playlistService.Delete(playlistID, currentUserID); err != nil {
		handlePlaylistError(c, err)
		return
	}

	response.OK(c, "播放列表删除成功", nil)
}

// AddVideo POST /playlists/:id/videos/:video_id
func (h *PlaylistHandler) AddVideo(c *gin.Context) {
	playlistID, videoID, ok := parsePlaylistVideoIDs(c)
	if !ok {
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.playlistService.AddVideo(playlistID, videoID, currentUserID)
	if err != nil {
		handlePlaylistError(c, err)
		return
	}

	response.OK(c, "视频已加入播放列表", info)
}

// RemoveVideo DELETE /playlists/:id/videos/:video_id
func (h *PlaylistHandler) RemoveVideo(c *gin.Context) {
	playlistID, videoID, ok := parsePlaylistVideoIDs(c)
	if !ok {
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.playlistService.RemoveVideo(playlistID, videoID, currentUserID)
	if err != nil {
		handlePlaylistError(c, err)
		return
	}

	response.OK(c, "视频已移出播放列表", info)
}

// GetUserPlaylists GET /playlists/user/:id（公开）
func (h *PlaylistHandler) GetUserPlaylists(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	playlists, err := h.playlistService.GetUserPlaylists(userID)
	if err != nil {
		handlePlaylistError(c, err)
		return
	}

	response.OK(c, "获取播放列表成功", playlists)
}

func parsePlaylistVideoIDs(c *gin.Context) (int64, int64, bool) {
	playlistID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的播放列表ID")
		return 0, 0, false
	}
	videoID, err := strconv.ParseInt(c.Param("video_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的视频ID")
		return 0, 0, false
	}
	return playlistID, videoID, true
}

func handlePlaylistError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPlaylistNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrVideoNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrNotPlaylistOwner):
		response.Forbidden(c, err.Error())
	default:
		logger.Error("Playlist operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
