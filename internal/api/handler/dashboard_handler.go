package handler

import (
	"playtube/internal/api/dto"
	"playtube/internal/api/middleware"
	"playtube/internal/api/response"
	"playtube/internal/service"
	"playtube/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats GET /dashboard/stats
func (h *DashboardHandler) GetStats(c *gin.Context) {
	currentUserID, _ := middleware.GetCurrentUserID(c)

	stats, err := h.dashboardService.GetStats(currentUserID)
	if err != nil {
		logger.Error("Get channel stats failed", zap.Int64("user_id", currentUserID), zap.Error(err))
		response.InternalError(c, "获取频道统计失败")
		return
	}

	response.OK(c, "获取频道统计成功", stats)
}

// GetVideos GET /dashboard/videos（含未发布）
func (h *DashboardHandler) GetVideos(c *gin.Context) {
	currentUserID, _ := middleware.GetCurrentUserID(c)
	page, limit := parsePagination(c)

	videos, meta, err := h.dashboardService.GetChannelVideos(currentUserID, page, limit)
	if err != nil {
		logger.Error("Get channel videos failed", zap.Int64("user_id", currentUserID), zap.Error(err))
		response.InternalError(c, "获取频道视频失败")
		return
	}

	response.OK(c, "获取频道视频成功", dto.PaginatedData{Items: videos, Meta: *meta})
}
