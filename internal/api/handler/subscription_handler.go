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

type SubscriptionHandler struct {
	subService *service.SubscriptionService
}

func NewSubscriptionHandler(subService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subService: subService}
}

// Toggle POST /subscriptions/:id
func (h *SubscriptionHandler) Toggle(c *gin.Context) {
	channelID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的频道ID")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	result, err := h.subService.Toggle(currentUserID, channelID)
	if err != nil {
		handleSubscriptionError(c, err)
		return
	}

	response.OK(c, "操作成功", result)
}

// GetSubscribers GET /subscriptions/:id/subscribers
func (h *SubscriptionHandler) GetSubscribers(c *gin.Context) {
	channelID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的频道ID")
		return
	}
	page, limit := parsePagination(c)

	subscribers, meta, err := h.subService.GetSubscribers(channelID, page, limit)
	if err != nil {
		handleSubscriptionError(c, err)
		return
	}

	response.OK(c, "获取订阅者列表成功", dto.PaginatedData{Items: subscribers, Meta: *meta})
}

// GetSubscribedChannels GET /subscriptions/:id/channels
func (h *SubscriptionHandler) GetSubscribedChannels(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}
	page, limit := parsePagination(c)

	channels, meta, err := h.subService.GetSubscribedChannels(userID, page, limit)
	if err != nil {
		handleSubscriptionError(c, err)
		return
	}

	response.OK(c, "获取订阅频道列表成功", dto.PaginatedData{Items: channels, Meta: *meta})
}

func handleSubscriptionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSelfSubscribe):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("Subscription operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
