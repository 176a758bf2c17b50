package api

import (
	"restoadmin/service"

	"github.com/gin-gonic/gin"
)

// TrackerHandler 订单跟踪
type TrackerHandler struct {
	tracker *service.OrderTracker
}

func NewTrackerHandler(tracker *service.OrderTracker) *TrackerHandler {
	return &TrackerHandler{tracker: tracker}
}

// Get 当前订单看板
// @Summary 订单看板
// @Description 进行中与已结束订单分两列，附未处理的呼叫请求
// @Tags 订单跟踪
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=service.TrackerSnapshot} "获取成功"
// @Failure 401 {object} Response "未携带可用凭证"
// @Router /admin/tracker [get]
func (h *TrackerHandler) Get(c *gin.Context) {
	Success(c, h.tracker.Snapshot())
}

// Refresh 立即轮询一次
// @Summary 立即刷新订单看板
// @Tags 订单跟踪
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=service.TrackerSnapshot} "刷新成功"
// @Failure 401 {object} Response "未携带可用凭证"
// @Router /admin/tracker/refresh [post]
func (h *TrackerHandler) Refresh(c *gin.Context) {
	if err := h.tracker.PollOnce(c.Request.Context()); err != nil {
		_ = c.Error(err)
	}
	// 失败原因在 last_error 中，保留上一次数据
	Success(c, h.tracker.Snapshot())
}
