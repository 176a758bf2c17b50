package api

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"restoadmin/middleware"
	"restoadmin/service"

	"github.com/gin-gonic/gin"
)

// DashboardHandler 仪表盘
type DashboardHandler struct {
	dashboard     *service.Dashboard
	backend       service.AnalyticsBackend
	defaultPreset string
	loginURL      string
	now           func() time.Time
}

// NewDashboardHandler 创建仪表盘处理器
func NewDashboardHandler(dashboard *service.Dashboard, backend service.AnalyticsBackend, defaultPreset, loginURL string) *DashboardHandler {
	if defaultPreset == "" {
		defaultPreset = service.PresetLast7Days
	}
	return &DashboardHandler{
		dashboard:     dashboard,
		backend:       backend,
		defaultPreset: defaultPreset,
		loginURL:      loginURL,
		now:           time.Now,
	}
}

// DashboardQuery 日期范围查询参数
type DashboardQuery struct {
	Preset string `form:"preset" example:"last7days"`
	Start  string `form:"start" example:"2024-01-01"`
	End    string `form:"end" example:"2024-01-31"`
}

func (h *DashboardHandler) resolve(c *gin.Context) (service.DateRange, bool) {
	var q DashboardQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		BadRequest(c, "参数错误")
		return service.DateRange{}, false
	}
	sel := service.RangeSelection{Preset: q.Preset, Start: q.Start, End: q.End}
	if sel.Preset == "" {
		sel.Preset = h.defaultPreset
		if q.Start != "" || q.End != "" {
			sel.Preset = service.PresetCustom
		}
	}
	rng, err := service.ResolveRange(sel, h.now())
	if err != nil {
		BadRequest(c, service.UserMessage(err))
		return service.DateRange{}, false
	}
	return rng, true
}

// Refresh 按日期范围刷新仪表盘
// @Summary 刷新仪表盘
// @Description 并发拉取六项统计，单项失败保留上一次的数据并在 errors 中说明
// @Tags 仪表盘
// @Produce json
// @Security BearerAuth
// @Param preset query string false "today/yesterday/last7days/last30days/thisMonth/thisYear/custom"
// @Param start query string false "开始日期 (2024-01-01)，custom 时必填"
// @Param end query string false "结束日期 (2024-01-31)，custom 时必填"
// @Success 200 {object} Response{data=service.DashboardSnapshot} "获取成功"
// @Failure 400 {object} Response "日期范围无效"
// @Failure 401 {object} Response "登录已过期"
// @Router /admin/dashboard [get]
func (h *DashboardHandler) Refresh(c *gin.Context) {
	rng, ok := h.resolve(c)
	if !ok {
		return
	}
	err := h.dashboard.Refresh(c.Request.Context(), h.backend, middleware.GetCredential(c), rng)
	if err != nil && statusFor(err) == http.StatusUnauthorized {
		Unauthorized(c, h.loginURL)
		return
	}
	// 部分失败仍返回已有数据
	Success(c, h.dashboard.Snapshot())
}

// Snapshot 当前仪表盘数据
// @Summary 仪表盘快照
// @Tags 仪表盘
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=service.DashboardSnapshot} "获取成功"
// @Failure 401 {object} Response "未携带可用凭证"
// @Router /admin/dashboard/snapshot [get]
func (h *DashboardHandler) Snapshot(c *gin.Context) {
	Success(c, h.dashboard.Snapshot())
}

// Export 刷新后导出 Excel
// @Summary 导出仪表盘
// @Tags 仪表盘
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param preset query string false "日期范围预设"
// @Param start query string false "开始日期"
// @Param end query string false "结束日期"
// @Success 200 {file} file "Excel 文件"
// @Failure 400 {object} Response "日期范围无效"
// @Router /admin/dashboard/export [get]
func (h *DashboardHandler) Export(c *gin.Context) {
	rng, ok := h.resolve(c)
	if !ok {
		return
	}
	err := h.dashboard.Refresh(c.Request.Context(), h.backend, middleware.GetCredential(c), rng)
	if err != nil && statusFor(err) == http.StatusUnauthorized {
		Unauthorized(c, h.loginURL)
		return
	}

	buf, err := service.DashboardReport(h.dashboard.Snapshot())
	if err != nil {
		_ = c.Error(err)
		Error(c, http.StatusInternalServerError, "生成报表失败")
		return
	}

	filename := fmt.Sprintf("经营报表_%s_%s.xlsx", rng.Start.Format("2006-01-02"), rng.End.Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(filename)))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
