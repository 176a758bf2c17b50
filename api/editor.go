package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"restoadmin/middleware"
	"restoadmin/models"
	"restoadmin/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EditorHandler 菜单/分类与菜品关联编辑
type EditorHandler struct {
	svc      *service.EditorService
	loginURL string
}

// NewEditorHandler 创建编辑处理器
func NewEditorHandler(svc *service.EditorService, loginURL string) *EditorHandler {
	return &EditorHandler{svc: svc, loginURL: loginURL}
}

// OpenEditorRequest 打开编辑器请求
type OpenEditorRequest struct {
	Kind   string `json:"kind" binding:"required" example:"menu"`
	Parent string `json:"parent" example:"Lunch Specials"`
}

// ItemRequest 移入/移出菜品请求
type ItemRequest struct {
	Name string `json:"name" binding:"required" example:"Burger"`
}

// EditorResponse 编辑会话
type EditorResponse struct {
	ID    string                `json:"id"`
	Draft service.DraftSnapshot `json:"draft"`
}

// ApplyResponse 提交结果
type ApplyResponse struct {
	Result      *service.ApplyResult  `json:"result,omitempty"`
	Draft       service.DraftSnapshot `json:"draft"`
	AddError    string                `json:"add_error,omitempty"`
	RemoveError string                `json:"remove_error,omitempty"`
	Warning     string                `json:"warning,omitempty"`
}

// Open 打开关联编辑器
// @Summary 打开关联编辑器
// @Description 拉取菜品目录与父实体当前关联，建立编辑草稿
// @Tags 关联编辑
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body OpenEditorRequest true "父实体"
// @Success 200 {object} Response{data=EditorResponse} "打开成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "登录已过期"
// @Failure 502 {object} Response "后端请求失败"
// @Router /admin/editors [post]
func (h *EditorHandler) Open(c *gin.Context) {
	var req OpenEditorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误")
		return
	}
	kind, err := models.ParseParentKind(req.Kind)
	if err != nil {
		BadRequest(c, "未知的父实体类型")
		return
	}
	parent := strings.TrimSpace(req.Parent)
	if parent == "" {
		BadRequest(c, service.UserMessage(service.ErrEmptyParentKey))
		return
	}

	id, snap, err := h.svc.Open(c.Request.Context(), middleware.GetCredential(c), kind, parent)
	if err != nil {
		Fail(c, err, h.loginURL, nil)
		return
	}
	Success(c, EditorResponse{ID: id.String(), Draft: snap})
}

// Get 查看草稿
// @Summary 查看草稿
// @Tags 关联编辑
// @Produce json
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Success 200 {object} Response{data=service.DraftSnapshot} "获取成功"
// @Failure 404 {object} Response "会话不存在"
// @Router /admin/editors/{id} [get]
func (h *EditorHandler) Get(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	snap, err := h.svc.Snapshot(id)
	if err != nil {
		Fail(c, err, h.loginURL, nil)
		return
	}
	Success(c, snap)
}

// Add 把菜品移入当前列表
// @Summary 移入菜品
// @Tags 关联编辑
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Param request body ItemRequest true "菜品名称"
// @Success 200 {object} Response{data=service.DraftSnapshot} "已暂存"
// @Failure 400 {object} Response "菜品不存在"
// @Failure 409 {object} Response "菜品已在列表中或正在保存"
// @Router /admin/editors/{id}/add [post]
func (h *EditorHandler) Add(c *gin.Context) {
	h.mutate(c, h.svc.Add)
}

// Remove 把菜品移出当前列表
// @Summary 移出菜品
// @Tags 关联编辑
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Param request body ItemRequest true "菜品名称"
// @Success 200 {object} Response{data=service.DraftSnapshot} "已暂存"
// @Failure 409 {object} Response "菜品不在列表中或正在保存"
// @Router /admin/editors/{id}/remove [post]
func (h *EditorHandler) Remove(c *gin.Context) {
	h.mutate(c, h.svc.Remove)
}

func (h *EditorHandler) mutate(c *gin.Context, op func(uuid.UUID, string) (service.DraftSnapshot, error)) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		BadRequest(c, "请提供菜品名称")
		return
	}
	snap, err := op(id, strings.TrimSpace(req.Name))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			Fail(c, err, h.loginURL, nil)
			return
		}
		Fail(c, err, h.loginURL, snap)
		return
	}
	Success(c, snap)
}

// Apply 提交草稿
// @Summary 提交草稿
// @Description 新增与移除各至多一次批量请求；部分失败时返回 502，草稿保留，重试只重发未提交的部分
// @Tags 关联编辑
// @Produce json
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Success 200 {object} Response{data=ApplyResponse} "保存成功"
// @Failure 401 {object} Response "登录已过期"
// @Failure 409 {object} Response "正在保存"
// @Failure 502 {object} Response{data=ApplyResponse} "部分或全部保存失败"
// @Router /admin/editors/{id}/apply [post]
func (h *EditorHandler) Apply(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	result, snap, err := h.svc.Apply(c.Request.Context(), middleware.GetCredential(c), id)
	if err != nil {
		var applyErr *service.ApplyError
		if errors.As(err, &applyErr) && !errors.Is(err, service.ErrUnauthorized) {
			resp := ApplyResponse{Result: result, Draft: snap}
			if applyErr.AddErr != nil {
				resp.AddError = service.UserMessage(applyErr.AddErr)
			}
			if applyErr.RemoveErr != nil {
				resp.RemoveError = service.UserMessage(applyErr.RemoveErr)
			}
			Fail(c, err, h.loginURL, resp)
			return
		}
		Fail(c, err, h.loginURL, nil)
		return
	}

	resp := ApplyResponse{Result: result, Draft: snap}
	if result.RefreshErr != nil {
		resp.Warning = "已保存，但刷新列表失败"
	}
	SuccessWithMessage(c, fmt.Sprintf("%s「%s」已保存", snap.Kind.Label(), snap.Parent), resp)
}

// Cancel 取消编辑
// @Summary 取消编辑
// @Description 丢弃草稿，不访问后端
// @Tags 关联编辑
// @Produce json
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Success 200 {object} Response "已取消"
// @Failure 404 {object} Response "会话不存在"
// @Router /admin/editors/{id} [delete]
func (h *EditorHandler) Cancel(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	if err := h.svc.Cancel(id); err != nil {
		Fail(c, err, h.loginURL, nil)
		return
	}
	SuccessWithMessage(c, "已取消", nil)
}

// ListParents 父实体列表
// @Summary 菜单/分类列表
// @Description 返回父实体及其关联菜品数量
// @Tags 关联编辑
// @Produce json
// @Security BearerAuth
// @Param kind path string true "menu 或 category"
// @Success 200 {object} Response{data=[]models.ParentSummary} "获取成功"
// @Failure 400 {object} Response "未知的父实体类型"
// @Router /admin/parents/{kind} [get]
func (h *EditorHandler) ListParents(c *gin.Context) {
	kind, err := models.ParseParentKind(c.Param("kind"))
	if err != nil {
		BadRequest(c, "未知的父实体类型")
		return
	}
	parents, err := h.svc.ListParents(c.Request.Context(), middleware.GetCredential(c), kind)
	if err != nil {
		Fail(c, err, h.loginURL, nil)
		return
	}
	Success(c, parents)
}

func (h *EditorHandler) sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Message: "无效的会话ID"})
		return uuid.Nil, false
	}
	return id, true
}
