package api

import (
	"errors"
	"net/http"

	"restoadmin/config"
	"restoadmin/service"

	"github.com/gin-gonic/gin"
)

// Response 通用响应结构
type Response struct {
	Success  bool        `json:"success"`
	Message  string      `json:"message,omitempty"`
	Data     interface{} `json:"data,omitempty"`
	Detail   string      `json:"detail,omitempty"`
	Redirect string      `json:"redirect,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

// SuccessWithMessage 带消息的成功响应
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Message: message, Data: data})
}

// Error 错误响应
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{Success: false, Message: message})
}

// BadRequest 400 错误响应
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized 401 响应，附带登录页地址，客户端应丢弃凭证并跳转
func Unauthorized(c *gin.Context, loginURL string) {
	c.JSON(http.StatusUnauthorized, Response{
		Success:  false,
		Message:  service.UserMessage(service.ErrUnauthorized),
		Redirect: loginURL,
	})
}

// statusFor 把服务层错误映射为 HTTP 状态码
func statusFor(err error) int {
	var (
		apiErr   *service.APIError
		applyErr *service.ApplyError
	)
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.As(err, &applyErr):
		return http.StatusBadGateway
	case errors.Is(err, service.ErrEmptyParentKey),
		errors.Is(err, service.ErrNotInCatalog),
		errors.Is(err, service.ErrInvalidRange):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrAlreadyCurrent),
		errors.Is(err, service.ErrNotCurrent),
		errors.Is(err, service.ErrApplyInProgress):
		return http.StatusConflict
	case errors.Is(err, service.ErrDraftClosed):
		return http.StatusGone
	case errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound:
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

// Fail 按错误类型输出失败响应；data 可携带当前草稿等上下文
func Fail(c *gin.Context, err error, loginURL string, data interface{}) {
	_ = c.Error(err)
	status := statusFor(err)
	if status == http.StatusUnauthorized {
		Unauthorized(c, loginURL)
		return
	}
	c.JSON(status, Response{
		Success: false,
		Message: service.UserMessage(err),
		Detail:  config.SafeErrorMessage(err, ""),
		Data:    data,
	})
}
