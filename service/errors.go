package service

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrUnauthorized 后端返回 401，调用方应丢弃凭证并跳转登录
	ErrUnauthorized = errors.New("unauthorized")

	ErrEmptyParentKey  = errors.New("parent key is empty")
	ErrNotInCatalog    = errors.New("food item is not in the catalog")
	ErrAlreadyCurrent  = errors.New("food item is already associated")
	ErrNotCurrent      = errors.New("food item is not associated")
	ErrDraftClosed     = errors.New("draft is closed")
	ErrApplyInProgress = errors.New("apply already in progress")
	ErrSessionNotFound = errors.New("editor session not found")
	ErrInvalidRange    = errors.New("invalid date range")
)

// APIError 后端返回的非 2xx 响应
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

// Is 让 errors.Is(err, ErrUnauthorized) 对 401 成立
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// ApplyError 提交草稿时的部分或全部失败，成功的一半已经生效
// AttemptedAdd/AttemptedRemove 标记本次实际发出的请求
type ApplyError struct {
	AddErr          error
	RemoveErr       error
	AttemptedAdd    bool
	AttemptedRemove bool
}

func (e *ApplyError) Error() string {
	var parts []string
	if e.AddErr != nil {
		parts = append(parts, "associate failed: "+e.AddErr.Error())
	}
	if e.RemoveErr != nil {
		parts = append(parts, "disassociate failed: "+e.RemoveErr.Error())
	}
	return strings.Join(parts, "; ")
}

// Unwrap 支持 errors.Is/As 穿透到两半的错误
func (e *ApplyError) Unwrap() []error {
	var errs []error
	if e.AddErr != nil {
		errs = append(errs, e.AddErr)
	}
	if e.RemoveErr != nil {
		errs = append(errs, e.RemoveErr)
	}
	return errs
}

// UserMessage 将任意错误归一化为面向用户的提示
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var applyErr *ApplyError
	if errors.As(err, &applyErr) {
		addSaved := applyErr.AttemptedAdd && applyErr.AddErr == nil
		removeSaved := applyErr.AttemptedRemove && applyErr.RemoveErr == nil
		switch {
		case applyErr.AddErr != nil && applyErr.RemoveErr != nil:
			return "添加与移除均未保存，请重试"
		case applyErr.AddErr != nil && removeSaved:
			return "移除已保存，添加失败，请重试"
		case applyErr.AddErr != nil:
			return "添加失败，请重试"
		case addSaved:
			return "添加已保存，移除失败，请重试"
		default:
			return "移除失败，请重试"
		}
	}
	if errors.Is(err, ErrUnauthorized) {
		return "登录已过期，请重新登录"
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return http.StatusText(apiErr.Status)
	}
	switch {
	case errors.Is(err, ErrEmptyParentKey):
		return "请选择要编辑的菜单或分类"
	case errors.Is(err, ErrNotInCatalog):
		return "菜品不存在"
	case errors.Is(err, ErrAlreadyCurrent):
		return "菜品已在列表中"
	case errors.Is(err, ErrNotCurrent):
		return "菜品不在列表中"
	case errors.Is(err, ErrDraftClosed), errors.Is(err, ErrSessionNotFound):
		return "编辑会话已关闭"
	case errors.Is(err, ErrApplyInProgress):
		return "正在保存，请稍候"
	case errors.Is(err, ErrInvalidRange):
		return "日期范围无效"
	}
	return "服务暂时不可用，请稍后再试"
}
