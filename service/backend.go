package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"restoadmin/config"
	"restoadmin/models"
)

// AssociationBackend 关联编辑器依赖的后端操作
type AssociationBackend interface {
	ListParents(ctx context.Context, cred Credential, kind models.ParentKind) ([]models.Parent, error)
	GetParent(ctx context.Context, cred Credential, kind models.ParentKind, key string) (*models.Parent, error)
	ListChildren(ctx context.Context, cred Credential) ([]models.FoodItem, error)
	Associate(ctx context.Context, cred Credential, kind models.ParentKind, key string, names []string) (*models.Parent, error)
	Disassociate(ctx context.Context, cred Credential, kind models.ParentKind, key string, names []string) (*models.Parent, error)
}

// AnalyticsBackend 仪表盘依赖的只读查询
type AnalyticsBackend interface {
	GetStats(ctx context.Context, cred Credential, rng DateRange) (*models.DashboardStats, error)
	GetRevenue(ctx context.Context, cred Credential, rng DateRange) ([]models.RevenuePoint, error)
	GetRevenueHeatmap(ctx context.Context, cred Credential, rng DateRange) ([]models.HeatmapCell, error)
	GetTopItems(ctx context.Context, cred Credential, rng DateRange) ([]models.TopItem, error)
	GetTopCategories(ctx context.Context, cred Credential, rng DateRange) ([]models.TopCategory, error)
	GetBusiestTables(ctx context.Context, cred Credential, rng DateRange) ([]models.BusyTable, error)
}

// TrackerBackend 订单跟踪依赖的只读查询
type TrackerBackend interface {
	ListOrders(ctx context.Context, cred Credential) ([]models.Order, error)
	ListCallRequests(ctx context.Context, cred Credential) ([]models.CallRequest, error)
}

// BackendClient 餐厅后端 REST 客户端
type BackendClient struct {
	baseURL     string
	collections config.CollectionsConfig
	httpClient  *http.Client
	logger      *slog.Logger
}

// NewBackendClient 创建后端客户端
func NewBackendClient(cfg config.BackendConfig, logger *slog.Logger) *BackendClient {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	cols := cfg.Collections
	if cols.Menu == "" {
		cols.Menu = "menus"
	}
	if cols.Category == "" {
		cols.Category = "categories"
	}
	if cols.Child == "" {
		cols.Child = "fooditems"
	}
	return &BackendClient{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		collections: cols,
		httpClient:  &http.Client{Timeout: timeout},
		logger:      logger.With("component", "backend_client"),
	}
}

func (c *BackendClient) parentCollection(kind models.ParentKind) (string, error) {
	switch kind {
	case models.ParentMenu:
		return c.collections.Menu, nil
	case models.ParentCategory:
		return c.collections.Category, nil
	}
	return "", fmt.Errorf("unknown parent kind %q", kind)
}

// ListParents GET /{parentCollection}
func (c *BackendClient) ListParents(ctx context.Context, cred Credential, kind models.ParentKind) ([]models.Parent, error) {
	col, err := c.parentCollection(kind)
	if err != nil {
		return nil, err
	}
	var parents []models.Parent
	if err := c.do(ctx, cred, http.MethodGet, "/"+col, nil, nil, &parents); err != nil {
		return nil, fmt.Errorf("list %s: %w", col, err)
	}
	return parents, nil
}

// GetParent GET /{parentCollection}/{key}
func (c *BackendClient) GetParent(ctx context.Context, cred Credential, kind models.ParentKind, key string) (*models.Parent, error) {
	col, err := c.parentCollection(kind)
	if err != nil {
		return nil, err
	}
	var parent models.Parent
	if err := c.do(ctx, cred, http.MethodGet, "/"+col+"/"+url.PathEscape(key), nil, nil, &parent); err != nil {
		return nil, fmt.Errorf("get %s %q: %w", col, key, err)
	}
	if parent.Name == "" {
		parent.Name = key
	}
	return &parent, nil
}

// ListChildren GET /{childCollection}
func (c *BackendClient) ListChildren(ctx context.Context, cred Credential) ([]models.FoodItem, error) {
	var items []models.FoodItem
	if err := c.do(ctx, cred, http.MethodGet, "/"+c.collections.Child, nil, nil, &items); err != nil {
		return nil, fmt.Errorf("list %s: %w", c.collections.Child, err)
	}
	return items, nil
}

// Associate PUT /{parentCollection}/{key}/{childCollection}
func (c *BackendClient) Associate(ctx context.Context, cred Credential, kind models.ParentKind, key string, names []string) (*models.Parent, error) {
	return c.bulk(ctx, cred, http.MethodPut, kind, key, names)
}

// Disassociate DELETE /{parentCollection}/{key}/{childCollection}
func (c *BackendClient) Disassociate(ctx context.Context, cred Credential, kind models.ParentKind, key string, names []string) (*models.Parent, error) {
	return c.bulk(ctx, cred, http.MethodDelete, kind, key, names)
}

func (c *BackendClient) bulk(ctx context.Context, cred Credential, method string, kind models.ParentKind, key string, names []string) (*models.Parent, error) {
	col, err := c.parentCollection(kind)
	if err != nil {
		return nil, err
	}
	path := "/" + col + "/" + url.PathEscape(key) + "/" + c.collections.Child
	var parent models.Parent
	if err := c.do(ctx, cred, method, path, nil, models.NamesRequest{Names: names}, &parent); err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return &parent, nil
}

// GetStats GET /dashboard/stats
func (c *BackendClient) GetStats(ctx context.Context, cred Credential, rng DateRange) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	if err := c.do(ctx, cred, http.MethodGet, "/dashboard/stats", rng.Query(), nil, &stats); err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return &stats, nil
}

// GetRevenue GET /dashboard/revenue
func (c *BackendClient) GetRevenue(ctx context.Context, cred Credential, rng DateRange) ([]models.RevenuePoint, error) {
	var points []models.RevenuePoint
	if err := c.do(ctx, cred, http.MethodGet, "/dashboard/revenue", rng.Query(), nil, &points); err != nil {
		return nil, fmt.Errorf("dashboard revenue: %w", err)
	}
	return points, nil
}

// GetRevenueHeatmap GET /dashboard/revenue-heatmap
func (c *BackendClient) GetRevenueHeatmap(ctx context.Context, cred Credential, rng DateRange) ([]models.HeatmapCell, error) {
	var cells []models.HeatmapCell
	if err := c.do(ctx, cred, http.MethodGet, "/dashboard/revenue-heatmap", rng.Query(), nil, &cells); err != nil {
		return nil, fmt.Errorf("dashboard revenue heatmap: %w", err)
	}
	return cells, nil
}

// GetTopItems GET /dashboard/top-items
func (c *BackendClient) GetTopItems(ctx context.Context, cred Credential, rng DateRange) ([]models.TopItem, error) {
	var items []models.TopItem
	if err := c.do(ctx, cred, http.MethodGet, "/dashboard/top-items", rng.Query(), nil, &items); err != nil {
		return nil, fmt.Errorf("dashboard top items: %w", err)
	}
	return items, nil
}

// GetTopCategories GET /dashboard/top-categories
func (c *BackendClient) GetTopCategories(ctx context.Context, cred Credential, rng DateRange) ([]models.TopCategory, error) {
	var cats []models.TopCategory
	if err := c.do(ctx, cred, http.MethodGet, "/dashboard/top-categories", rng.Query(), nil, &cats); err != nil {
		return nil, fmt.Errorf("dashboard top categories: %w", err)
	}
	return cats, nil
}

// GetBusiestTables GET /dashboard/busiest-tables
func (c *BackendClient) GetBusiestTables(ctx context.Context, cred Credential, rng DateRange) ([]models.BusyTable, error) {
	var tables []models.BusyTable
	if err := c.do(ctx, cred, http.MethodGet, "/dashboard/busiest-tables", rng.Query(), nil, &tables); err != nil {
		return nil, fmt.Errorf("dashboard busiest tables: %w", err)
	}
	return tables, nil
}

// ListOrders GET /orders
func (c *BackendClient) ListOrders(ctx context.Context, cred Credential) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, cred, http.MethodGet, "/orders", nil, nil, &orders); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// ListCallRequests GET /call-requests
func (c *BackendClient) ListCallRequests(ctx context.Context, cred Credential) ([]models.CallRequest, error) {
	var calls []models.CallRequest
	if err := c.do(ctx, cred, http.MethodGet, "/call-requests", nil, nil, &calls); err != nil {
		return nil, fmt.Errorf("list call requests: %w", err)
	}
	return calls, nil
}

// do 发送请求并解码响应；out 为 nil 时忽略响应体
func (c *BackendClient) do(ctx context.Context, cred Credential, method, path string, query url.Values, body, out interface{}) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("编码请求失败: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("创建请求失败: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cred.Available() {
		req.Header.Set("Authorization", "Bearer "+cred.Token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("backend request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("请求后端失败: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("读取响应失败: %w", err)
	}

	c.logger.Debug("backend request", "method", method, "path", path,
		"status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, Message: errorMessage(data)}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		c.logger.Warn("backend returned error", "method", method, "path", path,
			"status", resp.StatusCode, "message", apiErr.Message)
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(unwrapData(data), out); err != nil {
		return fmt.Errorf("解析响应失败: %w", err)
	}
	return nil
}

// unwrapData 兼容 {"data": ...} 包装与裸 JSON 两种响应
func unwrapData(data []byte) []byte {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return data
	}
	if inner, ok := envelope["data"]; ok && len(inner) > 0 {
		return inner
	}
	return data
}

// errorMessage 从错误响应体中提取 message/error 字段
func errorMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return strings.TrimSpace(string(data))
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}
