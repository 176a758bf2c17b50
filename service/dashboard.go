package service

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"restoadmin/models"
)

// 仪表盘的六个视图切片
const (
	SliceStats         = "stats"
	SliceRevenue       = "revenue"
	SliceHeatmap       = "heatmap"
	SliceTopItems      = "top_items"
	SliceTopCategories = "top_categories"
	SliceBusiestTables = "busiest_tables"
)

// DashboardSnapshot 仪表盘数据副本
type DashboardSnapshot struct {
	Range         DateRange              `json:"range"`
	Loading       bool                   `json:"loading"`
	Stats         *models.DashboardStats `json:"stats"`
	Revenue       []models.RevenuePoint  `json:"revenue"`
	Heatmap       []models.HeatmapCell   `json:"heatmap"`
	TopItems      []models.TopItem       `json:"top_items"`
	TopCategories []models.TopCategory   `json:"top_categories"`
	BusiestTables []models.BusyTable     `json:"busiest_tables"`
	Errors        map[string]string      `json:"errors,omitempty"`
	UpdatedAt     map[string]time.Time   `json:"updated_at,omitempty"`
}

// Dashboard 仪表盘视图状态
//
// Refresh 并发发出六个独立查询，共用一个 loading 标记；
// 每个查询只更新自己的切片，失败的切片保留上一次成功的数据。
// 并发的两批刷新之间不做隔离，同一切片以最后返回的响应为准。
type Dashboard struct {
	mu sync.RWMutex

	rng           DateRange
	loading       bool
	stats         *models.DashboardStats
	revenue       []models.RevenuePoint
	heatmap       []models.HeatmapCell
	topItems      []models.TopItem
	topCategories []models.TopCategory
	busiestTables []models.BusyTable
	errs          map[string]error
	updatedAt     map[string]time.Time

	logger *slog.Logger
}

// NewDashboard 创建仪表盘
func NewDashboard(logger *slog.Logger) *Dashboard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dashboard{
		errs:      make(map[string]error),
		updatedAt: make(map[string]time.Time),
		logger:    logger.With("component", "dashboard"),
	}
}

// Refresh 按日期范围刷新全部切片，等待所有查询结束后返回
// 返回值为本批次中第一个失败的查询错误（按切片顺序）
func (d *Dashboard) Refresh(ctx context.Context, backend AnalyticsBackend, cred Credential, rng DateRange) error {
	d.mu.Lock()
	d.loading = true
	d.rng = rng
	d.mu.Unlock()

	d.logger.Info("dashboard refresh", "range", rng.String(), "preset", rng.Preset)

	fetches := []struct {
		slice string
		run   func() error
	}{
		{SliceStats, func() error {
			v, err := backend.GetStats(ctx, cred, rng)
			if err == nil {
				d.store(SliceStats, func() { d.stats = v })
			}
			return err
		}},
		{SliceRevenue, func() error {
			v, err := backend.GetRevenue(ctx, cred, rng)
			if err == nil {
				sort.SliceStable(v, func(i, j int) bool { return v[i].Date < v[j].Date })
				d.store(SliceRevenue, func() { d.revenue = v })
			}
			return err
		}},
		{SliceHeatmap, func() error {
			v, err := backend.GetRevenueHeatmap(ctx, cred, rng)
			if err == nil {
				sort.SliceStable(v, func(i, j int) bool {
					if v[i].Weekday != v[j].Weekday {
						return v[i].Weekday < v[j].Weekday
					}
					return v[i].Hour < v[j].Hour
				})
				d.store(SliceHeatmap, func() { d.heatmap = v })
			}
			return err
		}},
		{SliceTopItems, func() error {
			v, err := backend.GetTopItems(ctx, cred, rng)
			if err == nil {
				sort.SliceStable(v, func(i, j int) bool { return v[i].Revenue > v[j].Revenue })
				d.store(SliceTopItems, func() { d.topItems = v })
			}
			return err
		}},
		{SliceTopCategories, func() error {
			v, err := backend.GetTopCategories(ctx, cred, rng)
			if err == nil {
				sort.SliceStable(v, func(i, j int) bool { return v[i].Revenue > v[j].Revenue })
				d.store(SliceTopCategories, func() { d.topCategories = v })
			}
			return err
		}},
		{SliceBusiestTables, func() error {
			v, err := backend.GetBusiestTables(ctx, cred, rng)
			if err == nil {
				sort.SliceStable(v, func(i, j int) bool { return v[i].OrderCount > v[j].OrderCount })
				d.store(SliceBusiestTables, func() { d.busiestTables = v })
			}
			return err
		}},
	}

	errs := make([]error, len(fetches))
	var wg sync.WaitGroup
	for i, f := range fetches {
		wg.Add(1)
		go func(i int, slice string, run func() error) {
			defer wg.Done()
			if err := run(); err != nil {
				d.logger.Error("dashboard slice failed", "slice", slice, "range", rng.String(), "error", err)
				d.mu.Lock()
				d.errs[slice] = err
				d.mu.Unlock()
				errs[i] = err
			}
		}(i, f.slice, f.run)
	}
	wg.Wait()

	d.mu.Lock()
	d.loading = false
	d.mu.Unlock()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// store 在锁内更新单个切片并清除它的错误
func (d *Dashboard) store(slice string, apply func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	apply()
	delete(d.errs, slice)
	d.updatedAt[slice] = time.Now()
}

// Loading 是否有批次正在进行
func (d *Dashboard) Loading() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loading
}

// Snapshot 返回当前数据副本
func (d *Dashboard) Snapshot() DashboardSnapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()

	snap := DashboardSnapshot{
		Range:         d.rng,
		Loading:       d.loading,
		Revenue:       append([]models.RevenuePoint(nil), d.revenue...),
		Heatmap:       append([]models.HeatmapCell(nil), d.heatmap...),
		TopItems:      append([]models.TopItem(nil), d.topItems...),
		TopCategories: append([]models.TopCategory(nil), d.topCategories...),
		BusiestTables: append([]models.BusyTable(nil), d.busiestTables...),
		UpdatedAt:     make(map[string]time.Time, len(d.updatedAt)),
	}
	if d.stats != nil {
		stats := *d.stats
		snap.Stats = &stats
	}
	if len(d.errs) > 0 {
		snap.Errors = make(map[string]string, len(d.errs))
		for slice, err := range d.errs {
			snap.Errors[slice] = UserMessage(err)
		}
	}
	for slice, t := range d.updatedAt {
		snap.UpdatedAt[slice] = t
	}
	return snap
}
