package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"restoadmin/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAnalytics 按切片名注入失败
type fakeAnalytics struct {
	mu      sync.Mutex
	fail    map[string]error
	ranges  []DateRange
	revenue float64
}

func (f *fakeAnalytics) check(slice string, rng DateRange) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ranges = append(f.ranges, rng)
	return f.fail[slice]
}

func (f *fakeAnalytics) GetStats(ctx context.Context, cred Credential, rng DateRange) (*models.DashboardStats, error) {
	if err := f.check(SliceStats, rng); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return &models.DashboardStats{TotalRevenue: f.revenue, TotalOrders: 3}, nil
}

func (f *fakeAnalytics) GetRevenue(ctx context.Context, cred Credential, rng DateRange) ([]models.RevenuePoint, error) {
	if err := f.check(SliceRevenue, rng); err != nil {
		return nil, err
	}
	return []models.RevenuePoint{
		{Date: "2024-03-02", Revenue: 20},
		{Date: "2024-03-01", Revenue: 10},
	}, nil
}

func (f *fakeAnalytics) GetRevenueHeatmap(ctx context.Context, cred Credential, rng DateRange) ([]models.HeatmapCell, error) {
	if err := f.check(SliceHeatmap, rng); err != nil {
		return nil, err
	}
	return []models.HeatmapCell{
		{Weekday: 2, Hour: 12, Revenue: 5},
		{Weekday: 1, Hour: 19, Revenue: 8},
		{Weekday: 1, Hour: 12, Revenue: 3},
	}, nil
}

func (f *fakeAnalytics) GetTopItems(ctx context.Context, cred Credential, rng DateRange) ([]models.TopItem, error) {
	if err := f.check(SliceTopItems, rng); err != nil {
		return nil, err
	}
	return []models.TopItem{
		{Name: "Fries", Quantity: 30, Revenue: 90},
		{Name: "Burger", Quantity: 12, Revenue: 142.8},
	}, nil
}

func (f *fakeAnalytics) GetTopCategories(ctx context.Context, cred Credential, rng DateRange) ([]models.TopCategory, error) {
	if err := f.check(SliceTopCategories, rng); err != nil {
		return nil, err
	}
	return []models.TopCategory{{Name: "Mains", Quantity: 20, Revenue: 200}}, nil
}

func (f *fakeAnalytics) GetBusiestTables(ctx context.Context, cred Credential, rng DateRange) ([]models.BusyTable, error) {
	if err := f.check(SliceBusiestTables, rng); err != nil {
		return nil, err
	}
	return []models.BusyTable{
		{Table: "T2", OrderCount: 3},
		{Table: "T7", OrderCount: 9},
	}, nil
}

func (f *fakeAnalytics) setFail(slice string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail == nil {
		f.fail = make(map[string]error)
	}
	if err == nil {
		delete(f.fail, slice)
		return
	}
	f.fail[slice] = err
}

func testRange() DateRange {
	return DateRange{
		Preset: PresetCustom,
		Start:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		End:    time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC),
	}
}

func TestDashboard_RefreshAllSlices(t *testing.T) {
	fa := &fakeAnalytics{revenue: 100}
	d := NewDashboard(nil)

	require.NoError(t, d.Refresh(context.Background(), fa, Credential{}, testRange()))
	assert.False(t, d.Loading())

	snap := d.Snapshot()
	assert.Equal(t, "2024-03-01~2024-03-07", snap.Range.String())
	require.NotNil(t, snap.Stats)
	assert.Equal(t, 100.0, snap.Stats.TotalRevenue)
	assert.Equal(t, "2024-03-01", snap.Revenue[0].Date)
	assert.Equal(t, models.HeatmapCell{Weekday: 1, Hour: 12, Revenue: 3}, snap.Heatmap[0])
	assert.Equal(t, "Burger", snap.TopItems[0].Name)
	assert.Equal(t, "T7", snap.BusiestTables[0].Table)
	assert.Empty(t, snap.Errors)
	assert.Len(t, snap.UpdatedAt, 6)

	// 六个查询使用同一个日期范围
	assert.Len(t, fa.ranges, 6)
	for _, r := range fa.ranges {
		assert.Equal(t, testRange(), r)
	}
}

func TestDashboard_FailedSliceKeepsPreviousData(t *testing.T) {
	fa := &fakeAnalytics{revenue: 100}
	d := NewDashboard(nil)
	require.NoError(t, d.Refresh(context.Background(), fa, Credential{}, testRange()))

	fa.mu.Lock()
	fa.revenue = 250
	fa.mu.Unlock()
	fa.setFail(SliceStats, errBoom)
	fa.setFail(SliceTopItems, &APIError{Status: 500, Message: "统计服务异常"})

	err := d.Refresh(context.Background(), fa, Credential{}, testRange())
	assert.ErrorIs(t, err, errBoom)
	assert.False(t, d.Loading())

	snap := d.Snapshot()
	assert.Equal(t, 100.0, snap.Stats.TotalRevenue)
	assert.Len(t, snap.TopItems, 2)
	assert.Equal(t, "服务暂时不可用，请稍后再试", snap.Errors[SliceStats])
	assert.Equal(t, "统计服务异常", snap.Errors[SliceTopItems])
	assert.Len(t, snap.Errors, 2)

	// 恢复后错误被清除
	fa.setFail(SliceStats, nil)
	fa.setFail(SliceTopItems, nil)
	require.NoError(t, d.Refresh(context.Background(), fa, Credential{}, testRange()))
	snap = d.Snapshot()
	assert.Equal(t, 250.0, snap.Stats.TotalRevenue)
	assert.Empty(t, snap.Errors)
}

func TestDashboard_SnapshotIsCopy(t *testing.T) {
	d := NewDashboard(nil)
	require.NoError(t, d.Refresh(context.Background(), &fakeAnalytics{}, Credential{}, testRange()))

	snap := d.Snapshot()
	snap.TopItems[0].Name = "changed"
	snap.Stats.TotalOrders = 99

	again := d.Snapshot()
	assert.Equal(t, "Burger", again.TopItems[0].Name)
	assert.Equal(t, 3, again.Stats.TotalOrders)
}
