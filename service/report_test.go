package service

import (
	"testing"

	"restoadmin/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestDashboardReport(t *testing.T) {
	snap := DashboardSnapshot{
		Range: testRange(),
		Stats: &models.DashboardStats{TotalRevenue: 1500, TotalOrders: 40},
		Revenue: []models.RevenuePoint{
			{Date: "2024-03-01", Revenue: 700, Orders: 18},
			{Date: "2024-03-02", Revenue: 800, Orders: 22},
		},
		Heatmap: []models.HeatmapCell{
			{Weekday: 5, Hour: 19, Revenue: 300},
			{Weekday: 5, Hour: 19, Revenue: 20},
			{Weekday: 9, Hour: 1, Revenue: 999},
		},
		TopItems:      []models.TopItem{{Name: "Burger", Quantity: 12, Revenue: 142.8}},
		BusiestTables: []models.BusyTable{{Table: "T7", OrderCount: 9, Revenue: 320}},
	}

	buf, err := DashboardReport(snap)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSummary, SheetRevenue, SheetHeatmap, SheetTopItems, SheetTopCategories, SheetBusiestTables}, f.GetSheetList())

	summary, err := f.GetRows(SheetSummary)
	require.NoError(t, err)
	assert.Equal(t, []string{"指标", "数值"}, summary[0])
	assert.Equal(t, []string{"日期范围", "2024-03-01~2024-03-07"}, summary[1])
	assert.Equal(t, []string{"营业额", "1500"}, summary[2])

	revenue, err := f.GetRows(SheetRevenue)
	require.NoError(t, err)
	require.Len(t, revenue, 3)
	assert.Equal(t, []string{"2024-03-02", "800", "22"}, revenue[2])

	heatmap, err := f.GetRows(SheetHeatmap)
	require.NoError(t, err)
	require.Len(t, heatmap, 8)
	assert.Equal(t, "星期", heatmap[0][0])
	assert.Equal(t, "23时", heatmap[0][24])
	assert.Equal(t, "周五", heatmap[6][0])
	assert.Equal(t, "320", heatmap[6][20])
	assert.Equal(t, "0", heatmap[1][1])

	items, err := f.GetRows(SheetTopItems)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "Burger", "12", "142.8"}, items[1])

	// 空切片只有表头
	cats, err := f.GetRows(SheetTopCategories)
	require.NoError(t, err)
	assert.Len(t, cats, 1)
}
