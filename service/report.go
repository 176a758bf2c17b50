package service

import (
	"bytes"
	"fmt"

	"restoadmin/models"

	"github.com/xuri/excelize/v2"
)

var cellBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
}

// 报表工作表名称
const (
	SheetSummary       = "汇总"
	SheetRevenue       = "营收趋势"
	SheetHeatmap       = "营收热力图"
	SheetTopItems      = "热销菜品"
	SheetTopCategories = "热销分类"
	SheetBusiestTables = "繁忙餐桌"
)

// DashboardReport 把仪表盘快照导出为 Excel
func DashboardReport(snap DashboardSnapshot) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    cellBorder,
	})
	if err != nil {
		return nil, fmt.Errorf("创建表头样式失败: %w", err)
	}
	dataStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    cellBorder,
	})
	if err != nil {
		return nil, fmt.Errorf("创建数据样式失败: %w", err)
	}

	w := sheetWriter{f: f, header: headerStyle, data: dataStyle}

	// 汇总
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, err
	}
	summary := [][]interface{}{
		{"日期范围", snap.Range.String()},
	}
	if snap.Stats != nil {
		summary = append(summary,
			[]interface{}{"营业额", snap.Stats.TotalRevenue},
			[]interface{}{"订单数", snap.Stats.TotalOrders},
			[]interface{}{"客单价", snap.Stats.AverageTicket},
			[]interface{}{"使用中餐桌", snap.Stats.ActiveTables},
			[]interface{}{"新顾客", snap.Stats.NewCustomers},
		)
	}
	if err := w.write(SheetSummary, []string{"指标", "数值"}, summary); err != nil {
		return nil, err
	}

	revenue := make([][]interface{}, 0, len(snap.Revenue))
	for _, p := range snap.Revenue {
		revenue = append(revenue, []interface{}{p.Date, p.Revenue, p.Orders})
	}
	if err := w.writeSheet(SheetRevenue, []string{"日期", "营业额", "订单数"}, revenue); err != nil {
		return nil, err
	}

	hours := make([]string, 0, 25)
	hours = append(hours, "星期")
	for h := 0; h < 24; h++ {
		hours = append(hours, fmt.Sprintf("%d时", h))
	}
	if err := w.writeSheet(SheetHeatmap, hours, heatmapRows(snap.Heatmap)); err != nil {
		return nil, err
	}

	items := make([][]interface{}, 0, len(snap.TopItems))
	for i, it := range snap.TopItems {
		items = append(items, []interface{}{i + 1, it.Name, it.Quantity, it.Revenue})
	}
	if err := w.writeSheet(SheetTopItems, []string{"排名", "菜品", "销量", "营业额"}, items); err != nil {
		return nil, err
	}

	cats := make([][]interface{}, 0, len(snap.TopCategories))
	for i, c := range snap.TopCategories {
		cats = append(cats, []interface{}{i + 1, c.Name, c.Quantity, c.Revenue})
	}
	if err := w.writeSheet(SheetTopCategories, []string{"排名", "分类", "销量", "营业额"}, cats); err != nil {
		return nil, err
	}

	tables := make([][]interface{}, 0, len(snap.BusiestTables))
	for i, t := range snap.BusiestTables {
		tables = append(tables, []interface{}{i + 1, t.Table, t.OrderCount, t.Revenue})
	}
	if err := w.writeSheet(SheetBusiestTables, []string{"排名", "餐桌", "订单数", "营业额"}, tables); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("生成 Excel 失败: %w", err)
	}
	return buf, nil
}

var weekdayNames = [7]string{"周日", "周一", "周二", "周三", "周四", "周五", "周六"}

// heatmapRows 星期 x 小时的营收矩阵，越界的单元被忽略
func heatmapRows(cells []models.HeatmapCell) [][]interface{} {
	var grid [7][24]float64
	for _, c := range cells {
		if c.Weekday < 0 || c.Weekday > 6 || c.Hour < 0 || c.Hour > 23 {
			continue
		}
		grid[c.Weekday][c.Hour] += c.Revenue
	}
	rows := make([][]interface{}, 0, 7)
	for d, day := range grid {
		row := make([]interface{}, 0, 25)
		row = append(row, weekdayNames[d])
		for _, v := range day {
			row = append(row, v)
		}
		rows = append(rows, row)
	}
	return rows
}

type sheetWriter struct {
	f      *excelize.File
	header int
	data   int
}

func (w sheetWriter) writeSheet(sheet string, headers []string, rows [][]interface{}) error {
	if _, err := w.f.NewSheet(sheet); err != nil {
		return err
	}
	return w.write(sheet, headers, rows)
}

func (w sheetWriter) write(sheet string, headers []string, rows [][]interface{}) error {
	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	if err := w.f.SetColWidth(sheet, "A", lastCol, 16); err != nil {
		return err
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := w.f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	if err := w.f.SetCellStyle(sheet, "A1", lastCol+"1", w.header); err != nil {
		return err
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := w.f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
		first, _ := excelize.CoordinatesToCellName(1, r+2)
		last, _ := excelize.CoordinatesToCellName(len(headers), r+2)
		if err := w.f.SetCellStyle(sheet, first, last, w.data); err != nil {
			return err
		}
	}
	return nil
}
