package models

// DashboardStats 仪表盘汇总指标
type DashboardStats struct {
	TotalRevenue  float64 `json:"totalRevenue"`
	TotalOrders   int     `json:"totalOrders"`
	AverageTicket float64 `json:"averageTicket"`
	ActiveTables  int     `json:"activeTables"`
	NewCustomers  int     `json:"newCustomers"`
}

// RevenuePoint 营收时间序列上的一个点，Date 格式 YYYY-MM-DD
type RevenuePoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// HeatmapCell 营收热力图单元（星期 x 小时）
type HeatmapCell struct {
	Weekday int     `json:"weekday"` // 0=周日
	Hour    int     `json:"hour"`
	Revenue float64 `json:"revenue"`
}

// TopItem 热销菜品
type TopItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// TopCategory 热销分类
type TopCategory struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// BusyTable 最繁忙餐桌
type BusyTable struct {
	Table      string  `json:"table"`
	OrderCount int     `json:"orderCount"`
	Revenue    float64 `json:"revenue"`
}
