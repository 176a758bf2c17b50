package models

import "time"

// OrderStatus 订单状态
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderServed    OrderStatus = "served"
	OrderPaid      OrderStatus = "paid"
	OrderCancelled OrderStatus = "cancelled"
)

// IsActive 是否仍需后厨/服务员处理
func (s OrderStatus) IsActive() bool {
	switch s {
	case OrderServed, OrderPaid, OrderCancelled:
		return false
	}
	return true
}

// OrderLine 订单行
type OrderLine struct {
	FoodItem string  `json:"foodItem"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Order 订单
type Order struct {
	ID        string      `json:"id"`
	Table     string      `json:"table"`
	Status    OrderStatus `json:"status"`
	Items     []OrderLine `json:"items"`
	Total     float64     `json:"total"`
	CreatedAt time.Time   `json:"createdAt"`
}

// CallRequest 顾客呼叫服务员请求
type CallRequest struct {
	ID        string    `json:"id"`
	Table     string    `json:"table"`
	Reason    string    `json:"reason"`
	Resolved  bool      `json:"resolved"`
	CreatedAt time.Time `json:"createdAt"`
}
