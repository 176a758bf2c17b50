package models

// FoodItem 菜品（子实体），以名称作为唯一标识
type FoodItem struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"` // 图片引用，可为空
}
