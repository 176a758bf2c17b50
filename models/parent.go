package models

import "fmt"

// ParentKind 父实体类型
type ParentKind string

const (
	ParentMenu     ParentKind = "menu"
	ParentCategory ParentKind = "category"
)

// ParseParentKind 解析父实体类型，兼容复数形式（menus、categories）
func ParseParentKind(s string) (ParentKind, error) {
	switch s {
	case "menu", "menus":
		return ParentMenu, nil
	case "category", "categories":
		return ParentCategory, nil
	}
	return "", fmt.Errorf("unknown parent kind %q", s)
}

// Label 中文名称，用于提示信息
func (k ParentKind) Label() string {
	switch k {
	case ParentMenu:
		return "菜单"
	case ParentCategory:
		return "分类"
	}
	return string(k)
}

// Parent 父实体（菜单或分类），以名称作为唯一标识，多对多持有菜品
type Parent struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	FoodItems   []FoodItem `json:"foodItems,omitempty"`
}

// ParentSummary 父实体列表项，含关联数量
type ParentSummary struct {
	Name      string `json:"name"`
	ItemCount int    `json:"item_count"`
}

// Summarize 生成列表摘要
func Summarize(parents []Parent) []ParentSummary {
	out := make([]ParentSummary, 0, len(parents))
	for _, p := range parents {
		out = append(out, ParentSummary{Name: p.Name, ItemCount: len(p.FoodItems)})
	}
	return out
}

// NamesRequest 批量关联/取消关联请求体
type NamesRequest struct {
	Names []string `json:"names"`
}
