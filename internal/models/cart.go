package models

import (
	"github.com/shopspring/decimal"
)

// CartLine 购物车行（商品 + 可选规格 + 数量）
type CartLine struct {
	ID          string `json:"id"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Size        string `json:"size,omitempty"`
	Price       Money  `json:"price"`
	Quantity    int    `json:"quantity"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// Key 购物车行标识：优先服务端行 ID，否则商品 ID + 规格
func (l CartLine) Key() string {
	if l.ID != "" {
		return l.ID
	}
	return l.ProductID + "|" + l.Size
}

// Subtotal 行小计（单价 × 数量，不做舍入）
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Decimal.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// PendingUpdate 待同步的购物车数量变更
// 队列中同一商品最多保留一条，后到的目标数量覆盖先前的
type PendingUpdate struct {
	ProductID string `json:"productId"`
	Size      string `json:"size,omitempty"`
	Quantity  int    `json:"quantity"`
}

// CartSubtotal 购物车小计
func CartSubtotal(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// CartTotalItems 购物车商品总件数
func CartTotalItems(lines []CartLine) int {
	count := 0
	for _, line := range lines {
		count += line.Quantity
	}
	return count
}
