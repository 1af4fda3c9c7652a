package models

import (
	"github.com/shopspring/decimal"
)

// Offer 优惠活动（针对单个商品名的满减折扣）
type Offer struct {
	ID          string          `json:"id"`
	ProductName string          `json:"productName"`
	Description string          `json:"description"`
	MinPurchase Money           `json:"minPurchase"`
	Discount    decimal.Decimal `json:"discount"` // 折扣百分比
}

// AppliedOffer 已应用到当前订单的优惠摘要
type AppliedOffer struct {
	ID          string          `json:"id"`
	ProductName string          `json:"productName"`
	Discount    decimal.Decimal `json:"discount"`
}

// Summary 转换为订单提交用的优惠摘要
func (o Offer) Summary() AppliedOffer {
	return AppliedOffer{
		ID:          o.ID,
		ProductName: o.ProductName,
		Discount:    o.Discount,
	}
}
