package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem 订单项快照
type OrderItem struct {
	ID          string `json:"id"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	Price       Money  `json:"price"`
	Size        string `json:"size,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// Order 服务端订单快照，客户端只读
type Order struct {
	ID            string         `json:"id"`
	Items         []OrderItem    `json:"items"`
	AppliedOffers []AppliedOffer `json:"appliedOffers,omitempty"`
	TotalDiscount Money          `json:"totalDiscount"`
	Status        string         `json:"status"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// Subtotal 订单小计（未扣减优惠）
func (o Order) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Price.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// FinalTotal 扣减优惠后的订单总额
func (o Order) FinalTotal() decimal.Decimal {
	return o.Subtotal().Sub(o.TotalDiscount.Decimal)
}
