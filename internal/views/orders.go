package views

import (
	"context"
	"errors"
	"io"

	"github.com/vegvendor-client/internal/constants"
	"github.com/vegvendor-client/internal/models"
)

// ErrOrderNotFound 订单不存在
var ErrOrderNotFound = errors.New("order not found")

// ErrNotCancellable 只有处理中的订单可以取消
var ErrNotCancellable = errors.New("only processing orders can be cancelled")

// OrdersGateway 订单页依赖的后端能力
type OrdersGateway interface {
	ListOrders(ctx context.Context) ([]models.Order, error)
	CancelOrder(ctx context.Context, orderID string) error
}

// OrdersPage 订单页：历史订单、账单明细与取消
type OrdersPage struct {
	gw     OrdersGateway
	orders []models.Order
}

// NewOrdersPage 创建订单页
func NewOrdersPage(gw OrdersGateway) *OrdersPage {
	return &OrdersPage{gw: gw}
}

// Load 拉取当前用户订单
func (p *OrdersPage) Load(ctx context.Context) error {
	orders, err := p.gw.ListOrders(ctx)
	if err != nil {
		return err
	}
	p.orders = orders
	return nil
}

// Orders 已加载的订单列表
func (p *OrdersPage) Orders() []models.Order {
	return p.orders
}

// Render 渲染订单列表
func (p *OrdersPage) Render(w io.Writer) {
	if len(p.orders) == 0 {
		printf(w, "No orders yet\n")
		return
	}
	for _, order := range p.orders {
		total := models.NewMoneyFromDecimal(order.FinalTotal())
		printf(w, "%s  %s  %d items  %s\n",
			order.ID, order.Status, len(order.Items), total.String())
	}
}

// RenderBill 渲染单个订单的账单明细
func (p *OrdersPage) RenderBill(w io.Writer, orderID string) error {
	order, ok := p.find(orderID)
	if !ok {
		return ErrOrderNotFound
	}
	printf(w, "Order %s (%s)\n", order.ID, order.Status)
	for _, item := range order.Items {
		printf(w, "  %s  x%d  %s\n", item.ProductName, item.Quantity, item.Price.String())
	}
	printf(w, "Subtotal: %s\n", models.NewMoneyFromDecimal(order.Subtotal()).String())
	for _, applied := range order.AppliedOffers {
		printf(w, "Offer %s: %s%%\n", applied.ProductName, applied.Discount.String())
	}
	printf(w, "Discount: -%s\n", order.TotalDiscount.String())
	printf(w, "Total: %s\n", models.NewMoneyFromDecimal(order.FinalTotal()).String())
	return nil
}

// Cancel 取消订单，仅处理中的订单允许取消
func (p *OrdersPage) Cancel(ctx context.Context, orderID string) error {
	order, ok := p.find(orderID)
	if !ok {
		return ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusProcessing {
		return ErrNotCancellable
	}
	if err := p.gw.CancelOrder(ctx, orderID); err != nil {
		return err
	}
	return p.Load(ctx)
}

func (p *OrdersPage) find(orderID string) (models.Order, bool) {
	for _, order := range p.orders {
		if order.ID == orderID {
			return order, true
		}
	}
	return models.Order{}, false
}
