package views

import (
	"context"
	"errors"
	"io"

	"github.com/vegvendor-client/internal/constants"
	"github.com/vegvendor-client/internal/models"

	"github.com/shopspring/decimal"
)

// ErrInvalidStatus 不合法的订单状态
var ErrInvalidStatus = errors.New("invalid order status")

// AdminGateway 管理面板依赖的后端能力
type AdminGateway interface {
	AdminListOrders(ctx context.Context) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID, status string) error
	AdminRemoveOrderItem(ctx context.Context, orderID, itemID string) error
}

// Stats 管理面板统计
//
// 营收按每单扣减优惠后的总额累计
type Stats struct {
	TotalOrders   int
	Revenue       models.Money
	PendingOrders int
}

// AdminDashboard 管理面板：全量订单、统计与订单操作
type AdminDashboard struct {
	gw     AdminGateway
	orders []models.Order
}

// NewAdminDashboard 创建管理面板
func NewAdminDashboard(gw AdminGateway) *AdminDashboard {
	return &AdminDashboard{gw: gw}
}

// Load 拉取全部订单
func (d *AdminDashboard) Load(ctx context.Context) error {
	orders, err := d.gw.AdminListOrders(ctx)
	if err != nil {
		return err
	}
	d.orders = orders
	return nil
}

// Stats 计算统计数据
func (d *AdminDashboard) Stats() Stats {
	revenue := decimal.Zero
	pending := 0
	for _, order := range d.orders {
		revenue = revenue.Add(order.FinalTotal())
		if order.Status == constants.OrderStatusProcessing {
			pending++
		}
	}
	return Stats{
		TotalOrders:   len(d.orders),
		Revenue:       models.NewMoneyFromDecimal(revenue),
		PendingOrders: pending,
	}
}

// ActiveOrders 处理中或已发货的订单
func (d *AdminDashboard) ActiveOrders() []models.Order {
	var active []models.Order
	for _, order := range d.orders {
		if order.Status == constants.OrderStatusProcessing || order.Status == constants.OrderStatusShipped {
			active = append(active, order)
		}
	}
	return active
}

// CompletedOrders 已送达或已取消的订单
func (d *AdminDashboard) CompletedOrders() []models.Order {
	var completed []models.Order
	for _, order := range d.orders {
		if order.Status == constants.OrderStatusDelivered || order.Status == constants.OrderStatusCancelled {
			completed = append(completed, order)
		}
	}
	return completed
}

// Render 渲染统计与订单分组
func (d *AdminDashboard) Render(w io.Writer) {
	stats := d.Stats()
	printf(w, "Total orders: %d\n", stats.TotalOrders)
	printf(w, "Revenue: %s\n", stats.Revenue.String())
	printf(w, "Pending orders: %d\n", stats.PendingOrders)

	printf(w, "-- Active --\n")
	for _, order := range d.ActiveOrders() {
		printf(w, "%s  %s  %s\n", order.ID, order.Status,
			models.NewMoneyFromDecimal(order.FinalTotal()).String())
	}
	printf(w, "-- Completed --\n")
	for _, order := range d.CompletedOrders() {
		printf(w, "%s  %s  %s\n", order.ID, order.Status,
			models.NewMoneyFromDecimal(order.FinalTotal()).String())
	}
}

// UpdateStatus 更新订单状态并重新拉取
func (d *AdminDashboard) UpdateStatus(ctx context.Context, orderID, status string) error {
	if !constants.IsOrderStatus(status) {
		return ErrInvalidStatus
	}
	if err := d.gw.UpdateOrderStatus(ctx, orderID, status); err != nil {
		return err
	}
	return d.Load(ctx)
}

// RemoveItem 移除订单中的单个商品并重新拉取
func (d *AdminDashboard) RemoveItem(ctx context.Context, orderID, itemID string) error {
	if err := d.gw.AdminRemoveOrderItem(ctx, orderID, itemID); err != nil {
		return err
	}
	return d.Load(ctx)
}
