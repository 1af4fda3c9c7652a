package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/vegvendor-client/internal/models"
)

// CreateOrderInput 下单请求：商品快照、优惠摘要与折扣总额
type CreateOrderInput struct {
	Items         []models.OrderItem    `json:"items"`
	AppliedOffers []models.AppliedOffer `json:"appliedOffers,omitempty"`
	TotalDiscount models.Money          `json:"totalDiscount"`
}

// CreateOrder 提交订单
func (c *Client) CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	var resp struct {
		Order *models.Order `json:"order"`
	}
	if err := c.do(ctx, http.MethodPost, "/orders", userToken(), input, &resp); err != nil {
		return nil, err
	}
	return resp.Order, nil
}

// ListOrders 获取当前用户的订单列表
func (c *Client) ListOrders(ctx context.Context) ([]models.Order, error) {
	var resp struct {
		Orders []models.Order `json:"orders"`
	}
	if err := c.do(ctx, http.MethodGet, "/orders", userToken(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

// CancelOrder 取消订单
func (c *Client) CancelOrder(ctx context.Context, orderID string) error {
	path := "/orders/" + url.PathEscape(orderID)
	return c.do(ctx, http.MethodDelete, path, userToken(), nil, nil)
}

// UpdateOrderStatus 更新订单状态（管理端）
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	path := "/orders/" + url.PathEscape(orderID) + "/status"
	body := map[string]string{"status": status}
	return c.do(ctx, http.MethodPatch, path, adminToken(), body, nil)
}

// AdminListOrders 获取全部订单（管理端）
func (c *Client) AdminListOrders(ctx context.Context) ([]models.Order, error) {
	var resp struct {
		Orders []models.Order `json:"orders"`
	}
	if err := c.do(ctx, http.MethodGet, "/orders/admin", adminToken(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

// AdminRemoveOrderItem 移除订单中的单个商品（管理端）
func (c *Client) AdminRemoveOrderItem(ctx context.Context, orderID, itemID string) error {
	path := "/orders/admin/" + url.PathEscape(orderID) + "/items/" + url.PathEscape(itemID)
	return c.do(ctx, http.MethodDelete, path, adminToken(), nil, nil)
}
