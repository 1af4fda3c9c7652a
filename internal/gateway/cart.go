package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/vegvendor-client/internal/models"
)

// AddToCartInput 加入购物车请求
type AddToCartInput struct {
	ProductID   string       `json:"productId"`
	Quantity    int          `json:"quantity"`
	Size        string       `json:"size,omitempty"`
	Price       models.Money `json:"price"`
	ProductName string       `json:"productName"`
	ImageURL    string       `json:"imageUrl,omitempty"`
}

type cartEnvelope struct {
	Cart struct {
		Items []models.CartLine `json:"items"`
	} `json:"cart"`
}

// GetCart 获取当前用户的服务端购物车
func (c *Client) GetCart(ctx context.Context) ([]models.CartLine, error) {
	var resp cartEnvelope
	if err := c.do(ctx, http.MethodGet, "/cart", userToken(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Cart.Items, nil
}

// AddToCart 加入购物车
func (c *Client) AddToCart(ctx context.Context, input AddToCartInput) error {
	return c.do(ctx, http.MethodPost, "/cart/add", userToken(), input, nil)
}

// UpdateCart 同步一条数量变更
func (c *Client) UpdateCart(ctx context.Context, update models.PendingUpdate) error {
	return c.do(ctx, http.MethodPut, "/cart/update", userToken(), update, nil)
}

// RemoveFromCart 删除购物车中的商品
func (c *Client) RemoveFromCart(ctx context.Context, productID string) error {
	path := "/cart/remove/" + url.PathEscape(productID)
	return c.do(ctx, http.MethodDelete, path, userToken(), nil, nil)
}

// ClearCart 清空购物车
func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/cart/clear", userToken(), nil, nil)
}
