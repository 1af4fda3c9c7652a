package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/vegvendor-client/internal/models"
)

// ProductsByCategory 获取分类下的商品列表
func (c *Client) ProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	var resp struct {
		Products []models.Product `json:"products"`
	}
	path := "/products/" + url.PathEscape(category)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

// CreateProduct 新增商品（管理端）
func (c *Client) CreateProduct(ctx context.Context, product models.Product) error {
	return c.do(ctx, http.MethodPost, "/products", adminToken(), product, nil)
}
