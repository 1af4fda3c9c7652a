package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/vegvendor-client/internal/models"
)

type offersEnvelope struct {
	Success bool           `json:"success"`
	Offers  []models.Offer `json:"offers"`
}

// ListOffers 获取全部优惠
func (c *Client) ListOffers(ctx context.Context) ([]models.Offer, error) {
	var resp offersEnvelope
	if err := c.do(ctx, http.MethodGet, "/offers", "", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Offers, nil
}

// ListActiveOffers 获取生效中的优惠
func (c *Client) ListActiveOffers(ctx context.Context) ([]models.Offer, error) {
	var resp offersEnvelope
	if err := c.do(ctx, http.MethodGet, "/offers/active", "", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Offers, nil
}

// CreateOffer 新增优惠
func (c *Client) CreateOffer(ctx context.Context, offer models.Offer) error {
	return c.do(ctx, http.MethodPost, "/offers", userToken(), offer, nil)
}

// UpdateOffer 更新优惠
func (c *Client) UpdateOffer(ctx context.Context, offer models.Offer) error {
	path := "/offers/" + url.PathEscape(offer.ID)
	return c.do(ctx, http.MethodPut, path, userToken(), offer, nil)
}

// DeleteOffer 删除优惠
func (c *Client) DeleteOffer(ctx context.Context, offerID string) error {
	path := "/offers/" + url.PathEscape(offerID)
	return c.do(ctx, http.MethodDelete, path, userToken(), nil, nil)
}
