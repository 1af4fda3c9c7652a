package views

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/vegvendor-client/internal/models"

	"github.com/shopspring/decimal"
)

// ErrOfferFieldsRequired 优惠表单存在未填写字段
var ErrOfferFieldsRequired = errors.New("All fields required")

// ErrOfferNumbersInvalid 起购金额或折扣不是合法数字
var ErrOfferNumbersInvalid = errors.New("Min purchase and discount must be valid numbers")

// OfferForm 优惠编辑表单，数值字段以字符串接收后校验
type OfferForm struct {
	ID          string
	ProductName string
	Description string
	MinPurchase string
	Discount    string
}

// OffersGateway 优惠页依赖的后端能力
type OffersGateway interface {
	ListOffers(ctx context.Context) ([]models.Offer, error)
	CreateOffer(ctx context.Context, offer models.Offer) error
	UpdateOffer(ctx context.Context, offer models.Offer) error
	DeleteOffer(ctx context.Context, offerID string) error
}

// OffersPage 优惠管理页：列表与增删改
type OffersPage struct {
	gw     OffersGateway
	offers []models.Offer
}

// NewOffersPage 创建优惠管理页
func NewOffersPage(gw OffersGateway) *OffersPage {
	return &OffersPage{gw: gw}
}

// Load 拉取全部优惠
func (p *OffersPage) Load(ctx context.Context) error {
	offers, err := p.gw.ListOffers(ctx)
	if err != nil {
		return err
	}
	p.offers = offers
	return nil
}

// Offers 已加载的优惠列表
func (p *OffersPage) Offers() []models.Offer {
	return p.offers
}

// Render 渲染优惠列表
func (p *OffersPage) Render(w io.Writer) {
	if len(p.offers) == 0 {
		printf(w, "No offers\n")
		return
	}
	for _, offer := range p.offers {
		printf(w, "%s  %s  min %s  %s%% off\n",
			offer.ID, offer.ProductName, offer.MinPurchase.String(), offer.Discount.String())
	}
}

// Create 新建优惠，表单校验在任何网络调用之前完成
func (p *OffersPage) Create(ctx context.Context, form OfferForm) error {
	offer, err := parseOfferForm(form)
	if err != nil {
		return err
	}
	if err := p.gw.CreateOffer(ctx, offer); err != nil {
		return err
	}
	return p.Load(ctx)
}

// Update 更新优惠
func (p *OffersPage) Update(ctx context.Context, form OfferForm) error {
	offer, err := parseOfferForm(form)
	if err != nil {
		return err
	}
	if err := p.gw.UpdateOffer(ctx, offer); err != nil {
		return err
	}
	return p.Load(ctx)
}

// Delete 删除优惠
func (p *OffersPage) Delete(ctx context.Context, offerID string) error {
	if err := p.gw.DeleteOffer(ctx, offerID); err != nil {
		return err
	}
	return p.Load(ctx)
}

// parseOfferForm 校验并转换优惠表单
func parseOfferForm(form OfferForm) (models.Offer, error) {
	if strings.TrimSpace(form.ProductName) == "" ||
		strings.TrimSpace(form.Description) == "" ||
		strings.TrimSpace(form.MinPurchase) == "" ||
		strings.TrimSpace(form.Discount) == "" {
		return models.Offer{}, ErrOfferFieldsRequired
	}
	minPurchase, err := decimal.NewFromString(strings.TrimSpace(form.MinPurchase))
	if err != nil {
		return models.Offer{}, ErrOfferNumbersInvalid
	}
	discount, err := decimal.NewFromString(strings.TrimSpace(form.Discount))
	if err != nil {
		return models.Offer{}, ErrOfferNumbersInvalid
	}
	if minPurchase.IsNegative() || discount.IsNegative() {
		return models.Offer{}, ErrOfferNumbersInvalid
	}
	return models.Offer{
		ID:          form.ID,
		ProductName: strings.TrimSpace(form.ProductName),
		Description: strings.TrimSpace(form.Description),
		MinPurchase: models.NewMoneyFromDecimal(minPurchase),
		Discount:    discount,
	}, nil
}
