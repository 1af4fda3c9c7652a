package views

import (
	"context"
	"errors"
	"io"

	"github.com/vegvendor-client/internal/constants"
	"github.com/vegvendor-client/internal/gateway"
	"github.com/vegvendor-client/internal/models"
)

// ErrInvalidSize 选择的规格不存在
var ErrInvalidSize = errors.New("Selected size is invalid.")

// ErrNoPrice 商品缺少可用单价
var ErrNoPrice = errors.New("product has no price for its category")

// CategoryGateway 分类页依赖的后端能力
type CategoryGateway interface {
	ProductsByCategory(ctx context.Context, category string) ([]models.Product, error)
	AddToCart(ctx context.Context, input gateway.AddToCartInput) error
}

// CategoryCart 分类页依赖的购物车能力
type CategoryCart interface {
	Refresh(ctx context.Context) error
}

// CategoryPage 分类页：商品列表与加入购物车
type CategoryPage struct {
	gw       CategoryGateway
	cart     CategoryCart
	category string
	products []models.Product
}

// NewCategoryPage 创建分类页
func NewCategoryPage(gw CategoryGateway, cart CategoryCart, category string) *CategoryPage {
	return &CategoryPage{gw: gw, cart: cart, category: category}
}

// Load 拉取分类商品
func (p *CategoryPage) Load(ctx context.Context) error {
	products, err := p.gw.ProductsByCategory(ctx, p.category)
	if err != nil {
		return err
	}
	p.products = products
	return nil
}

// Products 已加载的商品列表
func (p *CategoryPage) Products() []models.Product {
	return p.products
}

// Render 渲染分类商品列表
func (p *CategoryPage) Render(w io.Writer) {
	printf(w, "== %s ==\n", p.category)
	for _, product := range p.products {
		if product.SizeBased() {
			printf(w, "%s\n", product.ProductName)
			for _, opt := range product.Sizes {
				printf(w, "  %s  %s\n", opt.Size, opt.Price.String())
			}
			continue
		}
		price, ok := product.UnitPrice()
		if !ok {
			printf(w, "%s  (price unavailable)\n", product.ProductName)
			continue
		}
		unit := constants.CategoryUnits[product.Category]
		if label := product.Attributes.UnitLabel(); label != "" {
			printf(w, "%s  %s %s  (%s)\n", product.ProductName, price.String(), unit, label)
			continue
		}
		printf(w, "%s  %s %s\n", product.ProductName, price.String(), unit)
	}
}

// AddToCart 将商品加入购物车
//
// 规格商品要求 size 必须是商品已有规格，否则在任何网络调用之前报错；
// 成功后刷新本地购物车快照。
func (p *CategoryPage) AddToCart(ctx context.Context, product models.Product, size string, quantity int) error {
	if quantity <= 0 {
		quantity = 1
	}
	var price models.Money
	if product.SizeBased() {
		resolved, ok := product.SizePrice(size)
		if !ok {
			return ErrInvalidSize
		}
		price = resolved
	} else {
		resolved, ok := product.UnitPrice()
		if !ok {
			return ErrNoPrice
		}
		price = resolved
		size = ""
	}

	input := gateway.AddToCartInput{
		ProductID:   product.ID,
		ProductName: product.ProductName,
		Quantity:    quantity,
		Size:        size,
		Price:       price,
		ImageURL:    product.ImageURL,
	}
	if err := p.gw.AddToCart(ctx, input); err != nil {
		return err
	}
	return p.cart.Refresh(ctx)
}
