package views

import (
	"context"
	"io"

	"github.com/vegvendor-client/internal/models"
	"github.com/vegvendor-client/internal/offers"

	"github.com/shopspring/decimal"
)

// CartEngine 购物车页依赖的本地购物车能力
type CartEngine interface {
	Snapshot() []models.CartLine
	UpdateQuantity(ctx context.Context, lineKey string, delta int) error
	RemoveItem(ctx context.Context, lineKey string) error
	ClearCart(ctx context.Context) error
	Pending() int
	Syncing() bool
	SyncErr() error
}

// CartOffers 购物车页依赖的优惠能力
type CartOffers interface {
	Offers() []models.Offer
	Eligible(offer models.Offer, lines []models.CartLine) bool
	Apply(offer models.Offer, lines []models.CartLine) error
	Applied() []models.Offer
	ClearApplied()
}

// OfferRow 账单中的单条优惠扣减
type OfferRow struct {
	Offer    models.Offer
	Discount models.Money
}

// Summary 购物车账单
//
// 小计、运费、逐条优惠扣减与总额；中间量不舍入，仅展示时保留 2 位
type Summary struct {
	Subtotal models.Money
	Shipping models.Money
	Rows     []OfferRow
	Total    models.Money
}

// CartPage 购物车页：行项展示、数量调整与账单
type CartPage struct {
	engine        CartEngine
	offers        CartOffers
	shippingFee   decimal.Decimal
	freeThreshold decimal.Decimal
}

// CartPageOptions 购物车页配置
type CartPageOptions struct {
	Engine        CartEngine
	Offers        CartOffers
	ShippingFee   string
	FreeThreshold string
}

// NewCartPage 创建购物车页
func NewCartPage(opts CartPageOptions) *CartPage {
	fee, err := decimal.NewFromString(opts.ShippingFee)
	if err != nil {
		fee = decimal.RequireFromString("5.99")
	}
	threshold, err := decimal.NewFromString(opts.FreeThreshold)
	if err != nil {
		threshold = decimal.NewFromInt(50)
	}
	return &CartPage{
		engine:        opts.Engine,
		offers:        opts.Offers,
		shippingFee:   fee,
		freeThreshold: threshold,
	}
}

// Summarize 计算账单
//
// 小计严格大于免运费阈值时运费为 0，否则收固定运费；
// 优惠在已应用的每个优惠上按命中行累计，不设上限。
func (p *CartPage) Summarize() Summary {
	lines := p.engine.Snapshot()
	subtotal := models.CartSubtotal(lines)

	shipping := p.shippingFee
	if subtotal.GreaterThan(p.freeThreshold) {
		shipping = decimal.Zero
	}

	var rows []OfferRow
	totalDiscount := decimal.Zero
	for _, offer := range p.offers.Applied() {
		discount := offers.OfferDiscount(offer, lines)
		rows = append(rows, OfferRow{Offer: offer, Discount: discount})
		totalDiscount = totalDiscount.Add(discount.Decimal)
	}

	total := subtotal.Add(shipping).Sub(totalDiscount)
	return Summary{
		Subtotal: models.NewMoneyFromDecimal(subtotal),
		Shipping: models.NewMoneyFromDecimal(shipping),
		Rows:     rows,
		Total:    models.NewMoneyFromDecimal(total),
	}
}

// Render 渲染购物车行项与账单
func (p *CartPage) Render(w io.Writer) {
	lines := p.engine.Snapshot()
	if len(lines) == 0 {
		printf(w, "Your cart is empty\n")
		return
	}
	for _, line := range lines {
		if line.Size != "" {
			printf(w, "%s (%s)  x%d  %s\n", line.ProductName, line.Size, line.Quantity, line.Price.String())
		} else {
			printf(w, "%s  x%d  %s\n", line.ProductName, line.Quantity, line.Price.String())
		}
	}

	summary := p.Summarize()
	printf(w, "--\n")
	printf(w, "Subtotal: %s\n", summary.Subtotal.String())
	printf(w, "Shipping: %s\n", summary.Shipping.String())
	for _, row := range summary.Rows {
		printf(w, "Offer %s: -%s\n", row.Offer.ProductName, row.Discount.String())
	}
	printf(w, "Total: %s\n", summary.Total.String())

	if p.engine.Pending() > 0 || p.engine.Syncing() {
		printf(w, "Syncing cart...\n")
	}
	if err := p.engine.SyncErr(); err != nil {
		printf(w, "Warning: %v\n", err)
	}
}

// Increment 行数量加一
func (p *CartPage) Increment(ctx context.Context, lineKey string) error {
	return p.engine.UpdateQuantity(ctx, lineKey, 1)
}

// Decrement 行数量减一（减到 0 即移除）
func (p *CartPage) Decrement(ctx context.Context, lineKey string) error {
	return p.engine.UpdateQuantity(ctx, lineKey, -1)
}

// Remove 移除行并重置已应用优惠
func (p *CartPage) Remove(ctx context.Context, lineKey string) error {
	if err := p.engine.RemoveItem(ctx, lineKey); err != nil {
		return err
	}
	p.offers.ClearApplied()
	return nil
}

// Clear 清空购物车并重置已应用优惠
func (p *CartPage) Clear(ctx context.Context) error {
	if err := p.engine.ClearCart(ctx); err != nil {
		return err
	}
	p.offers.ClearApplied()
	return nil
}

// ApplyOffer 应用优惠
func (p *CartPage) ApplyOffer(offer models.Offer) error {
	return p.offers.Apply(offer, p.engine.Snapshot())
}

// AvailableOffers 当前购物车可用的优惠
func (p *CartPage) AvailableOffers() []models.Offer {
	lines := p.engine.Snapshot()
	var eligible []models.Offer
	for _, offer := range p.offers.Offers() {
		if p.offers.Eligible(offer, lines) {
			eligible = append(eligible, offer)
		}
	}
	return eligible
}
