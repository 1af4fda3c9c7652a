package offers

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/vegvendor-client/internal/constants"
	"github.com/vegvendor-client/internal/logger"
	"github.com/vegvendor-client/internal/models"
	"github.com/vegvendor-client/internal/storage"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrNotEligible 购物车不满足该优惠的使用条件
var ErrNotEligible = errors.New("offer: cart does not meet the offer conditions")

// Gateway 计算器依赖的优惠后端能力
type Gateway interface {
	ListActiveOffers(ctx context.Context) ([]models.Offer, error)
}

// Options 计算器配置
type Options struct {
	Gateway Gateway
	Store   storage.Store
	Logger  *zap.SugaredLogger
}

// Calculator 优惠资格与折扣计算器
//
// 维护本次会话已应用的优惠，以及跨会话持久化的已禁用优惠集合；
// 折扣按所有已应用优惠对所有满足条件的购物车行叠加，无上限。
type Calculator struct {
	gw    Gateway
	store storage.Store
	log   *zap.SugaredLogger

	mu       sync.Mutex
	offers   []models.Offer
	applied  []models.Offer
	disabled map[string]bool
}

// NewCalculator 创建计算器并恢复持久化的禁用集合
func NewCalculator(opts Options) *Calculator {
	if opts.Logger == nil {
		opts.Logger = logger.S()
	}
	c := &Calculator{
		gw:       opts.Gateway,
		store:    opts.Store,
		log:      opts.Logger,
		disabled: make(map[string]bool),
	}
	c.loadDisabled()
	return c
}

// Load 拉取生效中的优惠列表并过滤已禁用的优惠
func (c *Calculator) Load(ctx context.Context) ([]models.Offer, error) {
	fetched, err := c.gw.ListActiveOffers(ctx)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.offers = c.offers[:0]
	for _, offer := range fetched {
		if c.disabled[offer.ID] {
			continue
		}
		c.offers = append(c.offers, offer)
	}
	visible := make([]models.Offer, len(c.offers))
	copy(visible, c.offers)
	return visible, nil
}

// Offers 当前可见的优惠列表
func (c *Calculator) Offers() []models.Offer {
	c.mu.Lock()
	defer c.mu.Unlock()
	visible := make([]models.Offer, len(c.offers))
	copy(visible, c.offers)
	return visible
}

// Eligible 判断优惠是否可用：存在商品名匹配（忽略大小写）
// 且该行小计达到最低消费门槛的购物车行
func (c *Calculator) Eligible(offer models.Offer, lines []models.CartLine) bool {
	for _, line := range lines {
		if lineMatches(offer, line) {
			return true
		}
	}
	return false
}

// Apply 应用优惠：同一优惠 ID 在会话内幂等，重复应用为空操作；
// 应用后优惠 ID 记入持久化禁用集合，后续列表不再展示
func (c *Calculator) Apply(offer models.Offer, lines []models.CartLine) error {
	c.mu.Lock()
	for _, a := range c.applied {
		if a.ID == offer.ID {
			c.mu.Unlock()
			return nil
		}
	}
	c.mu.Unlock()

	if !c.Eligible(offer, lines) {
		return ErrNotEligible
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.applied = append(c.applied, offer)
	c.disabled[offer.ID] = true
	kept := c.offers[:0]
	for _, o := range c.offers {
		if o.ID != offer.ID {
			kept = append(kept, o)
		}
	}
	c.offers = kept
	c.persistDisabledLocked()
	return nil
}

// Applied 已应用的优惠
func (c *Calculator) Applied() []models.Offer {
	c.mu.Lock()
	defer c.mu.Unlock()
	applied := make([]models.Offer, len(c.applied))
	copy(applied, c.applied)
	return applied
}

// AppliedSummaries 已应用优惠的订单提交摘要
func (c *Calculator) AppliedSummaries() []models.AppliedOffer {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.applied) == 0 {
		return nil
	}
	summaries := make([]models.AppliedOffer, 0, len(c.applied))
	for _, offer := range c.applied {
		summaries = append(summaries, offer.Summary())
	}
	return summaries
}

// ClearApplied 清除本次会话已应用的优惠（购物车删行/清空时）
func (c *Calculator) ClearApplied() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.applied = nil
}

// Discount 折扣总额：对每个已应用优惠，累加所有满足条件行的
// 行小计 × 折扣百分比 / 100；优惠之间叠加无上限，中间值不舍入
func (c *Calculator) Discount(lines []models.CartLine) models.Money {
	return DiscountFor(c.Applied(), lines)
}

// OfferDiscount 单个优惠对当前购物车的折扣金额（摘要展示用）
func OfferDiscount(offer models.Offer, lines []models.CartLine) models.Money {
	return DiscountFor([]models.Offer{offer}, lines)
}

// DiscountFor 按已应用优惠集合计算折扣总额
func DiscountFor(applied []models.Offer, lines []models.CartLine) models.Money {
	hundred := decimal.NewFromInt(100)
	total := decimal.Zero
	for _, offer := range applied {
		for _, line := range lines {
			if !lineMatches(offer, line) {
				continue
			}
			total = total.Add(line.Subtotal().Mul(offer.Discount).Div(hundred))
		}
	}
	return models.NewMoneyFromDecimal(total)
}

// Reset 清空已应用优惠与持久化禁用集合（下单成功后调用）
func (c *Calculator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.applied = nil
	c.disabled = make(map[string]bool)
	if c.store != nil {
		if err := c.store.Delete(constants.StorageKeyDisabledOffers); err != nil {
			c.log.Warnw("disabled_offers_clear_failed", "error", err)
		}
	}
}

func lineMatches(offer models.Offer, line models.CartLine) bool {
	if !strings.EqualFold(line.ProductName, offer.ProductName) {
		return false
	}
	return !line.Subtotal().LessThan(offer.MinPurchase.Decimal)
}

func (c *Calculator) loadDisabled() {
	if c.store == nil {
		return
	}
	raw, err := c.store.Get(constants.StorageKeyDisabledOffers)
	if err != nil {
		return
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		c.log.Warnw("disabled_offers_parse_failed", "error", err)
		return
	}
	for _, id := range ids {
		c.disabled[id] = true
	}
}

func (c *Calculator) persistDisabledLocked() {
	if c.store == nil {
		return
	}
	ids := make([]string, 0, len(c.disabled))
	for id := range c.disabled {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	raw, err := json.Marshal(ids)
	if err != nil {
		return
	}
	if err := c.store.Set(constants.StorageKeyDisabledOffers, string(raw)); err != nil {
		c.log.Warnw("disabled_offers_persist_failed", "error", err)
	}
}
