package checkout

import (
	"context"
	"errors"
	"sync"

	"github.com/vegvendor-client/internal/gateway"
	"github.com/vegvendor-client/internal/logger"
	"github.com/vegvendor-client/internal/models"

	"go.uber.org/zap"
)

// State 下单流程状态
type State string

// 下单状态机：Idle → Validating → Submitting → Succeeded | Failed
// Failed 在错误返回后立即回到 Idle，购物车保持不变
const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
)

// ErrCartEmpty 购物车为空时拒绝下单
var ErrCartEmpty = errors.New("your cart is empty")

// ErrCartSyncing 购物车尚未与服务端对账完成时拒绝下单
var ErrCartSyncing = errors.New("please wait for cart to sync before placing order")

// Cart 下单流程依赖的购物车视图
type Cart interface {
	Snapshot() []models.CartLine
	Pending() int
	Syncing() bool
}

// Offers 下单流程依赖的优惠状态
type Offers interface {
	AppliedSummaries() []models.AppliedOffer
	Discount(lines []models.CartLine) models.Money
	Reset()
}

// Gateway 下单流程依赖的订单后端能力
type Gateway interface {
	CreateOrder(ctx context.Context, input gateway.CreateOrderInput) (*models.Order, error)
}

// Options 下单流程配置
type Options struct {
	Gateway Gateway
	Cart    Cart
	Offers  Offers
	Logger  *zap.SugaredLogger
}

// Placer 下单流程
type Placer struct {
	gw     Gateway
	cart   Cart
	offers Offers
	log    *zap.SugaredLogger

	mu      sync.Mutex
	state   State
	lastErr error
}

// NewPlacer 创建下单流程
func NewPlacer(opts Options) *Placer {
	if opts.Logger == nil {
		opts.Logger = logger.S()
	}
	return &Placer{
		gw:     opts.Gateway,
		cart:   opts.Cart,
		offers: opts.Offers,
		log:    opts.Logger,
		state:  StateIdle,
	}
}

// State 当前状态
func (p *Placer) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// LastErr 最近一次下单失败的原因
func (p *Placer) LastErr() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// PlaceOrder 提交订单
//
// 校验失败（空购物车、队列未同步）在任何网络调用之前返回；
// 提交成功后清空已应用优惠与持久化的禁用优惠集合；
// 提交失败原样透出服务端消息，本地购物车不受影响。
func (p *Placer) PlaceOrder(ctx context.Context) (*models.Order, error) {
	p.setState(StateValidating)

	lines := p.cart.Snapshot()
	if len(lines) == 0 {
		return nil, p.fail(ErrCartEmpty)
	}
	if p.cart.Pending() > 0 || p.cart.Syncing() {
		return nil, p.fail(ErrCartSyncing)
	}

	p.setState(StateSubmitting)

	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, models.OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			Price:       line.Price,
			Size:        line.Size,
			ImageURL:    line.ImageURL,
		})
	}
	input := gateway.CreateOrderInput{
		Items:         items,
		AppliedOffers: p.offers.AppliedSummaries(),
		TotalDiscount: p.offers.Discount(lines),
	}

	order, err := p.gw.CreateOrder(ctx, input)
	if err != nil {
		p.log.Warnw("order_place_failed", "error", err)
		return nil, p.fail(err)
	}

	p.offers.Reset()
	p.mu.Lock()
	p.state = StateSucceeded
	p.lastErr = nil
	p.mu.Unlock()

	orderID := ""
	if order != nil {
		orderID = order.ID
	}
	p.log.Infow("order_placed", "order_id", orderID, "items", len(items))
	return order, nil
}

func (p *Placer) setState(state State) {
	p.mu.Lock()
	p.state = state
	p.mu.Unlock()
}

// fail 记录失败原因并回到 Idle
func (p *Placer) fail(err error) error {
	p.mu.Lock()
	p.state = StateIdle
	p.lastErr = err
	p.mu.Unlock()
	return err
}
