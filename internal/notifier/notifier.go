package notifier

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/vegvendor-client/internal/constants"
	"github.com/vegvendor-client/internal/logger"
	"github.com/vegvendor-client/internal/models"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Event 服务端推送的实时事件
type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Handler 事件回调
type Handler func(order models.Order)

// Options 实时通知配置
type Options struct {
	URL               string
	ReconnectInterval time.Duration
	Logger            *zap.SugaredLogger
	Dialer            *websocket.Dialer
}

// Notifier 实时事件订阅
//
// 维持与服务端的 websocket 长连接，断线后按固定间隔重连，
// 直到 Stop 或 ctx 取消。
type Notifier struct {
	url       string
	reconnect time.Duration
	log       *zap.SugaredLogger
	dialer    *websocket.Dialer

	mu       sync.RWMutex
	handlers map[string][]Handler
	conn     *websocket.Conn

	stop chan struct{}
	once sync.Once
}

// New 创建实时事件订阅器
func New(opts Options) *Notifier {
	if opts.Logger == nil {
		opts.Logger = logger.S()
	}
	if opts.ReconnectInterval <= 0 {
		opts.ReconnectInterval = 3 * time.Second
	}
	if opts.Dialer == nil {
		opts.Dialer = websocket.DefaultDialer
	}
	return &Notifier{
		url:       opts.URL,
		reconnect: opts.ReconnectInterval,
		log:       opts.Logger,
		dialer:    opts.Dialer,
		handlers:  make(map[string][]Handler),
		stop:      make(chan struct{}),
	}
}

// OnOrderPlaced 注册新订单事件回调
func (n *Notifier) OnOrderPlaced(h Handler) {
	n.on(constants.EventOrderPlaced, h)
}

// OnOrderUpdated 注册订单状态变更事件回调
func (n *Notifier) OnOrderUpdated(h Handler) {
	n.on(constants.EventOrderUpdated, h)
}

func (n *Notifier) on(event string, h Handler) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.handlers[event] = append(n.handlers[event], h)
}

// Name 服务名称
func (n *Notifier) Name() string {
	return "notifier"
}

// Start 建立连接并持续读取事件，直到 ctx 取消或 Stop
func (n *Notifier) Start(ctx context.Context) error {
	for {
		if err := n.runOnce(ctx); err != nil {
			n.log.Warnw("notifier_disconnected", "error", err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-n.stop:
			return nil
		case <-time.After(n.reconnect):
		}
	}
}

// Stop 关闭连接并停止重连
func (n *Notifier) Stop(ctx context.Context) error {
	n.once.Do(func() { close(n.stop) })
	n.mu.Lock()
	conn := n.conn
	n.conn = nil
	n.mu.Unlock()
	if conn != nil {
		return conn.Close()
	}
	return nil
}

// runOnce 单次连接生命周期：拨号、读循环、清理
func (n *Notifier) runOnce(ctx context.Context) error {
	conn, _, err := n.dialer.DialContext(ctx, n.url, nil)
	if err != nil {
		return err
	}
	n.mu.Lock()
	n.conn = conn
	n.mu.Unlock()
	n.log.Infow("notifier_connected", "url", n.url)

	defer func() {
		n.mu.Lock()
		if n.conn == conn {
			n.conn = nil
		}
		n.mu.Unlock()
		conn.Close()
	}()

	for {
		var event Event
		if err := conn.ReadJSON(&event); err != nil {
			select {
			case <-ctx.Done():
				return nil
			case <-n.stop:
				return nil
			default:
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			return err
		}
		n.dispatch(event)
	}
}

// dispatch 解码事件负载并触发回调，未知事件忽略
func (n *Notifier) dispatch(event Event) {
	n.mu.RLock()
	handlers := n.handlers[event.Event]
	n.mu.RUnlock()
	if len(handlers) == 0 {
		return
	}

	var order models.Order
	if err := json.Unmarshal(event.Data, &order); err != nil {
		n.log.Warnw("notifier_decode_failed", "event", event.Event, "error", err)
		return
	}
	for _, h := range handlers {
		h(order)
	}
}
