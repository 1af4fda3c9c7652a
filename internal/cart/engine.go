package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/vegvendor-client/internal/constants"
	"github.com/vegvendor-client/internal/logger"
	"github.com/vegvendor-client/internal/models"
	"github.com/vegvendor-client/internal/storage"

	"go.uber.org/zap"
)

// ErrLineNotFound 购物车中不存在该行
var ErrLineNotFound = errors.New("cart: line not found")

// ErrSyncFailed 有变更未能同步到服务端，本地视图可能与服务端不一致
var ErrSyncFailed = errors.New("failed to sync cart, changes may not be saved")

const defaultDebounce = 500 * time.Millisecond

// Gateway 引擎依赖的购物车后端能力
type Gateway interface {
	GetCart(ctx context.Context) ([]models.CartLine, error)
	UpdateCart(ctx context.Context, update models.PendingUpdate) error
	RemoveFromCart(ctx context.Context, productID string) error
	ClearCart(ctx context.Context) error
}

// Options 引擎配置
type Options struct {
	Gateway  Gateway
	Store    storage.Store
	Logger   *zap.SugaredLogger
	Debounce time.Duration
}

// Engine 购物车对账引擎
//
// 持有购物车行的本地权威视图：数量编辑先乐观生效，经防抖窗口合并后
// 进入待同步队列，由单飞的后台刷写按入队顺序逐条发送到服务端，
// 刷写完成后以服务端快照替换本地状态。
type Engine struct {
	gw       Gateway
	store    storage.Store
	log      *zap.SugaredLogger
	debounce time.Duration

	mu       sync.Mutex
	lines    []models.CartLine
	queue    []models.PendingUpdate
	timers   map[string]*time.Timer
	armed    map[string]models.PendingUpdate
	flushing bool
	syncErr  error
}

// NewEngine 创建购物车引擎
func NewEngine(opts Options) *Engine {
	if opts.Debounce <= 0 {
		opts.Debounce = defaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = logger.S()
	}
	return &Engine{
		gw:       opts.Gateway,
		store:    opts.Store,
		log:      opts.Logger,
		debounce: opts.Debounce,
		timers:   make(map[string]*time.Timer),
		armed:    make(map[string]models.PendingUpdate),
	}
}

// Refresh 以服务端购物车替换本地状态
func (e *Engine) Refresh(ctx context.Context) error {
	lines, err := e.gw.GetCart(ctx)
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.lines = lines
	e.syncErr = nil
	e.persistSnapshotLocked()
	e.mu.Unlock()
	return nil
}

// LoadCached 从本地缓存恢复购物车快照（服务端不可达时的只读兜底）
func (e *Engine) LoadCached() bool {
	raw, err := e.store.Get(constants.StorageKeyCachedCart)
	if err != nil {
		return false
	}
	var lines []models.CartLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return false
	}
	e.mu.Lock()
	e.lines = lines
	e.mu.Unlock()
	return true
}

// UpdateQuantity 调整某行数量
//
// 变更立即在本地生效，并在防抖窗口后进入待同步队列；窗口内对同一行的
// 重复编辑会重置计时器，只有最终数量会被入队。结果数量 ≤ 0 时改为
// 立即删除该行，不入队任何变更。
func (e *Engine) UpdateQuantity(ctx context.Context, lineKey string, delta int) error {
	e.mu.Lock()
	idx := e.findLineLocked(lineKey)
	if idx < 0 {
		e.mu.Unlock()
		return ErrLineNotFound
	}
	line := e.lines[idx]
	newQuantity := line.Quantity + delta
	if newQuantity <= 0 {
		e.mu.Unlock()
		return e.RemoveItem(ctx, lineKey)
	}

	e.lines[idx].Quantity = newQuantity
	e.syncErr = nil

	key := line.Key()
	update := models.PendingUpdate{
		ProductID: line.ProductID,
		Size:      line.Size,
		Quantity:  newQuantity,
	}
	if timer, ok := e.timers[key]; ok {
		timer.Stop()
	}
	e.armed[key] = update
	e.timers[key] = time.AfterFunc(e.debounce, func() {
		e.stage(key, update)
	})
	e.mu.Unlock()
	return nil
}

// stage 防抖窗口结束后将变更入队；同一商品只保留最新目标数量
func (e *Engine) stage(key string, update models.PendingUpdate) {
	e.mu.Lock()
	delete(e.timers, key)
	delete(e.armed, key)
	kept := make([]models.PendingUpdate, 0, len(e.queue)+1)
	for _, queued := range e.queue {
		if queued.ProductID != update.ProductID {
			kept = append(kept, queued)
		}
	}
	e.queue = append(kept, update)

	start := !e.flushing
	var batch []models.PendingUpdate
	if start {
		e.flushing = true
		batch = e.queue
		e.queue = nil
	}
	e.mu.Unlock()

	if start {
		go e.flush(batch)
	}
}

// flush 单飞刷写：按入队顺序逐条发送，完成后用服务端视图替换本地状态。
// 失败时放弃本批变更并记录同步错误，不回滚本地乐观状态。
func (e *Engine) flush(batch []models.PendingUpdate) {
	err := e.flushBatch(batch)

	e.mu.Lock()
	if err != nil {
		e.syncErr = fmt.Errorf("%w: %v", ErrSyncFailed, err)
	}
	again := len(e.queue) > 0
	var next []models.PendingUpdate
	if again {
		next = e.queue
		e.queue = nil
	} else {
		e.flushing = false
	}
	e.mu.Unlock()

	if again {
		go e.flush(next)
	}
}

func (e *Engine) flushBatch(batch []models.PendingUpdate) error {
	ctx := context.Background()
	for _, update := range batch {
		if err := e.gw.UpdateCart(ctx, update); err != nil {
			e.log.Warnw("cart_flush_failed",
				"product_id", update.ProductID,
				"quantity", update.Quantity,
				"error", err,
			)
			return err
		}
	}
	lines, err := e.gw.GetCart(ctx)
	if err != nil {
		e.log.Warnw("cart_refresh_failed", "error", err)
		return err
	}
	e.mu.Lock()
	e.lines = lines
	e.persistSnapshotLocked()
	e.mu.Unlock()
	return nil
}

// RemoveItem 删除某行：同步等待服务端完成并以其响应替换本地状态，
// 不经过防抖/队列路径
func (e *Engine) RemoveItem(ctx context.Context, lineKey string) error {
	e.mu.Lock()
	idx := e.findLineLocked(lineKey)
	if idx < 0 {
		e.mu.Unlock()
		return ErrLineNotFound
	}
	productID := e.lines[idx].ProductID
	e.mu.Unlock()

	if err := e.gw.RemoveFromCart(ctx, productID); err != nil {
		return err
	}
	lines, err := e.gw.GetCart(ctx)
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.lines = lines
	e.queue = nil
	e.stopTimersLocked()
	e.persistSnapshotLocked()
	e.mu.Unlock()
	return nil
}

// ClearCart 清空购物车：同步等待服务端完成
func (e *Engine) ClearCart(ctx context.Context) error {
	if err := e.gw.ClearCart(ctx); err != nil {
		return err
	}
	e.mu.Lock()
	e.lines = nil
	e.queue = nil
	e.stopTimersLocked()
	e.persistSnapshotLocked()
	e.mu.Unlock()
	return nil
}

// Snapshot 当前本地购物车视图的副本
func (e *Engine) Snapshot() []models.CartLine {
	e.mu.Lock()
	defer e.mu.Unlock()
	lines := make([]models.CartLine, len(e.lines))
	copy(lines, e.lines)
	return lines
}

// Pending 未同步的变更数（队列中的 + 仍在防抖窗口内的）
func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.queue) + len(e.timers)
}

// Syncing 是否有刷写在进行中
func (e *Engine) Syncing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.flushing
}

// SyncErr 最近一次未恢复的同步错误，成功刷写或手动刷新后清除
func (e *Engine) SyncErr() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.syncErr
}

// Drain 立即入队所有仍在防抖窗口内的变更并等待刷写全部完成
//
// 短生命周期调用方（一次性命令）在退出前调用，保证已做的编辑
// 不因进程结束而丢失；返回等待期间记录的同步错误。
func (e *Engine) Drain(ctx context.Context) error {
	e.mu.Lock()
	staged := make(map[string]models.PendingUpdate, len(e.armed))
	for key, timer := range e.timers {
		timer.Stop()
		staged[key] = e.armed[key]
	}
	e.timers = make(map[string]*time.Timer)
	e.armed = make(map[string]models.PendingUpdate)
	e.mu.Unlock()

	for key, update := range staged {
		e.stage(key, update)
	}

	for {
		e.mu.Lock()
		done := len(e.queue) == 0 && len(e.timers) == 0 && !e.flushing
		err := e.syncErr
		e.mu.Unlock()
		if done {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(5 * time.Millisecond):
		}
	}
}

// Close 停止所有未触发的防抖计时器
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopTimersLocked()
}

func (e *Engine) findLineLocked(lineKey string) int {
	for i, line := range e.lines {
		if line.Key() == lineKey || (line.ID != "" && line.ID == lineKey) {
			return i
		}
	}
	return -1
}

func (e *Engine) stopTimersLocked() {
	for _, timer := range e.timers {
		timer.Stop()
	}
	e.timers = make(map[string]*time.Timer)
	e.armed = make(map[string]models.PendingUpdate)
}

// persistSnapshotLocked 把本地视图写入会话存储的缓存键
func (e *Engine) persistSnapshotLocked() {
	if e.store == nil {
		return
	}
	raw, err := json.Marshal(e.lines)
	if err != nil {
		return
	}
	if err := e.store.Set(constants.StorageKeyCachedCart, string(raw)); err != nil {
		e.log.Warnw("cart_snapshot_persist_failed", "error", err)
	}
}
