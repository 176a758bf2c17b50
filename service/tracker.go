package service

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"restoadmin/models"
)

// TrackerSnapshot 订单跟踪视图
type TrackerSnapshot struct {
	Active       []models.Order       `json:"active"`
	Finished     []models.Order       `json:"finished"`
	CallRequests []models.CallRequest `json:"call_requests"`
	LastPolled   time.Time            `json:"last_polled"`
	LastError    string               `json:"last_error,omitempty"`
}

// OrderTracker 按固定间隔轮询订单与呼叫请求
// 每次触发都在独立 goroutine 中执行，上一次未返回不会阻止下一次
type OrderTracker struct {
	backend  TrackerBackend
	cred     Credential
	interval time.Duration

	mu         sync.RWMutex
	active     []models.Order
	finished   []models.Order
	calls      []models.CallRequest
	lastPolled time.Time
	lastErr    error

	notifier CallNotifier
	notified map[string]struct{}

	logger *slog.Logger
}

// NewOrderTracker 创建订单跟踪器
func NewOrderTracker(backend TrackerBackend, cred Credential, interval time.Duration, logger *slog.Logger) *OrderTracker {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderTracker{
		backend:  backend,
		cred:     cred,
		interval: interval,
		notified: make(map[string]struct{}),
		logger:   logger.With("component", "order_tracker"),
	}
}

// SetNotifier 设置新呼叫请求的通知方式，须在 Start 之前调用
func (t *OrderTracker) SetNotifier(n CallNotifier) {
	t.notifier = n
}

// Start 立即轮询一次，之后按间隔轮询，直到 ctx 取消
func (t *OrderTracker) Start(ctx context.Context) {
	go t.PollOnce(ctx)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			t.logger.Info("order tracker stopped")
			return
		case <-ticker.C:
			go t.PollOnce(ctx)
		}
	}
}

// PollOnce 拉取订单和呼叫请求；两者各自独立更新
// 首次出现的未处理呼叫会通过 notifier 推送一次
func (t *OrderTracker) PollOnce(ctx context.Context) error {
	orders, orderErr := t.backend.ListOrders(ctx, t.cred)
	calls, callErr := t.backend.ListCallRequests(ctx, t.cred)

	t.mu.Lock()
	t.lastPolled = time.Now()
	t.lastErr = nil

	if orderErr != nil {
		t.logger.Error("cannot poll orders", "error", orderErr)
		t.lastErr = orderErr
	} else {
		t.active, t.finished = GroupOrders(orders)
	}

	var fresh []models.CallRequest
	if callErr != nil {
		t.logger.Error("cannot poll call requests", "error", callErr)
		if t.lastErr == nil {
			t.lastErr = callErr
		}
	} else {
		pending := make([]models.CallRequest, 0, len(calls))
		for _, c := range calls {
			if !c.Resolved {
				pending = append(pending, c)
			}
		}
		sort.SliceStable(pending, func(i, j int) bool { return pending[i].CreatedAt.Before(pending[j].CreatedAt) })
		t.calls = pending
		fresh = t.markNotifiedLocked(pending)
	}
	err := t.lastErr
	t.mu.Unlock()

	if t.notifier != nil {
		for _, c := range fresh {
			if nerr := t.notifier.NotifyCall(ctx, c); nerr != nil {
				t.logger.Warn("cannot notify call request", "call", c.ID, "error", nerr)
			}
		}
	}
	return err
}

// markNotifiedLocked 返回尚未通知过的呼叫，并只保留仍未处理的记录
func (t *OrderTracker) markNotifiedLocked(pending []models.CallRequest) []models.CallRequest {
	var fresh []models.CallRequest
	still := make(map[string]struct{}, len(pending))
	for _, c := range pending {
		still[c.ID] = struct{}{}
		if _, ok := t.notified[c.ID]; !ok {
			fresh = append(fresh, c)
		}
	}
	t.notified = still
	return fresh
}

// Snapshot 当前跟踪视图
func (t *OrderTracker) Snapshot() TrackerSnapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	snap := TrackerSnapshot{
		Active:       append([]models.Order(nil), t.active...),
		Finished:     append([]models.Order(nil), t.finished...),
		CallRequests: append([]models.CallRequest(nil), t.calls...),
		LastPolled:   t.lastPolled,
	}
	if t.lastErr != nil {
		snap.LastError = UserMessage(t.lastErr)
	}
	return snap
}

// GroupOrders 按状态把订单分成进行中与已结束两列，均按下单时间排序
func GroupOrders(orders []models.Order) (active, finished []models.Order) {
	active = make([]models.Order, 0, len(orders))
	finished = make([]models.Order, 0)
	for _, o := range orders {
		if o.Status.IsActive() {
			active = append(active, o)
		} else {
			finished = append(finished, o)
		}
	}
	// 进行中：最早的在前；已结束：最新的在前
	sort.SliceStable(active, func(i, j int) bool { return active[i].CreatedAt.Before(active[j].CreatedAt) })
	sort.SliceStable(finished, func(i, j int) bool { return finished[i].CreatedAt.After(finished[j].CreatedAt) })
	return active, finished
}
