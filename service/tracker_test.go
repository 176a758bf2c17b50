package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"restoadmin/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTracker struct {
	mu       sync.Mutex
	orders   []models.Order
	calls    []models.CallRequest
	orderErr error
	callErr  error
	polls    int
}

func (f *fakeTracker) ListOrders(ctx context.Context, cred Credential) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.polls++
	if f.orderErr != nil {
		return nil, f.orderErr
	}
	return append([]models.Order(nil), f.orders...), nil
}

func (f *fakeTracker) ListCallRequests(ctx context.Context, cred Credential) ([]models.CallRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.callErr != nil {
		return nil, f.callErr
	}
	return append([]models.CallRequest(nil), f.calls...), nil
}

func (f *fakeTracker) pollCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.polls
}

func TestGroupOrders(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	orders := []models.Order{
		{ID: "1", Status: models.OrderPaid, CreatedAt: base},
		{ID: "2", Status: models.OrderPreparing, CreatedAt: base.Add(2 * time.Minute)},
		{ID: "3", Status: models.OrderPending, CreatedAt: base.Add(time.Minute)},
		{ID: "4", Status: models.OrderCancelled, CreatedAt: base.Add(3 * time.Minute)},
		{ID: "5", Status: models.OrderReady, CreatedAt: base.Add(4 * time.Minute)},
		{ID: "6", Status: models.OrderServed, CreatedAt: base.Add(5 * time.Minute)},
	}

	active, finished := GroupOrders(orders)

	ids := func(os []models.Order) []string {
		var out []string
		for _, o := range os {
			out = append(out, o.ID)
		}
		return out
	}
	assert.Equal(t, []string{"3", "2", "5"}, ids(active))
	assert.Equal(t, []string{"6", "4", "1"}, ids(finished))
}

func TestOrderTracker_PollOnce(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	ft := &fakeTracker{
		orders: []models.Order{
			{ID: "1", Status: models.OrderPending, CreatedAt: base},
			{ID: "2", Status: models.OrderPaid, CreatedAt: base},
		},
		calls: []models.CallRequest{
			{ID: "c2", Table: "T3", CreatedAt: base.Add(time.Minute)},
			{ID: "c1", Table: "T1", CreatedAt: base},
			{ID: "c3", Table: "T4", Resolved: true, CreatedAt: base},
		},
	}
	tracker := NewOrderTracker(ft, Credential{}, time.Second, nil)

	require.NoError(t, tracker.PollOnce(context.Background()))
	snap := tracker.Snapshot()
	assert.Len(t, snap.Active, 1)
	assert.Len(t, snap.Finished, 1)
	require.Len(t, snap.CallRequests, 2)
	assert.Equal(t, "c1", snap.CallRequests[0].ID)
	assert.False(t, snap.LastPolled.IsZero())
	assert.Empty(t, snap.LastError)
}

func TestOrderTracker_ErrorsKeepPreviousData(t *testing.T) {
	ft := &fakeTracker{
		orders: []models.Order{{ID: "1", Status: models.OrderReady}},
		calls:  []models.CallRequest{{ID: "c1"}},
	}
	tracker := NewOrderTracker(ft, Credential{}, time.Second, nil)
	require.NoError(t, tracker.PollOnce(context.Background()))

	ft.mu.Lock()
	ft.orderErr = &APIError{Status: 401, Message: "expired"}
	ft.calls = nil
	ft.mu.Unlock()

	err := tracker.PollOnce(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)

	snap := tracker.Snapshot()
	assert.Len(t, snap.Active, 1)
	// 呼叫请求独立更新
	assert.Empty(t, snap.CallRequests)
	assert.Equal(t, "登录已过期，请重新登录", snap.LastError)
}

func TestOrderTracker_StartPollsUntilCancelled(t *testing.T) {
	ft := &fakeTracker{}
	tracker := NewOrderTracker(ft, Credential{}, 10*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		tracker.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return ft.pollCount() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("tracker did not stop")
	}
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []string
}

func (n *recordingNotifier) NotifyCall(ctx context.Context, call models.CallRequest) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, call.ID)
	return nil
}

func (n *recordingNotifier) ids() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.calls...)
}

func TestOrderTracker_NotifiesNewCallsOnce(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	ft := &fakeTracker{
		calls: []models.CallRequest{
			{ID: "c1", CreatedAt: base},
			{ID: "c2", Resolved: true, CreatedAt: base},
		},
	}
	notifier := &recordingNotifier{}
	tracker := NewOrderTracker(ft, Credential{}, time.Second, nil)
	tracker.SetNotifier(notifier)

	require.NoError(t, tracker.PollOnce(context.Background()))
	assert.Equal(t, []string{"c1"}, notifier.ids())

	// 同一呼叫不重复通知，新呼叫只通知一次
	ft.mu.Lock()
	ft.calls = append(ft.calls, models.CallRequest{ID: "c3", CreatedAt: base.Add(time.Minute)})
	ft.mu.Unlock()
	require.NoError(t, tracker.PollOnce(context.Background()))
	require.NoError(t, tracker.PollOnce(context.Background()))
	assert.Equal(t, []string{"c1", "c3"}, notifier.ids())

	// 查询失败时不通知
	ft.mu.Lock()
	ft.callErr = errBoom
	ft.mu.Unlock()
	assert.Error(t, tracker.PollOnce(context.Background()))
	assert.Len(t, notifier.ids(), 2)
}
