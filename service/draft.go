package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"restoadmin/models"
)

type nameSet map[string]struct{}

func (s nameSet) has(name string) bool {
	_, ok := s[name]
	return ok
}

func (s nameSet) sorted() []string {
	out := make([]string, 0, len(s))
	for name := range s {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func newNameSet(names []string) nameSet {
	s := make(nameSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Draft 某个菜单/分类与菜品关联关系的本地草稿
// 所有修改只在内存中暂存，直到 Apply 才写回后端
//
// 始终满足：
//   - pendingAdd 与 pendingRemove 不相交
//   - current = (original - pendingRemove) ∪ pendingAdd
type Draft struct {
	mu sync.Mutex

	kind      models.ParentKind
	parentKey string

	known         map[string]models.FoodItem // 目录 + 父实体已关联的菜品
	original      nameSet
	current       nameSet
	pendingAdd    nameSet
	pendingRemove nameSet

	applying bool
	closed   bool

	logger *slog.Logger
}

// DraftSnapshot 草稿的只读副本，用于渲染两个列表
type DraftSnapshot struct {
	Kind          models.ParentKind `json:"kind"`
	Parent        string            `json:"parent"`
	Available     []models.FoodItem `json:"available"`
	Current       []models.FoodItem `json:"current"`
	PendingAdd    []string          `json:"pending_add"`
	PendingRemove []string          `json:"pending_remove"`
	Dirty         bool              `json:"dirty"`
	Applying      bool              `json:"applying"`
	Closed        bool              `json:"closed"`
}

// ApplyResult 提交结果
type ApplyResult struct {
	Added      int                    `json:"added"`
	Removed    int                    `json:"removed"`
	Closed     bool                   `json:"closed"`
	Parents    []models.ParentSummary `json:"parents,omitempty"`
	RefreshErr error                  `json:"-"`
}

// OpenDraft 拉取菜品目录和父实体当前关联，建立草稿
// 任一请求失败都不会返回半初始化的草稿
func OpenDraft(ctx context.Context, backend AssociationBackend, cred Credential, kind models.ParentKind, parentKey string, logger *slog.Logger) (*Draft, error) {
	if parentKey == "" {
		return nil, ErrEmptyParentKey
	}
	if logger == nil {
		logger = slog.Default()
	}

	catalog, err := backend.ListChildren(ctx, cred)
	if err != nil {
		logger.Error("cannot load food item catalog", "kind", kind, "parent", parentKey, "error", err)
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	parent, err := backend.GetParent(ctx, cred, kind, parentKey)
	if err != nil {
		logger.Error("cannot load parent associations", "kind", kind, "parent", parentKey, "error", err)
		return nil, fmt.Errorf("load %s %q: %w", kind, parentKey, err)
	}

	return newDraft(kind, parentKey, catalog, parent.FoodItems, logger), nil
}

func newDraft(kind models.ParentKind, parentKey string, catalog, associated []models.FoodItem, logger *slog.Logger) *Draft {
	if logger == nil {
		logger = slog.Default()
	}
	known := make(map[string]models.FoodItem, len(catalog)+len(associated))
	for _, item := range associated {
		known[item.Name] = item
	}
	// 目录中的属性更新，覆盖父实体内嵌的副本
	for _, item := range catalog {
		known[item.Name] = item
	}

	names := make([]string, 0, len(associated))
	for _, item := range associated {
		names = append(names, item.Name)
	}

	return &Draft{
		kind:          kind,
		parentKey:     parentKey,
		known:         known,
		original:      newNameSet(names),
		current:       newNameSet(names),
		pendingAdd:    nameSet{},
		pendingRemove: nameSet{},
		logger:        logger.With("component", "draft", "kind", string(kind), "parent", parentKey),
	}
}

// Kind 父实体类型
func (d *Draft) Kind() models.ParentKind { return d.kind }

// ParentKey 父实体名称
func (d *Draft) ParentKey() string { return d.parentKey }

// AddToCurrent 把菜品移入当前关联列表
func (d *Draft) AddToCurrent(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.mutableLocked(); err != nil {
		return err
	}
	if _, ok := d.known[name]; !ok {
		return fmt.Errorf("%w: %q", ErrNotInCatalog, name)
	}
	if d.current.has(name) {
		return fmt.Errorf("%w: %q", ErrAlreadyCurrent, name)
	}

	d.current[name] = struct{}{}
	if !d.original.has(name) {
		d.pendingAdd[name] = struct{}{}
	}
	// 先移除后加回：抵消为无变化
	delete(d.pendingRemove, name)
	return nil
}

// RemoveFromCurrent 把菜品移出当前关联列表
func (d *Draft) RemoveFromCurrent(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.mutableLocked(); err != nil {
		return err
	}
	if !d.current.has(name) {
		return fmt.Errorf("%w: %q", ErrNotCurrent, name)
	}

	delete(d.current, name)
	if d.original.has(name) {
		d.pendingRemove[name] = struct{}{}
	}
	delete(d.pendingAdd, name)
	return nil
}

func (d *Draft) mutableLocked() error {
	if d.closed {
		return ErrDraftClosed
	}
	if d.applying {
		return ErrApplyInProgress
	}
	return nil
}

// Apply 提交草稿：新增与移除各至多一次批量请求，两者并发执行
//
// 每一半成功后立即并入 original 并清空对应的待提交集合，
// 部分失败时草稿保持打开，重试只会重发仍未提交的那一半。
// 全部成功后关闭草稿并刷新父实体列表。
func (d *Draft) Apply(ctx context.Context, backend AssociationBackend, cred Credential) (*ApplyResult, error) {
	d.mu.Lock()
	if err := d.mutableLocked(); err != nil {
		d.mu.Unlock()
		return nil, err
	}
	adds := d.pendingAdd.sorted()
	removes := d.pendingRemove.sorted()
	if len(adds) == 0 && len(removes) == 0 {
		d.closed = true
		d.mu.Unlock()
		d.logger.Debug("nothing to apply, closing draft")
		return &ApplyResult{Closed: true}, nil
	}
	d.applying = true
	d.mu.Unlock()

	var (
		wg        sync.WaitGroup
		addErr    error
		removeErr error
	)
	if len(adds) > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, addErr = backend.Associate(ctx, cred, d.kind, d.parentKey, adds)
		}()
	}
	if len(removes) > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, removeErr = backend.Disassociate(ctx, cred, d.kind, d.parentKey, removes)
		}()
	}
	wg.Wait()

	result := &ApplyResult{}

	d.mu.Lock()
	d.applying = false
	if len(adds) > 0 && addErr == nil {
		for _, name := range adds {
			d.original[name] = struct{}{}
			delete(d.pendingAdd, name)
		}
		result.Added = len(adds)
	}
	if len(removes) > 0 && removeErr == nil {
		for _, name := range removes {
			delete(d.original, name)
			delete(d.pendingRemove, name)
		}
		result.Removed = len(removes)
	}
	if addErr != nil || removeErr != nil {
		d.mu.Unlock()
		applyErr := &ApplyError{
			AddErr:          addErr,
			RemoveErr:       removeErr,
			AttemptedAdd:    len(adds) > 0,
			AttemptedRemove: len(removes) > 0,
		}
		d.logger.Error("apply failed", "added", result.Added, "removed", result.Removed, "error", applyErr)
		return result, applyErr
	}
	d.closed = true
	d.mu.Unlock()

	result.Closed = true
	d.logger.Info("draft applied", "added", result.Added, "removed", result.Removed)

	parents, err := backend.ListParents(ctx, cred, d.kind)
	if err != nil {
		d.logger.Warn("cannot refresh parent list after apply", "error", err)
		result.RefreshErr = err
	} else {
		result.Parents = models.Summarize(parents)
	}
	return result, nil
}

// Cancel 丢弃草稿，不访问后端
func (d *Draft) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	d.current = newNameSet(d.original.sorted())
	d.pendingAdd = nameSet{}
	d.pendingRemove = nameSet{}
}

// Closed 草稿是否已关闭（取消或提交成功）
func (d *Draft) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

// Snapshot 返回草稿副本
func (d *Draft) Snapshot() DraftSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	snap := DraftSnapshot{
		Kind:          d.kind,
		Parent:        d.parentKey,
		Available:     make([]models.FoodItem, 0, len(d.known)),
		Current:       make([]models.FoodItem, 0, len(d.current)),
		PendingAdd:    d.pendingAdd.sorted(),
		PendingRemove: d.pendingRemove.sorted(),
		Dirty:         len(d.pendingAdd) > 0 || len(d.pendingRemove) > 0,
		Applying:      d.applying,
		Closed:        d.closed,
	}
	for name, item := range d.known {
		if d.current.has(name) {
			snap.Current = append(snap.Current, item)
		} else {
			snap.Available = append(snap.Available, item)
		}
	}
	sort.Slice(snap.Available, func(i, j int) bool { return snap.Available[i].Name < snap.Available[j].Name })
	sort.Slice(snap.Current, func(i, j int) bool { return snap.Current[i].Name < snap.Current[j].Name })
	return snap
}

// checkInvariants 校验草稿不变式，供测试使用
func (d *Draft) checkInvariants() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for name := range d.pendingAdd {
		if d.pendingRemove.has(name) {
			return fmt.Errorf("%q is pending both add and remove", name)
		}
	}
	expected := nameSet{}
	for name := range d.original {
		if !d.pendingRemove.has(name) {
			expected[name] = struct{}{}
		}
	}
	for name := range d.pendingAdd {
		expected[name] = struct{}{}
	}
	if len(expected) != len(d.current) {
		return fmt.Errorf("current has %d items, expected %d", len(d.current), len(expected))
	}
	for name := range expected {
		if !d.current.has(name) {
			return fmt.Errorf("%q missing from current", name)
		}
	}
	return nil
}
