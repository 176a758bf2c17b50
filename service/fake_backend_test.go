package service

import (
	"context"
	"errors"
	"sync"

	"restoadmin/models"
)

type bulkCall struct {
	Kind   models.ParentKind
	Parent string
	Names  []string
}

// fakeBackend 内存版后端，记录写调用
type fakeBackend struct {
	mu sync.Mutex

	catalog []models.FoodItem
	parents map[models.ParentKind]map[string][]string

	catalogErr   error
	parentErr    error
	associateErr error
	removeErr    error
	listErr      error

	associateCalls    []bulkCall
	disassociateCalls []bulkCall
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		catalog: []models.FoodItem{
			{Name: "Soup", Description: "Tomato soup", Price: 5.5},
			{Name: "Salad", Description: "Green salad", Price: 6},
			{Name: "Burger", Description: "Beef burger", Price: 11.9, Image: "burger.png"},
			{Name: "Fries", Price: 3},
		},
		parents: map[models.ParentKind]map[string][]string{
			models.ParentMenu: {
				"Lunch Specials": {"Soup", "Salad"},
				"Kids":           {"Fries"},
			},
			models.ParentCategory: {
				"Starters": {"Soup"},
			},
		},
	}
}

func (f *fakeBackend) item(name string) models.FoodItem {
	for _, it := range f.catalog {
		if it.Name == name {
			return it
		}
	}
	return models.FoodItem{Name: name}
}

func (f *fakeBackend) parent(kind models.ParentKind, key string) models.Parent {
	p := models.Parent{Name: key}
	for _, n := range f.parents[kind][key] {
		p.FoodItems = append(p.FoodItems, f.item(n))
	}
	return p
}

func (f *fakeBackend) ListParents(ctx context.Context, cred Credential, kind models.ParentKind) ([]models.Parent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Parent
	for key := range f.parents[kind] {
		out = append(out, f.parent(kind, key))
	}
	return out, nil
}

func (f *fakeBackend) GetParent(ctx context.Context, cred Credential, kind models.ParentKind, key string) (*models.Parent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.parentErr != nil {
		return nil, f.parentErr
	}
	if _, ok := f.parents[kind][key]; !ok {
		return nil, &APIError{Status: 404, Message: "not found"}
	}
	p := f.parent(kind, key)
	return &p, nil
}

func (f *fakeBackend) ListChildren(ctx context.Context, cred Credential) ([]models.FoodItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.catalogErr != nil {
		return nil, f.catalogErr
	}
	return append([]models.FoodItem(nil), f.catalog...), nil
}

func (f *fakeBackend) Associate(ctx context.Context, cred Credential, kind models.ParentKind, key string, names []string) (*models.Parent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.associateCalls = append(f.associateCalls, bulkCall{Kind: kind, Parent: key, Names: append([]string(nil), names...)})
	if f.associateErr != nil {
		return nil, f.associateErr
	}
	current := f.parents[kind][key]
	for _, n := range names {
		if !contains(current, n) {
			current = append(current, n)
		}
	}
	f.parents[kind][key] = current
	p := f.parent(kind, key)
	return &p, nil
}

func (f *fakeBackend) Disassociate(ctx context.Context, cred Credential, kind models.ParentKind, key string, names []string) (*models.Parent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disassociateCalls = append(f.disassociateCalls, bulkCall{Kind: kind, Parent: key, Names: append([]string(nil), names...)})
	if f.removeErr != nil {
		return nil, f.removeErr
	}
	var kept []string
	for _, n := range f.parents[kind][key] {
		if !contains(names, n) {
			kept = append(kept, n)
		}
	}
	f.parents[kind][key] = kept
	p := f.parent(kind, key)
	return &p, nil
}

func (f *fakeBackend) associated(kind models.ParentKind, key string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.parents[kind][key]...)
}

func (f *fakeBackend) calls() (adds, removes []bulkCall) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]bulkCall(nil), f.associateCalls...), append([]bulkCall(nil), f.disassociateCalls...)
}

func (f *fakeBackend) setErrs(associateErr, removeErr error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.associateErr = associateErr
	f.removeErr = removeErr
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

var errBoom = errors.New("boom")
