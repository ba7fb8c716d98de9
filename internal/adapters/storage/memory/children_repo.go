package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"puericultura/internal/domain/children"
)

type childRepo struct {
	mu    sync.RWMutex
	byID  map[string]children.Child
	order []string // orden de alta, como en el documento exportado
}

func NewChildRepo() children.Repository {
	return &childRepo{
		byID: make(map[string]children.Child),
	}
}

func (r *childRepo) Create(ctx context.Context, c children.Child) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(c.ID) == "" {
		return errors.New("child id required")
	}
	if _, exists := r.byID[c.ID]; exists {
		return errors.New("child already exists")
	}
	r.byID[c.ID] = c.Clone()
	r.order = append(r.order, c.ID)
	return nil
}

func (r *childRepo) Update(ctx context.Context, c children.Child) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[c.ID]; !exists {
		return children.ErrNotFound
	}
	r.byID[c.ID] = c.Clone()
	return nil
}

func (r *childRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return children.ErrNotFound
	}
	delete(r.byID, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *childRepo) GetByID(ctx context.Context, id string) (children.Child, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return children.Child{}, children.ErrNotFound
	}
	return c.Clone(), nil
}

func (r *childRepo) List(ctx context.Context) ([]children.Child, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]children.Child, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id].Clone())
	}
	return out, nil
}

func (r *childRepo) ReplaceAll(ctx context.Context, items []children.Child) error {
	byID := make(map[string]children.Child, len(items))
	order := make([]string, 0, len(items))
	for _, c := range items {
		if strings.TrimSpace(c.ID) == "" {
			return errors.New("child id required")
		}
		if _, dup := byID[c.ID]; dup {
			return errors.New("duplicate child id " + c.ID)
		}
		byID[c.ID] = c.Clone()
		order = append(order, c.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID, r.order = byID, order
	return nil
}
