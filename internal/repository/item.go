package repository

import (
	"context"
	"maps"
	"slices"
	"sync"
	"video-paywall-demo/internal/model"
)

// ItemRepository keeps items in insertion order. An item's index is its
// identity, so deleting index i shifts every later item down by one.
type ItemRepository interface {
	List(ctx context.Context) ([]model.Item, error)
	Append(ctx context.Context, item model.Item) (model.Item, error)
	Get(ctx context.Context, index int) (model.Item, error)
	Update(ctx context.Context, index int, patch model.Item) (model.Item, error)
	Delete(ctx context.Context, index int) (model.Item, error)
}

type memoryItemRepo struct {
	mu    sync.RWMutex
	items []model.Item
}

func NewMemoryItemRepository() ItemRepository {
	return &memoryItemRepo{}
}

func (r *memoryItemRepo) List(_ context.Context) ([]model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Item, len(r.items))
	for i, it := range r.items {
		out[i] = maps.Clone(it)
	}
	return out, nil
}

func (r *memoryItemRepo) Append(_ context.Context, item model.Item) (model.Item, error) {
	if item == nil {
		item = model.Item{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, maps.Clone(item))
	return item, nil
}

func (r *memoryItemRepo) Get(_ context.Context, index int) (model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.inRange(index) {
		return nil, model.ErrNotFound
	}
	return maps.Clone(r.items[index]), nil
}

// Update merges patch into the stored item key by key (shallow).
func (r *memoryItemRepo) Update(_ context.Context, index int, patch model.Item) (model.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.inRange(index) {
		return nil, model.ErrNotFound
	}

	if r.items[index] == nil {
		r.items[index] = model.Item{}
	}
	maps.Copy(r.items[index], patch)
	return maps.Clone(r.items[index]), nil
}

func (r *memoryItemRepo) Delete(_ context.Context, index int) (model.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.inRange(index) {
		return nil, model.ErrNotFound
	}

	deleted := r.items[index]
	r.items = slices.Delete(r.items, index, index+1)
	return deleted, nil
}

// inRange rejects negative indices; they are not counted from the end.
func (r *memoryItemRepo) inRange(index int) bool {
	return index >= 0 && index < len(r.items)
}
