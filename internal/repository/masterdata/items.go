// Package masterdata holds the per-entity repositories. Each repository wraps
// the remote REST API and keeps an in-memory cache of the last known server
// state: reads serve from the cache, every mutation re-fetches. Nothing is
// persisted locally.
package masterdata

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/akankshagoel28/masterlist/internal/domain/models"
	"github.com/akankshagoel28/masterlist/pkg/clients/masterdata"
)

// ErrItemHasBOM indicates a sell item cannot be deleted while BOM entries
// still reference it.
var ErrItemHasBOM = errors.New("cannot delete this item as it has associated BOM entries")

// ErrNotFound indicates the requested record is not in the cached snapshot.
var ErrNotFound = errors.New("record not found")

// ItemRepository caches the item list and proxies mutations to the API.
type ItemRepository struct {
	client masterdata.Client
	logger *zap.Logger

	mu    sync.RWMutex
	items []models.Item
}

// NewItemRepository wires an item repository instance.
func NewItemRepository(client masterdata.Client, logger *zap.Logger) *ItemRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ItemRepository{client: client, logger: logger}
}

// Refresh resynchronizes the cache from the remote store. The fetched list is
// sorted by type then name, matching the dashboard's presentation order.
func (r *ItemRepository) Refresh(ctx context.Context) error {
	items, err := r.client.ListItems(ctx)
	if err != nil {
		return fmt.Errorf("refresh items: %w", err)
	}

	models.SortItems(items)

	r.mu.Lock()
	r.items = items
	r.mu.Unlock()

	r.logger.Debug("item cache refreshed", zap.Int("count", len(items)))
	return nil
}

// List returns a copy of the cached items.
func (r *ItemRepository) List() []models.Item {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Item, len(r.items))
	copy(out, r.items)
	return out
}

// Get looks an item up by id in the cached snapshot.
func (r *ItemRepository) Get(id int) (models.Item, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, item := range r.items {
		if item.ID == id {
			return item, true
		}
	}
	return models.Item{}, false
}

// SellItems returns the cached items of type sell.
func (r *ItemRepository) SellItems() []models.Item {
	return r.filter(func(i models.Item) bool { return i.Type == models.ItemTypeSell })
}

// ComponentCandidates returns the cached items whose type may appear as a BOM
// component.
func (r *ItemRepository) ComponentCandidates() []models.Item {
	return r.filter(func(i models.Item) bool { return models.AllowedComponentTypes[i.Type] })
}

func (r *ItemRepository) filter(keep func(models.Item) bool) []models.Item {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Item
	for _, item := range r.items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// Create posts a new item and resynchronizes the cache.
func (r *ItemRepository) Create(ctx context.Context, item models.Item) (*models.Item, error) {
	created, err := r.client.CreateItem(ctx, item)
	if err != nil {
		return nil, err
	}
	if err := r.Refresh(ctx); err != nil {
		r.logger.Warn("item created but cache refresh failed", zap.Error(err))
	}
	return created, nil
}

// Update replaces an item and resynchronizes the cache.
func (r *ItemRepository) Update(ctx context.Context, id int, item models.Item) (*models.Item, error) {
	updated, err := r.client.UpdateItem(ctx, id, item)
	if err != nil {
		return nil, err
	}
	if err := r.Refresh(ctx); err != nil {
		r.logger.Warn("item updated but cache refresh failed", zap.Error(err))
	}
	return updated, nil
}

// Delete removes an item after the pre-delete guard: a sell item still
// referenced by BOM entries is rejected with ErrItemHasBOM so callers can
// distinguish it from a transport failure.
func (r *ItemRepository) Delete(ctx context.Context, id int) error {
	item, ok := r.Get(id)
	if !ok {
		return ErrNotFound
	}

	if item.Type == models.ItemTypeSell {
		entries, err := r.client.ListBOMByItem(ctx, id)
		if err != nil {
			return fmt.Errorf("check BOM references: %w", err)
		}
		if len(entries) > 0 {
			return ErrItemHasBOM
		}
	}

	if err := r.client.DeleteItem(ctx, id); err != nil {
		return err
	}
	if err := r.Refresh(ctx); err != nil {
		r.logger.Warn("item deleted but cache refresh failed", zap.Error(err))
	}
	return nil
}
