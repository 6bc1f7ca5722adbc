package masterdata

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/akankshagoel28/masterlist/internal/domain/models"
	"github.com/akankshagoel28/masterlist/pkg/clients/masterdata"
)

// BOMRepository caches the full BOM entry set and proxies mutations.
type BOMRepository struct {
	client masterdata.Client
	logger *zap.Logger

	mu      sync.RWMutex
	entries []models.BOMEntry
}

// NewBOMRepository wires a BOM repository instance.
func NewBOMRepository(client masterdata.Client, logger *zap.Logger) *BOMRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BOMRepository{client: client, logger: logger}
}

// Refresh resynchronizes the cache with the full BOM set.
func (r *BOMRepository) Refresh(ctx context.Context) error {
	entries, err := r.client.ListBOM(ctx)
	if err != nil {
		return fmt.Errorf("refresh bom: %w", err)
	}

	r.mu.Lock()
	r.entries = entries
	r.mu.Unlock()

	r.logger.Debug("bom cache refreshed", zap.Int("count", len(entries)))
	return nil
}

// List returns a copy of the cached BOM entries.
func (r *BOMRepository) List() []models.BOMEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.BOMEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// EntriesForItem returns the cached entries whose item_id matches.
func (r *BOMRepository) EntriesForItem(itemID int) []models.BOMEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.BOMEntry
	for _, e := range r.entries {
		if e.ItemID == itemID {
			out = append(out, e)
		}
	}
	return out
}

// Create posts a new BOM entry and resynchronizes the cache.
func (r *BOMRepository) Create(ctx context.Context, entry models.BOMEntry) (*models.BOMEntry, error) {
	created, err := r.client.CreateBOM(ctx, entry)
	if err != nil {
		return nil, err
	}
	if err := r.Refresh(ctx); err != nil {
		r.logger.Warn("bom entry created but cache refresh failed", zap.Error(err))
	}
	return created, nil
}

// Update replaces a BOM entry (typically an inline quantity edit) and
// resynchronizes the cache.
func (r *BOMRepository) Update(ctx context.Context, id int, entry models.BOMEntry) (*models.BOMEntry, error) {
	updated, err := r.client.UpdateBOM(ctx, id, entry)
	if err != nil {
		return nil, err
	}
	if err := r.Refresh(ctx); err != nil {
		r.logger.Warn("bom entry updated but cache refresh failed", zap.Error(err))
	}
	return updated, nil
}

// Delete removes a BOM entry and resynchronizes the cache.
func (r *BOMRepository) Delete(ctx context.Context, id int) error {
	if err := r.client.DeleteBOM(ctx, id); err != nil {
		return err
	}
	if err := r.Refresh(ctx); err != nil {
		r.logger.Warn("bom entry deleted but cache refresh failed", zap.Error(err))
	}
	return nil
}
