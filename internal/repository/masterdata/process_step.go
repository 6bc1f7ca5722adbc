package masterdata

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/akankshagoel28/masterlist/internal/domain/models"
	"github.com/akankshagoel28/masterlist/pkg/clients/masterdata"
)

// ProcessStepRepository caches process steps and proxies mutations. The
// remote API exposes no delete for steps, so neither does this repository.
type ProcessStepRepository struct {
	client masterdata.Client
	logger *zap.Logger

	mu    sync.RWMutex
	steps []models.ProcessStep
}

// NewProcessStepRepository wires a process step repository instance.
func NewProcessStepRepository(client masterdata.Client, logger *zap.Logger) *ProcessStepRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProcessStepRepository{client: client, logger: logger}
}

// Refresh resynchronizes the cache with the full step set.
func (r *ProcessStepRepository) Refresh(ctx context.Context) error {
	steps, err := r.client.ListProcessSteps(ctx, 0)
	if err != nil {
		return fmt.Errorf("refresh process steps: %w", err)
	}

	r.mu.Lock()
	r.steps = steps
	r.mu.Unlock()

	r.logger.Debug("process step cache refreshed", zap.Int("count", len(steps)))
	return nil
}

// List returns a copy of the cached steps.
func (r *ProcessStepRepository) List() []models.ProcessStep {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.ProcessStep, len(r.steps))
	copy(out, r.steps)
	return out
}

// StepsForItem returns the cached steps routed for one item.
func (r *ProcessStepRepository) StepsForItem(itemID int) []models.ProcessStep {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.ProcessStep
	for _, s := range r.steps {
		if s.ItemID == itemID {
			out = append(out, s)
		}
	}
	return out
}

// Create posts a new step and resynchronizes the cache.
func (r *ProcessStepRepository) Create(ctx context.Context, step models.ProcessStep) (*models.ProcessStep, error) {
	created, err := r.client.CreateProcessStep(ctx, step)
	if err != nil {
		return nil, err
	}
	if err := r.Refresh(ctx); err != nil {
		r.logger.Warn("process step created but cache refresh failed", zap.Error(err))
	}
	return created, nil
}

// Update replaces a step and resynchronizes the cache.
func (r *ProcessStepRepository) Update(ctx context.Context, id int, step models.ProcessStep) (*models.ProcessStep, error) {
	updated, err := r.client.UpdateProcessStep(ctx, id, step)
	if err != nil {
		return nil, err
	}
	if err := r.Refresh(ctx); err != nil {
		r.logger.Warn("process step updated but cache refresh failed", zap.Error(err))
	}
	return updated, nil
}
