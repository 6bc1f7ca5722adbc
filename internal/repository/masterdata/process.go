package masterdata

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/akankshagoel28/masterlist/internal/domain/models"
	"github.com/akankshagoel28/masterlist/pkg/clients/masterdata"
)

// ProcessRepository caches the process list and proxies mutations.
type ProcessRepository struct {
	client masterdata.Client
	logger *zap.Logger

	mu        sync.RWMutex
	processes []models.Process
}

// NewProcessRepository wires a process repository instance.
func NewProcessRepository(client masterdata.Client, logger *zap.Logger) *ProcessRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProcessRepository{client: client, logger: logger}
}

// Refresh resynchronizes the cache from the remote store.
func (r *ProcessRepository) Refresh(ctx context.Context) error {
	processes, err := r.client.ListProcesses(ctx)
	if err != nil {
		return fmt.Errorf("refresh processes: %w", err)
	}

	r.mu.Lock()
	r.processes = processes
	r.mu.Unlock()

	r.logger.Debug("process cache refreshed", zap.Int("count", len(processes)))
	return nil
}

// List returns a copy of the cached processes.
func (r *ProcessRepository) List() []models.Process {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Process, len(r.processes))
	copy(out, r.processes)
	return out
}

// Get looks a process up by id in the cached snapshot.
func (r *ProcessRepository) Get(id int) (models.Process, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.processes {
		if p.ID == id {
			return p, true
		}
	}
	return models.Process{}, false
}

// Create posts a new process and resynchronizes the cache.
func (r *ProcessRepository) Create(ctx context.Context, process models.Process) (*models.Process, error) {
	created, err := r.client.CreateProcess(ctx, process)
	if err != nil {
		return nil, err
	}
	if err := r.Refresh(ctx); err != nil {
		r.logger.Warn("process created but cache refresh failed", zap.Error(err))
	}
	return created, nil
}

// Update replaces a process and resynchronizes the cache.
func (r *ProcessRepository) Update(ctx context.Context, id int, process models.Process) (*models.Process, error) {
	updated, err := r.client.UpdateProcess(ctx, id, process)
	if err != nil {
		return nil, err
	}
	if err := r.Refresh(ctx); err != nil {
		r.logger.Warn("process updated but cache refresh failed", zap.Error(err))
	}
	return updated, nil
}

// Delete removes a process and resynchronizes the cache.
func (r *ProcessRepository) Delete(ctx context.Context, id int) error {
	if err := r.client.DeleteProcess(ctx, id); err != nil {
		return err
	}
	if err := r.Refresh(ctx); err != nil {
		r.logger.Warn("process deleted but cache refresh failed", zap.Error(err))
	}
	return nil
}
