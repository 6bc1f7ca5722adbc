// Package masterlist derives the dashboard views: pending items, pending
// BOMs, unused components and section completion. Everything here is
// recomputed from the entity caches on every call; no derived state is
// stored, so the views cannot drift from the caches.
package masterlist

import (
	"context"

	"go.uber.org/zap"

	"github.com/akankshagoel28/masterlist/internal/domain/models"
	repo "github.com/akankshagoel28/masterlist/internal/repository/masterdata"
	"github.com/akankshagoel28/masterlist/internal/service/validation"
)

// Service composes the per-entity repositories into derived views.
type Service struct {
	items     *repo.ItemRepository
	bom       *repo.BOMRepository
	processes *repo.ProcessRepository
	steps     *repo.ProcessStepRepository
	logger    *zap.Logger
}

// NewService wires the dashboard composition service.
func NewService(items *repo.ItemRepository, bom *repo.BOMRepository, processes *repo.ProcessRepository, steps *repo.ProcessStepRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		items:     items,
		bom:       bom,
		processes: processes,
		steps:     steps,
		logger:    logger,
	}
}

// RefreshAll resynchronizes every entity cache from the remote store.
func (s *Service) RefreshAll(ctx context.Context) error {
	if err := s.items.Refresh(ctx); err != nil {
		return err
	}
	if err := s.bom.Refresh(ctx); err != nil {
		return err
	}
	if err := s.processes.Refresh(ctx); err != nil {
		return err
	}
	return s.steps.Refresh(ctx)
}

// PendingItems returns items missing any required field. They are surfaced
// for resolution, never deleted.
func (s *Service) PendingItems() []models.Item {
	var pending []models.Item
	for _, item := range s.items.List() {
		if !item.IsComplete() {
			pending = append(pending, item)
		}
	}
	return pending
}

// PendingBOM returns sell items with no BOM entry referencing them.
func (s *Service) PendingBOM() []models.Item {
	bom := s.bom.List()
	referenced := make(map[int]bool, len(bom))
	for _, entry := range bom {
		referenced[entry.ItemID] = true
	}

	var pending []models.Item
	for _, item := range s.items.SellItems() {
		if !referenced[item.ID] {
			pending = append(pending, item)
		}
	}
	return pending
}

// UnusedComponents returns purchase/component items never referenced as a
// BOM component.
func (s *Service) UnusedComponents() []models.Item {
	bom := s.bom.List()
	used := make(map[int]bool, len(bom))
	for _, entry := range bom {
		used[entry.ComponentID] = true
	}

	var unused []models.Item
	for _, item := range s.items.ComponentCandidates() {
		if !used[item.ID] {
			unused = append(unused, item)
		}
	}
	return unused
}

// StepWarnings returns the advisory sequence-contiguity warnings for one
// item's routing.
func (s *Service) StepWarnings(itemID int) []string {
	return validation.SequenceWarnings(s.steps.StepsForItem(itemID))
}

// SectionStatus reports per-section completion for the dashboard progress
// tracker, each as a fraction in [0, 1].
type SectionStatus struct {
	Items     float64 `json:"items"`
	BOM       float64 `json:"bom"`
	Processes float64 `json:"processes"`
	Steps     float64 `json:"steps"`
}

// Status recomputes the dashboard completion figures from the caches.
func (s *Service) Status() SectionStatus {
	items := s.items.List()
	status := SectionStatus{}

	if len(items) > 0 {
		complete := 0
		for _, item := range items {
			if item.IsComplete() {
				complete++
			}
		}
		status.Items = float64(complete) / float64(len(items))
	}

	sellItems := s.items.SellItems()
	if len(sellItems) > 0 {
		status.BOM = 1 - float64(len(s.PendingBOM()))/float64(len(sellItems))
	}

	processes := s.processes.List()
	if len(processes) > 0 {
		valid := 0
		for _, p := range processes {
			if len(validation.ValidateProcess(p)) == 0 {
				valid++
			}
		}
		status.Processes = float64(valid) / float64(len(processes))
	}

	if len(sellItems) > 0 {
		routed := 0
		steps := s.steps.List()
		byItem := make(map[int]bool, len(steps))
		for _, step := range steps {
			byItem[step.ItemID] = true
		}
		for _, item := range sellItems {
			if byItem[item.ID] {
				routed++
			}
		}
		status.Steps = float64(routed) / float64(len(sellItems))
	}

	return status
}
