package bulkupload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/akankshagoel28/masterlist/internal/config"
	repo "github.com/akankshagoel28/masterlist/internal/repository/masterdata"
	"github.com/akankshagoel28/masterlist/internal/service/validation"
	"github.com/akankshagoel28/masterlist/pkg/clients/masterdata"
)

// ErrBatchNotFound indicates an unknown or already committed staging batch.
var ErrBatchNotFound = errors.New("staging batch not found")

// ErrBatchHasViolations refuses a commit while any row is still invalid.
var ErrBatchHasViolations = errors.New("batch still has validation errors")

// Batch is a staged upload awaiting correction and commit.
type Batch struct {
	ID         string   `json:"id"`
	Entity     Entity   `json:"entity"`
	Rows       []RawRow `json:"rows"`
	Violations []string `json:"violations"`
}

// clone deep-copies a batch, rows included, so callers can read and marshal
// it after the service lock is released without racing later cell edits.
func (b *Batch) clone() *Batch {
	out := &Batch{ID: b.ID, Entity: b.Entity}
	out.Rows = make([]RawRow, len(b.Rows))
	for i, row := range b.Rows {
		copied := make(RawRow, len(row))
		for column, value := range row {
			copied[column] = value
		}
		out.Rows[i] = copied
	}
	if b.Violations != nil {
		out.Violations = append([]string(nil), b.Violations...)
	}
	return out
}

// RowResult reports the outcome of one dispatched create.
type RowResult struct {
	Row   int    `json:"row"`
	Error string `json:"error,omitempty"`
}

// Summary is the partial-success report of a committed batch.
type Summary struct {
	Total     int         `json:"total"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
	Failures  []RowResult `json:"failures,omitempty"`
	Message   string      `json:"message"`
}

// Service owns the staging batches and runs the reconciliation pipeline.
type Service struct {
	client masterdata.Client
	items  *repo.ItemRepository
	bom    *repo.BOMRepository
	policy config.QuantityPolicy
	logger *zap.Logger

	mu      sync.Mutex
	batches map[string]*Batch
}

// NewService wires a bulk upload service instance.
func NewService(client masterdata.Client, items *repo.ItemRepository, bom *repo.BOMRepository, policy config.QuantityPolicy, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client:  client,
		items:   items,
		bom:     bom,
		policy:  policy,
		logger:  logger,
		batches: make(map[string]*Batch),
	}
}

// StageFile parses an uploaded file and stages its rows for correction.
func (s *Service) StageFile(ctx context.Context, entity Entity, filename string, r io.Reader) (*Batch, error) {
	rows, err := ParseFile(filename, r)
	if err != nil {
		return nil, err
	}
	return s.StageRows(ctx, entity, rows)
}

// StageRows filters, normalizes and validates header-mapped rows, then holds
// them as a batch. Rows may come from a parsed file or from an external
// source such as a spreadsheet range.
func (s *Service) StageRows(ctx context.Context, entity Entity, rows []RawRow) (*Batch, error) {
	if _, err := TemplateColumns(entity); err != nil {
		return nil, err
	}

	filtered := make([]RawRow, 0, len(rows))
	for _, row := range rows {
		if !row.isEmpty() {
			filtered = append(filtered, row)
		}
	}

	switch entity {
	case EntityItems:
		filtered = normalizeItems(filtered)
	case EntityBOM:
		filtered = normalizeBOM(filtered)
	}

	batch := &Batch{
		ID:     uuid.NewString(),
		Entity: entity,
		Rows:   filtered,
	}
	s.validateBatch(batch)

	s.mu.Lock()
	s.batches[batch.ID] = batch
	out := batch.clone()
	s.mu.Unlock()

	s.logger.Info("batch staged",
		zap.String("batch_id", batch.ID),
		zap.String("entity", string(entity)),
		zap.Int("rows", len(filtered)),
		zap.Int("violations", len(out.Violations)))

	return out, nil
}

// Batch returns a staged batch by id.
func (s *Service) Batch(id string) (*Batch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	batch, ok := s.batches[id]
	if !ok {
		return nil, ErrBatchNotFound
	}
	return batch.clone(), nil
}

// UpdateCell edits one staged cell and re-runs full-batch validation. The
// whole batch is rechecked because duplicate rules depend on every row, not
// just the edited one.
func (s *Service) UpdateCell(batchID string, rowIndex int, column, value string) (*Batch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	batch, ok := s.batches[batchID]
	if !ok {
		return nil, ErrBatchNotFound
	}
	if rowIndex < 0 || rowIndex >= len(batch.Rows) {
		return nil, fmt.Errorf("row %d out of range", rowIndex+1)
	}

	columns, _ := TemplateColumns(batch.Entity)
	known := false
	for _, c := range columns {
		if c == column {
			known = true
			break
		}
	}
	if !known {
		return nil, fmt.Errorf("unknown column %q", column)
	}

	batch.Rows[rowIndex][column] = value
	s.validateBatch(batch)

	return batch.clone(), nil
}

// Commit dispatches every staged row as an independent create call. Rows are
// fired concurrently with no ordering guarantee and no rollback; the summary
// partitions per-row outcomes. A batch with outstanding violations is
// refused.
func (s *Service) Commit(ctx context.Context, batchID string) (*Summary, error) {
	s.mu.Lock()
	batch, ok := s.batches[batchID]
	if ok {
		delete(s.batches, batchID)
	}
	s.mu.Unlock()

	if !ok {
		return nil, ErrBatchNotFound
	}
	if len(batch.Violations) > 0 {
		s.mu.Lock()
		s.batches[batchID] = batch
		s.mu.Unlock()
		return nil, ErrBatchHasViolations
	}

	results := make([]error, len(batch.Rows))
	var wg sync.WaitGroup
	for i, row := range batch.Rows {
		wg.Add(1)
		go func(i int, row RawRow) {
			defer wg.Done()
			results[i] = s.dispatch(ctx, batch.Entity, row)
		}(i, row)
	}
	wg.Wait()

	summary := &Summary{Total: len(batch.Rows)}
	for i, err := range results {
		if err != nil {
			summary.Failed++
			summary.Failures = append(summary.Failures, RowResult{Row: i + 1, Error: err.Error()})
			continue
		}
		summary.Succeeded++
	}
	sort.Slice(summary.Failures, func(a, b int) bool {
		return summary.Failures[a].Row < summary.Failures[b].Row
	})
	summary.Message = fmt.Sprintf("%d succeeded, %d failed", summary.Succeeded, summary.Failed)

	// One resync after the whole batch; per-row refreshes would hammer the API.
	if err := s.refresh(ctx, batch.Entity); err != nil {
		s.logger.Warn("batch committed but cache refresh failed", zap.Error(err))
	}

	s.logger.Info("batch committed",
		zap.String("batch_id", batchID),
		zap.String("entity", string(batch.Entity)),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed))

	return summary, nil
}

func (s *Service) dispatch(ctx context.Context, entity Entity, row RawRow) error {
	switch entity {
	case EntityItems:
		item, _ := itemFromRow(row)
		_, err := s.client.CreateItem(ctx, item)
		return err
	case EntityBOM:
		entry, _ := bomFromRow(row)
		_, err := s.client.CreateBOM(ctx, entry)
		return err
	default:
		return fmt.Errorf("no dispatcher for entity %q", entity)
	}
}

func (s *Service) refresh(ctx context.Context, entity Entity) error {
	switch entity {
	case EntityItems:
		return s.items.Refresh(ctx)
	case EntityBOM:
		return s.bom.Refresh(ctx)
	}
	return nil
}

// validateBatch recomputes the full violation list: per-row rules against the
// cached server snapshot plus cross-row duplicate detection. Row numbers are
// 1-indexed over the filtered row list.
func (s *Service) validateBatch(batch *Batch) {
	batch.Violations = nil

	switch batch.Entity {
	case EntityItems:
		s.validateItemRows(batch)
	case EntityBOM:
		s.validateBOMRows(batch)
	}
}

func (s *Service) validateItemRows(batch *Batch) {
	existing := s.items.List()
	seen := make(map[string]bool, len(batch.Rows))

	for i, row := range batch.Rows {
		rowNum := i + 1

		item, conversionErrs := itemFromRow(row)
		for _, v := range conversionErrs {
			batch.Violations = append(batch.Violations, fmt.Sprintf("Row %d: %s", rowNum, v))
		}
		if len(conversionErrs) > 0 {
			continue
		}

		for _, v := range validation.ValidateItem(item, existing, 0) {
			batch.Violations = append(batch.Violations, fmt.Sprintf("Row %d: %s", rowNum, v))
		}

		key := row["internal_item_name"] + "\x00" + row["tenant_id"]
		if seen[key] {
			batch.Violations = append(batch.Violations,
				fmt.Sprintf("Row %d: Duplicate of an earlier row (item %q, tenant %s)", rowNum, row["internal_item_name"], row["tenant_id"]))
		}
		seen[key] = true
	}
}

func (s *Service) validateBOMRows(batch *Batch) {
	items := s.items.List()
	existing := s.bom.List()
	seen := make(map[[2]int]bool, len(batch.Rows))

	for i, row := range batch.Rows {
		rowNum := i + 1

		entry, conversionErrs := bomFromRow(row)
		for _, v := range conversionErrs {
			batch.Violations = append(batch.Violations, fmt.Sprintf("Row %d: %s", rowNum, v))
		}
		if len(conversionErrs) > 0 {
			continue
		}

		for _, v := range validation.ValidateBOMEntry(entry, items, existing, s.policy, 0) {
			batch.Violations = append(batch.Violations, fmt.Sprintf("Row %d: %s", rowNum, v))
		}

		key := [2]int{entry.ItemID, entry.ComponentID}
		if seen[key] {
			batch.Violations = append(batch.Violations,
				fmt.Sprintf("Row %d: Duplicate combination of item %d and component %d in this batch", rowNum, entry.ItemID, entry.ComponentID))
		}
		seen[key] = true
	}
}
