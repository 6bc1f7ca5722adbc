package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/akankshagoel28/masterlist/internal/domain/models"
	repo "github.com/akankshagoel28/masterlist/internal/repository/masterdata"
	"github.com/akankshagoel28/masterlist/internal/service/masterlist"
	"github.com/akankshagoel28/masterlist/internal/service/validation"
)

// ProcessHandler serves the process and process-step master sections.
type ProcessHandler struct {
	processes *repo.ProcessRepository
	steps     *repo.ProcessStepRepository
	audit     *masterlist.AuditLog
	logger    *zap.Logger
}

// NewProcessHandler constructs the process HTTP adapter.
func NewProcessHandler(processes *repo.ProcessRepository, steps *repo.ProcessStepRepository, audit *masterlist.AuditLog, logger *zap.Logger) *ProcessHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProcessHandler{processes: processes, steps: steps, audit: audit, logger: logger}
}

// ListProcesses serves the cached process list.
func (h *ProcessHandler) ListProcesses(c *gin.Context) {
	c.JSON(http.StatusOK, h.processes.List())
}

// CreateProcess validates and creates one process.
func (h *ProcessHandler) CreateProcess(c *gin.Context) {
	var candidate models.Process
	if err := c.ShouldBindJSON(&candidate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if violations := validation.ValidateProcess(candidate); len(violations) > 0 {
		respondViolations(c, violations)
		return
	}

	created, err := h.processes.Create(c.Request.Context(), candidate)
	if err != nil {
		h.audit.Record(models.AuditError, "process", "failed creating process %q: %v", candidate.ProcessName, err)
		respondError(c, h.logger, err)
		return
	}

	h.audit.Record(models.AuditCreate, "process", "created process %q", created.ProcessName)
	c.JSON(http.StatusCreated, created)
}

// UpdateProcess validates and replaces one process.
func (h *ProcessHandler) UpdateProcess(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var candidate models.Process
	if err := c.ShouldBindJSON(&candidate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if violations := validation.ValidateProcess(candidate); len(violations) > 0 {
		respondViolations(c, violations)
		return
	}

	updated, err := h.processes.Update(c.Request.Context(), id, candidate)
	if err != nil {
		h.audit.Record(models.AuditError, "process", "failed updating process %d: %v", id, err)
		respondError(c, h.logger, err)
		return
	}

	h.audit.Record(models.AuditUpdate, "process", "updated process %q", updated.ProcessName)
	c.JSON(http.StatusOK, updated)
}

// DeleteProcess removes one process.
func (h *ProcessHandler) DeleteProcess(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.processes.Delete(c.Request.Context(), id); err != nil {
		h.audit.Record(models.AuditError, "process", "failed deleting process %d: %v", id, err)
		respondError(c, h.logger, err)
		return
	}

	h.audit.Record(models.AuditDelete, "process", "deleted process %d", id)
	c.Status(http.StatusNoContent)
}

// ListSteps serves cached process steps, optionally filtered by item_id.
// The response carries the advisory contiguity warnings alongside the rows.
func (h *ProcessHandler) ListSteps(c *gin.Context) {
	if raw := c.Query("item_id"); raw != "" {
		itemID, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item_id"})
			return
		}
		steps := h.steps.StepsForItem(itemID)
		c.JSON(http.StatusOK, gin.H{
			"steps":    steps,
			"warnings": validation.SequenceWarnings(steps),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"steps": h.steps.List()})
}

// CreateStep validates and creates one process step. Contiguity problems are
// returned as warnings, never blocking.
func (h *ProcessHandler) CreateStep(c *gin.Context) {
	var candidate models.ProcessStep
	if err := c.ShouldBindJSON(&candidate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if violations := validation.ValidateProcessStep(candidate); len(violations) > 0 {
		respondViolations(c, violations)
		return
	}

	created, err := h.steps.Create(c.Request.Context(), candidate)
	if err != nil {
		h.audit.Record(models.AuditError, "process-steps", "failed creating step for item %d: %v", candidate.ItemID, err)
		respondError(c, h.logger, err)
		return
	}

	h.audit.Record(models.AuditCreate, "process-steps", "added step %d to item %d", created.Sequence, created.ItemID)
	c.JSON(http.StatusCreated, gin.H{
		"step":     created,
		"warnings": validation.SequenceWarnings(h.steps.StepsForItem(created.ItemID)),
	})
}

// UpdateStep validates and replaces one process step.
func (h *ProcessHandler) UpdateStep(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var candidate models.ProcessStep
	if err := c.ShouldBindJSON(&candidate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if violations := validation.ValidateProcessStep(candidate); len(violations) > 0 {
		respondViolations(c, violations)
		return
	}

	updated, err := h.steps.Update(c.Request.Context(), id, candidate)
	if err != nil {
		h.audit.Record(models.AuditError, "process-steps", "failed updating step %d: %v", id, err)
		respondError(c, h.logger, err)
		return
	}

	h.audit.Record(models.AuditUpdate, "process-steps", "updated step %d", id)
	c.JSON(http.StatusOK, gin.H{
		"step":     updated,
		"warnings": validation.SequenceWarnings(h.steps.StepsForItem(updated.ItemID)),
	})
}
