package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/akankshagoel28/masterlist/internal/config"
	"github.com/akankshagoel28/masterlist/internal/domain/models"
	repo "github.com/akankshagoel28/masterlist/internal/repository/masterdata"
	"github.com/akankshagoel28/masterlist/internal/service/masterlist"
	"github.com/akankshagoel28/masterlist/internal/service/validation"
)

// BOMHandler serves the BOM master section.
type BOMHandler struct {
	items  *repo.ItemRepository
	bom    *repo.BOMRepository
	policy config.QuantityPolicy
	audit  *masterlist.AuditLog
	logger *zap.Logger
}

// NewBOMHandler constructs the BOM HTTP adapter.
func NewBOMHandler(items *repo.ItemRepository, bom *repo.BOMRepository, policy config.QuantityPolicy, audit *masterlist.AuditLog, logger *zap.Logger) *BOMHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BOMHandler{items: items, bom: bom, policy: policy, audit: audit, logger: logger}
}

// List serves cached BOM entries, optionally filtered by item_id.
func (h *BOMHandler) List(c *gin.Context) {
	if raw := c.Query("item_id"); raw != "" {
		itemID, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item_id"})
			return
		}
		c.JSON(http.StatusOK, h.bom.EntriesForItem(itemID))
		return
	}
	c.JSON(http.StatusOK, h.bom.List())
}

// Create validates and creates one BOM entry.
func (h *BOMHandler) Create(c *gin.Context) {
	var candidate models.BOMEntry
	if err := c.ShouldBindJSON(&candidate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	violations := validation.ValidateBOMEntry(candidate, h.items.List(), h.bom.List(), h.policy, 0)
	if len(violations) > 0 {
		respondViolations(c, violations)
		return
	}

	created, err := h.bom.Create(c.Request.Context(), candidate)
	if err != nil {
		h.audit.Record(models.AuditError, "bom", "failed creating BOM entry for item %d: %v", candidate.ItemID, err)
		respondError(c, h.logger, err)
		return
	}

	h.audit.Record(models.AuditCreate, "bom", "added component %d to item %d", created.ComponentID, created.ItemID)
	c.JSON(http.StatusCreated, created)
}

// Update validates and replaces one BOM entry; this is the inline quantity
// edit path.
func (h *BOMHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var candidate models.BOMEntry
	if err := c.ShouldBindJSON(&candidate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	violations := validation.ValidateBOMEntry(candidate, h.items.List(), h.bom.List(), h.policy, id)
	if len(violations) > 0 {
		respondViolations(c, violations)
		return
	}

	updated, err := h.bom.Update(c.Request.Context(), id, candidate)
	if err != nil {
		h.audit.Record(models.AuditError, "bom", "failed updating BOM entry %d: %v", id, err)
		respondError(c, h.logger, err)
		return
	}

	h.audit.Record(models.AuditUpdate, "bom", "updated BOM entry %d", id)
	c.JSON(http.StatusOK, updated)
}

// Delete removes one BOM entry.
func (h *BOMHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.bom.Delete(c.Request.Context(), id); err != nil {
		h.audit.Record(models.AuditError, "bom", "failed deleting BOM entry %d: %v", id, err)
		respondError(c, h.logger, err)
		return
	}

	h.audit.Record(models.AuditDelete, "bom", "deleted BOM entry %d", id)
	c.Status(http.StatusNoContent)
}
