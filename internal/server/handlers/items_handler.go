package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/akankshagoel28/masterlist/internal/domain/models"
	repo "github.com/akankshagoel28/masterlist/internal/repository/masterdata"
	"github.com/akankshagoel28/masterlist/internal/service/masterlist"
	"github.com/akankshagoel28/masterlist/internal/service/validation"
)

// ItemHandler serves the items master section.
type ItemHandler struct {
	items  *repo.ItemRepository
	audit  *masterlist.AuditLog
	logger *zap.Logger
}

// NewItemHandler constructs the items HTTP adapter.
func NewItemHandler(items *repo.ItemRepository, audit *masterlist.AuditLog, logger *zap.Logger) *ItemHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ItemHandler{items: items, audit: audit, logger: logger}
}

// List serves the cached item list.
func (h *ItemHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.items.List())
}

// Create validates and creates one item.
func (h *ItemHandler) Create(c *gin.Context) {
	var candidate models.Item
	if err := c.ShouldBindJSON(&candidate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if violations := validation.ValidateItem(candidate, h.items.List(), 0); len(violations) > 0 {
		respondViolations(c, violations)
		return
	}

	created, err := h.items.Create(c.Request.Context(), candidate)
	if err != nil {
		h.audit.Record(models.AuditError, "items", "failed creating item %q: %v", candidate.InternalItemName, err)
		respondError(c, h.logger, err)
		return
	}

	h.audit.Record(models.AuditCreate, "items", "created item %q", created.InternalItemName)
	c.JSON(http.StatusCreated, created)
}

// Update validates and replaces one item.
func (h *ItemHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var candidate models.Item
	if err := c.ShouldBindJSON(&candidate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if violations := validation.ValidateItem(candidate, h.items.List(), id); len(violations) > 0 {
		respondViolations(c, violations)
		return
	}

	updated, err := h.items.Update(c.Request.Context(), id, candidate)
	if err != nil {
		h.audit.Record(models.AuditError, "items", "failed updating item %d: %v", id, err)
		respondError(c, h.logger, err)
		return
	}

	h.audit.Record(models.AuditUpdate, "items", "updated item %q", updated.InternalItemName)
	c.JSON(http.StatusOK, updated)
}

// Delete removes one item, subject to the sell-item BOM guard.
func (h *ItemHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.items.Delete(c.Request.Context(), id); err != nil {
		h.audit.Record(models.AuditError, "items", "failed deleting item %d: %v", id, err)
		respondError(c, h.logger, err)
		return
	}

	h.audit.Record(models.AuditDelete, "items", "deleted item %d", id)
	c.Status(http.StatusNoContent)
}
