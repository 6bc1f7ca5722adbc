package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/akankshagoel28/masterlist/internal/service/masterlist"
)

// DashboardHandler serves the derived readiness views and the audit trail.
type DashboardHandler struct {
	masterlist *masterlist.Service
	audit      *masterlist.AuditLog
	logger     *zap.Logger
}

// NewDashboardHandler constructs the dashboard HTTP adapter.
func NewDashboardHandler(svc *masterlist.Service, audit *masterlist.AuditLog, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{masterlist: svc, audit: audit, logger: logger}
}

// Status serves the per-section completion fractions.
func (h *DashboardHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.masterlist.Status())
}

// PendingBOM serves sell items with no BOM entry and purchase items no BOM
// references, both recomputed from the current caches.
func (h *DashboardHandler) PendingBOM(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"pending_bom":       h.masterlist.PendingBOM(),
		"unused_components": h.masterlist.UnusedComponents(),
	})
}

// PendingItems serves items missing required master-data fields.
func (h *DashboardHandler) PendingItems(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"pending_items": h.masterlist.PendingItems()})
}

// AuditLog serves the recorded change history, newest first.
func (h *DashboardHandler) AuditLog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"entries": h.audit.Entries()})
}

// Health reports liveness.
func (h *DashboardHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
