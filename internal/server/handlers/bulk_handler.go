package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/akankshagoel28/masterlist/internal/domain/models"
	"github.com/akankshagoel28/masterlist/internal/repository/sheets"
	"github.com/akankshagoel28/masterlist/internal/service/bulkupload"
	"github.com/akankshagoel28/masterlist/internal/service/masterlist"
)

// BulkHandler serves the staged bulk upload workflow: stage a file, correct
// cells in place, commit, and download the blank templates.
type BulkHandler struct {
	bulk   *bulkupload.Service
	sheet  sheets.ImportSource
	audit  *masterlist.AuditLog
	logger *zap.Logger
}

// NewBulkHandler constructs the bulk upload HTTP adapter. sheet may be nil
// when no spreadsheet source is configured.
func NewBulkHandler(bulk *bulkupload.Service, sheet sheets.ImportSource, audit *masterlist.AuditLog, logger *zap.Logger) *BulkHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BulkHandler{bulk: bulk, sheet: sheet, audit: audit, logger: logger}
}

// Stage accepts a multipart upload and stages its rows for correction.
func (h *BulkHandler) Stage(c *gin.Context) {
	entity := bulkupload.Entity(c.Param("entity"))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file upload"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}
	defer file.Close()

	batch, err := h.bulk.StageFile(c.Request.Context(), entity, fileHeader.Filename, file)
	if err != nil {
		h.respondBulkError(c, err)
		return
	}

	h.audit.Record(models.AuditCreate, "bulk-upload", "staged %d %s rows from %s", len(batch.Rows), entity, fileHeader.Filename)
	c.JSON(http.StatusCreated, batch)
}

type stageSheetRequest struct {
	Range string `json:"range" binding:"required"`
}

// StageSheet stages rows pulled from the configured spreadsheet range.
func (h *BulkHandler) StageSheet(c *gin.Context) {
	if h.sheet == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "spreadsheet import is not configured"})
		return
	}

	entity := bulkupload.Entity(c.Param("entity"))

	var req stageSheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	table, err := h.sheet.ReadTable(c.Request.Context(), req.Range)
	if err != nil {
		h.logger.Error("spreadsheet read failed", zap.String("range", req.Range), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not read spreadsheet"})
		return
	}

	rows := make([]bulkupload.RawRow, len(table))
	for i, record := range table {
		rows[i] = bulkupload.RawRow(record)
	}

	batch, err := h.bulk.StageRows(c.Request.Context(), entity, rows)
	if err != nil {
		h.respondBulkError(c, err)
		return
	}

	h.audit.Record(models.AuditCreate, "bulk-upload", "staged %d %s rows from spreadsheet range %s", len(batch.Rows), entity, req.Range)
	c.JSON(http.StatusCreated, batch)
}

// Batch returns a staged batch with its current rows and violations.
func (h *BulkHandler) Batch(c *gin.Context) {
	batch, err := h.bulk.Batch(c.Param("id"))
	if err != nil {
		h.respondBulkError(c, err)
		return
	}
	c.JSON(http.StatusOK, batch)
}

type updateCellRequest struct {
	Row    int    `json:"row"`
	Column string `json:"column" binding:"required"`
	Value  string `json:"value"`
}

// UpdateCell edits one staged cell and returns the re-validated batch.
func (h *BulkHandler) UpdateCell(c *gin.Context) {
	var req updateCellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	batch, err := h.bulk.UpdateCell(c.Param("id"), req.Row, req.Column, req.Value)
	if err != nil {
		h.respondBulkError(c, err)
		return
	}
	c.JSON(http.StatusOK, batch)
}

// Commit dispatches a clean batch and reports the partial-success summary.
func (h *BulkHandler) Commit(c *gin.Context) {
	batchID := c.Param("id")

	summary, err := h.bulk.Commit(c.Request.Context(), batchID)
	if err != nil {
		h.respondBulkError(c, err)
		return
	}

	action := models.AuditCreate
	if summary.Failed > 0 {
		action = models.AuditError
	}
	h.audit.Record(action, "bulk-upload", "committed batch %s: %s", batchID, summary.Message)
	c.JSON(http.StatusOK, summary)
}

// Template serves the blank upload template as CSV or XLSX.
func (h *BulkHandler) Template(c *gin.Context) {
	entity := bulkupload.Entity(c.Param("entity"))

	switch c.DefaultQuery("format", "csv") {
	case "csv":
		data, err := bulkupload.TemplateCSV(entity)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s_template.csv", entity))
		c.Data(http.StatusOK, "text/csv", data)
	case "xlsx":
		data, err := bulkupload.TemplateXLSX(entity)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s_template.xlsx", entity))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be csv or xlsx"})
	}
}

func (h *BulkHandler) respondBulkError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, bulkupload.ErrBatchNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, bulkupload.ErrBatchHasViolations):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, bulkupload.ErrUnsupportedFile):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
