package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/akankshagoel28/masterlist/internal/server/handlers"
)

// Handlers groups the HTTP adapters the router mounts.
type Handlers struct {
	Items     *handlers.ItemHandler
	BOM       *handlers.BOMHandler
	Process   *handlers.ProcessHandler
	Bulk      *handlers.BulkHandler
	Dashboard *handlers.DashboardHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/items", h.Items.List)
	r.POST("/items", h.Items.Create)
	r.PUT("/items/:id", h.Items.Update)
	r.DELETE("/items/:id", h.Items.Delete)

	r.GET("/bom", h.BOM.List)
	r.POST("/bom", h.BOM.Create)
	r.PUT("/bom/:id", h.BOM.Update)
	r.DELETE("/bom/:id", h.BOM.Delete)

	r.GET("/process", h.Process.ListProcesses)
	r.POST("/process", h.Process.CreateProcess)
	r.PUT("/process/:id", h.Process.UpdateProcess)
	r.DELETE("/process/:id", h.Process.DeleteProcess)

	r.GET("/process-steps", h.Process.ListSteps)
	r.POST("/process-steps", h.Process.CreateStep)
	r.PUT("/process-steps/:id", h.Process.UpdateStep)

	r.POST("/bulk/:entity/stage", h.Bulk.Stage)
	r.POST("/bulk/:entity/stage-sheet", h.Bulk.StageSheet)
	r.GET("/bulk/:entity/stage/:id", h.Bulk.Batch)
	r.PUT("/bulk/:entity/stage/:id/cell", h.Bulk.UpdateCell)
	r.POST("/bulk/:entity/stage/:id/commit", h.Bulk.Commit)

	r.GET("/templates/:entity", h.Bulk.Template)

	r.GET("/dashboard/status", h.Dashboard.Status)
	r.GET("/dashboard/pending-bom", h.Dashboard.PendingBOM)
	r.GET("/dashboard/pending-items", h.Dashboard.PendingItems)
	r.GET("/audit-log", h.Dashboard.AuditLog)
	r.GET("/healthz", h.Dashboard.Health)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
