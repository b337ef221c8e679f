package http

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/orimex-orders/internal/http/middleware"
	"github.com/nurpe/orimex-orders/internal/parse"
	"github.com/nurpe/orimex-orders/internal/service"
)

type Handler struct {
	ingest  *service.IngestService
	reports *service.ReportService
	log     zerolog.Logger
}

func NewHandler(ingest *service.IngestService, reports *service.ReportService, log zerolog.Logger) *Handler {
	return &Handler{ingest: ingest, reports: reports, log: log}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	protected := router.Group("/")
	protected.Use(authMiddleware)
	protected.POST("/ingest/files", h.ingestFile)
	protected.GET("/stats", h.stats)
	protected.POST("/reports/orders/export", h.exportOrders)
	protected.POST("/reports/orders/export/pdf", h.exportOrdersPDF)
}

// ingestFile stages the uploaded file to a temp path and hands it to the
// ingestion pipeline. The summary is returned whatever the outcome.
func (h *Handler) ingestFile(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	if !principal.CanIngest() {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	upload, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	staged := filepath.Join(os.TempDir(), uuid.NewString()+"-"+filepath.Base(upload.Filename))
	if err := c.SaveUploadedFile(upload, staged); err != nil {
		h.log.Error().Err(err).Msg("failed to stage upload")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	defer func() { _ = os.Remove(staged) }()

	summary, err := h.ingest.IngestFile(c.Request.Context(), staged)
	if err != nil {
		if errors.Is(err, parse.ErrFormat) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "summary": summary})
			return
		}
		h.log.Error().Err(err).Str("file", upload.Filename).Msg("ingest failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "summary": summary})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *Handler) stats(c *gin.Context) {
	if _, ok := middleware.MustPrincipal(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	stats, err := h.reports.Stats(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("stats query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

type exportOrdersRequest struct {
	PeriodStart string `json:"period_start" binding:"required"`
	PeriodEnd   string `json:"period_end" binding:"required"`
}

func (h *Handler) exportOrders(c *gin.Context) {
	input, ok := h.bindExportRequest(c)
	if !ok {
		return
	}

	result, err := h.reports.ExportOrdersXLSX(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", result.Content)
}

func (h *Handler) exportOrdersPDF(c *gin.Context) {
	input, ok := h.bindExportRequest(c)
	if !ok {
		return
	}

	result, err := h.reports.ExportOrdersPDF(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/pdf", result.Content)
}

func (h *Handler) bindExportRequest(c *gin.Context) (service.ReportPeriodInput, bool) {
	if _, ok := middleware.MustPrincipal(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return service.ReportPeriodInput{}, false
	}

	var req exportOrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return service.ReportPeriodInput{}, false
	}

	start, err := parseDate(req.PeriodStart)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid period_start"})
		return service.ReportPeriodInput{}, false
	}
	end, err := parseDate(req.PeriodEnd)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid period_end"})
		return service.ReportPeriodInput{}, false
	}

	return service.ReportPeriodInput{PeriodStart: start, PeriodEnd: end}, true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg("report export failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}
