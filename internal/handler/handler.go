package handler

import (
	"errors"
	"html/template"
	"net/http"
	"sync"

	"cyberbro/internal/classifier"
	"cyberbro/internal/models"
	"cyberbro/internal/service"
	"cyberbro/internal/toxicity"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ModelInfoProvider describes the classifier backing the analyzer
type ModelInfoProvider interface {
	ModelInfo() map[string]interface{}
}

// Options configures the presentation layer
type Options struct {
	HistoryPath    string
	ExportFilename string
	MaxUploadBytes int64
}

// Handler handles HTTP requests
type Handler struct {
	analyzer *service.Analyzer
	model    ModelInfoProvider
	opts     Options
	logger   *zap.Logger

	// latest batch of this session; counts are never merged across batches
	mu   sync.RWMutex
	last *models.BatchResult
}

// NewHandler creates a new HTTP handler
func NewHandler(analyzer *service.Analyzer, model ModelInfoProvider, opts Options, logger *zap.Logger) *Handler {
	if opts.ExportFilename == "" {
		opts.ExportFilename = "cyberbro_full_history.csv"
	}
	if opts.MaxUploadBytes == 0 {
		opts.MaxUploadBytes = 10 << 20
	}

	return &Handler{
		analyzer: analyzer,
		model:    model,
		opts:     opts,
		logger:   logger,
	}
}

// Templates parses the embedded HTML templates
func Templates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
}

// RegisterRoutes registers all routes
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	// Dashboard
	r.GET("/", h.Dashboard)
	r.POST("/analyze/text", h.AnalyzeTextForm)
	r.POST("/analyze/upload", h.AnalyzeUploadForm)
	r.GET("/charts/sentiment", h.SentimentChart)
	r.GET("/charts/toxicity", h.ToxicityChart)
	r.GET("/history/download", h.DownloadHistory)

	api := r.Group("/api/v1")
	{
		api.POST("/analyze", h.Analyze)
		api.POST("/analyze/upload", h.AnalyzeUpload)
		api.GET("/analyze/latest", h.LatestBatch)
		api.GET("/history", h.GetHistory)
		api.GET("/history/export", h.DownloadHistory)
	}

	// Health check
	r.GET("/health", h.HealthCheck)
}

// HealthCheck returns service health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "cyberbro-analyzer",
		"model":   h.model.ModelInfo(),
		"history": h.opts.HistoryPath,
	})
}

func (h *Handler) setLatest(batch *models.BatchResult) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = batch
}

func (h *Handler) latest() *models.BatchResult {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.last
}

// statusFor maps pipeline errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrEmptyInput), errors.Is(err, service.ErrMissingPostColumn):
		return http.StatusBadRequest
	case errors.Is(err, toxicity.ErrBackendUnavailable), errors.Is(err, classifier.ErrToxicLabelMissing):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
