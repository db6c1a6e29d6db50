package handler

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"cyberbro/internal/charts"
	"cyberbro/internal/models"
	"cyberbro/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"isToxic": func(label string) bool {
		return strings.Contains(label, models.Toxic)
	},
	"lower": strings.ToLower,
}

// dashboardView is the data rendered by dashboard.html
type dashboardView struct {
	Tab            string // "analyzer" or "history"
	Mode           string // "text" or "upload"
	Input          string
	Warning        string
	Error          string
	Batch          *models.BatchResult
	History        []models.HistoryRow
	ExportFilename string
}

// Dashboard renders the analyzer and history tabs
func (h *Handler) Dashboard(c *gin.Context) {
	view := &dashboardView{
		Tab:   c.DefaultQuery("tab", "analyzer"),
		Mode:  c.DefaultQuery("mode", "text"),
		Batch: h.latest(),
	}
	h.renderDashboard(c, http.StatusOK, view)
}

// AnalyzeTextForm handles the free-text form, one post per line
func (h *Handler) AnalyzeTextForm(c *gin.Context) {
	input := c.PostForm("posts")
	view := &dashboardView{Tab: "analyzer", Mode: "text", Input: input}

	posts, err := service.PostsFromText(input)
	if err != nil {
		view.Warning = err.Error()
		h.renderDashboard(c, http.StatusBadRequest, view)
		return
	}

	h.runForm(c, view, posts)
}

// AnalyzeUploadForm handles the CSV upload form
func (h *Handler) AnalyzeUploadForm(c *gin.Context) {
	view := &dashboardView{Tab: "analyzer", Mode: "upload"}

	posts, err := h.postsFromUpload(c)
	if err != nil {
		if errors.Is(err, service.ErrEmptyInput) {
			view.Warning = "The uploaded CSV has no posts to analyze."
		} else {
			view.Error = err.Error()
		}
		h.renderDashboard(c, http.StatusBadRequest, view)
		return
	}

	h.runForm(c, view, posts)
}

func (h *Handler) runForm(c *gin.Context, view *dashboardView, posts []string) {
	report, err := h.analyzer.Analyze(c.Request.Context(), posts)
	if err != nil {
		h.logger.Error("Failed to analyze posts", zap.Error(err))
		view.Error = fmt.Sprintf("Analysis failed: %v", err)
		h.renderDashboard(c, statusFor(err), view)
		return
	}

	h.setLatest(report.Batch)
	view.Batch = report.Batch
	view.History = report.History
	h.renderDashboard(c, http.StatusOK, view)
}

func (h *Handler) renderDashboard(c *gin.Context, status int, view *dashboardView) {
	view.ExportFilename = h.opts.ExportFilename

	if view.History == nil {
		rows, err := h.analyzer.History()
		if err != nil {
			h.logger.Error("Failed to load history", zap.Error(err))
			view.Error = strings.TrimSpace(view.Error + " Failed to load history.")
			rows = []models.HistoryRow{}
		}
		view.History = rows
	}

	c.HTML(status, "dashboard.html", view)
}

// SentimentChart renders the sentiment pie of the latest batch
func (h *Handler) SentimentChart(c *gin.Context) {
	batch := h.latest()
	if batch == nil {
		c.String(http.StatusNotFound, "no analysis has been run yet")
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := charts.SentimentPie(batch.SentimentCounts).Render(c.Writer); err != nil {
		h.logger.Error("Failed to render sentiment chart", zap.Error(err))
	}
}

// ToxicityChart renders the toxic/safe bar chart of the latest batch
func (h *Handler) ToxicityChart(c *gin.Context) {
	batch := h.latest()
	if batch == nil {
		c.String(http.StatusNotFound, "no analysis has been run yet")
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := charts.ToxicityBar(batch.ToxicCounts).Render(c.Writer); err != nil {
		h.logger.Error("Failed to render toxicity chart", zap.Error(err))
	}
}
