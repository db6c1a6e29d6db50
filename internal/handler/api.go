package handler

import (
	"fmt"
	"net/http"
	"strings"

	"cyberbro/internal/history"
	"cyberbro/internal/models"
	"cyberbro/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Analyze handles POST /api/v1/analyze with either free text or a post list
func (h *Handler) Analyze(c *gin.Context) {
	var req models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var posts []string
	if len(req.Posts) > 0 {
		for _, post := range req.Posts {
			if strings.TrimSpace(post) != "" {
				posts = append(posts, post)
			}
		}
	} else {
		var err error
		posts, err = service.PostsFromText(req.Text)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	h.respondWithReport(c, posts)
}

// AnalyzeUpload handles POST /api/v1/analyze/upload with a multipart "file" CSV
func (h *Handler) AnalyzeUpload(c *gin.Context) {
	posts, err := h.postsFromUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.respondWithReport(c, posts)
}

func (h *Handler) respondWithReport(c *gin.Context, posts []string) {
	report, err := h.analyzer.Analyze(c.Request.Context(), posts)
	if err != nil {
		h.logger.Error("Failed to analyze posts", zap.Error(err))
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	h.setLatest(report.Batch)

	c.JSON(http.StatusOK, models.AnalyzeResponse{
		Batch:        report.Batch,
		HistoryTotal: len(report.History),
	})
}

// LatestBatch returns the most recent batch of this session
func (h *Handler) LatestBatch(c *gin.Context) {
	batch := h.latest()
	if batch == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no analysis has been run yet"})
		return
	}

	c.JSON(http.StatusOK, batch)
}

// GetHistory returns the full history table
func (h *Handler) GetHistory(c *gin.Context) {
	rows, err := h.analyzer.History()
	if err != nil {
		h.logger.Error("Failed to load history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}

	c.JSON(http.StatusOK, models.HistoryResponse{
		Columns: models.HistoryColumns,
		Rows:    rows,
		Total:   len(rows),
	})
}

// DownloadHistory exports the full history as a CSV attachment
func (h *Handler) DownloadHistory(c *gin.Context) {
	rows, err := h.analyzer.History()
	if err != nil {
		h.logger.Error("Failed to export CSV", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", h.opts.ExportFilename))
	c.Status(http.StatusOK)

	if err := history.Write(c.Writer, rows); err != nil {
		h.logger.Error("Failed to write CSV export", zap.Error(err))
	}
}

// postsFromUpload reads the "file" form field as a CSV with a "post" column
func (h *Handler) postsFromUpload(c *gin.Context) ([]string, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.opts.MaxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("please upload a CSV file: %w", err)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	posts, err := service.PostsFromCSV(file)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, service.ErrEmptyInput
	}
	return posts, nil
}
