package toxicity

import (
	"context"
	"fmt"
	"math"
	"time"

	"cyberbro/internal/models"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimitedBackend wraps a backend with a token bucket
type RateLimitedBackend struct {
	backend Backend
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewRateLimitedBackend allows requestsPerMinute calls per minute with a burst of one
func NewRateLimitedBackend(backend Backend, requestsPerMinute int, logger *zap.Logger) *RateLimitedBackend {
	return &RateLimitedBackend{
		backend: backend,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1),
		logger:  logger,
	}
}

func (b *RateLimitedBackend) Classify(ctx context.Context, text string) ([]models.LabelScore, error) {
	if err := b.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait cancelled: %w", err)
	}

	return b.backend.Classify(ctx, text)
}

func (b *RateLimitedBackend) Close() error {
	return b.backend.Close()
}

func (b *RateLimitedBackend) GetModelInfo() map[string]interface{} {
	info := b.backend.GetModelInfo()
	info["requests_per_minute"] = int(math.Round(float64(b.limiter.Limit()) * 60))
	return info
}

// Wrap returns backend unchanged when requestsPerMinute is zero
func Wrap(backend Backend, requestsPerMinute int, logger *zap.Logger) Backend {
	if requestsPerMinute <= 0 {
		return backend
	}
	logger.Info("Toxicity backend rate limited", zap.Int("requests_per_minute", requestsPerMinute))
	return NewRateLimitedBackend(backend, requestsPerMinute, logger)
}
