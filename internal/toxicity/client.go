package toxicity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cyberbro/internal/models"

	"go.uber.org/zap"
)

// ErrBackendUnavailable is returned when the classification backend cannot be reached
// or answers with a non-200 status
var ErrBackendUnavailable = errors.New("toxicity backend unavailable")

// Backend is a pretrained text classifier returning a score per category
type Backend interface {
	Classify(ctx context.Context, text string) ([]models.LabelScore, error)
	Close() error
	GetModelInfo() map[string]interface{}
}

// Config for the inference client
type Config struct {
	BaseURL string // Default: "https://api-inference.huggingface.co"
	Model   string // Default: "unitary/toxic-bert"
	APIKey  string
	Timeout time.Duration
}

// Client calls a HuggingFace-style text-classification endpoint
type Client struct {
	baseURL    string
	model      string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// classifyRequest asks for every category score (top_k = null)
type classifyRequest struct {
	Inputs     string `json:"inputs"`
	Parameters struct {
		TopK *int `json:"top_k"`
	} `json:"parameters"`
	Options struct {
		WaitForModel bool `json:"wait_for_model"`
	} `json:"options"`
}

// NewClient creates a new inference client
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api-inference.huggingface.co"
	}

	if cfg.Model == "" {
		cfg.Model = "unitary/toxic-bert"
	}

	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	logger.Info("Toxicity client initialized",
		zap.String("base_url", cfg.BaseURL),
		zap.String("model", cfg.Model),
		zap.Bool("authenticated", cfg.APIKey != ""))

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}, nil
}

// Classify returns the score of every category the model knows for text
func (c *Client) Classify(ctx context.Context, text string) ([]models.LabelScore, error) {
	reqBody := classifyRequest{Inputs: text}
	reqBody.Options.WaitForModel = true

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/models/"+c.model, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrBackendUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Toxicity backend error",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("%w: status %d: %s", ErrBackendUnavailable, resp.StatusCode, string(body))
	}

	scores, err := decodeScores(body)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Classified text", zap.Int("labels", len(scores)))
	return scores, nil
}

// decodeScores accepts both the nested [[{label, score}]] shape returned for a single
// input and the flat [{label, score}] shape some servers return
func decodeScores(body []byte) ([]models.LabelScore, error) {
	var nested [][]models.LabelScore
	if err := json.Unmarshal(body, &nested); err == nil {
		if len(nested) == 0 {
			return nil, fmt.Errorf("%w: empty response", ErrBackendUnavailable)
		}
		return nested[0], nil
	}

	var flat []models.LabelScore
	if err := json.Unmarshal(body, &flat); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrBackendUnavailable, err)
	}
	return flat, nil
}

// Close releases the client
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// GetModelInfo returns model information
func (c *Client) GetModelInfo() map[string]interface{} {
	return map[string]interface{}{
		"provider": "huggingface",
		"model":    c.model,
		"base_url": c.baseURL,
		"timeout":  c.httpClient.Timeout.String(),
	}
}
