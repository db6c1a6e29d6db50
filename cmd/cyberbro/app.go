package main

import (
	"context"
	"fmt"

	"cyberbro/internal/classifier"
	"cyberbro/internal/config"
	"cyberbro/internal/history"
	"cyberbro/internal/sentiment"
	"cyberbro/internal/service"
	"cyberbro/internal/toxicity"

	"go.uber.org/zap"
)

// app bundles the components shared by every command
type app struct {
	cfg        *config.Config
	classifier *classifier.Classifier
	store      *history.Store
	analyzer   *service.Analyzer
}

// loadConfig falls back to defaults when the default config file is absent
func loadConfig(explicit bool) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		if explicit {
			return nil, err
		}
		logger.Warn("Config file not loaded, using defaults", zap.String("path", configPath), zap.Error(err))
		return config.Default(), nil
	}
	return cfg, nil
}

// newApp wires config, classifier, history store and analyzer.
// The toxicity model is warmed up once; failure is fatal for the caller.
func newApp(ctx context.Context, configChanged bool, withToxicity bool) (*app, error) {
	cfg, err := loadConfig(configChanged)
	if err != nil {
		return nil, err
	}

	store := history.NewStore(cfg.History.Path, logger)
	a := &app{cfg: cfg, store: store}

	if !withToxicity {
		return a, nil
	}

	scorer, err := sentiment.New()
	if err != nil {
		return nil, fmt.Errorf("failed to load sentiment lexicon: %w", err)
	}

	client, err := toxicity.NewClient(toxicity.Config{
		BaseURL: cfg.Toxicity.BaseURL,
		Model:   cfg.Toxicity.Model,
		APIKey:  cfg.Toxicity.APIKey,
		Timeout: cfg.Toxicity.Timeout,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create toxicity client: %w", err)
	}

	backend := toxicity.Wrap(client, cfg.Toxicity.RequestsPerMinute, logger)
	clf := classifier.New(scorer, backend, logger)

	if err := clf.Warmup(ctx); err != nil {
		_ = clf.Close()
		return nil, err
	}

	a.classifier = clf
	a.analyzer = service.NewAnalyzer(clf, store, logger)
	return a, nil
}

func (a *app) Close() {
	if a.classifier != nil {
		if err := a.classifier.Close(); err != nil {
			logger.Warn("Failed to close classifier", zap.Error(err))
		}
	}
}
