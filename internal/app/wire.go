package app

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"credvault/internal/keyauthority"
	"credvault/internal/services/account"
	"credvault/internal/settings"
	"credvault/internal/store"
)

// Wire bundles the credential manager and its collaborators for the CLI.
type Wire struct {
	Accounts *account.Manager
	Metrics  *prometheus.Registry
	Logger   *slog.Logger

	metricsFile string
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config, logger *slog.Logger) (*Wire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
		return nil, fmt.Errorf("creating %s: %w", cfg.Home, err)
	}

	// File-based stores
	artifacts := store.NewArtifactFileStore(cfg.Home)
	prefs, err := settings.Open(cfg.Home)
	if err != nil {
		return nil, err
	}

	authority := keyauthority.New(keyauthority.WithWorkFactor(cfg.WorkFactor))

	reg := prometheus.NewRegistry()
	manager := account.New(artifacts, authority, prefs,
		account.WithLogger(logger.With("component", "account")),
		account.WithMetrics(account.NewMetrics(reg)),
	)

	return &Wire{
		Accounts:    manager,
		Metrics:     reg,
		Logger:      logger,
		metricsFile: cfg.MetricsFile,
	}, nil
}

// Close flushes metrics to the configured textfile, if any.
func (w *Wire) Close() error {
	if w.metricsFile == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(w.metricsFile, w.Metrics); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	return nil
}
