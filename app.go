package main

import (
	"context"
	"io"
	"sync"

	"github.com/nijaru/yt-summary/clients/gemini"
	"github.com/nijaru/yt-summary/clients/youtube"
	"github.com/nijaru/yt-summary/config"
	"github.com/nijaru/yt-summary/logger"
	"github.com/nijaru/yt-summary/metrics"
	"github.com/nijaru/yt-summary/services/orchestrator"
	"github.com/nijaru/yt-summary/services/summary"
	"github.com/nijaru/yt-summary/services/transcript"
	"github.com/nijaru/yt-summary/validation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
)

// application holds the process-wide dependencies. Clients are built once and
// shared by every request.
type application struct {
	cfg      *config.Config
	logger   *logrus.Logger
	registry *prometheus.Registry
	recorder *metrics.Recorder
	service  orchestrator.Service

	gemini    *gemini.Client
	closeOnce sync.Once
}

func newApplication(ctx context.Context, cfg *config.Config, logOutput io.Writer) (*application, error) {
	log, err := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Dir:    cfg.LogDir,
		Output: logOutput,
	})
	if err != nil {
		return nil, err
	}

	geminiClient, err := gemini.New(ctx, gemini.Config{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		Timeout: cfg.Gemini.Timeout,
	})
	if err != nil {
		return nil, err
	}

	youtubeClient := youtube.NewClient(youtube.Config{
		BaseURL:   cfg.Transcript.BaseURL,
		UserAgent: cfg.Transcript.UserAgent,
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.NewRecorder(registry)

	transcripts := transcript.NewService(youtubeClient, transcript.Config{
		Languages: cfg.Transcript.Languages,
		Timeout:   cfg.Transcript.Timeout,
	}, log)
	summarizer := summary.NewService(geminiClient, summary.Config{
		ModelName: geminiClient.ModelName(),
	}, log)

	service := orchestrator.NewService(
		transcripts,
		summarizer,
		validation.NewValidator(cfg.MaxTextLength),
		orchestrator.WithLogger(log),
		orchestrator.WithMetrics(recorder),
	)

	log.WithFields(logrus.Fields{
		"model":     geminiClient.ModelName(),
		"languages": cfg.Transcript.Languages,
		"version":   cfg.Version,
	}).Debug("Application initialized")

	return &application{
		cfg:      cfg,
		logger:   log,
		registry: registry,
		recorder: recorder,
		service:  service,
		gemini:   geminiClient,
	}, nil
}

func (a *application) Close() {
	a.closeOnce.Do(func() {
		if err := a.gemini.Close(); err != nil {
			a.logger.WithError(err).Warn("Failed to close gemini client")
		}
	})
}
