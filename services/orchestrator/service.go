// Package orchestrator sequences URL resolution, transcript retrieval and
// summarization for each incoming request.
package orchestrator

import (
	"context"
	"time"

	"github.com/nijaru/yt-summary/errors"
	"github.com/nijaru/yt-summary/metrics"
	"github.com/nijaru/yt-summary/models"
	"github.com/nijaru/yt-summary/services/summary"
	"github.com/nijaru/yt-summary/services/transcript"
	"github.com/nijaru/yt-summary/validation"
	"github.com/sirupsen/logrus"
)

const msgInvalidURL = "Invalid YouTube URL provided."

type Service interface {
	SummarizeText(ctx context.Context, req models.SummarizeTextRequest) (*models.TextSummary, error)
	SummarizeVideo(ctx context.Context, req models.SummarizeVideoRequest) (*models.VideoSummary, error)
	Transcript(ctx context.Context, req models.SummarizeVideoRequest) (*models.TranscriptResult, error)
}

type service struct {
	transcripts transcript.Service
	summarizer  summary.Service
	validator   *validation.Validator
	metrics     *metrics.Recorder
	logger      *logrus.Logger
}

type Option func(*service)

func WithMetrics(rec *metrics.Recorder) Option {
	return func(s *service) {
		s.metrics = rec
	}
}

func WithLogger(logger *logrus.Logger) Option {
	return func(s *service) {
		s.logger = logger
	}
}

// NewService creates a new orchestrator service
func NewService(
	transcripts transcript.Service,
	summarizer summary.Service,
	validator *validation.Validator,
	opts ...Option,
) Service {
	s := &service{
		transcripts: transcripts,
		summarizer:  summarizer,
		validator:   validator,
		logger:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.validator == nil {
		s.validator = validation.NewValidator(0)
	}
	return s
}

func (s *service) SummarizeText(ctx context.Context, req models.SummarizeTextRequest) (_ *models.TextSummary, err error) {
	const op = "Orchestrator.SummarizeText"
	logger := s.logger.WithContext(ctx).WithField("op", op)
	defer s.recordFlow(metrics.FlowText, &err)

	if err := s.validator.ValidateText(req.Text); err != nil {
		logger.WithError(err).Warn("Rejected text input")
		return nil, err
	}

	text, err := s.summarize(ctx, logger, req.Text, summary.TemplateText)
	if err != nil {
		return nil, err
	}

	return &models.TextSummary{
		OriginalText: req.Text,
		Summary:      text,
	}, nil
}

func (s *service) SummarizeVideo(ctx context.Context, req models.SummarizeVideoRequest) (_ *models.VideoSummary, err error) {
	const op = "Orchestrator.SummarizeVideo"
	logger := s.logger.WithContext(ctx).WithField("op", op)
	defer s.recordFlow(metrics.FlowVideo, &err)

	id, text, err := s.fetchTranscript(ctx, logger, op, req.VideoURL)
	if err != nil {
		return nil, err
	}

	result, err := s.summarize(ctx, logger.WithField("video_id", id), text, summary.TemplateVideo)
	if err != nil {
		return nil, err
	}

	return &models.VideoSummary{
		VideoID: id,
		Summary: result,
	}, nil
}

func (s *service) Transcript(ctx context.Context, req models.SummarizeVideoRequest) (_ *models.TranscriptResult, err error) {
	const op = "Orchestrator.Transcript"
	logger := s.logger.WithContext(ctx).WithField("op", op)
	defer s.recordFlow(metrics.FlowTranscript, &err)

	id, text, err := s.fetchTranscript(ctx, logger, op, req.VideoURL)
	if err != nil {
		return nil, err
	}

	return &models.TranscriptResult{
		VideoID:    id,
		Transcript: text,
	}, nil
}

func (s *service) fetchTranscript(ctx context.Context, logger *logrus.Entry, op, rawURL string) (models.VideoID, string, error) {
	id, ok := validation.ResolveVideoID(rawURL)
	if !ok {
		logger.WithField("url", rawURL).Warn("Could not resolve video id")
		return "", "", errors.InvalidInput(op, nil, msgInvalidURL)
	}
	logger = logger.WithField("video_id", id)

	start := time.Now()
	text, err := s.transcripts.Fetch(ctx, id, nil)
	s.metrics.ObserveProvider(metrics.ProviderYouTube, time.Since(start))
	if err != nil {
		return "", "", err
	}

	logger.WithFields(logrus.Fields{
		"chars":    len(text),
		"duration": time.Since(start),
	}).Info("Transcript retrieved")
	return id, text, nil
}

func (s *service) summarize(ctx context.Context, logger *logrus.Entry, text string, tmpl summary.Template) (string, error) {
	start := time.Now()
	result, err := s.summarizer.Summarize(ctx, text, tmpl)
	s.metrics.ObserveProvider(metrics.ProviderGemini, time.Since(start))
	if err != nil {
		return "", err
	}

	logger.WithFields(logrus.Fields{
		"model":    s.summarizer.Model(),
		"duration": time.Since(start),
	}).Info("Summary generated")
	return result, nil
}

func (s *service) recordFlow(flow string, errp *error) {
	outcome := "ok"
	if *errp != nil {
		outcome = errors.KindOf(*errp).String()
	}
	s.metrics.RecordFlow(flow, outcome)
}
