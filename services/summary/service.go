package summary

import (
	"context"
	"fmt"
	"time"

	"github.com/nijaru/yt-summary/errors"
	"github.com/sirupsen/logrus"
)

type service struct {
	generator Generator
	config    Config
	logger    *logrus.Logger
}

// NewService creates a new summary service
func NewService(generator Generator, config Config, logger *logrus.Logger) Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &service{
		generator: generator,
		config:    config,
		logger:    logger,
	}
}

func (s *service) Model() string {
	return s.config.ModelName
}

func (s *service) Summarize(ctx context.Context, text string, tmpl Template) (string, error) {
	const op = "SummaryService.Summarize"
	logger := s.logger.WithContext(ctx).WithFields(logrus.Fields{
		"op":       op,
		"template": tmpl.String(),
		"model":    s.config.ModelName,
	})

	prompt := BuildPrompt(text, tmpl)

	start := time.Now()
	summary, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		logger.WithError(err).Error("Summary generation failed")
		return "", errors.Provider(op, err, fmt.Sprintf("Failed to generate summary with AI: %v", err))
	}

	logger.WithFields(logrus.Fields{
		"input_chars":  len(text),
		"output_chars": len(summary),
		"duration":     time.Since(start),
	}).Debug("Summary generated")

	return summary, nil
}
