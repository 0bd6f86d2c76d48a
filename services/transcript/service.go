package transcript

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/nijaru/yt-summary/errors"
	"github.com/nijaru/yt-summary/models"
	"github.com/sirupsen/logrus"
)

// ErrNoTranscript is reported by a Provider when a video has no transcript,
// has transcripts disabled, or has none in the requested languages.
var ErrNoTranscript = stderrors.New("no transcript available")

const (
	msgNoTranscript = "No transcript found for this video. It might be disabled or in an unsupported language."
	msgFetchFailed  = "An error occurred while fetching the transcript"
)

type Segment = models.TranscriptSegment

type Provider interface {
	GetTranscript(ctx context.Context, id models.VideoID, languages []string) ([]models.TranscriptSegment, error)
}

type Service interface {
	// Fetch returns the transcript of id as one space-joined text blob.
	Fetch(ctx context.Context, id models.VideoID, languages []string) (string, error)
}

type Config struct {
	Languages []string
	// Timeout bounds one provider call; zero means none.
	Timeout time.Duration
}

type service struct {
	provider Provider
	config   Config
	logger   *logrus.Logger
}

func NewService(provider Provider, config Config, logger *logrus.Logger) Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &service{
		provider: provider,
		config:   config,
		logger:   logger,
	}
}

func (s *service) Fetch(ctx context.Context, id models.VideoID, languages []string) (string, error) {
	const op = "TranscriptService.Fetch"

	if len(languages) == 0 {
		languages = s.config.Languages
	}

	logger := s.logger.WithContext(ctx).WithFields(logrus.Fields{
		"op":        op,
		"video_id":  id,
		"languages": languages,
	})

	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	start := time.Now()
	segments, err := s.provider.GetTranscript(ctx, id, languages)
	if err != nil {
		if stderrors.Is(err, ErrNoTranscript) {
			logger.WithError(err).Info("No transcript available")
			return "", errors.NotFound(op, err, msgNoTranscript)
		}
		logger.WithError(err).Error("Transcript provider failed")
		return "", errors.Provider(op, err, fmt.Sprintf("%s: %v", msgFetchFailed, err))
	}

	text := Join(segments)
	logger.WithFields(logrus.Fields{
		"segments": len(segments),
		"chars":    len(text),
		"duration": time.Since(start),
	}).Debug("Transcript fetched")

	return text, nil
}

// Join concatenates segment texts in order, separated by single spaces.
func Join(segments []models.TranscriptSegment) string {
	parts := make([]string, len(segments))
	for i, seg := range segments {
		parts[i] = seg.Text
	}
	return strings.Join(parts, " ")
}
