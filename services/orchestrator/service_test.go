package orchestrator

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/nijaru/yt-summary/config"
	"github.com/nijaru/yt-summary/errors"
	"github.com/nijaru/yt-summary/metrics"
	"github.com/nijaru/yt-summary/models"
	"github.com/nijaru/yt-summary/services/summary"
	"github.com/nijaru/yt-summary/services/transcript"
	"github.com/nijaru/yt-summary/validation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	segments []models.TranscriptSegment
	err      error
	calls    []models.VideoID
}

func (f *fakeProvider) GetTranscript(ctx context.Context, id models.VideoID, languages []string) ([]models.TranscriptSegment, error) {
	f.calls = append(f.calls, id)
	return f.segments, f.err
}

type fakeGenerator struct {
	output  string
	err     error
	prompts []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.output, f.err
}

type fixture struct {
	provider  *fakeProvider
	generator *fakeGenerator
	registry  *prometheus.Registry
	svc       Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	f := &fixture{
		provider:  &fakeProvider{},
		generator: &fakeGenerator{},
		registry:  prometheus.NewRegistry(),
	}
	transcripts := transcript.NewService(f.provider, transcript.Config{Languages: []string{"en", "th"}}, log)
	summarizer := summary.NewService(f.generator, summary.Config{ModelName: "gemini-1.5-flash"}, log)
	f.svc = NewService(transcripts, summarizer, validation.NewValidator(config.DefaultMaxText),
		WithLogger(log),
		WithMetrics(metrics.NewRecorder(f.registry)),
	)
	return f
}

func TestSummarizeVideoEndToEnd(t *testing.T) {
	f := newFixture(t)
	f.provider.segments = []models.TranscriptSegment{{Text: "a"}, {Text: "b"}}
	f.generator.output = "# Title\n* a\n* b"

	got, err := f.svc.SummarizeVideo(context.Background(), models.SummarizeVideoRequest{VideoURL: "https://youtu.be/dQw4w9WgXcQ"})
	require.NoError(t, err)

	assert.Equal(t, []models.VideoID{"dQw4w9WgXcQ"}, f.provider.calls)
	require.Len(t, f.generator.prompts, 1)
	assert.Equal(t, summary.BuildPrompt("a b", summary.TemplateVideo), f.generator.prompts[0])
	assert.Equal(t, &models.VideoSummary{VideoID: "dQw4w9WgXcQ", Summary: "# Title\n* a\n* b"}, got)
}

func TestSummarizeVideoInvalidURL(t *testing.T) {
	f := newFixture(t)

	got, err := f.svc.SummarizeVideo(context.Background(), models.SummarizeVideoRequest{VideoURL: "https://example.com/"})
	assert.Nil(t, got)
	assert.Equal(t, http.StatusBadRequest, errors.StatusCode(err))
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, msgInvalidURL, appErr.Message)

	assert.Empty(t, f.provider.calls)
	assert.Empty(t, f.generator.prompts)
}

func TestSummarizeVideoPropagatesErrors(t *testing.T) {
	tests := []struct {
		name        string
		providerErr error
		genErr      error
		status      int
		prompts     int
	}{
		{"no transcript", fmt.Errorf("disabled: %w", transcript.ErrNoTranscript), nil, http.StatusNotFound, 0},
		{"transcript provider failure", stderrors.New("timeout"), nil, http.StatusInternalServerError, 0},
		{"summary provider failure", nil, stderrors.New("quota"), http.StatusInternalServerError, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.provider.segments = []models.TranscriptSegment{{Text: "a"}}
			f.provider.err = tt.providerErr
			f.generator.err = tt.genErr

			got, err := f.svc.SummarizeVideo(context.Background(), models.SummarizeVideoRequest{VideoURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ"})
			assert.Nil(t, got)
			assert.Equal(t, tt.status, errors.StatusCode(err))
			assert.Len(t, f.generator.prompts, tt.prompts)
		})
	}
}

func TestSummarizeText(t *testing.T) {
	f := newFixture(t)
	f.generator.output = "short version"

	got, err := f.svc.SummarizeText(context.Background(), models.SummarizeTextRequest{Text: "a long article"})
	require.NoError(t, err)
	assert.Equal(t, &models.TextSummary{OriginalText: "a long article", Summary: "short version"}, got)
	require.Len(t, f.generator.prompts, 1)
	assert.Equal(t, summary.BuildPrompt("a long article", summary.TemplateText), f.generator.prompts[0])
}

func TestSummarizeTextEmptyNeverReachesSummarizer(t *testing.T) {
	f := newFixture(t)

	got, err := f.svc.SummarizeText(context.Background(), models.SummarizeTextRequest{Text: ""})
	assert.Nil(t, got)
	assert.True(t, errors.IsInvalidInput(err))
	assert.Empty(t, f.generator.prompts)
}

func TestSummarizeTextPassesNonEmptyInputThrough(t *testing.T) {
	for _, text := range []string{"   ", "\n", strings.Repeat("a", 100001)} {
		f := newFixture(t)
		f.generator.output = "ok"

		got, err := f.svc.SummarizeText(context.Background(), models.SummarizeTextRequest{Text: text})
		require.NoError(t, err)
		assert.Equal(t, text, got.OriginalText)
		assert.Len(t, f.generator.prompts, 1)
	}
}

func TestSummarizeTextProviderError(t *testing.T) {
	f := newFixture(t)
	f.generator.err = stderrors.New("boom")

	_, err := f.svc.SummarizeText(context.Background(), models.SummarizeTextRequest{Text: "hello"})
	assert.Equal(t, errors.KindProvider, errors.KindOf(err))
	assert.Len(t, f.generator.prompts, 1)
}

func TestTranscript(t *testing.T) {
	f := newFixture(t)
	f.provider.segments = []models.TranscriptSegment{{Text: "Hello"}, {Text: "world"}}

	got, err := f.svc.Transcript(context.Background(), models.SummarizeVideoRequest{VideoURL: "https://www.youtube.com/shorts/dQw4w9WgXcQ"})
	require.NoError(t, err)
	assert.Equal(t, &models.TranscriptResult{VideoID: "dQw4w9WgXcQ", Transcript: "Hello world"}, got)
	assert.Empty(t, f.generator.prompts)
}

func TestFlowMetrics(t *testing.T) {
	f := newFixture(t)
	f.generator.output = "ok"
	f.provider.segments = []models.TranscriptSegment{{Text: "a"}}

	_, _ = f.svc.SummarizeText(context.Background(), models.SummarizeTextRequest{Text: ""})
	_, _ = f.svc.SummarizeVideo(context.Background(), models.SummarizeVideoRequest{VideoURL: "https://youtu.be/dQw4w9WgXcQ"})

	expected := `
# HELP ytsummary_summaries_total Total number of summarization flows by outcome
# TYPE ytsummary_summaries_total counter
ytsummary_summaries_total{flow="text",outcome="invalid_input"} 1
ytsummary_summaries_total{flow="video",outcome="ok"} 1
`
	require.NoError(t, testutil.GatherAndCompare(f.registry, strings.NewReader(expected), "ytsummary_summaries_total"))
}
