package transcript

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/nijaru/yt-summary/errors"
	"github.com/nijaru/yt-summary/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	segments  []models.TranscriptSegment
	err       error
	gotID     models.VideoID
	gotLangs  []string
	callCount int
}

func (f *fakeProvider) GetTranscript(ctx context.Context, id models.VideoID, languages []string) ([]models.TranscriptSegment, error) {
	f.callCount++
	f.gotID = id
	f.gotLangs = languages
	return f.segments, f.err
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestFetchJoinsSegments(t *testing.T) {
	provider := &fakeProvider{segments: []models.TranscriptSegment{{Text: "Hello"}, {Text: "world"}}}
	svc := NewService(provider, Config{Languages: []string{"en", "th"}}, quietLogger())

	text, err := svc.Fetch(context.Background(), "dQw4w9WgXcQ", nil)
	require.NoError(t, err)
	assert.Equal(t, "Hello world", text)
	assert.Equal(t, models.VideoID("dQw4w9WgXcQ"), provider.gotID)
	assert.Equal(t, []string{"en", "th"}, provider.gotLangs)
	assert.Equal(t, 1, provider.callCount)
}

func TestFetchUsesExplicitLanguages(t *testing.T) {
	provider := &fakeProvider{segments: []models.TranscriptSegment{{Text: "สวัสดี"}}}
	svc := NewService(provider, Config{Languages: []string{"en", "th"}}, quietLogger())

	_, err := svc.Fetch(context.Background(), "dQw4w9WgXcQ", []string{"th"})
	require.NoError(t, err)
	assert.Equal(t, []string{"th"}, provider.gotLangs)
}

func TestFetchClassifiesErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		kind     errors.Kind
		status   int
		contains string
	}{
		{
			name:     "no transcript",
			err:      fmt.Errorf("captions disabled: %w", ErrNoTranscript),
			kind:     errors.KindNotFound,
			status:   http.StatusNotFound,
			contains: "No transcript found",
		},
		{
			name:     "network failure",
			err:      stderrors.New("connection reset"),
			kind:     errors.KindProvider,
			status:   http.StatusInternalServerError,
			contains: "connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&fakeProvider{err: tt.err}, Config{Languages: []string{"en"}}, quietLogger())

			text, err := svc.Fetch(context.Background(), "dQw4w9WgXcQ", nil)
			require.Error(t, err)
			assert.Empty(t, text)
			assert.Equal(t, tt.kind, errors.KindOf(err))
			assert.Equal(t, tt.status, errors.StatusCode(err))

			appErr, ok := errors.As(err)
			require.True(t, ok)
			assert.Contains(t, appErr.Message, tt.contains)
		})
	}
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "", Join(nil))
	assert.Equal(t, "a", Join([]models.TranscriptSegment{{Text: "a"}}))
	assert.Equal(t, "a b c", Join([]models.TranscriptSegment{{Text: "a"}, {Text: "b"}, {Text: "c"}}))
}
