package summary

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/nijaru/yt-summary/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	output  string
	err     error
	prompts []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.output, f.err
}

func newTestService(gen Generator) Service {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewService(gen, Config{ModelName: "gemini-1.5-flash"}, log)
}

func TestSummarizeReturnsOutputVerbatim(t *testing.T) {
	out := "  # Title\n\n* point one\n* point two  \n"
	gen := &fakeGenerator{output: out}
	svc := newTestService(gen)

	got, err := svc.Summarize(context.Background(), "some long text", TemplateText)
	require.NoError(t, err)
	assert.Equal(t, out, got)
	require.Len(t, gen.prompts, 1)
	assert.Equal(t, "Please summarize the following text in a concise way:\n\nsome long text", gen.prompts[0])
}

func TestSummarizeProviderError(t *testing.T) {
	gen := &fakeGenerator{err: stderrors.New("quota exceeded")}
	svc := newTestService(gen)

	got, err := svc.Summarize(context.Background(), "transcript", TemplateVideo)
	require.Error(t, err)
	assert.Empty(t, got)
	assert.Equal(t, errors.KindProvider, errors.KindOf(err))
	assert.Equal(t, http.StatusInternalServerError, errors.StatusCode(err))

	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, "Failed to generate summary with AI: quota exceeded", appErr.Message)
}

func TestBuildPrompt(t *testing.T) {
	video := BuildPrompt("a b", TemplateVideo)
	assert.True(t, strings.HasPrefix(video, videoInstructions))
	assert.Contains(t, video, "---\na b\n---")
	assert.Equal(t, "You are an expert summarizer. Analyze the following video transcript and provide a concise, insightful summary.\n"+
		"Structure your output with a main title and 3-5 key bullet points.\n"+
		"\n"+
		"Transcript:\n"+
		"---\n"+
		"a b\n"+
		"---", video)

	text := BuildPrompt("a b", TemplateText)
	assert.Equal(t, textInstructions+"\n\na b", text)
	assert.NotEqual(t, video, text)
}

func TestModel(t *testing.T) {
	assert.Equal(t, "gemini-1.5-flash", newTestService(&fakeGenerator{}).Model())
}
