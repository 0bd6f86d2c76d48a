// Package gemini wraps the Google generative language API as a
// summary.Generator.
package gemini

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/nijaru/yt-summary/config"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

type contentModel interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type Client struct {
	client    *genai.Client
	model     contentModel
	modelName string
	timeout   time.Duration
	closeOnce sync.Once
	closeErr  error
}

// New builds the provider client. It is meant to be called once at startup.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, config.ErrMissingAPIKey
	}
	if cfg.Model == "" {
		cfg.Model = config.DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, errors.Wrap(err, "create gemini client")
	}

	return &Client{
		client:    client,
		model:     client.GenerativeModel(cfg.Model),
		modelName: cfg.Model,
		timeout:   cfg.Timeout,
	}, nil
}

func (c *Client) ModelName() string {
	return c.modelName
}

// Generate sends prompt to the model and returns the text of the first
// candidate.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", errors.Wrapf(err, "generate content with %s", c.modelName)
	}
	return responseText(resp)
}

func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		if c.client != nil {
			c.closeErr = c.client.Close()
		}
	})
	return c.closeErr
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("gemini returned no candidates")
	}
	cand := resp.Candidates[0]
	if cand.Content == nil {
		return "", errors.New("gemini returned an empty candidate")
	}

	var b strings.Builder
	for _, part := range cand.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", errors.New("gemini returned no text content")
	}
	return b.String(), nil
}
