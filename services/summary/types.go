package summary

import "context"

// Generator sends a prompt to a generative language provider and returns its
// text output.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Service interface {
	Summarize(ctx context.Context, text string, tmpl Template) (string, error)
	Model() string
}

type Config struct {
	ModelName string
}

type Template int

const (
	TemplateVideo Template = iota
	TemplateText
)

func (t Template) String() string {
	switch t {
	case TemplateVideo:
		return "video"
	case TemplateText:
		return "text"
	default:
		return "unknown"
	}
}
