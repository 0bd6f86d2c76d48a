package summary

import "fmt"

const (
	videoInstructions = "You are an expert summarizer. Analyze the following video transcript and provide a concise, insightful summary.\n" +
		"Structure your output with a main title and 3-5 key bullet points."
	textInstructions  = "Please summarize the following text in a concise way:"
)

// BuildPrompt wraps text in the instructions for tmpl. Unknown templates fall
// back to the plain-text instructions.
func BuildPrompt(text string, tmpl Template) string {
	switch tmpl {
	case TemplateVideo:
		return fmt.Sprintf("%s\n\nTranscript:\n---\n%s\n---", videoInstructions, text)
	default:
		return fmt.Sprintf("%s\n\n%s", textInstructions, text)
	}
}
