package validation

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/nijaru/yt-summary/errors"
	"github.com/nijaru/yt-summary/models"
)

// videoIDPatterns are tried in order; the first match wins.
//  1. query or path style: watch?v=ID, /embed/ID, /shorts/ID, youtu.be/ID
//  2. short-link style: youtu.be/ID
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11}).*`),
	regexp.MustCompile(`youtu\.be/([0-9A-Za-z_-]{11})`),
}

// ResolveVideoID extracts the video identifier from rawURL. It returns
// false when no known URL shape matches.
func ResolveVideoID(rawURL string) (models.VideoID, bool) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", false
	}

	for _, pattern := range videoIDPatterns {
		if m := pattern.FindStringSubmatch(rawURL); len(m) == 2 {
			return models.VideoID(m[1]), true
		}
	}
	return "", false
}

type Validator struct {
	maxTextLength int
}

func NewValidator(maxTextLength int) *Validator {
	return &Validator{maxTextLength: maxTextLength}
}

// ValidateText rejects empty input, and input over the configured length when
// one is set.
func (v *Validator) ValidateText(text string) error {
	const op = "Validator.ValidateText"

	if text == "" {
		return errors.InvalidInput(op, nil, "Text to summarize is required")
	}
	if v.maxTextLength > 0 && utf8.RuneCountInString(text) > v.maxTextLength {
		return errors.InvalidInput(op, nil, fmt.Sprintf("Text exceeds the maximum length of %d characters", v.maxTextLength))
	}
	return nil
}

// RequestValidationOpts holds options for request validation
type RequestValidationOpts struct {
	MaxContentLength int64
	AllowedMethods   []string
	RequireJSON      bool
}

// ValidateRequest validates HTTP requests
func (v *Validator) ValidateRequest(r *http.Request, opts RequestValidationOpts) error {
	const op = "Validator.ValidateRequest"

	if len(opts.AllowedMethods) > 0 {
		methodAllowed := false
		for _, method := range opts.AllowedMethods {
			if r.Method == method {
				methodAllowed = true
				break
			}
		}
		if !methodAllowed {
			return errors.InvalidInput(op, nil, fmt.Sprintf("Method %s not allowed", r.Method))
		}
	}

	if opts.RequireJSON && !IsJSON(r) {
		return errors.InvalidInput(op, nil, "Content-Type must be application/json")
	}

	if opts.MaxContentLength > 0 && r.ContentLength > opts.MaxContentLength {
		return errors.InvalidInput(op, nil, "Request body too large")
	}

	return nil
}

func IsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Content-Type"), "application/json")
}

func IsForm(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return strings.Contains(ct, "application/x-www-form-urlencoded") ||
		strings.Contains(ct, "multipart/form-data")
}
