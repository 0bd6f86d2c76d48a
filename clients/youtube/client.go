// Package youtube fetches caption tracks from the public watch page and
// implements transcript.Provider.
package youtube

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"html"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nijaru/yt-summary/models"
	"github.com/nijaru/yt-summary/services/transcript"
	"github.com/pkg/errors"
)

const (
	DefaultBaseURL   = "https://www.youtube.com"
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

	playerResponseMarker = "ytInitialPlayerResponse = "
	maxWatchPageSize     = 6 << 20
	maxTimedTextSize     = 4 << 20
)

type Config struct {
	HTTPClient *http.Client
	BaseURL    string
	UserAgent  string
	// Timeout applies to the underlying HTTP client when HTTPClient is nil.
	Timeout time.Duration
}

type Client struct {
	http      *http.Client
	baseURL   string
	userAgent string
}

func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		http:      httpClient,
		baseURL:   baseURL,
		userAgent: userAgent,
	}
}

// GetTranscript returns the caption segments of id in the first of languages
// that has a track. Within a language a manual track wins over an
// auto-generated one.
func (c *Client) GetTranscript(ctx context.Context, id models.VideoID, languages []string) ([]models.TranscriptSegment, error) {
	player, err := c.fetchPlayerResponse(ctx, id)
	if err != nil {
		return nil, err
	}

	if player.Captions == nil {
		if player.PlayabilityStatus != nil && player.PlayabilityStatus.Reason != "" {
			return nil, errors.Wrapf(transcript.ErrNoTranscript, "video %s unplayable: %s", id, player.PlayabilityStatus.Reason)
		}
		return nil, errors.Wrapf(transcript.ErrNoTranscript, "video %s has captions disabled", id)
	}
	tracks := player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, errors.Wrapf(transcript.ErrNoTranscript, "video %s has no caption tracks", id)
	}

	track, ok := pickTrack(tracks, languages)
	if !ok {
		return nil, errors.Wrapf(transcript.ErrNoTranscript, "video %s has no captions in %v", id, languages)
	}

	return c.fetchTimedText(ctx, track.BaseURL)
}

func (c *Client) fetchPlayerResponse(ctx context.Context, id models.VideoID) (*playerResponse, error) {
	watchURL := c.baseURL + "/watch?v=" + url.QueryEscape(id.String())

	body, err := c.get(ctx, watchURL, maxWatchPageSize)
	if err != nil {
		return nil, errors.Wrap(err, "fetch watch page")
	}

	idx := strings.Index(string(body), playerResponseMarker)
	if idx < 0 {
		return nil, errors.New("ytInitialPlayerResponse not found in watch page")
	}
	raw := extractJSON(body[idx+len(playerResponseMarker):])
	if raw == nil {
		return nil, errors.New("malformed ytInitialPlayerResponse")
	}

	var player playerResponse
	if err := json.Unmarshal(raw, &player); err != nil {
		return nil, errors.Wrap(err, "decode ytInitialPlayerResponse")
	}
	return &player, nil
}

func (c *Client) fetchTimedText(ctx context.Context, trackURL string) ([]models.TranscriptSegment, error) {
	if strings.HasPrefix(trackURL, "/") {
		trackURL = c.baseURL + trackURL
	}

	body, err := c.get(ctx, trackURL, maxTimedTextSize)
	if err != nil {
		return nil, errors.Wrap(err, "fetch timedtext")
	}

	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, errors.Wrap(err, "parse timedtext XML")
	}

	segments := make([]models.TranscriptSegment, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		segments = append(segments, models.TranscriptSegment{
			Text:     html.UnescapeString(line.Text),
			Start:    parseSeconds(line.Start),
			Duration: parseSeconds(line.Duration),
		})
	}
	return segments, nil
}

func (c *Client) get(ctx context.Context, rawURL string, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("unexpected status %d from %s", resp.StatusCode, req.URL.Host)
	}
	return io.ReadAll(io.LimitReader(resp.Body, limit))
}

// pickTrack walks languages in order and returns the first language's manual
// track, falling back to its auto-generated one before moving on.
func pickTrack(tracks []captionTrack, languages []string) (captionTrack, bool) {
	for _, lang := range languages {
		var asr *captionTrack
		for i, t := range tracks {
			if t.LanguageCode != lang {
				continue
			}
			if !t.generated() {
				return t, true
			}
			if asr == nil {
				asr = &tracks[i]
			}
		}
		if asr != nil {
			return *asr, true
		}
	}
	return captionTrack{}, false
}

// extractJSON returns the balanced JSON object at the start of b, or nil.
func extractJSON(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inStr := false
	escaped := false
	for i, c := range b {
		if inStr {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return b[:i+1]
			}
		}
	}
	return nil
}

func parseSeconds(s string) time.Duration {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return time.Duration(f * float64(time.Second))
}
