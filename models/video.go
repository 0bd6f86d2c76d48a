package models

import "time"

const videoIDLength = 11

// VideoID is the 11-character identifier of a hosted video. It is treated
// as opaque once resolved.
type VideoID string

func (id VideoID) String() string { return string(id) }

// Valid reports whether id has the shape of a video identifier.
func (id VideoID) Valid() bool {
	if len(id) != videoIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c == '-':
		default:
			return false
		}
	}
	return true
}

// TranscriptSegment is one timed chunk of a transcript. Only Text is used
// when building a summary.
type TranscriptSegment struct {
	Text     string        `json:"text"`
	Start    time.Duration `json:"start"`
	Duration time.Duration `json:"duration"`
}
