package models

// SummarizeTextRequest is the raw-text flow input.
type SummarizeTextRequest struct {
	Text string `json:"text_to_summarize"`
}

// SummarizeVideoRequest is the video flow input.
type SummarizeVideoRequest struct {
	VideoURL string `json:"video_url"`
}

type TextSummary struct {
	OriginalText string `json:"original_text"`
	Summary      string `json:"summary"`
}

type VideoSummary struct {
	VideoID VideoID `json:"-"`
	Summary string  `json:"summary"`
}

type TranscriptResult struct {
	VideoID    VideoID `json:"video_id"`
	Transcript string  `json:"transcript"`
}

// SummaryResponse is the JSON body of a successful video summary.
type SummaryResponse struct {
	Summary string `json:"summary"`
}

// ErrorResponse is the JSON body of every failed API request.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// PageData feeds the page shell template.
type PageData struct {
	OriginalText string
	VideoURL     string
	Summary      string
	Error        string
}
