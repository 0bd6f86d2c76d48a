package api

import (
	"net/http"
	"strings"

	"github.com/nijaru/yt-summary/errors"
	"github.com/nijaru/yt-summary/middleware"
	"github.com/nijaru/yt-summary/models"
	"github.com/nijaru/yt-summary/services/orchestrator"
	"github.com/nijaru/yt-summary/validation"
	"github.com/sirupsen/logrus"
)

const (
	fieldText     = "text_to_summarize"
	fieldVideoURL = "video_url"
)

type SummaryHandler struct {
	service   orchestrator.Service
	validator *validation.Validator
	pages     *PageHandler
}

func NewSummaryHandler(service orchestrator.Service, validator *validation.Validator, pages *PageHandler) *SummaryHandler {
	return &SummaryHandler{
		service:   service,
		validator: validator,
		pages:     pages,
	}
}

// HandleSummarize handles POST /summarize. JSON bodies run the video flow and
// answer in JSON; form posts run the text or video flow and render the page.
func (h *SummaryHandler) HandleSummarize(w http.ResponseWriter, r *http.Request) {
	switch {
	case validation.IsJSON(r):
		h.summarizeJSON(w, r)
	case validation.IsForm(r):
		h.summarizeForm(w, r)
	default:
		respondJSON(w, r, http.StatusUnsupportedMediaType, models.ErrorResponse{
			Detail: "Content-Type must be application/json or a form encoding",
		})
	}
}

func (h *SummaryHandler) summarizeJSON(w http.ResponseWriter, r *http.Request) {
	if err := h.validator.ValidateRequest(r, validation.RequestValidationOpts{
		MaxContentLength: maxBodySize,
		AllowedMethods:   []string{http.MethodPost},
		RequireJSON:      true,
	}); err != nil {
		respondError(w, r, err)
		return
	}

	var req models.SummarizeVideoRequest
	if err := readJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	result, err := h.service.SummarizeVideo(r.Context(), req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, models.SummaryResponse{Summary: result.Summary})
}

func (h *SummaryHandler) summarizeForm(w http.ResponseWriter, r *http.Request) {
	const op = "SummaryHandler.summarizeForm"
	logger := middleware.GetLogger(r.Context()).WithField("op", op)

	if err := parseForm(w, r); err != nil {
		h.renderError(w, r, models.PageData{}, errors.InvalidInput(op, err, "Invalid form submission"))
		return
	}

	_, hasText := r.PostForm[fieldText]
	videoURL := strings.TrimSpace(r.PostForm.Get(fieldVideoURL))

	if !hasText && videoURL != "" {
		data := models.PageData{VideoURL: videoURL}
		result, err := h.service.SummarizeVideo(r.Context(), models.SummarizeVideoRequest{VideoURL: videoURL})
		if err != nil {
			h.renderError(w, r, data, err)
			return
		}
		logger.WithField("video_id", result.VideoID).Debug("Rendering video summary")
		data.Summary = result.Summary
		h.pages.render(w, r, http.StatusOK, data)
		return
	}

	text := r.PostForm.Get(fieldText)
	data := models.PageData{OriginalText: text}
	result, err := h.service.SummarizeText(r.Context(), models.SummarizeTextRequest{Text: text})
	if err != nil {
		h.renderError(w, r, data, err)
		return
	}
	data.Summary = result.Summary
	h.pages.render(w, r, http.StatusOK, data)
}

// HandleTranscript handles POST /transcript
func (h *SummaryHandler) HandleTranscript(w http.ResponseWriter, r *http.Request) {
	if err := h.validator.ValidateRequest(r, validation.RequestValidationOpts{
		MaxContentLength: maxBodySize,
		AllowedMethods:   []string{http.MethodPost},
		RequireJSON:      true,
	}); err != nil {
		if !validation.IsJSON(r) {
			respondJSON(w, r, http.StatusUnsupportedMediaType, models.ErrorResponse{Detail: "Content-Type must be application/json"})
			return
		}
		respondError(w, r, err)
		return
	}

	var req models.SummarizeVideoRequest
	if err := readJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	result, err := h.service.Transcript(r.Context(), req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, result)
}

func (h *SummaryHandler) renderError(w http.ResponseWriter, r *http.Request, data models.PageData, err error) {
	code := errors.StatusCode(err)
	data.Error = "Internal server error"
	if appErr, ok := errors.As(err); ok {
		data.Error = appErr.Message
	}

	middleware.GetLogger(r.Context()).WithFields(logrus.Fields{
		"error":  err,
		"status": code,
	}).Warn("Rendering error page")

	h.pages.render(w, r, code, data)
}

func parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(maxBodySize)
	}
	return r.ParseForm()
}
