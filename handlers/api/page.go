package api

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/nijaru/yt-summary/models"
	"github.com/nijaru/yt-summary/web"
	"github.com/sirupsen/logrus"
)

// PageHandler renders the HTML page shell.
type PageHandler struct {
	templates *template.Template
	logger    *logrus.Logger
}

func NewPageHandler(logger *logrus.Logger) (*PageHandler, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}
	return &PageHandler{
		templates: tmpl,
		logger:    logger,
	}, nil
}

// HandleIndex handles GET /
func (h *PageHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, models.PageData{})
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, code int, data models.PageData) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, web.IndexTemplate, data); err != nil {
		h.logger.WithContext(r.Context()).WithError(err).Error("Failed to render page")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, _ = buf.WriteTo(w)
}
