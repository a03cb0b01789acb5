package post

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/summaryform/form"
	"github.com/a-h/summaryform/page"
)

// maxFormSize bounds the submitted form body.
const maxFormSize = 10 << 20

func New(log *slog.Logger, title, basePath, baseURL string, summarizer form.Summarizer) Handler {
	return Handler{
		log:        log,
		title:      title,
		basePath:   basePath,
		baseURL:    baseURL,
		summarizer: summarizer,
	}
}

type Handler struct {
	log        *slog.Logger
	title      string
	basePath   string
	baseURL    string
	summarizer form.Summarizer
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseForm(); err != nil {
		h.log.Error("failed to parse form", slog.Any("error", err))
		http.Error(w, "failed to parse form", http.StatusBadRequest)
		return
	}
	text := r.PostForm.Get("document_text")

	// Each page view gets its own form; nothing is kept between requests.
	f := form.New(h.log, h.baseURL, h.summarizer)
	state, err := f.Submit(r.Context(), text)

	v := page.View{
		Title:    h.title,
		BasePath: h.basePath,
		State:    state,
	}
	status := http.StatusOK
	if errors.Is(err, form.ErrEmptyText) {
		v.Alert = form.EmptyTextMessage
		status = http.StatusBadRequest
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := page.Render(w, v); err != nil {
		h.log.Error("failed to render page", slog.Any("error", err))
	}
}
