package get

import (
	"log/slog"
	"net/http"

	"github.com/a-h/summaryform/page"
)

func New(log *slog.Logger, title, basePath string) Handler {
	return Handler{
		log:      log,
		title:    title,
		basePath: basePath,
	}
}

type Handler struct {
	log      *slog.Logger
	title    string
	basePath string
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Render(w, page.View{Title: h.title, BasePath: h.basePath}); err != nil {
		h.log.Error("failed to render page", slog.Any("error", err))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}
