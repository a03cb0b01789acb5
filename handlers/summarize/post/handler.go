package post

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/a-h/respond"
	"github.com/a-h/summaryform/auth"
	"github.com/a-h/summaryform/models"
)

const DefaultMaxSummaryRunes = 280

func New(log *slog.Logger, maxSummaryRunes int) Handler {
	if maxSummaryRunes <= 0 {
		maxSummaryRunes = DefaultMaxSummaryRunes
	}
	return Handler{
		log:             log,
		maxSummaryRunes: maxSummaryRunes,
	}
}

// Handler is a stand-in for the remote summarization API. The summary is the
// leading sentences of the document, which is enough to exercise the form.
type Handler struct {
	log             *slog.Logger
	maxSummaryRunes int
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req models.SummarizePostRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		h.log.Error("failed to decode body", slog.Any("error", err))
		respond.WithJSON(w, models.ErrorResponse{Error: "failed to decode body"}, http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.DocumentText) == "" {
		respond.WithJSON(w, models.ErrorResponse{Error: "document_text is required"}, http.StatusBadRequest)
		return
	}

	user, _ := auth.GetUser(r)
	resp := models.SummarizePostResponse{
		Summary:        LeadingSentences(req.DocumentText, h.maxSummaryRunes),
		OriginalLength: utf8.RuneCountInString(req.DocumentText),
	}
	h.log.Info("summarized document", slog.String("user", user), slog.Int("originalLength", resp.OriginalLength), slog.Int("summaryLength", utf8.RuneCountInString(resp.Summary)))

	respond.WithJSON(w, resp, http.StatusOK)
}

// LeadingSentences returns as many whole sentences from the start of text as
// fit in maxRunes, with whitespace collapsed. If the first sentence alone is
// too long, it is cut at maxRunes and marked with an ellipsis.
func LeadingSentences(text string, maxRunes int) string {
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	var end, count int
	runes := []rune(text)
	for i, r := range runes {
		if i >= maxRunes {
			break
		}
		count++
		if isSentenceEnd(r) && (i+1 == len(runes) || unicode.IsSpace(runes[i+1])) {
			end = count
		}
	}
	if end == 0 {
		return strings.TrimSpace(string(runes[:maxRunes-1])) + "…"
	}
	return string(runes[:end])
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
