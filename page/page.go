// Package page renders the summarization form as HTML.
package page

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/a-h/summaryform/form"
)

const DefaultTitle = "Summarizer"

//go:embed index.html
var indexHTML string

var index = template.Must(template.New("index").Parse(indexHTML))

// View is everything the page needs to render.
type View struct {
	Title string
	// BasePath is the path prefix the page is hosted under, e.g. /lily-ai-fe.
	BasePath string
	State    form.State
	// Alert is a transient message that does not change the form state.
	Alert string
}

func (v View) Action() string {
	return strings.TrimRight(v.BasePath, "/") + "/"
}

func (v View) SubmitLabel() string {
	if v.State.Loading {
		return "Summarizing..."
	}
	return "Summarize Document"
}

func Render(w io.Writer, v View) error {
	if v.Title == "" {
		v.Title = DefaultTitle
	}
	if err := index.Execute(w, v); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}
