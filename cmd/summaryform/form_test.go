package main

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/a-h/summaryform/client"
	"github.com/a-h/summaryform/form"
	"github.com/a-h/summaryform/models"
	tea "github.com/charmbracelet/bubbletea"
)

type fakeSummarizer struct {
	calls int
	resp  models.SummarizePostResponse
	err   error
}

func (f *fakeSummarizer) SummarizePost(ctx context.Context, req models.SummarizePostRequest) (models.SummarizePostResponse, error) {
	f.calls++
	return f.resp, f.err
}

var ctrlS = tea.KeyMsg{Type: tea.KeyCtrlS}

// runUntilSettled executes the commands returned by a key press and returns the settled message.
func runUntilSettled(t *testing.T, cmd tea.Cmd) settledMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	switch msg := cmd().(type) {
	case settledMsg:
		return msg
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if sm, ok := c().(settledMsg); ok {
				return sm
			}
		}
	}
	t.Fatal("expected a settled message")
	return settledMsg{}
}

func newTestFormModel(baseURL string, s form.Summarizer) formModel {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return newFormModel(context.Background(), "Test Form", form.New(log, baseURL, s))
}

func TestFormModel(t *testing.T) {
	t.Run("submitting empty text shows an alert without calling the API", func(t *testing.T) {
		s := &fakeSummarizer{}
		m := newTestFormModel("http://localhost", s)

		updated, cmd := m.Update(ctrlS)
		m = updated.(formModel)
		updated, _ = m.Update(runUntilSettled(t, cmd))
		m = updated.(formModel)

		if s.calls != 0 {
			t.Errorf("expected no calls, got %d", s.calls)
		}
		if !strings.Contains(m.View(), form.EmptyTextMessage) {
			t.Errorf("expected the alert to be shown, got:\n%s", m.View())
		}
	})
	t.Run("a summary is shown after a successful submission", func(t *testing.T) {
		s := &fakeSummarizer{resp: models.SummarizePostResponse{Summary: "The summary."}}
		m := newTestFormModel("http://localhost", s)
		m.textarea.SetValue("Some long text.")

		updated, cmd := m.Update(ctrlS)
		m = updated.(formModel)
		if !m.submitting {
			t.Error("expected the model to be submitting")
		}
		if !strings.Contains(m.View(), "Summarizing...") {
			t.Errorf("expected the loading indicator, got:\n%s", m.View())
		}

		updated, _ = m.Update(runUntilSettled(t, cmd))
		m = updated.(formModel)
		if m.submitting {
			t.Error("expected the model to have settled")
		}
		if s.calls != 1 {
			t.Errorf("expected 1 call, got %d", s.calls)
		}
		view := m.View()
		if !strings.Contains(view, "The summary.") {
			t.Errorf("expected the summary to be shown, got:\n%s", view)
		}
		if strings.Contains(view, "Summarizing...") {
			t.Errorf("expected the loading indicator to be hidden, got:\n%s", view)
		}
	})
	t.Run("an API error is shown", func(t *testing.T) {
		s := &fakeSummarizer{err: &client.StatusError{Status: 500, Message: "bad input"}}
		m := newTestFormModel("http://localhost", s)
		m.textarea.SetValue("Some long text.")

		updated, cmd := m.Update(ctrlS)
		m = updated.(formModel)
		updated, _ = m.Update(runUntilSettled(t, cmd))
		m = updated.(formModel)

		if !strings.Contains(m.View(), "Error: bad input") {
			t.Errorf("expected the error to be shown, got:\n%s", m.View())
		}
	})
	t.Run("a missing base URL shows the configuration error", func(t *testing.T) {
		s := &fakeSummarizer{}
		m := newTestFormModel("", s)
		m.textarea.SetValue("Some long text.")

		updated, cmd := m.Update(ctrlS)
		m = updated.(formModel)
		updated, _ = m.Update(runUntilSettled(t, cmd))
		m = updated.(formModel)

		if s.calls != 0 {
			t.Errorf("expected no calls, got %d", s.calls)
		}
		if !strings.Contains(m.View(), "Backend API URL is not configured.") {
			t.Errorf("expected the configuration error to be shown, got:\n%s", m.View())
		}
	})
	t.Run("input is ignored while submitting", func(t *testing.T) {
		m := newTestFormModel("http://localhost", &fakeSummarizer{})
		m.textarea.SetValue("text")
		m.submitting = true

		updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("more")})
		m = updated.(formModel)
		if cmd != nil {
			t.Error("expected no command")
		}
		if m.textarea.Value() != "text" {
			t.Errorf("expected text to be unchanged, got %q", m.textarea.Value())
		}

		_, cmd = m.Update(ctrlS)
		if cmd != nil {
			t.Error("expected a second submission to be ignored")
		}
	})
	t.Run("escape quits", func(t *testing.T) {
		m := newTestFormModel("http://localhost", &fakeSummarizer{})
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		if cmd == nil {
			t.Fatal("expected a command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("expected a quit message")
		}
	})
}
