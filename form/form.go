// Package form holds the controller behind the summarization form.
//
// A Controller owns the form's state and moves it through
// Idle -> Submitting -> Success | Failed. Each submission issues exactly one
// request to the summarizer. Failures are surfaced in the state, never retried.
package form

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/a-h/summaryform/client"
	"github.com/a-h/summaryform/models"
)

const (
	// EmptyTextMessage is shown to the user when they submit without any text.
	EmptyTextMessage = "Please enter text to summarize."
	// NotConfiguredMessage is surfaced when no base URL has been configured.
	NotConfiguredMessage = "Backend API URL is not configured. Set BACKEND_API_URL or --api-url."
	// UnknownServerErrorMessage is surfaced when the API fails without saying why.
	UnknownServerErrorMessage = "Unknown server error."
	// ConnectionErrorMessage is surfaced for network and decode failures.
	ConnectionErrorMessage = "Could not connect to the backend API."
)

var (
	ErrEmptyText     = errors.New("form: text is empty")
	ErrNotConfigured = errors.New("form: backend API URL is not configured")
	ErrBusy          = errors.New("form: a submission is already in progress")
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseSuccess
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSuccess:
		return "success"
	case PhaseFailed:
		return "failed"
	}
	return "unknown"
}

// State is a snapshot of the form. Error and Summary are never both set.
type State struct {
	Phase   Phase
	Text    string
	Summary string
	Loading bool
	Error   string
}

// Summarizer is the remote summarization API. client.Client implements it.
type Summarizer interface {
	SummarizePost(ctx context.Context, req models.SummarizePostRequest) (models.SummarizePostResponse, error)
}

func New(log *slog.Logger, baseURL string, summarizer Summarizer) *Controller {
	return &Controller{
		log:        log,
		baseURL:    baseURL,
		summarizer: summarizer,
	}
}

type Controller struct {
	log        *slog.Logger
	baseURL    string
	summarizer Summarizer

	m     sync.Mutex
	state State
}

func (c *Controller) State() State {
	c.m.Lock()
	defer c.m.Unlock()
	return c.state
}

// Reset returns the form to idle, keeping the text. It has no effect while a request is in flight.
func (c *Controller) Reset() {
	c.m.Lock()
	defer c.m.Unlock()
	if c.state.Loading {
		return
	}
	c.state = State{Text: c.state.Text}
}

// Submit sends text to the summarizer and returns the settled state.
//
// ErrEmptyText and ErrBusy leave the state unchanged. ErrNotConfigured sets the
// state's error without calling the summarizer. Any other error means the
// request was made and failed; the state carries the message for the user.
func (c *Controller) Submit(ctx context.Context, text string) (State, error) {
	if err := c.begin(text); err != nil {
		return c.State(), err
	}
	defer c.clearLoading()
	resp, err := c.summarizer.SummarizePost(ctx, models.SummarizePostRequest{DocumentText: text})
	return c.settle(resp, err), err
}

func (c *Controller) begin(text string) error {
	c.m.Lock()
	defer c.m.Unlock()
	if text == "" {
		return ErrEmptyText
	}
	if c.state.Loading {
		return ErrBusy
	}
	c.state.Text = text
	if c.baseURL == "" {
		c.state.Phase = PhaseFailed
		c.state.Summary = ""
		c.state.Error = NotConfiguredMessage
		return ErrNotConfigured
	}
	c.state.Phase = PhaseSubmitting
	c.state.Loading = true
	c.state.Error = ""
	c.state.Summary = ""
	return nil
}

func (c *Controller) settle(resp models.SummarizePostResponse, err error) State {
	c.m.Lock()
	defer c.m.Unlock()
	c.state.Loading = false
	if err != nil {
		c.state.Phase = PhaseFailed
		c.state.Error = c.errorMessage(err)
		return c.state
	}
	c.state.Phase = PhaseSuccess
	c.state.Summary = resp.Summary
	return c.state
}

// clearLoading also covers a summarizer that panics.
func (c *Controller) clearLoading() {
	c.m.Lock()
	defer c.m.Unlock()
	if c.state.Loading {
		c.state.Loading = false
		c.state.Phase = PhaseFailed
		c.state.Error = ConnectionErrorMessage
	}
}

func (c *Controller) errorMessage(err error) string {
	var se *client.StatusError
	if errors.As(err, &se) {
		c.log.Warn("summarization API returned an error", slog.Int("status", se.Status), slog.String("message", se.Message))
		if se.Message == "" {
			return UnknownServerErrorMessage
		}
		return se.Message
	}
	c.log.Error("API error", slog.Any("error", err))
	return ConnectionErrorMessage
}
