package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/a-h/summaryform/client"
	"github.com/a-h/summaryform/form"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

type FormCommand struct {
	APIURL   string `help:"The base URL of the summarization API." env:"BACKEND_API_URL" default:""`
	APIKey   string `help:"The API key for the summarization API." env:"BACKEND_API_KEY" default:""`
	Title    string `help:"The form title." env:"TITLE" default:"Lily AI Summarizer Gateway"`
	LogLevel string `help:"The log level to use." env:"LOG_LEVEL" default:"error"`
}

func (c FormCommand) Run(ctx context.Context) (err error) {
	log := getLogger(c.LogLevel)
	f := form.New(log, c.APIURL, client.New(c.APIURL, c.APIKey))
	p := tea.NewProgram(newFormModel(ctx, c.Title, f), tea.WithContext(ctx))
	if _, err = p.Run(); err != nil {
		return err
	}
	return nil
}

// Dracula color scheme.
var (
	Background  = lipgloss.Color("#282a36")
	CurrentLine = lipgloss.Color("#44475a")
	Foreground  = lipgloss.Color("#f8f8f2")
	Comment     = lipgloss.Color("#6272a4")
	Green       = lipgloss.Color("#50fa7b")
	Purple      = lipgloss.Color("#bd93f9")
	Red         = lipgloss.Color("#ff5555")
	Yellow      = lipgloss.Color("#f1fa8c")
)

var (
	titleStyle   = lipgloss.NewStyle().Background(CurrentLine).Foreground(Purple).Bold(true).Padding(0, 1)
	helpStyle    = lipgloss.NewStyle().Foreground(Comment)
	alertStyle   = lipgloss.NewStyle().Foreground(Yellow)
	errorStyle   = lipgloss.NewStyle().Padding(1).Background(Background).Foreground(Red)
	summaryStyle = lipgloss.NewStyle().Padding(1).Background(Background).Foreground(Foreground).BorderStyle(lipgloss.RoundedBorder()).BorderForeground(Green)
)

const defaultWrapWidth = 80

// settledMsg is sent when a submission returns, whatever the outcome.
type settledMsg struct {
	state form.State
	err   error
}

type formModel struct {
	ctx        context.Context
	title      string
	controller *form.Controller
	textarea   textarea.Model
	spinner    spinner.Model
	submitting bool
	alert      string
	width      int
}

func newFormModel(ctx context.Context, title string, controller *form.Controller) formModel {
	ta := textarea.New()
	ta.Placeholder = "Paste your document text here..."
	ta.Focus()
	ta.Prompt = "┃ "
	ta.CharLimit = 0
	ta.SetHeight(10)
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.ShowLineNumbers = false

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(Purple)

	return formModel{
		ctx:        ctx,
		title:      title,
		controller: controller,
		textarea:   ta,
		spinner:    sp,
		width:      defaultWrapWidth,
	}
}

func (m formModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m formModel) submit(text string) tea.Cmd {
	return func() tea.Msg {
		state, err := m.controller.Submit(m.ctx, text)
		return settledMsg{state: state, err: err}
	}
}

func (m formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case settledMsg:
		m.submitting = false
		if errors.Is(msg.err, form.ErrEmptyText) {
			m.alert = form.EmptyTextMessage
		}
		return m, m.textarea.Focus()
	case spinner.TickMsg:
		if !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		m.width = min(msg.Width, defaultWrapWidth)
		m.textarea.SetWidth(msg.Width)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit
		case "ctrl+s":
			if m.submitting {
				return m, nil
			}
			m.alert = ""
			m.submitting = true
			m.textarea.Blur()
			return m, tea.Batch(m.submit(m.textarea.Value()), m.spinner.Tick)
		default:
			// The text can't be edited while a request is in flight.
			if m.submitting {
				return m, nil
			}
			var cmd tea.Cmd
			m.textarea, cmd = m.textarea.Update(msg)
			return m, cmd
		}
	case cursor.BlinkMsg:
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

func (m formModel) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(m.title))
	sb.WriteString("\n\n")
	sb.WriteString(m.textarea.View())
	sb.WriteString("\n")
	if m.submitting {
		sb.WriteString(fmt.Sprintf("%s Summarizing...", m.spinner.View()))
	} else {
		sb.WriteString(helpStyle.Render("ctrl+s summarize • esc quit"))
	}
	sb.WriteString("\n")
	if m.alert != "" {
		sb.WriteString("\n")
		sb.WriteString(alertStyle.Render(m.alert))
		sb.WriteString("\n")
	}
	state := m.controller.State()
	switch {
	case state.Error != "":
		sb.WriteString("\n")
		sb.WriteString(errorStyle.Render(wordwrap.String("Error: "+state.Error, m.width)))
		sb.WriteString("\n")
	case state.Summary != "":
		sb.WriteString("\n")
		sb.WriteString(summaryStyle.Render(wordwrap.String(strings.TrimSpace(state.Summary), m.width)))
		sb.WriteString("\n")
	}
	return sb.String()
}
