package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/a-h/summaryform/client"
	"github.com/a-h/summaryform/form"
	"gopkg.in/yaml.v3"
)

type SummarizeCommand struct {
	APIURL   string `help:"The base URL of the summarization API." env:"BACKEND_API_URL" default:""`
	APIKey   string `help:"The API key for the summarization API." env:"BACKEND_API_KEY" default:""`
	Text     string `help:"The text to summarize. Read from --file or stdin if not set."`
	File     string `help:"A file containing the text to summarize." type:"existingfile"`
	Format   string `help:"The output format." enum:"text,json,yaml" default:"text"`
	LogLevel string `help:"The log level to use." env:"LOG_LEVEL" default:"warn"`
}

func (c SummarizeCommand) readText() (string, error) {
	if c.Text != "" {
		return c.Text, nil
	}
	if c.File != "" {
		b, err := os.ReadFile(c.File)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return string(b), nil
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(b), nil
}

func (c SummarizeCommand) Run(ctx context.Context) (err error) {
	log := getLogger(c.LogLevel)
	text, err := c.readText()
	if err != nil {
		return err
	}

	f := form.New(log, c.APIURL, client.New(c.APIURL, c.APIKey))
	state, err := f.Submit(ctx, text)
	if errors.Is(err, form.ErrEmptyText) {
		return errors.New(form.EmptyTextMessage)
	}
	if werr := writeResult(os.Stdout, c.Format, newResult(state)); werr != nil {
		return werr
	}
	if err != nil {
		return fmt.Errorf("failed to summarize: %w", err)
	}
	return nil
}

type result struct {
	Phase   string `json:"phase" yaml:"phase"`
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

func newResult(s form.State) result {
	return result{
		Phase:   s.Phase.String(),
		Summary: s.Summary,
		Error:   s.Error,
	}
}

func writeResult(w io.Writer, format string, r result) (err error) {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(r)
	case "text", "":
		if r.Error != "" {
			_, err = fmt.Fprintf(w, "Error: %s\n", r.Error)
			return err
		}
		_, err = fmt.Fprintln(w, r.Summary)
		return err
	}
	return fmt.Errorf("unknown format %q", format)
}
