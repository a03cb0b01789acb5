package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/a-h/summaryform/auth"
	summarizepost "github.com/a-h/summaryform/handlers/summarize/post"
	"github.com/rs/cors"
)

type StubCommand struct {
	ListenAddr      string `help:"The address to listen on." env:"LISTEN_ADDR" default:"localhost:9020"`
	APIKeysFile     string `help:"Optional file containing a JSON map of API keys to usernames." env:"API_KEYS_FILE" default:""`
	MaxSummaryRunes int    `help:"The maximum length of a stub summary." env:"MAX_SUMMARY_RUNES" default:"280"`
	LogLevel        string `help:"The log level to use." env:"LOG_LEVEL" default:"info"`
}

func newStubHandler(log *slog.Logger, maxSummaryRunes int, apiKeyToUserName map[string]string) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("POST /summarize", summarizepost.New(log, maxSummaryRunes))

	var h http.Handler = mux
	if apiKeyToUserName != nil {
		h = auth.New(apiKeyToUserName, mux)
	}
	// The form is usually served from another origin.
	return cors.AllowAll().Handler(h)
}

func (c StubCommand) Run(ctx context.Context) (err error) {
	log := getLogger(c.LogLevel)

	var apiKeyToUserName map[string]string
	if c.APIKeysFile != "" {
		apiKeyToUserName, err = auth.LoadFromFile(c.APIKeysFile)
		if err != nil {
			return fmt.Errorf("failed to load API keys: %w", err)
		}
	}

	log.Info("Listening", slog.String("addr", c.ListenAddr), slog.Bool("auth", apiKeyToUserName != nil))
	s := &http.Server{
		Addr:    c.ListenAddr,
		Handler: newStubHandler(log, c.MaxSummaryRunes, apiKeyToUserName),
	}
	return s.ListenAndServe()
}
