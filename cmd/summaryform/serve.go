package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/summaryform/client"
	pageget "github.com/a-h/summaryform/handlers/page/get"
	pagepost "github.com/a-h/summaryform/handlers/page/post"
)

type ServeCommand struct {
	APIURL      string `help:"The base URL of the summarization API." env:"BACKEND_API_URL" default:""`
	APIKey      string `help:"The API key for the summarization API." env:"BACKEND_API_KEY" default:""`
	BasePath    string `help:"The path prefix the form is hosted under." env:"BASE_PATH" default:"/lily-ai-fe"`
	Title       string `help:"The page title." env:"TITLE" default:"Lily AI Summarizer Gateway"`
	ListenAddr  string `help:"The address to listen on." env:"LISTEN_ADDR" default:"localhost:3000"`
	TLSCertFile string `help:"The TLS certificate file." env:"TLS_CERT_FILE" default:""`
	TLSKeyFile  string `help:"The TLS key file." env:"TLS_KEY_FILE" default:""`
	LogLevel    string `help:"The log level to use." env:"LOG_LEVEL" default:"info"`
}

func normalizeBasePath(p string) string {
	p = strings.Trim(p, "/")
	if p == "" {
		return ""
	}
	return "/" + p
}

func newServeMux(log *slog.Logger, title, basePath, apiURL, apiKey string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("GET "+basePath+"/{$}", pageget.New(log, title, basePath))
	mux.Handle("POST "+basePath+"/{$}", pagepost.New(log, title, basePath, apiURL, client.New(apiURL, apiKey)))
	if basePath != "" {
		mux.Handle("GET "+basePath, http.RedirectHandler(basePath+"/", http.StatusMovedPermanently))
	}
	return mux
}

func (c ServeCommand) Run(ctx context.Context) (err error) {
	log := getLogger(c.LogLevel)
	basePath := normalizeBasePath(c.BasePath)
	if c.APIURL == "" {
		// Not fatal: the form reports the missing configuration on every submission.
		log.Warn("summarization API URL is not configured")
	}

	mux := newServeMux(log, c.Title, basePath, c.APIURL, c.APIKey)

	log.Info("Listening", slog.String("addr", c.ListenAddr), slog.String("basePath", basePath+"/"))
	s := &http.Server{
		Addr:    c.ListenAddr,
		Handler: mux,
	}
	if c.TLSCertFile != "" && c.TLSKeyFile != "" {
		log.Info("Enabling TLS mode")
		var cert tls.Certificate
		cert, err = tls.LoadX509KeyPair(c.TLSCertFile, c.TLSKeyFile)
		if err != nil {
			return fmt.Errorf("failed to load cert: %w", err)
		}
		s.TLSConfig = &tls.Config{
			MinVersion:   tls.VersionTLS12,
			Certificates: []tls.Certificate{cert},
		}
		return s.ListenAndServeTLS(c.TLSCertFile, c.TLSKeyFile)
	}
	return s.ListenAndServe()
}
