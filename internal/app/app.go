// Package app assembles the pipeline services from configuration and runs
// the HTTP server. Components are constructed once here and handed to the
// parts that need them; there are no package-level singletons.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jobsift/jobsift/internal/assist"
	"github.com/jobsift/jobsift/internal/document"
	"github.com/jobsift/jobsift/internal/fetch"
	"github.com/jobsift/jobsift/internal/scrape"
	"github.com/jobsift/jobsift/internal/search"
	"github.com/jobsift/jobsift/internal/server"
)

// App is the assembled service graph.
type App struct {
	cfg    Config
	router http.Handler
}

// New builds every component from cfg.
func New(cfg Config) (*App, error) {
	cfg.ApplyDefaults()

	client := &fetch.Client{
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.FetchTimeout,
	}
	scraper := scrape.NewScraper(client)

	files, err := document.NewProcessor(cfg.UploadDir, document.NewExtractor())
	if err != nil {
		return nil, fmt.Errorf("document processor: %w", err)
	}

	searchSvc := &search.Service{}
	if cfg.AggregatorURL != "" {
		searchSvc.Provider = &search.Aggregator{
			BaseURL:   cfg.AggregatorURL,
			Country:   cfg.AggregatorCountry,
			UserAgent: cfg.UserAgent,
		}
	} else {
		log.Warn().Msg("no aggregator URL configured; bulk search disabled")
	}

	assistSvc := assist.New(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel)

	srv := &server.Server{
		Scraper: scraper,
		Files:   files,
		Search:  searchSvc,
		Assist:  assistSvc,
	}
	return &App{cfg: cfg, router: srv.Router()}, nil
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	httpSrv := &http.Server{
		Addr:              a.cfg.ListenAddr,
		Handler:           a.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", a.cfg.ListenAddr).Msg("listening")
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	}
}
