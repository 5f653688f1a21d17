package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jobsift/jobsift/internal/app"
)

func main() {
	// .env is optional; flags and real environment take precedence.
	_ = godotenv.Load()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		configPath   string
		listenAddr   string
		uploadDir    string
		userAgent    string
		fetchTimeout time.Duration
		aggURL       string
		aggCountry   string
		llmBaseURL   string
		llmModel     string
		llmKey       string
		verbose      bool
	)

	flag.StringVar(&configPath, "config", os.Getenv("JOBSIFT_CONFIG"), "Path to optional YAML config file")
	flag.StringVar(&listenAddr, "listen", os.Getenv("JOBSIFT_LISTEN"), "HTTP listen address")
	flag.StringVar(&uploadDir, "uploads", os.Getenv("JOBSIFT_UPLOAD_DIR"), "Directory for CV uploads and generated artifacts")
	flag.StringVar(&userAgent, "fetch.ua", os.Getenv("JOBSIFT_FETCH_UA"), "User-Agent for posting fetches (default: browser UA)")
	flag.DurationVar(&fetchTimeout, "fetch.timeout", 0, "Per-request fetch timeout (default 10s)")
	flag.StringVar(&aggURL, "aggregator.url", os.Getenv("AGGREGATOR_URL"), "Base URL of the job-aggregation API; empty disables bulk search")
	flag.StringVar(&aggCountry, "aggregator.country", os.Getenv("AGGREGATOR_COUNTRY"), "Country scope for aggregated searches")
	flag.StringVar(&llmBaseURL, "llm.base", os.Getenv("LLM_BASE_URL"), "OpenAI-compatible base URL")
	flag.StringVar(&llmModel, "llm.model", os.Getenv("LLM_MODEL"), "Model name")
	flag.StringVar(&llmKey, "llm.key", os.Getenv("LLM_API_KEY"), "API key; empty disables AI features")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	cfg := app.Config{
		ListenAddr:        listenAddr,
		UploadDir:         uploadDir,
		UserAgent:         userAgent,
		FetchTimeout:      fetchTimeout,
		AggregatorURL:     aggURL,
		AggregatorCountry: aggCountry,
		LLMBaseURL:        llmBaseURL,
		LLMModel:          llmModel,
		LLMAPIKey:         llmKey,
		Verbose:           verbose,
	}
	if configPath != "" {
		fc, err := app.LoadFileConfig(configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", configPath).Msg("config file")
		}
		app.MergeFileConfig(&cfg, fc)
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		gin.SetMode(gin.ReleaseMode)
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
	log.Info().Msg("shutdown complete")
}
