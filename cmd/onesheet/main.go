package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/MikeSquared-Agency/onesheet/internal/anthropic"
	"github.com/MikeSquared-Agency/onesheet/internal/api"
	"github.com/MikeSquared-Agency/onesheet/internal/config"
	"github.com/MikeSquared-Agency/onesheet/internal/extractor"
	"github.com/MikeSquared-Agency/onesheet/internal/hermes"
	"github.com/MikeSquared-Agency/onesheet/internal/llm"
	"github.com/MikeSquared-Agency/onesheet/internal/openai"
	"github.com/MikeSquared-Agency/onesheet/internal/processor"
	"github.com/MikeSquared-Agency/onesheet/internal/prompt"
	"github.com/MikeSquared-Agency/onesheet/internal/slack"
	"github.com/MikeSquared-Agency/onesheet/internal/store"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel, cfg.LogFormat)

	slog.Info("onesheet starting", "port", cfg.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Templates
	catalog := prompt.DefaultCatalog()
	if cfg.TemplatesPath != "" {
		c, err := prompt.LoadCatalog(cfg.TemplatesPath)
		if err != nil {
			slog.Error("failed to load templates", "path", cfg.TemplatesPath, "error", err)
			os.Exit(1)
		}
		catalog = c
	}
	slog.Info("templates loaded", "count", catalog.Len())

	// LLM client (optional; without one only parse and render work)
	client, err := newLLM(cfg)
	if err != nil {
		slog.Error("failed to create llm client", "provider", cfg.LLMProvider, "error", err)
		os.Exit(1)
	}
	if client == nil {
		slog.Warn("no llm api key configured, running parse-only")
	} else {
		slog.Info("llm client ready", "provider", cfg.LLMProvider, "model", client.Model())
	}

	ext := extractor.New(client, prompt.NewEngine(catalog), slog.Default(), extractor.Options{
		MaxTokens: cfg.MaxTokens,
		Timeout:   cfg.GenerationTimeout,
	})

	// Database (optional)
	var db *store.Store
	if cfg.DatabaseURL != "" {
		db, err = store.New(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.EnsureSchema(ctx); err != nil {
			slog.Error("failed to ensure schema", "error", err)
			os.Exit(1)
		}
		slog.Info("database connected")
	} else {
		slog.Warn("DATABASE_URL not set, generations will not be persisted")
	}

	// NATS/Hermes
	hermesClient, err := hermes.NewClient(ctx, cfg.NatsURL, cfg.NatsToken, slog.Default())
	if err != nil {
		slog.Error("failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer hermesClient.Close()
	slog.Info("NATS connected", "url", cfg.NatsURL)

	// Slack poster (optional)
	var slackPoster *slack.Poster
	if cfg.SlackBotToken != "" && cfg.SlackChannel != "" {
		slackPoster = slack.NewPoster(cfg.SlackBotToken, cfg.SlackChannel, slog.Default())
		slog.Info("slack poster ready", "channel", cfg.SlackChannel)
	} else {
		slog.Warn("slack not configured, summaries will not be posted")
	}

	// Optional dependencies go in as untyped nils so the nil checks hold.
	var genStore processor.GenerationStore
	var apiStore api.GenerationStore
	if db != nil {
		genStore, apiStore = db, db
	}
	var poster processor.SummaryPoster
	if slackPoster != nil {
		poster = slackPoster
	}

	proc := processor.New(ext, genStore, hermesClient, poster, slog.Default())

	if err := hermesClient.Subscribe(hermes.SubjectGenerateRequested, proc.HandleGenerateRequested); err != nil {
		slog.Error("failed to subscribe to generate requests", "error", err)
		os.Exit(1)
	}
	if slackPoster != nil {
		if err := hermesClient.Subscribe(hermes.SubjectSlackReaction, proc.HandleReaction); err != nil {
			slog.Error("failed to subscribe to slack reactions", "error", err)
			os.Exit(1)
		}
	}

	// HTTP API
	srv := api.NewServer(cfg.Port, cfg.APIToken, cfg.CORSOrigins, ext, apiStore, slog.Default())
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	mode := "parse-only"
	if ext.HasLLM() {
		mode = "generate"
	}
	if err := hermesClient.PublishRegistered(hermes.Registered{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Port:      cfg.Port,
		Mode:      mode,
		Templates: catalog.Len(),
	}); err != nil {
		slog.Warn("failed to publish registration", "error", err)
	}

	slog.Info("onesheet ready", "port", cfg.Port, "mode", mode)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	cancel()
	slog.Info("onesheet stopped")
}

// newLLM returns nil when the selected provider has no API key.
func newLLM(cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "anthropic", "":
		if cfg.AnthropicAPIKey == "" {
			return nil, nil
		}
		return anthropic.NewClient(cfg.AnthropicAPIKey, cfg.Model), nil
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, nil
		}
		c, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.Model, cfg.OpenAIBaseURL)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.LLMProvider)
	}
}

func setupLogging(level, format string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	var handler slog.Handler
	if format == "text" {
		handler = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			TimeFormat:      time.Kitchen,
			Level:           log.Level(lvl),
		})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	}
	slog.SetDefault(slog.New(handler))
}
