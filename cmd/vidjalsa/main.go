package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vidjalsa/vidjalsa/internal/api"
	"github.com/vidjalsa/vidjalsa/internal/blog"
	"github.com/vidjalsa/vidjalsa/internal/config"
	"github.com/vidjalsa/vidjalsa/internal/db"
	"github.com/vidjalsa/vidjalsa/internal/llm"
	"github.com/vidjalsa/vidjalsa/internal/logging"
	"github.com/vidjalsa/vidjalsa/internal/pipeline"
	"github.com/vidjalsa/vidjalsa/internal/publish"
	"github.com/vidjalsa/vidjalsa/internal/youtube"
)

// defaultUsername owns every article and deployment; there is no multi-user
// surface yet.
const defaultUsername = "vidjalsa"

func main() {
	if err := run(); err != nil {
		log.Fatalf("fatal error: %v", err)
	}
}

func run() error {
	startTime := time.Now()

	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := os.MkdirAll(cfg.DataDir(), 0755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}
	if err := os.MkdirAll(cfg.DeploymentsDir(), 0755); err != nil {
		return fmt.Errorf("failed to create deployments dir: %w", err)
	}

	logger := logging.NewLogger(cfg.LogLevel())
	logger.Info("starting vidjalsa server",
		"version", config.Version,
		"data_dir", cfg.DataDir(),
		"openai_key", logging.SanitizeKey(cfg.OpenAIAPIKey()),
	)

	database, err := db.New(cfg.DBPath(), logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	repo := blog.NewRepository(database.Conn())

	user, err := repo.EnsureUser(context.Background(), defaultUsername)
	if err != nil {
		return fmt.Errorf("failed to ensure default user: %w", err)
	}

	llmClient, err := llm.NewOpenAIClient(cfg.OpenAIAPIKey(), cfg.OpenAIBaseURL(), logger)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}

	transcripts := youtube.NewTranscriptFetcher(logging.WithComponent(logger, "transcripts"))
	previews := youtube.NewPreviewClient(cfg.YouTubeAPIKey(), logging.WithComponent(logger, "previews"))
	trends := youtube.NewTrendsClient()

	summarizer := pipeline.NewSummarizer(llmClient, cfg.SummaryModel(), logging.WithComponent(logger, "summarizer"))
	coordinator := pipeline.NewCoordinator(transcripts, summarizer, llmClient, cfg.ImageModel(),
		cfg.TaskTimeout(), logging.WithComponent(logger, "coordinator"))
	synthesizer := pipeline.NewSynthesizer(llmClient, cfg.ArticleModel(), logging.WithComponent(logger, "synthesizer"))

	publisher := publish.NewPublisher(repo, publish.NewRenderer(),
		cfg.DeploymentsDir(), cfg.BaseURL(), cfg.AuthorBase(), logging.WithComponent(logger, "publisher"))

	orchestrator := pipeline.NewOrchestrator(repo, coordinator, synthesizer, publisher,
		user.ID, logging.WithComponent(logger, "orchestrator"))

	apiServer := api.NewServer(api.ServerConfig{
		Port:           cfg.Port(),
		Processor:      orchestrator,
		Previews:       previews,
		Trends:         trends,
		Repository:     repo,
		UserID:         user.ID,
		DeploymentsDir: cfg.DeploymentsDir(),
		Logger:         logger,
		StartTime:      startTime,
	})

	go func() {
		if err := apiServer.Start(); err != nil {
			logger.Error("HTTP server error", "error", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("received shutdown signal", "signal", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown HTTP server", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}
