package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"contentforge/internal/gateway/config"
	"contentforge/internal/gateway/repository/artifact"
	"contentforge/internal/gateway/repository/contentstore"
	"contentforge/internal/gateway/server"
	"contentforge/internal/llm"
	"contentforge/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	client, err := newLLMClient(ctx, cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to init LLM client: %v", err)
	}
	client = llm.Wrap(client,
		llm.WithLogging(nil),
		llm.Retry(cfg.LLM.RetryAttempts, 300*time.Millisecond),
		llm.RateLimit(cfg.LLM.RPS, cfg.LLM.Burst),
	)
	defer client.Close()

	orch := pipeline.NewOrchestrator(llm.NewCaller(client),
		pipeline.WithCallTimeout(cfg.LLM.CallTimeout))

	contents := contentstore.NewFromEnv(cfg.DatabaseURL, "data/content.json")
	defer contents.Close()

	artifacts := newArtifactStore(cfg.Artifact)

	hub := server.NewRunHub()
	mux := server.NewMux(
		server.NewGenerateHandler(orch, contents, artifacts, hub),
		server.NewContentHandler(contents, artifacts),
		server.NewWatchHandler(hub),
	)

	srv := server.New(cfg.Port, mux)
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}

// newArtifactStore picks the S3 backend when an endpoint is configured, the
// local directory backend otherwise. Returns nil when artifact storage is
// disabled or misconfigured; the handlers treat nil as "no artifacts".
func newArtifactStore(cfg config.ArtifactConfig) artifact.Store {
	if !cfg.Enabled {
		return nil
	}
	if cfg.Endpoint != "" {
		s, err := artifact.NewS3Store(artifact.S3Config{
			Endpoint:  cfg.Endpoint,
			Region:    cfg.Region,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			Bucket:    cfg.Bucket,
			UseSSL:    cfg.UseSSL,
		})
		if err != nil {
			log.Printf("Artifact store disabled: %v", err)
			return nil
		}
		return s
	}
	s, err := artifact.NewFileStore(cfg.Dir)
	if err != nil {
		log.Printf("Artifact store disabled: %v", err)
		return nil
	}
	return s
}

func newLLMClient(ctx context.Context, cfg config.LLMConfig) (llm.LLMClient, error) {
	switch cfg.Provider {
	case "fake":
		return llm.NewFakeClient(), nil
	case "gemini":
		return llm.NewGeminiClient(ctx, cfg.APIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}
