package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/use-agent/unslop/api"
	"github.com/use-agent/unslop/api/handler"
	"github.com/use-agent/unslop/cache"
	"github.com/use-agent/unslop/config"
	"github.com/use-agent/unslop/fetch"
	"github.com/use-agent/unslop/history"
	"github.com/use-agent/unslop/ingest"
	"github.com/use-agent/unslop/lexicon"
	"github.com/use-agent/unslop/llm"
	"github.com/use-agent/unslop/pipeline"
	"github.com/use-agent/unslop/webhook"
)

func main() {
	// ── 1. Load configuration ───────────────────────────────────────
	cfg := config.Load()

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)
	slog.Info("unslop starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"llmModel", cfg.LLM.Model,
	)

	// ── 3. Lexicon and engine ───────────────────────────────────────
	lex, err := lexicon.Load(cfg.Lexicon.Path)
	if err != nil {
		slog.Error("failed to load lexicon", "path", cfg.Lexicon.Path, "error", err)
		os.Exit(1)
	}
	stats := lex.Stats()
	slog.Info("lexicon loaded",
		"path", cfg.Lexicon.Path,
		"cliches", stats.Cliches,
		"buzzwords", stats.Buzzwords,
	)
	eng := pipeline.New(lex)

	// ── 4. Ingestion (URL fetcher + extractor) ──────────────────────
	fetcher := fetch.New(fetch.Options{
		Timeout:      cfg.Fetch.Timeout,
		MaxBodyBytes: cfg.Fetch.MaxBodyBytes,
	})
	ex := ingest.New(fetcher, cfg.Server.MaxTextBytes)

	// ── 5. LLM client with completion cache ─────────────────────────
	cc := cache.New(cfg.Cache.MaxEntries, cfg.Cache.TTL)
	defer cc.Close()
	llmClient := llm.NewClient(llm.Options{
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
		BaseURL: cfg.LLM.BaseURL,
	}, &http.Client{Timeout: cfg.LLM.Timeout}, cc)
	if !llmClient.Configured() {
		slog.Warn("LLM API key not set; /humanize, /critique and batches are disabled")
	}

	// ── 6. Run history ──────────────────────────────────────────────
	hist, err := history.Open(context.Background(), cfg.History.DSN, cfg.History.MemoryCapacity)
	if err != nil {
		slog.Error("failed to open history store", "error", err)
		os.Exit(1)
	}
	defer hist.Close()
	slog.Info("history store ready", "backend", hist.Backend())

	// ── 7. Setup router ─────────────────────────────────────────────
	batches := handler.NewBatches(eng, ex, llmClient, hist, webhook.NewSender(nil, nil), cfg.Batch)
	router := api.NewHandler(cfg, api.Deps{
		Engine:    eng,
		Extractor: ex,
		LLM:       llmClient,
		History:   hist,
		Batches:   batches,
		StartTime: time.Now(),
	})

	// ── 8. Start HTTP server ────────────────────────────────────────
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// ── 9. Graceful shutdown ────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	// Give in-flight requests 5 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}

	// Running batches are cancelled before the history store closes.
	batches.Close()
	slog.Info("unslop stopped")
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
