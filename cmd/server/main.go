package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mlevasseur/reportforge/internal/anonymizer"
	"github.com/mlevasseur/reportforge/internal/api"
	"github.com/mlevasseur/reportforge/internal/chunker"
	"github.com/mlevasseur/reportforge/internal/config"
	"github.com/mlevasseur/reportforge/internal/contextindex"
	"github.com/mlevasseur/reportforge/internal/pipeline"
	"github.com/mlevasseur/reportforge/internal/report"
	"github.com/mlevasseur/reportforge/internal/reportstore"
	"github.com/mlevasseur/reportforge/internal/storage"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := report.NewStore(nil)
	local := storage.NewLocal(cfg.DataDir)

	// Resume the saved report, if any.
	if blob, err := local.Load(); err != nil {
		log.Error("failed to load saved report", "error", err)
		os.Exit(1)
	} else if blob != nil {
		store.Replace(blob.Report)
		log.Info("resumed saved report", "report_id", blob.Report.ID)
	}

	// Persist every accepted mutation.
	store.Subscribe(func(r *report.Report) {
		if err := local.Save(&report.Blob{Version: report.BlobVersion, Report: r}); err != nil {
			log.Error("failed to persist report", "error", err)
		}
	})

	var archive *reportstore.Client
	if cfg.ArchiveURL != "" {
		archive = reportstore.NewClient(cfg.ArchiveURL, cfg.ArchiveAPIKey)
	}

	anon := anonymizer.New()
	index := contextindex.New()

	orch := pipeline.NewOrchestrator(pipeline.Options{
		WorkerCount:  cfg.WorkerCount,
		MaxQueueSize: cfg.MaxQueueSize,
		JobTTL:       cfg.JobTTL,
		ChunkConfig: chunker.Config{
			ChunkSize:    cfg.DefaultChunkSize,
			ChunkOverlap: cfg.DefaultChunkOverlap,
			MinChunk:     100,
		},
	}, anon, index, log)
	orch.Start(ctx)

	srv := api.NewServer(store, local, archive, orch, anon, index, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		if archive != nil {
			archive.Close()
		}
	}()

	log.Info("starting reportforge", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
