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

	"github.com/bigendian/newswire/app/api"
	"github.com/bigendian/newswire/app/cfg"
	"github.com/bigendian/newswire/app/config"
	"github.com/bigendian/newswire/app/feed"
	"github.com/bigendian/newswire/app/images"
	"github.com/bigendian/newswire/app/pipeline"
	"github.com/bigendian/newswire/app/store"
	"github.com/bigendian/newswire/app/tasks"
)

func main() {
	c, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if c == nil {
		// Help was shown, exit gracefully
		return
	}

	setupLogging(c.Debug)

	slog.Info("Starting newswire", "version", c.Version)

	cacheDir, err := cfg.ResolveCacheDir(c.CacheDir)
	if err != nil {
		slog.Error("Failed to resolve cache directory", "error", err)
		os.Exit(1)
	}
	slog.Info("Cache directory ready", "path", cacheDir)

	sources, err := config.NewLoader(c.SourcesFile).Load()
	if err != nil {
		slog.Error("Failed to load sources", "error", err)
		os.Exit(1)
	}

	httpClient := &http.Client{
		Timeout: time.Duration(c.FetchTimeout) * time.Second,
	}

	// Core components
	parser := feed.NewParser(cacheDir)
	fetcher := feed.NewFetcher(httpClient, parser, c.UserAgent, c.WorkerCount)
	imageCache := images.NewCache(cacheDir, httpClient, c.UserAgent, c.WorkerCount)
	itemStore := store.New(cacheDir)
	p := pipeline.New(cacheDir, sources, fetcher, imageCache, itemStore)

	// Background scheduler
	scheduler := tasks.NewScheduler(p, time.Duration(c.RefreshInterval)*time.Second)
	scheduler.Start()
	defer scheduler.Stop()

	// HTTP server
	handler := api.NewHandler(itemStore, scheduler, sources)
	server := api.NewServer(handler)

	httpServer := &http.Server{
		Addr:         ":" + c.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", c.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	// Scheduler is stopped via defer
	slog.Info("Shutdown complete")
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}
