// Command docforge-server runs the document generation web UI.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goliatone/go-docforge/internal/server"
	"github.com/goliatone/go-docforge/pkg/config"
	"github.com/goliatone/go-docforge/pkg/docgen"
	"github.com/goliatone/go-docforge/pkg/render"
	"github.com/goliatone/go-docforge/pkg/renderers/vanilla"
)

func main() {
	var (
		configFlag = flag.String("config", "", "Path to a YAML configuration file (defaults apply when empty)")
		addrFlag   = flag.String("addr", "", "Listen address override")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg := config.Default()
	if *configFlag != "" {
		loaded, err := config.Load(*configFlag)
		if err != nil {
			logger.Error("load config", "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *addrFlag != "" {
		cfg.ListenAddr = *addrFlag
	}

	orch, err := docgen.FromConfig(cfg, logger)
	if err != nil {
		logger.Error("build orchestrator", "error", err)
		os.Exit(1)
	}

	registry := render.NewRegistry()
	htmlRenderer, err := vanilla.New()
	if err != nil {
		logger.Error("build renderer", "error", err)
		os.Exit(1)
	}
	registry.MustRegister(htmlRenderer)

	srv, err := server.New(cfg, orch, registry, server.WithLogger(logger))
	if err != nil {
		logger.Error("build server", "error", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening", "addr", cfg.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
}
