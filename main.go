package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/crmchattie/gong-mcp/pkg/config"
	"github.com/crmchattie/gong-mcp/pkg/server"
)

func main() {
	// Optional .env for local development; env vars win either way.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn("could not load .env file", "err", err)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", "err", err)
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal("invalid log level", "log_level", cfg.LogLevel, "err", err)
	}
	log.SetLevel(level)

	httpServer := &http.Server{
		Addr:         cfg.Server.ListenAddr,
		Handler:      server.New(cfg),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("starting Gong MCP server",
			"listen_addr", cfg.Server.ListenAddr,
			"gong_base_url", cfg.Gong.BaseURL,
			"default_credentials", cfg.HasDefaultCredentials(),
		)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server exited unexpectedly", "err", err)
		}
	}()

	waitForShutdown(httpServer, cfg)
}

func waitForShutdown(srv *http.Server, cfg *config.Config) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop

	log.Info("shutting down Gong MCP server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed; forcing close", "err", err)
		if closeErr := srv.Close(); closeErr != nil {
			log.Error("forced close failed", "err", closeErr)
		}
	}

	log.Info("server stopped")
}
