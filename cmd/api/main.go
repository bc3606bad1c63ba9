package main

import (
	"context"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/apex/log"
	jsonhandler "github.com/apex/log/handlers/json"
	"github.com/apex/log/handlers/text"
	"github.com/cockroachdb/errors"

	"go-meddevice-intelligence-ui/internal/config"
	"go-meddevice-intelligence-ui/internal/connectors/prediction"
	httpapi "go-meddevice-intelligence-ui/internal/http"
)

var version = "dev"

func main() {
	cfg := config.FromEnv()
	setupLogging(cfg)

	client := prediction.NewClient(cfg)
	srv := httpapi.NewServer(cfg, client)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	drained := make(chan struct{})
	go func() {
		defer close(drained)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("graceful shutdown failed")
		}
	}()

	log.WithFields(log.Fields{
		"version":  version,
		"addr":     cfg.ListenAddr,
		"mode":     client.Mode(),
		"base_url": cfg.API.BaseURL,
	}).Info("starting API server")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		log.WithError(err).Fatal("server stopped")
	}
	<-drained
	log.Info("server stopped")
}

func setupLogging(cfg config.Config) {
	if cfg.LogFormat == "json" {
		log.SetHandler(jsonhandler.New(os.Stderr))
	} else {
		log.SetHandler(text.New(os.Stderr))
	}
	if cfg.Features.EnableDebugMode {
		log.SetLevel(log.DebugLevel)
	}
}
