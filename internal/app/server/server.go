package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wosamar/rakuten-tools/internal/api"
	"github.com/wosamar/rakuten-tools/internal/config"
	"github.com/wosamar/rakuten-tools/internal/engine"
	"github.com/wosamar/rakuten-tools/internal/listener"
	"github.com/wosamar/rakuten-tools/internal/rms"
	"github.com/wosamar/rakuten-tools/internal/storage"
)

func Run(cfg config.Config) {
	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Storage
	store, err := storage.New(rootCtx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("init storage")
	}
	defer store.Close()

	// Catalog snapshot
	catalog := storage.NewCatalog()
	if err := catalog.Refresh(rootCtx, store); err != nil {
		log.Fatal().Err(err).Msg("initial catalog load")
	}

	// Marketplace client
	client := rms.NewClient(cfg.RMS.BaseURL, cfg.RMS.ServiceSecret, cfg.RMS.LicenseKey, cfg.RMS.RetryMax)

	// HTTP
	flow := engine.Flow{MaxTitleWidth: cfg.Campaign.MaxTitleWidth}
	h := api.NewCampaignHandler(catalog, flow, client)
	r := api.Router(h)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Listener (LISTEN/NOTIFY)
	go listener.ListenAndRefresh(rootCtx, store, catalog, cfg.Listener.Channel, cfg.Backoff())

	// Server goroutine
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("http server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server crashed")
		}
	}()

	// Wait for signal
	waitForSignal()
	log.Info().Msg("shutdown...")

	// Graceful shutdown
	shCtx, shCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shCancel()
	cancel() // stop background goroutines
	_ = srv.Shutdown(shCtx)
}

func waitForSignal() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
}
