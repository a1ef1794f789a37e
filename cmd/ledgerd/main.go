package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/thanhnp/chain-dns-dashboard/internal/api"
	"github.com/thanhnp/chain-dns-dashboard/internal/config"
	"github.com/thanhnp/chain-dns-dashboard/internal/ledger"
	"github.com/thanhnp/chain-dns-dashboard/internal/storage"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	port := flag.Int("port", 0, "Listen port, overrides server.port")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	logger := config.NewLogger(os.Stdout, cfg.Log.Level)
	logger.Infoln("Starting development ledger...")

	logger.Infof("Opening Pebble database at %s", cfg.Pebble.Path)
	db, err := storage.NewPebbleDB(cfg.Pebble.Path)
	if err != nil {
		logger.Fatalf("Failed to open Pebble database: %v", err)
	}
	stores := storage.NewLedgerStores(db)

	l, err := ledger.New(stores, logger)
	if err != nil {
		logger.Fatalf("Failed to open ledger: %v", err)
	}

	router := api.NewLedgerRouter(l, ledger.APIVersion, logger)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router.Engine(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start HTTP server in goroutine
	go func() {
		logger.Infof("HTTP server listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Infoln("Shutting down...")

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("HTTP server shutdown error: %v", err)
	}

	if err := stores.Close(); err != nil {
		logger.Errorf("Error closing ledger database: %v", err)
	}

	logger.Infoln("Server stopped")
}
