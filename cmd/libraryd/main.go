// Package main provides the entry point for the BoiBazaar library API.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/boibazaar/boibazaar/internal/di"
	"github.com/boibazaar/boibazaar/internal/logger"
)

func main() {
	injector := di.NewLibraryContainer()

	if err := di.BootstrapLibrary(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap library API: %v\n", err)
		os.Exit(1)
	}

	log := do.MustInvoke[*logger.Logger](injector)

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down library API gracefully...")

	// Handles implement do.Shutdownable; the container stops the server
	// before the store and index it depends on.
	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
	}

	log.Info("Library closed")
}
