// Package main provides the entry point for the BoiBazaar web front end.
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
	injector := di.NewWebContainer()

	if err := di.BootstrapWeb(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap web server: %v\n", err)
		os.Exit(1)
	}

	log := do.MustInvoke[*logger.Logger](injector)

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down web server gracefully...")

	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
	}

	log.Info("Happy reading!")
}
