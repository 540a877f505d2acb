package providers

import "time"

const (
	// shutdownTimeout is the maximum time to wait for graceful shutdown of services.
	shutdownTimeout = 30 * time.Second

	// ServiceName is the named value holding the binary's name ("web", "libraryd").
	ServiceName = "service.name"
)
