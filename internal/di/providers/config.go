// Package providers contains dependency injection providers for the BoiBazaar binaries.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/boibazaar/boibazaar/internal/config"
	"github.com/boibazaar/boibazaar/internal/logger"
	"github.com/boibazaar/boibazaar/internal/validation"
)

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)
	service := do.MustInvokeNamed[string](i, ServiceName)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.IsDevelopment(),
		Environment: cfg.App.Environment,
		Service:     service,
	})

	log.Info("Starting BoiBazaar",
		"service", service,
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"timezone", cfg.App.Timezone,
	)

	return log, nil
}

// ProvideValidator provides the struct validator shared by forms and services.
// Date rules read "today" in the configured time zone.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return validation.New(validation.WithLocation(cfg.App.Location)), nil
}
