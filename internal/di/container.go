// Package di provides dependency injection configuration for the BoiBazaar binaries.
package di

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/boibazaar/boibazaar/internal/config"
	"github.com/boibazaar/boibazaar/internal/di/providers"
	"github.com/boibazaar/boibazaar/internal/logger"
	"github.com/boibazaar/boibazaar/internal/service"
	"github.com/boibazaar/boibazaar/internal/validation"
	"github.com/boibazaar/boibazaar/internal/web"
)

func newContainer(service string) *do.RootScope {
	injector := do.New()

	do.ProvideNamedValue(injector, providers.ServiceName, service)
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideValidator)

	return injector
}

// NewWebContainer creates the container for the web front end.
func NewWebContainer() *do.RootScope {
	injector := newContainer("web")

	// Remote library and session state
	do.Provide(injector, providers.ProvideLibraryClient)
	do.Provide(injector, providers.ProvideFlashStore)

	// Pages
	do.Provide(injector, providers.ProvideRenderer)
	do.Provide(injector, providers.ProvideTemplateWatcher)

	// Server
	do.Provide(injector, providers.ProvideWebServer)

	return injector
}

// NewLibraryContainer creates the container for the library API.
func NewLibraryContainer() *do.RootScope {
	injector := newContainer("libraryd")

	// Storage and search
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideSearchIndex)

	// Business services
	do.Provide(injector, providers.ProvideBookService)
	do.Provide(injector, providers.ProvideBorrowService)

	// Server
	do.Provide(injector, providers.ProvideRateLimiter)
	do.Provide(injector, providers.ProvideLibraryServer)

	return injector
}

// BootstrapWeb initializes the front end's services and starts its server.
func BootstrapWeb(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*validation.Validator](injector)

	if _, err := do.Invoke[*providers.LibraryClientHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.FlashStoreHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*web.Renderer](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*providers.TemplateWatcherHandle](injector)

	_, err := do.Invoke[*providers.HTTPServerHandle](injector)
	return err
}

// BootstrapLibrary initializes the library API, rebuilds the search index
// from the store and starts the server.
func BootstrapLibrary(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*logger.Logger](injector)

	if _, err := do.Invoke[*providers.StoreHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.SearchIndexHandle](injector); err != nil {
		return err
	}
	if err := providers.RebuildSearchIndex(context.Background(), injector); err != nil {
		return err
	}

	_ = do.MustInvoke[*service.BookService](injector)
	_ = do.MustInvoke[*service.BorrowService](injector)
	_ = do.MustInvoke[*providers.RateLimiterHandle](injector)

	_, err := do.Invoke[*providers.HTTPServerHandle](injector)
	return err
}
