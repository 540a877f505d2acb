package providers

import (
	"github.com/samber/do/v2"

	"github.com/boibazaar/boibazaar/internal/config"
	"github.com/boibazaar/boibazaar/internal/flash"
	"github.com/boibazaar/boibazaar/internal/libraryclient"
	"github.com/boibazaar/boibazaar/internal/logger"
)

// FlashStoreHandle wraps the toast store with shutdown capability.
type FlashStoreHandle struct {
	*flash.Store
}

// Shutdown implements do.Shutdownable.
func (h *FlashStoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideFlashStore provides the in-memory Badger toast store.
func ProvideFlashStore(i do.Injector) (*FlashStoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	st, err := flash.Open(flash.Options{
		TTL:          cfg.Web.FlashTTL,
		CookieSecure: cfg.Web.CookieSecure,
		Logger:       log.Logger,
	})
	if err != nil {
		return nil, err
	}

	log.Info("Flash store initialized", "ttl", cfg.Web.FlashTTL)

	return &FlashStoreHandle{Store: st}, nil
}

// LibraryClientHandle wraps the library API client with shutdown capability.
type LibraryClientHandle struct {
	*libraryclient.Client
}

// Shutdown implements do.Shutdownable.
func (h *LibraryClientHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideLibraryClient provides the client for the remote library API.
func ProvideLibraryClient(i do.Injector) (*LibraryClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client, err := libraryclient.New(libraryclient.Options{
		BaseURL: cfg.Web.LibraryAPIURL,
		Timeout: cfg.Web.LibraryAPITimeout,
		RPS:     cfg.Web.LibraryAPIRPS,
		Burst:   cfg.Web.LibraryAPIBurst,
		Logger:  log.Logger,
	})
	if err != nil {
		return nil, err
	}

	log.Info("Library API client ready", "url", cfg.Web.LibraryAPIURL)

	return &LibraryClientHandle{Client: client}, nil
}
