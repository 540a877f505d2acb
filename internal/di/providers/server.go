package providers

import (
	"context"
	"errors"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/boibazaar/boibazaar/internal/api"
	"github.com/boibazaar/boibazaar/internal/config"
	"github.com/boibazaar/boibazaar/internal/logger"
	"github.com/boibazaar/boibazaar/internal/service"
	"github.com/boibazaar/boibazaar/internal/validation"
	"github.com/boibazaar/boibazaar/internal/web"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideLibraryServer provides the library API's HTTP server.
func ProvideLibraryServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	limiterHandle := do.MustInvoke[*RateLimiterHandle](i)

	handler := api.NewServer(api.Options{
		Books:       do.MustInvoke[*service.BookService](i),
		Borrows:     do.MustInvoke[*service.BorrowService](i),
		Database:    storeHandle.Store,
		Search:      indexHandle.Index,
		Limiter:     limiterHandle.KeyedRateLimiter,
		CORSOrigins: cfg.Library.CORSOrigins,
		Logger:      log.Logger,
	})

	return startServer(cfg, log, cfg.Library.Port, handler), nil
}

// ProvideWebServer provides the front end's HTTP server.
func ProvideWebServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	clientHandle := do.MustInvoke[*LibraryClientHandle](i)
	flashHandle := do.MustInvoke[*FlashStoreHandle](i)

	handler := web.NewServer(web.Options{
		Library:      clientHandle.Client,
		Flash:        flashHandle.Store,
		Renderer:     do.MustInvoke[*web.Renderer](i),
		Validator:    do.MustInvoke[*validation.Validator](i),
		BooksPerPage: cfg.Web.BooksPerPage,
		HomeBooks:    cfg.Web.HomeBooks,
		Location:     cfg.App.Location,
		Logger:       log.Logger,
	})

	return startServer(cfg, log, cfg.Web.Port, handler), nil
}

func startServer(cfg *config.Config, log *logger.Logger, port string, handler http.Handler) *HTTPServerHandle {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv}
}
