package providers

import (
	"context"
	"os"

	"github.com/samber/do/v2"

	"github.com/boibazaar/boibazaar/internal/config"
	"github.com/boibazaar/boibazaar/internal/logger"
	"github.com/boibazaar/boibazaar/internal/ratelimit"
	"github.com/boibazaar/boibazaar/internal/web"
)

// ProvideRenderer provides the page renderer, reading templates from disk
// when a templates directory is configured.
func ProvideRenderer(i do.Injector) (*web.Renderer, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	fsys := web.EmbeddedTemplates()
	if cfg.Web.TemplatesDir != "" {
		fsys = os.DirFS(cfg.Web.TemplatesDir)
		log.Info("Serving templates from disk", "dir", cfg.Web.TemplatesDir)
	}

	return web.NewRenderer(fsys, log.Logger)
}

// TemplateWatcherHandle reloads templates from disk while the web server runs.
type TemplateWatcherHandle struct {
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *TemplateWatcherHandle) Shutdown() error {
	h.cancel()
	return nil
}

// ProvideTemplateWatcher provides the template hot reloader.
// Without a templates directory it does nothing.
func ProvideTemplateWatcher(i do.Injector) (*TemplateWatcherHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	renderer := do.MustInvoke[*web.Renderer](i)

	ctx, cancel := context.WithCancel(context.Background())
	if cfg.Web.TemplatesDir == "" {
		return &TemplateWatcherHandle{cancel: cancel}, nil
	}

	go func() {
		if err := renderer.Watch(ctx, cfg.Web.TemplatesDir); err != nil {
			log.Error("Template watcher error", "error", err)
		}
	}()

	return &TemplateWatcherHandle{cancel: cancel}, nil
}

// RateLimiterHandle wraps the inbound per-IP limiter with shutdown capability.
type RateLimiterHandle struct {
	*ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdownable.
func (h *RateLimiterHandle) Shutdown() error {
	h.Stop()
	return nil
}

// ProvideRateLimiter provides the library API's per-IP limiter.
func ProvideRateLimiter(i do.Injector) (*RateLimiterHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)

	return &RateLimiterHandle{
		KeyedRateLimiter: ratelimit.New(cfg.Library.RateLimitRPS, cfg.Library.RateLimitBurst),
	}, nil
}
