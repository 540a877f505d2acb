package web

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/boibazaar/boibazaar/internal/color"
	"github.com/boibazaar/boibazaar/internal/domain"
	"github.com/boibazaar/boibazaar/internal/watcher"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

//go:embed static
var embeddedStatic embed.FS

// Templates shared by every page. All other *.html files are pages.
var sharedTemplates = []string{"layout.html", "partials.html"}

// Renderer holds one parsed template set per page.
type Renderer struct {
	fsys   fs.FS
	logger *slog.Logger

	mu    sync.RWMutex
	pages map[string]*template.Template
}

// EmbeddedTemplates returns the templates compiled into the binary.
func EmbeddedTemplates() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// StaticFiles returns the stylesheet and other assets compiled into the binary.
func StaticFiles() fs.FS {
	sub, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// NewRenderer parses every page in fsys.
func NewRenderer(fsys fs.FS, logger *slog.Logger) (*Renderer, error) {
	r := &Renderer{fsys: fsys, logger: logger}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload re-parses the templates. On failure the previous set stays in use.
func (r *Renderer) Reload() error {
	names, err := fs.Glob(r.fsys, "*.html")
	if err != nil {
		return fmt.Errorf("list templates: %w", err)
	}

	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		if isShared(name) {
			continue
		}
		files := append(append([]string{}, sharedTemplates...), name)
		t, err := template.New(name).Funcs(templateFuncs).ParseFS(r.fsys, files...)
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		pages[strings.TrimSuffix(name, ".html")] = t
	}

	r.mu.Lock()
	r.pages = pages
	r.mu.Unlock()
	return nil
}

func isShared(name string) bool {
	for _, s := range sharedTemplates {
		if s == name {
			return true
		}
	}
	return false
}

// Render executes page into a buffer and writes it with status.
// Nothing is written when execution fails.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data any) error {
	r.mu.RLock()
	t, ok := r.pages[page]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("execute %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Watch reloads the templates whenever an .html file under dir settles.
// It blocks until ctx is cancelled.
func (r *Renderer) Watch(ctx context.Context, dir string) error {
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("templates dir: %w", err)
	}

	w, err := watcher.New(r.logger, watcher.Options{
		Patterns:    []string{"*.html"},
		SettleDelay: 150 * time.Millisecond,
	})
	if err != nil {
		return err
	}
	defer w.Stop() //nolint:errcheck // best effort on shutdown

	if err := w.Watch(dir); err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.Events():
				if !ok {
					return
				}
				if err := r.Reload(); err != nil {
					r.logger.Error("template reload failed", "file", filepath.Base(event.Path), "error", err)
					continue
				}
				r.logger.Info("templates reloaded", "file", filepath.Base(event.Path), "event", event.Type.String())
			case err, ok := <-w.Errors():
				if !ok {
					return
				}
				r.logger.Warn("template watcher error", "error", err)
			}
		}
	}()

	r.logger.Info("watching templates", "dir", dir)
	if err := w.Start(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

var templateFuncs = template.FuncMap{
	"genres": domain.Genres,
	"cover":  color.ForBook,
	"add": func(a, b int) int {
		return a + b
	},
	"date": func(t time.Time) string {
		return domain.DayOf(t).Format("1/2/2006")
	},
	"inputDate": func(t time.Time) string {
		return t.Format(domain.DateLayout)
	},
	"lower": strings.ToLower,
	"dict":  dict,
	"initial": func(s string) string {
		for _, r := range s {
			return strings.ToUpper(string(r))
		}
		return "?"
	},
}

// dict builds a map from alternating keys and values for passing several
// values to a shared template.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}
