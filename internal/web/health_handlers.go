package web

import (
	"context"
	"net/http"
	"time"

	domainerrors "github.com/boibazaar/boibazaar/internal/errors"
	"github.com/boibazaar/boibazaar/internal/http/response"
)

const readyTimeout = 3 * time.Second

// handleHealthz reports that the process is serving.
// GET /healthz
func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{"status": "ok"}, s.logger)
}

// handleReadyz reports whether the library API answers.
// GET /readyz
func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := s.library.Ping(ctx); err != nil {
		s.logger.Warn("library API not ready", "error", err)
		response.Error(w, domainerrors.Unavailable("library API unreachable"), s.logger)
		return
	}
	response.Success(w, map[string]string{"status": "ready"}, s.logger)
}
