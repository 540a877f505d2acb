package flash

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// CookieName is the session cookie that keys pending toasts.
const CookieName = "boibazaar_sid"

const cookieMaxAge = 30 * 24 * time.Hour

// SessionID returns the browser's session ID, issuing a new cookie when the
// request has none or carries a malformed one.
func (s *Store) SessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// Add queues a toast for the requesting browser. Failures are logged; a lost
// toast never fails the request.
func (s *Store) Add(w http.ResponseWriter, r *http.Request, t Toast) {
	sid := s.SessionID(w, r)
	if err := s.Push(r.Context(), sid, t); err != nil {
		s.logger.Warn("failed to queue toast", "error", err, "title", t.Title)
	}
}

// Take returns and clears the requesting browser's pending toasts.
func (s *Store) Take(w http.ResponseWriter, r *http.Request) []Toast {
	sid := s.SessionID(w, r)
	toasts, err := s.Pop(r.Context(), sid)
	if err != nil {
		s.logger.Warn("failed to read toasts", "error", err)
		return nil
	}
	return toasts
}
