package web

import (
	"net/http"

	"github.com/boibazaar/boibazaar/internal/flash"
	"github.com/boibazaar/boibazaar/internal/libraryclient"
)

// Navigation keys, one per navbar link.
const (
	navHome    = "home"
	navBooks   = "books"
	navAdd     = "add"
	navSummary = "summary"
)

// layout is the part of every page the layout template reads.
type layout struct {
	Title  string
	Nav    string
	Toasts []flash.Toast
}

func (l *layout) base() *layout { return l }

// page is implemented by every view through its embedded layout.
type page interface {
	base() *layout
}

// errorView is the error page.
type errorView struct {
	layout
	Code    int
	Heading string
	Message string
}

// render draws a page, attaching the browser's pending toasts plus any extra
// ones. A template failure is logged and answered with a plain 500.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, view page, extra ...flash.Toast) {
	l := view.base()
	l.Toasts = append(s.flash.Take(w, r), extra...)

	if err := s.renderer.Render(w, status, name, view); err != nil {
		s.logger.Error("failed to render page", "page", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// redirect queues t and sends the browser to target.
func (s *Server) redirect(w http.ResponseWriter, r *http.Request, target string, t flash.Toast) {
	s.flash.Add(w, r, t)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusNotFound, "error", &errorView{
		layout:  layout{Title: "Page not found"},
		Code:    http.StatusNotFound,
		Heading: "Lost in Space",
		Message: "The page you are looking for has drifted into the cosmic void.",
	})
}

// fail renders the error page for a failed read. A missing book is a 404;
// anything else means the library could not answer.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if libraryclient.IsNotFound(err) {
		s.render(w, r, http.StatusNotFound, "error", &errorView{
			layout:  layout{Title: "Book not found"},
			Code:    http.StatusNotFound,
			Heading: "Book not found",
			Message: "This book is not in our collection. It may have been deleted.",
		})
		return
	}

	s.logger.Error("library request failed", "path", r.URL.Path, "error", err)
	s.render(w, r, http.StatusBadGateway, "error", &errorView{
		layout:  layout{Title: "Something went wrong"},
		Code:    http.StatusBadGateway,
		Heading: "Something went wrong",
		Message: "The library is not answering right now. Please try again in a moment.",
	})
}
