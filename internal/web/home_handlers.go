package web

import (
	"net/http"
	"strconv"

	"github.com/boibazaar/boibazaar/internal/catalog"
	"github.com/boibazaar/boibazaar/internal/domain"
	"github.com/boibazaar/boibazaar/internal/libraryclient"
)

type testimonial struct {
	Name    string
	Role    string
	Message string
}

var testimonials = []testimonial{
	{
		Name:    "David Latham",
		Role:    "School Librarian",
		Message: "BoiBazaar has revolutionized our library operations. Its intuitive interface and robust features make book tracking and borrowing effortless, saving us countless hours.",
	},
	{
		Name:    "Jenifer Lee",
		Role:    "Bookstore Manager",
		Message: "This platform is a game-changer for managing our book inventory. Its reliability and ease of use have significantly improved our customer experience.",
	},
	{
		Name:    "Ayesha Khan",
		Role:    "Senior Librarian",
		Message: "With over 15 years in library management, I can say BoiBazaar is unmatched. Its simplicity and powerful tools make managing our collection a joy.",
	},
	{
		Name:    "Michael Owen",
		Role:    "University Professor",
		Message: "BoiBazaar's analytics have optimized our book acquisitions, boosting student engagement by 30%. It's an essential tool for any educational institution.",
	},
}

// shelf is one book grid on the home page with its own "Load More" window.
type shelf struct {
	ID     string
	Title  string
	Books  []domain.Book
	Window catalog.Window
	// MoreURL requests the next window of this shelf, keeping the other as is.
	MoreURL string
}

type homeView struct {
	layout
	Shelves      []shelf
	Testimonials []testimonial
}

// handleHome renders the landing page.
// GET /?show=N&picked=N
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	books, err := s.library.ListBooks(r.Context(), libraryclient.ListParams{})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	discover := catalog.NewWindow(len(books), queryInt(r, "show"), s.homeBooks)
	picked := catalog.NewWindow(len(books), queryInt(r, "picked"), s.homeBooks)

	s.render(w, r, http.StatusOK, "home", &homeView{
		layout: layout{Title: "Home", Nav: navHome},
		Shelves: []shelf{
			{
				ID:      "discover",
				Title:   "Discover Your Next Book",
				Books:   catalog.Take(books, discover),
				Window:  discover,
				MoreURL: homeURL(discover.NextShow(), picked.Shown, "discover"),
			},
			{
				ID:      "picked",
				Title:   "Picked by Readers",
				Books:   catalog.Take(books, picked),
				Window:  picked,
				MoreURL: homeURL(discover.Shown, picked.NextShow(), "picked"),
			},
		},
		Testimonials: testimonials,
	})
}

func homeURL(show, picked int, anchor string) string {
	return "/?show=" + strconv.Itoa(show) + "&picked=" + strconv.Itoa(picked) + "#" + anchor
}

// queryInt reads a whole number from the query string; anything else is 0.
func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return n
}
