// Package main seeds a running library API with a starter catalog.
//
// Books are created through the public API, so the same rules apply as for
// the web front end. Books whose ISBN already exists are skipped.
//
// Usage:
//
//	LIBRARY_API_URL=http://localhost:5000 go run ./cmd/seed
//	go run ./cmd/seed --borrows 5   # Also lend a few random books
package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/boibazaar/boibazaar/internal/domain"
	"github.com/boibazaar/boibazaar/internal/libraryclient"
)

//go:embed catalog.json
var catalogJSON []byte

var (
	apiURL  = flag.String("api-url", "", "Library API base URL (default: $LIBRARY_API_URL or http://localhost:5000)")
	borrows = flag.Int("borrows", 0, "Number of random borrows to create after seeding")
)

func main() {
	flag.Parse()

	baseURL := *apiURL
	if baseURL == "" {
		baseURL = os.Getenv("LIBRARY_API_URL")
	}
	if baseURL == "" {
		baseURL = "http://localhost:5000"
	}

	var books []domain.BookInput
	if err := json.Unmarshal(catalogJSON, &books); err != nil {
		log.Fatalf("Failed to parse catalog: %v", err)
	}

	client, err := libraryclient.New(libraryclient.Options{BaseURL: baseURL, RPS: 20, Burst: 20})
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := client.Ping(ctx); err != nil {
		log.Fatalf("Library API at %s is not reachable: %v", baseURL, err)
	}

	fmt.Printf("Seeding %d books into %s\n", len(books), baseURL)

	var created, skipped int
	for _, in := range books {
		in.Available = domain.AvailableFor(in.Copies)

		book, err := client.CreateBook(ctx, in)
		switch {
		case libraryclient.IsDuplicateKey(err):
			skipped++
			fmt.Printf("  - %s (already in catalog)\n", in.Title)
		case err != nil:
			log.Fatalf("Failed to create %q: %v", in.Title, err)
		default:
			created++
			fmt.Printf("  + %s [%s]\n", book.Title, book.ID)
		}
	}

	fmt.Printf("\nCreated %d books, skipped %d\n", created, skipped)

	if *borrows > 0 {
		seedBorrows(ctx, client, *borrows)
	}
}

// seedBorrows lends one or two copies of random available books, due within
// the next three weeks.
func seedBorrows(ctx context.Context, client *libraryclient.Client, n int) {
	all, err := client.ListBooks(ctx, libraryclient.ListParams{})
	if err != nil {
		log.Fatalf("Failed to list books: %v", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	today := domain.DayOf(time.Now())

	fmt.Printf("\nCreating %d borrows\n", n)
	for range n {
		var available []domain.Book
		for _, b := range all {
			if b.Available {
				available = append(available, b)
			}
		}
		if len(available) == 0 {
			fmt.Println("No copies left to lend")
			return
		}

		book := available[rng.Intn(len(available))]
		quantity := min(1+rng.Intn(2), book.Copies)
		due := today.AddDate(0, 0, 1+rng.Intn(21))

		if _, err := client.BorrowBook(ctx, domain.BorrowInput{BookID: book.ID, Quantity: quantity, DueDate: due}); err != nil {
			log.Printf("Failed to borrow %q: %v", book.Title, err)
			continue
		}
		fmt.Printf("  %d x %s, due %s\n", quantity, book.Title, due.Format(domain.DateLayout))

		for i := range all {
			if all[i].ID == book.ID {
				all[i].Lend(quantity)
			}
		}
	}
}
