// Package flash keeps one-shot toast messages between a POST and the page
// the browser is redirected to.
//
// Toasts live in Badger under "flash:<session id>" with a TTL, so an
// abandoned redirect does not leave messages behind.
package flash

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const (
	keyPrefix  = "flash:"
	defaultTTL = 5 * time.Minute
)

// Kind selects the toast's icon and colour.
type Kind string

// Toast kinds.
const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
)

// Toast is a message shown once on the next page view.
type Toast struct {
	Kind   Kind   `json:"kind"`
	Title  string `json:"title"`
	Text   string `json:"text"`
	Footer string `json:"footer,omitempty"`
}

// Success builds a success toast.
func Success(title, text string) Toast {
	return Toast{Kind: KindSuccess, Title: title, Text: text}
}

// Error builds an error toast.
func Error(title, text string) Toast {
	return Toast{Kind: KindError, Title: title, Text: text}
}

// Options configures a Store.
type Options struct {
	// Path is the Badger directory. Empty keeps everything in memory.
	Path         string
	TTL          time.Duration
	CookieSecure bool
	Logger       *slog.Logger
}

// Store holds pending toasts per browser session.
type Store struct {
	db           *badger.DB
	ttl          time.Duration
	cookieSecure bool
	logger       *slog.Logger
}

// Open opens the toast store.
func Open(opts Options) (*Store, error) {
	badgerOpts := badger.DefaultOptions(opts.Path)
	if opts.Path == "" {
		badgerOpts = badgerOpts.WithInMemory(true)
	}
	badgerOpts.Logger = nil

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to open flash store: %w", err)
	}

	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{db: db, ttl: ttl, cookieSecure: opts.CookieSecure, logger: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func key(sid string) []byte {
	return []byte(keyPrefix + sid)
}

// Push queues t for the session. Toasts queued before the next Pop are all kept.
func (s *Store) Push(_ context.Context, sid string, t Toast) error {
	if sid == "" {
		return errors.New("flash: empty session id")
	}

	return s.db.Update(func(txn *badger.Txn) error {
		toasts, err := read(txn, sid)
		if err != nil {
			return err
		}
		toasts = append(toasts, t)

		data, err := json.Marshal(toasts)
		if err != nil {
			return fmt.Errorf("marshal toasts: %w", err)
		}
		return txn.SetEntry(badger.NewEntry(key(sid), data).WithTTL(s.ttl))
	})
}

// Pop returns and removes every toast queued for the session.
func (s *Store) Pop(_ context.Context, sid string) ([]Toast, error) {
	if sid == "" {
		return nil, nil
	}

	var toasts []Toast
	err := s.db.Update(func(txn *badger.Txn) error {
		var err error
		toasts, err = read(txn, sid)
		if err != nil || len(toasts) == 0 {
			return err
		}
		return txn.Delete(key(sid))
	})
	if err != nil {
		return nil, fmt.Errorf("pop toasts: %w", err)
	}
	return toasts, nil
}

func read(txn *badger.Txn, sid string) ([]Toast, error) {
	item, err := txn.Get(key(sid))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var toasts []Toast
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &toasts)
	})
	if err != nil {
		return nil, fmt.Errorf("unmarshal toasts: %w", err)
	}
	return toasts, nil
}
