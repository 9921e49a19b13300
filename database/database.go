package database

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Options tunes how the store is opened. The zero value is usable.
type Options struct {
	MaxOpenConns int
	// Now stamps date columns. Defaults to the current UTC time.
	Now func() time.Time
}

// Store is the process-wide handle on the forms database. It carries one
// repository per table; all of them share the same connection pool, or the
// same transaction when obtained through InTx.
type Store struct {
	db   *sql.DB
	rt   runtime
	inTx bool

	Forms     *Forms
	Fields    *Fields
	Clients   *Clients
	Responses *Responses
}

// Open opens (or creates) the SQLite database at url and applies the schema.
// Pass ":memory:" for a private in-memory database.
func Open(url string, opts Options) (*Store, error) {
	memory := isMemory(url)
	if !memory {
		if dir := filepath.Dir(url); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, storeError("init", err)
			}
		}
	}

	db, err := sql.Open("sqlite3", dsn(url))
	if err != nil {
		return nil, storeError("init", err)
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, storeError("init", err)
	}

	// db tuning options
	if memory {
		// every connection to :memory: is a different database
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	} else {
		maxOpen := opts.MaxOpenConns
		if maxOpen <= 0 {
			maxOpen = 20
		}
		db.SetMaxOpenConns(maxOpen)
		db.SetMaxIdleConns(maxOpen / 2)
		db.SetConnMaxIdleTime(5 * time.Minute)
		db.SetConnMaxLifetime(2 * time.Hour)
	}

	now := opts.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}

	s := newStore(db, db, now)
	if err = s.Migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func newStore(db *sql.DB, q querier, now func() time.Time) *Store {
	rt := runtime{q: q, now: now}
	return &Store{
		db:        db,
		rt:        rt,
		Forms:     &Forms{rt},
		Fields:    &Fields{rt},
		Clients:   &Clients{rt},
		Responses: &Responses{rt},
	}
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return storeError("get", s.db.PingContext(ctx))
}

// InTx runs fn against a Store bound to a single transaction. The transaction
// commits when fn returns nil and rolls back otherwise. Nested calls reuse the
// outer transaction.
func (s *Store) InTx(ctx context.Context, fn func(tx *Store) error) error {
	if s.inTx {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storeError("run", err)
	}
	defer tx.Rollback()

	txStore := newStore(s.db, tx, s.rt.now)
	txStore.inTx = true
	if err := fn(txStore); err != nil {
		return err
	}
	return storeError("run", tx.Commit())
}

func isMemory(url string) bool {
	return url == ":memory:" || strings.HasPrefix(url, ":memory:?") || strings.Contains(url, "mode=memory")
}

func dsn(url string) string {
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + "_foreign_keys=1&_busy_timeout=5000&_journal_mode=WAL"
}
