package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store owns the database handle and hands out repositories.
type Store struct {
	db  *sql.DB
	drv *entsql.Driver
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and migrates the schema.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite allows a single writer; one connection also keeps the
	// per-connection pragmas below in effect for every statement.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	drv := entsql.OpenDB(dialect.SQLite, db)
	if err := migrate(context.Background(), drv); err != nil {
		drv.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	return &Store{db: db, drv: drv}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.drv.Close()
}

// Repos returns repositories bound to the shared connection.
func (s *Store) Repos() Repos {
	return newRepos(s.db)
}

// Users returns a UserRepo backed by this store.
func (s *Store) Users() UserRepo { return &userRepo{q: s.db} }

// Groups returns a GroupRepo backed by this store.
func (s *Store) Groups() GroupRepo { return &groupRepo{q: s.db} }

// Messages returns a MessageRepo backed by this store.
func (s *Store) Messages() MessageRepo { return &messageRepo{q: s.db} }

// Announcements returns an AnnouncementRepo backed by this store.
func (s *Store) Announcements() AnnouncementRepo { return &announcementRepo{q: s.db} }

// EventRepo returns an EventRepo backed by this store.
func (s *Store) EventRepo() EventRepo { return &eventRepo{q: s.db} }

// InTx runs fn with repositories bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise. fn must
// only use the repositories it is given.
func (s *Store) InTx(ctx context.Context, fn func(Repos) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(newRepos(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func newRepos(q querier) Repos {
	return Repos{
		Users:         &userRepo{q: q},
		Assessments:   &assessmentRepo{q: q},
		Groups:        &groupRepo{q: q},
		Messages:      &messageRepo{q: q},
		Trackers:      &trackerRepo{q: q},
		Poems:         &poemRepo{q: q},
		Announcements: &announcementRepo{q: q},
		Events:        &eventRepo{q: q},
	}
}

// applyPragmas configures SQLite for a small multi-user web service.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. SERENITY_DB environment variable
// 2. $XDG_DATA_HOME/serenity/serenity.db
// 3. ~/.local/share/serenity/serenity.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("SERENITY_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "serenity", "serenity.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
