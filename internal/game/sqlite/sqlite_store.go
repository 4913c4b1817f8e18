package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"deepfake-game/internal/game"
)

const DefaultPath = "DeepfakeGame.db"

type SQLiteStore struct {
	db     *sql.DB
	hasher game.PasswordHasher
	now    func() time.Time
}

type Option func(*options)

type options struct {
	hasher      game.PasswordHasher
	now         func() time.Time
	foreignKeys bool
}

// WithPasswordHasher replaces the default unsalted SHA-256 hasher.
func WithPasswordHasher(hasher game.PasswordHasher) Option {
	return func(o *options) {
		if hasher != nil {
			o.hasher = hasher
		}
	}
}

// WithClock sets the source of leaderboard timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithForeignKeys toggles SQLite foreign-key enforcement for the connection.
// It is on by default, so orphan answers and scores for unknown users are rejected.
func WithForeignKeys(enabled bool) Option {
	return func(o *options) {
		o.foreignKeys = enabled
	}
}

func NewSQLiteStore(path string, opts ...Option) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}

	cfg := options{
		hasher:      game.SHA256Hasher{},
		now:         time.Now,
		foreignKeys: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	db, err := sql.Open("sqlite3", dsn(path, cfg.foreignKeys))
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	// One connection keeps the per-connection pragmas from the DSN in force and
	// serialises writers the way SQLite would anyway.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{
		db:     db,
		hasher: cfg.hasher,
		now:    cfg.now,
	}
	if err := store.InitSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func dsn(path string, foreignKeys bool) string {
	fk := "off"
	if foreignKeys {
		fk = "on"
	}
	return fmt.Sprintf("%s?_busy_timeout=5000&_foreign_keys=%s", path, fk)
}

func constraintCode(err error) (sqlite3.ErrNoExtended, bool) {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return 0, false
	}
	if sqliteErr.Code != sqlite3.ErrConstraint {
		return 0, false
	}
	return sqliteErr.ExtendedCode, true
}

func isUniqueViolation(err error, column string) bool {
	code, ok := constraintCode(err)
	if !ok || code != sqlite3.ErrConstraintUnique {
		return false
	}
	return strings.Contains(err.Error(), column)
}

func isForeignKeyViolation(err error) bool {
	code, ok := constraintCode(err)
	return ok && code == sqlite3.ErrConstraintForeignKey
}

func nullableString(value string) sql.NullString {
	value = strings.TrimSpace(value)
	return sql.NullString{String: value, Valid: value != ""}
}
