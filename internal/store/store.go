// Package store implements the relational persistence layer: users,
// todos, subtasks, attachments and login sessions on PostgreSQL via
// sqlx, with squirrel-built queries and explicit cascade logic.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/eleven-am/tasknest/internal/logger"
)

// DBExecutor is the subset of sqlx behavior the store needs. It is
// satisfied by both *sqlx.DB and *sqlx.Tx, so every store method runs
// unchanged inside or outside a transaction.
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	Rebind(query string) string
}

// Compile-time checks that both sqlx.DB and sqlx.Tx satisfy DBExecutor.
var (
	_ DBExecutor = (*sqlx.DB)(nil)
	_ DBExecutor = (*sqlx.Tx)(nil)
)

// psql builds queries with PostgreSQL $n placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Store exposes all persistence operations. The zero value is not
// usable; construct with Open or New.
type Store struct {
	db       *sqlx.DB
	executor DBExecutor // current executor (DB or TX)
	log      logger.Logger
}

// Open connects to PostgreSQL at databaseURL and verifies the
// connection before returning.
func Open(ctx context.Context, databaseURL string) (*Store, error) {
	db, err := sqlx.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	st := New(db)
	st.log.Info("database connected")
	return st, nil
}

// New wraps an existing connection. Used by tests to inject sqlmock.
func New(db *sqlx.DB) *Store {
	return &Store{db: db, executor: db, log: logger.Store()}
}

func (s *Store) withExecutor(executor DBExecutor) *Store {
	return &Store{db: s.db, executor: executor, log: s.log}
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// WithTransaction runs fn inside a transaction, committing on nil
// return and rolling back otherwise. Nested calls reuse the already
// open transaction.
func (s *Store) WithTransaction(ctx context.Context, fn func(*Store) error) error {
	if _, isTransaction := s.executor.(*sqlx.Tx); isTransaction {
		return fn(s)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	txStore := s.withExecutor(tx)
	if err := fn(txStore); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	committed = true

	return nil
}
