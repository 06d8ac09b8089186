package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

var (
	// ErrArtistNotFound signals a missing artist row.
	ErrArtistNotFound = errors.New("artist not found")
	// ErrSongNotFound signals a missing song row.
	ErrSongNotFound = errors.New("song not found")
	// ErrGenreNotFound signals a missing genre row.
	ErrGenreNotFound = errors.New("genre not found")
	// ErrSongGenreNotFound signals that a song is not associated with a genre.
	ErrSongGenreNotFound = errors.New("song genre association not found")
	// ErrConflict reports a write refused because of existing data: a duplicate
	// identifier, a duplicate association, or dependents under the restrict policy.
	ErrConflict = errors.New("conflict")
)

const uniqueViolation = "23505"

// Store provides persistence backed by Postgres.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return nil
}

// insertRow inserts values into table and returns the row id. A positive id is
// written explicitly and the table's sequence is moved past it; otherwise the
// sequence assigns the id. Table and column names are package constants.
func (s *Store) insertRow(ctx context.Context, table string, id int64, columns []string, values ...any) (int64, error) {
	if id <= 0 {
		query := fmt.Sprintf(
			"INSERT INTO %s (%s) VALUES (%s) RETURNING id",
			table, strings.Join(columns, ", "), placeholders(1, len(columns)),
		)
		var assigned int64
		if err := s.db.QueryRowContext(ctx, query, values...).Scan(&assigned); err != nil {
			if isUniqueViolation(err) {
				return 0, fmt.Errorf("insert into %s: %w", table, ErrConflict)
			}
			return 0, fmt.Errorf("insert into %s: %w", table, err)
		}
		return assigned, nil
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		// Hold off store-assigned inserts until the sequence has moved past id.
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("LOCK TABLE %s IN SHARE ROW EXCLUSIVE MODE", table)); err != nil {
			return fmt.Errorf("lock %s: %w", table, err)
		}
		query := fmt.Sprintf(
			"INSERT INTO %s (id, %s) VALUES (%s)",
			table, strings.Join(columns, ", "), placeholders(1, len(columns)+1),
		)
		args := append([]any{id}, values...)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("insert into %s id %d: %w", table, id, ErrConflict)
			}
			return fmt.Errorf("insert into %s: %w", table, err)
		}
		return advanceSequence(ctx, tx, table)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// advanceSequence keeps the serial sequence ahead of explicitly written ids.
// The sequence only moves forward, so ids of deleted rows are never handed out again.
func advanceSequence(ctx context.Context, q execer, table string) error {
	query := fmt.Sprintf(
		"SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), GREATEST((SELECT COALESCE(MAX(id), 1) FROM %[1]s), (SELECT last_value FROM %[1]s_id_seq)))",
		table,
	)
	if _, err := q.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("advance %s sequence: %w", table, err)
	}
	return nil
}

// deleteByID removes a single row and reports notFound when nothing matched.
func deleteByID(ctx context.Context, q execer, table string, id int64, notFound error) error {
	result, err := q.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", table), id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	if rows == 0 {
		return notFound
	}
	return nil
}

func rowExists(ctx context.Context, q execer, table string, id int64) (bool, error) {
	var exists bool
	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)", table)
	if err := q.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("lookup %s: %w", table, err)
	}
	return exists, nil
}

func countWhere(ctx context.Context, q execer, table, column string, id int64) (int, error) {
	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = $1", table, column)
	if err := q.QueryRowContext(ctx, query, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return count, nil
}

func placeholders(start, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", start+i)
	}
	return strings.Join(parts, ", ")
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}
