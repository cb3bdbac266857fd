// Package export writes a snapshot of the question store to a SQLite
// database for ad-hoc querying.
//
// The snapshot is derived data: the JSON tree stays the source of truth and
// every export replaces the previous snapshot's rows in one transaction.
package export

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/dq/internal/question"
)

//go:embed schema.sql
var schemaSQL string

// Open creates or opens a snapshot database at path and applies the schema.
//
// The database is configured with:
//   - WAL mode so readers can query while an export runs
//   - NORMAL synchronous mode
//   - 5-second busy timeout for lock contention
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return db, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// Export replaces the snapshot at path with qs and returns the number of
// rows written. Position numbers restart at 0 for each partition and follow
// the order questions appear in qs.
func Export(ctx context.Context, path string, qs []question.Question) (int, error) {
	db, err := Open(path)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("export: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if _, err := tx.ExecContext(ctx, `DELETE FROM questions`); err != nil {
		return 0, fmt.Errorf("export: clear snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO questions (user, week, position, text)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("export: prepare insert: %w", err)
	}
	defer stmt.Close()

	positions := make(map[question.Key]int)
	for _, q := range qs {
		k := question.KeyOf(q)
		pos := positions[k]
		positions[k] = pos + 1

		if _, err := stmt.ExecContext(ctx, q.User, int64(q.Week), pos, q.Text); err != nil {
			return 0, fmt.Errorf("export: insert %s#%d: %w", k, pos, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("export: commit: %w", err)
	}
	return len(qs), nil
}

// ReadAll returns every question in a snapshot, ordered by user, week and
// position.
func ReadAll(ctx context.Context, path string) ([]question.Question, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
		SELECT user, week, text
		FROM questions
		ORDER BY user COLLATE BINARY ASC, week ASC, position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	qs := []question.Question{}
	for rows.Next() {
		var (
			q    question.Question
			week int64
		)
		if err := rows.Scan(&q.User, &week, &q.Text); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		q.Week = uint8(week)
		qs = append(qs, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	return qs, nil
}
