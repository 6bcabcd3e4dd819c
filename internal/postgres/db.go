// Package postgres is the destination-database collaborator: bulk
// multi-row inserts into the fixed destination tables and execution of
// the embedded DDL/view scripts.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/trelloetl/internal/dbx"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Database is what the pipeline needs from the destination database.
type Database interface {
	// InsertRows bulk-inserts rows into table with the given column
	// order, committing once for the whole table.
	InsertRows(ctx context.Context, table string, columns []string, rows [][]any) error
	// ExecScript runs an arbitrary SQL script in one transaction.
	ExecScript(ctx context.Context, script string) error
	Close() error
}

// insertBatchSize bounds the number of rows per INSERT statement; the
// widest table has 13 columns, keeping a batch well under the 65535
// bind-parameter wire limit.
const insertBatchSize = 500

// DB implements Database over a pgx stdlib connection. The connection
// is opened once and reused for every statement of the run.
type DB struct {
	db *sql.DB
}

// Open connects to the destination database.
func Open(dsn string) (*DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}
	return &DB{db: db}, nil
}

// Close releases the connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// InsertRows inserts all rows into table inside one transaction,
// batching the multi-row INSERT statements.
func (d *DB) InsertRows(ctx context.Context, table string, columns []string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}
	err := dbx.WithTx(ctx, d.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for start := 0; start < len(rows); start += insertBatchSize {
			end := min(start+insertBatchSize, len(rows))
			query, args, err := buildInsert(table, columns, rows[start:end])
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("insert batch: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("postgres: insert into %s: %w", table, err)
	}
	return nil
}

// buildInsert renders one multi-row INSERT with numbered placeholders.
func buildInsert(table string, columns []string, rows [][]any) (string, []any, error) {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(table)
	b.WriteString(" (")
	b.WriteString(strings.Join(columns, ", "))
	b.WriteString(") VALUES ")

	args := make([]any, 0, len(rows)*len(columns))
	for i, row := range rows {
		if len(row) != len(columns) {
			return "", nil, fmt.Errorf("row %d has %d values, want %d", i, len(row), len(columns))
		}
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(")
		for j := range row {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "$%d", len(args)+j+1)
		}
		b.WriteString(")")
		args = append(args, row...)
	}
	return b.String(), args, nil
}

// ExecScript runs script in one transaction (one commit per script).
func (d *DB) ExecScript(ctx context.Context, script string) error {
	err := dbx.WithTx(ctx, d.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := tx.ExecContext(ctx, script)
		return err
	})
	if err != nil {
		return fmt.Errorf("postgres: exec script: %w", err)
	}
	return nil
}
