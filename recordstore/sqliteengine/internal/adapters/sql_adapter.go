package adapters

import (
	"context"
	"database/sql"
)

// SQLAdapter implements DBAdapter for a plain database/sql connection.
type SQLAdapter struct {
	db *sql.DB
}

// NewSQLAdapter creates a DBAdapter backed by *sql.DB.
func NewSQLAdapter(db *sql.DB) SQLAdapter {
	return SQLAdapter{db: db}
}

// Query executes a query that returns rows.
func (a SQLAdapter) Query(ctx context.Context, query string) (DBRows, error) {
	rows, err := a.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return sqlRows{rows: rows}, nil
}

// Exec executes a statement without returning rows.
func (a SQLAdapter) Exec(ctx context.Context, query string) (DBResult, error) {
	result, err := a.db.ExecContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return sqlResult{result: result}, nil
}
