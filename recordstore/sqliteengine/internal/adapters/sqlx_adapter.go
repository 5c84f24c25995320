package adapters

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// SQLXAdapter implements DBAdapter for an sqlx connection.
type SQLXAdapter struct {
	db *sqlx.DB
}

// NewSQLXAdapter creates a DBAdapter backed by *sqlx.DB.
func NewSQLXAdapter(db *sqlx.DB) SQLXAdapter {
	return SQLXAdapter{db: db}
}

// Query executes a query that returns rows.
func (a SQLXAdapter) Query(ctx context.Context, query string) (DBRows, error) {
	rows, err := a.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return sqlRows{rows: rows}, nil
}

// Exec executes a statement without returning rows.
func (a SQLXAdapter) Exec(ctx context.Context, query string) (DBResult, error) {
	result, err := a.db.ExecContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return sqlResult{result: result}, nil
}
