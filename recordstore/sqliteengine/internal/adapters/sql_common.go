package adapters

import "database/sql"

// sqlRows wraps *sql.Rows to satisfy DBRows.
// Both the sqlx and the database/sql adapter produce *sql.Rows under the hood,
// so they share this wrapper.
type sqlRows struct {
	rows *sql.Rows
}

func (r sqlRows) Next() bool {
	return r.rows.Next()
}

func (r sqlRows) Scan(dest ...any) error {
	return r.rows.Scan(dest...)
}

func (r sqlRows) Close() error {
	return r.rows.Close()
}

// sqlResult wraps sql.Result to satisfy DBResult.
type sqlResult struct {
	result sql.Result
}

func (r sqlResult) RowsAffected() (int64, error) {
	return r.result.RowsAffected()
}
