package database

import "context"

// Row is one scanned result. pgx.Row and *sql.Row both satisfy it.
type Row interface {
	Scan(dest ...any) error
}

// Rows iterates a result set. *sql.Rows satisfies it as is; the postgres
// package adapts pgx.Rows, whose Close returns nothing.
type Rows interface {
	Row
	Next() bool
	Close() error
	Err() error
}

// Result reports how many rows a statement touched. The task stores use it
// to tell a missing task from a replaced or removed one.
type Result interface {
	RowsAffected() (int64, error)
}

// Executor is the query surface the SQL task stores are written against.
type Executor interface {
	Exec(ctx context.Context, query string, args ...any) (Result, error)
	QueryRow(ctx context.Context, query string, args ...any) Row
	Query(ctx context.Context, query string, args ...any) (Rows, error)
}

// Connection is an open handle shared by the task stores and migrations.
type Connection interface {
	Executor
	Close() error
	// Ping backs the "store" health check.
	Ping(ctx context.Context) error
	Driver() Driver
}
