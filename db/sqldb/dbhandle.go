package sqldb

import "context"

// Reader - read surface shared by Handle and Tx,
// so the generic scan helpers work inside and outside transactions.
type Reader interface {
	QueryRows(ctx context.Context, query string, args ...any) (Rows, error) // Eager. Fail upfront on statement execution
	QueryRow(ctx context.Context, query string, args ...any) Row            // Lazy. only fails at Scan()
}

type Handle interface {
	Reader

	// Exec executes SQL statement like INSERT, UPDATE, DELETE.
	Exec(ctx context.Context, query string, args ...any) (Result, error) // Executes General SQL Statement(s)

	// CopyFrom inserts many rows at once into a table, not executing individual INSERT statements.
	// Backends without a native COPY protocol emulate it with multi-row INSERT batches,
	// honoring the backend's per-transaction row-modification limit.
	CopyFrom(ctx context.Context, table string, columns []string, rows [][]any) (int64, error)

	// InsertStmt - Single INSERT statement, placeholders only
	// to guarantee Result.LastInsertedId() works for auto-increment `id`
	InsertStmt(ctx context.Context, query string, args ...any) (Result, error)
}
