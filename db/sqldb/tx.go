package sqldb

import "context"

// Tx Transaction
// Each Tx wraps exactly one backend transaction and is not safe for
// concurrent use. Commit and Rollback are no-ops on an already-finished
// transaction.
type Tx interface {
	Reader
	Exec(ctx context.Context, query string, args ...any) (Result, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
