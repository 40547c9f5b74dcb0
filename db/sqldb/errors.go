package sqldb

import "errors"

// ErrNoRows - backend-neutral "row not found".
// Driver-specific no-rows errors (pgx.ErrNoRows, sql.ErrNoRows) are mapped to
// this at the impl boundary so callers never match on driver errors.
var ErrNoRows = errors.New("sqldb: no rows in result set")
