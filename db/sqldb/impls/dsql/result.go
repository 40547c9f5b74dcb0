package dsql

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/zeptools/tpcc-core/db/sqldb"
)

type Result struct {
	tag          pgconn.CommandTag
	lastInsertID int64 // Auto-increment ID
}

// Ensure dsql.Result implements sqldb.Result
var _ sqldb.Result = (*Result)(nil)

func (r *Result) RowsAffected() (int64, error) {
	return r.tag.RowsAffected(), nil
}

// LastInsertId - not supported over the PostgreSQL protocol.
func (r *Result) LastInsertId() (int64, error) {
	if r.lastInsertID != 0 {
		return r.lastInsertID, nil
	}
	return 0, fmt.Errorf("LastInsertId not supported; use `RETURNING id` instead")
}
