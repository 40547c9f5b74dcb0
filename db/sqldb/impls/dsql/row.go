package dsql

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/zeptools/tpcc-core/db/sqldb"
)

type Row struct {
	row pgx.Row
}

// Ensure dsql.Row implements sqldb.Row interface
var _ sqldb.Row = (*Row)(nil)

func (r *Row) Scan(dest ...any) error {
	err := r.row.Scan(dest...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return sqldb.ErrNoRows
		}
		return err
	}
	return nil
}
