package dsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zeptools/tpcc-core/db/sqldb"
)

type Handle struct {
	*pgxpool.Pool // [Embedded]
}

var _ sqldb.Handle = (*Handle)(nil)

func (h *Handle) Exec(ctx context.Context, query string, args ...any) (sqldb.Result, error) {
	tag, err := h.Pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return &Result{tag: tag}, nil
}

func (h *Handle) QueryRows(ctx context.Context, query string, args ...any) (sqldb.Rows, error) {
	rows, err := h.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return &Rows{current: rows}, nil
}

func (h *Handle) QueryRow(ctx context.Context, query string, args ...any) sqldb.Row {
	row := h.Pool.QueryRow(ctx, query, args...)
	return &Row{row: row}
}

// CopyFrom - DSQL does not support the COPY protocol, so bulk loads are
// emulated with multi-row INSERT batches. Each batch stays within the
// per-transaction row-modification limit and commits on its own, so a failed
// load can leave earlier batches committed.
func (h *Handle) CopyFrom(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	var inserted int64
	for start := 0; start < len(rows); start += sqldb.MaxRowsModifiedPerTx {
		end := min(start+sqldb.MaxRowsModifiedPerTx, len(rows))
		batch := rows[start:end]
		stmt, err := sqldb.BuildBulkInsert(table, columns, len(batch), DefaultPlaceholderPrefix)
		if err != nil {
			return inserted, err
		}
		args := make([]any, 0, len(batch)*len(columns))
		for _, row := range batch {
			if len(row) != len(columns) {
				return inserted, fmt.Errorf("row has %d values, want %d", len(row), len(columns))
			}
			args = append(args, row...)
		}
		tag, err := h.Pool.Exec(ctx, stmt, args...)
		if err != nil {
			return inserted, err
		}
		inserted += tag.RowsAffected()
	}
	return inserted, nil
}

func (h *Handle) InsertStmt(ctx context.Context, query string, args ...any) (sqldb.Result, error) {
	trimmed := strings.TrimSpace(query)
	if !strings.HasPrefix(strings.ToUpper(trimmed), "INSERT") {
		return nil, fmt.Errorf("InsertStmt must start with INSERT")
	}
	// append RETURNING id if missing
	if !strings.Contains(strings.ToUpper(query), "RETURNING") {
		query += " RETURNING id"
		var id int64
		err := h.Pool.QueryRow(ctx, query, args...).Scan(&id)
		if err != nil {
			return nil, err
		}
		return &Result{lastInsertID: id}, nil
	}

	tag, err := h.Pool.Exec(ctx, query, args...)
	return &Result{tag: tag}, err
}
