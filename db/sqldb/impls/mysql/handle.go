package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/zeptools/tpcc-core/db/sqldb"
)

type Handle struct {
	db *sql.DB
}

// Ensure mysql.Handle implements sqldb.Handle interface
var _ sqldb.Handle = (*Handle)(nil)

func (h *Handle) Exec(ctx context.Context, query string, args ...any) (sqldb.Result, error) {
	result, err := h.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return &Result{result: result}, nil
}

func (h *Handle) QueryRows(ctx context.Context, query string, args ...any) (sqldb.Rows, error) {
	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return &Rows{rows: rows}, nil
}

func (h *Handle) QueryRow(ctx context.Context, query string, args ...any) sqldb.Row {
	row := h.db.QueryRowContext(ctx, query, args...)
	return &Row{row: row}
}

// CopyFrom - MySQL has no COPY protocol; emulated with multi-row INSERT
// batches.
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
		result, err := h.db.ExecContext(ctx, stmt, args...)
		if err != nil {
			return inserted, err
		}
		if n, raErr := result.RowsAffected(); raErr == nil {
			inserted += n
		}
	}
	return inserted, nil
}

func (h *Handle) InsertStmt(ctx context.Context, query string, args ...any) (sqldb.Result, error) {
	trimmed := strings.TrimSpace(query)
	if !strings.HasPrefix(strings.ToUpper(trimmed), "INSERT") {
		return nil, fmt.Errorf("InsertStmt must start with INSERT")
	}
	result, err := h.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return &Result{result: result}, nil
}
