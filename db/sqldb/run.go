package sqldb

import (
	"context"
	"fmt"
	"log"
)

// StatementOutcome - result of a classifier-shaped statement execution.
type StatementOutcome struct {
	Class        StmtClass
	RowsAffected int64 // DML only
	Rows         Rows  // reads only; caller must Close
}

// RunStatement - generic pass-through execution path.
// Classifies the statement and gives it the transaction shape the backend
// requires: DDL runs alone in its own transaction (Aurora DSQL allows one DDL
// per transaction, never mixed with DML), DML runs in an autocommit
// transaction, reads query the pool directly.
// DML needing RETURNING-style key capture should go through Handle.InsertStmt.
func RunStatement(ctx context.Context, client Client, stmt string, args ...any) (*StatementOutcome, error) {
	outcome := &StatementOutcome{Class: Classify(stmt)}
	switch outcome.Class {
	case StmtDDL, StmtDML:
		tx, err := client.BeginTx(ctx)
		if err != nil {
			return nil, fmt.Errorf("begin transaction failed: %w", err)
		}
		result, err := tx.Exec(ctx, stmt, args...)
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.Printf("[WARN] rollback failed after %s error: %v", outcome.Class, rbErr)
			}
			return nil, err
		}
		if err = tx.Commit(ctx); err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.Printf("[WARN] rollback failed after commit error: %v", rbErr)
			}
			return nil, err
		}
		if n, raErr := result.RowsAffected(); raErr == nil {
			outcome.RowsAffected = n
		}
		return outcome, nil
	default:
		rows, err := client.QueryRows(ctx, stmt, args...)
		if err != nil {
			return nil, err
		}
		outcome.Rows = rows
		return outcome, nil
	}
}
