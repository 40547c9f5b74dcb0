package tpcc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/zeptools/tpcc-core/db/sqldb"
)

// Failure kinds. Every error leaving this package wraps exactly one of these,
// so callers distinguish permanent failures from retryable ones with
// errors.Is instead of string matching.
var (
	// ErrInvalidRequest - precondition violation in the caller's input
	ErrInvalidRequest = errors.New("tpcc: invalid request")
	// ErrNotFound - a required row (district, customer, item, stock) is missing
	ErrNotFound = errors.New("tpcc: required row not found")
	// ErrConstraintViolation - duplicate key or similar; permanent for this input
	ErrConstraintViolation = errors.New("tpcc: constraint violation")
	// ErrTxConflict - the backend aborted the transaction due to a concurrent
	// write conflict; retry the whole operation from scratch
	ErrTxConflict = errors.New("tpcc: transaction aborted by concurrent conflict")
	// ErrResourceLimit - the per-transaction row-modification cap would be exceeded
	ErrResourceLimit = errors.New("tpcc: transaction row limit exceeded")
	// ErrConnectionFailure - transport-level failure; the transaction must be
	// treated as rolled back, retry only after reconnect
	ErrConnectionFailure = errors.New("tpcc: connection failure")
)

// IsRetryable reports whether re-running the whole operation can succeed.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTxConflict) || errors.Is(err, ErrConnectionFailure)
}

// classifyBackendErr maps driver-level errors onto the failure kinds.
// Unrecognized errors pass through unchanged.
func classifyBackendErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sqldb.ErrNoRows) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		// serialization_failure / deadlock_detected; DSQL reports optimistic
		// concurrency aborts (OC000/OC001) under 40001
		case pgErr.Code == "40001" || pgErr.Code == "40P01":
			return fmt.Errorf("%w: %v", ErrTxConflict, err)
		case strings.HasPrefix(pgErr.Code, "23"):
			return fmt.Errorf("%w: %v", ErrConstraintViolation, err)
		case strings.HasPrefix(pgErr.Code, "53") || strings.HasPrefix(pgErr.Code, "54"):
			return fmt.Errorf("%w: %v", ErrResourceLimit, err)
		case strings.HasPrefix(pgErr.Code, "08"):
			return fmt.Errorf("%w: %v", ErrConnectionFailure, err)
		}
		return err
	}

	var myErr *mysqldrv.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1205, 1213: // lock wait timeout, deadlock
			return fmt.Errorf("%w: %v", ErrTxConflict, err)
		case 1022, 1062, 1048, 1452: // duplicate key, not null, fk
			return fmt.Errorf("%w: %v", ErrConstraintViolation, err)
		}
		return err
	}

	if errors.Is(err, mysqldrv.ErrInvalidConn) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", ErrConnectionFailure, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrConnectionFailure, err)
	}
	return err
}
