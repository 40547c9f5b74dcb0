package tpcc

import (
	"context"
	"errors"
	"testing"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/zeptools/tpcc-core/db/sqldb"
)

type timeoutNetErr struct{}

func (timeoutNetErr) Error() string   { return "i/o timeout" }
func (timeoutNetErr) Timeout() bool   { return true }
func (timeoutNetErr) Temporary() bool { return true }

func TestClassifyBackendErr(t *testing.T) {
	plain := errors.New("something else")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", sqldb.ErrNoRows, ErrNotFound},
		{"pg serialization failure", &pgconn.PgError{Code: "40001"}, ErrTxConflict},
		{"pg deadlock", &pgconn.PgError{Code: "40P01"}, ErrTxConflict},
		{"pg unique violation", &pgconn.PgError{Code: "23505"}, ErrConstraintViolation},
		{"pg not null violation", &pgconn.PgError{Code: "23502"}, ErrConstraintViolation},
		{"pg program limit", &pgconn.PgError{Code: "53400"}, ErrResourceLimit},
		{"pg too complex", &pgconn.PgError{Code: "54001"}, ErrResourceLimit},
		{"pg connection failure", &pgconn.PgError{Code: "08006"}, ErrConnectionFailure},
		{"mysql deadlock", &mysqldrv.MySQLError{Number: 1213}, ErrTxConflict},
		{"mysql lock wait timeout", &mysqldrv.MySQLError{Number: 1205}, ErrTxConflict},
		{"mysql duplicate key", &mysqldrv.MySQLError{Number: 1062}, ErrConstraintViolation},
		{"mysql invalid conn", mysqldrv.ErrInvalidConn, ErrConnectionFailure},
		{"context deadline", context.DeadlineExceeded, ErrConnectionFailure},
		{"context canceled", context.Canceled, ErrConnectionFailure},
		{"net error", timeoutNetErr{}, ErrConnectionFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyBackendErr(tt.in)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}

	t.Run("unrecognized passes through", func(t *testing.T) {
		assert.Equal(t, plain, classifyBackendErr(plain))
	})
	t.Run("unrecognized pg code passes through", func(t *testing.T) {
		in := &pgconn.PgError{Code: "42P01"} // undefined table
		got := classifyBackendErr(in)
		assert.ErrorIs(t, got, in)
		assert.False(t, IsRetryable(got))
	})
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(classifyBackendErr(&pgconn.PgError{Code: "40001"})))
	assert.True(t, IsRetryable(ErrConnectionFailure))
	assert.False(t, IsRetryable(ErrNotFound))
	assert.False(t, IsRetryable(ErrConstraintViolation))
	assert.False(t, IsRetryable(ErrResourceLimit))
	assert.False(t, IsRetryable(nil))
}
