package sqldb

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResult struct {
	rowsAffected int64
}

func (r fakeResult) RowsAffected() (int64, error) { return r.rowsAffected, nil }
func (r fakeResult) LastInsertId() (int64, error) { return 0, errors.New("not supported") }

type fakeRows struct {
	closed bool
}

func (r *fakeRows) Next() bool             { return false }
func (r *fakeRows) Scan(dest ...any) error { return errors.New("no rows") }
func (r *fakeRows) Close() error           { r.closed = true; return nil }
func (r *fakeRows) Err() error             { return nil }

type fakeTx struct {
	execStmts  []string
	execErr    error
	committed  bool
	rolledBack bool
}

func (t *fakeTx) QueryRows(ctx context.Context, query string, args ...any) (Rows, error) {
	return &fakeRows{}, nil
}
func (t *fakeTx) QueryRow(ctx context.Context, query string, args ...any) Row {
	return &fakeRows{}
}
func (t *fakeTx) Exec(ctx context.Context, query string, args ...any) (Result, error) {
	t.execStmts = append(t.execStmts, query)
	if t.execErr != nil {
		return nil, t.execErr
	}
	return fakeResult{rowsAffected: 1}, nil
}
func (t *fakeTx) Commit(ctx context.Context) error   { t.committed = true; return nil }
func (t *fakeTx) Rollback(ctx context.Context) error { t.rolledBack = true; return nil }

// fakeClient covers the Client surface RunStatement touches; the rest panics.
type fakeClient struct {
	tx       *fakeTx
	beginCnt int
	queries  []string
}

func (c *fakeClient) Init() error                    { return nil }
func (c *fakeClient) Close() error                   { return nil }
func (c *fakeClient) GetHandle() Handle              { return c }
func (c *fakeClient) GetConf() *Conf                 { return &Conf{Type: "fake"} }
func (c *fakeClient) GetDSN() string                 { return "" }
func (c *fakeClient) Ping(ctx context.Context) error { return nil }
func (c *fakeClient) StmtStore() *RawSQLStore        { return NewRawStore() }

func (c *fakeClient) BeginTx(ctx context.Context) (Tx, error) {
	c.beginCnt++
	return c.tx, nil
}

func (c *fakeClient) QueryRows(ctx context.Context, query string, args ...any) (Rows, error) {
	c.queries = append(c.queries, query)
	return &fakeRows{}, nil
}
func (c *fakeClient) QueryRow(ctx context.Context, query string, args ...any) Row {
	return &fakeRows{}
}
func (c *fakeClient) Exec(ctx context.Context, query string, args ...any) (Result, error) {
	panic("Exec must go through a transaction")
}
func (c *fakeClient) CopyFrom(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	panic("not used")
}
func (c *fakeClient) InsertStmt(ctx context.Context, query string, args ...any) (Result, error) {
	panic("not used")
}

var _ Client = (*fakeClient)(nil)

func TestRunStatementDDL(t *testing.T) {
	tx := &fakeTx{}
	client := &fakeClient{tx: tx}

	outcome, err := RunStatement(context.Background(), client, "CREATE TABLE t (id INT)")
	require.NoError(t, err)
	assert.Equal(t, StmtDDL, outcome.Class)
	assert.Equal(t, 1, client.beginCnt, "DDL runs in its own transaction")
	assert.True(t, tx.committed)
	assert.False(t, tx.rolledBack)
}

func TestRunStatementDML(t *testing.T) {
	tx := &fakeTx{}
	client := &fakeClient{tx: tx}

	outcome, err := RunStatement(context.Background(), client, "UPDATE t SET c = ?", 1)
	require.NoError(t, err)
	assert.Equal(t, StmtDML, outcome.Class)
	assert.Equal(t, int64(1), outcome.RowsAffected)
	assert.True(t, tx.committed)
}

func TestRunStatementRead(t *testing.T) {
	tx := &fakeTx{}
	client := &fakeClient{tx: tx}

	outcome, err := RunStatement(context.Background(), client, "SELECT * FROM t")
	require.NoError(t, err)
	assert.Equal(t, StmtRead, outcome.Class)
	require.NotNil(t, outcome.Rows)
	require.NoError(t, outcome.Rows.Close())
	assert.Equal(t, 0, client.beginCnt, "reads skip the transaction path")
	assert.Equal(t, []string{"SELECT * FROM t"}, client.queries)
}

func TestRunStatementExecErrorRollsBack(t *testing.T) {
	execErr := errors.New("boom")
	tx := &fakeTx{execErr: execErr}
	client := &fakeClient{tx: tx}

	_, err := RunStatement(context.Background(), client, "DELETE FROM t")
	require.ErrorIs(t, err, execErr)
	assert.True(t, tx.rolledBack)
	assert.False(t, tx.committed)
}
