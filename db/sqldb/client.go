package sqldb

import (
	"context"
)

type Client interface {
	Init() error
	Close() error
	GetHandle() Handle
	Handle // Methods required for Handle are also required, so, promote it
	GetConf() *Conf
	GetDSN() string
	Ping(ctx context.Context) error
	BeginTx(ctx context.Context) (Tx, error)
	// StmtStore - raw statements resolved for this client's dialect
	StmtStore() *RawSQLStore
}
