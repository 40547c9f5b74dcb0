// Package dsql implements the sqldb contracts for Amazon Aurora DSQL.
//
// DSQL speaks the PostgreSQL wire protocol but authenticates with short-lived
// IAM tokens and runs optimistic concurrency control with limited-transaction
// semantics: no DDL/DML mixing, one DDL per transaction, and at most
// sqldb.MaxRowsModifiedPerTx rows modified per transaction. A transaction that
// loses a write-write conflict is aborted at commit with SQLSTATE 40001 and
// must be retried by the caller from the start.
package dsql

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zeptools/tpcc-core/db/sqldb"
)

const (
	DBType                   = "dsql"
	DefaultPlaceholderPrefix = byte('$')

	defaultPort = 5432
	defaultUser = "admin"
	defaultDB   = "postgres"
)

type Client struct {
	Handle // [Embedded] for Promoted Methods
	Conf   *sqldb.Conf

	creds aws.CredentialsProvider
	dsn   string
}

// Ensure dsql.Client implements sqldb.Client interface
var _ sqldb.Client = (*Client)(nil)

func Register() {
	sqldb.RegisterFactory(DBType, func(conf *sqldb.Conf) (sqldb.Client, error) {
		return &Client{Conf: conf}, nil
	})
}

func (c *Client) Init() error {
	if c.Conf.Host == "" {
		return fmt.Errorf("dsql: cluster endpoint (conf host) is required")
	}
	if c.Conf.Region == "" {
		return fmt.Errorf("dsql: aws region is required")
	}
	if c.Conf.Port == 0 {
		c.Conf.Port = defaultPort
	}
	if c.Conf.User == "" {
		c.Conf.User = defaultUser
	}
	if c.Conf.DB == "" {
		c.Conf.DB = defaultDB
	}
	// No password in the DSN; a fresh IAM token is injected per connection.
	c.dsn = fmt.Sprintf(
		"host=%s port=%d user=%s dbname=%s sslmode=require",
		c.Conf.Host,
		c.Conf.Port,
		c.Conf.User,
		c.Conf.DB,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := c.loadCredentials(ctx); err != nil {
		return err
	}

	config, err := pgxpool.ParseConfig(c.dsn)
	if err != nil {
		return fmt.Errorf("failed to parse pgx config: %w", err)
	}
	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = 3 * time.Minute
	// IAM tokens expire, so every new pool connection authenticates with a
	// freshly generated one.
	config.BeforeConnect = func(ctx context.Context, connConfig *pgx.ConnConfig) error {
		token, err := c.generateAuthToken(ctx)
		if err != nil {
			return err
		}
		connConfig.Password = token
		return nil
	}
	c.Pool, err = pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to connect pgx Pool: %w", err)
	}
	if err = c.Ping(ctx); err != nil {
		return fmt.Errorf("dsql ping failed: %w", err)
	}
	log.Printf("[INFO] dsql client initialized for endpoint: %s", c.Conf.Host)
	return nil
}

func (c *Client) GetHandle() sqldb.Handle {
	return &Handle{Pool: c.Pool}
}

func (c *Client) GetConf() *sqldb.Conf {
	return c.Conf
}

func (c *Client) GetDSN() string {
	return c.dsn
}

func (c *Client) StmtStore() *sqldb.RawSQLStore {
	return rawStmtStore
}

func (c *Client) Ping(ctx context.Context) error {
	if c.Pool == nil {
		return fmt.Errorf("dsql client not initialized")
	}
	return c.Pool.Ping(ctx)
}

func (c *Client) Close() error {
	if c.Pool == nil {
		return nil
	}
	log.Println("[INFO] closing dsql client")
	c.Pool.Close()
	log.Println("[INFO] dsql client closed")
	return nil
}

func (c *Client) BeginTx(ctx context.Context) (sqldb.Tx, error) {
	if c.Pool == nil {
		return nil, fmt.Errorf("dsql client not initialized")
	}
	tx, err := c.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction failed: %w", err)
	}
	return &Tx{tx: tx}, nil
}
