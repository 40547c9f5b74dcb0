package tpcc

import (
	"context"
	"fmt"

	"github.com/zeptools/tpcc-core/db/sqldb"
)

// SchemaStatements - benchmark tables, TPC-C shaped. No foreign keys: DSQL
// does not support them, and the load path creates parents first anyway.
var SchemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS warehouse (
		warehouse_id INT NOT NULL,
		name         VARCHAR(10) NOT NULL,
		tax          NUMERIC(4,4) NOT NULL,
		ytd          NUMERIC(12,2) NOT NULL DEFAULT 0,
		PRIMARY KEY (warehouse_id)
	)`,
	`CREATE TABLE IF NOT EXISTS district (
		warehouse_id  INT NOT NULL,
		district_id   INT NOT NULL,
		name          VARCHAR(10) NOT NULL,
		tax           NUMERIC(4,4) NOT NULL,
		next_order_id INT NOT NULL,
		PRIMARY KEY (warehouse_id, district_id)
	)`,
	`CREATE TABLE IF NOT EXISTS customer (
		warehouse_id INT NOT NULL,
		district_id  INT NOT NULL,
		customer_id  INT NOT NULL,
		first_name   VARCHAR(16) NOT NULL,
		last_name    VARCHAR(16) NOT NULL,
		discount     NUMERIC(4,4) NOT NULL,
		credit       CHAR(2) NOT NULL,
		balance      NUMERIC(12,2) NOT NULL DEFAULT 0,
		PRIMARY KEY (warehouse_id, district_id, customer_id)
	)`,
	`CREATE TABLE IF NOT EXISTS item (
		item_id INT NOT NULL,
		name    VARCHAR(24) NOT NULL,
		price   NUMERIC(5,2) NOT NULL,
		data    VARCHAR(50) NOT NULL,
		PRIMARY KEY (item_id)
	)`,
	`CREATE TABLE IF NOT EXISTS stock (
		warehouse_id       INT NOT NULL,
		item_id            INT NOT NULL,
		quantity           INT NOT NULL,
		ytd                INT NOT NULL DEFAULT 0,
		order_count        INT NOT NULL DEFAULT 0,
		remote_order_count INT NOT NULL DEFAULT 0,
		dist_info          CHAR(24) NOT NULL,
		PRIMARY KEY (warehouse_id, item_id)
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		warehouse_id INT NOT NULL,
		district_id  INT NOT NULL,
		order_id     INT NOT NULL,
		customer_id  INT NOT NULL,
		entry_date   TIMESTAMP NOT NULL,
		carrier_id   INT,
		line_count   INT NOT NULL,
		all_local    BOOLEAN NOT NULL,
		PRIMARY KEY (warehouse_id, district_id, order_id)
	)`,
	`CREATE TABLE IF NOT EXISTS new_order (
		warehouse_id INT NOT NULL,
		district_id  INT NOT NULL,
		order_id     INT NOT NULL,
		PRIMARY KEY (warehouse_id, district_id, order_id)
	)`,
	`CREATE TABLE IF NOT EXISTS order_line (
		warehouse_id        INT NOT NULL,
		district_id         INT NOT NULL,
		order_id            INT NOT NULL,
		line_number         INT NOT NULL,
		item_id             INT NOT NULL,
		supply_warehouse_id INT NOT NULL,
		quantity            INT NOT NULL,
		amount              NUMERIC(6,2) NOT NULL,
		delivery_date       TIMESTAMP,
		dist_info           CHAR(24) NOT NULL,
		PRIMARY KEY (warehouse_id, district_id, order_id, line_number)
	)`,
}

// DropStatements tears the schema down, children first.
var DropStatements = []string{
	`DROP TABLE IF EXISTS order_line`,
	`DROP TABLE IF EXISTS new_order`,
	`DROP TABLE IF EXISTS orders`,
	`DROP TABLE IF EXISTS stock`,
	`DROP TABLE IF EXISTS item`,
	`DROP TABLE IF EXISTS customer`,
	`DROP TABLE IF EXISTS district`,
	`DROP TABLE IF EXISTS warehouse`,
}

// CreateSchema issues each DDL statement through the classifier-shaped
// execution path, one statement per transaction (the backend allows a single
// DDL per transaction, never mixed with DML).
func CreateSchema(ctx context.Context, client sqldb.Client) error {
	return runDDL(ctx, client, SchemaStatements)
}

// DropSchema removes all benchmark tables.
func DropSchema(ctx context.Context, client sqldb.Client) error {
	return runDDL(ctx, client, DropStatements)
}

func runDDL(ctx context.Context, client sqldb.Client, stmts []string) error {
	for _, stmt := range stmts {
		if class := sqldb.Classify(stmt); class != sqldb.StmtDDL {
			return fmt.Errorf("schema statement classified as %s, want DDL: %.40q", class, stmt)
		}
		if _, err := sqldb.RunStatement(ctx, client, stmt); err != nil {
			return classifyBackendErr(err)
		}
	}
	return nil
}
