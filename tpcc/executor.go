package tpcc

import (
	"fmt"

	"github.com/zeptools/tpcc-core/db/sqldb"
)

// statement keys in the embedded `sql` group, resolved per backend dialect
const (
	keyDistrictSelect  = "tpcc.district_select_for_update"
	keyDistrictBump    = "tpcc.district_increment_next_order_id"
	keyCustomerSelect  = "tpcc.customer_select"
	keyOrderInsert     = "tpcc.order_insert"
	keyNewOrderInsert  = "tpcc.new_order_insert"
	keyItemSelect      = "tpcc.item_select"
	keyStockSelect     = "tpcc.stock_select_for_update"
	keyStockUpdate     = "tpcc.stock_update"
	keyOrderLineInsert = "tpcc.order_line_insert"
)

type stmtSet struct {
	districtSelect  string
	districtBump    string
	customerSelect  string
	orderInsert     string
	newOrderInsert  string
	itemSelect      string
	stockSelect     string
	stockUpdate     string
	orderLineInsert string
}

// Executor runs TPC-C business transactions against one backend client.
// Safe for concurrent use: each operation opens its own transaction.
type Executor struct {
	client sqldb.Client
	stmts  stmtSet
}

// NewExecutor resolves the engine's statements from the client's raw
// statement store. The store must be loaded first (impls' LoadRawStmtsToStore
// after the tpcc package is imported).
func NewExecutor(client sqldb.Client) (*Executor, error) {
	store := client.StmtStore()
	var err error
	resolve := func(key string) string {
		stmt, ok := store.Get(key)
		if !ok && err == nil {
			err = fmt.Errorf("raw sql stmt %q not loaded", key)
		}
		return stmt
	}
	e := &Executor{
		client: client,
		stmts: stmtSet{
			districtSelect:  resolve(keyDistrictSelect),
			districtBump:    resolve(keyDistrictBump),
			customerSelect:  resolve(keyCustomerSelect),
			orderInsert:     resolve(keyOrderInsert),
			newOrderInsert:  resolve(keyNewOrderInsert),
			itemSelect:      resolve(keyItemSelect),
			stockSelect:     resolve(keyStockSelect),
			stockUpdate:     resolve(keyStockUpdate),
			orderLineInsert: resolve(keyOrderLineInsert),
		},
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}
