package tpcc

import (
	"context"

	"github.com/zeptools/tpcc-core/db/sqldb"
)

// Seed row shapes for the initial population. The loader goes through
// Handle.CopyFrom: native COPY on PostgreSQL, capped multi-row INSERT batches
// on DSQL and MySQL.

type WarehouseSeed struct {
	WarehouseID int
	Name        string
	Tax         float64
}

type DistrictSeed struct {
	WarehouseID int
	DistrictID  int
	Name        string
	Tax         float64
	NextOrderID int
}

type CustomerSeed struct {
	WarehouseID int
	DistrictID  int
	CustomerID  int
	FirstName   string
	LastName    string
	Discount    float64
	Credit      string
}

type ItemSeed struct {
	ItemID int
	Name   string
	Price  float64
	Data   string
}

type StockSeed struct {
	WarehouseID int
	ItemID      int
	Quantity    int
	DistInfo    string
}

// Loader bulk-populates the benchmark tables.
type Loader struct {
	client sqldb.Client
}

func NewLoader(client sqldb.Client) *Loader {
	return &Loader{client: client}
}

func (l *Loader) LoadWarehouses(ctx context.Context, seeds []WarehouseSeed) (int64, error) {
	rows := make([][]any, len(seeds))
	for i, s := range seeds {
		rows[i] = []any{s.WarehouseID, s.Name, s.Tax}
	}
	n, err := l.client.CopyFrom(ctx, "warehouse",
		[]string{"warehouse_id", "name", "tax"}, rows)
	return n, classifyBackendErr(err)
}

func (l *Loader) LoadDistricts(ctx context.Context, seeds []DistrictSeed) (int64, error) {
	rows := make([][]any, len(seeds))
	for i, s := range seeds {
		rows[i] = []any{s.WarehouseID, s.DistrictID, s.Name, s.Tax, s.NextOrderID}
	}
	n, err := l.client.CopyFrom(ctx, "district",
		[]string{"warehouse_id", "district_id", "name", "tax", "next_order_id"}, rows)
	return n, classifyBackendErr(err)
}

func (l *Loader) LoadCustomers(ctx context.Context, seeds []CustomerSeed) (int64, error) {
	rows := make([][]any, len(seeds))
	for i, s := range seeds {
		rows[i] = []any{s.WarehouseID, s.DistrictID, s.CustomerID,
			s.FirstName, s.LastName, s.Discount, s.Credit}
	}
	n, err := l.client.CopyFrom(ctx, "customer",
		[]string{"warehouse_id", "district_id", "customer_id",
			"first_name", "last_name", "discount", "credit"}, rows)
	return n, classifyBackendErr(err)
}

func (l *Loader) LoadItems(ctx context.Context, seeds []ItemSeed) (int64, error) {
	rows := make([][]any, len(seeds))
	for i, s := range seeds {
		rows[i] = []any{s.ItemID, s.Name, s.Price, s.Data}
	}
	n, err := l.client.CopyFrom(ctx, "item",
		[]string{"item_id", "name", "price", "data"}, rows)
	return n, classifyBackendErr(err)
}

func (l *Loader) LoadStock(ctx context.Context, seeds []StockSeed) (int64, error) {
	rows := make([][]any, len(seeds))
	for i, s := range seeds {
		rows[i] = []any{s.WarehouseID, s.ItemID, s.Quantity, s.DistInfo}
	}
	n, err := l.client.CopyFrom(ctx, "stock",
		[]string{"warehouse_id", "item_id", "quantity", "dist_info"}, rows)
	return n, classifyBackendErr(err)
}
