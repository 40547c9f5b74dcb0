// Package tpcc implements the TPC-C-style New-Order business transaction on
// top of the sqldb contracts. It reads rows as typed records decoded at the
// statement boundary; missing columns are compile-time errors, not runtime
// surprises.
package tpcc

import (
	"time"

	"github.com/zeptools/tpcc-core/nullable"
)

// District - per-district state read by the New-Order path.
//
// Fields:
//
//	NextOrderID - district.next_order_id, the order-numbering counter.
//	              Strictly increasing per (warehouse, district); mutated
//	              only by this path via read-then-increment under a
//	              write-intent read.
//	Tax         - district.tax
type District struct {
	NextOrderID int
	Tax         float64
}

func (d *District) TargetFields() []any {
	return []any{&d.NextOrderID, &d.Tax}
}

// Customer - informational fields only; never mutated by New-Order.
type Customer struct {
	Discount float64 // customer.discount
	LastName string  // customer.last_name
	Credit   string  // customer.credit
}

func (c *Customer) TargetFields() []any {
	return []any{&c.Discount, &c.LastName, &c.Credit}
}

// Item - read-only catalog lookup; never mutated by New-Order.
type Item struct {
	Price float64 // item.price
	Name  string  // item.name
	Data  string  // item.data
}

func (i *Item) TargetFields() []any {
	return []any{&i.Price, &i.Name, &i.Data}
}

// Stock - per (warehouse, item) inventory, read with a write-intent read and
// updated in place.
type Stock struct {
	Quantity         int    // stock.quantity
	YTD              int    // stock.ytd - year-to-date units sold
	OrderCount       int    // stock.order_count
	RemoteOrderCount int    // stock.remote_order_count
	DistInfo         string // stock.dist_info - copied onto each order line
}

func (s *Stock) TargetFields() []any {
	return []any{&s.Quantity, &s.YTD, &s.OrderCount, &s.RemoteOrderCount, &s.DistInfo}
}

// Order - the order header, created once per transaction and never updated
// afterward by this path. CarrierID stays NULL until delivery.
type Order struct {
	WarehouseID int
	DistrictID  int
	OrderID     int
	CustomerID  int
	EntryDate   time.Time
	CarrierID   nullable.Int
	LineCount   int
	AllLocal    bool
}

// PendingOrder - the new-order marker row; created here, deleted by the
// delivery transaction.
type PendingOrder struct {
	WarehouseID int
	DistrictID  int
	OrderID     int
}

// OrderLine - one row per ordered item. DeliveryDate stays NULL until
// delivery.
type OrderLine struct {
	WarehouseID       int
	DistrictID        int
	OrderID           int
	LineNumber        int // 1-based input position
	ItemID            int
	SupplyWarehouseID int
	Quantity          int
	Amount            float64 // quantity x item price
	DeliveryDate      nullable.Time
	DistInfo          string
}
