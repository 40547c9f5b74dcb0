package tpcc

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/zeptools/tpcc-core/db/sqldb"
)

// LineItem - one requested order line. SupplyWarehouseID = 0 means the
// order's own warehouse supplies the line.
type LineItem struct {
	ItemID            int
	SupplyWarehouseID int
	Quantity          int
}

// NewOrderRequest identifies the ordering customer and the items wanted.
type NewOrderRequest struct {
	WarehouseID int
	DistrictID  int
	CustomerID  int
	Items       []LineItem
}

// rowModifications - rows this request will touch:
// 1 district update + 1 order insert + 1 new-order marker insert
// + (1 stock update + 1 order-line insert) per line item.
func (r *NewOrderRequest) rowModifications() int {
	return 3 + 2*len(r.Items)
}

func (r *NewOrderRequest) validate() error {
	if len(r.Items) == 0 {
		return fmt.Errorf("%w: order needs at least one line item", ErrInvalidRequest)
	}
	for i, item := range r.Items {
		if item.ItemID <= 0 {
			return fmt.Errorf("%w: line %d has no item id", ErrInvalidRequest, i+1)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: line %d quantity must be positive", ErrInvalidRequest, i+1)
		}
	}
	// fail fast instead of letting the backend reject the whole batch at commit
	if mods := r.rowModifications(); mods > sqldb.MaxRowsModifiedPerTx {
		return fmt.Errorf("%w: %d row modifications, backend cap is %d",
			ErrResourceLimit, mods, sqldb.MaxRowsModifiedPerTx)
	}
	return nil
}

// NewOrderLine - pricing detail of one created order line.
type NewOrderLine struct {
	LineNumber        int
	ItemID            int
	ItemName          string
	SupplyWarehouseID int
	Quantity          int
	Price             float64
	Amount            float64
	StockRemaining    int
}

// NewOrderResult - outcome of a committed New-Order transaction.
type NewOrderResult struct {
	OrderID          int
	EntryDate        time.Time
	DistrictTax      float64
	CustomerLastName string
	CustomerCredit   string
	CustomerDiscount float64
	AllLocal         bool
	Lines            []NewOrderLine
}

// stockFloor / stockRestock - the benchmark's wraparound rule: a stock level
// that would drop below the floor gets the restock amount added instead of
// going negative or near-empty.
const (
	stockFloor   = 10
	stockRestock = 100
)

// PlaceNewOrder runs one New-Order business transaction: allocate the next
// order id from the district counter, validate the customer, create the order
// header and its new-order marker, then price and reserve stock for every
// line item. Commits atomically; on any failure the whole transaction rolls
// back and a classified error is returned. The engine never retries -
// a result wrapping ErrTxConflict means the caller may re-run the whole call.
func (e *Executor) PlaceNewOrder(ctx context.Context, req NewOrderRequest) (*NewOrderResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	tx, err := e.client.BeginTx(ctx)
	if err != nil {
		return nil, classifyBackendErr(err)
	}
	result, err := e.placeNewOrder(ctx, tx, req)
	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			// the original failure stays the returned error
			log.Printf("[WARN] new-order rollback failed: %v", rbErr)
		}
		return nil, err
	}
	// under optimistic concurrency control, write-write conflicts surface here
	if err = tx.Commit(ctx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			log.Printf("[WARN] new-order rollback failed after commit error: %v", rbErr)
		}
		return nil, classifyBackendErr(err)
	}
	return result, nil
}

func (e *Executor) placeNewOrder(ctx context.Context, tx sqldb.Tx, req NewOrderRequest) (*NewOrderResult, error) {
	entryDate := time.Now().UTC()

	// write-intent read: on DSQL, FOR UPDATE adds the row to the write set so
	// two concurrent orders in one district cannot both observe the same counter
	district, err := sqldb.QueryItem[District, *District](ctx, tx, e.stmts.districtSelect,
		req.WarehouseID, req.DistrictID)
	if err != nil {
		if errors.Is(err, sqldb.ErrNoRows) {
			return nil, fmt.Errorf("%w: district (%d,%d)", ErrNotFound, req.WarehouseID, req.DistrictID)
		}
		return nil, classifyBackendErr(err)
	}
	orderID := district.NextOrderID

	bumped, err := tx.Exec(ctx, e.stmts.districtBump, req.WarehouseID, req.DistrictID)
	if err != nil {
		return nil, classifyBackendErr(err)
	}
	if n, raErr := bumped.RowsAffected(); raErr == nil && n != 1 {
		return nil, fmt.Errorf("district counter update affected %d rows, want 1", n)
	}

	customer, err := sqldb.QueryItem[Customer, *Customer](ctx, tx, e.stmts.customerSelect,
		req.WarehouseID, req.DistrictID, req.CustomerID)
	if err != nil {
		if errors.Is(err, sqldb.ErrNoRows) {
			return nil, fmt.Errorf("%w: customer (%d,%d,%d)", ErrNotFound,
				req.WarehouseID, req.DistrictID, req.CustomerID)
		}
		return nil, classifyBackendErr(err)
	}

	allLocal := true
	for _, item := range req.Items {
		if item.SupplyWarehouseID != 0 && item.SupplyWarehouseID != req.WarehouseID {
			allLocal = false
			break
		}
	}

	order := Order{
		WarehouseID: req.WarehouseID,
		DistrictID:  req.DistrictID,
		OrderID:     orderID,
		CustomerID:  req.CustomerID,
		EntryDate:   entryDate,
		LineCount:   len(req.Items),
		AllLocal:    allLocal,
		// CarrierID stays NULL until delivery
	}
	if _, err = tx.Exec(ctx, e.stmts.orderInsert,
		order.WarehouseID, order.DistrictID, order.OrderID, order.CustomerID,
		order.EntryDate, order.CarrierID, order.LineCount, order.AllLocal); err != nil {
		return nil, classifyBackendErr(err)
	}

	pending := PendingOrder{
		WarehouseID: req.WarehouseID,
		DistrictID:  req.DistrictID,
		OrderID:     orderID,
	}
	if _, err = tx.Exec(ctx, e.stmts.newOrderInsert,
		pending.WarehouseID, pending.DistrictID, pending.OrderID); err != nil {
		return nil, classifyBackendErr(err)
	}

	lines := make([]NewOrderLine, 0, len(req.Items))
	for i, reqItem := range req.Items {
		line, err := e.placeOrderLine(ctx, tx, &req, orderID, i+1, reqItem)
		if err != nil {
			return nil, err
		}
		lines = append(lines, *line)
	}

	return &NewOrderResult{
		OrderID:          orderID,
		EntryDate:        entryDate,
		DistrictTax:      district.Tax,
		CustomerLastName: customer.LastName,
		CustomerCredit:   customer.Credit,
		CustomerDiscount: customer.Discount,
		AllLocal:         allLocal,
		Lines:            lines,
	}, nil
}

func (e *Executor) placeOrderLine(
	ctx context.Context,
	tx sqldb.Tx,
	req *NewOrderRequest,
	orderID int,
	lineNumber int,
	reqItem LineItem,
) (*NewOrderLine, error) {
	supplyWarehouseID := reqItem.SupplyWarehouseID
	if supplyWarehouseID == 0 {
		supplyWarehouseID = req.WarehouseID
	}

	item, err := sqldb.QueryItem[Item, *Item](ctx, tx, e.stmts.itemSelect, reqItem.ItemID)
	if err != nil {
		if errors.Is(err, sqldb.ErrNoRows) {
			// aborts the whole transaction: no partial orders
			return nil, fmt.Errorf("%w: item %d (line %d)", ErrNotFound, reqItem.ItemID, lineNumber)
		}
		return nil, classifyBackendErr(err)
	}

	stock, err := sqldb.QueryItem[Stock, *Stock](ctx, tx, e.stmts.stockSelect,
		supplyWarehouseID, reqItem.ItemID)
	if err != nil {
		if errors.Is(err, sqldb.ErrNoRows) {
			return nil, fmt.Errorf("%w: stock (%d,%d)", ErrNotFound, supplyWarehouseID, reqItem.ItemID)
		}
		return nil, classifyBackendErr(err)
	}

	newQuantity := stock.Quantity - reqItem.Quantity
	if newQuantity < stockFloor {
		newQuantity += stockRestock
	}
	remoteDelta := 0
	if supplyWarehouseID != req.WarehouseID {
		remoteDelta = 1
	}
	if _, err = tx.Exec(ctx, e.stmts.stockUpdate,
		newQuantity, reqItem.Quantity, remoteDelta,
		supplyWarehouseID, reqItem.ItemID); err != nil {
		return nil, classifyBackendErr(err)
	}

	orderLine := OrderLine{
		WarehouseID:       req.WarehouseID,
		DistrictID:        req.DistrictID,
		OrderID:           orderID,
		LineNumber:        lineNumber,
		ItemID:            reqItem.ItemID,
		SupplyWarehouseID: supplyWarehouseID,
		Quantity:          reqItem.Quantity,
		Amount:            float64(reqItem.Quantity) * item.Price,
		DistInfo:          stock.DistInfo,
		// DeliveryDate stays NULL until delivery
	}
	if _, err = tx.Exec(ctx, e.stmts.orderLineInsert,
		orderLine.WarehouseID, orderLine.DistrictID, orderLine.OrderID,
		orderLine.LineNumber, orderLine.ItemID, orderLine.SupplyWarehouseID,
		orderLine.Quantity, orderLine.Amount, orderLine.DeliveryDate,
		orderLine.DistInfo); err != nil {
		return nil, classifyBackendErr(err)
	}

	return &NewOrderLine{
		LineNumber:        lineNumber,
		ItemID:            reqItem.ItemID,
		ItemName:          item.Name,
		SupplyWarehouseID: supplyWarehouseID,
		Quantity:          reqItem.Quantity,
		Price:             item.Price,
		Amount:            orderLine.Amount,
		StockRemaining:    newQuantity,
	}, nil
}
