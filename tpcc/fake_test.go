package tpcc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/zeptools/tpcc-core/db/sqldb"
	"github.com/zeptools/tpcc-core/nullable"
)

// In-memory backend with snapshot transactions: BeginTx clones the state,
// writes go to the clone, Commit swaps it in, Rollback discards it. That
// gives the tests real all-or-nothing semantics without a database.

type districtRow struct {
	nextOrderID int
	tax         float64
}

type customerRow struct {
	discount float64
	lastName string
	credit   string
}

type itemRow struct {
	price float64
	name  string
	data  string
}

type stockRow struct {
	quantity         int
	ytd              int
	orderCount       int
	remoteOrderCount int
	distInfo         string
}

type orderRow struct {
	warehouseID int
	districtID  int
	orderID     int
	customerID  int
	entryDate   time.Time
	carrierID   nullable.Int
	lineCount   int
	allLocal    bool
}

type orderLineRow struct {
	warehouseID       int
	districtID        int
	orderID           int
	lineNumber        int
	itemID            int
	supplyWarehouseID int
	quantity          int
	amount            float64
	deliveryDate      nullable.Time
	distInfo          string
}

type fakeState struct {
	districts  map[[2]int]districtRow
	customers  map[[3]int]customerRow
	items      map[int]itemRow
	stocks     map[[2]int]stockRow
	orders     []orderRow
	newOrders  [][3]int
	orderLines []orderLineRow
	ddlLog     []string
}

func newFakeState() *fakeState {
	return &fakeState{
		districts: make(map[[2]int]districtRow),
		customers: make(map[[3]int]customerRow),
		items:     make(map[int]itemRow),
		stocks:    make(map[[2]int]stockRow),
	}
}

func (s *fakeState) clone() *fakeState {
	c := newFakeState()
	for k, v := range s.districts {
		c.districts[k] = v
	}
	for k, v := range s.customers {
		c.customers[k] = v
	}
	for k, v := range s.items {
		c.items[k] = v
	}
	for k, v := range s.stocks {
		c.stocks[k] = v
	}
	c.orders = append(c.orders, s.orders...)
	c.newOrders = append(c.newOrders, s.newOrders...)
	c.orderLines = append(c.orderLines, s.orderLines...)
	c.ddlLog = append(c.ddlLog, s.ddlLog...)
	return c
}

type fakeBackend struct {
	state *fakeState

	beginErr    error
	commitErr   error
	rollbackErr error

	beginCnt    int
	commitCnt   int
	rollbackCnt int

	copiedTables []string
	copiedRows   int

	store *sqldb.RawSQLStore
}

func newFakeBackend() *fakeBackend {
	store := sqldb.NewRawStore()
	if err := sqldb.LoadRawStmtsToStore(store, "fake", '?'); err != nil {
		panic(err)
	}
	return &fakeBackend{state: newFakeState(), store: store}
}

func (b *fakeBackend) seedDistrict(w, d int, row districtRow)    { b.state.districts[[2]int{w, d}] = row }
func (b *fakeBackend) seedCustomer(w, d, c int, row customerRow) { b.state.customers[[3]int{w, d, c}] = row }
func (b *fakeBackend) seedItem(id int, row itemRow)              { b.state.items[id] = row }
func (b *fakeBackend) seedStock(w, i int, row stockRow)          { b.state.stocks[[2]int{w, i}] = row }

func (b *fakeBackend) Init() error                    { return nil }
func (b *fakeBackend) Close() error                   { return nil }
func (b *fakeBackend) GetHandle() sqldb.Handle        { return b }
func (b *fakeBackend) GetConf() *sqldb.Conf           { return &sqldb.Conf{Type: "fake"} }
func (b *fakeBackend) GetDSN() string                 { return "" }
func (b *fakeBackend) Ping(ctx context.Context) error { return nil }
func (b *fakeBackend) StmtStore() *sqldb.RawSQLStore  { return b.store }

func (b *fakeBackend) BeginTx(ctx context.Context) (sqldb.Tx, error) {
	b.beginCnt++
	if b.beginErr != nil {
		return nil, b.beginErr
	}
	return &fakeTx{backend: b, work: b.state.clone()}, nil
}

func (b *fakeBackend) QueryRows(ctx context.Context, query string, args ...any) (sqldb.Rows, error) {
	return nil, errors.New("fake backend: pool-level QueryRows not supported")
}

func (b *fakeBackend) QueryRow(ctx context.Context, query string, args ...any) sqldb.Row {
	return fakeRow{err: errors.New("fake backend: pool-level QueryRow not supported")}
}

func (b *fakeBackend) Exec(ctx context.Context, query string, args ...any) (sqldb.Result, error) {
	return nil, errors.New("fake backend: pool-level Exec not supported")
}

func (b *fakeBackend) CopyFrom(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	b.copiedTables = append(b.copiedTables, table)
	b.copiedRows += len(rows)
	return int64(len(rows)), nil
}

func (b *fakeBackend) InsertStmt(ctx context.Context, query string, args ...any) (sqldb.Result, error) {
	return nil, errors.New("fake backend: InsertStmt not supported")
}

var _ sqldb.Client = (*fakeBackend)(nil)

type fakeTx struct {
	backend *fakeBackend
	work    *fakeState
	done    bool
}

func (t *fakeTx) Commit(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.backend.commitCnt++
	if t.backend.commitErr != nil {
		return t.backend.commitErr
	}
	t.backend.state = t.work
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.backend.rollbackCnt++
	return t.backend.rollbackErr
}

func (t *fakeTx) QueryRows(ctx context.Context, query string, args ...any) (sqldb.Rows, error) {
	return nil, errors.New("fake tx: QueryRows not supported")
}

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return fmt.Errorf("fake row: %d targets for %d values", len(dest), len(r.values))
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int:
			*p = r.values[i].(int)
		case *float64:
			*p = r.values[i].(float64)
		case *string:
			*p = r.values[i].(string)
		default:
			return fmt.Errorf("fake row: unsupported scan target %T", d)
		}
	}
	return nil
}

func (t *fakeTx) QueryRow(ctx context.Context, query string, args ...any) sqldb.Row {
	switch {
	case strings.Contains(query, "FROM district"):
		row, ok := t.work.districts[[2]int{args[0].(int), args[1].(int)}]
		if !ok {
			return fakeRow{err: sqldb.ErrNoRows}
		}
		return fakeRow{values: []any{row.nextOrderID, row.tax}}
	case strings.Contains(query, "FROM customer"):
		row, ok := t.work.customers[[3]int{args[0].(int), args[1].(int), args[2].(int)}]
		if !ok {
			return fakeRow{err: sqldb.ErrNoRows}
		}
		return fakeRow{values: []any{row.discount, row.lastName, row.credit}}
	case strings.Contains(query, "FROM item"):
		row, ok := t.work.items[args[0].(int)]
		if !ok {
			return fakeRow{err: sqldb.ErrNoRows}
		}
		return fakeRow{values: []any{row.price, row.name, row.data}}
	case strings.Contains(query, "FROM stock"):
		row, ok := t.work.stocks[[2]int{args[0].(int), args[1].(int)}]
		if !ok {
			return fakeRow{err: sqldb.ErrNoRows}
		}
		return fakeRow{values: []any{row.quantity, row.ytd, row.orderCount, row.remoteOrderCount, row.distInfo}}
	}
	return fakeRow{err: fmt.Errorf("fake tx: unrecognized query %q", query)}
}

type fakeResult struct {
	rowsAffected int64
}

func (r fakeResult) RowsAffected() (int64, error) { return r.rowsAffected, nil }
func (r fakeResult) LastInsertId() (int64, error) { return 0, errors.New("not supported") }

func (t *fakeTx) Exec(ctx context.Context, query string, args ...any) (sqldb.Result, error) {
	switch {
	case strings.Contains(query, "UPDATE district"):
		key := [2]int{args[0].(int), args[1].(int)}
		row, ok := t.work.districts[key]
		if !ok {
			return fakeResult{rowsAffected: 0}, nil
		}
		row.nextOrderID++
		t.work.districts[key] = row
		return fakeResult{rowsAffected: 1}, nil

	case strings.Contains(query, "INSERT INTO orders"):
		t.work.orders = append(t.work.orders, orderRow{
			warehouseID: args[0].(int),
			districtID:  args[1].(int),
			orderID:     args[2].(int),
			customerID:  args[3].(int),
			entryDate:   args[4].(time.Time),
			carrierID:   args[5].(nullable.Int),
			lineCount:   args[6].(int),
			allLocal:    args[7].(bool),
		})
		return fakeResult{rowsAffected: 1}, nil

	case strings.Contains(query, "INSERT INTO new_order"):
		t.work.newOrders = append(t.work.newOrders,
			[3]int{args[0].(int), args[1].(int), args[2].(int)})
		return fakeResult{rowsAffected: 1}, nil

	case strings.Contains(query, "UPDATE stock"):
		key := [2]int{args[3].(int), args[4].(int)}
		row, ok := t.work.stocks[key]
		if !ok {
			return fakeResult{rowsAffected: 0}, nil
		}
		row.quantity = args[0].(int)
		row.ytd += args[1].(int)
		row.orderCount++
		row.remoteOrderCount += args[2].(int)
		t.work.stocks[key] = row
		return fakeResult{rowsAffected: 1}, nil

	case strings.Contains(query, "INSERT INTO order_line"):
		t.work.orderLines = append(t.work.orderLines, orderLineRow{
			warehouseID:       args[0].(int),
			districtID:        args[1].(int),
			orderID:           args[2].(int),
			lineNumber:        args[3].(int),
			itemID:            args[4].(int),
			supplyWarehouseID: args[5].(int),
			quantity:          args[6].(int),
			amount:            args[7].(float64),
			deliveryDate:      args[8].(nullable.Time),
			distInfo:          args[9].(string),
		})
		return fakeResult{rowsAffected: 1}, nil
	}

	if sqldb.Classify(query) == sqldb.StmtDDL {
		t.work.ddlLog = append(t.work.ddlLog, query)
		return fakeResult{rowsAffected: 0}, nil
	}
	return nil, fmt.Errorf("fake tx: unrecognized statement %q", query)
}

var _ sqldb.Tx = (*fakeTx)(nil)
