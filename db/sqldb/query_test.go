package sqldb

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type labelRecord struct {
	ID    int
	Label string
}

func (r *labelRecord) TargetFields() []any {
	return []any{&r.ID, &r.Label}
}

// sliceRows serves canned rows of (int, string) pairs.
type sliceRows struct {
	data    [][]any
	pos     int
	scanErr error
	iterErr error
}

func (r *sliceRows) Next() bool {
	if r.pos >= len(r.data) {
		return false
	}
	r.pos++
	return true
}

func (r *sliceRows) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	row := r.data[r.pos-1]
	if len(dest) != len(row) {
		return errors.New("target count mismatch")
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int:
			*p = row[i].(int)
		case *string:
			*p = row[i].(string)
		}
	}
	return nil
}

func (r *sliceRows) Close() error { return nil }
func (r *sliceRows) Err() error   { return r.iterErr }

type sliceRow struct {
	rows *sliceRows
}

func (r sliceRow) Scan(dest ...any) error {
	if !r.rows.Next() {
		return ErrNoRows
	}
	return r.rows.Scan(dest...)
}

type stubReader struct {
	rows *sliceRows
}

func (s *stubReader) QueryRows(ctx context.Context, query string, args ...any) (Rows, error) {
	return s.rows, nil
}

func (s *stubReader) QueryRow(ctx context.Context, query string, args ...any) Row {
	return sliceRow{rows: s.rows}
}

var _ Reader = (*stubReader)(nil)

func TestQueryItem(t *testing.T) {
	reader := &stubReader{rows: &sliceRows{data: [][]any{{7, "seven"}}}}

	item, err := QueryItem[labelRecord, *labelRecord](context.Background(), reader, "SELECT id, label FROM labels WHERE id = $1", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, item.ID)
	assert.Equal(t, "seven", item.Label)
}

func TestQueryItemNoRows(t *testing.T) {
	reader := &stubReader{rows: &sliceRows{}}

	_, err := QueryItem[labelRecord, *labelRecord](context.Background(), reader, "SELECT id, label FROM labels WHERE id = $1", 404)
	require.ErrorIs(t, err, ErrNoRows)
}

func TestQueryItems(t *testing.T) {
	reader := &stubReader{rows: &sliceRows{data: [][]any{
		{1, "one"},
		{2, "two"},
		{3, "three"},
	}}}

	items, err := QueryItems[labelRecord, *labelRecord](context.Background(), reader, "SELECT id, label FROM labels")
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "one", items[0].Label)
	assert.Equal(t, 3, items[2].ID)
}

func TestRowsToItemsEmpty(t *testing.T) {
	items, err := RowsToItems[labelRecord, *labelRecord](&sliceRows{})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRowsToItemsErrors(t *testing.T) {
	_, err := RowsToItems[labelRecord, *labelRecord](&sliceRows{
		data:    [][]any{{1, "one"}},
		scanErr: errors.New("bad column"),
	})
	require.Error(t, err)

	_, err = RowsToItems[labelRecord, *labelRecord](&sliceRows{
		iterErr: errors.New("connection dropped"),
	})
	require.Error(t, err)
}
