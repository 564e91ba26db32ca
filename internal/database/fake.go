package database

import (
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// FakeRow 實作 pgx.Row：依序把 Values 寫入 Scan 的目標
type FakeRow struct {
	Values []any
	Err    error
}

func (r FakeRow) Scan(dest ...any) error {
	if r.Err != nil {
		return r.Err
	}
	return assign(r.Values, dest)
}

// FakeRows 實作 pgx.Rows，每個元素是一列
type FakeRows struct {
	Data    [][]any
	ScanErr error
	IterErr error
	idx     int
	closed  bool
}

func (r *FakeRows) Close()                                       { r.closed = true }
func (r *FakeRows) Err() error                                   { return r.IterErr }
func (r *FakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *FakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *FakeRows) Values() ([]any, error)                       { return nil, nil }
func (r *FakeRows) RawValues() [][]byte                          { return nil }
func (r *FakeRows) Conn() *pgx.Conn                              { return nil }

// Closed 回報 Close 是否被呼叫過
func (r *FakeRows) Closed() bool { return r.closed }

func (r *FakeRows) Next() bool {
	if r.closed || r.idx >= len(r.Data) {
		return false
	}
	r.idx++
	return true
}

func (r *FakeRows) Scan(dest ...any) error {
	if r.ScanErr != nil {
		return r.ScanErr
	}
	return assign(r.Data[r.idx-1], dest)
}

func assign(values, dest []any) error {
	if len(values) != len(dest) {
		return fmt.Errorf("fake scan: %d values for %d destinations", len(values), len(dest))
	}
	for i, v := range values {
		target := reflect.ValueOf(dest[i]).Elem()
		src := reflect.ValueOf(v)
		if !src.Type().ConvertibleTo(target.Type()) {
			return fmt.Errorf("fake scan: column %d: cannot assign %T to %s", i, v, target.Type())
		}
		target.Set(src.Convert(target.Type()))
	}
	return nil
}
