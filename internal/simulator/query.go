package simulator

import (
	"fmt"
	"strings"
	"time"
)

// Eq is an equality filter on a single column.
type Eq struct {
	Column string
	Value  any
}

func Where(column string, value any) Eq {
	return Eq{Column: column, Value: value}
}

// Order sorts by a column's natural order. Ascending unless Descending is set.
type Order struct {
	Column     string
	Descending bool
}

// Query is a select. Filters are ANDed; a zero Limit means no limit.
type Query struct {
	Filters []Eq
	Order   *Order
	Limit   int
}

func normalize(v any) any {
	switch t := v.(type) {
	case *string:
		if t == nil {
			return nil
		}
		return *t
	case int:
		return int64(t)
	case int32:
		return int64(t)
	case *time.Time:
		if t == nil {
			return nil
		}
		return *t
	}
	return v
}

func equal(a, b any) bool {
	a, b = normalize(a), normalize(b)
	if at, ok := a.(time.Time); ok {
		bt, ok := b.(time.Time)
		return ok && at.Equal(bt)
	}
	switch a.(type) {
	case nil, string, bool, int64, float64:
		return a == b
	}
	return false
}

// compare orders nil first, then by natural order within a type.
func compare(a, b any) int {
	a, b = normalize(a), normalize(b)
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	switch at := a.(type) {
	case string:
		if bt, ok := b.(string); ok {
			return strings.Compare(at, bt)
		}
	case time.Time:
		if bt, ok := b.(time.Time); ok {
			return at.Compare(bt)
		}
	case int64:
		if bt, ok := b.(int64); ok {
			switch {
			case at < bt:
				return -1
			case at > bt:
				return 1
			}
			return 0
		}
	case bool:
		if bt, ok := b.(bool); ok {
			switch {
			case at == bt:
				return 0
			case !at:
				return -1
			}
			return 1
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func indexKey(v any) string {
	v = normalize(v)
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
