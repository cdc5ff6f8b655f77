package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Record is a stored row as column name -> value, as it comes out of a backend.
type Record map[string]any

func (r Record) intField(key string) (int64, bool, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return 0, false, nil
	}
	n, err := toInt64(v)
	if err != nil {
		return 0, false, fmt.Errorf("field %q: %w", key, err)
	}
	return n, true, nil
}

func (r Record) stringField(key string) string {
	switch v := r[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// without returns a copy of r minus the given keys, or nil when nothing is left.
func (r Record) without(keys ...string) map[string]any {
	out := make(map[string]any, len(r))
	for k, v := range r {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("value %d overflows int64", n)
		}
		return int64(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("value %v is not an integer", n)
		}
		return int64(n), nil
	case json.Number:
		return n.Int64()
	case string:
		return strconv.ParseInt(n, 10, 64)
	default:
		return 0, fmt.Errorf("unsupported integer type %T", v)
	}
}

func mergeFields(attrs map[string]any, core map[string]any) map[string]any {
	out := make(map[string]any, len(attrs)+len(core))
	for k, v := range attrs {
		out[k] = v
	}
	for k, v := range core {
		out[k] = v
	}
	return out
}
