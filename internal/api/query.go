package api

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
)

// Params maps query keys to primitive values: string, bool, any integer or
// float width, or a pointer to one of those. Nil values and nil pointers
// are skipped.
type Params map[string]any

// BuildQuery encodes params into a query string. It returns "" when no
// entry survives nil-filtering and "?k=v&..." otherwise. Keys are emitted
// in sorted order.
func BuildQuery(params Params) string {
	if len(params) == 0 {
		return ""
	}

	values := make(url.Values, len(params))

	for key, v := range params {
		s, ok := formatParam(v)
		if !ok {
			continue
		}

		values.Set(key, s)
	}

	if len(values) == 0 {
		return ""
	}

	return "?" + values.Encode()
}

// formatParam returns the canonical text for a primitive value and false
// for nil or a nil pointer.
func formatParam(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case int:
		return strconv.Itoa(x), true
	case int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(x).Int(), 10), true
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(x).Uint(), 10), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case fmt.Stringer:
		if rv := reflect.ValueOf(x); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return "", false
		}

		return x.String(), true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", false
		}

		return formatParam(rv.Elem().Interface())
	}

	return fmt.Sprint(v), true
}
