package validators

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"
)

// indirect follows non-nil pointers and interfaces down to the held value.
func indirect(value any) any {
	for value != nil {
		rv := reflect.ValueOf(value)
		if rv.Kind() != reflect.Pointer && rv.Kind() != reflect.Interface {
			return value
		}
		if rv.IsNil() {
			return nil
		}
		value = rv.Elem().Interface()
	}
	return nil
}

// IsAbsent reports whether value counts as "not supplied": nil, nil pointers,
// nil slices/maps, "", false, numeric zero and NaN.
func IsAbsent(value any) bool {
	value = indirect(value)
	if value == nil {
		return true
	}
	if n, ok := value.(json.Number); ok {
		f, err := n.Float64()
		return n == "" || (err == nil && (f == 0 || math.IsNaN(f)))
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Bool:
		return !rv.Bool()
	case reflect.String:
		return rv.Len() == 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f == 0 || math.IsNaN(f)
	case reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// isNumericZero reports whether value is a number equal to zero.
func isNumericZero(value any) bool {
	value = indirect(value)
	if n, ok := value.(json.Number); ok {
		f, err := n.Float64()
		return err == nil && f == 0
	}
	if value == nil {
		return false
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() == 0
	}
	return false
}

func isBool(value any) (bool, bool) {
	value = indirect(value)
	if value == nil {
		return false, false
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Bool {
		return false, false
	}
	return rv.Bool(), true
}

// lengthOf returns the rune count of strings and the element count of
// collections. ok is false for values that carry no length.
func lengthOf(value any) (n int, ok bool) {
	value = indirect(value)
	if value == nil {
		return 0, false
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String:
		return utf8.RuneCountInString(rv.String()), true
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		return rv.Len(), true
	}
	return 0, false
}

// IsNumeric reports whether value coerces to a number the way a browser's
// Number() does: numbers, bools and numeric strings qualify, NaN does not.
func IsNumeric(value any) bool {
	value = indirect(value)
	if value == nil {
		return false
	}
	if n, ok := value.(json.Number); ok {
		return isNumericString(string(n))
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	case reflect.Float32, reflect.Float64:
		return !math.IsNaN(rv.Float())
	case reflect.String:
		return isNumericString(rv.String())
	case reflect.Slice, reflect.Array:
		// [] coerces to 0 and [x] to Number(x); longer lists are NaN.
		switch rv.Len() {
		case 0:
			return true
		case 1:
			elem := rv.Index(0).Interface()
			if elem == nil {
				return true
			}
			return IsNumeric(elem)
		}
	}
	return false
}

func isNumericString(raw string) bool {
	s := strings.TrimSpace(raw)
	if s == "" {
		return true
	}
	switch s {
	case "Infinity", "+Infinity", "-Infinity":
		return true
	}
	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			_, err := strconv.ParseUint(s[2:], base, 64)
			return err == nil || errors.Is(err, strconv.ErrRange)
		}
	}
	lower := strings.ToLower(s)
	if strings.Contains(lower, "inf") || strings.Contains(lower, "nan") || strings.ContainsAny(s, "_xXpP") {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil || errors.Is(err, strconv.ErrRange)
}
