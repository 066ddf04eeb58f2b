package utils

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// ParseDuration safely parses duration strings like "5m".
func ParseDuration(d string) time.Duration {
	if d == "" {
		return 5 * time.Minute
	}
	duration, err := time.ParseDuration(d)
	if err != nil {
		return 5 * time.Minute
	}
	return duration
}

// ParseValue re-types a delimited-text cell: int, then float, else string.
func ParseValue(s string) interface{} {
	// Trim whitespace first
	s = strings.TrimSpace(s)

	// try int
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	// try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// Numeric safely converts supported types to float64.
func Numeric(v interface{}) float64 {
	switch val := v.(type) {
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case float64:
		return val
	case float32:
		return float64(val)
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() >= reflect.Int && rv.Kind() <= reflect.Float64 {
			return rv.Convert(reflect.TypeOf(float64(0))).Float()
		}
		return 0
	}
}

// IsNumeric reports whether v is one of the numeric scalar types a record
// cell can hold.
func IsNumeric(v interface{}) bool {
	switch v.(type) {
	case int, int64, float32, float64:
		return true
	}
	return false
}

// CanonicalValue renders a scalar into a type-prefixed key so that the
// same logical value compares equal no matter whether it arrived as an
// int from CSV parsing or a float64 from JSON decoding.
func CanonicalValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return "s:" + val
	case bool:
		return "b:" + strconv.FormatBool(val)
	case nil:
		return "nil"
	default:
		if IsNumeric(v) {
			return "n:" + strconv.FormatFloat(Numeric(v), 'g', -1, 64)
		}
		return fmt.Sprintf("x:%v", v)
	}
}

// LessValue orders two scalars: numerics numerically, strings lexically.
// Mixed types fall back to comparing canonical forms, which keeps sorting
// total and deterministic.
func LessValue(a, b interface{}) bool {
	if IsNumeric(a) && IsNumeric(b) {
		return Numeric(a) < Numeric(b)
	}
	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		return as < bs
	}
	return CanonicalValue(a) < CanonicalValue(b)
}

// FormatCell renders a scalar for a delimited-text cell.
func FormatCell(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case int:
		return strconv.Itoa(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
