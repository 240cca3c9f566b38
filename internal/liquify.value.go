package internal

import (
	"fmt"
	"iter"
	"reflect"
	"strconv"
	"strings"
)

// Empty is the "no result" value returned by filters that have nothing to
// produce. It renders as empty text, is falsy, and equals every other
// falsy value while never equalling a truthy one.
type Empty struct{}

// String implements fmt.Stringer.
func (Empty) String() string {
	return StringValueEmpty
}

// Equal reports whether other is falsy.
func (Empty) Equal(other any) bool {
	return !IsTruthy(other)
}

// MarshalJSON renders Empty as JSON null.
func (Empty) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// IsEmptyValue reports whether v is the Empty sentinel.
func IsEmptyValue(v any) bool {
	switch v.(type) {
	case Empty, *Empty:
		return true
	default:
		return false
	}
}

// IsTruthy determines the truthiness of a value
// Truthiness rules:
// - nil, Empty -> false
// - bool -> value
// - string -> len(s) > 0
// - numbers -> n != 0
// - slice/array/map -> len(x) > 0
func IsTruthy(v any) bool {
	if v == nil || IsEmptyValue(v) {
		return false
	}
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return len(val) > 0
	case int:
		return val != 0
	case int64:
		return val != 0
	case float64:
		return val != 0
	case []any:
		return len(val) > 0
	case []string:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Slice, reflect.Array, reflect.Map, reflect.String:
			return rv.Len() > 0
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return rv.Int() != 0
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return rv.Uint() != 0
		case reflect.Float32, reflect.Float64:
			return rv.Float() != 0
		case reflect.Ptr, reflect.Interface:
			return !rv.IsNil()
		default:
			return true
		}
	}
}

// ToString converts any value to its display text. Empty and nil render
// as empty text.
func ToString(v any) string {
	if v == nil {
		return StringValueEmpty
	}
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return StringValueTrue
		}
		return StringValueFalse
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, IntBase10)
	case float64:
		return strconv.FormatFloat(val, FloatFormatFlag, FloatPrecisionAll, FloatBitSize64)
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = ToString(item)
		}
		return strings.Join(parts, StringValueEmpty)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

// toText converts a scalar to text. Sequences and maps are rejected.
func toText(v any) (string, bool) {
	if v == nil {
		return StringValueEmpty, true
	}
	switch val := v.(type) {
	case string:
		return val, true
	case []byte:
		return string(val), true
	case fmt.Stringer:
		return val.String(), true
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return ToString(val), true
	default:
		return StringValueEmpty, false
	}
}

// number is a numeric value that remembers whether it was integral.
type number struct {
	i     int
	f     float64
	isInt bool
}

func intNumber(i int) number {
	return number{i: i, f: float64(i), isInt: true}
}

func floatNumber(f float64) number {
	return number{i: int(f), f: f}
}

// value returns the number as int or float64.
func (n number) value() any {
	if n.isInt {
		return n.i
	}
	return n.f
}

// numericValue extracts a number from native numeric kinds only.
func numericValue(v any) (number, bool) {
	switch val := v.(type) {
	case int:
		return intNumber(val), true
	case int64:
		return intNumber(int(val)), true
	case float64:
		return floatNumber(val), true
	case bool, nil:
		return number{}, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return intNumber(int(rv.Int())), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return intNumber(int(rv.Uint())), true
	case reflect.Float32, reflect.Float64:
		return floatNumber(rv.Float()), true
	default:
		return number{}, false
	}
}

// toNumber extracts a number from numeric kinds or numeric text.
func toNumber(v any) (number, bool) {
	if n, ok := numericValue(v); ok {
		return n, true
	}
	s, ok := v.(string)
	if !ok {
		return number{}, false
	}
	s = strings.TrimSpace(s)
	if i, err := strconv.Atoi(s); err == nil {
		return intNumber(i), true
	}
	if f, err := strconv.ParseFloat(s, FloatBitSize64); err == nil {
		return floatNumber(f), true
	}
	return number{}, false
}

// toInt converts a value to an int, truncating floats.
func toInt(v any) (int, bool) {
	n, ok := toNumber(v)
	if !ok {
		return 0, false
	}
	return n.i, true
}

// toFloat converts a value to a float64.
func toFloat(v any) (float64, bool) {
	n, ok := toNumber(v)
	if !ok {
		return 0, false
	}
	return n.f, true
}

// toSequence converts the supported sequence shapes to []any. nil and
// Empty are empty sequences. Strings are not sequences here.
func toSequence(v any) ([]any, bool) {
	if v == nil || IsEmptyValue(v) {
		return nil, true
	}
	switch val := v.(type) {
	case []any:
		return val, true
	case []string:
		result := make([]any, len(val))
		for i, s := range val {
			result[i] = s
		}
		return result, true
	case []int:
		result := make([]any, len(val))
		for i, n := range val {
			result[i] = n
		}
		return result, true
	case []float64:
		result := make([]any, len(val))
		for i, n := range val {
			result[i] = n
		}
		return result, true
	case []map[string]any:
		result := make([]any, len(val))
		for i, m := range val {
			result[i] = m
		}
		return result, true
	case iter.Seq[any]:
		var result []any
		for item := range val {
			result = append(result, item)
		}
		return result, true
	case string:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	result := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		result[i] = rv.Index(i).Interface()
	}
	return result, true
}

// runesToSequence splits text into single-character strings.
func runesToSequence(s string) []any {
	runes := []rune(s)
	result := make([]any, len(runes))
	for i, r := range runes {
		result[i] = string(r)
	}
	return result
}

// valuesEqual compares two values by value. Numbers compare numerically
// across int and float kinds.
func valuesEqual(a, b any) bool {
	if IsEmptyValue(a) {
		return Empty{}.Equal(b)
	}
	if IsEmptyValue(b) {
		return Empty{}.Equal(a)
	}
	na, aok := numericValue(a)
	nb, bok := numericValue(b)
	if aok && bok {
		return na.f == nb.f
	}
	return reflect.DeepEqual(a, b)
}
