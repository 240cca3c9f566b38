package internal

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
)

// KeyedReader is implemented by host values that expose named properties
// to templates without relying on reflection.
type KeyedReader interface {
	ReadKey(key string) (any, bool)
}

// Property resolver error messages
const (
	ErrMsgPropertyNotFound = "property not found"
	ErrMsgPropertyNilValue = "cannot read property of nil"
)

// Struct tag consulted when matching attribute names
const structTagJSON = "json"

// PropertyError reports a failed property read.
type PropertyError struct {
	Message string
	Key     any
	Value   any
}

// NewPropertyError creates a new property error
func NewPropertyError(message string, key, value any) *PropertyError {
	return &PropertyError{
		Message: message,
		Key:     key,
		Value:   value,
	}
}

// Error implements the error interface
func (e *PropertyError) Error() string {
	return fmt.Sprintf(ErrFmtPropertyLookup, e.Message, ToString(e.Key), e.Value)
}

// GetProperty reads key from value. Keyed and indexed access is attempted
// first (KeyedReader, maps, slices and arrays), then named attribute access
// (exported struct fields, json tag names and zero-argument methods).
func GetProperty(value any, key any) (any, error) {
	if value == nil || IsEmptyValue(value) {
		return nil, NewPropertyError(ErrMsgPropertyNilValue, key, value)
	}

	if result, ok := readKeyed(value, key); ok {
		return result, nil
	}
	if name, ok := key.(string); ok {
		if result, ok := readAttribute(value, name); ok {
			return result, nil
		}
	}
	return nil, NewPropertyError(ErrMsgPropertyNotFound, key, value)
}

// readKeyed handles the mapping and sequence shapes.
func readKeyed(value any, key any) (any, bool) {
	switch v := value.(type) {
	case KeyedReader:
		name, ok := key.(string)
		if !ok {
			return nil, false
		}
		return v.ReadKey(name)
	case map[string]any:
		name, ok := key.(string)
		if !ok {
			return nil, false
		}
		result, ok := v[name]
		return result, ok
	case map[string]string:
		name, ok := key.(string)
		if !ok {
			return nil, false
		}
		result, ok := v[name]
		return result, ok
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Map:
		kv := reflect.ValueOf(key)
		if !kv.IsValid() {
			return nil, false
		}
		keyType := rv.Type().Key()
		if !kv.Type().AssignableTo(keyType) {
			if !kv.Type().ConvertibleTo(keyType) || kv.Kind() != keyType.Kind() {
				return nil, false
			}
			kv = kv.Convert(keyType)
		}
		result := rv.MapIndex(kv)
		if !result.IsValid() {
			return nil, false
		}
		return result.Interface(), true
	case reflect.Slice, reflect.Array:
		idx, ok := numericValue(key)
		if !ok || !idx.isInt {
			return nil, false
		}
		i := idx.i
		if i < 0 {
			i += rv.Len()
		}
		if i < 0 || i >= rv.Len() {
			return nil, false
		}
		return rv.Index(i).Interface(), true
	default:
		return nil, false
	}
}

// readAttribute handles the structured-record shape.
func readAttribute(value any, name string) (any, bool) {
	rv := reflect.ValueOf(value)

	if method, ok := findMethod(rv, name); ok {
		return callAccessor(method)
	}

	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, false
	}

	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		if strings.EqualFold(field.Name, name) || jsonName(field) == name {
			return rv.Field(i).Interface(), true
		}
	}

	// Methods declared on the value receiver of an addressed struct
	if method, ok := findMethod(rv, name); ok {
		return callAccessor(method)
	}
	return nil, false
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

func findMethod(rv reflect.Value, name string) (reflect.Value, bool) {
	if !rv.IsValid() {
		return reflect.Value{}, false
	}
	method := rv.MethodByName(exportedName(name))
	if !method.IsValid() {
		return reflect.Value{}, false
	}
	mt := method.Type()
	if mt.NumIn() != 0 || mt.NumOut() == 0 || mt.NumOut() > 2 {
		return reflect.Value{}, false
	}
	if mt.NumOut() == 2 && !mt.Out(1).Implements(errorType) {
		return reflect.Value{}, false
	}
	return method, true
}

// callAccessor invokes a zero-argument method returning (value) or
// (value, error).
func callAccessor(method reflect.Value) (any, bool) {
	out := method.Call(nil)
	if len(out) == 2 && !out[1].IsNil() {
		return nil, false
	}
	return out[0].Interface(), true
}

func jsonName(field reflect.StructField) string {
	tag := field.Tag.Get(structTagJSON)
	if tag == "" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	return name
}

// exportedName turns "first_name" or "name" into "FirstName" or "Name".
func exportedName(name string) string {
	var sb strings.Builder
	upper := true
	for _, r := range name {
		if r == '_' || r == '-' {
			upper = true
			continue
		}
		if upper {
			sb.WriteRune(unicode.ToUpper(r))
			upper = false
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
