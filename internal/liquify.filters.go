package internal

import (
	"fmt"
	"reflect"
	"runtime"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"
)

// FilterFunc transforms a piped base value using positional arguments.
type FilterFunc func(base any, args []any) (any, error)

// Filter represents a named filter callable from template expressions.
// MinArgs and MaxArgs count positional arguments, not the base value.
type Filter struct {
	Name    string
	MinArgs int
	MaxArgs int // -1 for variadic
	Fn      FilterFunc
}

// FilterTableBuilder collects filters during initialisation. It is not safe
// for concurrent use; Build freezes its contents into a FilterTable.
type FilterTableBuilder struct {
	filters map[string]*Filter
	logger  *zap.Logger
}

// NewFilterTableBuilder creates an empty builder
func NewFilterTableBuilder(logger *zap.Logger) *FilterTableBuilder {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgBuilderCreated)

	return &FilterTableBuilder{
		filters: make(map[string]*Filter),
		logger:  logger,
	}
}

// Register stores a filter under its name. When Name is empty the name is
// derived from the Go identifier of Fn (filterSortNatural -> sort_natural).
// Registering an existing name overwrites it.
func (b *FilterTableBuilder) Register(f *Filter) error {
	if f == nil || f.Fn == nil {
		return NewFilterError(ErrMsgFilterNil, "")
	}
	name := f.Name
	if name == "" {
		name = filterIdentifier(f.Fn)
		if name == "" {
			return NewFilterError(ErrMsgFilterEmptyName, "")
		}
	}

	stored := *f
	stored.Name = name

	if _, exists := b.filters[name]; exists {
		b.logger.Debug(LogMsgFilterOverwritten, zap.String(LogFieldFilter, name))
	} else {
		b.logger.Debug(LogMsgFilterRegistered, zap.String(LogFieldFilter, name))
	}
	b.filters[name] = &stored
	return nil
}

// MustRegister adds a filter and panics on error
func (b *FilterTableBuilder) MustRegister(f *Filter) {
	if err := b.Register(f); err != nil {
		panic(err)
	}
}

// Alias registers alias as another name for an already registered filter.
func (b *FilterTableBuilder) Alias(alias, target string) error {
	if alias == "" {
		return NewFilterError(ErrMsgFilterEmptyName, target)
	}
	f, ok := b.filters[target]
	if !ok {
		return NewFilterError(ErrMsgFilterNotFound, target)
	}
	aliased := *f
	aliased.Name = alias
	b.filters[alias] = &aliased
	b.logger.Debug(LogMsgFilterAliased, zap.String(LogFieldAlias, alias), zap.String(LogFieldFilter, target))
	return nil
}

// Remove drops a filter. Removing an unknown name is a no-op.
func (b *FilterTableBuilder) Remove(name string) {
	if _, ok := b.filters[name]; ok {
		delete(b.filters, name)
		b.logger.Debug(LogMsgFilterRemoved, zap.String(LogFieldFilter, name))
	}
}

// Build returns an immutable table holding a snapshot of the registered
// filters. The builder may keep being used afterwards without affecting the
// table.
func (b *FilterTableBuilder) Build() *FilterTable {
	filters := make(map[string]*Filter, len(b.filters))
	for name, f := range b.filters {
		filters[name] = f
	}
	b.logger.Debug(LogMsgTableBuilt, zap.Int(LogFieldCount, len(filters)))
	return &FilterTable{filters: filters}
}

// FilterTable is a read-only name to filter lookup. Safe for concurrent
// readers.
type FilterTable struct {
	filters map[string]*Filter
}

// Get retrieves a filter by name
func (t *FilterTable) Get(name string) (*Filter, bool) {
	f, ok := t.filters[name]
	return f, ok
}

// Has checks if a filter is registered
func (t *FilterTable) Has(name string) bool {
	_, ok := t.filters[name]
	return ok
}

// Names returns all registered filter names in sorted order
func (t *FilterTable) Names() []string {
	names := make([]string, 0, len(t.filters))
	for name := range t.filters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered filters
func (t *FilterTable) Count() int {
	return len(t.filters)
}

// Apply invokes the named filter with base and args. The filter result is
// returned unchanged, Empty included.
func (t *FilterTable) Apply(name string, base any, args ...any) (any, error) {
	f, ok := t.filters[name]
	if !ok {
		err := NewFilterError(ErrMsgFilterNotFound, name)
		err.Suggestions = SimilarNames(name, t.Names(), MaxFilterSuggestions)
		return nil, err
	}

	argCount := len(args)
	if argCount < f.MinArgs {
		return nil, NewFilterArgError(ErrMsgFilterTooFewArgs, name, f.MinArgs, argCount)
	}
	if f.MaxArgs >= 0 && argCount > f.MaxArgs {
		return nil, NewFilterArgError(ErrMsgFilterTooManyArgs, name, f.MaxArgs, argCount)
	}

	result, err := f.Fn(base, args)
	if err != nil {
		return nil, NewFilterExecError(name, err)
	}
	return result, nil
}

// filterIdentifier derives a snake_case filter name from a function's Go
// identifier, dropping a leading "filter" prefix. Closures yield "".
func filterIdentifier(fn FilterFunc) string {
	rf := runtime.FuncForPC(reflect.ValueOf(fn).Pointer())
	if rf == nil {
		return ""
	}
	full := rf.Name()
	ident := strings.TrimSuffix(full[strings.LastIndex(full, ".")+1:], "-fm")
	if !isNamedIdent(ident) {
		return ""
	}
	ident = strings.TrimPrefix(ident, filterIdentPrefix)

	var sb strings.Builder
	for i, r := range ident {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// isNamedIdent rejects the compiler's closure names: "func1", and the bare
// counters of closures nested inside closures ("func1.1").
func isNamedIdent(ident string) bool {
	if ident == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(ident)
	if !unicode.IsLetter(first) {
		return false
	}
	rest, ok := strings.CutPrefix(ident, closureIdentPrefix)
	if !ok || rest == "" {
		return true
	}
	return strings.TrimLeft(rest, closureIdentDigits) != ""
}

// Identifier handling for derived filter names
const (
	filterIdentPrefix  = "filter"
	closureIdentPrefix = "func"
	closureIdentDigits = "0123456789"
)

// FilterError represents a filter lookup or registration error
type FilterError struct {
	Message     string
	FilterName  string
	Suggestions []string
}

// NewFilterError creates a new filter error
func NewFilterError(message, filterName string) *FilterError {
	return &FilterError{
		Message:    message,
		FilterName: filterName,
	}
}

// Error implements the error interface
func (e *FilterError) Error() string {
	if e.FilterName != "" {
		return fmt.Sprintf(ErrFmtTagMessage, e.Message, e.FilterName) + FormatSuggestions(e.Suggestions)
	}
	return e.Message
}

// FilterArgError represents an argument count error
type FilterArgError struct {
	Message    string
	FilterName string
	Expected   int
	Actual     int
}

// NewFilterArgError creates a new filter argument error
func NewFilterArgError(message, filterName string, expected, actual int) *FilterArgError {
	return &FilterArgError{
		Message:    message,
		FilterName: filterName,
		Expected:   expected,
		Actual:     actual,
	}
}

// Error implements the error interface
func (e *FilterArgError) Error() string {
	return fmt.Sprintf(ErrFmtFilterArgCount, e.Message, e.FilterName, e.Expected, e.Actual)
}

// FilterTypeError represents a type error in a filter's base or arguments
type FilterTypeError struct {
	Message    string
	FilterName string
	ArgIndex   int
}

// NewFilterTypeError creates a new filter type error
func NewFilterTypeError(message, filterName string, argIndex int) *FilterTypeError {
	return &FilterTypeError{
		Message:    message,
		FilterName: filterName,
		ArgIndex:   argIndex,
	}
}

// Error implements the error interface
func (e *FilterTypeError) Error() string {
	return fmt.Sprintf(ErrFmtFilterArgType, e.Message, e.FilterName, e.ArgIndex)
}

// FilterExecError wraps a failure raised inside a filter
type FilterExecError struct {
	FilterName string
	Cause      error
}

// NewFilterExecError creates a new filter execution error
func NewFilterExecError(filterName string, cause error) *FilterExecError {
	return &FilterExecError{
		FilterName: filterName,
		Cause:      cause,
	}
}

// Error implements the error interface
func (e *FilterExecError) Error() string {
	return fmt.Sprintf(ErrFmtFilterFailed, e.FilterName, e.Cause)
}

// Unwrap returns the underlying error
func (e *FilterExecError) Unwrap() error {
	return e.Cause
}

// Filter error messages
const (
	ErrMsgFilterNil                 = "filter and its function cannot be nil"
	ErrMsgFilterEmptyName           = "filter name cannot be empty"
	ErrMsgFilterNotFound            = "unknown filter"
	ErrMsgFilterTooFewArgs          = "too few arguments"
	ErrMsgFilterTooManyArgs         = "too many arguments"
	ErrMsgFilterExpectedString      = "expected string argument"
	ErrMsgFilterExpectedSlice       = "expected slice or array argument"
	ErrMsgFilterExpectedNumber      = "expected numeric argument"
	ErrMsgFilterExpectedInteger     = "expected integer argument"
	ErrMsgFilterExpectedColorFormat = "expected color format hex, rgb or hsl"
	ErrMsgFilterNotComparable       = "values are not comparable"
)

// RegisterBuiltinFilters registers all built-in filters with the builder
func RegisterBuiltinFilters(b *FilterTableBuilder) {
	registerStringFilters(b)
	registerCollectionFilters(b)
	registerMathFilters(b)
	registerHashFilters(b)
	registerDateFilters(b)
	registerColorFilters(b)
}

// stringArg reads a required positional text argument
func stringArg(args []any, pos int, filterName string) (string, error) {
	s, ok := toText(args[pos])
	if !ok {
		return "", NewFilterTypeError(ErrMsgFilterExpectedString, filterName, pos+ArgIndexFirst)
	}
	return s, nil
}

// optionalStringArg reads a text argument, falling back to def when absent
func optionalStringArg(args []any, pos int, def, filterName string) (string, error) {
	if len(args) <= pos {
		return def, nil
	}
	return stringArg(args, pos, filterName)
}

// intArg reads a required integer argument
func intArg(args []any, pos int, filterName string) (int, error) {
	n, ok := toNumber(args[pos])
	if !ok {
		return 0, NewFilterTypeError(ErrMsgFilterExpectedInteger, filterName, pos+ArgIndexFirst)
	}
	return n.i, nil
}

// numberArg reads a required numeric argument
func numberArg(args []any, pos int, filterName string) (number, error) {
	n, ok := toNumber(args[pos])
	if !ok {
		return number{}, NewFilterTypeError(ErrMsgFilterExpectedNumber, filterName, pos+ArgIndexFirst)
	}
	return n, nil
}

// textBase reads the base value as text
func textBase(base any, filterName string) (string, error) {
	s, ok := toText(base)
	if !ok {
		return "", NewFilterTypeError(ErrMsgFilterExpectedString, filterName, ArgIndexBase)
	}
	return s, nil
}

// sequenceBase reads the base value as a sequence
func sequenceBase(base any, filterName string) ([]any, error) {
	seq, ok := toSequence(base)
	if !ok {
		return nil, NewFilterTypeError(ErrMsgFilterExpectedSlice, filterName, ArgIndexBase)
	}
	return seq, nil
}
