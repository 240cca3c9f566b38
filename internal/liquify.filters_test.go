package internal

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// newTestTable returns a table holding every built-in filter
func newTestTable(t *testing.T) *FilterTable {
	t.Helper()
	b := NewFilterTableBuilder(nil)
	RegisterBuiltinFilters(b)
	return b.Build()
}

// apply runs a filter and fails the test on error
func apply(t *testing.T, table *FilterTable, name string, base any, args ...any) any {
	t.Helper()
	got, err := table.Apply(name, base, args...)
	require.NoError(t, err)
	return got
}

func filterShoutLoud(base any, _ []any) (any, error) {
	return strings.ToUpper(ToString(base)) + "!", nil
}

func TestFilterTableBuilder_Register(t *testing.T) {
	b := NewFilterTableBuilder(nil)

	err := b.Register(&Filter{
		Name:    "double",
		MinArgs: 0,
		MaxArgs: 0,
		Fn:      func(base any, _ []any) (any, error) { return ToString(base) + ToString(base), nil },
	})
	require.NoError(t, err)

	table := b.Build()
	assert.True(t, table.Has("double"))
	assert.Equal(t, 1, table.Count())

	got, err := table.Apply("double", "ab")
	require.NoError(t, err)
	assert.Equal(t, "abab", got)
}

func TestFilterTableBuilder_Register_DerivedName(t *testing.T) {
	b := NewFilterTableBuilder(nil)
	require.NoError(t, b.Register(&Filter{Fn: filterShoutLoud}))

	table := b.Build()
	require.True(t, table.Has("shout_loud"))

	got, err := table.Apply("shout_loud", "hey")
	require.NoError(t, err)
	assert.Equal(t, "HEY!", got)
}

func TestFilterTableBuilder_Register_Errors(t *testing.T) {
	b := NewFilterTableBuilder(nil)

	t.Run("nil filter", func(t *testing.T) {
		err := b.Register(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgFilterNil)
	})

	t.Run("nil function", func(t *testing.T) {
		err := b.Register(&Filter{Name: "x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgFilterNil)
	})

	t.Run("closure without name", func(t *testing.T) {
		err := b.Register(&Filter{Fn: func(base any, _ []any) (any, error) { return base, nil }})
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgFilterEmptyName)
	})

	t.Run("closure nested in closure", func(t *testing.T) {
		wrap := func() FilterFunc {
			return func(base any, _ []any) (any, error) { return base, nil }
		}
		err := b.Register(&Filter{Fn: wrap()})
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgFilterEmptyName)
		assert.Empty(t, b.Build().Names())
	})
}

func TestIsNamedIdent(t *testing.T) {
	tests := []struct {
		ident string
		want  bool
	}{
		{"filterShoutLoud", true},
		{"functional", true},
		{"func", true},
		{"func1", false},
		{"func12", false},
		{"1", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.ident, func(t *testing.T) {
			assert.Equal(t, tt.want, isNamedIdent(tt.ident))
		})
	}
}

func TestFilterTableBuilder_LastWriteWins(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	b := NewFilterTableBuilder(zap.New(core))

	b.MustRegister(&Filter{Name: "v", Fn: func(any, []any) (any, error) { return 1, nil }})
	b.MustRegister(&Filter{Name: "v", Fn: func(any, []any) (any, error) { return 2, nil }})

	got, err := b.Build().Apply("v", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, got)
	assert.Equal(t, 1, logs.FilterMessage(LogMsgFilterOverwritten).Len())
}

func TestFilterTableBuilder_MustRegister_Panic(t *testing.T) {
	b := NewFilterTableBuilder(nil)
	assert.Panics(t, func() {
		b.MustRegister(nil)
	})
}

func TestFilterTableBuilder_AliasAndRemove(t *testing.T) {
	b := NewFilterTableBuilder(nil)
	RegisterBuiltinFilters(b)

	require.NoError(t, b.Alias("lower", FilterNameDowncase))
	b.Remove(FilterNameUpcase)
	b.Remove("never-registered")

	err := b.Alias("x", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgFilterNotFound)

	table := b.Build()
	assert.False(t, table.Has(FilterNameUpcase))

	got, err := table.Apply("lower", "ABC")
	require.NoError(t, err)
	assert.Equal(t, "abc", got)

	f, ok := table.Get("lower")
	require.True(t, ok)
	assert.Equal(t, "lower", f.Name)
}

func TestFilterTableBuilder_BuildIsSnapshot(t *testing.T) {
	b := NewFilterTableBuilder(nil)
	b.MustRegister(&Filter{Name: "a", Fn: filterShoutLoud})
	table := b.Build()

	b.MustRegister(&Filter{Name: "b", Fn: filterShoutLoud})
	assert.False(t, table.Has("b"))
	assert.Equal(t, []string{"a"}, table.Names())
}

func TestFilterTable_Apply_Errors(t *testing.T) {
	table := newTestTable(t)

	t.Run("unknown filter", func(t *testing.T) {
		_, err := table.Apply("nope", "x")
		require.Error(t, err)

		var filterErr *FilterError
		require.True(t, errors.As(err, &filterErr))
		assert.Equal(t, ErrMsgFilterNotFound, filterErr.Message)
		assert.Equal(t, "nope", filterErr.FilterName)
	})

	t.Run("too few arguments", func(t *testing.T) {
		_, err := table.Apply(FilterNameReplace, "x", "a")
		require.Error(t, err)

		var argErr *FilterArgError
		require.True(t, errors.As(err, &argErr))
		assert.Equal(t, ErrMsgFilterTooFewArgs, argErr.Message)
		assert.Equal(t, 2, argErr.Expected)
		assert.Equal(t, 1, argErr.Actual)
	})

	t.Run("too many arguments", func(t *testing.T) {
		_, err := table.Apply(FilterNameUpcase, "x", 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgFilterTooManyArgs)
	})

	t.Run("filter failure wraps cause", func(t *testing.T) {
		_, err := table.Apply(FilterNameDividedBy, 1, 0)
		require.Error(t, err)

		var execErr *FilterExecError
		require.True(t, errors.As(err, &execErr))
		assert.Equal(t, FilterNameDividedBy, execErr.FilterName)

		var arithErr *ArithmeticError
		assert.True(t, errors.As(err, &arithErr))
	})

	t.Run("type error names argument", func(t *testing.T) {
		_, err := table.Apply(FilterNameSlice, []any{1}, "x")
		require.Error(t, err)

		var typeErr *FilterTypeError
		require.True(t, errors.As(err, &typeErr))
		assert.Equal(t, ArgIndexFirst, typeErr.ArgIndex)
		assert.Equal(t, FilterNameSlice, typeErr.FilterName)
	})
}

func TestFilterTable_ConcurrentReads(t *testing.T) {
	table := newTestTable(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := table.Apply(FilterNamePlus, i, 1)
			assert.NoError(t, err)
			assert.Equal(t, i+1, got)
		}()
	}
	wg.Wait()
}

func TestRegisterBuiltinFilters_Names(t *testing.T) {
	table := newTestTable(t)

	for _, name := range []string{
		FilterNameFirst, FilterNameLast, FilterNameSize, FilterNameSlice, FilterNameSort,
		FilterNameCompact, FilterNameDefault, FilterNameDividedBy, FilterNameTruncate,
		FilterNameMD5, FilterNameSHA1, FilterNameSHA256, FilterNameHMACSHA1, FilterNameHMACSHA256,
		FilterNameEscapeOnce, FilterNameURLEncode, FilterNameURLDecode, FilterNameDate,
		FilterNameColorMix, FilterNameColorModify, FilterNameColorContrast,
	} {
		assert.True(t, table.Has(name), name)
	}
}
