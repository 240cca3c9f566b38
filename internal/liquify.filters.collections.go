package internal

import (
	"reflect"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// Collection filter names
const (
	FilterNameFirst       = "first"
	FilterNameLast        = "last"
	FilterNameSize        = "size"
	FilterNameIndex       = "index"
	FilterNameReverse     = "reverse"
	FilterNameSort        = "sort"
	FilterNameSortNatural = "sort_natural"
	FilterNameUniq        = "uniq"
	FilterNameCompact     = "compact"
	FilterNameSlice       = "slice"
	FilterNameJoin        = "join"
	FilterNameConcat      = "concat"
	FilterNameMap         = "map"
	FilterNameWhere       = "where"
)

// Default slice length when none is given
const DefaultSliceLength = 1

// registerCollectionFilters registers sequence manipulation filters
func registerCollectionFilters(b *FilterTableBuilder) {
	// first(base) any - first element or character, Empty when there is none
	b.MustRegister(&Filter{
		Name:    FilterNameFirst,
		MinArgs: 0,
		MaxArgs: 0,
		Fn: func(base any, _ []any) (any, error) {
			if !IsTruthy(base) {
				return Empty{}, nil
			}
			if s, ok := base.(string); ok {
				r, _ := utf8.DecodeRuneInString(s)
				return string(r), nil
			}
			seq, err := sequenceBase(base, FilterNameFirst)
			if err != nil {
				return nil, err
			}
			return seq[0], nil
		},
	})

	// last(base) any - last element or character, Empty when there is none
	b.MustRegister(&Filter{
		Name:    FilterNameLast,
		MinArgs: 0,
		MaxArgs: 0,
		Fn: func(base any, _ []any) (any, error) {
			if !IsTruthy(base) {
				return Empty{}, nil
			}
			if s, ok := base.(string); ok {
				r, _ := utf8.DecodeLastRuneInString(s)
				return string(r), nil
			}
			seq, err := sequenceBase(base, FilterNameLast)
			if err != nil {
				return nil, err
			}
			return seq[len(seq)-1], nil
		},
	})

	b.MustRegister(&Filter{Name: FilterNameSize, MinArgs: 0, MaxArgs: 0, Fn: filterSize})
	b.MustRegister(&Filter{Name: FilterNameIndex, MinArgs: 1, MaxArgs: 1, Fn: filterIndex})

	// reverse(base) []any
	b.MustRegister(&Filter{
		Name:    FilterNameReverse,
		MinArgs: 0,
		MaxArgs: 0,
		Fn: func(base any, _ []any) (any, error) {
			if !IsTruthy(base) {
				return Empty{}, nil
			}
			var seq []any
			if s, ok := base.(string); ok {
				seq = runesToSequence(s)
			} else {
				var err error
				if seq, err = sequenceBase(base, FilterNameReverse); err != nil {
					return nil, err
				}
			}
			result := make([]any, len(seq))
			for i, item := range seq {
				result[len(seq)-1-i] = item
			}
			return result, nil
		},
	})

	// sort(base) []any - natural ordering
	b.MustRegister(&Filter{
		Name:    FilterNameSort,
		MinArgs: 0,
		MaxArgs: 0,
		Fn: func(base any, _ []any) (any, error) {
			return sortSequence(base, FilterNameSort, compareValues)
		},
	})

	// sort_natural(base) []any - case-insensitive on strings
	b.MustRegister(&Filter{
		Name:    FilterNameSortNatural,
		MinArgs: 0,
		MaxArgs: 0,
		Fn: func(base any, _ []any) (any, error) {
			fold := cases.Fold()
			return sortSequence(base, FilterNameSortNatural, func(a, b any) (int, error) {
				sa, aok := a.(string)
				sb, bok := b.(string)
				if aok && bok {
					return strings.Compare(fold.String(sa), fold.String(sb)), nil
				}
				return compareValues(a, b)
			})
		},
	})

	// uniq(base) []any - first-seen order, equality by value
	b.MustRegister(&Filter{
		Name:    FilterNameUniq,
		MinArgs: 0,
		MaxArgs: 0,
		Fn: func(base any, _ []any) (any, error) {
			if !IsTruthy(base) {
				return Empty{}, nil
			}
			seq, err := sequenceBase(base, FilterNameUniq)
			if err != nil {
				return nil, err
			}
			result := make([]any, 0, len(seq))
			for _, item := range seq {
				if !containsValue(result, item) {
					result = append(result, item)
				}
			}
			return result, nil
		},
	})

	// compact(base) []any - drops falsy elements
	b.MustRegister(&Filter{
		Name:    FilterNameCompact,
		MinArgs: 0,
		MaxArgs: 0,
		Fn: func(base any, _ []any) (any, error) {
			seq, err := sequenceBase(base, FilterNameCompact)
			if err != nil {
				return nil, err
			}
			result := make([]any, 0, len(seq))
			for _, item := range seq {
				if IsTruthy(item) {
					result = append(result, item)
				}
			}
			if len(result) == 0 {
				return Empty{}, nil
			}
			return result, nil
		},
	})

	b.MustRegister(&Filter{Name: FilterNameSlice, MinArgs: 1, MaxArgs: 2, Fn: filterSlice})

	// join(base, sep=" ") string
	b.MustRegister(&Filter{
		Name:    FilterNameJoin,
		MinArgs: 0,
		MaxArgs: 1,
		Fn: func(base any, args []any) (any, error) {
			sep, err := optionalStringArg(args, 0, StringValueSpace, FilterNameJoin)
			if err != nil {
				return nil, err
			}
			seq, err := sequenceBase(base, FilterNameJoin)
			if err != nil {
				return nil, err
			}
			parts := make([]string, len(seq))
			for i, item := range seq {
				parts[i] = ToString(item)
			}
			return strings.Join(parts, sep), nil
		},
	})

	// concat(base, other) []any
	b.MustRegister(&Filter{
		Name:    FilterNameConcat,
		MinArgs: 1,
		MaxArgs: 1,
		Fn: func(base any, args []any) (any, error) {
			left, err := sequenceBase(base, FilterNameConcat)
			if err != nil {
				return nil, err
			}
			right, ok := toSequence(args[0])
			if !ok {
				return nil, NewFilterTypeError(ErrMsgFilterExpectedSlice, FilterNameConcat, ArgIndexFirst)
			}
			result := make([]any, 0, len(left)+len(right))
			result = append(result, left...)
			return append(result, right...), nil
		},
	})

	// map(base, key) []any - projects key across every element
	b.MustRegister(&Filter{
		Name:    FilterNameMap,
		MinArgs: 1,
		MaxArgs: 1,
		Fn: func(base any, args []any) (any, error) {
			seq, err := sequenceBase(base, FilterNameMap)
			if err != nil {
				return nil, err
			}
			result := make([]any, len(seq))
			for i, item := range seq {
				value, err := GetProperty(item, args[0])
				if err != nil {
					return nil, err
				}
				result[i] = value
			}
			return result, nil
		},
	})

	// where(base, key, value?) []any - keeps elements whose key equals value,
	// or whose key is truthy when value is omitted
	b.MustRegister(&Filter{
		Name:    FilterNameWhere,
		MinArgs: 1,
		MaxArgs: 2,
		Fn: func(base any, args []any) (any, error) {
			seq, err := sequenceBase(base, FilterNameWhere)
			if err != nil {
				return nil, err
			}
			result := make([]any, 0, len(seq))
			for _, item := range seq {
				value, err := GetProperty(item, args[0])
				if err != nil {
					return nil, err
				}
				matched := IsTruthy(value)
				if len(args) > 1 {
					matched = valuesEqual(value, args[1])
				}
				if matched {
					result = append(result, item)
				}
			}
			if len(result) == 0 {
				return Empty{}, nil
			}
			return result, nil
		},
	})
}

// filterSize returns the length of text, sequences and maps
func filterSize(base any, _ []any) (any, error) {
	if base == nil || IsEmptyValue(base) {
		return 0, nil
	}
	switch v := base.(type) {
	case string:
		return utf8.RuneCountInString(v), nil
	case map[string]any:
		return len(v), nil
	}
	if reflect.ValueOf(base).Kind() == reflect.Map {
		return reflect.ValueOf(base).Len(), nil
	}
	seq, err := sequenceBase(base, FilterNameSize)
	if err != nil {
		return nil, err
	}
	return len(seq), nil
}

// filterIndex returns the element at i, or empty text when i is out of
// range or base is not indexable
func filterIndex(base any, args []any) (any, error) {
	i, err := intArg(args, 0, FilterNameIndex)
	if err != nil {
		return nil, err
	}
	if s, ok := base.(string); ok {
		runes := []rune(s)
		if i >= 0 && i <= len(runes)-1 {
			return string(runes[i]), nil
		}
		return StringValueEmpty, nil
	}
	if base == nil || IsEmptyValue(base) {
		return StringValueEmpty, nil
	}
	seq, ok := toSequence(base)
	if ok && i >= 0 && i <= len(seq)-1 {
		return seq[i], nil
	}
	return StringValueEmpty, nil
}

// filterSlice returns length items starting at start. A negative start
// counts from the end.
func filterSlice(base any, args []any) (any, error) {
	if !IsTruthy(base) {
		return Empty{}, nil
	}
	start, err := intArg(args, 0, FilterNameSlice)
	if err != nil {
		return nil, err
	}
	length := DefaultSliceLength
	if len(args) > 1 {
		if length, err = intArg(args, 1, FilterNameSlice); err != nil {
			return nil, err
		}
	}

	if s, ok := base.(string); ok {
		runes := []rune(s)
		lo, hi := sliceBounds(len(runes), start, length)
		return string(runes[lo:hi]), nil
	}

	seq, err := sequenceBase(base, FilterNameSlice)
	if err != nil {
		return nil, err
	}
	lo, hi := sliceBounds(len(seq), start, length)
	result := make([]any, hi-lo)
	copy(result, seq[lo:hi])
	return result, nil
}

// sliceBounds resolves [start, start+length) against n items, wrapping a
// negative start from the end and clamping to the available range.
func sliceBounds(n, start, length int) (int, int) {
	if start < 0 {
		start += n
	}
	lo := clampInt(start, 0, n)
	hi := clampInt(start+length, lo, n)
	return lo, hi
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// sortSequence returns a sorted copy of base using cmp
func sortSequence(base any, filterName string, cmp func(a, b any) (int, error)) (any, error) {
	if !IsTruthy(base) {
		return Empty{}, nil
	}
	seq, err := sequenceBase(base, filterName)
	if err != nil {
		return nil, err
	}
	result := make([]any, len(seq))
	copy(result, seq)

	var cmpErr error
	sort.SliceStable(result, func(i, j int) bool {
		c, err := cmp(result[i], result[j])
		if err != nil && cmpErr == nil {
			cmpErr = NewFilterTypeError(ErrMsgFilterNotComparable, filterName, ArgIndexBase)
		}
		return c < 0
	})
	if cmpErr != nil {
		return nil, cmpErr
	}
	return result, nil
}

// compareValues orders numbers numerically, strings lexically and booleans
// false before true. Mixed kinds are not comparable.
func compareValues(a, b any) (int, error) {
	na, aok := numericValue(a)
	nb, bok := numericValue(b)
	if aok && bok {
		switch {
		case na.f < nb.f:
			return -1, nil
		case na.f > nb.f:
			return 1, nil
		default:
			return 0, nil
		}
	}
	sa, aok := a.(string)
	sb, bok := b.(string)
	if aok && bok {
		return strings.Compare(sa, sb), nil
	}
	ba, aok := a.(bool)
	bb, bok := b.(bool)
	if aok && bok {
		switch {
		case ba == bb:
			return 0, nil
		case !ba:
			return -1, nil
		default:
			return 1, nil
		}
	}
	return 0, NewFilterTypeError(ErrMsgFilterNotComparable, "", ArgIndexBase)
}

func containsValue(items []any, v any) bool {
	for _, item := range items {
		if valuesEqual(item, v) {
			return true
		}
	}
	return false
}
