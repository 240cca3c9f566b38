package internal

import (
	"fmt"
	"math"
)

// Math filter names
const (
	FilterNameAbs       = "abs"
	FilterNameAtLeast   = "at_least"
	FilterNameAtMost    = "at_most"
	FilterNameRound     = "round"
	FilterNameCeil      = "ceil"
	FilterNameFloor     = "floor"
	FilterNamePlus      = "plus"
	FilterNameMinus     = "minus"
	FilterNameTimes     = "times"
	FilterNameModulo    = "modulo"
	FilterNameDividedBy = "divided_by"
	FilterNameDefault   = "default"
)

// Arithmetic error messages
const (
	ErrMsgDivisionByZero = "division by zero"
	ErrMsgModuloByZero   = "modulo by zero"
)

// ArithmeticError reports an undefined numeric operation.
type ArithmeticError struct {
	Message   string
	Operation string
}

// NewArithmeticError creates a new arithmetic error
func NewArithmeticError(message, operation string) *ArithmeticError {
	return &ArithmeticError{
		Message:   message,
		Operation: operation,
	}
}

// Error implements the error interface
func (e *ArithmeticError) Error() string {
	return fmt.Sprintf(ErrFmtTagMessage, e.Message, e.Operation)
}

// registerMathFilters registers numeric filters
func registerMathFilters(b *FilterTableBuilder) {
	// abs(base) number
	b.MustRegister(&Filter{
		Name:    FilterNameAbs,
		MinArgs: 0,
		MaxArgs: 0,
		Fn: func(base any, _ []any) (any, error) {
			n, err := numberBase(base, FilterNameAbs)
			if err != nil {
				return nil, err
			}
			if n.isInt {
				if n.i < 0 {
					return -n.i, nil
				}
				return n.i, nil
			}
			return math.Abs(n.f), nil
		},
	})

	// at_least(base, n) number - the larger of the two
	b.MustRegister(&Filter{
		Name:    FilterNameAtLeast,
		MinArgs: 1,
		MaxArgs: 1,
		Fn: func(base any, args []any) (any, error) {
			return pickNumber(base, args, FilterNameAtLeast, func(a, b float64) bool { return a >= b })
		},
	})

	// at_most(base, n) number - the smaller of the two
	b.MustRegister(&Filter{
		Name:    FilterNameAtMost,
		MinArgs: 1,
		MaxArgs: 1,
		Fn: func(base any, args []any) (any, error) {
			return pickNumber(base, args, FilterNameAtMost, func(a, b float64) bool { return a <= b })
		},
	})

	// round(base, digits?) number - half to even; int without digits
	b.MustRegister(&Filter{
		Name:    FilterNameRound,
		MinArgs: 0,
		MaxArgs: 1,
		Fn: func(base any, args []any) (any, error) {
			n, err := numberBase(base, FilterNameRound)
			if err != nil {
				return nil, err
			}
			if len(args) == 0 {
				if n.isInt {
					return n.i, nil
				}
				return int(math.RoundToEven(n.f)), nil
			}
			digits, err := intArg(args, 0, FilterNameRound)
			if err != nil {
				return nil, err
			}
			if n.isInt && digits >= 0 {
				return n.i, nil
			}
			scale := math.Pow(10, float64(digits))
			return math.RoundToEven(n.f*scale) / scale, nil
		},
	})

	// ceil(base) int - coerces to float first
	b.MustRegister(&Filter{
		Name:    FilterNameCeil,
		MinArgs: 0,
		MaxArgs: 0,
		Fn: func(base any, _ []any) (any, error) {
			f, ok := toFloat(base)
			if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
				return nil, NewFilterTypeError(ErrMsgFilterExpectedNumber, FilterNameCeil, ArgIndexBase)
			}
			return int(math.Ceil(f)), nil
		},
	})

	// floor(base) int - coerces to float first
	b.MustRegister(&Filter{
		Name:    FilterNameFloor,
		MinArgs: 0,
		MaxArgs: 0,
		Fn: func(base any, _ []any) (any, error) {
			f, ok := toFloat(base)
			if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
				return nil, NewFilterTypeError(ErrMsgFilterExpectedNumber, FilterNameFloor, ArgIndexBase)
			}
			return int(math.Floor(f)), nil
		},
	})

	registerArithmetic(b, FilterNamePlus, func(a, b int) (int, error) { return a + b, nil },
		func(a, b float64) (float64, error) { return a + b, nil })
	registerArithmetic(b, FilterNameMinus, func(a, b int) (int, error) { return a - b, nil },
		func(a, b float64) (float64, error) { return a - b, nil })
	registerArithmetic(b, FilterNameTimes, func(a, b int) (int, error) { return a * b, nil },
		func(a, b float64) (float64, error) { return a * b, nil })
	registerArithmetic(b, FilterNameModulo, floorModInt, floorModFloat)

	b.MustRegister(&Filter{Name: FilterNameDividedBy, MinArgs: 1, MaxArgs: 1, Fn: filterDividedBy})
	b.MustRegister(&Filter{Name: FilterNameDefault, MinArgs: 1, MaxArgs: 1, Fn: filterDefault})
}

// registerArithmetic registers a binary operator that stays integral when
// both operands are integers
func registerArithmetic(b *FilterTableBuilder, name string, intOp func(a, b int) (int, error), floatOp func(a, b float64) (float64, error)) {
	b.MustRegister(&Filter{
		Name:    name,
		MinArgs: 1,
		MaxArgs: 1,
		Fn: func(base any, args []any) (any, error) {
			left, err := numberBase(base, name)
			if err != nil {
				return nil, err
			}
			right, err := numberArg(args, 0, name)
			if err != nil {
				return nil, err
			}
			if left.isInt && right.isInt {
				return intOp(left.i, right.i)
			}
			return floatOp(left.f, right.f)
		},
	})
}

// filterDividedBy divides base by d. An integer divisor selects floor
// division, any other divisor true division.
func filterDividedBy(base any, args []any) (any, error) {
	dividend, err := numberBase(base, FilterNameDividedBy)
	if err != nil {
		return nil, err
	}
	divisor, err := numberArg(args, 0, FilterNameDividedBy)
	if err != nil {
		return nil, err
	}
	if divisor.f == 0 {
		return nil, NewArithmeticError(ErrMsgDivisionByZero, FilterNameDividedBy)
	}
	if !divisor.isInt {
		return dividend.f / divisor.f, nil
	}
	if dividend.isInt {
		return floorDivInt(dividend.i, divisor.i), nil
	}
	return math.Floor(dividend.f / divisor.f), nil
}

// filterDefault returns alt when base is nil, false, empty text or Empty.
// Numeric zero is a present value.
func filterDefault(base any, args []any) (any, error) {
	switch v := base.(type) {
	case nil:
		return args[0], nil
	case bool:
		if !v {
			return args[0], nil
		}
	case string:
		if v == "" {
			return args[0], nil
		}
	}
	if IsEmptyValue(base) {
		return args[0], nil
	}
	return base, nil
}

func numberBase(base any, filterName string) (number, error) {
	n, ok := toNumber(base)
	if !ok {
		return number{}, NewFilterTypeError(ErrMsgFilterExpectedNumber, filterName, ArgIndexBase)
	}
	return n, nil
}

// pickNumber returns base when keep(base, arg) holds, otherwise arg
func pickNumber(base any, args []any, filterName string, keep func(a, b float64) bool) (any, error) {
	left, err := numberBase(base, filterName)
	if err != nil {
		return nil, err
	}
	right, err := numberArg(args, 0, filterName)
	if err != nil {
		return nil, err
	}
	if keep(left.f, right.f) {
		return left.value(), nil
	}
	return right.value(), nil
}

func floorDivInt(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorModInt(a, b int) (int, error) {
	if b == 0 {
		return 0, NewArithmeticError(ErrMsgModuloByZero, FilterNameModulo)
	}
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m, nil
}

func floorModFloat(a, b float64) (float64, error) {
	if b == 0 {
		return 0, NewArithmeticError(ErrMsgModuloByZero, FilterNameModulo)
	}
	m := math.Mod(a, b)
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m, nil
}
