package liquify

import (
	"errors"
	"strconv"
	"strings"

	"github.com/itsatony/go-cuserr"

	"github.com/itsatony/go-liquify/internal"
)

// NewFilterError translates a failed filter invocation into a categorised
// error. The internal cause stays reachable through errors.As.
func NewFilterError(filterName string, cause error) error {
	var (
		filterErr *internal.FilterError
		argErr    *internal.FilterArgError
		typeErr   *internal.FilterTypeError
		propErr   *internal.PropertyError
		arithErr  *internal.ArithmeticError
		colorErr  *internal.ColorError
		algErr    *internal.AlgorithmError
	)

	switch {
	case cause == nil:
		return cuserr.NewInternalError(ErrCodeFilter, nil).
			WithMetadata(MetaKeyFilter, filterName)

	case errors.As(cause, &argErr):
		return cuserr.WrapStdError(cause, ErrCodeFilter, ErrMsgFilterArgCount).
			WithMetadata(MetaKeyFilter, filterName).
			WithMetadata(MetaKeyExpected, strconv.Itoa(argErr.Expected)).
			WithMetadata(MetaKeyActual, strconv.Itoa(argErr.Actual))

	case errors.As(cause, &typeErr):
		return cuserr.WrapStdError(cause, ErrCodeFilter, ErrMsgFilterArgType).
			WithMetadata(MetaKeyFilter, filterName).
			WithMetadata(MetaKeyArgument, strconv.Itoa(typeErr.ArgIndex))

	case errors.As(cause, &propErr):
		return cuserr.WrapStdError(cause, ErrCodeFilter, ErrMsgPropertyNotFound).
			WithMetadata(MetaKeyFilter, filterName).
			WithMetadata(MetaKeyProperty, internal.ToString(propErr.Key))

	case errors.As(cause, &arithErr):
		return cuserr.WrapStdError(cause, ErrCodeFilter, ErrMsgArithmetic).
			WithMetadata(MetaKeyFilter, filterName)

	case errors.As(cause, &colorErr):
		return cuserr.WrapStdError(cause, ErrCodeFilter, ErrMsgInvalidColor).
			WithMetadata(MetaKeyFilter, filterName).
			WithMetadata(MetaKeyInput, colorErr.Input)

	case errors.As(cause, &algErr):
		return cuserr.WrapStdError(cause, ErrCodeFilter, ErrMsgUnsupportedAlgorithm).
			WithMetadata(MetaKeyFilter, filterName).
			WithMetadata(MetaKeyAlgorithm, algErr.Algorithm)

	case errors.As(cause, &filterErr) && filterErr.Message == internal.ErrMsgFilterNotFound:
		err := cuserr.WrapStdError(cause, ErrCodeFilter, ErrMsgUnknownFilter).
			WithMetadata(MetaKeyFilter, filterName)
		if len(filterErr.Suggestions) > 0 {
			err = err.WithMetadata(MetaKeySuggestions, strings.Join(filterErr.Suggestions, suggestionsSeparator))
		}
		return err

	default:
		return cuserr.WrapStdError(cause, ErrCodeFilter, ErrMsgFilterFailed).
			WithMetadata(MetaKeyFilter, filterName)
	}
}

// NewPaginateError creates a tag error for a failed paginate block. Cell
// failures carry their 1-based row and column.
func NewPaginateError(cause error) error {
	err := cuserr.WrapStdError(cause, ErrCodeTag, ErrMsgPaginateFailed).
		WithMetadata(MetaKeyTag, TagNamePaginate)

	var gridErr *internal.GridError
	if errors.As(cause, &gridErr) && gridErr.Row > 0 {
		err = err.
			WithMetadata(MetaKeyRow, strconv.Itoa(gridErr.Row)).
			WithMetadata(MetaKeyColumn, strconv.Itoa(gridErr.Col))
	}
	return err
}

// NewPropertyError creates an error for a failed property read outside of
// a filter.
func NewPropertyError(key any, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeFilter, ErrMsgPropertyNotFound).
		WithMetadata(MetaKeyProperty, internal.ToString(key))
}

// NewColorError creates an error for a color string that failed to parse.
func NewColorError(input string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeFilter, ErrMsgInvalidColor).
		WithMetadata(MetaKeyInput, input)
}

// NewConfigError creates a configuration error.
func NewConfigError(msg string, cause error) *cuserr.CustomError {
	if cause != nil {
		return cuserr.WrapStdError(cause, ErrCodeConfig, msg)
	}
	return cuserr.NewValidationError(ErrCodeConfig, msg)
}

// NewSnippetStoreError creates an error for a snippet store failure
// surfaced through the engine.
func NewSnippetStoreError(name string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeStorage, ErrMsgSnippetStoreFailed).
		WithMetadata(MetaKeyTag, TagNameInclude).
		WithMetadata(MetaKeySnippet, name)
}

// IsUnknownFilter reports whether err was caused by a filter name missing
// from the table.
func IsUnknownFilter(err error) bool {
	var filterErr *internal.FilterError
	return errors.As(err, &filterErr) && filterErr.Message == internal.ErrMsgFilterNotFound
}

// IsPropertyNotFound reports whether err was caused by a failed property
// read.
func IsPropertyNotFound(err error) bool {
	var propErr *internal.PropertyError
	return errors.As(err, &propErr)
}

// IsArithmeticError reports whether err was caused by a division or modulo
// by zero, or by a degenerate color contrast.
func IsArithmeticError(err error) bool {
	var arithErr *internal.ArithmeticError
	return errors.As(err, &arithErr)
}

// IsInvalidColor reports whether err was caused by an unparseable color.
func IsInvalidColor(err error) bool {
	var colorErr *internal.ColorError
	return errors.As(err, &colorErr)
}

// IsUnsupportedAlgorithm reports whether err was caused by an unknown
// digest algorithm name.
func IsUnsupportedAlgorithm(err error) bool {
	var algErr *internal.AlgorithmError
	return errors.As(err, &algErr)
}

// IsArgumentError reports whether err was caused by a wrong argument count
// or an argument of the wrong type.
func IsArgumentError(err error) bool {
	var (
		argErr  *internal.FilterArgError
		typeErr *internal.FilterTypeError
	)
	return errors.As(err, &argErr) || errors.As(err, &typeErr)
}
