package liquify

import (
	"github.com/itsatony/go-liquify/internal"
)

// Re-exported value types
type (
	// Empty is the "no result" sentinel. It renders as "", is falsy and
	// equals any falsy value.
	Empty = internal.Empty

	// KeyedReader lets host types answer property lookups themselves.
	KeyedReader = internal.KeyedReader

	// Scope holds template variable bindings.
	Scope = internal.Scope

	// Filter is a named value transformation.
	Filter = internal.Filter

	// FilterFunc receives the piped base value and the filter arguments.
	FilterFunc = internal.FilterFunc

	// Color is an RGBA color value.
	Color = internal.Color

	// ColorFormat names a color notation family.
	ColorFormat = internal.ColorFormat

	// GridOptions controls the paginate layout.
	GridOptions = internal.GridOptions

	// GridMarkup names the row and cell elements written by paginate.
	GridMarkup = internal.GridMarkup

	// RenderFunc renders one paginate cell.
	RenderFunc = internal.RenderFunc
)

// Color notation families
const (
	ColorFormatUnknown = internal.ColorFormatUnknown
	ColorFormatHex     = internal.ColorFormatHex
	ColorFormatRGB     = internal.ColorFormatRGB
	ColorFormatHSL     = internal.ColorFormatHSL
)

// NewScope creates a root scope over data.
func NewScope(data map[string]any) *Scope {
	return internal.NewScope(data)
}

// IsEmptyValue reports whether v is the Empty sentinel.
func IsEmptyValue(v any) bool {
	return internal.IsEmptyValue(v)
}

// IsTruthy applies template truthiness: nil, false and Empty are falsy.
func IsTruthy(v any) bool {
	return internal.IsTruthy(v)
}

// ToString returns the display text of v.
func ToString(v any) string {
	return internal.ToString(v)
}

// GetProperty reads key from value using keyed access first, then named
// attribute access.
func GetProperty(value, key any) (any, error) {
	result, err := internal.GetProperty(value, key)
	if err != nil {
		return nil, NewPropertyError(key, err)
	}
	return result, nil
}

// ParseColor parses hex (#rrggbb, #rrggbbaa), rgb()/rgba() and
// hsl()/hsla() notation.
func ParseColor(s string) (*Color, error) {
	c, err := internal.ParseColor(s)
	if err != nil {
		return nil, NewColorError(s, err)
	}
	return c, nil
}

// NewColor creates a color from channel values. Out of range values clamp.
func NewColor(r, g, b int, a float64) *Color {
	return internal.NewColor(r, g, b, a)
}

// DefaultGridMarkup returns the table row/cell markup used by paginate.
func DefaultGridMarkup() GridMarkup {
	return internal.DefaultGridMarkup()
}

// Int returns a pointer to i, for optional GridOptions fields.
func Int(i int) *int {
	return &i
}
