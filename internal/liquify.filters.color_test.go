package internal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorFilters(t *testing.T) {
	table := newTestTable(t)

	tests := []struct {
		name   string
		filter string
		base   any
		args   []any
		want   any
	}{
		{"to rgb", FilterNameColorToRGB, "#ff8000", nil, "rgb(255, 128, 0)"},
		{"to hsl", FilterNameColorToHSL, "#ff0000", nil, "hsl(0, 100%, 50%)"},
		{"to hex", FilterNameColorToHex, "rgb(0, 153, 204)", nil, "#0099cc"},
		{"extract red", FilterNameColorExtract, "#ff8000", []any{"red"}, 255},
		{"extract hex", FilterNameColorExtract, "rgb(255, 128, 0)", []any{"hex"}, "#ff8000"},
		{"mix", FilterNameColorMix, "#000000", []any{"#ffffff", 50}, "rgba(127, 127, 127, 1.000)"},
		{"contrast", FilterNameColorContrast, "#000000", []any{"#ffffff"}, 53.0},
		{"modify hex", FilterNameColorModify, "#ff0000", []any{"green", 255}, "#ffff00"},
		{"modify rgb", FilterNameColorModify, "rgb(0, 0, 0)", []any{"red", 10}, "rgb(10, 0, 0)"},
		{"modify hsl", FilterNameColorModify, "hsl(0, 100%, 50%)", []any{"blue", 255}, "hsl(300, 100%, 50%)"},
		{"modify translucent", FilterNameColorModify, "rgba(0, 0, 0, 0.5)", []any{"red", 10}, "rgba(10, 0, 0, 0.5)"},
		{"modify explicit format", FilterNameColorModify, "#ff0000", []any{"green", 255, "rgb"}, "rgb(255, 255, 0)"},
		{"lighten", FilterNameColorLighten, "#000000", []any{50}, "#808080"},
		{"darken", FilterNameColorDarken, "#ff0000", []any{50}, "#000000"},
		{"saturate", FilterNameColorSaturate, "#808080", []any{0}, "#808080"},
		{"desaturate", FilterNameColorDesaturate, "#ff0000", []any{100}, "#808080"},
		{"brightness", FilterNameColorBrightness, "#ffffff", nil, 5.0},
		{"difference", FilterNameColorDifference, "#000000", []any{"#ffffff"}, 265},
		{"brightness_difference", FilterNameBrightnessDifference, "#ffffff", []any{"#000000"}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apply(t, table, tt.filter, tt.base, tt.args...))
		})
	}
}

func TestColorFilters_ColorValues(t *testing.T) {
	table := newTestTable(t)
	c := NewColor(0, 0, 0, 1)

	assert.Equal(t, "#808080", apply(t, table, FilterNameColorLighten, c, 50))
	assert.Equal(t, "#000000", c.Hex(), "filters never mutate a Color base")

	assert.Equal(t, "rgb(1, 2, 3)", apply(t, table, FilterNameColorToRGB, *NewColor(1, 2, 3, 1)))
}

func TestColorFilters_Errors(t *testing.T) {
	table := newTestTable(t)

	t.Run("contrast of identical colors", func(t *testing.T) {
		_, err := table.Apply(FilterNameColorContrast, "#336699", "#336699")
		require.Error(t, err)

		var arithErr *ArithmeticError
		require.True(t, errors.As(err, &arithErr))
	})

	t.Run("malformed hex", func(t *testing.T) {
		_, err := table.Apply(FilterNameColorToRGB, "#12")
		require.Error(t, err)

		var colorErr *ColorError
		require.True(t, errors.As(err, &colorErr))
	})

	t.Run("non-color argument", func(t *testing.T) {
		_, err := table.Apply(FilterNameColorMix, "#000000", 12, 50)
		require.Error(t, err)

		var typeErr *FilterTypeError
		require.True(t, errors.As(err, &typeErr))
		assert.Equal(t, ArgIndexFirst, typeErr.ArgIndex)
	})

	t.Run("unknown output format", func(t *testing.T) {
		_, err := table.Apply(FilterNameColorModify, "rgb(0, 0, 0)", "red", 10, "bogus")
		require.Error(t, err)

		var typeErr *FilterTypeError
		require.True(t, errors.As(err, &typeErr))
		assert.Equal(t, ArgIndexThird, typeErr.ArgIndex)
		assert.Contains(t, err.Error(), ErrMsgFilterExpectedColorFormat)
	})

	t.Run("unknown channel", func(t *testing.T) {
		_, err := table.Apply(FilterNameColorModify, "#000000", "alpha", 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgColorUnknownChannel)
	})
}
