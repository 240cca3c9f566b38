package internal

// Color filter names
const (
	FilterNameColorToRGB           = "color_to_rgb"
	FilterNameColorToHSL           = "color_to_hsl"
	FilterNameColorToHex           = "color_to_hex"
	FilterNameColorExtract         = "color_extract"
	FilterNameColorMix             = "color_mix"
	FilterNameColorContrast        = "color_contrast"
	FilterNameColorModify          = "color_modify"
	FilterNameColorLighten         = "color_lighten"
	FilterNameColorDarken          = "color_darken"
	FilterNameColorSaturate        = "color_saturate"
	FilterNameColorDesaturate      = "color_desaturate"
	FilterNameColorBrightness      = "color_brightness"
	FilterNameColorDifference      = "color_difference"
	FilterNameBrightnessDifference = "brightness_difference"
)

// ErrMsgFilterExpectedColor is reported when a color argument is neither a
// Color nor color text
const ErrMsgFilterExpectedColor = "expected color argument"

// registerColorFilters registers filters backed by the color model
func registerColorFilters(b *FilterTableBuilder) {
	registerColorView(b, FilterNameColorToRGB, (*Color).RGB)
	registerColorView(b, FilterNameColorToHSL, (*Color).HSL)
	registerColorView(b, FilterNameColorToHex, (*Color).Hex)

	// color_extract(color, channel) value
	b.MustRegister(&Filter{
		Name:    FilterNameColorExtract,
		MinArgs: 1,
		MaxArgs: 1,
		Fn: func(base any, args []any) (any, error) {
			c, err := colorValue(base, FilterNameColorExtract, ArgIndexBase)
			if err != nil {
				return nil, err
			}
			channel, err := stringArg(args, 0, FilterNameColorExtract)
			if err != nil {
				return nil, err
			}
			return c.Channel(channel)
		},
	})

	// color_mix(color, other, amplitude) string
	b.MustRegister(&Filter{
		Name:    FilterNameColorMix,
		MinArgs: 2,
		MaxArgs: 2,
		Fn: func(base any, args []any) (any, error) {
			c, other, err := colorPair(base, args, FilterNameColorMix)
			if err != nil {
				return nil, err
			}
			amplitude, err := numberArg(args, 1, FilterNameColorMix)
			if err != nil {
				return nil, err
			}
			return MixColors(c, other, amplitude.f), nil
		},
	})

	// color_contrast(fg, bg) float
	b.MustRegister(&Filter{
		Name:    FilterNameColorContrast,
		MinArgs: 1,
		MaxArgs: 1,
		Fn: func(base any, args []any) (any, error) {
			fg, bg, err := colorPair(base, args, FilterNameColorContrast)
			if err != nil {
				return nil, err
			}
			return Contrast(fg, bg)
		},
	})

	// color_modify(color, channel, value, format?) string
	b.MustRegister(&Filter{
		Name:    FilterNameColorModify,
		MinArgs: 2,
		MaxArgs: 3,
		Fn:      filterColorModify,
	})

	registerColorAdjust(b, FilterNameColorLighten, 1, (*Color).Lighten)
	registerColorAdjust(b, FilterNameColorDarken, -1, (*Color).Lighten)
	registerColorAdjust(b, FilterNameColorSaturate, 1, (*Color).Saturate)
	registerColorAdjust(b, FilterNameColorDesaturate, -1, (*Color).Saturate)

	// color_brightness(color) float
	b.MustRegister(&Filter{
		Name:    FilterNameColorBrightness,
		MinArgs: 0,
		MaxArgs: 0,
		Fn: func(base any, _ []any) (any, error) {
			c, err := colorValue(base, FilterNameColorBrightness, ArgIndexBase)
			if err != nil {
				return nil, err
			}
			return c.Brightness(), nil
		},
	})

	// color_difference(a, b) int
	b.MustRegister(&Filter{
		Name:    FilterNameColorDifference,
		MinArgs: 1,
		MaxArgs: 1,
		Fn: func(base any, args []any) (any, error) {
			c, other, err := colorPair(base, args, FilterNameColorDifference)
			if err != nil {
				return nil, err
			}
			return c.Difference(other), nil
		},
	})

	// brightness_difference(a, b) int
	b.MustRegister(&Filter{
		Name:    FilterNameBrightnessDifference,
		MinArgs: 1,
		MaxArgs: 1,
		Fn: func(base any, args []any) (any, error) {
			c, other, err := colorPair(base, args, FilterNameBrightnessDifference)
			if err != nil {
				return nil, err
			}
			diff := c.Brightness() - other.Brightness()
			if diff < 0 {
				diff = -diff
			}
			return int(diff), nil
		},
	})
}

func registerColorView(b *FilterTableBuilder, name string, view func(*Color) string) {
	b.MustRegister(&Filter{
		Name:    name,
		MinArgs: 0,
		MaxArgs: 0,
		Fn: func(base any, _ []any) (any, error) {
			c, err := colorValue(base, name, ArgIndexBase)
			if err != nil {
				return nil, err
			}
			return view(c), nil
		},
	})
}

// registerColorAdjust registers a filter that shifts an HSL channel by
// sign*amount and renders hex
func registerColorAdjust(b *FilterTableBuilder, name string, sign float64, adjust func(*Color, float64)) {
	b.MustRegister(&Filter{
		Name:    name,
		MinArgs: 1,
		MaxArgs: 1,
		Fn: func(base any, args []any) (any, error) {
			c, err := colorValue(base, name, ArgIndexBase)
			if err != nil {
				return nil, err
			}
			amount, err := numberArg(args, 0, name)
			if err != nil {
				return nil, err
			}
			adjust(c, sign*amount.f)
			return c.Hex(), nil
		},
	})
}

// filterColorModify sets a channel and re-serializes. The optional format
// argument overrides the notation inferred from the input text.
func filterColorModify(base any, args []any) (any, error) {
	c, err := colorValue(base, FilterNameColorModify, ArgIndexBase)
	if err != nil {
		return nil, err
	}
	channel, err := stringArg(args, 0, FilterNameColorModify)
	if err != nil {
		return nil, err
	}
	value, err := intArg(args, 1, FilterNameColorModify)
	if err != nil {
		return nil, err
	}

	format := ColorFormatRGB
	if s, ok := base.(string); ok {
		format = DetectColorFormat(s)
	}
	if len(args) > 2 {
		name, err := stringArg(args, 2, FilterNameColorModify)
		if err != nil {
			return nil, err
		}
		format = ParseColorFormat(name)
		if format == ColorFormatUnknown {
			return nil, NewFilterTypeError(ErrMsgFilterExpectedColorFormat, FilterNameColorModify, ArgIndexThird)
		}
	}

	return ModifyColor(c, channel, value, format)
}

// colorValue resolves a Color or parses color text. Colors are copied so
// filters never mutate their input.
func colorValue(v any, filterName string, argIndex int) (*Color, error) {
	switch val := v.(type) {
	case *Color:
		if val != nil {
			cp := *val
			return &cp, nil
		}
	case Color:
		return &val, nil
	case string:
		return ParseColor(val)
	}
	return nil, NewFilterTypeError(ErrMsgFilterExpectedColor, filterName, argIndex)
}

// colorPair resolves the base color and the first positional color argument
func colorPair(base any, args []any, filterName string) (*Color, *Color, error) {
	c, err := colorValue(base, filterName, ArgIndexBase)
	if err != nil {
		return nil, nil, err
	}
	other, err := colorValue(args[0], filterName, ArgIndexFirst)
	if err != nil {
		return nil, nil, err
	}
	return c, other, nil
}
