package internal

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ColorFormat identifies a textual color notation family.
type ColorFormat int

// Color format constants
const (
	ColorFormatUnknown ColorFormat = iota
	ColorFormatHex
	ColorFormatRGB
	ColorFormatHSL
)

// Color notation prefixes and names
const (
	ColorPrefixHex = "#"
	ColorPrefixRGB = "rgb"
	ColorPrefixHSL = "hsl"

	ColorFormatNameHex = "hex"
	ColorFormatNameRGB = "rgb"
	ColorFormatNameHSL = "hsl"
)

// Color channel names
const (
	ChannelRed        = "red"
	ChannelGreen      = "green"
	ChannelBlue       = "blue"
	ChannelAlpha      = "alpha"
	ChannelHue        = "hue"
	ChannelSaturation = "saturation"
	ChannelLightness  = "lightness"
	ChannelBrightness = "brightness"
)

// Color output formats
const (
	FmtHex     = "#%02x%02x%02x"
	FmtHexByte = "%02x"
	FmtRGB     = "rgb(%d, %d, %d)"
	FmtRGBA    = "rgba(%d, %d, %d, %.1f)"
	FmtHSL     = "hsl(%d, %d%%, %d%%)"
	FmtHSLA    = "hsla(%d, %d%%, %d%%, %.1f)"
	FmtMixRGBA = "rgba(%d, %d, %d, %.3f)"
)

// Color numeric constants
const (
	ChannelMax          = 255
	AlphaOpaque         = 1.0
	PercentMax          = 100.0
	DegreesFull         = 360.0
	DifferenceModulus   = 500
	BrightnessModulus   = 125.0
	brightnessRedWeight = 299
	brightnessGrnWeight = 587
	brightnessBluWeight = 114
	brightnessDivisor   = 1000.0
	hexDigitsPerChannel = 2
	hexDigitsRGB        = 6
	hexDigitsRGBA       = 8
)

// Color function delimiters stripped before splitting components
const (
	colorFuncCutsetRGB = "rgba() "
	colorFuncCutsetHSL = "hsla() "
	colorComponentSep  = ","
	colorPercentSuffix = "%"
)

// Color error messages
const (
	ErrMsgColorUnknownFormat   = "unrecognised color notation"
	ErrMsgColorInvalidHex      = "invalid hex color"
	ErrMsgColorInvalidRGB      = "invalid rgb color component"
	ErrMsgColorInvalidHSL      = "invalid hsl color"
	ErrMsgColorUnknownChannel  = "unknown color channel"
	ErrMsgColorEqualBrightness = "contrast undefined for colors of equal brightness"
	ErrMsgColorNoDifference    = "contrast undefined for colors with no difference"
)

// ColorError reports malformed color input
type ColorError struct {
	Message string
	Input   string
}

// NewColorError creates a new color error
func NewColorError(message, input string) *ColorError {
	return &ColorError{
		Message: message,
		Input:   input,
	}
}

// Error implements the error interface
func (e *ColorError) Error() string {
	return fmt.Sprintf(ErrFmtColorInput, e.Message, e.Input)
}

// Color is an RGBA color. Red, green and blue are 0-255 and alpha is
// 0.0-1.0. Every textual form is derived from these four values on demand.
type Color struct {
	r, g, b int
	a       float64
}

// NewColor creates a color, clamping each channel into range
func NewColor(r, g, b int, a float64) *Color {
	return &Color{
		r: clampInt(r, 0, ChannelMax),
		g: clampInt(g, 0, ChannelMax),
		b: clampInt(b, 0, ChannelMax),
		a: clampFloat(a, 0, AlphaOpaque),
	}
}

// DetectColorFormat classifies s by its leading token
func DetectColorFormat(s string) ColorFormat {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(s, ColorPrefixHex):
		return ColorFormatHex
	case strings.HasPrefix(s, ColorPrefixRGB):
		return ColorFormatRGB
	case strings.HasPrefix(s, ColorPrefixHSL):
		return ColorFormatHSL
	default:
		return ColorFormatUnknown
	}
}

// ParseColorFormat parses a format name (hex, rgb, hsl)
func ParseColorFormat(name string) ColorFormat {
	switch strings.ToLower(name) {
	case ColorFormatNameHex:
		return ColorFormatHex
	case ColorFormatNameRGB:
		return ColorFormatRGB
	case ColorFormatNameHSL:
		return ColorFormatHSL
	default:
		return ColorFormatUnknown
	}
}

// ParseColor parses #RRGGBB[AA], rgb()/rgba() and hsl()/hsla() notation.
// An rgb(a) value without 3 or 4 components yields transparent black.
func ParseColor(s string) (*Color, error) {
	trimmed := strings.TrimSpace(s)
	switch DetectColorFormat(trimmed) {
	case ColorFormatHex:
		return parseHex(trimmed)
	case ColorFormatRGB:
		return parseRGB(trimmed)
	case ColorFormatHSL:
		return parseHSL(trimmed)
	default:
		return nil, NewColorError(ErrMsgColorUnknownFormat, s)
	}
}

func parseHex(s string) (*Color, error) {
	digits := strings.TrimPrefix(s, ColorPrefixHex)
	if len(digits) != hexDigitsRGB && len(digits) != hexDigitsRGBA {
		return nil, NewColorError(ErrMsgColorInvalidHex, s)
	}

	channels := make([]int, 0, len(digits)/hexDigitsPerChannel)
	for i := 0; i < len(digits); i += hexDigitsPerChannel {
		v, err := strconv.ParseUint(digits[i:i+hexDigitsPerChannel], 16, 8)
		if err != nil {
			return nil, NewColorError(ErrMsgColorInvalidHex, s)
		}
		channels = append(channels, int(v))
	}

	alpha := AlphaOpaque
	if len(channels) == 4 {
		alpha = float64(channels[3]) / ChannelMax
	}
	return NewColor(channels[0], channels[1], channels[2], alpha), nil
}

func parseRGB(s string) (*Color, error) {
	parts := splitColorComponents(s, colorFuncCutsetRGB)
	if len(parts) != 3 && len(parts) != 4 {
		return &Color{}, nil
	}

	channels := make([]int, 3)
	for i := range channels {
		v, err := parseChannel(parts[i])
		if err != nil {
			return nil, NewColorError(ErrMsgColorInvalidRGB, s)
		}
		channels[i] = v
	}

	alpha := AlphaOpaque
	if len(parts) == 4 {
		a, err := strconv.ParseFloat(parts[3], FloatBitSize64)
		if err != nil {
			return nil, NewColorError(ErrMsgColorInvalidRGB, s)
		}
		alpha = a
	}
	return NewColor(channels[0], channels[1], channels[2], alpha), nil
}

func parseHSL(s string) (*Color, error) {
	parts := splitColorComponents(s, colorFuncCutsetHSL)
	if len(parts) != 3 && len(parts) != 4 {
		return nil, NewColorError(ErrMsgColorInvalidHSL, s)
	}

	h, err := strconv.ParseFloat(parts[0], FloatBitSize64)
	if err != nil {
		return nil, NewColorError(ErrMsgColorInvalidHSL, s)
	}
	sat, err := parsePercent(parts[1])
	if err != nil {
		return nil, NewColorError(ErrMsgColorInvalidHSL, s)
	}
	light, err := parsePercent(parts[2])
	if err != nil {
		return nil, NewColorError(ErrMsgColorInvalidHSL, s)
	}

	alpha := AlphaOpaque
	if len(parts) == 4 {
		if alpha, err = strconv.ParseFloat(parts[3], FloatBitSize64); err != nil {
			return nil, NewColorError(ErrMsgColorInvalidHSL, s)
		}
	}

	r, g, b := hslToRGB(h, sat, light)
	return NewColor(r, g, b, alpha), nil
}

// splitColorComponents strips the function name and parentheses and
// returns the trimmed comma-separated components
func splitColorComponents(s, cutset string) []string {
	inner := strings.Trim(strings.ToLower(s), cutset)
	if inner == "" {
		return nil
	}
	parts := strings.Split(inner, colorComponentSep)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func parseChannel(s string) (int, error) {
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, FloatBitSize64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// parsePercent parses "50%" or "50" into 0.5
func parsePercent(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, colorPercentSuffix), FloatBitSize64)
	if err != nil {
		return 0, err
	}
	return v / PercentMax, nil
}

// hslToRGB converts hue in degrees and saturation/lightness fractions to
// 0-255 channels using the piecewise HSL model
func hslToRGB(h, s, l float64) (int, int, int) {
	s = clampFloat(s, 0, 1)
	l = clampFloat(l, 0, 1)
	if s == 0 {
		v := scaleChannel(l)
		return v, v, v
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	hk := h / DegreesFull

	channel := func(t float64) int {
		t -= math.Floor(t)
		var v float64
		switch {
		case t < 1.0/6:
			v = p + (q-p)*6*t
		case t < 0.5:
			v = q
		case t < 2.0/3:
			v = p + (q-p)*6*(2.0/3-t)
		default:
			v = p
		}
		return scaleChannel(v)
	}
	return channel(hk + 1.0/3), channel(hk), channel(hk - 1.0/3)
}

// rgbToHSL returns hue in degrees [0, 360) and saturation/lightness as
// fractions
func rgbToHSL(r, g, b int) (float64, float64, float64) {
	rf := float64(r) / ChannelMax
	gf := float64(g) / ChannelMax
	bf := float64(b) / ChannelMax
	maxC := math.Max(rf, math.Max(gf, bf))
	minC := math.Min(rf, math.Min(gf, bf))
	l := (maxC + minC) / 2

	if maxC == minC {
		return 0, 0, l
	}

	d := maxC - minC
	var s float64
	if l <= 0.5 {
		s = d / (maxC + minC)
	} else {
		s = d / (2 - maxC - minC)
	}

	var h float64
	switch maxC {
	case rf:
		h = (gf - bf) / d
		if gf < bf {
			h += 6
		}
	case gf:
		h = (bf-rf)/d + 2
	default:
		h = (rf-gf)/d + 4
	}
	return h * 60, s, l
}

func scaleChannel(v float64) int {
	return clampInt(int(math.Round(v*ChannelMax)), 0, ChannelMax)
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Red returns the red channel
func (c *Color) Red() int { return c.r }

// Green returns the green channel
func (c *Color) Green() int { return c.g }

// Blue returns the blue channel
func (c *Color) Blue() int { return c.b }

// Alpha returns the alpha channel. Alpha has no setter.
func (c *Color) Alpha() float64 { return c.a }

// SetRed replaces the red channel
func (c *Color) SetRed(v int) { c.r = clampInt(v, 0, ChannelMax) }

// SetGreen replaces the green channel
func (c *Color) SetGreen(v int) { c.g = clampInt(v, 0, ChannelMax) }

// SetBlue replaces the blue channel
func (c *Color) SetBlue(v int) { c.b = clampInt(v, 0, ChannelMax) }

// RGBA returns the canonical tuple
func (c *Color) RGBA() (int, int, int, float64) {
	return c.r, c.g, c.b, c.a
}

// Hue returns the hue in degrees
func (c *Color) Hue() float64 {
	h, _, _ := rgbToHSL(c.r, c.g, c.b)
	return h
}

// Saturation returns the HSL saturation as a percentage
func (c *Color) Saturation() float64 {
	_, s, _ := rgbToHSL(c.r, c.g, c.b)
	return s * PercentMax
}

// Lightness returns the HSL lightness as a percentage
func (c *Color) Lightness() float64 {
	_, _, l := rgbToHSL(c.r, c.g, c.b)
	return l * PercentMax
}

// Hex renders #rrggbb, or #rrggbbaa when the color is translucent
func (c *Color) Hex() string {
	hex := fmt.Sprintf(FmtHex, c.r, c.g, c.b)
	if c.a < AlphaOpaque {
		hex += fmt.Sprintf(FmtHexByte, int(math.Round(c.a*ChannelMax)))
	}
	return hex
}

// RGB renders rgb(r, g, b), or rgba(r, g, b, a) when translucent
func (c *Color) RGB() string {
	if c.a < AlphaOpaque {
		return fmt.Sprintf(FmtRGBA, c.r, c.g, c.b, c.a)
	}
	return fmt.Sprintf(FmtRGB, c.r, c.g, c.b)
}

// HSL renders hsl(h, s%, l%), or hsla(h, s%, l%, a) when translucent
func (c *Color) HSL() string {
	h, s, l := rgbToHSL(c.r, c.g, c.b)
	hue := int(math.Round(h)) % int(DegreesFull)
	sat := int(math.Round(s * PercentMax))
	light := int(math.Round(l * PercentMax))
	if c.a < AlphaOpaque {
		return fmt.Sprintf(FmtHSLA, hue, sat, light, c.a)
	}
	return fmt.Sprintf(FmtHSL, hue, sat, light)
}

// Format renders the color in the given notation family. Unknown formats
// render as rgb.
func (c *Color) Format(f ColorFormat) string {
	switch f {
	case ColorFormatHex:
		return c.Hex()
	case ColorFormatHSL:
		return c.HSL()
	default:
		return c.RGB()
	}
}

// String implements fmt.Stringer
func (c *Color) String() string {
	return c.RGB()
}

// Saturate shifts the saturation by delta percentage points, clamped into
// [0, 100]. Alpha is preserved.
func (c *Color) Saturate(delta float64) {
	h, s, l := rgbToHSL(c.r, c.g, c.b)
	s = clampFloat(s*PercentMax+delta, 0, PercentMax) / PercentMax
	c.r, c.g, c.b = hslToRGB(h, s, l)
}

// Lighten shifts the lightness by delta percentage points, clamped into
// [0, 100]. Alpha is preserved.
func (c *Color) Lighten(delta float64) {
	h, s, l := rgbToHSL(c.r, c.g, c.b)
	l = clampFloat(l*PercentMax+delta, 0, PercentMax) / PercentMax
	c.r, c.g, c.b = hslToRGB(h, s, l)
}

// Brightness returns the perceptual luminance reduced modulo 125.
func (c *Color) Brightness() float64 {
	raw := float64(c.r*brightnessRedWeight+c.g*brightnessGrnWeight+c.b*brightnessBluWeight) / brightnessDivisor
	return math.Mod(math.Round(raw*100)/100, BrightnessModulus)
}

// Difference returns the sum of absolute RGB channel deltas reduced
// modulo 500.
func (c *Color) Difference(other *Color) int {
	sum := absInt(c.r-other.r) + absInt(c.g-other.g) + absInt(c.b-other.b)
	return sum % DifferenceModulus
}

// Channel returns a named channel or derived view of the color
func (c *Color) Channel(name string) (any, error) {
	switch strings.ToLower(name) {
	case ChannelRed:
		return c.r, nil
	case ChannelGreen:
		return c.g, nil
	case ChannelBlue:
		return c.b, nil
	case ChannelAlpha:
		return c.a, nil
	case ChannelHue:
		return c.Hue(), nil
	case ChannelSaturation:
		return c.Saturation(), nil
	case ChannelLightness:
		return c.Lightness(), nil
	case ChannelBrightness:
		return c.Brightness(), nil
	case ColorFormatNameHex:
		return c.Hex(), nil
	case ColorFormatNameRGB:
		return c.RGB(), nil
	case ColorFormatNameHSL:
		return c.HSL(), nil
	default:
		return nil, NewColorError(ErrMsgColorUnknownChannel, name)
	}
}

// SetChannel replaces the red, green or blue channel
func (c *Color) SetChannel(name string, v int) error {
	switch strings.ToLower(name) {
	case ChannelRed:
		c.SetRed(v)
	case ChannelGreen:
		c.SetGreen(v)
	case ChannelBlue:
		c.SetBlue(v)
	default:
		return NewColorError(ErrMsgColorUnknownChannel, name)
	}
	return nil
}

// Contrast returns the ratio of color difference to brightness
// difference, inverted when below 1 so the result is always >= 1.
func Contrast(fg, bg *Color) (float64, error) {
	brightness := fg.Brightness() - bg.Brightness()
	if brightness == 0 {
		return 0, NewArithmeticError(ErrMsgColorEqualBrightness, FilterNameColorContrast)
	}
	ratio := math.Abs(float64(fg.Difference(bg)) / brightness)
	if ratio == 0 {
		return 0, NewArithmeticError(ErrMsgColorNoDifference, FilterNameColorContrast)
	}
	if ratio < 1 {
		return 1 / ratio, nil
	}
	return ratio, nil
}

// MixColors scales the per-channel sum of a and b by amplitude percent and
// renders the result as rgba with three decimals of alpha.
func MixColors(a, b *Color, amplitude float64) string {
	factor := amplitude / PercentMax
	return fmt.Sprintf(FmtMixRGBA,
		int(factor*float64(a.r+b.r)),
		int(factor*float64(a.g+b.g)),
		int(factor*float64(a.b+b.b)),
		factor*(a.a+b.a))
}

// ModifyColor sets a channel of c and renders it in the given notation
// family. Translucent results always render as rgba.
func ModifyColor(c *Color, channel string, value int, format ColorFormat) (string, error) {
	if err := c.SetChannel(channel, value); err != nil {
		return "", err
	}
	if c.a < AlphaOpaque {
		return c.RGB(), nil
	}
	return c.Format(format), nil
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
