package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/itsatony/go-liquify"
)

// colorOutput represents JSON output for the color command
type colorOutput struct {
	Hex        string  `json:"hex"`
	RGB        string  `json:"rgb"`
	HSL        string  `json:"hsl"`
	Red        int     `json:"red"`
	Green      int     `json:"green"`
	Blue       int     `json:"blue"`
	Alpha      float64 `json:"alpha"`
	Hue        float64 `json:"hue"`
	Saturation float64 `json:"saturation"`
	Lightness  float64 `json:"lightness"`
	Brightness float64 `json:"brightness"`
}

func runColor(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		fmt.Fprintln(stderr, ErrMsgMissingColor)
		return ExitCodeUsageError
	}
	value := args[0]

	fs := flag.NewFlagSet(CmdNameColor, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var format string
	fs.StringVar(&format, FlagFormat, FlagDefaultFormat, "")
	fs.StringVar(&format, FlagFormatShort, FlagDefaultFormat, "")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidFlags, err)
		return ExitCodeUsageError
	}
	if !validFormat(format, OutputFormatText, OutputFormatJSON) {
		fmt.Fprintln(stderr, ErrMsgInvalidFormat)
		return ExitCodeUsageError
	}

	c, err := liquify.ParseColor(value)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgColorFailed, err)
		return ExitCodeInputError
	}

	out := colorOutput{
		Hex:        c.Hex(),
		RGB:        c.RGB(),
		HSL:        c.HSL(),
		Red:        c.Red(),
		Green:      c.Green(),
		Blue:       c.Blue(),
		Alpha:      c.Alpha(),
		Hue:        c.Hue(),
		Saturation: c.Saturation(),
		Lightness:  c.Lightness(),
		Brightness: c.Brightness(),
	}

	if format == OutputFormatJSON {
		if err := writeJSON(stdout, out); err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgJSONMarshalFailed, err)
			return ExitCodeError
		}
		return ExitCodeSuccess
	}

	fmt.Fprintf(stdout, ColorTextTemplate+FmtNewline,
		out.Hex, out.RGB, out.HSL, out.Brightness, out.Hue, out.Saturation, out.Lightness)
	return ExitCodeSuccess
}
