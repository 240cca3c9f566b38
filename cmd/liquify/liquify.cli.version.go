package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/itsatony/go-liquify"
)

// versionOutput represents structured output for version
type versionOutput struct {
	Version   string `json:"version" yaml:"version"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Filters   int    `json:"filters" yaml:"filters"`
}

func runVersion(args []string, stdout, stderr io.Writer) int {
	format, err := parseVersionFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidFormat, err)
		return ExitCodeUsageError
	}

	out := versionOutput{
		Version:   liquify.Version,
		GoVersion: runtime.Version(),
		Filters:   liquify.MustNew().FilterCount(),
	}

	switch format {
	case OutputFormatJSON:
		if err := writeJSON(stdout, out); err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgJSONMarshalFailed, err)
			return ExitCodeError
		}
	case OutputFormatYAML:
		data, err := yaml.Marshal(out)
		if err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgYAMLMarshalFailed, err)
			return ExitCodeError
		}
		stdout.Write(data)
	default:
		fmt.Fprintf(stdout, VersionTextTemplate+FmtNewline, out.Version, out.GoVersion)
	}
	return ExitCodeSuccess
}

func parseVersionFlags(args []string) (string, error) {
	fs := flag.NewFlagSet(CmdNameVersion, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var format string
	fs.StringVar(&format, FlagFormat, FlagDefaultFormat, "")
	fs.StringVar(&format, FlagFormatShort, FlagDefaultFormat, "")

	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if !validFormat(format, OutputFormatText, OutputFormatJSON, OutputFormatYAML) {
		return "", errors.New(ErrMsgInvalidFormat)
	}
	return format, nil
}
