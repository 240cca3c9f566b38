package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

// applyConfig holds parsed apply command configuration
type applyConfig struct {
	base       string
	args       argList
	configPath string
	format     string
}

func runApply(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		fmt.Fprintln(stderr, ErrMsgMissingFilter)
		return ExitCodeUsageError
	}
	name := args[0]

	cfg, err := parseApplyFlags(args[1:])
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidFlags, err)
		return ExitCodeUsageError
	}

	var base any
	if cfg.base != "" {
		text, err := readValue(cfg.base, stdin)
		if err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadStdinFailed, err)
			return ExitCodeInputError
		}
		base = parseLooseValue(text)
	}

	filterArgs := make([]any, len(cfg.args))
	for i, a := range cfg.args {
		filterArgs[i] = parseLooseValue(a)
	}

	engine, err := loadEngine(cfg.configPath)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgLoadConfigFailed, err)
		return ExitCodeInputError
	}

	result, err := engine.Apply(name, base, filterArgs...)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgApplyFailed, err)
		return ExitCodeError
	}

	if cfg.format == OutputFormatJSON {
		if err := writeJSON(stdout, result); err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgJSONMarshalFailed, err)
			return ExitCodeError
		}
		return ExitCodeSuccess
	}

	fmt.Fprintln(stdout, engine.Display(result))
	return ExitCodeSuccess
}

func parseApplyFlags(args []string) (*applyConfig, error) {
	fs := flag.NewFlagSet(CmdNameApply, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	cfg := &applyConfig{}
	fs.StringVar(&cfg.base, FlagBase, "", "")
	fs.StringVar(&cfg.base, FlagBaseShort, "", "")
	fs.Var(&cfg.args, FlagArg, "")
	fs.Var(&cfg.args, FlagArgShort, "")
	fs.StringVar(&cfg.configPath, FlagConfig, "", "")
	fs.StringVar(&cfg.configPath, FlagConfigShort, "", "")
	fs.StringVar(&cfg.format, FlagFormat, FlagDefaultFormat, "")
	fs.StringVar(&cfg.format, FlagFormatShort, FlagDefaultFormat, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if !validFormat(cfg.format, OutputFormatText, OutputFormatJSON) {
		return nil, errors.New(ErrMsgInvalidFormat)
	}
	return cfg, nil
}

// listConfig holds parsed list command configuration
type listConfig struct {
	configPath string
	format     string
}

func runList(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(CmdNameList, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	cfg := &listConfig{}
	fs.StringVar(&cfg.configPath, FlagConfig, "", "")
	fs.StringVar(&cfg.configPath, FlagConfigShort, "", "")
	fs.StringVar(&cfg.format, FlagFormat, FlagDefaultFormat, "")
	fs.StringVar(&cfg.format, FlagFormatShort, FlagDefaultFormat, "")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidFlags, err)
		return ExitCodeUsageError
	}
	if !validFormat(cfg.format, OutputFormatText, OutputFormatJSON) {
		fmt.Fprintln(stderr, ErrMsgInvalidFormat)
		return ExitCodeUsageError
	}

	engine, err := loadEngine(cfg.configPath)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgLoadConfigFailed, err)
		return ExitCodeInputError
	}

	names := engine.Filters()
	if cfg.format == OutputFormatJSON {
		if err := writeJSON(stdout, names); err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgJSONMarshalFailed, err)
			return ExitCodeError
		}
		return ExitCodeSuccess
	}

	fmt.Fprintln(stdout, strings.Join(names, FmtNewline))
	return ExitCodeSuccess
}
