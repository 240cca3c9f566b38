package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/itsatony/go-liquify"
)

// paginateConfig holds parsed paginate command configuration
type paginateConfig struct {
	data       string
	cols       int
	offset     int
	limit      int
	itemVar    string
	configPath string
}

func runPaginate(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parsePaginateFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidFlags, err)
		return ExitCodeUsageError
	}
	if cfg.data == "" {
		fmt.Fprintln(stderr, ErrMsgMissingData)
		return ExitCodeUsageError
	}

	text, err := readValue(cfg.data, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadStdinFailed, err)
		return ExitCodeInputError
	}
	items, err := parseJSONValue(text)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidJSON, err)
		return ExitCodeInputError
	}

	engine, err := loadEngine(cfg.configPath)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgLoadConfigFailed, err)
		return ExitCodeInputError
	}

	render := func(cell, _ *liquify.Scope) (string, error) {
		v, _ := cell.Get(cfg.itemVar)
		return liquify.ToString(v), nil
	}

	out, err := engine.Paginate(items, cfg.gridOptions(), nil, nil, render)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgPaginateFailed, err)
		return ExitCodeError
	}

	fmt.Fprintln(stdout, out)
	return ExitCodeSuccess
}

func parsePaginateFlags(args []string) (*paginateConfig, error) {
	fs := flag.NewFlagSet(CmdNamePaginate, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	cfg := &paginateConfig{}
	fs.StringVar(&cfg.data, FlagData, "", "")
	fs.StringVar(&cfg.data, FlagDataShort, "", "")
	fs.IntVar(&cfg.cols, FlagCols, FlagUnset, "")
	fs.IntVar(&cfg.offset, FlagOffset, 0, "")
	fs.IntVar(&cfg.limit, FlagLimit, FlagUnset, "")
	fs.StringVar(&cfg.itemVar, FlagItemVar, FlagDefaultItemVar, "")
	fs.StringVar(&cfg.configPath, FlagConfig, "", "")
	fs.StringVar(&cfg.configPath, FlagConfigShort, "", "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// gridOptions maps unset flags to absent options
func (c *paginateConfig) gridOptions() liquify.GridOptions {
	opts := liquify.GridOptions{ItemVar: c.itemVar}
	if c.offset != 0 {
		opts.Offset = liquify.Int(c.offset)
	}
	if c.limit != FlagUnset {
		opts.Limit = liquify.Int(c.limit)
	}
	if c.cols != FlagUnset {
		opts.Cols = liquify.Int(c.cols)
	}
	return opts
}
