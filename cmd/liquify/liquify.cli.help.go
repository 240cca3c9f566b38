package main

import (
	"fmt"
	"io"
)

func runHelp(args []string, stdout io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stdout, HelpMainUsage)
		return ExitCodeSuccess
	}

	cmd := args[0]
	switch cmd {
	case CmdNameApply:
		fmt.Fprintln(stdout, HelpApplyUsage)
	case CmdNameList:
		fmt.Fprintln(stdout, HelpListUsage)
	case CmdNameColor:
		fmt.Fprintln(stdout, HelpColorUsage)
	case CmdNamePaginate:
		fmt.Fprintln(stdout, HelpPaginateUsage)
	case CmdNameVersion:
		fmt.Fprintln(stdout, HelpVersionUsage)
	case CmdNameHelp:
		fmt.Fprintln(stdout, HelpHelpUsage)
	default:
		fmt.Fprintf(stdout, FmtErrorWithDetail, ErrMsgUnknownCommand, cmd)
		fmt.Fprintln(stdout, HelpMainUsage)
		return ExitCodeUsageError
	}

	return ExitCodeSuccess
}
