package main

// Command names
const (
	CmdNameApply    = "apply"
	CmdNameList     = "list"
	CmdNameColor    = "color"
	CmdNamePaginate = "paginate"
	CmdNameVersion  = "version"
	CmdNameHelp     = "help"
)

// Flag names - long form
const (
	FlagBase    = "base"
	FlagArg     = "arg"
	FlagConfig  = "config"
	FlagFormat  = "format"
	FlagData    = "data"
	FlagCols    = "cols"
	FlagOffset  = "offset"
	FlagLimit   = "limit"
	FlagItemVar = "item"
)

// Flag names - short form
const (
	FlagBaseShort   = "b"
	FlagArgShort    = "a"
	FlagConfigShort = "c"
	FlagFormatShort = "F"
	FlagDataShort   = "d"
)

// Flag default values
const (
	FlagDefaultFormat  = "text"
	FlagDefaultItemVar = "item"
	FlagUnset          = -1
)

// Output formats
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)

// Exit codes
const (
	ExitCodeSuccess    = 0
	ExitCodeError      = 1
	ExitCodeUsageError = 2
	ExitCodeInputError = 4
)

// Input source indicators
const (
	InputSourceStdin = "-"
)

// Error messages - ALL must be constants
const (
	ErrMsgUnknownCommand    = "unknown command"
	ErrMsgMissingFilter     = "filter name required"
	ErrMsgMissingColor      = "color value required"
	ErrMsgMissingData       = "data required"
	ErrMsgInvalidFlags      = "invalid flags"
	ErrMsgInvalidJSON       = "invalid JSON data"
	ErrMsgInvalidFormat     = "invalid output format"
	ErrMsgReadStdinFailed   = "failed to read from stdin"
	ErrMsgLoadConfigFailed  = "failed to load config"
	ErrMsgApplyFailed       = "filter failed"
	ErrMsgColorFailed       = "invalid color"
	ErrMsgPaginateFailed    = "paginate failed"
	ErrMsgJSONMarshalFailed = "failed to marshal JSON"
	ErrMsgYAMLMarshalFailed = "failed to marshal YAML"
)

// Help text templates
const (
	HelpMainUsage = `liquify - Liquid filter toolkit

Usage:
    liquify <command> [options]

Commands:
    apply       Apply a filter to a value
    list        List registered filters
    color       Show every view of a color value
    paginate    Lay a JSON array out as grid markup
    version     Show version information
    help        Show help for a command

Use "liquify help <command>" for more information about a command.`

	HelpApplyUsage = `Apply a filter to a value

Usage:
    liquify apply <filter> [options]

Options:
    -b, --base <json>       Base value as JSON (use "-" for stdin).
                            Text that is not JSON is taken as a string.
    -a, --arg <json>        Filter argument as JSON; repeat for more
    -c, --config <file>     YAML config with aliases and disabled filters
    -F, --format <format>   Output format: text, json (default: text)

Examples:
    liquify apply upcase -b '"hello"'
    liquify apply truncate -b 'The quick brown fox' -a 10
    liquify apply join -b '["a","b"]' -a '" / "'
    echo '[3,1,2]' | liquify apply sort -b - -F json`

	HelpListUsage = `List registered filters

Usage:
    liquify list [options]

Options:
    -c, --config <file>     YAML config with aliases and disabled filters
    -F, --format <format>   Output format: text, json (default: text)`

	HelpColorUsage = `Show every view of a color value

Usage:
    liquify color <value> [options]

Options:
    -F, --format <format>   Output format: text, json (default: text)

Examples:
    liquify color '#ff8000'
    liquify color 'hsl(210, 50%, 40%)' -F json`

	HelpPaginateUsage = `Lay a JSON array out as grid markup

Usage:
    liquify paginate [options]

Options:
    -d, --data <json>       JSON array (use "-" for stdin)
    --cols <n>              Cells per row (default: one row)
    --offset <n>            Items to skip; negative counts from the end
    --limit <n>             Items to take after the offset
    --item <name>           Item variable name (default: item)
    -c, --config <file>     YAML config with grid markup

Examples:
    liquify paginate -d '[1,2,3,4,5]' --cols 2`

	HelpVersionUsage = `Show version information

Usage:
    liquify version [options]

Options:
    -F, --format <format>   Output format: text, json, yaml (default: text)`

	HelpHelpUsage = `Show help for a command

Usage:
    liquify help [command]

Commands:
    apply       Show help for apply command
    list        Show help for list command
    color       Show help for color command
    paginate    Show help for paginate command
    version     Show help for version command`
)

// Version output format templates
const (
	VersionTextTemplate = "go-liquify version %s\nGo: %s"
)

// Color output format templates
const (
	ColorTextTemplate = "hex: %s\nrgb: %s\nhsl: %s\nbrightness: %g\nhue: %g\nsaturation: %g\nlightness: %g"
)

// CLI metadata
const (
	CLIName        = "liquify"
	CLIDescription = "Liquid filter toolkit"
)

// Format string constants
const (
	FmtErrorWithDetail = "%s: %s\n"
	FmtErrorWithCause  = "%s: %v\n"
	FmtNewline         = "\n"
	JSONIndent         = "  "
)
