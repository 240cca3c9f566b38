package internal

// String value constants for conversions
const (
	StringValueNil   = "nil"
	StringValueTrue  = "true"
	StringValueFalse = "false"
	StringValueEmpty = ""
	StringValueSpace = " "
)

// Numeric constants for conversions
const (
	FloatFormatFlag   = 'f'
	FloatPrecisionAll = -1
	FloatBitSize64    = 64
	IntBase10         = 10
	IntBitSize64      = 64
)

// Argument index constants for error reporting.
// Index 0 is the piped base value, positional arguments start at 1.
const (
	ArgIndexBase   = 0
	ArgIndexFirst  = 1
	ArgIndexSecond = 2
	ArgIndexThird  = 3
)

// Log message constants
const (
	LogMsgBuilderCreated    = "filter table builder created"
	LogMsgFilterRegistered  = "filter registered"
	LogMsgFilterOverwritten = "filter overwritten - last-write-wins"
	LogMsgFilterRemoved     = "filter removed"
	LogMsgFilterAliased     = "filter alias registered"
	LogMsgTableBuilt        = "filter table built"
	LogMsgPaginatorCreated  = "paginator created"
	LogMsgPaginateStart     = "starting paginate"
	LogMsgPaginateRow       = "paginate row"
	LogMsgPaginateEnd       = "paginate complete"
)

// Log field names
const (
	LogFieldFilter   = "filter"
	LogFieldAlias    = "alias"
	LogFieldCount    = "count"
	LogFieldItems    = "items"
	LogFieldRows     = "rows"
	LogFieldCols     = "cols"
	LogFieldRow      = "row"
	LogFieldItemVar  = "item_var"
	LogFieldOffset   = "offset"
	LogFieldLimit    = "limit"
	LogFieldDuration = "duration"
)

// Error format string constants (for Error() methods)
const (
	ErrFmtTagMessage     = "%s: %s"
	ErrFmtWithCause      = "%s: %v"
	ErrFmtFilterArgCount = "%s: %s (expected %d, got %d)"
	ErrFmtFilterArgType  = "%s: %s (argument %d)"
	ErrFmtFilterFailed   = "filter %s failed: %v"
	ErrFmtPropertyLookup = "%s: %q on %T"
	ErrFmtGridCell       = "%s at row %d, column %d: %v"
	ErrFmtColorInput     = "%s: %q"
)
