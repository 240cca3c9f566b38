package internal

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Default grid markup
const (
	DefaultRowElement  = "tr"
	DefaultCellElement = "td"
	DefaultRowClass    = "row"
	DefaultCellClass   = "col"
)

// Grid markup formats
const (
	fmtGridOpen  = `<%s class="%s%d">`
	fmtGridClose = `</%s>`
)

// Grid error messages
const (
	ErrMsgGridInvalidCols  = "cols must be positive"
	ErrMsgGridNotSequence  = "paginate source is not a sequence"
	ErrMsgGridNilRender    = "render callback cannot be nil"
	ErrMsgGridEmptyItemVar = "item variable cannot be empty"
	ErrMsgGridCellFailed   = "cell render failed"
)

// GridOptions controls which items are laid out and how many go in a row.
// Nil fields are absent.
type GridOptions struct {
	ItemVar string
	Offset  *int
	Limit   *int
	Cols    *int
}

// GridMarkup names the row and cell elements and their class prefixes.
type GridMarkup struct {
	RowElement  string `yaml:"row_element"`
	CellElement string `yaml:"cell_element"`
	RowClass    string `yaml:"row_class"`
	CellClass   string `yaml:"cell_class"`
}

// DefaultGridMarkup returns table markup: <tr class="rowN"><td class="colN">
func DefaultGridMarkup() GridMarkup {
	return GridMarkup{
		RowElement:  DefaultRowElement,
		CellElement: DefaultCellElement,
		RowClass:    DefaultRowClass,
		CellClass:   DefaultCellClass,
	}
}

// withDefaults fills blank fields from DefaultGridMarkup
func (m GridMarkup) withDefaults() GridMarkup {
	def := DefaultGridMarkup()
	if m.RowElement == "" {
		m.RowElement = def.RowElement
	}
	if m.CellElement == "" {
		m.CellElement = def.CellElement
	}
	if m.RowClass == "" {
		m.RowClass = def.RowClass
	}
	if m.CellClass == "" {
		m.CellClass = def.CellClass
	}
	return m
}

// RenderFunc renders the child nodes of a tag body for one cell.
type RenderFunc func(local, global *Scope) (string, error)

// GridError reports a failure while laying out or rendering a grid. Row
// and Col are 1-based and zero when the failure is not tied to a cell.
type GridError struct {
	Message string
	Row     int
	Col     int
	Cause   error
}

// NewGridError creates a grid error not tied to a cell
func NewGridError(message string) *GridError {
	return &GridError{Message: message}
}

// NewGridCellError creates a grid error for a failed cell render
func NewGridCellError(row, col int, cause error) *GridError {
	return &GridError{
		Message: ErrMsgGridCellFailed,
		Row:     row,
		Col:     col,
		Cause:   cause,
	}
}

// Error implements the error interface
func (e *GridError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf(ErrFmtGridCell, e.Message, e.Row, e.Col, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause
func (e *GridError) Unwrap() error {
	return e.Cause
}

// Materialize turns a possibly lazy source into an ordered slice.
// iter.Seq[any] sources are drained once.
func Materialize(source any) ([]any, error) {
	items, ok := toSequence(source)
	if !ok {
		return nil, NewGridError(ErrMsgGridNotSequence)
	}
	return items, nil
}

// windowItems applies offset and limit with slice semantics: negative
// bounds count from the end and out-of-range bounds clamp.
func windowItems(items []any, offset, limit *int) []any {
	n := len(items)
	start, end := 0, n
	if offset != nil {
		start = normaliseBound(*offset, n)
	}
	if limit != nil {
		if offset != nil {
			end = normaliseBound(*offset+*limit, n)
		} else {
			end = normaliseBound(*limit, n)
		}
	}
	if start >= end {
		return nil
	}
	return items[start:end]
}

func normaliseBound(i, n int) int {
	if i < 0 {
		i += n
	}
	return clampInt(i, 0, n)
}

// BuildGrid windows items and partitions them into rows of cols items.
// A nil cols puts every item in a single row. The last row may be short.
func BuildGrid(items []any, offset, limit, cols *int) ([][]any, error) {
	window := windowItems(items, offset, limit)
	if len(window) == 0 {
		return nil, nil
	}

	width := len(window)
	if cols != nil {
		if *cols <= 0 {
			return nil, NewGridError(ErrMsgGridInvalidCols)
		}
		width = *cols
	}

	rows := make([][]any, 0, (len(window)+width-1)/width)
	for i := 0; i < len(window); i += width {
		end := min(i+width, len(window))
		rows = append(rows, window[i:end])
	}
	return rows, nil
}

// Paginator lays sequences out as rows and cells of markup.
type Paginator struct {
	markup GridMarkup
	logger *zap.Logger
}

// NewPaginator creates a paginator. Blank markup fields take the defaults.
func NewPaginator(markup GridMarkup, logger *zap.Logger) *Paginator {
	if logger == nil {
		logger = zap.NewNop()
	}
	markup = markup.withDefaults()
	logger.Debug(LogMsgPaginatorCreated)

	return &Paginator{
		markup: markup,
		logger: logger,
	}
}

// Markup returns the markup used for rows and cells
func (p *Paginator) Markup() GridMarkup {
	return p.markup
}

// Render lays source out as a grid. Each cell binds opts.ItemVar in a fresh
// child of local, renders it with render and discards the child. On error
// no output is returned.
func (p *Paginator) Render(source any, opts GridOptions, local, global *Scope, render RenderFunc) (string, error) {
	if render == nil {
		return "", NewGridError(ErrMsgGridNilRender)
	}
	if opts.ItemVar == "" {
		return "", NewGridError(ErrMsgGridEmptyItemVar)
	}
	if local == nil {
		local = NewScope(nil)
	}
	if global == nil {
		global = NewScope(nil)
	}

	start := time.Now()
	items, err := Materialize(source)
	if err != nil {
		return "", err
	}
	rows, err := BuildGrid(items, opts.Offset, opts.Limit, opts.Cols)
	if err != nil {
		return "", err
	}

	p.logger.Debug(LogMsgPaginateStart,
		zap.String(LogFieldItemVar, opts.ItemVar),
		zap.Int(LogFieldItems, len(items)),
		zap.Int(LogFieldRows, len(rows)))

	var sb strings.Builder
	for i, row := range rows {
		rowNum := i + 1
		fmt.Fprintf(&sb, fmtGridOpen, p.markup.RowElement, p.markup.RowClass, rowNum)
		for j, item := range row {
			colNum := j + 1
			cell := local.Child(map[string]any{opts.ItemVar: item})
			out, err := render(cell, global)
			if err != nil {
				return "", NewGridCellError(rowNum, colNum, err)
			}
			fmt.Fprintf(&sb, fmtGridOpen, p.markup.CellElement, p.markup.CellClass, colNum)
			sb.WriteString(out)
			fmt.Fprintf(&sb, fmtGridClose, p.markup.CellElement)
		}
		fmt.Fprintf(&sb, fmtGridClose, p.markup.RowElement)
		p.logger.Debug(LogMsgPaginateRow,
			zap.Int(LogFieldRow, rowNum),
			zap.Int(LogFieldCols, len(row)))
	}

	p.logger.Debug(LogMsgPaginateEnd,
		zap.Int(LogFieldRows, len(rows)),
		zap.Duration(LogFieldDuration, time.Since(start)))

	return sb.String(), nil
}
