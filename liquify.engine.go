package liquify

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/itsatony/go-liquify/internal"
)

// Engine applies filters and renders paginate blocks and snippets.
// It is safe for concurrent use.
type Engine struct {
	filters   *internal.FilterTable
	paginator *internal.Paginator
	snippets  SnippetStore
	config    *engineConfig
	logger    *zap.Logger
}

// New creates a new Engine with the given options. The filter table is
// built here: built-ins first, then custom filters, then config aliases,
// then config removals.
func New(opts ...Option) (*Engine, error) {
	config := defaultEngineConfig()
	for _, opt := range opts {
		opt(config)
	}

	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	builder := internal.NewFilterTableBuilder(logger)
	internal.RegisterBuiltinFilters(builder)

	for _, f := range config.filters {
		if err := builder.Register(f); err != nil {
			return nil, NewConfigError(ErrMsgInvalidFilter, err)
		}
	}

	markup := internal.DefaultGridMarkup()
	if cfg := config.settings; cfg != nil {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		if err := applyAliases(builder, cfg.Aliases); err != nil {
			return nil, err
		}
		for _, name := range cfg.Disabled {
			builder.Remove(name)
			logger.Debug(LogMsgFilterDisabled, zap.String(LogFieldFilter, name))
		}
		markup = cfg.Grid
	}
	if config.gridMarkup != nil {
		markup = *config.gridMarkup
	}

	table := builder.Build()
	logger.Debug(LogMsgEngineCreated, zap.Int(LogFieldFilters, table.Count()))

	return &Engine{
		filters:   table,
		paginator: internal.NewPaginator(markup, logger),
		snippets:  config.snippets,
		config:    config,
		logger:    logger,
	}, nil
}

// MustNew creates a new Engine and panics if there's an error.
func MustNew(opts ...Option) *Engine {
	engine, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return engine
}

// applyAliases registers aliases in sorted order so failures are reported
// deterministically.
func applyAliases(builder *internal.FilterTableBuilder, aliases map[string]string) error {
	names := make([]string, 0, len(aliases))
	for alias := range aliases {
		names = append(names, alias)
	}
	sort.Strings(names)

	for _, alias := range names {
		if err := builder.Alias(alias, aliases[alias]); err != nil {
			return NewConfigError(ErrMsgConfigInvalidAlias, err).
				WithMetadata(MetaKeyAlias, alias).
				WithMetadata(MetaKeyFilter, aliases[alias])
		}
	}
	return nil
}

// Apply invokes the named filter on base. A result of Empty is returned
// as-is; use Display to render it.
func (e *Engine) Apply(name string, base any, args ...any) (any, error) {
	result, err := e.filters.Apply(name, base, args...)
	if err != nil {
		return nil, NewFilterError(name, err)
	}
	return result, nil
}

// Pipe applies a chain of filters left to right, feeding each result into
// the next filter as its base.
func (e *Engine) Pipe(base any, calls ...FilterCall) (any, error) {
	current := base
	for _, call := range calls {
		next, err := e.Apply(call.Name, current, call.Args...)
		if err != nil {
			return nil, err
		}
		current = next
	}
	return current, nil
}

// FilterCall is one step of a Pipe chain.
type FilterCall struct {
	Name string
	Args []any
}

// Filters returns the sorted names of all registered filters.
func (e *Engine) Filters() []string {
	return e.filters.Names()
}

// HasFilter checks if a filter is registered.
func (e *Engine) HasFilter(name string) bool {
	return e.filters.Has(name)
}

// FilterCount returns the number of registered filters.
func (e *Engine) FilterCount() int {
	return e.filters.Count()
}

// Paginate renders source as rows of cells. Each cell is rendered with a
// child of local holding the item under opts.ItemVar. On failure no output
// is returned.
func (e *Engine) Paginate(source any, opts GridOptions, local, global *Scope, render RenderFunc) (string, error) {
	out, err := e.paginator.Render(source, opts, local, global, render)
	if err != nil {
		return "", NewPaginateError(err)
	}
	return out, nil
}

// GridMarkup returns the markup used by Paginate.
func (e *Engine) GridMarkup() GridMarkup {
	return e.paginator.Markup()
}

// RenderSnippet returns the pre-rendered text of a named snippet. A missing
// snippet, or an engine without a store, renders as empty text.
func (e *Engine) RenderSnippet(ctx context.Context, name string) (string, error) {
	if e.snippets == nil {
		e.logger.Debug(LogMsgSnippetMissing, zap.String(LogFieldSnippet, name))
		return "", nil
	}

	snippet, err := e.snippets.Get(ctx, name)
	if err != nil {
		if IsSnippetNotFound(err) {
			e.logger.Debug(LogMsgSnippetMissing, zap.String(LogFieldSnippet, name))
			return "", nil
		}
		return "", NewSnippetStoreError(name, err)
	}

	e.logger.Debug(LogMsgSnippetRendered,
		zap.String(LogFieldSnippet, name),
		zap.Int(LogFieldBodyBytes, len(snippet.Body)))
	return snippet.Body, nil
}

// SnippetStore returns the configured snippet store, or nil.
func (e *Engine) SnippetStore() SnippetStore {
	return e.snippets
}

// Display renders a filter result as template output text.
func (e *Engine) Display(v any) string {
	return internal.ToString(v)
}

// Truthy applies template truthiness to a filter result.
func (e *Engine) Truthy(v any) bool {
	return internal.IsTruthy(v)
}
