package liquify

import (
	"go.uber.org/zap"
)

// Option is a functional option for configuring the Engine.
type Option func(*engineConfig)

// engineConfig holds the internal configuration for an Engine.
type engineConfig struct {
	logger     *zap.Logger
	settings   *Config
	filters    []*Filter
	snippets   SnippetStore
	gridMarkup *GridMarkup
}

// defaultEngineConfig returns the default engine configuration.
func defaultEngineConfig() *engineConfig {
	return &engineConfig{
		logger: nil,
	}
}

// WithLogger sets the logger for the engine.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}

// WithConfig applies a declarative configuration: filter aliases, disabled
// filters and grid markup.
func WithConfig(cfg *Config) Option {
	return func(c *engineConfig) {
		c.settings = cfg
	}
}

// WithFilter registers a custom filter. Custom filters are registered after
// the built-ins, so a filter with a built-in name replaces it.
// May be given multiple times; later filters win.
func WithFilter(f *Filter) Option {
	return func(c *engineConfig) {
		c.filters = append(c.filters, f)
	}
}

// WithSnippetStore sets the store consulted by RenderSnippet.
// Default: nil (every snippet renders empty)
func WithSnippetStore(store SnippetStore) Option {
	return func(c *engineConfig) {
		c.snippets = store
	}
}

// WithGridMarkup sets the row/cell markup written by Paginate. It takes
// precedence over the grid section of a Config.
// Default: <tr class="rowN"><td class="colN">
func WithGridMarkup(markup GridMarkup) Option {
	return func(c *engineConfig) {
		c.gridMarkup = &markup
	}
}
