package liquify

import "time"

// Version is the library version.
const Version = "0.1.0"

// Error code constants for categorization
const (
	ErrCodeFilter  = "LIQUIFY_FILTER"
	ErrCodeTag     = "LIQUIFY_TAG"
	ErrCodeConfig  = "LIQUIFY_CONFIG"
	ErrCodeStorage = "LIQUIFY_STORAGE"
)

// Metadata keys attached to errors
const (
	MetaKeyFilter    = "filter"
	MetaKeyArgument  = "argument"
	MetaKeyExpected  = "expected"
	MetaKeyActual    = "actual"
	MetaKeyTag       = "tag"
	MetaKeyRow       = "row"
	MetaKeyColumn    = "column"
	MetaKeyProperty  = "property"
	MetaKeyAlias     = "alias"
	MetaKeyAlgorithm = "algorithm"
	MetaKeyInput     = "input"
	MetaKeyPath      = "path"
	MetaKeySnippet   = "snippet"

	MetaKeySuggestions   = "suggestions"
	suggestionsSeparator = ","
)

// Tag names reported in error metadata
const (
	TagNamePaginate = "paginate"
	TagNameInclude  = "include"
)

// Error message constants
const (
	// Filter errors
	ErrMsgUnknownFilter        = "unknown filter"
	ErrMsgFilterArgCount       = "wrong number of filter arguments"
	ErrMsgFilterArgType        = "invalid filter argument"
	ErrMsgFilterFailed         = "filter execution failed"
	ErrMsgPropertyNotFound     = "property not found"
	ErrMsgArithmetic           = "arithmetic error"
	ErrMsgInvalidColor         = "invalid color"
	ErrMsgUnsupportedAlgorithm = "unsupported digest algorithm"

	// Tag errors
	ErrMsgPaginateFailed = "paginate failed"

	// Config errors
	ErrMsgConfigRead         = "failed to read config file"
	ErrMsgConfigParse        = "failed to parse config"
	ErrMsgConfigInvalidAlias = "invalid filter alias"
	ErrMsgConfigEmptyName    = "disabled filter name cannot be empty"
	ErrMsgInvalidFilter      = "invalid custom filter"

	// Snippet storage errors
	ErrMsgSnippetNotFound    = "snippet not found"
	ErrMsgSnippetEmptyName   = "snippet name cannot be empty"
	ErrMsgSnippetNil         = "snippet cannot be nil"
	ErrMsgStorageClosed      = "snippet store is closed"
	ErrMsgSnippetStoreFailed = "snippet store failed"

	// PostgreSQL errors
	ErrMsgPostgresConnectionFailed = "failed to connect to PostgreSQL"
	ErrMsgPostgresQueryFailed      = "PostgreSQL query failed"
	ErrMsgPostgresScanFailed       = "failed to scan PostgreSQL result"
	ErrMsgPostgresMigrationFailed  = "PostgreSQL migration failed"
	ErrMsgPostgresEmptyConnString  = "PostgreSQL connection string is empty"
	ErrMsgPostgresAlreadyClosed    = "PostgreSQL snippet store is already closed"
)

// Error format strings
const (
	ErrFmtMigrationVersion = "migration %d failed: %w"
)

// Log message constants
const (
	LogMsgEngineCreated    = "liquify engine created"
	LogMsgFilterDisabled   = "filter disabled by config"
	LogMsgSnippetMissing   = "snippet not found - rendering empty"
	LogMsgSnippetRendered  = "snippet rendered"
	LogMsgMigrationApplied = "migration applied"
	LogMsgConfigLoaded     = "config loaded"
)

// Log field name constants
const (
	LogFieldFilters   = "filters"
	LogFieldAliases   = "aliases"
	LogFieldDisabled  = "disabled"
	LogFieldFilter    = "filter"
	LogFieldSnippet   = "snippet"
	LogFieldVersion   = "version"
	LogFieldPath      = "path"
	LogFieldBodyBytes = "body_bytes"
)

// PostgreSQL snippet store defaults
const (
	PostgresTablePrefix            = "liquify_"
	PostgresDefaultMaxOpenConns    = 25
	PostgresDefaultMaxIdleConns    = 5
	PostgresDefaultConnMaxLifetime = 5 * time.Minute
	PostgresDefaultConnMaxIdleTime = 5 * time.Minute
	PostgresDefaultQueryTimeout    = 30 * time.Second

	postgresDriverName            = "postgres"
	postgresSnippetsTableSuffix   = "snippets"
	postgresMigrationsTableSuffix = "schema_migrations"
)
