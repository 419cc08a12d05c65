package sqlitec

import "github.com/nsqlite/sqlitebind/internal/log"

type openConfig struct {
	flags           OpenFlag
	postOpenQueries []string
	logger          log.Logger
}

// OpenOption customizes how Open creates a connection.
type OpenOption func(*openConfig)

// WithFlags replaces the default open flags.
func WithFlags(flags OpenFlag) OpenOption {
	return func(config *openConfig) {
		config.flags = flags
	}
}

// WithPostOpenQueries sets a slice of queries to be executed right after the
// connection is opened, typically PRAGMA statements. If any of them fails the
// connection is closed and Open returns the error.
func WithPostOpenQueries(queries []string) OpenOption {
	return func(config *openConfig) {
		config.postOpenQueries = queries
	}
}

// WithLogger makes the connection log statement lifecycle failures and
// leaked statements.
func WithLogger(logger log.Logger) OpenOption {
	return func(config *openConfig) {
		config.logger = logger
	}
}
