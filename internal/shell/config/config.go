package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/joho/godotenv"
	"github.com/nsqlite/sqlitebind/internal/sqlitec"
	"github.com/nsqlite/sqlitebind/internal/version"
	"github.com/orsinium-labs/enum"
)

// OutputFormat is how query results are printed.
type OutputFormat enum.Member[string]

var (
	OutputTable = OutputFormat{Value: "table"}
	OutputJSON  = OutputFormat{Value: "json"}

	OutputFormats = enum.New(OutputTable, OutputJSON)
)

// Config represents the configuration for sqlitebind.
type Config struct {
	Database string        `arg:"positional,required" help:"Path to the SQLite database file, created if it does not exist"`
	Query    string        `arg:"-q,--query,env:SQLITEBIND_QUERY" help:"Run a single query and exit instead of starting the interactive shell"`
	Params   []string      `arg:"-p,--param,separate" help:"Value bound to the next placeholder of --query, may be repeated (NULL, integers, floats, true, false, x'hex', 'text')"`
	Output   string        `arg:"-o,--output,env:SQLITEBIND_OUTPUT" help:"Output format (table, json)" default:"table"`
	ReadOnly bool          `arg:"--read-only,env:SQLITEBIND_READ_ONLY" help:"Open the database in read-only mode" default:"false"`
	Pragmas  []string      `arg:"--pragma,separate" help:"PRAGMA executed right after opening the database, may be repeated (e.g. --pragma 'journal_mode = WAL')"`
	Verbose  bool          `arg:"-v,--verbose,env:SQLITEBIND_VERBOSE" help:"Log statement failures as JSON to stderr" default:"false"`
	Format   *OutputFormat `arg:"-"`
}

func (Config) Version() string {
	return fmt.Sprintf("%s\n", version.ShellVersion(sqlitec.LibVersion()))
}

// MustParse parses and validates the configuration from the command
// line arguments. It returns a Config struct or exits the program
// with an error.
//
// Variables from a .env file in the working directory are loaded before
// parsing, without overriding the ones already set.
func MustParse(args []string) Config {
	_ = godotenv.Load()

	cfg := Config{}

	parser, err := arg.NewParser(
		arg.Config{},
		&cfg,
	)
	if err != nil {
		log.Fatal(err)
	}
	parser.MustParse(args[1:])

	cfg.Format, err = parseOutput(cfg.Output)
	if err != nil {
		log.Fatal(err)
	}

	if err := validateParams(cfg.Query, cfg.Params); err != nil {
		log.Fatal(err)
	}

	for i, pragma := range cfg.Pragmas {
		cfg.Pragmas[i] = normalizePragma(pragma)
	}

	return cfg
}

// parseOutput validates the output format name.
func parseOutput(output string) (*OutputFormat, error) {
	format := OutputFormats.Parse(output)
	if format == nil {
		valid := make([]string, 0, len(OutputFormats.Members()))
		for _, member := range OutputFormats.Members() {
			valid = append(valid, member.Value)
		}
		return nil, fmt.Errorf(
			"invalid output format, valid values are: %s",
			strings.Join(valid, ", "),
		)
	}
	return format, nil
}

// validateParams checks that parameters are only given along with a query.
func validateParams(query string, params []string) error {
	if len(params) > 0 && strings.TrimSpace(query) == "" {
		return errors.New("parameters can only be used with --query")
	}
	return nil
}

// normalizePragma prefixes the statement with PRAGMA when the user only
// gave the setting, e.g. "foreign_keys = ON".
func normalizePragma(pragma string) string {
	trimmed := strings.TrimSpace(pragma)
	if strings.HasPrefix(strings.ToUpper(trimmed), "PRAGMA ") {
		return trimmed
	}
	return "PRAGMA " + trimmed
}
