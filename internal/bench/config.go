package bench

import (
	"errors"
	"fmt"
	"log"

	"github.com/alexflint/go-arg"
	"github.com/joho/godotenv"
	"github.com/nsqlite/sqlitebind/internal/sqlitec"
	"github.com/nsqlite/sqlitebind/internal/version"
)

// Config represents the configuration for sqlitebindbench.
type Config struct {
	Rows         int    `arg:"-r,--rows,env:SQLITEBINDBENCH_ROWS" help:"Number of users inserted by each benchmark" default:"10000"`
	PayloadBytes int    `arg:"--payload-bytes,env:SQLITEBINDBENCH_PAYLOAD_BYTES" help:"Size of the text inserted by the large benchmark" default:"10000"`
	Dir          string `arg:"--dir,env:SQLITEBINDBENCH_DIR" help:"Directory for the benchmark databases, a temporary one is used when empty"`
	Verbose      bool   `arg:"-v,--verbose,env:SQLITEBINDBENCH_VERBOSE" help:"Log benchmark results as JSON to stderr" default:"false"`
}

func (Config) Version() string {
	return fmt.Sprintf("%s\n", version.BenchVersion(sqlitec.LibVersion()))
}

// MustParse parses and validates the configuration from the command
// line arguments. It returns a Config struct or exits the program
// with an error.
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

	if err := validateConfig(cfg); err != nil {
		log.Fatal(err)
	}

	return cfg
}

func validateConfig(cfg Config) error {
	if cfg.Rows < 1 {
		return errors.New("rows must be greater than 0")
	}
	if cfg.PayloadBytes < 0 {
		return errors.New("payload bytes can not be negative")
	}
	return nil
}
