package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nsqlite/sqlitebind/internal/shell/config"
	"github.com/nsqlite/sqlitebind/internal/shell/styled"
	"github.com/nsqlite/sqlitebind/internal/sqlitec"
	"github.com/nsqlite/sqlitebind/internal/util/sysutil"
	"github.com/peterh/liner"
)

type Repl struct {
	conf        config.Config
	conn        *sqlitec.Conn
	ctx         context.Context
	stop        context.CancelFunc
	out         io.Writer
	historyPath string
}

func NewRepl(
	ctx context.Context,
	stop context.CancelFunc,
	conf config.Config,
	conn *sqlitec.Conn,
) Repl {
	return Repl{
		conf:        conf,
		conn:        conn,
		ctx:         ctx,
		stop:        stop,
		out:         os.Stdout,
		historyPath: filepath.Join(os.TempDir(), ".sqlitebind_history"),
	}
}

func (r *Repl) Start() error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(cmdHelpCompleter)

	if file, err := os.Open(r.historyPath); err == nil {
		_, _ = line.ReadHistory(file)
		file.Close()
	}
	defer r.saveHistory(line)

	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "Connected to %s\n", r.conn.Path())
	fmt.Fprintln(r.out, `Enter ".help" for usage hints and ".quit" or "CTRL+C" to quit`)
	fmt.Fprintln(r.out)

	for {
		select {
		case <-r.ctx.Done():
			return nil
		default:
			input, err := line.Prompt("sqlitebind> ")
			if err != nil {
				if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
					fmt.Fprintln(r.out, "Exiting...")
					r.Shutdown()
					return nil
				}
				return fmt.Errorf("failed to read input: %w", err)
			}

			input = strings.TrimSpace(input)
			if input != "" {
				line.AppendHistory(input)
			}

			if quit := r.handleInput(input); quit {
				r.Shutdown()
				return nil
			}
		}
	}
}

// handleInput runs one line typed by the user and reports whether the REPL
// should stop.
func (r *Repl) handleInput(input string) bool {
	input = strings.TrimSpace(input)
	name, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "":
		return false
	case "exit", ".exit", ".quit":
		return true
	case "clear", ".clear":
		sysutil.ClearTerminal(r.out)
	case "help", ".help":
		cmdHelp(r.out)
	case ".tables":
		cmdQuery(r, "SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name", nil)
	case ".schema":
		cmdSchema(r, arg)
	case ".count":
		cmdCount(r, arg)
	case ".lastid":
		cmdLastID(r)
	default:
		if strings.HasPrefix(input, ".") {
			fmt.Fprintln(r.out, "Unknown command, type .help for usage hints")
			return false
		}
		cmdQuery(r, input, nil)
	}

	return false
}

// Shutdown stops the REPL.
func (r *Repl) Shutdown() {
	r.stop()
}

func (r *Repl) format() config.OutputFormat {
	if r.conf.Format == nil {
		return config.OutputTable
	}
	return *r.conf.Format
}

func (r *Repl) saveHistory(line *liner.State) {
	file, err := os.Create(r.historyPath)
	if err != nil {
		fmt.Fprintln(r.out, styled.DimmedColor().Sprintf("failed to save history: %s", err))
		return
	}
	defer file.Close()
	_, _ = line.WriteHistory(file)
}
