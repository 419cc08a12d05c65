package shell

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/nsqlite/sqlitebind/internal/shell/styled"
	"github.com/nsqlite/sqlitebind/internal/sqlitec"
)

func cmdQuery(r *Repl, query string, bind sqlitec.BindFunc) {
	rs, err := r.conn.Execute(query, bind)
	if err != nil {
		renderError(r.out, r.format(), err)
		return
	}
	if err := renderResult(r.out, r.format(), rs, r.conn); err != nil {
		renderError(r.out, r.format(), err)
	}
}

func cmdSchema(r *Repl, tableName string) {
	if tableName == "" {
		cmdQuery(r, "SELECT sql FROM sqlite_master WHERE sql IS NOT NULL ORDER BY name", nil)
		return
	}

	cmdQuery(
		r,
		"SELECT sql FROM sqlite_master WHERE sql IS NOT NULL AND tbl_name = ? ORDER BY name",
		func(stmt *sqlitec.Stmt) error {
			return stmt.BindText(tableName)
		},
	)
}

func cmdCount(r *Repl, tableName string) {
	if tableName == "" {
		fmt.Fprintln(r.out, "Usage: .count [table_name]")
		return
	}
	cmdQuery(r, fmt.Sprintf("SELECT COUNT(*) AS count FROM %s", quoteIdentifier(tableName)), nil)
}

func cmdLastID(r *Repl) {
	id, ok := r.conn.LastInsertID()
	if !ok {
		fmt.Fprintln(r.out, styled.DimmedColor().Sprint("database is closed"))
		return
	}

	tw := styled.NewTableWriter()
	tw.AppendHeader(table.Row{"Last Insert ID"})
	tw.AppendRow(table.Row{id})
	fmt.Fprintln(r.out, tw.Render())
}

// quoteIdentifier quotes a table name so it can be used in a statement.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
