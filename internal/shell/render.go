package shell

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/nsqlite/sqlitebind/internal/shell/config"
	"github.com/nsqlite/sqlitebind/internal/shell/styled"
	"github.com/nsqlite/sqlitebind/internal/sqlitec"
)

// writeSummary is what a statement without result columns reports.
type writeSummary struct {
	RowsAffected int64 `json:"rowsAffected"`
	LastInsertID int64 `json:"lastInsertId"`
}

func summaryOf(conn *sqlitec.Conn) writeSummary {
	rowsAffected, _ := conn.RowsAffected()
	lastInsertID, _ := conn.LastInsertID()
	return writeSummary{RowsAffected: rowsAffected, LastInsertID: lastInsertID}
}

// renderResult prints the result of a statement in the given format.
// Statements without result columns print the rows affected and the last
// insert id instead.
func renderResult(
	w io.Writer, format config.OutputFormat, rs sqlitec.ResultSet, conn *sqlitec.Conn,
) error {
	if format == config.OutputJSON {
		return renderJSON(w, rs, conn)
	}
	renderTable(w, rs, conn)
	return nil
}

func renderTable(w io.Writer, rs sqlitec.ResultSet, conn *sqlitec.Conn) {
	tw := styled.NewTableWriter()

	if len(rs.Columns) == 0 {
		summary := summaryOf(conn)
		tw.AppendHeader(table.Row{"-", "Rows Affected", "Last Insert ID"})
		tw.AppendRow(table.Row{"OK", summary.RowsAffected, summary.LastInsertID})
		fmt.Fprintln(w, tw.Render())
		return
	}

	header := table.Row{}
	for _, col := range rs.Columns {
		header = append(header, col)
	}
	tw.AppendHeader(header)

	for _, row := range rs.Rows {
		values := make(table.Row, 0, len(row))
		for _, col := range row {
			if !col.Value.Valid {
				values = append(values, styled.Null())
				continue
			}
			values = append(values, col.Value.String)
		}
		tw.AppendRow(values)
	}

	fmt.Fprintln(w, tw.Render())
	fmt.Fprintln(w, styled.DimmedColor().Sprintf("%d row(s)", rs.Len()))
}

// renderJSON prints a JSON array with one object per row, keeping the
// column order of the statement.
func renderJSON(w io.Writer, rs sqlitec.ResultSet, conn *sqlitec.Conn) error {
	if len(rs.Columns) == 0 {
		data, err := json.Marshal(summaryOf(conn))
		if err != nil {
			return fmt.Errorf("failed to encode summary: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	buf := bytes.Buffer{}
	buf.WriteByte('[')
	for i, row := range rs.Rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONRow(&buf, row); err != nil {
			return err
		}
	}
	buf.WriteString("]\n")

	_, err := w.Write(buf.Bytes())
	return err
}

func writeJSONRow(buf *bytes.Buffer, row sqlitec.Row) error {
	buf.WriteByte('{')
	for i, col := range row {
		if i > 0 {
			buf.WriteByte(',')
		}

		name, err := json.Marshal(col.Name)
		if err != nil {
			return fmt.Errorf("failed to encode column name: %w", err)
		}
		buf.Write(name)
		buf.WriteByte(':')

		if !col.Value.Valid {
			buf.WriteString("null")
			continue
		}
		value, err := json.Marshal(col.Value.String)
		if err != nil {
			return fmt.Errorf("failed to encode column %s: %w", col.Name, err)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return nil
}

// renderError prints an error the same way results are printed.
func renderError(w io.Writer, format config.OutputFormat, err error) {
	if format == config.OutputJSON {
		data, _ := json.Marshal(map[string]string{"error": err.Error()})
		fmt.Fprintln(w, string(data))
		return
	}

	tw := styled.NewTableWriter()
	tw.AppendHeader(table.Row{"Error"})
	tw.AppendRow(table.Row{styled.ErrorColor().Sprint(err.Error())})
	fmt.Fprintln(w, tw.Render())
}
