package shell

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/nsqlite/sqlitebind/internal/shell/config"
	"github.com/nsqlite/sqlitebind/internal/sqlitec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func openTestConn(t *testing.T) *sqlitec.Conn {
	t.Helper()

	conn, err := sqlitec.Open(filepath.Join(t.TempDir(), "shell.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = conn.Close()
	})

	return conn
}

func TestRenderResult(t *testing.T) {
	conn := openTestConn(t)

	_, err := conn.Execute("CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT, email TEXT)", nil)
	require.NoError(t, err)
	_, err = conn.Execute("INSERT INTO users (name, email) VALUES ('Ann', NULL), ('Bob', 'bob@x.io')", nil)
	require.NoError(t, err)

	t.Run("TableRows", func(t *testing.T) {
		rs, err := conn.Execute("SELECT name, email FROM users ORDER BY id", nil)
		require.NoError(t, err)

		out := bytes.Buffer{}
		require.NoError(t, renderResult(&out, config.OutputTable, rs, conn))
		assert.Contains(t, out.String(), "name")
		assert.Contains(t, out.String(), "email")
		assert.Contains(t, out.String(), "Ann")
		assert.Contains(t, out.String(), "NULL")
		assert.Contains(t, out.String(), "bob@x.io")
		assert.Contains(t, out.String(), "2 row(s)")
	})

	t.Run("TableSummary", func(t *testing.T) {
		rs, err := conn.Execute("UPDATE users SET email = 'a@x.io' WHERE name = 'Ann'", nil)
		require.NoError(t, err)

		out := bytes.Buffer{}
		require.NoError(t, renderResult(&out, config.OutputTable, rs, conn))
		assert.Contains(t, out.String(), "Rows Affected")
		assert.Contains(t, out.String(), "Last Insert ID")
	})

	t.Run("JSONRows", func(t *testing.T) {
		rs, err := conn.Execute("SELECT id, name, NULL AS extra FROM users ORDER BY id", nil)
		require.NoError(t, err)

		out := bytes.Buffer{}
		require.NoError(t, renderResult(&out, config.OutputJSON, rs, conn))
		assert.Equal(t,
			`[{"id":"1","name":"Ann","extra":null},{"id":"2","name":"Bob","extra":null}]`+"\n",
			out.String(),
		)
	})

	t.Run("JSONEmpty", func(t *testing.T) {
		rs, err := conn.Execute("SELECT id FROM users WHERE id > 100", nil)
		require.NoError(t, err)

		out := bytes.Buffer{}
		require.NoError(t, renderResult(&out, config.OutputJSON, rs, conn))
		assert.Equal(t, "[]\n", out.String())
	})

	t.Run("JSONSummary", func(t *testing.T) {
		rs, err := conn.Execute("INSERT INTO users (name) VALUES ('Cid')", nil)
		require.NoError(t, err)

		out := bytes.Buffer{}
		require.NoError(t, renderResult(&out, config.OutputJSON, rs, conn))
		assert.Equal(t, `{"rowsAffected":1,"lastInsertId":3}`+"\n", out.String())
	})
}

func TestRenderError(t *testing.T) {
	t.Run("Table", func(t *testing.T) {
		out := bytes.Buffer{}
		renderError(&out, config.OutputTable, errors.New("no such table: nope"))
		assert.Contains(t, out.String(), "Error")
		assert.Contains(t, out.String(), "no such table: nope")
	})

	t.Run("JSON", func(t *testing.T) {
		out := bytes.Buffer{}
		renderError(&out, config.OutputJSON, errors.New(`bad "quote"`))
		assert.Equal(t, `{"error":"bad \"quote\""}`+"\n", out.String())
	})
}
