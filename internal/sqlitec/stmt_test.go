package sqlitec

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextBindPosition(t *testing.T) {
	stmt := &Stmt{}
	assert.Equal(t, 1, stmt.nextBindPosition())
	assert.Equal(t, 2, stmt.nextBindPosition())
	assert.Equal(t, 3, stmt.nextBindPosition())
}

func TestBind(t *testing.T) {
	t.Run("MixedTypesInOrder", func(t *testing.T) {
		conn := openTestConn(t)

		rs, err := conn.Execute("SELECT ?, ?, ?", func(stmt *Stmt) error {
			assert.Equal(t, 3, stmt.BindParameterCount())
			assert.NoError(t, stmt.BindInt(7))
			assert.NoError(t, stmt.BindText("x"))
			assert.NoError(t, stmt.BindBool(true))
			assert.Equal(t, 3, stmt.bindPos)
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, 1, rs.Len())

		row := rs.Rows[0]
		require.Len(t, row, 3)
		assert.Equal(t, text("7"), row[0].Value)
		assert.Equal(t, text("x"), row[1].Value)
		assert.Equal(t, text("1"), row[2].Value)
	})

	t.Run("EveryBinder", func(t *testing.T) {
		conn := openTestConn(t)
		value := uuid.NewString()

		rs, err := conn.Execute("SELECT ?, ?, ?, ?, ?, ?, ?", func(stmt *Stmt) error {
			return errors.Join(
				stmt.BindInt(-5),
				stmt.BindInt64(1<<40),
				stmt.BindFloat64(3.5),
				stmt.BindText(value),
				stmt.BindBool(false),
				stmt.BindBlob([]byte("raw")),
				stmt.BindNull(),
			)
		})
		require.NoError(t, err)
		require.Equal(t, 1, rs.Len())

		row := rs.Rows[0]
		assert.Equal(t, text("-5"), row[0].Value)
		assert.Equal(t, text("1099511627776"), row[1].Value)
		assert.Equal(t, text("3.5"), row[2].Value)
		assert.Equal(t, text(value), row[3].Value)
		assert.Equal(t, text("0"), row[4].Value)
		assert.Equal(t, text("raw"), row[5].Value)
		assert.False(t, row[6].Value.Valid)
	})

	t.Run("BindValues", func(t *testing.T) {
		conn := openTestConn(t)

		rs, err := conn.Execute("SELECT ?, ?, ?, ?, ?, ?, ?, ?, ?, ?", func(stmt *Stmt) error {
			return stmt.Bind(
				nil,
				42,
				int64(-1),
				int8(8),
				uint32(4000000000),
				2.25,
				true,
				"text",
				[]byte("bytes"),
				sql.NullString{String: "ns", Valid: true},
			)
		})
		require.NoError(t, err)
		require.Equal(t, 1, rs.Len())

		row := rs.Rows[0]
		assert.False(t, row[0].Value.Valid)
		assert.Equal(t, text("42"), row[1].Value)
		assert.Equal(t, text("-1"), row[2].Value)
		assert.Equal(t, text("8"), row[3].Value)
		assert.Equal(t, text("4000000000"), row[4].Value)
		assert.Equal(t, text("2.25"), row[5].Value)
		assert.Equal(t, text("1"), row[6].Value)
		assert.Equal(t, text("text"), row[7].Value)
		assert.Equal(t, text("bytes"), row[8].Value)
		assert.Equal(t, text("ns"), row[9].Value)
	})

	t.Run("NilBlobIsNull", func(t *testing.T) {
		conn := openTestConn(t)

		rs, err := conn.Execute("SELECT ?, ?", func(stmt *Stmt) error {
			return stmt.Bind([]byte(nil), sql.NullString{})
		})
		require.NoError(t, err)
		assert.False(t, rs.Rows[0][0].Value.Valid)
		assert.False(t, rs.Rows[0][1].Value.Valid)
	})

	t.Run("TransientCopy", func(t *testing.T) {
		conn := openTestConn(t)

		data := []byte("abc")
		rs, err := conn.Execute("SELECT ?", func(stmt *Stmt) error {
			if err := stmt.BindBlob(data); err != nil {
				return err
			}
			data[0] = 'z'
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, text("abc"), rs.Rows[0][0].Value)
	})

	t.Run("TooManyValues", func(t *testing.T) {
		conn := openTestConn(t)

		rs, err := conn.Execute("SELECT ?", func(stmt *Stmt) error {
			return stmt.Bind(1, 2)
		})
		assert.ErrorIs(t, err, ErrBind)
		assert.Equal(t, 0, rs.Len())

		var sqliteErr *Error
		require.True(t, errors.As(err, &sqliteErr))
		assert.Equal(t, 2, sqliteErr.Position)
		assert.Equal(t, SQLITE_RANGE, sqliteErr.Code)
		assert.NotEmpty(t, sqliteErr.Message)
		assert.Equal(t, 0, conn.activeStatements())
	})

	t.Run("UnsupportedType", func(t *testing.T) {
		conn := openTestConn(t)

		_, err := conn.Execute("SELECT ?", func(stmt *Stmt) error {
			return stmt.Bind(struct{}{})
		})
		assert.ErrorIs(t, err, ErrBind)

		var sqliteErr *Error
		require.True(t, errors.As(err, &sqliteErr))
		assert.Equal(t, SQLITE_MISMATCH, sqliteErr.Code)
		assert.Equal(t, 1, sqliteErr.Position)
		assert.Equal(t, 0, conn.activeStatements())
	})

	t.Run("CallbackError", func(t *testing.T) {
		conn := openTestConn(t)
		errCustom := errors.New("no value for placeholder")

		_, err := conn.Execute("SELECT ?", func(stmt *Stmt) error {
			return errCustom
		})
		assert.ErrorIs(t, err, ErrBind)
		assert.ErrorIs(t, err, errCustom)
		assert.Contains(t, err.Error(), "no value for placeholder")
		assert.Equal(t, 0, conn.activeStatements())
	})

	t.Run("UnboundPlaceholdersAreNull", func(t *testing.T) {
		conn := openTestConn(t)

		rs, err := conn.Execute("SELECT ?, ?", func(stmt *Stmt) error {
			return stmt.BindInt(1)
		})
		require.NoError(t, err)
		assert.Equal(t, text("1"), rs.Rows[0][0].Value)
		assert.False(t, rs.Rows[0][1].Value.Valid)
	})

	t.Run("Reset", func(t *testing.T) {
		conn := openTestConn(t)

		rs, err := conn.Execute("SELECT ?, ?", func(stmt *Stmt) error {
			if err := stmt.Bind(1, 2); err != nil {
				return err
			}
			if err := stmt.Reset(); err != nil {
				return err
			}
			assert.Equal(t, 0, stmt.bindPos)
			return stmt.Bind(5, 6)
		})
		require.NoError(t, err)
		assert.Equal(t, text("5"), rs.Rows[0][0].Value)
		assert.Equal(t, text("6"), rs.Rows[0][1].Value)
	})

	t.Run("ClearBindings", func(t *testing.T) {
		conn := openTestConn(t)

		rs, err := conn.Execute("SELECT ?, ?", func(stmt *Stmt) error {
			if err := stmt.Bind("a", "b"); err != nil {
				return err
			}
			if err := stmt.ClearBindings(); err != nil {
				return err
			}
			return stmt.BindText("c")
		})
		require.NoError(t, err)
		assert.Equal(t, text("c"), rs.Rows[0][0].Value)
		assert.False(t, rs.Rows[0][1].Value.Valid)
	})

	t.Run("Introspection", func(t *testing.T) {
		conn := openTestConn(t)

		_, err := conn.Execute("CREATE TABLE t (a INTEGER)", nil)
		require.NoError(t, err)

		_, err = conn.Execute("INSERT INTO t VALUES (?)", func(stmt *Stmt) error {
			assert.False(t, stmt.ReadOnly())
			assert.Equal(t, "INSERT INTO t VALUES (?)", stmt.SQL())
			assert.Equal(t, 0, stmt.ColumnCount())
			return stmt.BindInt(1)
		})
		require.NoError(t, err)

		_, err = conn.Execute("SELECT a AS alias FROM t", func(stmt *Stmt) error {
			assert.True(t, stmt.ReadOnly())
			assert.Equal(t, 1, stmt.ColumnCount())
			assert.Equal(t, "alias", stmt.ColumnName(0))
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("FinalizedAfterExecute", func(t *testing.T) {
		conn := openTestConn(t)

		var kept *Stmt
		_, err := conn.Execute("SELECT ?", func(stmt *Stmt) error {
			kept = stmt
			return stmt.BindInt(1)
		})
		require.NoError(t, err)
		require.NotNil(t, kept)

		err = kept.BindInt(2)
		assert.ErrorIs(t, err, ErrBind)
		assert.Contains(t, err.Error(), "statement is finalized")

		_, err = kept.step()
		assert.ErrorIs(t, err, ErrExecute)
		assert.ErrorIs(t, kept.Reset(), ErrExecute)
		assert.ErrorIs(t, kept.ClearBindings(), ErrBind)
		assert.NoError(t, kept.finalize())
		assert.Equal(t, 0, kept.ColumnCount())
		assert.Equal(t, 0, kept.BindParameterCount())
		assert.Equal(t, "", kept.SQL())
	})
}

func TestFinalize(t *testing.T) {
	t.Run("ReportsFailedStep", func(t *testing.T) {
		conn := openTestConn(t)

		_, err := conn.Execute("CREATE TABLE t (a INTEGER UNIQUE)", nil)
		require.NoError(t, err)
		_, err = conn.Execute("INSERT INTO t VALUES (1)", nil)
		require.NoError(t, err)

		stmt, err := conn.prepare("INSERT INTO t VALUES (1)")
		require.NoError(t, err)
		assert.Equal(t, 1, conn.activeStatements())

		_, err = stmt.step()
		require.ErrorIs(t, err, ErrExecute)

		err = stmt.finalize()
		assert.ErrorIs(t, err, ErrExecute)

		var sqliteErr *Error
		require.True(t, errors.As(err, &sqliteErr))
		assert.Equal(t, SQLITE_CONSTRAINT, sqliteErr.Code.Primary())
		assert.Contains(t, sqliteErr.Message, "UNIQUE")

		assert.Nil(t, stmt.cStmt)
		assert.Equal(t, 0, conn.activeStatements())
		assert.NoError(t, stmt.finalize())
	})

	t.Run("SucceedsAfterDone", func(t *testing.T) {
		conn := openTestConn(t)

		stmt, err := conn.prepare("SELECT 1")
		require.NoError(t, err)

		hasRow, err := stmt.step()
		require.NoError(t, err)
		assert.True(t, hasRow)
		hasRow, err = stmt.step()
		require.NoError(t, err)
		assert.False(t, hasRow)

		assert.NoError(t, stmt.finalize())
		assert.Equal(t, 0, conn.activeStatements())
	})
}
