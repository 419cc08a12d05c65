package sqlitec

/*
#include <stdlib.h>
#include <sqlite3.h>

// cgo can not use the SQLITE_TRANSIENT destructor constant, it is a
// function pointer cast.
static int sqlitec_bind_text(sqlite3_stmt *stmt, int pos, const char *text, int n) {
	if (n == 0) {
		return sqlite3_bind_text(stmt, pos, "", 0, SQLITE_STATIC);
	}
	return sqlite3_bind_text(stmt, pos, text, n, SQLITE_TRANSIENT);
}

static int sqlitec_bind_blob(sqlite3_stmt *stmt, int pos, const void *data, int n) {
	if (n == 0) {
		return sqlite3_bind_zeroblob(stmt, pos, 0);
	}
	return sqlite3_bind_blob(stmt, pos, data, n, SQLITE_TRANSIENT);
}
*/
import "C"
import (
	"database/sql"
	"fmt"
	"math"
	"unsafe"
)

const finalizedMessage = "statement is finalized"

// Stmt represents a prepared statement in SQLite. It only lives for the
// duration of a Conn.Execute call and is handed to the BindFunc so values
// can be bound to its placeholders, left to right.
//
// https://www.sqlite.org/c3ref/stmt.html
type Stmt struct {
	conn    *Conn
	cStmt   *C.sqlite3_stmt
	bindPos int
}

// nextBindPosition advances the bind cursor and returns the position to bind
// to. Positions are 1-based so the first call returns 1.
func (stmt *Stmt) nextBindPosition() int {
	stmt.bindPos++
	return stmt.bindPos
}

// bindError builds the error for a failed bind at the given position.
func (stmt *Stmt) bindError(pos int, code C.int) error {
	err := newEngineError(KindBind, code, stmt.conn.cDB)
	err.Position = pos
	stmt.conn.debug("bind failed", err)
	return err
}

// finalizedBindError is returned when binding to a finalized statement.
func (stmt *Stmt) finalizedBindError(pos int) error {
	err := newError(KindBind, finalizedMessage)
	err.Position = pos
	return err
}

// BindInt binds an int to the next placeholder using the native 32-bit
// binding. Values outside the int32 range are truncated, use BindInt64 for
// them.
//
// https://www.sqlite.org/c3ref/bind_blob.html
func (stmt *Stmt) BindInt(value int) error {
	pos := stmt.nextBindPosition()
	if stmt.cStmt == nil {
		return stmt.finalizedBindError(pos)
	}

	resCode := C.sqlite3_bind_int(stmt.cStmt, C.int(pos), C.int(value))
	if resCode != C.SQLITE_OK {
		return stmt.bindError(pos, resCode)
	}
	return nil
}

// BindInt64 binds an int64 to the next placeholder.
//
// https://www.sqlite.org/c3ref/bind_blob.html
func (stmt *Stmt) BindInt64(value int64) error {
	pos := stmt.nextBindPosition()
	if stmt.cStmt == nil {
		return stmt.finalizedBindError(pos)
	}

	resCode := C.sqlite3_bind_int64(stmt.cStmt, C.int(pos), C.sqlite3_int64(value))
	if resCode != C.SQLITE_OK {
		return stmt.bindError(pos, resCode)
	}
	return nil
}

// BindFloat64 binds a float64 to the next placeholder.
//
// https://www.sqlite.org/c3ref/bind_blob.html
func (stmt *Stmt) BindFloat64(value float64) error {
	pos := stmt.nextBindPosition()
	if stmt.cStmt == nil {
		return stmt.finalizedBindError(pos)
	}

	resCode := C.sqlite3_bind_double(stmt.cStmt, C.int(pos), C.double(value))
	if resCode != C.SQLITE_OK {
		return stmt.bindError(pos, resCode)
	}
	return nil
}

// BindText binds a string to the next placeholder. SQLite copies the bytes
// before returning, so value does not need to outlive the call.
//
// https://www.sqlite.org/c3ref/bind_blob.html
func (stmt *Stmt) BindText(value string) error {
	pos := stmt.nextBindPosition()
	if stmt.cStmt == nil {
		return stmt.finalizedBindError(pos)
	}
	if len(value) > math.MaxInt32 {
		return stmt.bindError(pos, C.SQLITE_TOOBIG)
	}

	cText := (*C.char)(unsafe.Pointer(unsafe.StringData(value)))
	resCode := C.sqlitec_bind_text(stmt.cStmt, C.int(pos), cText, C.int(len(value)))
	if resCode != C.SQLITE_OK {
		return stmt.bindError(pos, resCode)
	}
	return nil
}

// BindBool binds a bool to the next placeholder as the integer 1 or 0.
func (stmt *Stmt) BindBool(value bool) error {
	if value {
		return stmt.BindInt(1)
	}
	return stmt.BindInt(0)
}

// BindBlob binds a byte slice to the next placeholder. SQLite copies the
// bytes before returning. A nil slice binds NULL and an empty one binds a
// zero-length blob.
//
// https://www.sqlite.org/c3ref/bind_blob.html
func (stmt *Stmt) BindBlob(data []byte) error {
	if data == nil {
		return stmt.BindNull()
	}

	pos := stmt.nextBindPosition()
	if stmt.cStmt == nil {
		return stmt.finalizedBindError(pos)
	}
	if len(data) > math.MaxInt32 {
		return stmt.bindError(pos, C.SQLITE_TOOBIG)
	}

	var cData unsafe.Pointer
	if len(data) > 0 {
		cData = unsafe.Pointer(&data[0])
	}
	resCode := C.sqlitec_bind_blob(stmt.cStmt, C.int(pos), cData, C.int(len(data)))
	if resCode != C.SQLITE_OK {
		return stmt.bindError(pos, resCode)
	}
	return nil
}

// BindNull binds NULL to the next placeholder.
//
// https://www.sqlite.org/c3ref/bind_blob.html
func (stmt *Stmt) BindNull() error {
	pos := stmt.nextBindPosition()
	if stmt.cStmt == nil {
		return stmt.finalizedBindError(pos)
	}

	resCode := C.sqlite3_bind_null(stmt.cStmt, C.int(pos))
	if resCode != C.SQLITE_OK {
		return stmt.bindError(pos, resCode)
	}
	return nil
}

// Bind binds each value to the next placeholder according to its Go type.
// It stops at the first failure.
func (stmt *Stmt) Bind(values ...any) error {
	for _, value := range values {
		var err error
		switch v := value.(type) {
		case nil:
			err = stmt.BindNull()
		case int:
			err = stmt.BindInt64(int64(v))
		case int8:
			err = stmt.BindInt(int(v))
		case int16:
			err = stmt.BindInt(int(v))
		case int32:
			err = stmt.BindInt(int(v))
		case int64:
			err = stmt.BindInt64(v)
		case uint8:
			err = stmt.BindInt(int(v))
		case uint16:
			err = stmt.BindInt(int(v))
		case uint32:
			err = stmt.BindInt64(int64(v))
		case float32:
			err = stmt.BindFloat64(float64(v))
		case float64:
			err = stmt.BindFloat64(v)
		case bool:
			err = stmt.BindBool(v)
		case string:
			err = stmt.BindText(v)
		case []byte:
			err = stmt.BindBlob(v)
		case sql.NullString:
			if v.Valid {
				err = stmt.BindText(v.String)
			} else {
				err = stmt.BindNull()
			}
		default:
			pos := stmt.nextBindPosition()
			err = &Error{
				Kind:     KindBind,
				Code:     SQLITE_MISMATCH,
				Message:  fmt.Sprintf("unsupported type %T", value),
				Position: pos,
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Reset resets the statement so it can be stepped again, clears every bound
// value and moves the bind cursor back to the first placeholder.
//
// https://www.sqlite.org/c3ref/reset.html
func (stmt *Stmt) Reset() error {
	if stmt.cStmt == nil {
		return newError(KindExecute, finalizedMessage)
	}

	if resCode := C.sqlite3_reset(stmt.cStmt); resCode != C.SQLITE_OK {
		return newEngineError(KindExecute, resCode, stmt.conn.cDB)
	}
	return stmt.ClearBindings()
}

// ClearBindings sets every placeholder back to NULL and moves the bind cursor
// back to the first placeholder.
//
// https://www.sqlite.org/c3ref/clear_bindings.html
func (stmt *Stmt) ClearBindings() error {
	if stmt.cStmt == nil {
		return newError(KindBind, finalizedMessage)
	}

	if resCode := C.sqlite3_clear_bindings(stmt.cStmt); resCode != C.SQLITE_OK {
		return newEngineError(KindBind, resCode, stmt.conn.cDB)
	}
	stmt.bindPos = 0
	return nil
}

// BindParameterCount returns the number of placeholders in the statement.
//
// https://www.sqlite.org/c3ref/bind_parameter_count.html
func (stmt *Stmt) BindParameterCount() int {
	if stmt.cStmt == nil {
		return 0
	}
	return int(C.sqlite3_bind_parameter_count(stmt.cStmt))
}

// ReadOnly returns true if the statement makes no direct changes to the
// database file.
//
// https://www.sqlite.org/c3ref/stmt_readonly.html
func (stmt *Stmt) ReadOnly() bool {
	if stmt.cStmt == nil {
		return false
	}
	return C.sqlite3_stmt_readonly(stmt.cStmt) != 0
}

// SQL returns the text used to prepare the statement.
//
// https://www.sqlite.org/c3ref/expanded_sql.html
func (stmt *Stmt) SQL() string {
	if stmt.cStmt == nil {
		return ""
	}
	return C.GoString(C.sqlite3_sql(stmt.cStmt))
}

// ColumnCount returns the number of columns in the result of the statement.
//
// https://www.sqlite.org/c3ref/column_count.html
func (stmt *Stmt) ColumnCount() int {
	if stmt.cStmt == nil {
		return 0
	}
	return int(C.sqlite3_column_count(stmt.cStmt))
}

// ColumnName returns the name of the column at the given index, or an empty
// string if SQLite reports none.
//
// https://www.sqlite.org/c3ref/column_name.html
func (stmt *Stmt) ColumnName(colIndex int) string {
	if stmt.cStmt == nil {
		return ""
	}
	cName := C.sqlite3_column_name(stmt.cStmt, C.int(colIndex))
	if cName == nil {
		return ""
	}
	return C.GoString(cName)
}

// columnNames returns the names of every result column.
func (stmt *Stmt) columnNames() []string {
	count := stmt.ColumnCount()
	names := make([]string, count)
	for i := range names {
		names[i] = stmt.ColumnName(i)
	}
	return names
}

// columnText returns the text representation of the column at the given
// index for the current row. It is invalid when SQLite returns a NULL pointer.
//
// https://www.sqlite.org/c3ref/column_blob.html
func (stmt *Stmt) columnText(colIndex int) sql.NullString {
	text := (*C.char)(unsafe.Pointer(C.sqlite3_column_text(stmt.cStmt, C.int(colIndex))))
	if text == nil {
		return sql.NullString{}
	}
	length := C.sqlite3_column_bytes(stmt.cStmt, C.int(colIndex))
	return sql.NullString{String: C.GoStringN(text, length), Valid: true}
}

// row reads every column of the current row.
func (stmt *Stmt) row() Row {
	count := stmt.ColumnCount()
	row := make(Row, count)
	for i := range row {
		row[i] = Column{
			Name:  stmt.ColumnName(i),
			Value: stmt.columnText(i),
		}
	}
	return row
}

// step advances the statement to the next row, returning true if a new row
// is available, or false once the statement is done.
//
// https://www.sqlite.org/c3ref/step.html
func (stmt *Stmt) step() (bool, error) {
	if stmt.cStmt == nil {
		return false, newError(KindExecute, finalizedMessage)
	}

	resCode := C.sqlite3_step(stmt.cStmt)
	switch resCode {
	case C.SQLITE_ROW:
		return true, nil
	case C.SQLITE_DONE:
		return false, nil
	}

	err := newEngineError(KindExecute, resCode, stmt.conn.cDB)
	stmt.conn.debug("step failed", err)
	return false, err
}

// finalize frees the statement. Calling it again is a no-op, so it can be
// both deferred and called explicitly.
//
// https://www.sqlite.org/c3ref/finalize.html
func (stmt *Stmt) finalize() error {
	if stmt.cStmt == nil {
		return nil
	}

	cStmt := stmt.cStmt
	stmt.cStmt = nil
	if resCode := C.sqlite3_finalize(cStmt); resCode != C.SQLITE_OK {
		return newEngineError(KindExecute, resCode, stmt.conn.cDB)
	}
	return nil
}
