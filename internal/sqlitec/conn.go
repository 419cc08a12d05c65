package sqlitec

/*
#include <stdlib.h>
#include <sqlite3.h>
*/
import "C"
import (
	"errors"
	"runtime"
	"unsafe"

	"github.com/nsqlite/sqlitebind/internal/log"
)

// BindFunc binds the parameters of a prepared statement, in placeholder
// order. Any error it returns aborts Execute with a bind error.
type BindFunc func(stmt *Stmt) error

// Conn represents a connection to a SQLite database.
//
// https://www.sqlite.org/c3ref/sqlite3.html
type Conn struct {
	cDB    *C.sqlite3
	path   string
	logger log.Logger
}

// Open opens a connection to the SQLite database at the given path, creating
// the file if it does not exist. By default the connection is opened with
// DefaultOpenFlags.
//
// If the caller never calls Close, the handle is released when the Conn is
// garbage collected.
//
// https://www.sqlite.org/c3ref/open.html
func Open(path string, options ...OpenOption) (*Conn, error) {
	config := openConfig{flags: DefaultOpenFlags}
	for _, option := range options {
		option(&config)
	}

	cPath := C.CString(path)
	defer C.free(unsafe.Pointer(cPath))

	var cDB *C.sqlite3
	resCode := C.sqlite3_open_v2(cPath, &cDB, C.int(config.flags), nil)
	if resCode != C.SQLITE_OK {
		err := newEngineError(KindConnection, resCode, cDB)
		if cDB != nil {
			_ = C.sqlite3_close_v2(cDB)
		}
		return nil, err
	}

	conn := &Conn{cDB: cDB, path: path, logger: config.logger}
	runtime.SetFinalizer(conn, func(conn *Conn) {
		_ = conn.Close()
	})

	for _, query := range config.postOpenQueries {
		if _, err := conn.Execute(query, nil); err != nil {
			_ = conn.Close()
			return nil, &Error{
				Kind:    KindConnection,
				Message: "post-open query " + query,
				Err:     err,
			}
		}
	}

	if conn.logger.IsInitialized() {
		conn.logger.DebugNs(log.NsSqlite, "database opened", log.KV{
			"path":  path,
			"flags": int(config.flags),
		})
	}
	return conn, nil
}

// Close releases the connection handle. It is safe to call Close more than
// once, only the first call does something.
//
// https://www.sqlite.org/c3ref/close.html
func (conn *Conn) Close() error {
	if conn.cDB == nil {
		return nil
	}

	if leaked := conn.activeStatements(); leaked > 0 && conn.logger.IsInitialized() {
		conn.logger.WarnNs(log.NsSqlite, "closing database with unfinalized statements", log.KV{
			"path":       conn.path,
			"statements": leaked,
		})
	}

	// The sqlite3_close_v2() interface is intended for use with host
	// languages that are garbage collected, and where the order in which
	// destructors are called is arbitrary.
	resCode := C.sqlite3_close_v2(conn.cDB)
	if resCode != C.SQLITE_OK {
		return newEngineError(KindClose, resCode, conn.cDB)
	}
	conn.cDB = nil
	runtime.SetFinalizer(conn, nil)

	return nil
}

// IsClosed returns true once Close succeeded.
func (conn *Conn) IsClosed() bool {
	return conn.cDB == nil
}

// Path returns the path the connection was opened with.
func (conn *Conn) Path() string {
	return conn.path
}

// LastInsertID returns the row ID of the most recent successful INSERT on
// this connection. It returns false if the connection is closed.
//
// https://www.sqlite.org/c3ref/last_insert_rowid.html
func (conn *Conn) LastInsertID() (int64, bool) {
	if conn.cDB == nil {
		return 0, false
	}
	return int64(C.sqlite3_last_insert_rowid(conn.cDB)), true
}

// RowsAffected returns the number of rows modified, inserted, or deleted by
// the most recent INSERT, UPDATE, or DELETE on this connection. It returns
// false if the connection is closed.
//
// https://www.sqlite.org/c3ref/changes.html
func (conn *Conn) RowsAffected() (int64, bool) {
	if conn.cDB == nil {
		return 0, false
	}
	return int64(C.sqlite3_changes(conn.cDB)), true
}

// Execute prepares the query, calls bind to bind its parameters, steps it to
// completion and returns every row it produced. bind may be nil for queries
// without placeholders.
//
// The statement is always finalized before Execute returns. If finalizing
// fails, the error is returned and the rows are discarded.
func (conn *Conn) Execute(query string, bind BindFunc) (ResultSet, error) {
	if conn.cDB == nil {
		return ResultSet{}, newError(KindExecute, "No database")
	}

	stmt, err := conn.prepare(query)
	if err != nil {
		return ResultSet{}, err
	}
	defer func() {
		_ = stmt.finalize()
	}()

	if bind != nil {
		if err := bind(stmt); err != nil {
			return ResultSet{}, asBindError(err)
		}
	}

	rs := ResultSet{Columns: stmt.columnNames()}
	for {
		hasRow, err := stmt.step()
		if err != nil {
			return ResultSet{}, err
		}
		if !hasRow {
			break
		}
		rs.Rows = append(rs.Rows, stmt.row())
	}

	if err := stmt.finalize(); err != nil {
		conn.debug("finalize failed", err)
		return ResultSet{}, err
	}

	return rs, nil
}

// prepare compiles the first statement of the query.
//
// https://www.sqlite.org/c3ref/prepare.html
func (conn *Conn) prepare(query string) (*Stmt, error) {
	cQuery := C.CString(query)
	defer C.free(unsafe.Pointer(cQuery))

	var cStmt *C.sqlite3_stmt
	resCode := C.sqlite3_prepare_v2(conn.cDB, cQuery, C.int(-1), &cStmt, nil)
	if resCode != C.SQLITE_OK {
		err := newEngineError(KindPrepare, resCode, conn.cDB)
		_ = C.sqlite3_finalize(cStmt)
		conn.debug("prepare failed", err)
		return nil, err
	}
	if cStmt == nil {
		return nil, newError(KindExecute, "query contains no statement")
	}

	return &Stmt{conn: conn, cStmt: cStmt}, nil
}

// activeStatements returns how many statements of this connection have not
// been finalized yet.
//
// https://www.sqlite.org/c3ref/next_stmt.html
func (conn *Conn) activeStatements() int {
	if conn.cDB == nil {
		return 0
	}

	count := 0
	for cStmt := C.sqlite3_next_stmt(conn.cDB, nil); cStmt != nil; cStmt = C.sqlite3_next_stmt(conn.cDB, cStmt) {
		count++
	}
	return count
}

// lastErrorMessage returns the last error message of the connection.
func (conn *Conn) lastErrorMessage() string {
	return errorMessage(conn.cDB)
}

// debug logs a failed lifecycle step when the connection has a logger.
func (conn *Conn) debug(msg string, err error) {
	if !conn.logger.IsInitialized() {
		return
	}
	conn.logger.DebugNs(log.NsSqlite, msg, log.KV{
		"path":  conn.path,
		"error": err.Error(),
	})
}

// asBindError makes sure an error returned by a BindFunc is a bind error,
// wrapping it if needed.
func asBindError(err error) error {
	var sqliteErr *Error
	if errors.As(err, &sqliteErr) && sqliteErr.Kind == KindBind {
		return err
	}
	return &Error{Kind: KindBind, Err: err}
}
