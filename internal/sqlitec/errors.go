package sqlitec

/*
#include <sqlite3.h>
*/
import "C"
import (
	"fmt"

	"github.com/orsinium-labs/enum"
)

// ErrorKind tells which step of the statement lifecycle failed.
type ErrorKind enum.Member[string]

var (
	KindConnection = ErrorKind{Value: "connection"}
	KindClose      = ErrorKind{Value: "close"}
	KindPrepare    = ErrorKind{Value: "prepare"}
	KindBind       = ErrorKind{Value: "bind"}
	KindExecute    = ErrorKind{Value: "execute"}

	ErrorKinds = enum.New(KindConnection, KindClose, KindPrepare, KindBind, KindExecute)
)

// Sentinels to be used with errors.Is, they match any *Error of the
// same kind.
var (
	ErrConnection = &Error{Kind: KindConnection}
	ErrClose      = &Error{Kind: KindClose}
	ErrPrepare    = &Error{Kind: KindPrepare}
	ErrBind       = &Error{Kind: KindBind}
	ErrExecute    = &Error{Kind: KindExecute}
)

// unknownErrorMessage is used when SQLite has no message to give.
const unknownErrorMessage = "Unknown"

// Error is returned by every fallible operation of this package.
type Error struct {
	// Kind is the lifecycle step that failed.
	Kind ErrorKind
	// Code is the SQLite result code, SQLITE_OK when the error was not
	// reported by SQLite itself.
	Code ResultCode
	// Message is the SQLite diagnostic text.
	Message string
	// Position is the 1-based bind position for bind errors, zero otherwise.
	Position int
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) action() string {
	switch e.Kind {
	case KindConnection:
		return "failed to open database"
	case KindClose:
		return "failed to close database"
	case KindPrepare:
		return "failed to prepare statement"
	case KindBind:
		if e.Position > 0 {
			return fmt.Sprintf("failed to bind parameter %d", e.Position)
		}
		return "failed to bind parameter"
	case KindExecute:
		return "failed to execute statement"
	}
	return "sqlite error"
}

func (e *Error) Error() string {
	msg := e.action()
	if e.Code != SQLITE_OK {
		msg += ": " + e.Code.String()
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil && e.Err.Error() != e.Message {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel of the same kind. Sentinels are
// errors with no code, message or cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	isSentinel := t.Code == SQLITE_OK && t.Message == "" && t.Err == nil
	return isSentinel && t.Kind == e.Kind
}

// newError creates an error that did not originate in SQLite.
func newError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// newEngineError creates an error for a failed SQLite call, reading the
// diagnostic text from the given connection handle.
func newEngineError(kind ErrorKind, code C.int, cDB *C.sqlite3) *Error {
	return &Error{
		Kind:    kind,
		Code:    ResultCode(code),
		Message: errorMessage(cDB),
	}
}

// errorMessage returns the last error message of the connection handle, or
// "Unknown" if there is no handle or SQLite has no message.
//
// https://www.sqlite.org/c3ref/errcode.html
func errorMessage(cDB *C.sqlite3) string {
	if cDB == nil {
		return unknownErrorMessage
	}
	cMsg := C.sqlite3_errmsg(cDB)
	if cMsg == nil {
		return unknownErrorMessage
	}
	return C.GoString(cMsg)
}
