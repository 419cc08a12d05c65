package sqlitec

/*
#cgo LDFLAGS: -lsqlite3
#include <sqlite3.h>
*/
import "C"
import "fmt"

// ResultCode is a primary or extended SQLite result code.
//
// https://www.sqlite.org/rescode.html
type ResultCode int

const (
	SQLITE_OK         ResultCode = C.SQLITE_OK
	SQLITE_ERROR      ResultCode = C.SQLITE_ERROR
	SQLITE_INTERNAL   ResultCode = C.SQLITE_INTERNAL
	SQLITE_PERM       ResultCode = C.SQLITE_PERM
	SQLITE_ABORT      ResultCode = C.SQLITE_ABORT
	SQLITE_BUSY       ResultCode = C.SQLITE_BUSY
	SQLITE_LOCKED     ResultCode = C.SQLITE_LOCKED
	SQLITE_NOMEM      ResultCode = C.SQLITE_NOMEM
	SQLITE_READONLY   ResultCode = C.SQLITE_READONLY
	SQLITE_INTERRUPT  ResultCode = C.SQLITE_INTERRUPT
	SQLITE_IOERR      ResultCode = C.SQLITE_IOERR
	SQLITE_CORRUPT    ResultCode = C.SQLITE_CORRUPT
	SQLITE_NOTFOUND   ResultCode = C.SQLITE_NOTFOUND
	SQLITE_FULL       ResultCode = C.SQLITE_FULL
	SQLITE_CANTOPEN   ResultCode = C.SQLITE_CANTOPEN
	SQLITE_PROTOCOL   ResultCode = C.SQLITE_PROTOCOL
	SQLITE_EMPTY      ResultCode = C.SQLITE_EMPTY
	SQLITE_SCHEMA     ResultCode = C.SQLITE_SCHEMA
	SQLITE_TOOBIG     ResultCode = C.SQLITE_TOOBIG
	SQLITE_CONSTRAINT ResultCode = C.SQLITE_CONSTRAINT
	SQLITE_MISMATCH   ResultCode = C.SQLITE_MISMATCH
	SQLITE_MISUSE     ResultCode = C.SQLITE_MISUSE
	SQLITE_NOLFS      ResultCode = C.SQLITE_NOLFS
	SQLITE_AUTH       ResultCode = C.SQLITE_AUTH
	SQLITE_FORMAT     ResultCode = C.SQLITE_FORMAT
	SQLITE_RANGE      ResultCode = C.SQLITE_RANGE
	SQLITE_NOTADB     ResultCode = C.SQLITE_NOTADB
	SQLITE_NOTICE     ResultCode = C.SQLITE_NOTICE
	SQLITE_WARNING    ResultCode = C.SQLITE_WARNING
	SQLITE_ROW        ResultCode = C.SQLITE_ROW
	SQLITE_DONE       ResultCode = C.SQLITE_DONE
)

var resultCodeNames = map[ResultCode]string{
	SQLITE_OK:         "SQLITE_OK",
	SQLITE_ERROR:      "SQLITE_ERROR",
	SQLITE_INTERNAL:   "SQLITE_INTERNAL",
	SQLITE_PERM:       "SQLITE_PERM",
	SQLITE_ABORT:      "SQLITE_ABORT",
	SQLITE_BUSY:       "SQLITE_BUSY",
	SQLITE_LOCKED:     "SQLITE_LOCKED",
	SQLITE_NOMEM:      "SQLITE_NOMEM",
	SQLITE_READONLY:   "SQLITE_READONLY",
	SQLITE_INTERRUPT:  "SQLITE_INTERRUPT",
	SQLITE_IOERR:      "SQLITE_IOERR",
	SQLITE_CORRUPT:    "SQLITE_CORRUPT",
	SQLITE_NOTFOUND:   "SQLITE_NOTFOUND",
	SQLITE_FULL:       "SQLITE_FULL",
	SQLITE_CANTOPEN:   "SQLITE_CANTOPEN",
	SQLITE_PROTOCOL:   "SQLITE_PROTOCOL",
	SQLITE_EMPTY:      "SQLITE_EMPTY",
	SQLITE_SCHEMA:     "SQLITE_SCHEMA",
	SQLITE_TOOBIG:     "SQLITE_TOOBIG",
	SQLITE_CONSTRAINT: "SQLITE_CONSTRAINT",
	SQLITE_MISMATCH:   "SQLITE_MISMATCH",
	SQLITE_MISUSE:     "SQLITE_MISUSE",
	SQLITE_NOLFS:      "SQLITE_NOLFS",
	SQLITE_AUTH:       "SQLITE_AUTH",
	SQLITE_FORMAT:     "SQLITE_FORMAT",
	SQLITE_RANGE:      "SQLITE_RANGE",
	SQLITE_NOTADB:     "SQLITE_NOTADB",
	SQLITE_NOTICE:     "SQLITE_NOTICE",
	SQLITE_WARNING:    "SQLITE_WARNING",
	SQLITE_ROW:        "SQLITE_ROW",
	SQLITE_DONE:       "SQLITE_DONE",
}

// Primary returns the primary result code, dropping the extended bits.
func (code ResultCode) Primary() ResultCode {
	return code & 0xff
}

// String returns the symbolic name of the result code. Extended codes are
// reported with the name of their primary code.
func (code ResultCode) String() string {
	if name, ok := resultCodeNames[code]; ok {
		return name
	}
	if name, ok := resultCodeNames[code.Primary()]; ok {
		return fmt.Sprintf("%s(%d)", name, int(code))
	}
	return fmt.Sprintf("SQLITE_UNKNOWN(%d)", int(code))
}

// OpenFlag is a bit set of flags accepted by sqlite3_open_v2.
//
// https://www.sqlite.org/c3ref/open.html
type OpenFlag int

const (
	OpenReadOnly     OpenFlag = C.SQLITE_OPEN_READONLY
	OpenReadWrite    OpenFlag = C.SQLITE_OPEN_READWRITE
	OpenCreate       OpenFlag = C.SQLITE_OPEN_CREATE
	OpenURI          OpenFlag = C.SQLITE_OPEN_URI
	OpenMemory       OpenFlag = C.SQLITE_OPEN_MEMORY
	OpenNoMutex      OpenFlag = C.SQLITE_OPEN_NOMUTEX
	OpenFullMutex    OpenFlag = C.SQLITE_OPEN_FULLMUTEX
	OpenSharedCache  OpenFlag = C.SQLITE_OPEN_SHAREDCACHE
	OpenPrivateCache OpenFlag = C.SQLITE_OPEN_PRIVATECACHE

	// DefaultOpenFlags opens the database for reading and writing, creates
	// the file if it does not exist and serializes access to the handle.
	DefaultOpenFlags = OpenReadWrite | OpenCreate | OpenFullMutex
)

// LibVersion returns the version of the linked SQLite library.
//
// https://www.sqlite.org/c3ref/libversion.html
func LibVersion() string {
	return C.GoString(C.sqlite3_libversion())
}
