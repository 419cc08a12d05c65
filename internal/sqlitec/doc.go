// Package sqlitec provides a lightweight wrapper for the SQLite C library.
// It exposes a single connection that prepares a statement, lets the caller
// bind values to it in placeholder order, steps it into a ResultSet and
// always finalizes it before returning.
//
// A Conn is not safe for concurrent use. The underlying handle is opened in
// full mutex mode but callers sharing a Conn must serialize Execute calls.
//
//   - https://www.sqlite.org/cintro.html
//   - https://www.sqlite.org/c3ref/intro.html
package sqlitec
