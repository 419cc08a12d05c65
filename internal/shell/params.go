package shell

import (
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/nsqlite/sqlitebind/internal/sqlitec"
)

// ParseParam converts a command line parameter into the Go value that is
// bound for it:
//
//	NULL          -> nil
//	42            -> int64
//	3.14          -> float64
//	true, false   -> bool
//	x'0a0b'       -> []byte
//	'quoted text' -> string without the quotes ('' is a single quote)
//	anything else -> string as is
func ParseParam(raw string) (any, error) {
	if strings.EqualFold(raw, "null") {
		return nil, nil
	}

	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i, nil
	}

	if f, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return f, nil
	}

	switch strings.ToLower(raw) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}

	if len(raw) >= 3 && (raw[0] == 'x' || raw[0] == 'X') && raw[1] == '\'' && raw[len(raw)-1] == '\'' {
		data, err := hex.DecodeString(raw[2 : len(raw)-1])
		if err != nil {
			return nil, fmt.Errorf("invalid blob literal %s: %w", raw, err)
		}
		// x'' is a zero-length blob, a nil slice would bind NULL.
		if data == nil {
			data = []byte{}
		}
		return data, nil
	}

	if len(raw) >= 2 && raw[0] == '\'' && raw[len(raw)-1] == '\'' {
		return strings.ReplaceAll(raw[1:len(raw)-1], "''", "'"), nil
	}

	return raw, nil
}

// ParseParams parses every raw parameter, in order.
func ParseParams(raws []string) ([]any, error) {
	values := make([]any, 0, len(raws))
	for i, raw := range raws {
		value, err := ParseParam(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse parameter %d: %w", i+1, err)
		}
		values = append(values, value)
	}
	return values, nil
}

// bindValues returns a BindFunc that binds the values in order. It returns
// nil when there is nothing to bind.
func bindValues(values []any) sqlitec.BindFunc {
	if len(values) == 0 {
		return nil
	}
	return func(stmt *sqlitec.Stmt) error {
		return stmt.Bind(values...)
	}
}
