package log

import "sort"

// Namespaces used across the project to group log lines.
const (
	NsSqlite = "sqlite"
	NsShell  = "shell"
	NsBench  = "bench"
)

// KV is a set of key-value pairs attached to a log line.
type KV map[string]any

// kvToArgs converts the first KV into the flat key-value slice expected by
// slog, sorted by key so the output is stable.
func kvToArgs(keyVals ...KV) []any {
	args := []any{}
	if len(keyVals) == 0 {
		return args
	}

	kv := keyVals[0]
	keys := make([]string, 0, len(kv))
	for key := range kv {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		args = append(args, key, kv[key])
	}
	return args
}

// kvToArgsNs works like kvToArgs but always puts the namespace first.
func kvToArgsNs(namespace string, keyVals ...KV) []any {
	return append([]any{"ns", namespace}, kvToArgs(keyVals...)...)
}
