package log

import (
	"slices"
	"sort"
)

// KV is a set of key-value pairs attached to a log record.
type KV map[string]any

// kvToArgs flattens the first KV into slog arguments with the keys sorted.
// Any further KV is ignored.
func kvToArgs(keyVals ...KV) []any {
	if len(keyVals) == 0 {
		return []any{}
	}

	kv := keyVals[0]
	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]any, 0, len(kv)*2)
	for _, k := range keys {
		args = append(args, k, kv[k])
	}
	return args
}

// kvToArgsNs is kvToArgs with the namespace as the first pair.
func kvToArgsNs(namespace string, keyVals ...KV) []any {
	return slices.Concat([]any{"ns", namespace}, kvToArgs(keyVals...))
}
