package proj

import (
	"sort"
	"strings"
)

// token is a single +key=value element of a proj4 string.
type token struct {
	key string
	val string
}

// tokenize splits a proj4 string into key/value tokens. Keys are
// lowercased, empty tokens are dropped, a missing '+' prefix is
// tolerated.
func tokenize(p4 string) []token {
	fields := strings.Fields(p4)
	res := make([]token, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimPrefix(f, "+")
		if f == "" {
			continue
		}
		key, val, _ := strings.Cut(f, "=")
		key = strings.ToLower(key)
		if key == "" {
			continue
		}
		res = append(res, token{key: key, val: val})
	}
	return res
}

// Normalize converts a proj4 string into its canonical comparable
// form: whitespace collapsed, keys lowercased, tokens sorted by key,
// duplicate keys keep the last value.
//
// Key ordering in proj4 strings is not significant, so two definitions
// that differ only in token order normalize to the same string. This
// is the textual form the exact-match pass compares against the
// catalog.
func Normalize(p4 string) string {
	tokens := tokenize(p4)

	// last one wins for duplicated keys
	byKey := make(map[string]string, len(tokens))
	for _, tk := range tokens {
		byKey[tk.key] = tk.val
	}

	keys := sortedKeys(byKey)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if v := byKey[k]; v == "" {
			parts = append(parts, "+"+k)
		} else {
			parts = append(parts, "+"+k+"="+v)
		}
	}
	return strings.Join(parts, " ")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
