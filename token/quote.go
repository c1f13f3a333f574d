package token

import (
	"strings"
)

// QuoteField reports whether a field name needs quoting when rendered
// in a path.
func QuoteField(f string) bool {
	if f == "" {
		return true
	}
	return strings.IndexAny(f, "'\".*$[]?<> \t\n") != -1
}

// Quote renders f as a single-quoted path field.
func Quote(f string) string {
	return "'" + strings.Replace(f, "'", "\\'", -1) + "'"
}
