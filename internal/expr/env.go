// Package expr expands ${env.KEY} placeholders in configuration text.
package expr

import (
	"os"
	"strings"
	"unicode"
)

const envPrefix = "${env."

// ExpandEnv replaces every ${env.KEY} in value with the environment variable
// KEY, or "" when it is unset. Placeholders whose key contains characters
// other than letters, digits or '_' are left as written.
func ExpandEnv(value string) string {
	return expand(value, os.Getenv)
}

func expand(value string, lookup func(string) string) string {
	var b strings.Builder
	i := 0
	for {
		idx := strings.Index(value[i:], envPrefix)
		if idx < 0 {
			b.WriteString(value[i:])
			break
		}
		b.WriteString(value[i : i+idx])
		startKey := i + idx + len(envPrefix)

		endKey := strings.IndexByte(value[startKey:], '}')
		if endKey < 0 {
			// unterminated, keep the rest verbatim
			b.WriteString(value[i+idx:])
			break
		}

		key := value[startKey : startKey+endKey]
		if !isKey(key) {
			// rescan right after the prefix so nested placeholders still expand
			b.WriteString(value[i+idx : startKey])
			i = startKey
			continue
		}
		b.WriteString(lookup(key))
		i = startKey + endKey + 1
	}
	return b.String()
}

func isKey(key string) bool {
	for _, r := range key {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			return false
		}
	}
	return true
}
