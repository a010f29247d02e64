package session

import (
	"regexp"
)

var autoincrementInsert = regexp.MustCompile(`(?is)^\s*INSERT\s.*\sRETURNING\s`)

// IsAutoincrementInsertQuery reports whether query is an INSERT returning
// the generated key, which is then read with QueryRow instead of Exec.
func IsAutoincrementInsertQuery(query string) bool {
	return autoincrementInsert.MatchString(query)
}
