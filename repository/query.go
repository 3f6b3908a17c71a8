package repository

import (
	"encoding/json"
	"strings"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern for a literal substring; use with
// ESCAPE '\'.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// jsonElementPattern matches one exact string element inside a column
// written by gorm's json serializer.
func jsonElementPattern(s string) string {
	b, _ := json.Marshal(s)
	return containsPattern(string(b))
}
