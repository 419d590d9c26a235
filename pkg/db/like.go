package db

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern turns s into a LIKE/ILIKE pattern that matches s literally
// anywhere in the column.
func ContainsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
