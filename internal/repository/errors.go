package repository

import (
	"errors"
	"strings"
)

// ErrNoRowsAffected is returned by writes that matched nothing.
var ErrNoRowsAffected = errors.New("no rows affected")

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching s anywhere in the column.
// Wildcards in s are matched literally.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
