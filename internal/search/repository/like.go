package repository

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern turns a literal query into a substring ILIKE pattern.
func likePattern(query string) string {
	return "%" + likeEscaper.Replace(query) + "%"
}

// nullable converts an empty filter list to nil so it binds as SQL NULL.
func nullable(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	return values
}
