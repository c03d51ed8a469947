package persistence

import "strings"

// orderClause builds an ORDER BY clause from request-supplied sort
// parameters. The column is resolved against the repository's allowed set;
// anything unknown falls back to the given default, so request input never
// reaches the SQL text.
func orderClause(orderBy, orderDir string, allowed map[string]string, fallback string) string {
	column, ok := allowed[orderBy]
	if !ok {
		return fallback
	}
	dir := "ASC"
	if strings.EqualFold(orderDir, "desc") {
		dir = "DESC"
	}
	return column + " " + dir
}
