package jira

import "strings"

// BuildJQL constructs the search query from free text and an optional
// project key. Non-empty text matches summary and description with the
// contains operator, OR'd; a project adds an exact-match clause, AND'd
// with the text clause. Results are always ordered by last update,
// newest first — with no clauses at all the query is just the ordering.
func BuildJQL(text, project string) string {
	var clauses []string

	if t := strings.TrimSpace(text); t != "" {
		q := escapeJQL(t)
		clauses = append(clauses, `(summary ~ "`+q+`" OR description ~ "`+q+`")`)
	}

	if project != "" {
		clauses = append(clauses, "project = "+project)
	}

	if len(clauses) == 0 {
		return "ORDER BY updated DESC"
	}
	return strings.Join(clauses, " AND ") + " ORDER BY updated DESC"
}

// escapeJQL escapes backslashes and double quotes so free text can be
// embedded in a quoted JQL string.
func escapeJQL(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
