package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/jissue/jissue/internal/jira"
	"github.com/mark3labs/mcp-go/mcp"
)

// maxDescriptionRunes caps issue descriptions in search results.
const maxDescriptionRunes = 200

// searchTool handles the search_jira_issues tool.
type searchTool struct {
	client *jira.Client
}

func (t *searchTool) Definition() mcp.Tool {
	return mcp.NewTool("search_jira_issues",
		mcp.WithDescription(
			"Search for existing Jira issues using text search. Useful for finding "+
				"similar/duplicate issues before creating new ones. TIP: For better duplicate "+
				"detection, try multiple searches with different keyword combinations extracted "+
				"from the user's description (e.g., core concepts, synonyms, related terms) "+
				"rather than searching the full phrase once.",
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search query text to search in summary and description. "+
				"Use key concepts/keywords rather than full phrases for better results."),
		),
		mcp.WithString("project",
			mcp.Description("Optional: limit search to specific project key"),
		),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum number of results to return (default: 10)"),
			mcp.DefaultNumber(10),
		),
	)
}

func (t *searchTool) handle(ctx context.Context, args map[string]any) (string, error) {
	// The schema requires 'query', but an empty string is a valid value:
	// it produces a project-only or unfiltered search.
	if _, ok := args["query"]; !ok {
		return "", fmt.Errorf("'query' is required")
	}
	query := stringArg(args, "query")
	project := stringArg(args, "project")
	maxResults := intArg(args, "max_results", 10)

	issues, err := t.client.SearchIssues(ctx, query, project, maxResults)
	if err != nil {
		return "", err
	}

	if len(issues) == 0 {
		return fmt.Sprintf("No issues found matching: %s", query), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Found %d issue(s)\n\n", len(issues))
	for _, issue := range issues {
		fmt.Fprintf(&sb, "## %s: %s\n", issue.Key, issue.Summary)
		fmt.Fprintf(&sb, "**Type:** %s | **Status:** %s | **Priority:** %s\n",
			issue.Type, issue.Status, orPlaceholder(issue.Priority, "N/A"))
		fmt.Fprintf(&sb, "**URL:** %s\n", issue.URL)
		if issue.Description != "" {
			fmt.Fprintf(&sb, "**Description:** %s\n", truncate(issue.Description, maxDescriptionRunes))
		}
		sb.WriteString("\n---\n\n")
	}
	return sb.String(), nil
}

// orPlaceholder substitutes placeholder for an empty value.
func orPlaceholder(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return s
}

// truncate cuts s to at most n runes, appending an ellipsis when cut.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
