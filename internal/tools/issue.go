package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/jissue/jissue/internal/jira"
	"github.com/mark3labs/mcp-go/mcp"
)

// issueTool handles the get_jira_issue tool.
type issueTool struct {
	client *jira.Client
}

func (t *issueTool) Definition() mcp.Tool {
	return mcp.NewTool("get_jira_issue",
		mcp.WithDescription(
			"Get detailed information about a specific Jira issue by its key (e.g., PROJ-123)",
		),
		mcp.WithString("issue_key",
			mcp.Required(),
			mcp.Description("Jira issue key (e.g., 'PROJ-123')"),
		),
	)
}

func (t *issueTool) handle(ctx context.Context, args map[string]any) (string, error) {
	issueKey, err := requireString(args, "issue_key")
	if err != nil {
		return "", err
	}

	issue, err := t.client.GetIssue(ctx, issueKey)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s: %s\n\n", issue.Key, issue.Summary)
	fmt.Fprintf(&sb, "**Type:** %s\n", issue.Type)
	fmt.Fprintf(&sb, "**Status:** %s\n", issue.Status)
	fmt.Fprintf(&sb, "**Priority:** %s\n", orPlaceholder(issue.Priority, "N/A"))
	fmt.Fprintf(&sb, "**Assignee:** %s\n", orPlaceholder(issue.Assignee, "Unassigned"))
	fmt.Fprintf(&sb, "**URL:** %s\n\n", issue.URL)
	fmt.Fprintf(&sb, "## Description\n\n%s\n", orPlaceholder(issue.Description, "No description"))
	return sb.String(), nil
}
