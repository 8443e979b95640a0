package tools

import (
	"context"
	"fmt"

	"github.com/jissue/jissue/internal/jira"
	"github.com/mark3labs/mcp-go/mcp"
)

// createTool handles the create_jira_issue tool.
type createTool struct {
	client *jira.Client
}

func (t *createTool) Definition() mcp.Tool {
	return mcp.NewTool("create_jira_issue",
		mcp.WithDescription("Create a new Jira issue with the provided details"),
		mcp.WithString("project",
			mcp.Required(),
			mcp.Description("Jira project key (e.g., 'PROJ')"),
		),
		mcp.WithString("issue_type",
			mcp.Required(),
			mcp.Description("Issue type: story, bug, spike, task, etc."),
		),
		mcp.WithString("summary",
			mcp.Required(),
			mcp.Description("Issue summary/title"),
		),
		mcp.WithString("description",
			mcp.Required(),
			mcp.Description("Issue description in Jira markdown format"),
		),
		mcp.WithString("priority",
			mcp.Description("Priority name (use get_project_metadata to get valid priorities for the project)"),
		),
		mcp.WithString("assignee",
			mcp.Description("Assignee username (optional)"),
		),
	)
}

func (t *createTool) handle(ctx context.Context, args map[string]any) (string, error) {
	project, err := requireString(args, "project")
	if err != nil {
		return "", err
	}
	issueType, err := requireString(args, "issue_type")
	if err != nil {
		return "", err
	}
	summary, err := requireString(args, "summary")
	if err != nil {
		return "", err
	}
	description, err := requireString(args, "description")
	if err != nil {
		return "", err
	}

	key, err := t.client.CreateIssue(ctx, jira.CreateIssueInput{
		Project:     project,
		IssueType:   issueType,
		Summary:     summary,
		Description: description,
		Priority:    stringArg(args, "priority"),
		Assignee:    stringArg(args, "assignee"),
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(
		"✓ Created Jira issue: %s\n\nURL: %s\n\nSummary: %s",
		key, t.client.IssueURL(key), summary,
	), nil
}
