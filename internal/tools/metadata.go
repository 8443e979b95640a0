package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/jissue/jissue/internal/jira"
	"github.com/mark3labs/mcp-go/mcp"
)

// metadataTool handles the get_project_metadata tool.
//
// Known limitation, preserved on purpose: the priorities and issue types
// in the response are the instance-wide sets, not filtered to the given
// project — Jira exposes them globally and this tool passes them through.
type metadataTool struct {
	client *jira.Client
}

func (t *metadataTool) Definition() mcp.Tool {
	return mcp.NewTool("get_project_metadata",
		mcp.WithDescription(
			"Get project metadata including available priorities and issue types. "+
				"Use this before creating issues to know what priorities and types are valid.",
		),
		mcp.WithString("project_key",
			mcp.Required(),
			mcp.Description("Jira project key (e.g., 'PROJ')"),
		),
	)
}

func (t *metadataTool) handle(ctx context.Context, args map[string]any) (string, error) {
	projectKey, err := requireString(args, "project_key")
	if err != nil {
		return "", err
	}

	meta, err := t.client.ProjectMetadata(ctx, projectKey)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s - %s\n\n", meta.Project.Key, meta.Project.Name)

	sb.WriteString("## Available Priorities\n")
	for _, p := range meta.Priorities {
		fmt.Fprintf(&sb, "- %s\n", p)
	}

	sb.WriteString("\n## Available Issue Types\n")
	for _, it := range meta.IssueTypes {
		fmt.Fprintf(&sb, "- %s\n", it)
	}
	return sb.String(), nil
}
