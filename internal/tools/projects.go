package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/jissue/jissue/internal/jira"
	"github.com/mark3labs/mcp-go/mcp"
)

// projectsTool handles the get_jira_projects tool.
type projectsTool struct {
	client *jira.Client
}

func (t *projectsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_jira_projects",
		mcp.WithDescription("Get list of available Jira projects"),
	)
}

func (t *projectsTool) handle(ctx context.Context, _ map[string]any) (string, error) {
	projects, err := t.client.Projects(ctx)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("# Available Jira Projects\n\n")
	for _, p := range projects {
		fmt.Fprintf(&sb, "- **%s**: %s\n", p.Key, p.Name)
	}
	return sb.String(), nil
}
