package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/jissue/jissue/internal/templates"
	"github.com/mark3labs/mcp-go/mcp"
)

// templatesTool handles the get_issue_templates tool.
type templatesTool struct {
	store *templates.Store
}

func (t *templatesTool) Definition() mcp.Tool {
	return mcp.NewTool("get_issue_templates",
		mcp.WithDescription(
			"Get available Jira issue type templates (story, bug, spike, task, etc.) "+
				"with formatting guidelines",
		),
		mcp.WithString("issue_type",
			mcp.Description("Optional: specific issue type to get template for"),
		),
	)
}

func (t *templatesTool) handle(_ context.Context, args map[string]any) (string, error) {
	issueType := stringArg(args, "issue_type")

	if issueType != "" {
		tmpl, ok := t.store.Get(issueType)
		if !ok {
			return fmt.Sprintf(
				"No template found for issue type: %s\n\nAvailable types: %s",
				issueType, strings.Join(t.store.List(), ", "),
			), nil
		}
		return fmt.Sprintf("# %s Template\n\n%s", strings.ToUpper(issueType), tmpl), nil
	}

	all := t.store.All()
	var sb strings.Builder
	sb.WriteString("# Available Issue Templates\n\n")
	for _, name := range t.store.List() {
		fmt.Fprintf(&sb, "## %s\n\n%s\n\n---\n\n", strings.ToUpper(name), all[name])
	}
	return sb.String(), nil
}
