// Package server wires the Jissue MCP server.
//
// This is the composition root: it builds the template store, the Jira
// client, and the tool dispatcher, and registers the six tools on an
// mcp-go stdio server. No business logic lives here — only wiring.
package server

import (
	"fmt"

	"github.com/jissue/jissue/internal/config"
	"github.com/jissue/jissue/internal/jira"
	"github.com/jissue/jissue/internal/templates"
	"github.com/jissue/jissue/internal/tools"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates the MCP server with all six Jira tools registered. The
// Jira client is constructed here and injected into the dispatcher; its
// connection is established lazily on the first tool call that needs it.
func New(cfg *config.Config) (*server.MCPServer, error) {
	store, err := templates.NewStore(config.TemplatesDir())
	if err != nil {
		return nil, fmt.Errorf("creating template store: %w", err)
	}

	client, err := jira.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating Jira client: %w", err)
	}

	dispatcher := tools.NewDispatcher(client, store)

	s := server.NewMCPServer(
		"jissue",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	for _, def := range dispatcher.Definitions() {
		s.AddTool(def, dispatcher.Handle)
	}

	return s, nil
}

// Run serves MCP over stdio until the transport closes.
func Run(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

// serverInstructions tells the AI how to use the Jira tools together.
func serverInstructions() string {
	return `You have access to Jissue, a Jira issue creation assistant.

Typical workflow for creating an issue:
1. Call get_project_metadata to learn the valid priorities and issue types.
2. Determine the issue type (bug/story/task/spike/etc) from the user's description.
3. Call search_jira_issues with a few keyword combinations to spot duplicates
   before creating anything — tell the user about likely matches.
4. Call get_issue_templates for the chosen type and format the description with it.
5. Show the user the proposed issue (summary, description, type, priority)
   and create it with create_jira_issue only after they approve.

Use get_jira_issue to inspect a specific issue and get_jira_projects to list
projects when the user has not named one.`
}
