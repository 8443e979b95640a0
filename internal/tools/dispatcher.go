// Package tools implements the six MCP tools and the dispatcher that
// routes tool calls to them.
//
// Each tool is one file: a struct holding its dependencies (injected by
// the dispatcher constructor), a Definition() returning the mcp.Tool
// schema, and a handle func returning plain text. The dispatcher owns
// the fixed name-to-handler table and the single error channel: any
// failure — unknown name, missing argument, remote call — comes back to
// the caller as one text block, never as a crash of the server process.
package tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jissue/jissue/internal/jira"
	"github.com/jissue/jissue/internal/templates"
	"github.com/mark3labs/mcp-go/mcp"
)

// tool is one named request/response operation.
type tool interface {
	Definition() mcp.Tool
	handle(ctx context.Context, args map[string]any) (string, error)
}

// Dispatcher routes a tool name and argument map to its handler.
type Dispatcher struct {
	tools map[string]tool
	order []string
}

// NewDispatcher wires the six tools with their dependencies. The Jira
// client is passed in by the composition root; its connection is still
// established lazily on the first call that needs it.
func NewDispatcher(client *jira.Client, store *templates.Store) *Dispatcher {
	registered := []tool{
		&templatesTool{store: store},
		&createTool{client: client},
		&projectsTool{client: client},
		&searchTool{client: client},
		&issueTool{client: client},
		&metadataTool{client: client},
	}

	d := &Dispatcher{tools: make(map[string]tool, len(registered))}
	for _, t := range registered {
		name := t.Definition().Name
		d.tools[name] = t
		d.order = append(d.order, name)
	}
	return d
}

// Definitions returns the tool schemas in registration order.
func (d *Dispatcher) Definitions() []mcp.Tool {
	defs := make([]mcp.Tool, 0, len(d.order))
	for _, name := range d.order {
		defs = append(defs, d.tools[name].Definition())
	}
	return defs
}

// Handle adapts an mcp-go tool request onto Dispatch. It is registered
// as the handler for every tool.
func (d *Dispatcher) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return d.Dispatch(ctx, req.Params.Name, req.GetArguments()), nil
}

// Dispatch looks up the named tool and invokes it. Unknown names and
// handler errors both produce a text response — the server never fails
// a call at the protocol level.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args map[string]any) *mcp.CallToolResult {
	t, ok := d.tools[name]
	if !ok {
		return mcp.NewToolResultText(fmt.Sprintf("Unknown tool: %s", name))
	}

	text, err := t.handle(ctx, args)
	if err != nil {
		slog.Error("tool call failed", "tool", name, "error", err)
		return mcp.NewToolResultText(fmt.Sprintf("Error: %s", err))
	}
	return mcp.NewToolResultText(text)
}

// stringArg extracts a string argument, returning "" when missing or of
// the wrong type.
func stringArg(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return v
}

// intArg extracts an integer argument, returning defaultVal if the key
// is missing or not a number (JSON numbers arrive as float64).
func intArg(args map[string]any, key string, defaultVal int) int {
	v, ok := args[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// requireString extracts a required string argument, erroring when it
// is missing or empty.
func requireString(args map[string]any, key string) (string, error) {
	v := stringArg(args, key)
	if v == "" {
		return "", fmt.Errorf("'%s' is required", key)
	}
	return v, nil
}
