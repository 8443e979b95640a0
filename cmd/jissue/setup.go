package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/jissue/jissue/internal/config"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Border(lipgloss.DoubleBorder()).
			Padding(0, 4).
			Align(lipgloss.Center)

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)

	codeStyle = lipgloss.NewStyle().
			Faint(true).
			MarginLeft(2)
)

// printSetupInstructions writes the full setup walkthrough. It has no
// side effects: nothing is created, nothing is contacted.
func printSetupInstructions(w io.Writer) {
	fmt.Fprintln(w, titleStyle.Render("JISSUE SETUP INSTRUCTIONS"))
	fmt.Fprintln(w)

	fmt.Fprintln(w, headingStyle.Render("Step 1: Create Jira Configuration"))
	fmt.Fprintf(w, "Create %s with your Jira credentials:\n\n", config.DefaultPath())
	fmt.Fprintln(w, "For Jira Cloud:")
	fmt.Fprintln(w, codeStyle.Render(config.ExampleCloud))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "For Jira Data Center:")
	fmt.Fprintln(w, codeStyle.Render(config.ExampleDataCenter))
	fmt.Fprintln(w)

	fmt.Fprintln(w, headingStyle.Render("Step 2: Configure MCP Server in Claude Code"))
	fmt.Fprintln(w, "Add to your Claude Code MCP settings file:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, codeStyle.Render(`{
  "mcpServers": {
    "jissue": {
      "command": "jissue",
      "args": ["serve"]
    }
  }
}`))
	fmt.Fprintln(w)

	fmt.Fprintln(w, headingStyle.Render("Step 3: (Optional) Customize Templates"))
	fmt.Fprintf(w, "Create custom templates in %s\n\n", config.TemplatesDir())
	fmt.Fprintf(w, "Example: %s/story.md\n", config.TemplatesDir())
}
