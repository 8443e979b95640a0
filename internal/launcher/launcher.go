// Package launcher builds the guided issue-creation prompt and hands
// control to the external Claude Code process for the rest of the
// session. The local process stays around only to relay an interrupt as
// a clean shutdown.
package launcher

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
)

// agentBinary is the external interactive program the launcher hands
// control to.
const agentBinary = "claude"

// ErrAgentNotFound reports that the external agent binary is not on
// PATH. The message carries install guidance.
var ErrAgentNotFound = errors.New(
	agentBinary + " not found in PATH\n\nPlease install Claude Code first:\nhttps://github.com/anthropics/claude-code",
)

// BuildPrompt assembles the initial instruction block: the target
// project, the user's free-text request (or an instruction to ask for
// one), and the step-by-step checklist the agent should follow.
func BuildPrompt(project, text string) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("I need to create a Jira issue in project %s.", project))

	if text != "" {
		parts = append(parts, fmt.Sprintf("\nHere's what I want to create:\n%s", text))
	} else {
		parts = append(parts, "\nPlease ask me what I want to create.")
	}

	parts = append(parts,
		"\nPlease help me by:",
		"1. First, get the project metadata to see available priorities and issue types",
		"2. Analyze my description and determine the appropriate issue type (bug/story/task/spike/etc)",
		"3. Suggest an appropriate priority based on the severity/importance",
		"4. Search for similar existing issues to avoid duplicates:",
		"   - Extract key concepts and search terms from my description",
		"   - Search using different combinations of keywords",
		"   - Look for semantic similarity, not just exact phrase matches",
		"   - Tell me if you find potentially duplicate issues",
		"5. Use the appropriate template to format the issue",
		"6. Show me the proposed issue (summary, description, type, priority)",
		"7. After I approve, create the issue in Jira",
	)

	return strings.Join(parts, "\n")
}

// Launch runs the external agent with the prompt as its sole argument,
// inheriting this process's terminal. The working directory is switched
// to the jissue binary's directory while the agent runs (so a local MCP
// registration is picked up) and restored before returning. An
// interrupt is treated as the user ending the session, not a failure.
func Launch(prompt string) error {
	agentPath, err := exec.LookPath(agentBinary)
	if err != nil {
		return ErrAgentNotFound
	}

	fmt.Fprintf(os.Stderr, "🚀 Launching Claude Code with Jissue MCP server...\n")
	fmt.Fprintf(os.Stderr, "\nInitial prompt:\n%s\n\n", prompt)
	fmt.Fprintln(os.Stderr, strings.Repeat("-", 60))
	fmt.Fprintln(os.Stderr)

	originalDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}
	if selfDir := executableDir(); selfDir != "" {
		if err := os.Chdir(selfDir); err == nil {
			defer func() { _ = os.Chdir(originalDir) }()
		}
	}

	// The agent runs in our foreground process group, so Ctrl-C reaches
	// it directly; we only swallow the signal ourselves so the hand-off
	// ends with a farewell instead of a crash.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)

	cmd := exec.Command(agentPath, prompt)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	runErr := cmd.Run()

	select {
	case <-sigCh:
		fmt.Fprintln(os.Stderr, "\n\nGoodbye!")
		return nil
	default:
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			// The agent's own exit status is its business, not ours.
			return nil
		}
		return fmt.Errorf("launching %s: %w", agentBinary, runErr)
	}
	return nil
}

// executableDir returns the directory of the running binary, or "" if
// it cannot be resolved.
func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Dir(exe)
}
