// Jissue: AI-powered Jira issue creation.
//
// The root command builds a guided prompt from your description and
// hands it to Claude Code; the serve command runs the MCP server that
// gives the agent its Jira tools.
//
// Usage:
//
//	jissue "Login button not working on mobile Safari"
//	jissue -p MYPROJECT "Update installation documentation"
//	jissue serve     # Start the MCP server (stdio transport)
//	jissue --setup   # Show setup instructions
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jissue/jissue/internal/config"
	"github.com/jissue/jissue/internal/launcher"
	"github.com/jissue/jissue/internal/server"
	"github.com/spf13/cobra"
)

var (
	projectFlag string
	setupFlag   bool
)

func main() {
	// stdout belongs to the MCP stdio transport when serving; all
	// diagnostics go to stderr.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "⚠️  %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jissue [description...]",
		Short: "AI-powered Jira issue creator",
		Long: "Jissue — AI-powered Jira issue creator. Just describe what you want and\n" +
			"Claude will figure out the type, priority, and format it properly.",
		Example: `  jissue
    Interactive mode - Claude will ask what you want to create

  jissue "Login button not working on mobile Safari"
    Claude analyzes this and determines it's a bug, picks priority, formats it

  jissue "Research best practices for API rate limiting"
    Claude identifies this as a spike, uses spike template

  jissue -p MYPROJECT "Update installation documentation"
    Create an issue in a different project (MYPROJECT instead of default)`,
		Args:          cobra.ArbitraryArgs,
		RunE:          runLaunch,
		Version:       server.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringVarP(&projectFlag, "project", "p", "",
		"Jira project key (e.g., PROJ). Defaults to configured default_project")
	rootCmd.Flags().BoolVar(&setupFlag, "setup", false, "Show setup instructions")

	rootCmd.AddCommand(newServeCmd())

	return rootCmd
}

func runLaunch(cmd *cobra.Command, args []string) error {
	if setupFlag {
		printSetupInstructions(cmd.OutOrStdout())
		return nil
	}

	// Setup errors halt here, before any network activity.
	cfg, err := config.Load("")
	if err != nil {
		return err
	}

	project := projectFlag
	if project == "" {
		project = cfg.DefaultProject
	}
	if project == "" {
		project = "PROJ"
	}

	prompt := launcher.BuildPrompt(project, strings.Join(args, " "))
	return launcher.Launch(prompt)
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the Jissue MCP server (stdio transport)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load("")
			if err != nil {
				return err
			}

			s, err := server.New(cfg)
			if err != nil {
				return fmt.Errorf("creating server: %w", err)
			}

			slog.Info("starting Jissue MCP server", "version", server.Version)
			return server.Run(s)
		},
	}
}
