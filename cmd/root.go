package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the calendar-agent application
var rootCmd = &cobra.Command{
	Use:   "calendar-agent",
	Short: "Multi-account Google Calendar MCP server",
	Long: `calendar-agent exposes Google Calendar operations to AI assistants over
the Model Context Protocol (MCP).

It manages OAuth credentials for multiple Google accounts, serves calendar
and session-memory tools over stdio, and provides an operator CLI for
authorizing accounts.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "calendar-agent version %s\n" .Version}}`)

	// .env carries GOOGLE_CLIENT_ID / GOOGLE_CLIENT_SECRET in development.
	// Missing file is fine.
	_ = godotenv.Load()

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newVersionCmd())
}
