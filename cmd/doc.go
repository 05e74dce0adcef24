// Package cmd implements the command-line interface for calendar-agent.
//
// This package provides the following commands:
//   - serve: Start the MCP server exposing calendar and session-memory tools
//   - auth add: Run the interactive OAuth consent flow for an account
//   - auth list: List accounts with stored credentials
//   - version: Display version information
package cmd
