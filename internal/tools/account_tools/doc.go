// Package account_tools provides MCP tools for managing the Google accounts
// known to the credential store: interactive authorization of new accounts and
// listing the accounts already configured.
package account_tools
