package account_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/preciouskayili/calendar-agent/internal/server"
	"github.com/preciouskayili/calendar-agent/internal/tools/common"
)

// RegisterAccountTools registers credential account tools with the MCP server
func RegisterAccountTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// Add account tool
	addAccountTool := mcp.NewTool("calendar_add_account",
		mcp.WithDescription("Authorize a new Google account interactively. Opens a browser on the host for consent; fails after 30 seconds without a grant."),
		mcp.WithString("account",
			mcp.Description("Account name to authorize (default: 'default')"),
		),
	)

	s.AddTool(addAccountTool, common.InstrumentedToolHandler(
		"calendar_add_account", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleAddAccount(ctx, request, sc)
		}))

	// List accounts tool
	listAccountsTool := mcp.NewTool("calendar_list_accounts",
		mcp.WithDescription("List the Google accounts that have stored credentials"),
	)

	s.AddTool(listAccountsTool, common.InstrumentedToolHandler(
		"calendar_list_accounts", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListAccounts(ctx, request, sc)
		}))

	return nil
}

func handleAddAccount(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	account := common.GetAccountFromArgs(request.GetArguments())

	if !sc.CredentialStore().AddAccount(ctx, account) {
		return mcp.NewToolResultError(fmt.Sprintf("Authorization failed for account %q. The consent flow was denied, timed out, or the credential could not be saved.", account)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Authorization successful for account %q. Calendar tools can now use this account.", account)), nil
}

func handleListAccounts(_ context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	accounts := sc.CredentialStore().ListAccounts()

	payload, err := json.MarshalIndent(accounts, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode accounts: %v", err)), nil
	}

	return mcp.NewToolResultText(string(payload)), nil
}
