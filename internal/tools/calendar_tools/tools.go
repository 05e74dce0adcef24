package calendar_tools

import (
	"context"
	"errors"
	"fmt"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/preciouskayili/calendar-agent/internal/calendar"
	"github.com/preciouskayili/calendar-agent/internal/instrumentation"
	"github.com/preciouskayili/calendar-agent/internal/server"
)

// getCalendarClient builds a fresh calendar client for the account. Clients
// are not cached; the credential store refreshes tokens under the hood, and a
// fresh client always sees the current credential.
func getCalendarClient(ctx context.Context, account string, sc *server.ServerContext) (*calendar.Client, error) {
	client, err := calendar.NewClientForAccount(ctx, sc.CredentialStore(), account)
	if err != nil {
		var unconfigured *calendar.UnconfiguredAccountError
		if errors.As(err, &unconfigured) {
			return nil, fmt.Errorf("no credential for account %q. Run \"calendar-agent auth add %s\" on the host, or call the calendar_add_account tool, then retry", account, account)
		}
		return nil, fmt.Errorf("failed to create calendar client for account %s: %w", account, err)
	}
	return client, nil
}

// recordAPIOperation records one upstream calendar API call. Called only
// after a client request was actually made; validation and client
// construction failures are not upstream operations.
func recordAPIOperation(ctx context.Context, sc *server.ServerContext, operation string, start time.Time, err error) {
	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
	}
	sc.Metrics().RecordCalendarAPIOperation(ctx, operation, status, time.Since(start))
}

// RegisterCalendarTools registers all calendar-related tools with the MCP server
func RegisterCalendarTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// Register calendar list tools
	if err := RegisterCalendarListTools(s, sc); err != nil {
		return fmt.Errorf("failed to register calendar list tools: %w", err)
	}

	// Register event tools
	if err := RegisterEventTools(s, sc); err != nil {
		return fmt.Errorf("failed to register event tools: %w", err)
	}

	return nil
}
