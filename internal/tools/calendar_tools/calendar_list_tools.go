package calendar_tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/preciouskayili/calendar-agent/internal/instrumentation"
	"github.com/preciouskayili/calendar-agent/internal/server"
	"github.com/preciouskayili/calendar-agent/internal/tools/common"
)

// defaultListBudget bounds list results when the agent omits maxResults.
const defaultListBudget = 50

// RegisterCalendarListTools registers calendar list tools with the MCP server
func RegisterCalendarListTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// List calendars tool
	listCalendarsTool := mcp.NewTool("calendar_list_calendars",
		mcp.WithDescription("List calendars accessible to the account"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithNumber("maxResults",
			mcp.Description(fmt.Sprintf("Maximum number of calendars to return (default: %d)", defaultListBudget)),
		),
	)

	s.AddTool(listCalendarsTool, common.InstrumentedToolHandlerWithOperation(
		"calendar_list_calendars", instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListCalendars(ctx, request, sc)
		}))

	// Create calendar tool
	createCalendarTool := mcp.NewTool("calendar_create_calendar",
		mcp.WithDescription("Create a new secondary calendar"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("summary",
			mcp.Required(),
			mcp.Description("Display name for the new calendar"),
		),
	)

	s.AddTool(createCalendarTool, common.InstrumentedToolHandlerWithOperation(
		"calendar_create_calendar", instrumentation.OperationCreate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateCalendar(ctx, request, sc)
		}))

	return nil
}

func handleListCalendars(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)
	maxResults := common.ParseMaxResults(args, "maxResults", defaultListBudget)

	client, err := getCalendarClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	apiStart := time.Now()
	calendars, err := client.ListCalendars(ctx, maxResults)
	recordAPIOperation(ctx, sc, instrumentation.OperationList, apiStart, err)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list calendars: %v", err)), nil
	}

	payload, err := json.MarshalIndent(calendars, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode calendars: %v", err)), nil
	}

	return mcp.NewToolResultText(string(payload)), nil
}

func handleCreateCalendar(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	summary, ok := args["summary"].(string)
	if !ok || summary == "" {
		return mcp.NewToolResultError("summary is required"), nil
	}

	client, err := getCalendarClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	apiStart := time.Now()
	created, err := client.CreateCalendar(ctx, summary)
	recordAPIOperation(ctx, sc, instrumentation.OperationCreate, apiStart, err)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create calendar: %v", err)), nil
	}

	payload, err := json.MarshalIndent(created, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode calendar: %v", err)), nil
	}

	return mcp.NewToolResultText(string(payload)), nil
}
