package memory_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/preciouskayili/calendar-agent/internal/memory"
	"github.com/preciouskayili/calendar-agent/internal/server"
	"github.com/preciouskayili/calendar-agent/internal/tools/common"
)

// RegisterMemoryTools registers session memory tools with the MCP server
func RegisterMemoryTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// New session tool
	newSessionTool := mcp.NewTool("memory_new_session",
		mcp.WithDescription("Start a new conversation session and return its ID"),
	)

	s.AddTool(newSessionTool, common.InstrumentedToolHandler(
		"memory_new_session", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleNewSession(ctx, request, sc)
		}))

	// Append message tool
	appendMessageTool := mcp.NewTool("memory_append_message",
		mcp.WithDescription("Record a conversation message in session memory"),
		mcp.WithString("sessionId",
			mcp.Required(),
			mcp.Description("Session ID the message belongs to"),
		),
		mcp.WithString("role",
			mcp.Required(),
			mcp.Description("Message author role (e.g., 'user', 'assistant')"),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Message text"),
		),
	)

	s.AddTool(appendMessageTool, common.InstrumentedToolHandler(
		"memory_append_message", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleAppendMessage(ctx, request, sc)
		}))

	// Get session tool
	getSessionTool := mcp.NewTool("memory_get_session",
		mcp.WithDescription("Retrieve the messages of a session in insertion order"),
		mcp.WithString("sessionId",
			mcp.Required(),
			mcp.Description("Session ID to retrieve"),
		),
	)

	s.AddTool(getSessionTool, common.InstrumentedToolHandler(
		"memory_get_session", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetSession(ctx, request, sc)
		}))

	return nil
}

func handleNewSession(_ context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if sc.MemoryStore() == nil {
		return mcp.NewToolResultError("session memory is not configured"), nil
	}
	return mcp.NewToolResultText(memory.NewSessionID()), nil
}

func handleAppendMessage(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	store := sc.MemoryStore()
	if store == nil {
		return mcp.NewToolResultError("session memory is not configured"), nil
	}

	args := request.GetArguments()
	sessionID, _ := args["sessionId"].(string)
	role, _ := args["role"].(string)
	content, _ := args["content"].(string)

	if err := store.Append(ctx, sessionID, role, content); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to append message: %v", err)), nil
	}

	return mcp.NewToolResultText("Message recorded."), nil
}

func handleGetSession(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	store := sc.MemoryStore()
	if store == nil {
		return mcp.NewToolResultError("session memory is not configured"), nil
	}

	sessionID, _ := request.GetArguments()["sessionId"].(string)
	if sessionID == "" {
		return mcp.NewToolResultError("sessionId is required"), nil
	}

	messages, err := store.History(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to read session: %v", err)), nil
	}

	payload, err := json.MarshalIndent(messages, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode messages: %v", err)), nil
	}

	return mcp.NewToolResultText(string(payload)), nil
}
