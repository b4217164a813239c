package triage_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/inboxtriage/internal/mailbox"
	"github.com/teemow/inboxtriage/internal/server"
	"github.com/teemow/inboxtriage/internal/tools/common"
)

const accountDescription = "Account name (default: the server's configured account). Used to manage multiple mailboxes."

// RegisterTriageTools registers all triage tools with the MCP server
func RegisterTriageTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	if err := RegisterCategorizeTools(s, sc); err != nil {
		return fmt.Errorf("failed to register categorize tools: %w", err)
	}
	if err := RegisterFolderTools(s, sc); err != nil {
		return fmt.Errorf("failed to register folder tools: %w", err)
	}
	if err := RegisterSenderTools(s, sc); err != nil {
		return fmt.Errorf("failed to register sender tools: %w", err)
	}
	if err := RegisterInsightTools(s, sc); err != nil {
		return fmt.Errorf("failed to register insight tools: %w", err)
	}
	if err := RegisterMailboxTools(s, sc); err != nil {
		return fmt.Errorf("failed to register mailbox tools: %w", err)
	}
	return nil
}

// addTool registers handler under the tool's name, wrapped with tracing,
// metrics and audit logging.
func addTool(s *mcpserver.MCPServer, sc *server.ServerContext, tool mcp.Tool, handler func(context.Context, mcp.CallToolRequest, *server.ServerContext) (*mcp.CallToolResult, error)) {
	s.AddTool(tool, common.InstrumentedToolHandler(tool.Name, sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handler(ctx, request, sc)
	}))
}

// loadSnapshot returns the snapshot for the account named in args. A
// fetch failure is reported as a tool error result.
func loadSnapshot(ctx context.Context, sc *server.ServerContext, args map[string]any) (string, *mailbox.Snapshot, *mcp.CallToolResult) {
	account := sc.Account(common.GetAccountFromArgs(args))
	snap, err := sc.Snapshot(ctx, account)
	if err != nil {
		return account, nil, mcp.NewToolResultError(fmt.Sprintf("Failed to load mailbox for account %s: %v", account, err))
	}
	return account, snap, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(result)), nil
}
