package triage_tools

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/inboxtriage/internal/server"
	"github.com/teemow/inboxtriage/internal/tools/common"
)

// RefreshResult is the result of triage_refresh_mailbox.
type RefreshResult struct {
	Account   string    `json:"account"`
	Source    string    `json:"source"`
	Messages  int       `json:"messages"`
	Senders   int       `json:"senders"`
	Starred   int       `json:"starred"`
	Trashed   int       `json:"trashed"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// RegisterMailboxTools registers the snapshot refresh tool
func RegisterMailboxTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	refreshTool := mcp.NewTool("triage_refresh_mailbox",
		mcp.WithDescription("Drop the cached mailbox snapshot and fetch it again from the mailbox source. Other tools reuse a cached snapshot for a few minutes."),
		mcp.WithString("account",
			mcp.Description(accountDescription),
		),
	)
	addTool(s, sc, refreshTool, handleRefreshMailbox)
	return nil
}

func handleRefreshMailbox(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	account := sc.Account(common.GetAccountFromArgs(request.GetArguments()))

	snap, err := sc.Refresh(ctx, account)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to refresh mailbox for account %s: %v", account, err)), nil
	}

	return jsonResult(RefreshResult{
		Account:   account,
		Source:    sc.SourceName(),
		Messages:  len(snap.Messages),
		Senders:   len(snap.Senders),
		Starred:   snap.Starred.Len(),
		Trashed:   snap.Trashed.Len(),
		FetchedAt: snap.FetchedAt,
	})
}
