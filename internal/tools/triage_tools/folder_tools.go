package triage_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/samber/lo"

	"github.com/teemow/inboxtriage/internal/instrumentation"
	"github.com/teemow/inboxtriage/internal/server"
	"github.com/teemow/inboxtriage/internal/tools/common"
	"github.com/teemow/inboxtriage/internal/triage"
)

// FolderResult is the result of triage_list_folder.
type FolderResult struct {
	Account  string                `json:"account"`
	Folder   triage.Folder         `json:"folder"`
	Query    string                `json:"query,omitempty"`
	Count    int                   `json:"count"`
	Messages []triage.EmailMessage `json:"messages"`
}

// RegisterFolderTools registers the folder listing tool
func RegisterFolderTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listFolderTool := mcp.NewTool("triage_list_folder",
		mcp.WithDescription("List the messages of a mailbox folder, optionally narrowed by a case-insensitive search over subject, sender and snippet. Unknown folders behave like the inbox."),
		mcp.WithString("account",
			mcp.Description(accountDescription),
		),
		mcp.WithString("folder",
			mcp.Description("Folder to list (default: inbox)"),
			mcp.Enum(lo.Map(triage.AllFolders, func(f triage.Folder, _ int) string { return string(f) })...),
		),
		mcp.WithString("query",
			mcp.Description("Search text; empty lists the whole folder"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	addTool(s, sc, listFolderTool, handleListFolder)
	return nil
}

func handleListFolder(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	folder := triage.Folder(common.StringArg(args, "folder"))
	if folder == "" {
		folder = triage.FolderInbox
	}
	query := common.StringArg(args, "query")

	account, snap, errResult := loadSnapshot(ctx, sc, args)
	if errResult != nil {
		return errResult, nil
	}

	messages := triage.FilterByFolder(snap.Messages, folder, snap.Starred)
	sc.RecordOperation(ctx, instrumentation.OperationFolder, len(messages))
	if query != "" {
		messages = triage.FilterByQuery(messages, query)
		sc.RecordOperation(ctx, instrumentation.OperationQuery, len(messages))
	}

	return jsonResult(FolderResult{
		Account:  account,
		Folder:   folder,
		Query:    query,
		Count:    len(messages),
		Messages: nonNil(messages),
	})
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
