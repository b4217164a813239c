package triage_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/inboxtriage/internal/instrumentation"
	"github.com/teemow/inboxtriage/internal/server"
	"github.com/teemow/inboxtriage/internal/tools/common"
	"github.com/teemow/inboxtriage/internal/triage"
)

// SmartFoldersResult is the result of triage_smart_folders.
type SmartFoldersResult struct {
	Account  string               `json:"account"`
	DemoData bool                 `json:"demoData"`
	Folders  []triage.SmartFolder `json:"folders"`
}

// StatsResult is the result of triage_stats.
type StatsResult struct {
	Account string          `json:"account"`
	Stat    triage.StatType `json:"stat"`
	triage.StatData
}

// RegisterInsightTools registers the smart folder and statistics tools
func RegisterInsightTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	smartFoldersTool := mcp.NewTool("triage_smart_folders",
		mcp.WithDescription("List smart folders: an Action Required folder plus one folder per non-personal category, with message counts. Empty folders are omitted."),
		mcp.WithString("account",
			mcp.Description(accountDescription),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	addTool(s, sc, smartFoldersTool, handleSmartFolders)

	statsTool := mcp.NewTool("triage_stats",
		mcp.WithDescription("Return the data behind a dashboard statistic: unread emails, noisy senders (score 6 and above) or emails with attachments (largest first). Trashed messages are excluded."),
		mcp.WithString("account",
			mcp.Description(accountDescription),
		),
		mcp.WithString("stat",
			mcp.Required(),
			mcp.Description("Statistic to select"),
			mcp.Enum(enumValues(triage.AllStatTypes)...),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	addTool(s, sc, statsTool, handleStats)

	return nil
}

func handleSmartFolders(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	account, snap, errResult := loadSnapshot(ctx, sc, request.GetArguments())
	if errResult != nil {
		return errResult, nil
	}

	folders := snap.SmartFolders(sc.DemoMode())
	sc.RecordOperation(ctx, instrumentation.OperationSmartFolders, len(folders))

	return jsonResult(SmartFoldersResult{
		Account:  account,
		DemoData: triage.UsesDemoData(snap.Messages, sc.DemoMode()),
		Folders:  nonNil(folders),
	})
}

func handleStats(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	stat := triage.StatType(common.StringArg(args, "stat"))
	if stat == "" {
		return mcp.NewToolResultError("'stat' field is required"), nil
	}

	account, snap, errResult := loadSnapshot(ctx, sc, args)
	if errResult != nil {
		return errResult, nil
	}

	data := snap.Stats(stat, sc.DemoMode())
	sc.RecordOperation(ctx, instrumentation.OperationStats,
		data.UnreadCount+len(data.NoisySenders)+data.FilesCount)

	return jsonResult(StatsResult{
		Account:  account,
		Stat:     stat,
		StatData: data,
	})
}
