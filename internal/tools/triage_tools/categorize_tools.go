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

// CategorizeResult is the result of triage_categorize.
type CategorizeResult struct {
	Category triage.Category `json:"category"`
	Matched  bool            `json:"matched"`
	Keywords []string        `json:"keywords,omitempty"`
}

// RegisterCategorizeTools registers the classifier tool
func RegisterCategorizeTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	categorizeTool := mcp.NewTool("triage_categorize",
		mcp.WithDescription("Classify an email into a category (invoices, receipts, travel, hr, legal, personal, promotions, social, system) by keyword match. Returns an empty category when nothing matches."),
		mcp.WithString("subject",
			mcp.Description("Email subject"),
		),
		mcp.WithString("snippet",
			mcp.Description("Short preview of the email body"),
		),
		mcp.WithString("from",
			mcp.Description("Sender display name and/or address"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	addTool(s, sc, categorizeTool, handleCategorize)
	return nil
}

func handleCategorize(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	subject := common.StringArg(args, "subject")
	snippet := common.StringArg(args, "snippet")
	from := common.StringArg(args, "from")

	if subject == "" && snippet == "" && from == "" {
		return mcp.NewToolResultError("at least one of 'subject', 'snippet' or 'from' is required"), nil
	}

	classifier := sc.Classifier()
	category := classifier.Classify(subject, snippet, from)
	sc.RecordOperation(ctx, instrumentation.OperationCategorize, 1)

	return jsonResult(CategorizeResult{
		Category: category,
		Matched:  category != triage.CategoryNone,
		Keywords: classifier.Keywords(category),
	})
}
