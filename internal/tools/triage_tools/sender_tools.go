package triage_tools

import (
	"context"
	"fmt"
	"slices"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/samber/lo"

	"github.com/teemow/inboxtriage/internal/instrumentation"
	"github.com/teemow/inboxtriage/internal/logging"
	"github.com/teemow/inboxtriage/internal/server"
	"github.com/teemow/inboxtriage/internal/tools/batch"
	"github.com/teemow/inboxtriage/internal/tools/common"
	"github.com/teemow/inboxtriage/internal/triage"
)

// SenderEntry is a sender with its selection state.
type SenderEntry struct {
	triage.Sender
	Selected bool `json:"selected"`
}

// SendersResult is the result of triage_list_senders.
type SendersResult struct {
	Account       string              `json:"account"`
	Filter        triage.SenderFilter `json:"filter"`
	Search        string              `json:"search,omitempty"`
	Sort          triage.SenderSort   `json:"sort"`
	Count         int                 `json:"count"`
	SelectedCount int                 `json:"selectedCount"`
	Senders       []SenderEntry       `json:"senders"`
}

// SelectionResult describes the sender selection of an account.
type SelectionResult struct {
	Account     string          `json:"account"`
	SelectedIDs []string        `json:"selectedIds"`
	Senders     []triage.Sender `json:"senders"`
}

// ToggleResult is the result of triage_toggle_sender_selection.
type ToggleResult struct {
	batch.BatchResult
	SelectedIDs []string `json:"selectedIds"`
}

// RegisterSenderTools registers the sender list and selection tools
func RegisterSenderTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listSendersTool := mcp.NewTool("triage_list_senders",
		mcp.WithDescription("List senders with their volume, size, noise score and engagement. Filter, search and sort the list; each entry reports whether the sender is selected."),
		mcp.WithString("account",
			mcp.Description(accountDescription),
		),
		mcp.WithString("filter",
			mcp.Description("Filter mode (default: all). high-noise keeps scores of 7 and above, unread keeps engagement below 50%, large-files keeps senders above 500 MB."),
			mcp.Enum(enumValues(triage.AllSenderFilters)...),
		),
		mcp.WithString("search",
			mcp.Description("Case-insensitive text matched against sender name or address"),
		),
		mcp.WithString("sort",
			mcp.Description("Sort order (default: noise). engagement sorts least engaged first, the others sort descending."),
			mcp.Enum(enumValues(triage.AllSenderSorts)...),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	addTool(s, sc, listSendersTool, handleListSenders)

	toggleSelectionTool := mcp.NewTool("triage_toggle_sender_selection",
		mcp.WithDescription("Toggle one or more senders in the sender selection. Selecting a selected sender deselects it."),
		mcp.WithString("account",
			mcp.Description(accountDescription),
		),
		mcp.WithString("senderIds",
			mcp.Required(),
			mcp.Description("Sender ID (string) or array of sender IDs to toggle"),
		),
	)
	addTool(s, sc, toggleSelectionTool, handleToggleSenderSelection)

	getSelectionTool := mcp.NewTool("triage_get_sender_selection",
		mcp.WithDescription("Show the selected senders"),
		mcp.WithString("account",
			mcp.Description(accountDescription),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	addTool(s, sc, getSelectionTool, handleGetSenderSelection)

	clearSelectionTool := mcp.NewTool("triage_clear_sender_selection",
		mcp.WithDescription("Deselect all senders"),
		mcp.WithString("account",
			mcp.Description(accountDescription),
		),
	)
	addTool(s, sc, clearSelectionTool, handleClearSenderSelection)

	return nil
}

func enumValues[T ~string](values []T) []string {
	return lo.Map(values, func(v T, _ int) string { return string(v) })
}

func parseSenderFilter(value string) (triage.SenderFilter, error) {
	if value == "" {
		return triage.SenderFilterAll, nil
	}
	f := triage.SenderFilter(value)
	if !slices.Contains(triage.AllSenderFilters, f) {
		return "", fmt.Errorf("unknown filter %q (valid: %v)", value, enumValues(triage.AllSenderFilters))
	}
	return f, nil
}

func parseSenderSort(value string) (triage.SenderSort, error) {
	if value == "" {
		return triage.SenderSortNoise, nil
	}
	o := triage.SenderSort(value)
	if !slices.Contains(triage.AllSenderSorts, o) {
		return "", fmt.Errorf("unknown sort %q (valid: %v)", value, enumValues(triage.AllSenderSorts))
	}
	return o, nil
}

func handleListSenders(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	filter, err := parseSenderFilter(common.StringArg(args, "filter"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sortBy, err := parseSenderSort(common.StringArg(args, "sort"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	account, snap, errResult := loadSnapshot(ctx, sc, args)
	if errResult != nil {
		return errResult, nil
	}

	view := triage.SenderView{
		Filter:   filter,
		Search:   common.StringArg(args, "search"),
		Sort:     sortBy,
		Selected: sc.Selection(account),
	}
	senders := view.Senders(snap.Senders)
	sc.RecordOperation(ctx, instrumentation.OperationSenders, len(senders))

	entries := lo.Map(senders, func(s triage.Sender, _ int) SenderEntry {
		return SenderEntry{Sender: s, Selected: view.Selected.Contains(s.ID)}
	})

	return jsonResult(SendersResult{
		Account:       account,
		Filter:        view.Filter,
		Search:        view.Search,
		Sort:          view.Sort,
		Count:         len(entries),
		SelectedCount: lo.CountBy(entries, func(e SenderEntry) bool { return e.Selected }),
		Senders:       nonNil(entries),
	})
}

func handleToggleSenderSelection(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	ids, err := batch.ParseStringOrArray(args["senderIds"], "senderIds")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	account, snap, errResult := loadSnapshot(ctx, sc, args)
	if errResult != nil {
		return errResult, nil
	}

	known := snap.SenderIDs()
	results := batch.ProcessBatch(ids, func(id string) (string, error) {
		if !known.Contains(id) {
			return "", fmt.Errorf("unknown sender %q", id)
		}
		status := "deselected"
		if sc.ToggleSelection(account, id).Contains(id) {
			status = "selected"
		}
		sc.Logger().Debug("sender selection toggled",
			logging.Account(account),
			"sender", logging.AnonymizeEmail(id),
			logging.SenderDomain(id),
			logging.Status(status))
		return status, nil
	})

	selection := sc.Selection(account)
	sc.RecordOperation(ctx, instrumentation.OperationSelection, selection.Len())

	return jsonResult(ToggleResult{
		BatchResult: batch.Summarize(results),
		SelectedIDs: selection.IDs(),
	})
}

func handleGetSenderSelection(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	account, snap, errResult := loadSnapshot(ctx, sc, request.GetArguments())
	if errResult != nil {
		return errResult, nil
	}

	view := triage.SenderView{Selected: sc.Selection(account)}
	selected := view.SelectedSenders(snap.Senders)
	sc.RecordOperation(ctx, instrumentation.OperationSelection, len(selected))

	return jsonResult(SelectionResult{
		Account:     account,
		SelectedIDs: view.Selected.IDs(),
		Senders:     nonNil(selected),
	})
}

func handleClearSenderSelection(_ context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	account := sc.Account(common.GetAccountFromArgs(request.GetArguments()))
	cleared := sc.Selection(account).Len()
	sc.ClearSelection(account)

	return mcp.NewToolResultText(fmt.Sprintf("Cleared %d selected sender(s) for account %s", cleared, account)), nil
}
