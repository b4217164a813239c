package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/samber/lo"

	"github.com/teemow/inboxtriage/internal/server"
	"github.com/teemow/inboxtriage/internal/triage"
)

const (
	CategoriesURI = "triage://categories"
	SummaryURI    = "triage://server/summary"
)

// CategoryRule is the JSON form of a classifier rule.
type CategoryRule struct {
	Category triage.Category `json:"category"`
	Keywords []string        `json:"keywords"`
}

// Summary describes the server's mailbox source and cache state.
type Summary struct {
	Source         string            `json:"source"`
	DemoMode       bool              `json:"demoMode"`
	CachedAccounts []string          `json:"cachedAccounts"`
	Folders        []triage.Folder   `json:"folders"`
	Stats          []triage.StatType `json:"stats"`
}

// RegisterTriageResources registers the triage resources with the MCP server
func RegisterTriageResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	categoriesResource := mcp.NewResource(
		CategoriesURI,
		"Category Rules",
		mcp.WithResourceDescription("Category classifier rules in precedence order; the first rule with a matching keyword wins"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(categoriesResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleCategories(ctx, request, sc)
	})

	summaryResource := mcp.NewResource(
		SummaryURI,
		"Triage Server Summary",
		mcp.WithResourceDescription("Mailbox source, demo mode, cached accounts and the supported folders and stats"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(summaryResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleSummary(ctx, request, sc)
	})

	return nil
}

func handleCategories(_ context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	rules := lo.Map(sc.Classifier().Rules(), func(r triage.CategoryRule, _ int) CategoryRule {
		return CategoryRule{Category: r.Category, Keywords: r.Keywords}
	})
	return jsonContents(request.Params.URI, rules)
}

func handleSummary(_ context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	summary := Summary{
		Source:         sc.SourceName(),
		DemoMode:       sc.DemoMode(),
		CachedAccounts: sc.CachedAccounts(),
		Folders:        triage.AllFolders,
		Stats:          triage.AllStatTypes,
	}
	return jsonContents(request.Params.URI, summary)
}

func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", uri, err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
