package google_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/inboxtriage/internal/google"
	"github.com/teemow/inboxtriage/internal/server"
	"github.com/teemow/inboxtriage/internal/tools/common"
)

// RegisterGoogleTools registers the Gmail authorization tools with the MCP server
func RegisterGoogleTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	getAuthURLTool := mcp.NewTool("google_get_auth_url",
		mcp.WithDescription("Get the OAuth URL to authorize read-only Gmail access for an account, and report whether the account is already authorized"),
		mcp.WithString("account",
			mcp.Description("Account name (default: the server's configured account). Used to manage multiple mailboxes."),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	)

	s.AddTool(getAuthURLTool, common.InstrumentedToolHandler("google_get_auth_url", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleGetAuthURL(ctx, request, sc)
	}))

	saveAuthCodeTool := mcp.NewTool("google_save_auth_code",
		mcp.WithDescription("Save the OAuth authorization code to complete Gmail authorization for an account. The account's cached mailbox is dropped so the next triage call fetches with the new token."),
		mcp.WithString("account",
			mcp.Description("Account name (default: the server's configured account). Used to manage multiple mailboxes."),
		),
		mcp.WithString("authCode",
			mcp.Required(),
			mcp.Description("The authorization code from Google OAuth"),
		),
	)

	s.AddTool(saveAuthCodeTool, common.InstrumentedToolHandler("google_save_auth_code", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleSaveAuthCode(ctx, request, sc)
	}))

	return nil
}

func handleGetAuthURL(_ context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	account := sc.Account(common.GetAccountFromArgs(request.GetArguments()))

	if google.HasTokenForAccount(account) {
		return mcp.NewToolResultText(fmt.Sprintf("Account %q is already authorized. Call google_save_auth_code with a new code to replace its token.", account)), nil
	}

	result := fmt.Sprintf(`To authorize read-only Gmail access for account "%s":

1. Visit this URL in your browser:
   %s

2. Sign in with your Google account
3. Grant read-only access to Gmail
4. Copy the authorization code

5. Call the google_save_auth_code tool with the code and account name to complete authentication`, account, google.GetAuthURL(account))

	return mcp.NewToolResultText(result), nil
}

func handleSaveAuthCode(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := sc.Account(common.GetAccountFromArgs(args))

	authCode := common.StringArg(args, "authCode")
	if authCode == "" {
		return mcp.NewToolResultError("authCode is required"), nil
	}

	if err := google.SaveTokenForAccount(ctx, account, authCode); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to save authorization code for account %s: %v", account, err)), nil
	}
	sc.Invalidate(account)

	return mcp.NewToolResultText(fmt.Sprintf("Authorization successful for account %q. Triage tools can now read this mailbox.", account)), nil
}
