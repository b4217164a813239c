package google_tools

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/inboxtriage/internal/google"
	"github.com/teemow/inboxtriage/internal/mailbox"
	"github.com/teemow/inboxtriage/internal/server"
)

func newServerContext(t *testing.T) *server.ServerContext {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("GOOGLE_CLIENT_ID", "client-id.apps.googleusercontent.com")

	sc, err := server.NewServerContext(context.Background(), server.Config{
		Source:         mailbox.DemoSource{},
		DefaultAccount: "work",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func request(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	tc, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestRegisterGoogleTools(t *testing.T) {
	sc := newServerContext(t)
	s := mcpserver.NewMCPServer("test", "0.0.0", mcpserver.WithToolCapabilities(true))

	require.NoError(t, RegisterGoogleTools(s, sc))

	tools := s.ListTools()
	assert.Contains(t, tools, "google_get_auth_url")
	assert.Contains(t, tools, "google_save_auth_code")
}

func TestHandleGetAuthURL(t *testing.T) {
	sc := newServerContext(t)

	result, err := handleGetAuthURL(context.Background(), request(nil), sc)
	require.NoError(t, err)
	assert.False(t, result.IsError)
	body := text(t, result)
	assert.Contains(t, body, `account "work"`)
	assert.Contains(t, body, "accounts.google.com")
	assert.Contains(t, body, "client-id.apps.googleusercontent.com")
}

func TestHandleGetAuthURL_AlreadyAuthorized(t *testing.T) {
	sc := newServerContext(t)
	require.NoError(t, os.MkdirAll(google.CacheDir(), 0700))
	tokenFile := filepath.Join(google.CacheDir(), "google-personal.token")
	require.NoError(t, os.WriteFile(tokenFile, []byte("access refresh"), 0600))
	require.True(t, google.HasTokenForAccount("personal"), "token file layout changed")

	result, err := handleGetAuthURL(context.Background(), request(map[string]any{"account": "personal"}), sc)
	require.NoError(t, err)
	assert.Contains(t, text(t, result), "already authorized")
}

func TestHandleSaveAuthCode_Validation(t *testing.T) {
	sc := newServerContext(t)

	result, err := handleSaveAuthCode(context.Background(), request(map[string]any{}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, text(t, result), "authCode is required")

	result, err = handleSaveAuthCode(context.Background(), request(map[string]any{
		"account":  "../escape",
		"authCode": "code",
	}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, text(t, result), "account ../escape")
}
