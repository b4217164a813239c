package google

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

// TokenProvider provides authenticated HTTP clients for Google APIs.
type TokenProvider interface {
	// HTTPClient returns a client authenticated for the account.
	HTTPClient(ctx context.Context, account string) (*http.Client, error)

	// HasTokenForAccount checks if a token exists for the account.
	HasTokenForAccount(account string) bool
}

// FileTokenProvider provides tokens from the token files in CacheDir.
type FileTokenProvider struct{}

// NewFileTokenProvider creates a new file-based token provider
func NewFileTokenProvider() *FileTokenProvider {
	return &FileTokenProvider{}
}

// HTTPClient returns a client using the stored token of account.
func (p *FileTokenProvider) HTTPClient(ctx context.Context, account string) (*http.Client, error) {
	return GetHTTPClientForAccount(ctx, account)
}

// HasTokenForAccount checks if a token file exists for the account
func (p *FileTokenProvider) HasTokenForAccount(account string) bool {
	return HasTokenForAccount(account)
}

// StaticTokenProvider serves a fixed token for every account. It is used
// when an access token is handed in from the environment.
type StaticTokenProvider struct {
	Token *oauth2.Token
}

// HTTPClient returns a client using the static token.
func (p StaticTokenProvider) HTTPClient(ctx context.Context, account string) (*http.Client, error) {
	if p.Token == nil || p.Token.AccessToken == "" {
		return nil, fmt.Errorf("%w for account %s", ErrNoToken, account)
	}
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(p.Token)), nil
}

// HasTokenForAccount reports whether a static token is configured.
func (p StaticTokenProvider) HasTokenForAccount(string) bool {
	return p.Token != nil && p.Token.AccessToken != ""
}
