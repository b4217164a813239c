package google

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestValidateAccountName(t *testing.T) {
	tests := []struct {
		name    string
		account string
		wantErr bool
	}{
		{"valid default", "default", false},
		{"valid work", "work", false},
		{"valid with hyphen", "work-email", false},
		{"valid with underscore", "personal_email", false},
		{"valid alphanumeric", "account123", false},
		{"empty", "", true},
		{"with spaces", "my account", true},
		{"with special chars", "account@work", true},
		{"with slash", "work/personal", true},
		{"with dot", "work.email", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateAccountName(tt.account)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetTokenFilePath(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/cache")

	assert.Equal(t, filepath.Join("/tmp/cache", "inboxtriage", "google-work.token"), getTokenFilePath("work"))
	assert.Equal(t, "google-default.token", filepath.Base(getTokenFilePath(DefaultAccount)))
}

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	assert.False(t, HasTokenForAccount("work"))

	_, err := readToken("work")
	require.ErrorIs(t, err, ErrNoToken)

	require.NoError(t, writeToken("work", &oauth2.Token{AccessToken: "access", RefreshToken: "refresh"}))
	assert.True(t, HasTokenForAccount("work"))

	info, err := os.Stat(getTokenFilePath("work"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	tok, err := readToken("work")
	require.NoError(t, err)
	assert.Equal(t, "access", tok.AccessToken)
	assert.Equal(t, "refresh", tok.RefreshToken)
	assert.Equal(t, "Bearer", tok.TokenType)
}

func TestReadToken_InvalidFormat(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	require.NoError(t, os.MkdirAll(CacheDir(), 0700))
	require.NoError(t, os.WriteFile(getTokenFilePath("broken"), []byte("only-one-field"), 0600))

	_, err := readToken("broken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoToken)
}

func TestHasTokenForAccount_InvalidNames(t *testing.T) {
	assert.False(t, HasTokenForAccount("invalid account"))
	assert.False(t, HasTokenForAccount(""))
}

func TestGetAuthenticationErrorMessage(t *testing.T) {
	for _, account := range []string{"default", "work", "personal"} {
		msg := GetAuthenticationErrorMessage(account)
		assert.Contains(t, msg, account)
		assert.Contains(t, msg, "OAuth")
	}
}

func TestStaticTokenProvider(t *testing.T) {
	empty := StaticTokenProvider{}
	assert.False(t, empty.HasTokenForAccount("default"))
	_, err := empty.HTTPClient(context.Background(), "default")
	assert.ErrorIs(t, err, ErrNoToken)

	p := StaticTokenProvider{Token: &oauth2.Token{AccessToken: "abc"}}
	assert.True(t, p.HasTokenForAccount("any"))
	client, err := p.HTTPClient(context.Background(), "any")
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestFileTokenProvider(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	p := NewFileTokenProvider()

	assert.False(t, p.HasTokenForAccount(DefaultAccount))
	_, err := p.HTTPClient(context.Background(), DefaultAccount)
	assert.ErrorIs(t, err, ErrNoToken)
}
