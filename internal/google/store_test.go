package google

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func newTestStore(t *testing.T, tokenURL string) *Store {
	t.Helper()
	conf := &oauth2.Config{
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		Scopes:       Scopes,
		Endpoint:     oauth2.Endpoint{AuthURL: tokenURL + "/auth", TokenURL: tokenURL + "/token"},
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewStore(conf, filepath.Join(t.TempDir(), "token_files"), logger)
}

func TestSaveRoundTrip(t *testing.T) {
	store := newTestStore(t, "http://127.0.0.1:0")
	token := &oauth2.Token{
		AccessToken:  "access-1",
		TokenType:    "Bearer",
		RefreshToken: "refresh-1",
		Expiry:       time.Now().Add(time.Hour).Truncate(time.Second),
	}

	// Persisting the same credential twice must yield an equivalent
	// credential on reload.
	require.NoError(t, store.save("work", token))
	require.NoError(t, store.save("work", token))

	loaded, err := store.load("work")
	require.NoError(t, err)
	assert.Equal(t, token.AccessToken, loaded.AccessToken)
	assert.Equal(t, token.TokenType, loaded.TokenType)
	assert.Equal(t, token.RefreshToken, loaded.RefreshToken)
	assert.True(t, token.Expiry.Equal(loaded.Expiry))
}

func TestLookupNotConfigured(t *testing.T) {
	store := newTestStore(t, "http://127.0.0.1:0")

	_, err := store.Lookup(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Nil(t, store.GetAccount(context.Background(), "nonexistent"))
}

func TestLookupCorruptFile(t *testing.T) {
	store := newTestStore(t, "http://127.0.0.1:0")
	require.NoError(t, os.MkdirAll(store.TokenDir(), 0o700))
	require.NoError(t, os.WriteFile(store.tokenFile("work"), []byte("{not json"), 0o600))

	_, err := store.Lookup(context.Background(), "work")
	var corrupt *CorruptCredentialError
	require.True(t, errors.As(err, &corrupt))
	assert.Equal(t, "work", corrupt.Account)

	// GetAccount collapses corruption to "not configured".
	assert.Nil(t, store.GetAccount(context.Background(), "work"))
}

func TestLookupEmptyCredentialIsCorrupt(t *testing.T) {
	store := newTestStore(t, "http://127.0.0.1:0")
	require.NoError(t, os.MkdirAll(store.TokenDir(), 0o700))
	require.NoError(t, os.WriteFile(store.tokenFile("work"), []byte(`{"scopes":[]}`), 0o600))

	_, err := store.Lookup(context.Background(), "work")
	var corrupt *CorruptCredentialError
	assert.True(t, errors.As(err, &corrupt))
}

func TestRefreshOnRead(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"access-fresh","token_type":"Bearer","refresh_token":"refresh-2","expires_in":3600}`))
	}))
	defer tokenSrv.Close()

	store := newTestStore(t, tokenSrv.URL)
	expired := &oauth2.Token{
		AccessToken:  "access-stale",
		TokenType:    "Bearer",
		RefreshToken: "refresh-1",
		Expiry:       time.Now().Add(-time.Hour),
	}
	require.NoError(t, store.save("work", expired))

	got, err := store.Lookup(context.Background(), "work")
	require.NoError(t, err)
	assert.Equal(t, "access-fresh", got.AccessToken)
	assert.True(t, got.Expiry.After(time.Now()), "refreshed token must not be expired")

	// Durable storage must reflect the refreshed token.
	onDisk, err := store.load("work")
	require.NoError(t, err)
	assert.Equal(t, "access-fresh", onDisk.AccessToken)
	assert.Equal(t, "refresh-2", onDisk.RefreshToken)
}

func TestRefreshKeepsOldRefreshToken(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"access-fresh","token_type":"Bearer","expires_in":3600}`))
	}))
	defer tokenSrv.Close()

	store := newTestStore(t, tokenSrv.URL)
	expired := &oauth2.Token{
		AccessToken:  "access-stale",
		RefreshToken: "refresh-keep",
		Expiry:       time.Now().Add(-time.Minute),
	}
	require.NoError(t, store.save("work", expired))

	got, err := store.Lookup(context.Background(), "work")
	require.NoError(t, err)
	assert.Equal(t, "refresh-keep", got.RefreshToken)
}

func TestLookupCachesInMemory(t *testing.T) {
	store := newTestStore(t, "http://127.0.0.1:0")
	token := &oauth2.Token{
		AccessToken: "access-1",
		Expiry:      time.Now().Add(time.Hour),
	}
	require.NoError(t, store.save("work", token))

	first, err := store.Lookup(context.Background(), "work")
	require.NoError(t, err)

	// Once cached, the file is no longer consulted.
	require.NoError(t, os.Remove(store.tokenFile("work")))
	second, err := store.Lookup(context.Background(), "work")
	require.NoError(t, err)
	assert.Equal(t, first.AccessToken, second.AccessToken)
}

func TestListAccountsScansDisk(t *testing.T) {
	store := newTestStore(t, "http://127.0.0.1:0")
	token := &oauth2.Token{AccessToken: "a", Expiry: time.Now().Add(time.Hour)}
	require.NoError(t, store.save("work", token))
	require.NoError(t, store.save("personal", token))

	// A fresh store over the same directory sees accounts it never loaded.
	fresh := NewStore(store.OAuthConfig(), store.TokenDir(), slog.Default())
	assert.Equal(t, []string{"personal", "work"}, fresh.ListAccounts())
}

func TestListAccountsEmptyDir(t *testing.T) {
	store := newTestStore(t, "http://127.0.0.1:0")
	assert.Empty(t, store.ListAccounts())
}
