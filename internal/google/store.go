package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/preciouskayili/calendar-agent/internal/logging"
)

const (
	tokenFilePrefix = "token_"
	tokenFileSuffix = ".json"

	// DefaultGrantTimeout bounds how long AddAccount waits for the user to
	// complete the browser authorization before giving up.
	DefaultGrantTimeout = 30 * time.Second
)

// AuthRecorder records authorization outcomes for observability. It is
// satisfied by instrumentation.Metrics; a nil recorder disables recording.
type AuthRecorder interface {
	RecordOAuthAuth(ctx context.Context, result string)
	RecordOAuthTokenRefresh(ctx context.Context, result string)
}

// Store is the single source of truth for per-account authorization.
// It holds an in-memory token map populated lazily from one JSON file per
// account under tokenDir. The persisted file is authoritative across process
// restarts; writes are whole-file overwrites.
type Store struct {
	conf     *oauth2.Config
	tokenDir string
	logger   *slog.Logger
	recorder AuthRecorder

	grantTimeout time.Duration
	// authPrompt tells the user where to complete the grant. Overridable so
	// tests can drive the loopback flow without a browser.
	authPrompt func(authURL string)

	mu       sync.Mutex
	accounts map[string]*oauth2.Token
}

// NewStore creates a credential store rooted at tokenDir. The directory is
// created on first save, not here.
func NewStore(conf *oauth2.Config, tokenDir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		conf:         conf,
		tokenDir:     tokenDir,
		logger:       logger,
		grantTimeout: DefaultGrantTimeout,
		authPrompt:   printAuthPrompt,
		accounts:     make(map[string]*oauth2.Token),
	}
}

// SetRecorder attaches a metrics recorder for authorization outcomes.
func (s *Store) SetRecorder(r AuthRecorder) {
	s.recorder = r
}

// AddAccount performs the interactive authorization grant for the account and
// persists the resulting token. It never returns an error: any failure (user
// cancelled, timeout, exchange error, write error) is logged and reduced to
// false so callers can report it without unwinding.
func (s *Store) AddAccount(ctx context.Context, account string) bool {
	logger := logging.WithAccount(s.logger, account)

	token, err := s.authorize(ctx)
	if err != nil {
		logger.Error("authorization grant failed", logging.Err(err))
		s.recordAuth(ctx, logging.StatusError)
		return false
	}

	if err := s.save(account, token); err != nil {
		logger.Error("failed to persist credential", logging.Err(err))
		s.recordAuth(ctx, logging.StatusError)
		return false
	}

	s.mu.Lock()
	s.accounts[account] = token
	s.mu.Unlock()

	logger.Info("account authorized",
		logging.Operation("add_account"),
		slog.String("access_token", logging.SanitizeToken(token.AccessToken)))
	s.recordAuth(ctx, logging.StatusSuccess)
	return true
}

// GetAccount returns the credential for the account, or nil when the account
// is not configured or its token file is unreadable. Use Lookup to tell those
// cases apart.
func (s *Store) GetAccount(ctx context.Context, account string) *oauth2.Token {
	token, err := s.Lookup(ctx, account)
	if err != nil {
		if !errors.Is(err, ErrNotConfigured) {
			s.logger.Warn("failed to load credential",
				logging.Account(account), logging.Err(err))
		}
		return nil
	}
	return token
}

// Lookup returns the credential for the account, distinguishing a missing
// account (ErrNotConfigured) from a corrupt token file
// (*CorruptCredentialError). A stored token that has expired is refreshed
// synchronously and re-persisted before being returned, provided a refresh
// token is present.
func (s *Store) Lookup(ctx context.Context, account string) (*oauth2.Token, error) {
	s.mu.Lock()
	token, ok := s.accounts[account]
	s.mu.Unlock()
	if ok {
		return token, nil
	}

	token, err := s.load(account)
	if err != nil {
		return nil, err
	}

	if !token.Valid() && token.RefreshToken != "" {
		refreshed, err := s.refresh(ctx, account, token)
		if err != nil {
			return nil, err
		}
		token = refreshed
	}

	s.mu.Lock()
	s.accounts[account] = token
	s.mu.Unlock()
	return token, nil
}

// ListAccounts returns the identifiers of all configured accounts: the union
// of accounts resident in memory and token files found on disk.
func (s *Store) ListAccounts() []string {
	seen := make(map[string]bool)

	s.mu.Lock()
	for account := range s.accounts {
		seen[account] = true
	}
	s.mu.Unlock()

	entries, err := os.ReadDir(s.tokenDir)
	if err != nil && !os.IsNotExist(err) {
		s.logger.Warn("failed to scan token directory", logging.Err(err))
	}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, tokenFilePrefix) || !strings.HasSuffix(name, tokenFileSuffix) {
			continue
		}
		account := strings.TrimSuffix(strings.TrimPrefix(name, tokenFilePrefix), tokenFileSuffix)
		if account != "" {
			seen[account] = true
		}
	}

	accounts := make([]string, 0, len(seen))
	for account := range seen {
		accounts = append(accounts, account)
	}
	sort.Strings(accounts)
	return accounts
}

// OAuthConfig returns the OAuth2 configuration backing this store.
func (s *Store) OAuthConfig() *oauth2.Config {
	return s.conf
}

// TokenDir returns the durable storage directory.
func (s *Store) TokenDir() string {
	return s.tokenDir
}

// credentialFile is the serialized form of a credential: tokens, expiry and
// the scope set granted at authorization time.
type credentialFile struct {
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type,omitempty"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	Expiry       time.Time `json:"expiry,omitempty"`
	Scopes       []string  `json:"scopes,omitempty"`
}

func (s *Store) tokenFile(account string) string {
	return filepath.Join(s.tokenDir, tokenFilePrefix+account+tokenFileSuffix)
}

// save persists the token for the account as a whole-file overwrite, creating
// the token directory on first use.
func (s *Store) save(account string, token *oauth2.Token) error {
	if err := os.MkdirAll(s.tokenDir, 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	doc := credentialFile{
		AccessToken:  token.AccessToken,
		TokenType:    token.TokenType,
		RefreshToken: token.RefreshToken,
		Expiry:       token.Expiry,
		Scopes:       s.conf.Scopes,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode credential: %w", err)
	}

	if err := os.WriteFile(s.tokenFile(account), data, 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

func (s *Store) load(account string) (*oauth2.Token, error) {
	data, err := os.ReadFile(s.tokenFile(account))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("account %q: %w", account, ErrNotConfigured)
		}
		return nil, &CorruptCredentialError{Account: account, Err: err}
	}

	var doc credentialFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &CorruptCredentialError{Account: account, Err: err}
	}
	if doc.AccessToken == "" && doc.RefreshToken == "" {
		return nil, &CorruptCredentialError{Account: account, Err: errors.New("no tokens present")}
	}

	return &oauth2.Token{
		AccessToken:  doc.AccessToken,
		TokenType:    doc.TokenType,
		RefreshToken: doc.RefreshToken,
		Expiry:       doc.Expiry,
	}, nil
}

// refresh exchanges the refresh token for a fresh access token and persists
// the result before returning it.
func (s *Store) refresh(ctx context.Context, account string, token *oauth2.Token) (*oauth2.Token, error) {
	refreshed, err := s.conf.TokenSource(ctx, token).Token()
	if err != nil {
		s.recordRefresh(ctx, logging.StatusError)
		return nil, fmt.Errorf("failed to refresh token for account %q: %w", account, err)
	}

	// The refresh response may omit the refresh token; keep the old one.
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = token.RefreshToken
	}

	if err := s.save(account, refreshed); err != nil {
		s.recordRefresh(ctx, logging.StatusError)
		return nil, fmt.Errorf("failed to persist refreshed token for account %q: %w", account, err)
	}

	s.logger.Info("token refreshed",
		logging.Account(account), logging.Operation("refresh"))
	s.recordRefresh(ctx, logging.StatusSuccess)
	return refreshed, nil
}

func (s *Store) recordAuth(ctx context.Context, result string) {
	if s.recorder != nil {
		s.recorder.RecordOAuthAuth(ctx, result)
	}
}

func (s *Store) recordRefresh(ctx context.Context, result string) {
	if s.recorder != nil {
		s.recorder.RecordOAuthTokenRefresh(ctx, result)
	}
}

func printAuthPrompt(authURL string) {
	fmt.Fprintf(os.Stderr, "Visit the following URL in your browser to authorize the account:\n\n%s\n\n", authURL)
}
