package google

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// callbackResult carries the outcome of the loopback redirect.
type callbackResult struct {
	code string
	err  error
}

// authorize runs the interactive authorization grant: it starts a loopback
// HTTP listener on an ephemeral port, directs the user to the provider's
// consent page, and waits (bounded by grantTimeout) for the redirect carrying
// the authorization code, which it then exchanges for a token.
func (s *Store) authorize(ctx context.Context) (*oauth2.Token, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("failed to start loopback listener: %w", err)
	}
	defer listener.Close()

	state := uuid.NewString()

	// Bind the redirect to this grant's ephemeral port.
	conf := *s.conf
	conf.RedirectURL = fmt.Sprintf("http://%s/oauth2/callback", listener.Addr().String())

	results := make(chan callbackResult, 1)
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/callback", func(w http.ResponseWriter, r *http.Request) {
		code, err := extractAuthCode(r, state)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
		} else {
			fmt.Fprintln(w, "Authorization complete. You can close this window.")
		}
		select {
		case results <- callbackResult{code: code, err: err}:
		default:
		}
	})

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		_ = srv.Serve(listener)
	}()
	defer srv.Close()

	authURL := conf.AuthCodeURL(state, oauth2.AccessTypeOffline)
	s.authPrompt(authURL)

	timer := time.NewTimer(s.grantTimeout)
	defer timer.Stop()

	select {
	case result := <-results:
		if result.err != nil {
			return nil, result.err
		}
		token, err := conf.Exchange(ctx, result.code)
		if err != nil {
			return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
		}
		return token, nil
	case <-timer.C:
		return nil, fmt.Errorf("authorization grant timed out after %s", s.grantTimeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// extractAuthCode validates the loopback redirect and pulls out the
// authorization code.
func extractAuthCode(r *http.Request, wantState string) (string, error) {
	query := r.URL.Query()
	if errMsg := query.Get("error"); errMsg != "" {
		return "", fmt.Errorf("authorization denied: %s", errMsg)
	}
	if got := query.Get("state"); got != wantState {
		return "", fmt.Errorf("state mismatch in authorization redirect")
	}
	code := query.Get("code")
	if code == "" {
		return "", fmt.Errorf("authorization redirect missing code")
	}
	return code, nil
}
