// Package google owns per-account Google OAuth credentials.
//
// The Store maps caller-chosen account identifiers ("work", "personal") to
// OAuth tokens. Tokens are acquired through an interactive loopback grant,
// cached in memory, persisted as one JSON file per account, and refreshed
// eagerly when a stored token has expired and a refresh token is available.
//
// Example usage:
//
//	conf, err := google.OAuthConfigFromEnv("credentials.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	store := google.NewStore(conf, "token_files", slog.Default())
//
//	if store.AddAccount(ctx, "work") {
//	    token := store.GetAccount(ctx, "work")
//	    // token is ready for API use
//	}
package google
