package google

import (
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"
)

// Scopes granted to every account. These are the only scopes the agent ever
// requests: full calendar access plus event read/write.
var Scopes = []string{
	calendar.CalendarScope,
	calendar.CalendarEventsScope,
}

// clientSecrets mirrors the OAuth client JSON downloaded from the Google
// Cloud console, which nests the configuration under "installed" for desktop
// apps or "web" for web apps.
type clientSecrets struct {
	Installed clientSecretsEntry `json:"installed"`
	Web       clientSecretsEntry `json:"web"`
}

type clientSecretsEntry struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// OAuthConfigFromEnv builds the OAuth2 configuration for the calendar scopes.
// It prefers the GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET environment
// variables and falls back to reading the client secrets file.
func OAuthConfigFromEnv(credentialsFile string) (*oauth2.Config, error) {
	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	clientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	if clientID != "" && clientSecret != "" {
		return &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       Scopes,
		}, nil
	}
	return OAuthConfigFromFile(credentialsFile)
}

// OAuthConfigFromFile builds the OAuth2 configuration from a client secrets
// JSON file.
func OAuthConfigFromFile(credentialsFile string) (*oauth2.Config, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read client secrets file %s: %w", credentialsFile, err)
	}

	var secrets clientSecrets
	if err := json.Unmarshal(data, &secrets); err != nil {
		return nil, fmt.Errorf("unable to parse client secrets file %s: %w", credentialsFile, err)
	}

	entry := secrets.Installed
	if entry.ClientID == "" {
		entry = secrets.Web
	}
	if entry.ClientID == "" || entry.ClientSecret == "" {
		return nil, fmt.Errorf("no OAuth client configuration found in %s", credentialsFile)
	}

	return &oauth2.Config{
		ClientID:     entry.ClientID,
		ClientSecret: entry.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       Scopes,
	}, nil
}
