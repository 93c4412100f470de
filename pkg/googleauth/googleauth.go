// Package googleauth loads Google API credentials shared by the Calendar
// and Gmail clients.
package googleauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// NewHTTPClient builds an authorized HTTP client from a credentials file.
// Service Account JSON is tried first; OAuth Desktop credentials fall back
// to a previously saved token file (see scripts/google-auth).
func NewHTTPClient(ctx context.Context, credentialsPath, tokenPath string, scopes ...string) (*http.Client, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	// Try service account first
	if jwtConfig, jwtErr := google.JWTConfigFromJSON(data, scopes...); jwtErr == nil {
		return oauth2.NewClient(ctx, jwtConfig.TokenSource(ctx)), nil
	}

	// Fallback: OAuth2 installed app credentials + saved token
	oauthConfig, err := google.ConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("unsupported credentials format: %w", err)
	}

	tokenData, err := os.ReadFile(tokenPath)
	if err != nil {
		return nil, fmt.Errorf("credentials are OAuth Desktop type but %q is missing: run scripts/google-auth first", tokenPath)
	}

	var tok oauth2.Token
	if err := json.Unmarshal(tokenData, &tok); err != nil {
		return nil, fmt.Errorf("failed to parse token file %q: %w", tokenPath, err)
	}

	return oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, &tok)), nil
}
