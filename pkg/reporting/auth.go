package reporting

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	analytics "google.golang.org/api/analytics/v3"
	"google.golang.org/api/option"
)

// CredentialConfig locates the OAuth client secret and the cached token.
type CredentialConfig struct {
	// ClientSecretPath is the OAuth client secrets JSON file.
	ClientSecretPath string

	// TokenPath is where the authorized token is cached between runs.
	TokenPath string

	// AuthPrompt receives the authorization URL and reads back the code
	// when no cached token exists. Defaults to stdout/stdin.
	AuthPrompt func(authURL string) (string, error)
}

// NewAnalyticsService builds an authorized Core Reporting API handle.
// A cached token is reused when present; otherwise the authorization flow
// runs once and the resulting token is written back to TokenPath.
func NewAnalyticsService(ctx context.Context, cred CredentialConfig) (*analytics.Service, error) {
	secret, err := os.ReadFile(cred.ClientSecretPath)
	if err != nil {
		return nil, fmt.Errorf("read client secret: %w", err)
	}

	oauthCfg, err := google.ConfigFromJSON(secret, analytics.AnalyticsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parse client secret: %w", err)
	}

	token, err := tokenFromFile(cred.TokenPath)
	if err != nil {
		token, err = authorize(ctx, oauthCfg, cred.AuthPrompt)
		if err != nil {
			return nil, err
		}
		if err := saveToken(cred.TokenPath, token); err != nil {
			return nil, err
		}
	}

	httpClient := oauthCfg.Client(ctx, token)
	svc, err := analytics.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("create analytics service: %w", err)
	}
	return svc, nil
}

// authorize runs the interactive consent flow and exchanges the code.
func authorize(ctx context.Context, cfg *oauth2.Config, prompt func(string) (string, error)) (*oauth2.Token, error) {
	if prompt == nil {
		prompt = stdinPrompt
	}

	authURL := cfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	code, err := prompt(authURL)
	if err != nil {
		return nil, fmt.Errorf("read authorization code: %w", err)
	}

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	return token, nil
}

func stdinPrompt(authURL string) (string, error) {
	fmt.Printf("Open the following URL in a browser and paste the authorization code:\n%s\n> ", authURL)
	code, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(code), nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var token oauth2.Token
	if err := json.NewDecoder(f).Decode(&token); err != nil {
		return nil, fmt.Errorf("decode cached token: %w", err)
	}
	return &token, nil
}

func saveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("cache token: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(token); err != nil {
		return fmt.Errorf("encode token: %w", err)
	}
	return nil
}
