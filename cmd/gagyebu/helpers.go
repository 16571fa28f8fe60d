package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/sohakim/gagyebu/internal/api"
	"github.com/sohakim/gagyebu/internal/common"
	"github.com/sohakim/gagyebu/internal/ledger"
	"github.com/sohakim/gagyebu/internal/session"
)

// tokenFilePath returns where the bearer token is persisted between runs.
func tokenFilePath() (string, error) {
	if path := viper.GetString("auth.token_file"); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "gagyebu", "token.json"), nil
}

// newSession builds the credential source: an explicit token from config
// or environment wins, otherwise the saved token file is used.
func newSession() (session.Session, error) {
	if token := viper.GetString("auth.token"); token != "" {
		return session.Static(token), nil
	}

	path, err := tokenFilePath()
	if err != nil {
		return nil, err
	}
	tok, err := session.LoadToken(path)
	if err != nil {
		return nil, common.NewUserError("not logged in (run 'gagyebu login')", err)
	}
	return session.FromToken(tok), nil
}

// newAPIClient creates an authenticated API client from configuration.
func newAPIClient() (*api.Client, error) {
	baseURL := viper.GetString("api.base_url")
	if baseURL == "" {
		return nil, fmt.Errorf("%w: api.base_url", common.ErrMissingConfig)
	}
	sess, err := newSession()
	if err != nil {
		return nil, err
	}
	return api.NewClient(baseURL, sess), nil
}

// newAnonClient creates an API client for the unauthenticated endpoints.
func newAnonClient() *api.Client {
	return api.NewClient(viper.GetString("api.base_url"), session.Static(""))
}

// newRepository creates the ledger repository used by most commands.
func newRepository() (*ledger.Repository, error) {
	client, err := newAPIClient()
	if err != nil {
		return nil, err
	}
	return ledger.NewRepository(client), nil
}
