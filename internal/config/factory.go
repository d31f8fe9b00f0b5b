package config

import (
	"fmt"

	"task-manager/internal/api"
	"task-manager/internal/auth"
	"task-manager/internal/client"
	"task-manager/internal/session/sqlite"
)

// CreateSessionStore opens the session store at the configured path
func CreateSessionStore(config *Config) (*sqlite.SQLiteStore, error) {
	store, err := sqlite.New(config.GetSessionPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	return store, nil
}

// CreateIdentity returns the identity collaborator. A configured token
// takes precedence over the stored session. The returned close function
// releases the session store, if one was opened.
func CreateIdentity(config *Config) (auth.Identity, func() error, error) {
	if config.API.Token != "" {
		return auth.NewStaticIdentity(config.API.Token), func() error { return nil }, nil
	}

	store, err := CreateSessionStore(config)
	if err != nil {
		return nil, nil, err
	}
	return auth.NewSessionIdentity(store), store.Close, nil
}

// CreateTaskAPI builds the task API client authenticated by tokens
func CreateTaskAPI(config *Config, tokens client.TokenSource) (api.API, error) {
	if err := config.RequireAPI(); err != nil {
		return nil, err
	}

	c, err := client.New(config.API.BaseURL, tokens, client.WithTimeout(config.API.Timeout))
	if err != nil {
		return nil, err
	}
	return api.New(c), nil
}
