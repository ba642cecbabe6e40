// Package auth runs the AniList implicit-grant login and stores the resulting token.
package auth

import (
	"github.com/aiko-cli/aiko/config"
)

// TokenStore persists the AniList access token.
// Token returns an empty string when none is stored.
type TokenStore interface {
	Token() (string, error)
	SetToken(token string) error
	DeleteToken() error
}

// ConfigStore keeps the token in the settings file.
type ConfigStore struct {
	Store *config.Store
}

// Token reads anilist.token.
func (s ConfigStore) Token() (string, error) {
	return s.Store.Settings().Token, nil
}

// SetToken writes anilist.token and persists the settings.
func (s ConfigStore) SetToken(token string) error {
	return s.Store.SetToken(token)
}

// DeleteToken resets anilist.token to empty.
func (s ConfigStore) DeleteToken() error {
	return s.Store.SetToken("")
}

// StoreFor picks the keyring when useKeyring is set.
func StoreFor(s *config.Store, useKeyring bool) TokenStore {
	if useKeyring {
		return KeyringStore{}
	}
	return ConfigStore{Store: s}
}

// TokenFunc adapts a store to the anilist client's token source.
// Lookup errors read as no token.
func TokenFunc(store TokenStore) func() string {
	return func() string {
		token, err := store.Token()
		if err != nil {
			logger.Warnf("read token: %v", err)
			return ""
		}
		return token
	}
}
