package auth

import (
	"errors"

	"github.com/aiko-cli/aiko/constant"
	"github.com/zalando/go-keyring"
)

const keyringUser = "anilist-token"

// KeyringStore keeps the token in the system keyring.
type KeyringStore struct{}

// Token reads the token from the keyring. A missing entry is not an error.
func (KeyringStore) Token() (string, error) {
	token, err := keyring.Get(constant.Aiko, keyringUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	return token, err
}

// SetToken stores token in the keyring.
func (KeyringStore) SetToken(token string) error {
	return keyring.Set(constant.Aiko, keyringUser, token)
}

// DeleteToken removes the keyring entry.
func (KeyringStore) DeleteToken() error {
	err := keyring.Delete(constant.Aiko, keyringUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
