package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/aiko-cli/aiko/constant"
	"github.com/aiko-cli/aiko/open"
)

// ErrAlreadyAuthenticated is returned by Login when a token is stored.
var ErrAlreadyAuthenticated = errors.New("already authenticated")

// AuthorizeURL is the implicit-grant authorization page for clientID.
func AuthorizeURL(clientID string) string {
	return constant.AnilistOAuthURL + "?" + url.Values{
		"client_id":     {clientID},
		"response_type": {"token"},
	}.Encode()
}

// LoginOptions tunes Login.
type LoginOptions struct {
	ClientID string
	// Addr overrides the listen address.
	Addr string
	// Browser opens the authorization URL. Defaults to open.Start.
	Browser func(string) error
	// OnURL is told the authorization URL, so it can be shown when no browser opens.
	OnURL func(string)
}

// Login runs the browser flow and stores the token. It does nothing when a
// token is already stored. Without a deadline on ctx it waits DefaultTimeout.
func Login(ctx context.Context, store TokenStore, opts LoginOptions) (string, error) {
	if existing, err := store.Token(); err == nil && existing != "" {
		logger.Info("authentication not needed")
		return existing, ErrAlreadyAuthenticated
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultTimeout)
		defer cancel()
	}

	l, err := Listen(opts.Addr)
	if err != nil {
		return "", err
	}

	authURL := AuthorizeURL(opts.ClientID)
	if opts.OnURL != nil {
		opts.OnURL(authURL)
	}

	browser := opts.Browser
	if browser == nil {
		browser = open.Start
	}
	if err := browser(authURL); err != nil {
		logger.Warnf("open browser: %v", err)
	}

	token, err := l.Wait(ctx)
	if err != nil {
		logger.Error("access token could not be retrieved")
		return "", err
	}

	if err := store.SetToken(token); err != nil {
		return "", fmt.Errorf("save token: %w", err)
	}

	logger.Info("authentication successful")
	return token, nil
}

// Logout removes the stored token.
func Logout(store TokenStore) error {
	return store.DeleteToken()
}
