package repository

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// keyringService is the service name under which tokens are stored in
	// the OS keyring.
	keyringService = "adtsetup"
	// keyringUser is the account name for the GitHub token entry.
	keyringUser = "github-token"

	// tokenEnvVar is consulted before the keyring so CI and container
	// environments can inject a token without a keyring daemon.
	tokenEnvVar = "GITHUB_TOKEN"
)

// ResolveToken returns the GitHub personal access token to use for the
// token transport, or an empty string when none is configured.
//
// The environment variable GITHUB_TOKEN takes precedence; the OS keyring is
// consulted as a fallback. A missing token is not an error — the credential
// chain simply omits the token transport.
func ResolveToken() string {
	if token := strings.TrimSpace(os.Getenv(tokenEnvVar)); token != "" {
		return token
	}

	token, err := keyring.Get(keyringService, keyringUser)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(token)
}

// StoreToken saves a GitHub token in the OS keyring for future runs.
func StoreToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("cannot store an empty token")
	}
	if err := keyring.Set(keyringService, keyringUser, token); err != nil {
		return fmt.Errorf("failed to store token in keyring: %w", err)
	}
	return nil
}

// DeleteToken removes the stored GitHub token from the OS keyring. Deleting
// a token that was never stored is a no-op.
func DeleteToken() error {
	err := keyring.Delete(keyringService, keyringUser)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete token from keyring: %w", err)
	}
	return nil
}
