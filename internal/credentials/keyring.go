// Package credentials keeps the API bearer token in the OS keychain.
package credentials

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/zalando/go-keyring"
)

// KeyringService groups CraftHub secrets in the OS keychain.
const KeyringService = "crafthub"

// ErrNotFound means no token is stored for the account.
var ErrNotFound = errors.New("no token stored; run `gigctl login` first")

// Account derives the keychain account name for an API base URL.
func Account(baseURL string) string {
	host := baseURL
	if u, err := url.Parse(baseURL); err == nil && u.Host != "" {
		host = u.Host
	}
	return fmt.Sprintf("crafthub:token:%s", strings.ToLower(host))
}

func Get(account string) (string, error) {
	if strings.TrimSpace(account) == "" {
		return "", errors.New("keyring account name is empty")
	}
	tok, err := keyring.Get(KeyringService, account)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read token from keychain: %w", err)
	}
	if strings.TrimSpace(tok) == "" {
		return "", ErrNotFound
	}
	return tok, nil
}

func Set(account, token string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(token) == "" {
		return errors.New("token is empty")
	}
	return keyring.Set(KeyringService, account, token)
}

func Delete(account string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	err := keyring.Delete(KeyringService, account)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
