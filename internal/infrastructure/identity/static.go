// Package identity provides the built-in credential source.
package identity

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/nolivos/client-registry/internal/core/domain"
)

// DefaultCredentials are the firm accounts used when no AUTH_USERS list is configured.
var DefaultCredentials = []domain.Credential{
	{Username: "hjnolivos", Password: "6173", DisplayName: "H. J. Nolivos"},
	{Username: "gnolivos", Password: "5481", DisplayName: "G. Nolivos"},
	{Username: "hnolivos", Password: "3974", DisplayName: "H. Nolivos"},
}

type account struct {
	hash        []byte
	displayName string
}

// StaticVerifier matches against a fixed credential list. Passwords are
// hashed with bcrypt at construction; plaintext is not retained.
type StaticVerifier struct {
	accounts map[string]account
}

// NewStaticVerifier hashes every credential with the given bcrypt cost
// (bcrypt.DefaultCost when out of range). Duplicate usernames are rejected.
func NewStaticVerifier(creds []domain.Credential, cost int) (*StaticVerifier, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	accounts := make(map[string]account, len(creds))
	for _, c := range creds {
		if c.Username == "" || c.Password == "" {
			return nil, fmt.Errorf("identity: empty username or password")
		}
		if _, dup := accounts[c.Username]; dup {
			return nil, fmt.Errorf("identity: duplicate username %q", c.Username)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("identity: hash %s: %w", c.Username, err)
		}
		accounts[c.Username] = account{hash: hash, displayName: c.Name()}
	}
	return &StaticVerifier{accounts: accounts}, nil
}

// Verify requires an exact username match and a matching password.
func (v *StaticVerifier) Verify(_ context.Context, username, password string) (*domain.Identity, error) {
	acc, ok := v.accounts[username]
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword(acc.hash, []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return &domain.Identity{Username: username, DisplayName: acc.displayName}, nil
}
