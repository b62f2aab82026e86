// Package auth decides whether a caller is logged in. The Gate turns a
// session id into an account; the JWT helpers sign and verify the token
// envelope that carries the session id over the wire.
package auth

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/photoshare/internal/common"
	"github.com/dmitrijs2005/photoshare/internal/server/models"
)

type AccountResolver interface {
	ResolveAccount(ctx context.Context, sessionID string) (*models.Account, error)
}

type Gate struct {
	accounts AccountResolver
}

func NewGate(accounts AccountResolver) *Gate {
	return &Gate{accounts: accounts}
}

// RequireAccount returns the logged-in account or common.ErrorUnauthenticated.
// Store failures are returned as they are.
func (g *Gate) RequireAccount(ctx context.Context, sessionID string) (*models.Account, error) {
	if sessionID == "" {
		return nil, common.ErrorUnauthenticated
	}

	account, err := g.accounts.ResolveAccount(ctx, sessionID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthenticated
		}
		return nil, err
	}

	return account, nil
}
