// Package accounts declares the server-side repository contract for
// account identities and provides its PostgreSQL implementation.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/photoshare/internal/server/models"
)

// Repository defines operations on the account table.
type Repository interface {
	// Upsert inserts an account with the given name or, if the name is taken,
	// replaces its avatar. It returns the account id in both cases.
	Upsert(ctx context.Context, name, avatar string) (string, error)

	// GetByName returns the account with exactly this name or common.ErrorNotFound.
	GetByName(ctx context.Context, name string) (*models.Account, error)

	// GetBySessionID returns the account owning the session or common.ErrorNotFound.
	GetBySessionID(ctx context.Context, sessionID string) (*models.Account, error)
}
