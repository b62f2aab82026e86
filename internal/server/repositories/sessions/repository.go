// Package sessions declares the repository contract for login sessions.
package sessions

import "context"

// Repository defines operations for minting and revoking sessions.
type Repository interface {
	// Create stores a new session for accountID and returns its id.
	Create(ctx context.Context, accountID string) (string, error)

	// Delete removes a session by id. Deleting a non-existent session is not an error.
	Delete(ctx context.Context, id string) error
}
