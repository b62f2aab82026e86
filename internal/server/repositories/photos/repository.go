// Package photos provides the repository for photos and the read-only
// comment and like relations hanging off them.
package photos

import (
	"context"

	"github.com/dmitrijs2005/photoshare/internal/server/models"
)

// Repository performs no authorization; callers gate access.
type Repository interface {
	// Create inserts a photo owned by accountID. A missing account surfaces as
	// a constraint violation (see dbx.IsConstraintViolation).
	Create(ctx context.Context, accountID, url, description string) (*models.Photo, error)

	// ListByAccount returns up to limit photos, newest first, with distinct
	// like and comment counts.
	ListByAccount(ctx context.Context, accountID string, limit int) ([]*models.Photo, error)

	// GetForOwner returns the photo only when it belongs to the account named
	// accountName, otherwise common.ErrorNotFound. Comments and Likers are left empty.
	GetForOwner(ctx context.Context, accountName, photoID string) (*models.PhotoDetail, error)

	// ListComments returns the photo's comments, newest first.
	ListComments(ctx context.Context, photoID string) ([]models.Comment, error)

	// ListLikers returns one entry per liking account, most recent like first.
	ListLikers(ctx context.Context, photoID string) ([]models.Liker, error)
}
