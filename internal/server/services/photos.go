package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/photoshare/internal/common"
	"github.com/dmitrijs2005/photoshare/internal/dbx"
	"github.com/dmitrijs2005/photoshare/internal/server/models"
	"github.com/dmitrijs2005/photoshare/internal/server/repositories/repomanager"
)

// UploadPresigner hands out upload targets for new photo files.
type UploadPresigner interface {
	PresignUpload(ctx context.Context, accountID, fileName string) (*models.UploadTarget, error)
}

// PhotoService performs no authorization: callers must gate writes first.
type PhotoService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	uploads     UploadPresigner
}

func NewPhotoService(db *sql.DB, m repomanager.RepositoryManager, uploads UploadPresigner) *PhotoService {
	return &PhotoService{db: db, repomanager: m, uploads: uploads}
}

// detailTxOptions gives the three detail reads one consistent snapshot.
var detailTxOptions = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}

// CreatePhoto stores a photo for accountID. An account id that is not a
// UUID fails like a missing account: as a constraint violation.
func (s *PhotoService) CreatePhoto(ctx context.Context, accountID, url, description string) (*models.Photo, error) {
	if !isUUID(accountID) {
		return nil, fmt.Errorf("error creating photo: %w", dbx.ErrInvalidReference)
	}
	photo, err := s.repomanager.Photos(s.db).Create(ctx, accountID, url, description)
	if err != nil {
		return nil, fmt.Errorf("error creating photo: %w", err)
	}
	return photo, nil
}

// ListPhotosForAccount returns the newest photos of the account, at most
// common.PhotoListLimit of them.
func (s *PhotoService) ListPhotosForAccount(ctx context.Context, accountID string) ([]*models.Photo, error) {
	if !isUUID(accountID) {
		return []*models.Photo{}, nil
	}
	photos, err := s.repomanager.Photos(s.db).ListByAccount(ctx, accountID, common.PhotoListLimit)
	if err != nil {
		return nil, fmt.Errorf("error listing photos: %w", err)
	}
	return photos, nil
}

// GetPhotoDetail returns the photo with its comments and likers when it
// belongs to accountName; otherwise common.ErrorNotFound.
func (s *PhotoService) GetPhotoDetail(ctx context.Context, accountName, photoID string) (*models.PhotoDetail, error) {
	if !isUUID(photoID) {
		return nil, common.ErrorNotFound
	}

	var detail *models.PhotoDetail
	err := dbx.WithTx(ctx, s.db, detailTxOptions, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Photos(tx)

		d, err := repo.GetForOwner(ctx, accountName, photoID)
		if err != nil {
			return err
		}

		d.Comments, err = repo.ListComments(ctx, photoID)
		if err != nil {
			return fmt.Errorf("error listing comments: %w", err)
		}

		d.Likers, err = repo.ListLikers(ctx, photoID)
		if err != nil {
			return fmt.Errorf("error listing likers: %w", err)
		}

		d.Photo.NumComments = int64(len(d.Comments))
		d.Photo.NumLikes = int64(len(d.Likers))
		detail = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	return detail, nil
}

// PrepareUpload returns where the account should upload fileName.
func (s *PhotoService) PrepareUpload(ctx context.Context, accountID, fileName string) (*models.UploadTarget, error) {
	target, err := s.uploads.PresignUpload(ctx, accountID, fileName)
	if err != nil {
		return nil, fmt.Errorf("error presigning upload: %w", err)
	}
	return target, nil
}
