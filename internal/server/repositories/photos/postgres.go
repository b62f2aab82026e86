package photos

import (
	"context"

	"github.com/dmitrijs2005/photoshare/internal/common"
	"github.com/dmitrijs2005/photoshare/internal/dbx"
	"github.com/dmitrijs2005/photoshare/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create returns the inserted row with zero counts; a new photo has no likes
// or comments yet, so they are not queried.
func (r *PostgresRepository) Create(ctx context.Context, accountID, url, description string) (*models.Photo, error) {
	query := `
		INSERT INTO photo (account_id, url, description)
		VALUES ($1, $2, $3)
		RETURNING id, account_id, url, description, created_at
	`
	p := &models.Photo{}
	err := r.db.QueryRowContext(ctx, query, accountID, url, description).
		Scan(&p.ID, &p.AccountID, &p.URL, &p.Description, &p.CreatedAt)
	if err != nil {
		return nil, dbx.Wrap("db error", err)
	}
	return p, nil
}

// ListByAccount counts distinct likers and distinct comment ids: the two
// LEFT JOINs multiply rows, so plain COUNT would overstate both numbers.
func (r *PostgresRepository) ListByAccount(ctx context.Context, accountID string, limit int) ([]*models.Photo, error) {
	query := `
		SELECT p.id, p.account_id, p.url, p.description, p.created_at,
			COUNT(DISTINCT l.account_id) AS num_likes,
			COUNT(DISTINCT c.id) AS num_comments
		FROM photo p
		LEFT JOIN likes l ON p.id = l.photo_id
		LEFT JOIN comment c ON p.id = c.photo_id
		WHERE p.account_id = $1
		GROUP BY p.id
		ORDER BY p.created_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, accountID, limit)
	if err != nil {
		return nil, dbx.Wrap("db error", err)
	}
	defer rows.Close()

	result := []*models.Photo{}
	for rows.Next() {
		p := &models.Photo{}
		if err := rows.Scan(&p.ID, &p.AccountID, &p.URL, &p.Description, &p.CreatedAt, &p.NumLikes, &p.NumComments); err != nil {
			return nil, dbx.Wrap("db error", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.Wrap("db error", err)
	}

	return result, nil
}

func (r *PostgresRepository) GetForOwner(ctx context.Context, accountName, photoID string) (*models.PhotoDetail, error) {
	query := `
		SELECT p.id, p.account_id, p.url, p.description, p.created_at, a.name, a.avatar
		FROM photo p
		INNER JOIN account a ON p.account_id = a.id
		WHERE p.id = $1
		AND a.name = $2
	`
	d := &models.PhotoDetail{}
	err := r.db.QueryRowContext(ctx, query, photoID, accountName).
		Scan(&d.Photo.ID, &d.Photo.AccountID, &d.Photo.URL, &d.Photo.Description, &d.Photo.CreatedAt, &d.OwnerName, &d.OwnerAvatar)
	if err != nil {
		if dbx.IsNoRows(err) {
			return nil, common.ErrorNotFound
		}
		return nil, dbx.Wrap("db error", err)
	}
	return d, nil
}

func (r *PostgresRepository) ListComments(ctx context.Context, photoID string) ([]models.Comment, error) {
	query := `
		SELECT c.id, c.photo_id, c.account_id, c.text, c.created_at, a.name, a.avatar
		FROM comment c
		INNER JOIN account a ON c.account_id = a.id
		WHERE c.photo_id = $1
		ORDER BY c.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, photoID)
	if err != nil {
		return nil, dbx.Wrap("db error", err)
	}
	defer rows.Close()

	result := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PhotoID, &c.AccountID, &c.Text, &c.CreatedAt, &c.AuthorName, &c.Avatar); err != nil {
			return nil, dbx.Wrap("db error", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.Wrap("db error", err)
	}

	return result, nil
}

func (r *PostgresRepository) ListLikers(ctx context.Context, photoID string) ([]models.Liker, error) {
	query := `
		SELECT a.name, a.avatar
		FROM likes l
		INNER JOIN account a ON l.account_id = a.id
		WHERE l.photo_id = $1
		GROUP BY a.id, a.name, a.avatar
		ORDER BY MAX(l.created_at) DESC
	`
	rows, err := r.db.QueryContext(ctx, query, photoID)
	if err != nil {
		return nil, dbx.Wrap("db error", err)
	}
	defer rows.Close()

	result := []models.Liker{}
	for rows.Next() {
		var l models.Liker
		if err := rows.Scan(&l.Name, &l.Avatar); err != nil {
			return nil, dbx.Wrap("db error", err)
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.Wrap("db error", err)
	}

	return result, nil
}
