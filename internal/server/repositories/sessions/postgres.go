package sessions

import (
	"context"

	"github.com/dmitrijs2005/photoshare/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, accountID string) (string, error) {
	query := `
		INSERT INTO session (account_id)
		VALUES ($1)
		RETURNING id
	`
	var id string
	if err := r.db.QueryRowContext(ctx, query, accountID).Scan(&id); err != nil {
		return "", dbx.Wrap("db error", err)
	}
	return id, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `
		DELETE FROM session
		WHERE id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return dbx.Wrap("db error", err)
	}
	return nil
}
