package accounts

import (
	"context"

	"github.com/dmitrijs2005/photoshare/internal/common"
	"github.com/dmitrijs2005/photoshare/internal/dbx"
	"github.com/dmitrijs2005/photoshare/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Upsert relies on the unique index on name, so concurrent logins for the
// same name end with one insert and the rest taking the conflict branch.
func (r *PostgresRepository) Upsert(ctx context.Context, name, avatar string) (string, error) {
	query := `
		INSERT INTO account (name, avatar)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET avatar = EXCLUDED.avatar
		RETURNING id
	`
	var id string
	if err := r.db.QueryRowContext(ctx, query, name, avatar).Scan(&id); err != nil {
		return "", dbx.Wrap("db error", err)
	}
	return id, nil
}

func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*models.Account, error) {
	query := `
		SELECT id, name, avatar
		FROM account
		WHERE name = $1
	`
	return r.scanOne(ctx, query, name)
}

func (r *PostgresRepository) GetBySessionID(ctx context.Context, sessionID string) (*models.Account, error) {
	query := `
		SELECT account.id, account.name, account.avatar
		FROM account
		INNER JOIN session ON session.account_id = account.id
		WHERE session.id = $1
	`
	return r.scanOne(ctx, query, sessionID)
}

func (r *PostgresRepository) scanOne(ctx context.Context, query string, arg any) (*models.Account, error) {
	a := &models.Account{}
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(&a.ID, &a.Name, &a.Avatar); err != nil {
		if dbx.IsNoRows(err) {
			return nil, common.ErrorNotFound
		}
		return nil, dbx.Wrap("db error", err)
	}
	return a, nil
}
