// Package services contains server-side business logic. AccountService
// manages accounts and their login sessions; PhotoService creates and reads
// photos.
package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/photoshare/internal/common"
	"github.com/dmitrijs2005/photoshare/internal/dbx"
	"github.com/dmitrijs2005/photoshare/internal/server/models"
	"github.com/dmitrijs2005/photoshare/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewAccountService(db *sql.DB, m repomanager.RepositoryManager) *AccountService {
	return &AccountService{db: db, repomanager: m}
}

// Login upserts the account by name (refreshing its avatar when it already
// exists) and mints a new session for it. Both writes share one transaction:
// if either fails, neither is committed.
func (s *AccountService) Login(ctx context.Context, name, avatar string) (string, error) {
	var sessionID string

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		accountID, err := s.repomanager.Accounts(tx).Upsert(ctx, name, avatar)
		if err != nil {
			return fmt.Errorf("error upserting account: %w", err)
		}

		sessionID, err = s.repomanager.Sessions(tx).Create(ctx, accountID)
		if err != nil {
			return fmt.Errorf("error creating session: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return sessionID, nil
}

// Logout deletes the session. Unknown or malformed ids are a no-op.
func (s *AccountService) Logout(ctx context.Context, sessionID string) error {
	if !isUUID(sessionID) {
		return nil
	}
	if err := s.repomanager.Sessions(s.db).Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	return nil
}

// ResolveAccount returns the account owning the session, or
// common.ErrorNotFound when the session does not exist.
func (s *AccountService) ResolveAccount(ctx context.Context, sessionID string) (*models.Account, error) {
	if !isUUID(sessionID) {
		return nil, common.ErrorNotFound
	}
	return s.repomanager.Accounts(s.db).GetBySessionID(ctx, sessionID)
}

// ResolveAccountByName looks an account up by its exact name.
func (s *AccountService) ResolveAccountByName(ctx context.Context, name string) (*models.Account, error) {
	return s.repomanager.Accounts(s.db).GetByName(ctx, name)
}

// isUUID guards uuid-typed columns: Postgres rejects malformed input with an
// error, which must read as "absent" here rather than as a store failure.
func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
