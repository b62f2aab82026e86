package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/photoshare/internal/dbx"
	"github.com/dmitrijs2005/photoshare/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/photoshare/internal/server/repositories/photos"
	"github.com/dmitrijs2005/photoshare/internal/server/repositories/sessions"
)

// RepositoryManager vends repositories bound to either the pool or an open
// transaction, so services decide the transactional scope per call.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Sessions(db dbx.DBTX) sessions.Repository
	Photos(db dbx.DBTX) photos.Repository
}
