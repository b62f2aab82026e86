package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/photoshare/internal/common"
	"github.com/dmitrijs2005/photoshare/internal/dbx"
	"github.com/dmitrijs2005/photoshare/internal/server/models"
	"github.com/dmitrijs2005/photoshare/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/photoshare/internal/server/repositories/photos"
	"github.com/dmitrijs2005/photoshare/internal/server/repositories/sessions"
	"github.com/google/uuid"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// memStore is an in-memory stand-in for the account and session tables.
type memStore struct {
	mu       sync.Mutex
	accounts map[string]*models.Account // by name
	sessions map[string]string          // session id -> account id

	upsertErr        error
	createSessionErr error
	deleteErr        error
	lookupErr        error
	upserts          int
}

func newMemStore() *memStore {
	return &memStore{accounts: map[string]*models.Account{}, sessions: map[string]string{}}
}

func (s *memStore) accountByID(id string) *models.Account {
	for _, a := range s.accounts {
		if a.ID == id {
			return a
		}
	}
	return nil
}

type fakeAccountsRepo struct{ s *memStore }

func (f *fakeAccountsRepo) Upsert(ctx context.Context, name, avatar string) (string, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.upserts++
	if f.s.upsertErr != nil {
		return "", f.s.upsertErr
	}
	if a, ok := f.s.accounts[name]; ok {
		a.Avatar = avatar
		return a.ID, nil
	}
	a := &models.Account{ID: uuid.NewString(), Name: name, Avatar: avatar}
	f.s.accounts[name] = a
	return a.ID, nil
}

func (f *fakeAccountsRepo) GetByName(ctx context.Context, name string) (*models.Account, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.lookupErr != nil {
		return nil, f.s.lookupErr
	}
	a, ok := f.s.accounts[name]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAccountsRepo) GetBySessionID(ctx context.Context, sessionID string) (*models.Account, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.lookupErr != nil {
		return nil, f.s.lookupErr
	}
	accountID, ok := f.s.sessions[sessionID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	a := f.s.accountByID(accountID)
	if a == nil {
		return nil, common.ErrorNotFound
	}
	cp := *a
	return &cp, nil
}

type fakeSessionsRepo struct{ s *memStore }

func (f *fakeSessionsRepo) Create(ctx context.Context, accountID string) (string, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.createSessionErr != nil {
		return "", f.s.createSessionErr
	}
	id := uuid.NewString()
	f.s.sessions[id] = accountID
	return id, nil
}

func (f *fakeSessionsRepo) Delete(ctx context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.deleteErr != nil {
		return f.s.deleteErr
	}
	delete(f.s.sessions, id)
	return nil
}

// fakePhotosRepo returns canned values and records what it was asked.
type fakePhotosRepo struct {
	createOut *models.Photo
	createErr error

	listOut   []*models.Photo
	listErr   error
	listLimit int

	ownerOut *models.PhotoDetail
	ownerErr error

	commentsOut []models.Comment
	commentsErr error
	likersOut   []models.Liker
	likersErr   error

	calls []string
}

func (f *fakePhotosRepo) Create(ctx context.Context, accountID, url, description string) (*models.Photo, error) {
	f.calls = append(f.calls, "Create")
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	return &models.Photo{ID: uuid.NewString(), AccountID: accountID, URL: url, Description: description}, nil
}

func (f *fakePhotosRepo) ListByAccount(ctx context.Context, accountID string, limit int) ([]*models.Photo, error) {
	f.calls = append(f.calls, "ListByAccount")
	f.listLimit = limit
	return f.listOut, f.listErr
}

func (f *fakePhotosRepo) GetForOwner(ctx context.Context, accountName, photoID string) (*models.PhotoDetail, error) {
	f.calls = append(f.calls, "GetForOwner")
	if f.ownerErr != nil {
		return nil, f.ownerErr
	}
	cp := *f.ownerOut
	return &cp, nil
}

func (f *fakePhotosRepo) ListComments(ctx context.Context, photoID string) ([]models.Comment, error) {
	f.calls = append(f.calls, "ListComments")
	return f.commentsOut, f.commentsErr
}

func (f *fakePhotosRepo) ListLikers(ctx context.Context, photoID string) ([]models.Liker, error) {
	f.calls = append(f.calls, "ListLikers")
	return f.likersOut, f.likersErr
}

type fakeRepoManager struct {
	store  *memStore
	photos *fakePhotosRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Accounts(db dbx.DBTX) accounts.Repository {
	return &fakeAccountsRepo{s: m.store}
}
func (m *fakeRepoManager) Sessions(db dbx.DBTX) sessions.Repository {
	return &fakeSessionsRepo{s: m.store}
}
func (m *fakeRepoManager) Photos(db dbx.DBTX) photos.Repository { return m.photos }
