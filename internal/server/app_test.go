package server

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/photoshare/internal/dbx"
	"github.com/dmitrijs2005/photoshare/internal/logging"
	"github.com/dmitrijs2005/photoshare/internal/server/config"
	"github.com/dmitrijs2005/photoshare/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/photoshare/internal/server/repositories/photos"
	"github.com/dmitrijs2005/photoshare/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/photoshare/internal/server/repositories/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

type stubRepoManager struct {
	repomanager.RepositoryManager
	migrateErr error
	migrated   bool
}

func (m *stubRepoManager) RunMigrations(context.Context, *sql.DB) error {
	m.migrated = true
	return m.migrateErr
}
func (m *stubRepoManager) Accounts(dbx.DBTX) accounts.Repository { return nil }
func (m *stubRepoManager) Sessions(dbx.DBTX) sessions.Repository { return nil }
func (m *stubRepoManager) Photos(dbx.DBTX) photos.Repository     { return nil }

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrGRPC = "127.0.0.1:0"
	return c
}

func stubSeams(t *testing.T, rm *stubRepoManager, openErr error) sqlmock.Sqlmock {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	origOpen, origRM, origLogger := openDB, newRepoManager, newLogger
	t.Cleanup(func() {
		openDB, newRepoManager, newLogger = origOpen, origRM, origLogger
	})

	openDB = func(ctx context.Context, dsn string, opts dbx.PoolOptions) (*sql.DB, error) {
		if openErr != nil {
			return nil, openErr
		}
		assert.Equal(t, 20, opts.MaxOpenConns)
		assert.Equal(t, 30*time.Minute, opts.ConnMaxLifetime)
		return db, nil
	}
	newRepoManager = func() repomanager.RepositoryManager { return rm }
	newLogger = func(string) (logging.Logger, error) { return nopLogger{}, nil }

	return mock
}

func TestNewApp_WiresComponents(t *testing.T) {
	t.Setenv("AWS_CONFIG_FILE", "/nonexistent")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/nonexistent")
	rm := &stubRepoManager{}
	stubSeams(t, rm, nil)

	app, err := NewApp(context.Background(), testConfig())
	require.NoError(t, err)
	assert.True(t, rm.migrated)
	assert.NotNil(t, app.accountService)
	assert.NotNil(t, app.photoService)
	assert.NotNil(t, app.gate)
}

func TestNewApp_OpenError(t *testing.T) {
	stubSeams(t, &stubRepoManager{}, errors.New("refused"))

	_, err := NewApp(context.Background(), testConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db init error: refused")
}

func TestNewApp_MigrationErrorClosesDB(t *testing.T) {
	mock := stubSeams(t, &stubRepoManager{migrateErr: errors.New("bad sql")}, nil)
	mock.ExpectClose()

	_, err := NewApp(context.Background(), testConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db migration error: bad sql")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNewApp_BadLogFormat(t *testing.T) {
	c := testConfig()
	c.LogFormat = "xml"

	_, err := NewApp(context.Background(), c)
	require.Error(t, err)
}

func TestRun_StopsOnCancelAndClosesDB(t *testing.T) {
	t.Setenv("AWS_CONFIG_FILE", "/nonexistent")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/nonexistent")
	mock := stubSeams(t, &stubRepoManager{}, nil)
	mock.ExpectClose()

	app, err := NewApp(context.Background(), testConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop")
	}
	require.NoError(t, mock.ExpectationsWereMet())
}
