// Package server wires the photoshare components together and runs the
// gRPC endpoint until the process is asked to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/photoshare/internal/dbx"
	"github.com/dmitrijs2005/photoshare/internal/logging"
	"github.com/dmitrijs2005/photoshare/internal/server/auth"
	"github.com/dmitrijs2005/photoshare/internal/server/config"
	"github.com/dmitrijs2005/photoshare/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/photoshare/internal/server/services"
	"github.com/dmitrijs2005/photoshare/internal/server/storage"

	gs "github.com/dmitrijs2005/photoshare/internal/server/grpc"
)

// Seams for tests.
var (
	openDB         = dbx.Open
	newRepoManager = repomanager.NewPostgresRepositoryManager
	newLogger      = logging.New
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	accountService *services.AccountService
	photoService   *services.PhotoService
	gate           *auth.Gate
}

// NewApp opens the database, applies migrations and builds the services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := newLogger(c.LogFormat)
	if err != nil {
		return nil, err
	}

	db, err := openDB(ctx, c.DatabaseDSN, dbx.PoolOptions{
		MaxOpenConns:    c.DBMaxOpenConns,
		MaxIdleConns:    c.DBMaxIdleConns,
		ConnMaxLifetime: c.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := newRepoManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	presigner, err := storage.NewPresigner(ctx, c)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	as := services.NewAccountService(db, rm)
	ps := services.NewPhotoService(db, rm, presigner)

	return &App{
		config:         c,
		logger:         logger,
		db:             db,
		accountService: as,
		photoService:   ps,
		gate:           auth.NewGate(as),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.accountService, app.photoService,
		app.gate, app.config.SecretKey, app.config.ShutdownTimeout)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the database.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(context.Background(), "error closing db", "error", err)
	}
	app.logger.Info(context.Background(), "App stopped")

	if syncer, ok := app.logger.(interface{ Sync() error }); ok {
		_ = syncer.Sync()
	}
}
