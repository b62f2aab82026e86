// Package grpc exposes the photo service over gRPC. Messages are JSON
// encoded; the session token travels in request metadata.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/photoshare/internal/logging"
	"github.com/dmitrijs2005/photoshare/internal/server/models"
	"google.golang.org/grpc"
)

type AccountService interface {
	Login(ctx context.Context, name, avatar string) (string, error)
	Logout(ctx context.Context, sessionID string) error
	ResolveAccountByName(ctx context.Context, name string) (*models.Account, error)
}

type PhotoService interface {
	CreatePhoto(ctx context.Context, accountID, url, description string) (*models.Photo, error)
	ListPhotosForAccount(ctx context.Context, accountID string) ([]*models.Photo, error)
	GetPhotoDetail(ctx context.Context, accountName, photoID string) (*models.PhotoDetail, error)
	PrepareUpload(ctx context.Context, accountID, fileName string) (*models.UploadTarget, error)
}

type Authorizer interface {
	RequireAccount(ctx context.Context, sessionID string) (*models.Account, error)
}

type GRPCServer struct {
	address         string
	accounts        AccountService
	photos          PhotoService
	gate            Authorizer
	logger          logging.Logger
	jwtSecret       []byte
	shutdownTimeout time.Duration
}

func NewGRPCServer(a string, l logging.Logger, as AccountService, ps PhotoService, gate Authorizer, secretKey string, shutdownTimeout time.Duration) *GRPCServer {
	return &GRPCServer{
		address:         a,
		logger:          l.With("module", "grpc_server"),
		accounts:        as,
		photos:          ps,
		gate:            gate,
		jwtSecret:       []byte(secretKey),
		shutdownTimeout: shutdownTimeout,
	}
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled, then stops
// gracefully. In-flight calls get shutdownTimeout to finish.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(
		grpc.ForceServerCodec(Codec()),
		grpc.ChainUnaryInterceptor(s.sessionInterceptor),
	)

	RegisterPhotoServiceServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping gRPC server...")
		s.stop(srv)
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}

func (s *GRPCServer) stop(srv *grpc.Server) {
	done := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(done)
	}()

	if s.shutdownTimeout <= 0 {
		<-done
		return
	}

	select {
	case <-done:
	case <-time.After(s.shutdownTimeout):
		s.logger.Warn(context.Background(), "graceful stop timed out, closing connections")
		srv.Stop()
	}
}
