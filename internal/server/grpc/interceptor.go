package grpc

import (
	"context"
	"errors"
	"path"
	"time"

	"github.com/dmitrijs2005/photoshare/internal/common"
	"github.com/dmitrijs2005/photoshare/internal/dbx"
	"github.com/dmitrijs2005/photoshare/internal/logging"
	"github.com/dmitrijs2005/photoshare/internal/server/auth"
	"github.com/dmitrijs2005/photoshare/internal/server/models"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const (
	accountKey ctxKey = "account"
	loggerKey  ctxKey = "logger"
)

// Methods that need a logged-in caller.
var protectedMethods = map[string]bool{
	FullMethod("WhoAmI"):        true,
	FullMethod("PresignUpload"): true,
	FullMethod("CreatePhoto"):   true,
}

func (s *GRPCServer) sessionInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	started := time.Now()
	l := s.logger.With("request_id", uuid.NewString(), "method", path.Base(info.FullMethod))
	ctx = context.WithValue(ctx, loggerKey, l)

	if protectedMethods[info.FullMethod] {
		account, err := s.authenticate(ctx)
		if err != nil {
			l.Info(ctx, "request rejected", "code", status.Code(err).String())
			return nil, err
		}
		ctx = context.WithValue(ctx, accountKey, account)
		l = l.With("account_id", account.ID)
		ctx = context.WithValue(ctx, loggerKey, l)
	}

	resp, err := handler(ctx, req)

	l.Info(ctx, "request served", "code", status.Code(err).String(), "duration", time.Since(started))
	return resp, err
}

func (s *GRPCServer) authenticate(ctx context.Context) (*models.Account, error) {
	token := tokenFromMetadata(ctx)
	if token == "" {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	sessionID, err := auth.SessionIDFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, "invalid token")
	}

	account, err := s.gate.RequireAccount(ctx, sessionID)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthenticated) {
			return nil, status.Error(codes.Unauthenticated, "unauthenticated")
		}
		return nil, s.toStatus(ctx, err)
	}

	return account, nil
}

func tokenFromMetadata(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.SessionTokenHeaderName); len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

func accountFromContext(ctx context.Context) (*models.Account, bool) {
	a, ok := ctx.Value(accountKey).(*models.Account)
	return a, ok && a != nil
}

func (s *GRPCServer) log(ctx context.Context) logging.Logger {
	if l, ok := ctx.Value(loggerKey).(logging.Logger); ok {
		return l
	}
	return s.logger
}

// toStatus maps service errors onto gRPC codes. Unexpected errors are
// logged and hidden from the caller.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, common.ErrorValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorUnauthenticated):
		return status.Error(codes.Unauthenticated, "unauthenticated")
	case dbx.IsConstraintViolation(err):
		s.log(ctx).Warn(ctx, err.Error())
		return status.Error(codes.FailedPrecondition, "constraint violation")
	default:
		s.log(ctx).Error(ctx, err.Error())
		return status.Error(codes.Internal, "internal error")
	}
}
