package grpc

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/photoshare/internal/common"
	"github.com/dmitrijs2005/photoshare/internal/server/auth"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", common.ErrorValidation, msg)
}

func (s *GRPCServer) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, s.toStatus(ctx, validationError("name is required"))
	}

	sessionID, err := s.accounts.Login(ctx, req.Name, req.Avatar)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	token, err := auth.SignSession(sessionID, s.jwtSecret)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.log(ctx).Info(ctx, "Logged in", "name", req.Name)
	return &LoginResponse{Token: token}, nil
}

// Logout always succeeds for callers without a valid token: there is no
// session to end.
func (s *GRPCServer) Logout(ctx context.Context, _ *Empty) (*Empty, error) {
	token := tokenFromMetadata(ctx)
	if token == "" {
		return &Empty{}, nil
	}

	sessionID, err := auth.SessionIDFromToken(token, s.jwtSecret)
	if err != nil {
		return &Empty{}, nil
	}

	if err := s.accounts.Logout(ctx, sessionID); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &Empty{}, nil
}

func (s *GRPCServer) WhoAmI(ctx context.Context, _ *Empty) (*WhoAmIResponse, error) {
	account, ok := accountFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthenticated")
	}
	return &WhoAmIResponse{Account: account}, nil
}

func (s *GRPCServer) PresignUpload(ctx context.Context, req *PresignUploadRequest) (*PresignUploadResponse, error) {
	account, ok := accountFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthenticated")
	}
	if req.FileName == "" {
		return nil, s.toStatus(ctx, validationError("file name is required"))
	}

	target, err := s.photos.PrepareUpload(ctx, account.ID, req.FileName)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &PresignUploadResponse{UploadURL: target.UploadURL, PublicURL: target.PublicURL, Key: target.Key}, nil
}

// CreatePhoto records an uploaded photo. Width and height are reported by
// clients but not stored.
func (s *GRPCServer) CreatePhoto(ctx context.Context, req *CreatePhotoRequest) (*CreatePhotoResponse, error) {
	account, ok := accountFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthenticated")
	}
	if req.URL == "" || req.Description == "" {
		return nil, s.toStatus(ctx, validationError("url and description are required"))
	}

	photo, err := s.photos.CreatePhoto(ctx, account.ID, req.URL, req.Description)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.log(ctx).Info(ctx, "Photo created", "photo_id", photo.ID, "width", req.Width, "height", req.Height)
	return &CreatePhotoResponse{Photo: photo, Path: "/" + account.Name + "/" + photo.ID}, nil
}

func (s *GRPCServer) GetProfile(ctx context.Context, req *GetProfileRequest) (*GetProfileResponse, error) {
	if req.Name == "" {
		return nil, s.toStatus(ctx, validationError("name is required"))
	}

	account, err := s.accounts.ResolveAccountByName(ctx, req.Name)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	photos, err := s.photos.ListPhotosForAccount(ctx, account.ID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &GetProfileResponse{Account: account, Photos: photos}, nil
}

func (s *GRPCServer) GetPhotoDetail(ctx context.Context, req *GetPhotoDetailRequest) (*GetPhotoDetailResponse, error) {
	if req.Name == "" || req.PhotoID == "" {
		return nil, s.toStatus(ctx, validationError("name and photo id are required"))
	}

	detail, err := s.photos.GetPhotoDetail(ctx, req.Name, req.PhotoID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &GetPhotoDetailResponse{Detail: detail}, nil
}
