package grpc

import (
	"context"

	"github.com/dmitrijs2005/photoshare/internal/server/models"
	"google.golang.org/grpc"
)

const ServiceName = "photoshare.PhotoService"

// FullMethod returns the wire name of a PhotoService method.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

type LoginRequest struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type Empty struct{}

type WhoAmIResponse struct {
	Account *models.Account `json:"account"`
}

type PresignUploadRequest struct {
	FileName string `json:"file_name"`
}

type PresignUploadResponse struct {
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
	Key       string `json:"key"`
}

type CreatePhotoRequest struct {
	URL         string `json:"url"`
	Description string `json:"description"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

type CreatePhotoResponse struct {
	Photo *models.Photo `json:"photo"`
	Path  string        `json:"path"`
}

type GetProfileRequest struct {
	Name string `json:"name"`
}

type GetProfileResponse struct {
	Account *models.Account `json:"account"`
	Photos  []*models.Photo `json:"photos"`
}

type GetPhotoDetailRequest struct {
	Name    string `json:"name"`
	PhotoID string `json:"photo_id"`
}

type GetPhotoDetailResponse struct {
	Detail *models.PhotoDetail `json:"detail"`
}

// PhotoServiceServer is implemented by GRPCServer.
type PhotoServiceServer interface {
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	Logout(context.Context, *Empty) (*Empty, error)
	WhoAmI(context.Context, *Empty) (*WhoAmIResponse, error)
	PresignUpload(context.Context, *PresignUploadRequest) (*PresignUploadResponse, error)
	CreatePhoto(context.Context, *CreatePhotoRequest) (*CreatePhotoResponse, error)
	GetProfile(context.Context, *GetProfileRequest) (*GetProfileResponse, error)
	GetPhotoDetail(context.Context, *GetPhotoDetailRequest) (*GetPhotoDetailResponse, error)
}

func unaryMethod[Req, Resp any](name string, call func(PhotoServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(PhotoServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(PhotoServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var photoServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PhotoServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("Login", PhotoServiceServer.Login),
		unaryMethod("Logout", PhotoServiceServer.Logout),
		unaryMethod("WhoAmI", PhotoServiceServer.WhoAmI),
		unaryMethod("PresignUpload", PhotoServiceServer.PresignUpload),
		unaryMethod("CreatePhoto", PhotoServiceServer.CreatePhoto),
		unaryMethod("GetProfile", PhotoServiceServer.GetProfile),
		unaryMethod("GetPhotoDetail", PhotoServiceServer.GetPhotoDetail),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterPhotoServiceServer(s grpc.ServiceRegistrar, srv PhotoServiceServer) {
	s.RegisterService(&photoServiceDesc, srv)
}
