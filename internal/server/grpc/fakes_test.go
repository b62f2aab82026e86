package grpc

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/photoshare/internal/common"
	"github.com/dmitrijs2005/photoshare/internal/logging"
	"github.com/dmitrijs2005/photoshare/internal/server/auth"
	"github.com/dmitrijs2005/photoshare/internal/server/models"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/test/bufconn"
)

const testSecret = "secret"

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

// fakeAccounts keeps accounts and sessions in memory and also acts as the
// gate, so logins made through the transport can be resolved again.
type fakeAccounts struct {
	mu       sync.Mutex
	byName   map[string]*models.Account
	sessions map[string]*models.Account

	loginErr   error
	logoutErr  error
	resolveErr error
	loggedOut  []string
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{byName: map[string]*models.Account{}, sessions: map[string]*models.Account{}}
}

func (f *fakeAccounts) Login(ctx context.Context, name, avatar string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loginErr != nil {
		return "", f.loginErr
	}
	a, ok := f.byName[name]
	if !ok {
		a = &models.Account{ID: uuid.NewString(), Name: name}
		f.byName[name] = a
	}
	a.Avatar = avatar
	sid := uuid.NewString()
	f.sessions[sid] = a
	return sid, nil
}

func (f *fakeAccounts) Logout(ctx context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.logoutErr != nil {
		return f.logoutErr
	}
	f.loggedOut = append(f.loggedOut, sessionID)
	delete(f.sessions, sessionID)
	return nil
}

func (f *fakeAccounts) ResolveAccountByName(ctx context.Context, name string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byName[name]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return a, nil
}

func (f *fakeAccounts) RequireAccount(ctx context.Context, sessionID string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.resolveErr != nil {
		return nil, f.resolveErr
	}
	a, ok := f.sessions[sessionID]
	if !ok {
		return nil, common.ErrorUnauthenticated
	}
	return a, nil
}

type fakePhotos struct {
	created   []*models.Photo
	createErr error
	list      []*models.Photo
	detail    *models.PhotoDetail
	detailErr error
	upload    *models.UploadTarget
}

func (f *fakePhotos) CreatePhoto(ctx context.Context, accountID, url, description string) (*models.Photo, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	p := &models.Photo{ID: uuid.NewString(), AccountID: accountID, URL: url, Description: description}
	f.created = append(f.created, p)
	return p, nil
}

func (f *fakePhotos) ListPhotosForAccount(ctx context.Context, accountID string) ([]*models.Photo, error) {
	return f.list, nil
}

func (f *fakePhotos) GetPhotoDetail(ctx context.Context, accountName, photoID string) (*models.PhotoDetail, error) {
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	return f.detail, nil
}

func (f *fakePhotos) PrepareUpload(ctx context.Context, accountID, fileName string) (*models.UploadTarget, error) {
	return f.upload, nil
}

func newTestServer(accounts *fakeAccounts, photos *fakePhotos) *GRPCServer {
	return NewGRPCServer("", nopLogger{}, accounts, photos, accounts, testSecret, time.Second)
}

// startBufconn serves s in memory and returns a connected client.
func startBufconn(t *testing.T, s *GRPCServer) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.ForceCodec(Codec())),
	)
	if err != nil {
		t.Fatalf("grpc.NewClient error: %v", err)
	}

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("server did not stop")
		}
	})
	return conn
}

func withToken(ctx context.Context, token string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, common.SessionTokenHeaderName, token)
}

func mustSign(t *testing.T, sessionID string) string {
	t.Helper()
	tok, err := auth.SignSession(sessionID, []byte(testSecret))
	if err != nil {
		t.Fatalf("SignSession error: %v", err)
	}
	return tok
}
