package grpc

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/logging"
	"github.com/dmitrijs2005/gophvault/internal/models"
	pb "github.com/dmitrijs2005/gophvault/internal/proto"
	"github.com/dmitrijs2005/gophvault/internal/server/auth"
	sm "github.com/dmitrijs2005/gophvault/internal/server/models"
	"github.com/dmitrijs2005/gophvault/internal/server/services"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/test/bufconn"
)

const testSecret = "secret"

var errBoom = errors.New("boom")

type fakeUsers struct {
	regResp *sm.User
	regErr  error

	saltResp []byte
	saltErr  error

	loginResp *services.TokenPair
	loginErr  error

	refreshResp *services.TokenPair
	refreshErr  error

	logoutUser string
	logoutErr  error
}

func (f *fakeUsers) Register(ctx context.Context, username string, salt, verifier []byte) (*sm.User, error) {
	return f.regResp, f.regErr
}

func (f *fakeUsers) GetSalt(ctx context.Context, username string) ([]byte, error) {
	return f.saltResp, f.saltErr
}

func (f *fakeUsers) Login(ctx context.Context, username string, verifierCandidate []byte) (*services.TokenPair, error) {
	return f.loginResp, f.loginErr
}

func (f *fakeUsers) RefreshToken(ctx context.Context, refresh string) (*services.TokenPair, error) {
	return f.refreshResp, f.refreshErr
}

func (f *fakeUsers) Logout(ctx context.Context, userID string) error {
	f.logoutUser = userID
	return f.logoutErr
}

type fakeFolders struct {
	items map[string]models.Folder
	err   error
}

func newFakeFolders() *fakeFolders { return &fakeFolders{items: map[string]models.Folder{}} }

func (f *fakeFolders) Create(ctx context.Context, userID, name string, ct []byte) (*models.Folder, error) {
	if f.err != nil {
		return nil, f.err
	}
	if name == "" {
		return nil, common.ErrInvalidArgument
	}
	folder := models.Folder{ID: "f" + name, OwnerID: userID, Name: name, Ciphertext: ct, CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	f.items[folder.ID] = folder
	return &folder, nil
}

func (f *fakeFolders) Get(ctx context.Context, userID, id string) (*models.Folder, error) {
	folder, ok := f.items[id]
	if !ok || folder.OwnerID != userID {
		return nil, common.ErrorNotFound
	}
	return &folder, nil
}

func (f *fakeFolders) Update(ctx context.Context, userID, id string, ct []byte) error {
	folder, ok := f.items[id]
	if !ok || folder.OwnerID != userID {
		return common.ErrorNotFound
	}
	folder.Ciphertext = ct
	f.items[id] = folder
	return nil
}

func (f *fakeFolders) Delete(ctx context.Context, userID, id string) error {
	folder, ok := f.items[id]
	if !ok || folder.OwnerID != userID {
		return common.ErrorNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeFolders) List(ctx context.Context, userID string) ([]models.Folder, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Folder
	for _, folder := range f.items {
		if folder.OwnerID == userID {
			out = append(out, folder)
		}
	}
	return out, nil
}

type fakeBackups struct {
	user, name string
	err        error
}

func (f *fakeBackups) UploadURL(ctx context.Context, userID, fileName string) (string, string, error) {
	if f.err != nil {
		return "", "", f.err
	}
	f.user, f.name = userID, fileName
	return "backups/" + userID + "/" + fileName, "https://s3.local/put", nil
}

type harness struct {
	client  pb.VaultServiceClient
	users   *fakeUsers
	folders *fakeFolders
	backups *fakeBackups
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{users: &fakeUsers{}, folders: newFakeFolders(), backups: &fakeBackups{}}
	srv := NewGRPCServer("", logging.Nop(), h.users, h.folders, h.backups, testSecret)

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, lis) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	h.client = pb.NewVaultServiceClient(conn)
	return h
}

func authed(t *testing.T, userID string) context.Context {
	t.Helper()
	tok, err := auth.GenerateToken(userID, []byte(testSecret), time.Hour)
	require.NoError(t, err)
	return metadata.AppendToOutgoingContext(context.Background(), common.AccessTokenHeaderName, tok)
}
