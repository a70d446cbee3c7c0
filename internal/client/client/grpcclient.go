package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/models"
	pb "github.com/dmitrijs2005/gophvault/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      pb.VaultServiceClient

	mu           sync.RWMutex
	userName     string
	accessToken  string
	refreshToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) tokens() (string, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken, s.refreshToken
}

func (s *GRPCClient) setTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken, s.refreshToken = access, refresh
}

// accessTokenInterceptor attaches the access token and, when the server
// reports it expired, refreshes the pair once and retries the call.
func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	access, refresh := s.tokens()
	err := invoker(withAccessToken(ctx, access), method, req, reply, cc, opts...)
	if err == nil || method == pb.VaultService_RefreshToken_FullMethodName {
		return err
	}

	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.Unauthenticated || st.Message() != common.ErrTokenExpired.Error() {
		return err
	}
	if refresh == "" {
		return err
	}

	resp, rerr := s.client.RefreshToken(ctx, &pb.RefreshTokenRequest{RefreshToken: refresh})
	if rerr != nil {
		return rerr
	}
	s.setTokens(resp.AccessToken, resp.RefreshToken)

	return invoker(withAccessToken(ctx, resp.AccessToken), method, req, reply, cc, opts...)
}

// NewGRPCClient creates a client for endpointURL. Extra dial options are
// appended after the defaults (plaintext transport, token interceptor).
func NewGRPCClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = pb.NewVaultServiceClient(conn)
	return c, nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Register(ctx context.Context, userName string, salt []byte, verifier []byte) error {
	_, err := s.client.Register(ctx, &pb.RegisterRequest{Username: userName, Salt: salt, Verifier: verifier})
	return mapError(err)
}

func (s *GRPCClient) GetSalt(ctx context.Context, userName string) ([]byte, error) {
	resp, err := s.client.GetSalt(ctx, &pb.GetSaltRequest{Username: userName})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Salt, nil
}

func (s *GRPCClient) Login(ctx context.Context, userName string, verifier []byte) error {
	resp, err := s.client.Login(ctx, &pb.LoginRequest{Username: userName, VerifierCandidate: verifier})
	if err != nil {
		return mapError(err)
	}

	s.mu.Lock()
	s.userName = userName
	s.accessToken = resp.AccessToken
	s.refreshToken = resp.RefreshToken
	s.mu.Unlock()

	return nil
}

// Logout revokes the refresh tokens on the server and forgets the local
// pair. The local pair is dropped even if the server call fails.
func (s *GRPCClient) Logout(ctx context.Context) error {
	_, err := s.client.Logout(ctx, &pb.LogoutRequest{})

	s.mu.Lock()
	s.userName, s.accessToken, s.refreshToken = "", "", ""
	s.mu.Unlock()

	return mapError(err)
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &pb.PingRequest{})
	if err != nil {
		return mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) toFolder(f *pb.Folder) *models.Folder {
	if f == nil {
		return nil
	}
	s.mu.RLock()
	owner := s.userName
	s.mu.RUnlock()
	return &models.Folder{ID: f.ID, OwnerID: owner, Name: f.Name, Ciphertext: f.Ciphertext, CreatedAt: f.CreatedAt.UTC()}
}

// Create stores a new folder. The server assigns ownership from the access
// token, so ownerID is not sent.
func (s *GRPCClient) Create(ctx context.Context, _ string, name string, ciphertext []byte) (*models.Folder, error) {
	resp, err := s.client.CreateFolder(ctx, &pb.CreateFolderRequest{Name: name, Ciphertext: ciphertext})
	if err != nil {
		return nil, mapError(err)
	}
	return s.toFolder(resp.Folder), nil
}

func (s *GRPCClient) Read(ctx context.Context, folderID string) (*models.Folder, error) {
	resp, err := s.client.GetFolder(ctx, &pb.GetFolderRequest{ID: folderID})
	if err != nil {
		return nil, mapError(err)
	}
	return s.toFolder(resp.Folder), nil
}

func (s *GRPCClient) Update(ctx context.Context, folderID string, ciphertext []byte) error {
	_, err := s.client.UpdateFolder(ctx, &pb.UpdateFolderRequest{ID: folderID, Ciphertext: ciphertext})
	return mapError(err)
}

func (s *GRPCClient) Delete(ctx context.Context, folderID string) error {
	_, err := s.client.DeleteFolder(ctx, &pb.DeleteFolderRequest{ID: folderID})
	return mapError(err)
}

// ListByOwner lists the folders of the signed-in user; ownerID is implied by
// the access token.
func (s *GRPCClient) ListByOwner(ctx context.Context, _ string) ([]models.Folder, error) {
	resp, err := s.client.ListFolders(ctx, &pb.ListFoldersRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	out := make([]models.Folder, 0, len(resp.Folders))
	for _, f := range resp.Folders {
		out = append(out, *s.toFolder(f))
	}
	return out, nil
}

func (s *GRPCClient) BackupUploadURL(ctx context.Context, fileName string) (string, error) {
	resp, err := s.client.GetBackupUploadURL(ctx, &pb.GetBackupUploadURLRequest{FileName: fileName})
	if err != nil {
		return "", mapError(err)
	}
	return resp.URL, nil
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %w", common.ErrStorageUnavailable, ErrUnavailable)
	case codes.NotFound:
		return common.ErrorNotFound
	case codes.AlreadyExists:
		return common.ErrorAlreadyExists
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", common.ErrInvalidArgument, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
