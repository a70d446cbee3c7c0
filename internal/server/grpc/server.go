// Package grpc exposes the vault storage, account and backup services over
// gRPC. Folder and backup calls require an access token; the server only
// ever stores sealed blobs and never sees folder secrets.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/gophvault/internal/logging"
	"github.com/dmitrijs2005/gophvault/internal/models"
	pb "github.com/dmitrijs2005/gophvault/internal/proto"
	sm "github.com/dmitrijs2005/gophvault/internal/server/models"
	"github.com/dmitrijs2005/gophvault/internal/server/services"
	"google.golang.org/grpc"
)

type UserService interface {
	Register(ctx context.Context, username string, salt, verifier []byte) (*sm.User, error)
	GetSalt(ctx context.Context, username string) ([]byte, error)
	Login(ctx context.Context, username string, verifierCandidate []byte) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Logout(ctx context.Context, userID string) error
}

type FolderService interface {
	Create(ctx context.Context, userID, name string, ciphertext []byte) (*models.Folder, error)
	Get(ctx context.Context, userID, id string) (*models.Folder, error)
	Update(ctx context.Context, userID, id string, ciphertext []byte) error
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, userID string) ([]models.Folder, error)
}

type BackupService interface {
	UploadURL(ctx context.Context, userID, fileName string) (string, string, error)
}

type GRPCServer struct {
	pb.UnimplementedVaultServiceServer
	address   string
	users     UserService
	folders   FolderService
	backups   BackupService
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, us UserService, fs FolderService, bs BackupService, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		users:     us,
		folders:   fs,
		backups:   bs,
		jwtSecret: []byte(secretKey),
	}
}

// newServer builds a grpc.Server with the service and its interceptors.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	pb.RegisterVaultServiceServer(srv, s)
	return srv
}

// Serve accepts connections on lis until ctx is cancelled, then stops
// gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	stopped := make(chan struct{})
	defer close(stopped)
	go func() {
		select {
		case <-ctx.Done():
			s.logger.Info(ctx, "Stopping gRPC server...")
			srv.GracefulStop()
		case <-stopped:
		}
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	return srv.Serve(lis)
}

func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}
