package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/models"
	pb "github.com/dmitrijs2005/gophvault/internal/proto"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps service errors onto gRPC codes. Unknown errors are logged
// and reported as a bare Internal.
func (s *GRPCServer) toStatus(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, common.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, "already exists")
	case errors.Is(err, common.ErrRefreshTokenExpired):
		return status.Error(codes.Unauthenticated, common.ErrRefreshTokenExpired.Error())
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, "unauthorized")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	}
	s.logger.Error(ctx, "request failed", "op", op, "error", err)
	return status.Error(codes.Internal, "internal error")
}

func toPBFolder(f *models.Folder) *pb.Folder {
	return &pb.Folder{ID: f.ID, Name: f.Name, Ciphertext: f.Ciphertext, CreatedAt: f.CreatedAt}
}

func (s *GRPCServer) Register(ctx context.Context, req *pb.RegisterRequest) (*pb.RegisterResponse, error) {
	user, err := s.users.Register(ctx, req.Username, req.Salt, req.Verifier)
	if err != nil {
		return nil, s.toStatus(ctx, "register", err)
	}

	s.logger.Info(ctx, "Registered", "user", user.ID)
	return &pb.RegisterResponse{UserID: user.ID}, nil
}

func (s *GRPCServer) GetSalt(ctx context.Context, req *pb.GetSaltRequest) (*pb.GetSaltResponse, error) {
	salt, err := s.users.GetSalt(ctx, req.Username)
	if err != nil {
		return nil, s.toStatus(ctx, "get_salt", err)
	}
	return &pb.GetSaltResponse{Salt: salt}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *pb.LoginRequest) (*pb.LoginResponse, error) {
	tokens, err := s.users.Login(ctx, req.Username, req.VerifierCandidate)
	if err != nil {
		return nil, s.toStatus(ctx, "login", err)
	}
	return &pb.LoginResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *pb.RefreshTokenRequest) (*pb.RefreshTokenResponse, error) {
	tokens, err := s.users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, s.toStatus(ctx, "refresh_token", err)
	}
	return &pb.RefreshTokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) Logout(ctx context.Context, _ *pb.LogoutRequest) (*pb.LogoutResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.users.Logout(ctx, userID); err != nil {
		return nil, s.toStatus(ctx, "logout", err)
	}
	return &pb.LogoutResponse{}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, _ *pb.PingRequest) (*pb.PingResponse, error) {
	return &pb.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) CreateFolder(ctx context.Context, req *pb.CreateFolderRequest) (*pb.CreateFolderResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	f, err := s.folders.Create(ctx, userID, req.Name, req.Ciphertext)
	if err != nil {
		return nil, s.toStatus(ctx, "create_folder", err)
	}
	s.logger.Info(ctx, "Folder created", "user", userID, "folder", f.ID)
	return &pb.CreateFolderResponse{Folder: toPBFolder(f)}, nil
}

func (s *GRPCServer) GetFolder(ctx context.Context, req *pb.GetFolderRequest) (*pb.GetFolderResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	f, err := s.folders.Get(ctx, userID, req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, "get_folder", err)
	}
	return &pb.GetFolderResponse{Folder: toPBFolder(f)}, nil
}

func (s *GRPCServer) UpdateFolder(ctx context.Context, req *pb.UpdateFolderRequest) (*pb.UpdateFolderResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.folders.Update(ctx, userID, req.ID, req.Ciphertext); err != nil {
		return nil, s.toStatus(ctx, "update_folder", err)
	}
	return &pb.UpdateFolderResponse{}, nil
}

func (s *GRPCServer) DeleteFolder(ctx context.Context, req *pb.DeleteFolderRequest) (*pb.DeleteFolderResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.folders.Delete(ctx, userID, req.ID); err != nil {
		return nil, s.toStatus(ctx, "delete_folder", err)
	}
	s.logger.Info(ctx, "Folder deleted", "user", userID, "folder", req.ID)
	return &pb.DeleteFolderResponse{}, nil
}

func (s *GRPCServer) ListFolders(ctx context.Context, _ *pb.ListFoldersRequest) (*pb.ListFoldersResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.folders.List(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, "list_folders", err)
	}
	out := make([]*pb.Folder, 0, len(list))
	for i := range list {
		out = append(out, toPBFolder(&list[i]))
	}
	return &pb.ListFoldersResponse{Folders: out}, nil
}

func (s *GRPCServer) GetBackupUploadURL(ctx context.Context, req *pb.GetBackupUploadURLRequest) (*pb.GetBackupUploadURLResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	key, url, err := s.backups.UploadURL(ctx, userID, req.FileName)
	if err != nil {
		return nil, s.toStatus(ctx, "backup_upload_url", err)
	}
	s.logger.Info(ctx, "Backup upload presigned", "user", userID, "key", key)
	return &pb.GetBackupUploadURLResponse{Key: key, URL: url}, nil
}
