package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "gophvault.VaultService"

const (
	VaultService_Register_FullMethodName           = "/gophvault.VaultService/Register"
	VaultService_GetSalt_FullMethodName            = "/gophvault.VaultService/GetSalt"
	VaultService_Login_FullMethodName              = "/gophvault.VaultService/Login"
	VaultService_RefreshToken_FullMethodName       = "/gophvault.VaultService/RefreshToken"
	VaultService_Logout_FullMethodName             = "/gophvault.VaultService/Logout"
	VaultService_Ping_FullMethodName               = "/gophvault.VaultService/Ping"
	VaultService_CreateFolder_FullMethodName       = "/gophvault.VaultService/CreateFolder"
	VaultService_GetFolder_FullMethodName          = "/gophvault.VaultService/GetFolder"
	VaultService_UpdateFolder_FullMethodName       = "/gophvault.VaultService/UpdateFolder"
	VaultService_DeleteFolder_FullMethodName       = "/gophvault.VaultService/DeleteFolder"
	VaultService_ListFolders_FullMethodName        = "/gophvault.VaultService/ListFolders"
	VaultService_GetBackupUploadURL_FullMethodName = "/gophvault.VaultService/GetBackupUploadURL"
)

// VaultServiceServer is the server API for VaultService.
type VaultServiceServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	GetSalt(context.Context, *GetSaltRequest) (*GetSaltResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error)
	Logout(context.Context, *LogoutRequest) (*LogoutResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	CreateFolder(context.Context, *CreateFolderRequest) (*CreateFolderResponse, error)
	GetFolder(context.Context, *GetFolderRequest) (*GetFolderResponse, error)
	UpdateFolder(context.Context, *UpdateFolderRequest) (*UpdateFolderResponse, error)
	DeleteFolder(context.Context, *DeleteFolderRequest) (*DeleteFolderResponse, error)
	ListFolders(context.Context, *ListFoldersRequest) (*ListFoldersResponse, error)
	GetBackupUploadURL(context.Context, *GetBackupUploadURLRequest) (*GetBackupUploadURLResponse, error)
}

// UnimplementedVaultServiceServer answers every method with codes.Unimplemented.
// Embed it to stay forward compatible.
type UnimplementedVaultServiceServer struct{}

func (UnimplementedVaultServiceServer) Register(context.Context, *RegisterRequest) (*RegisterResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Register not implemented")
}
func (UnimplementedVaultServiceServer) GetSalt(context.Context, *GetSaltRequest) (*GetSaltResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetSalt not implemented")
}
func (UnimplementedVaultServiceServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedVaultServiceServer) RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RefreshToken not implemented")
}
func (UnimplementedVaultServiceServer) Logout(context.Context, *LogoutRequest) (*LogoutResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Logout not implemented")
}
func (UnimplementedVaultServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedVaultServiceServer) CreateFolder(context.Context, *CreateFolderRequest) (*CreateFolderResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateFolder not implemented")
}
func (UnimplementedVaultServiceServer) GetFolder(context.Context, *GetFolderRequest) (*GetFolderResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetFolder not implemented")
}
func (UnimplementedVaultServiceServer) UpdateFolder(context.Context, *UpdateFolderRequest) (*UpdateFolderResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateFolder not implemented")
}
func (UnimplementedVaultServiceServer) DeleteFolder(context.Context, *DeleteFolderRequest) (*DeleteFolderResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteFolder not implemented")
}
func (UnimplementedVaultServiceServer) ListFolders(context.Context, *ListFoldersRequest) (*ListFoldersResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListFolders not implemented")
}
func (UnimplementedVaultServiceServer) GetBackupUploadURL(context.Context, *GetBackupUploadURLRequest) (*GetBackupUploadURLResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetBackupUploadURL not implemented")
}

// unaryHandler adapts a typed server method to grpc.MethodHandler, running
// the configured interceptor chain around it.
func unaryHandler[Req, Resp any](fullMethod string, call func(VaultServiceServer, context.Context, *Req) (*Resp, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(VaultServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(VaultServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// VaultService_ServiceDesc is the grpc.ServiceDesc for VaultService.
var VaultService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*VaultServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unaryHandler(VaultService_Register_FullMethodName, VaultServiceServer.Register)},
		{MethodName: "GetSalt", Handler: unaryHandler(VaultService_GetSalt_FullMethodName, VaultServiceServer.GetSalt)},
		{MethodName: "Login", Handler: unaryHandler(VaultService_Login_FullMethodName, VaultServiceServer.Login)},
		{MethodName: "RefreshToken", Handler: unaryHandler(VaultService_RefreshToken_FullMethodName, VaultServiceServer.RefreshToken)},
		{MethodName: "Logout", Handler: unaryHandler(VaultService_Logout_FullMethodName, VaultServiceServer.Logout)},
		{MethodName: "Ping", Handler: unaryHandler(VaultService_Ping_FullMethodName, VaultServiceServer.Ping)},
		{MethodName: "CreateFolder", Handler: unaryHandler(VaultService_CreateFolder_FullMethodName, VaultServiceServer.CreateFolder)},
		{MethodName: "GetFolder", Handler: unaryHandler(VaultService_GetFolder_FullMethodName, VaultServiceServer.GetFolder)},
		{MethodName: "UpdateFolder", Handler: unaryHandler(VaultService_UpdateFolder_FullMethodName, VaultServiceServer.UpdateFolder)},
		{MethodName: "DeleteFolder", Handler: unaryHandler(VaultService_DeleteFolder_FullMethodName, VaultServiceServer.DeleteFolder)},
		{MethodName: "ListFolders", Handler: unaryHandler(VaultService_ListFolders_FullMethodName, VaultServiceServer.ListFolders)},
		{MethodName: "GetBackupUploadURL", Handler: unaryHandler(VaultService_GetBackupUploadURL_FullMethodName, VaultServiceServer.GetBackupUploadURL)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gophvault/vault.proto",
}

func RegisterVaultServiceServer(s grpc.ServiceRegistrar, srv VaultServiceServer) {
	s.RegisterService(&VaultService_ServiceDesc, srv)
}

// VaultServiceClient is the client API for VaultService.
type VaultServiceClient interface {
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error)
	GetSalt(ctx context.Context, in *GetSaltRequest, opts ...grpc.CallOption) (*GetSaltResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error)
	Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	CreateFolder(ctx context.Context, in *CreateFolderRequest, opts ...grpc.CallOption) (*CreateFolderResponse, error)
	GetFolder(ctx context.Context, in *GetFolderRequest, opts ...grpc.CallOption) (*GetFolderResponse, error)
	UpdateFolder(ctx context.Context, in *UpdateFolderRequest, opts ...grpc.CallOption) (*UpdateFolderResponse, error)
	DeleteFolder(ctx context.Context, in *DeleteFolderRequest, opts ...grpc.CallOption) (*DeleteFolderResponse, error)
	ListFolders(ctx context.Context, in *ListFoldersRequest, opts ...grpc.CallOption) (*ListFoldersResponse, error)
	GetBackupUploadURL(ctx context.Context, in *GetBackupUploadURLRequest, opts ...grpc.CallOption) (*GetBackupUploadURLResponse, error)
}

type vaultServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewVaultServiceClient(cc grpc.ClientConnInterface) VaultServiceClient {
	return &vaultServiceClient{cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *vaultServiceClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, VaultService_Register_FullMethodName, in, opts)
}

func (c *vaultServiceClient) GetSalt(ctx context.Context, in *GetSaltRequest, opts ...grpc.CallOption) (*GetSaltResponse, error) {
	return invoke[GetSaltResponse](ctx, c.cc, VaultService_GetSalt_FullMethodName, in, opts)
}

func (c *vaultServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, VaultService_Login_FullMethodName, in, opts)
}

func (c *vaultServiceClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error) {
	return invoke[RefreshTokenResponse](ctx, c.cc, VaultService_RefreshToken_FullMethodName, in, opts)
}

func (c *vaultServiceClient) Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error) {
	return invoke[LogoutResponse](ctx, c.cc, VaultService_Logout_FullMethodName, in, opts)
}

func (c *vaultServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, VaultService_Ping_FullMethodName, in, opts)
}

func (c *vaultServiceClient) CreateFolder(ctx context.Context, in *CreateFolderRequest, opts ...grpc.CallOption) (*CreateFolderResponse, error) {
	return invoke[CreateFolderResponse](ctx, c.cc, VaultService_CreateFolder_FullMethodName, in, opts)
}

func (c *vaultServiceClient) GetFolder(ctx context.Context, in *GetFolderRequest, opts ...grpc.CallOption) (*GetFolderResponse, error) {
	return invoke[GetFolderResponse](ctx, c.cc, VaultService_GetFolder_FullMethodName, in, opts)
}

func (c *vaultServiceClient) UpdateFolder(ctx context.Context, in *UpdateFolderRequest, opts ...grpc.CallOption) (*UpdateFolderResponse, error) {
	return invoke[UpdateFolderResponse](ctx, c.cc, VaultService_UpdateFolder_FullMethodName, in, opts)
}

func (c *vaultServiceClient) DeleteFolder(ctx context.Context, in *DeleteFolderRequest, opts ...grpc.CallOption) (*DeleteFolderResponse, error) {
	return invoke[DeleteFolderResponse](ctx, c.cc, VaultService_DeleteFolder_FullMethodName, in, opts)
}

func (c *vaultServiceClient) ListFolders(ctx context.Context, in *ListFoldersRequest, opts ...grpc.CallOption) (*ListFoldersResponse, error) {
	return invoke[ListFoldersResponse](ctx, c.cc, VaultService_ListFolders_FullMethodName, in, opts)
}

func (c *vaultServiceClient) GetBackupUploadURL(ctx context.Context, in *GetBackupUploadURLRequest, opts ...grpc.CallOption) (*GetBackupUploadURLResponse, error) {
	return invoke[GetBackupUploadURLResponse](ctx, c.cc, VaultService_GetBackupUploadURL_FullMethodName, in, opts)
}
