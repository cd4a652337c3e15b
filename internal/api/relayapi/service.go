package relayapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "relay.v1.Relay"

const (
	Relay_Register_FullMethodName       = "/relay.v1.Relay/Register"
	Relay_Authenticate_FullMethodName   = "/relay.v1.Relay/Authenticate"
	Relay_Refresh_FullMethodName        = "/relay.v1.Relay/Refresh"
	Relay_Logout_FullMethodName         = "/relay.v1.Relay/Logout"
	Relay_Send_FullMethodName           = "/relay.v1.Relay/Send"
	Relay_Fetch_FullMethodName          = "/relay.v1.Relay/Fetch"
	Relay_DeleteMessages_FullMethodName = "/relay.v1.Relay/DeleteMessages"
	Relay_ChangePassword_FullMethodName = "/relay.v1.Relay/ChangePassword"
	Relay_DeleteAccount_FullMethodName  = "/relay.v1.Relay/DeleteAccount"
)

// RelayServer is the server API for the relay service.
type RelayServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Authenticate(context.Context, *AuthenticateRequest) (*AuthenticateResponse, error)
	Refresh(context.Context, *RefreshRequest) (*RefreshResponse, error)
	Logout(context.Context, *LogoutRequest) (*LogoutResponse, error)
	Send(context.Context, *SendRequest) (*SendResponse, error)
	Fetch(context.Context, *FetchRequest) (*FetchResponse, error)
	DeleteMessages(context.Context, *DeleteMessagesRequest) (*DeleteMessagesResponse, error)
	ChangePassword(context.Context, *ChangePasswordRequest) (*ChangePasswordResponse, error)
	DeleteAccount(context.Context, *DeleteAccountRequest) (*DeleteAccountResponse, error)
}

// UnimplementedRelayServer can be embedded to have forward compatible implementations.
type UnimplementedRelayServer struct{}

func (UnimplementedRelayServer) Register(context.Context, *RegisterRequest) (*RegisterResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Register not implemented")
}
func (UnimplementedRelayServer) Authenticate(context.Context, *AuthenticateRequest) (*AuthenticateResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Authenticate not implemented")
}
func (UnimplementedRelayServer) Refresh(context.Context, *RefreshRequest) (*RefreshResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Refresh not implemented")
}
func (UnimplementedRelayServer) Logout(context.Context, *LogoutRequest) (*LogoutResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Logout not implemented")
}
func (UnimplementedRelayServer) Send(context.Context, *SendRequest) (*SendResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Send not implemented")
}
func (UnimplementedRelayServer) Fetch(context.Context, *FetchRequest) (*FetchResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Fetch not implemented")
}
func (UnimplementedRelayServer) DeleteMessages(context.Context, *DeleteMessagesRequest) (*DeleteMessagesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteMessages not implemented")
}
func (UnimplementedRelayServer) ChangePassword(context.Context, *ChangePasswordRequest) (*ChangePasswordResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ChangePassword not implemented")
}
func (UnimplementedRelayServer) DeleteAccount(context.Context, *DeleteAccountRequest) (*DeleteAccountResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteAccount not implemented")
}

// RegisterRelayServer registers srv on s.
func RegisterRelayServer(s grpc.ServiceRegistrar, srv RelayServer) {
	s.RegisterService(&Relay_ServiceDesc, srv)
}

// unaryHandler adapts a typed server method to grpc.MethodHandler. Request
// decoding failures, unknown fields included, are reported as InvalidArgument.
func unaryHandler[Req, Resp any](fullMethod string, call func(RelayServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "malformed request: %s", status.Convert(err).Message())
		}
		if interceptor == nil {
			return call(srv.(RelayServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(RelayServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Relay_ServiceDesc is the grpc.ServiceDesc for the relay service.
var Relay_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RelayServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unaryHandler(Relay_Register_FullMethodName, RelayServer.Register)},
		{MethodName: "Authenticate", Handler: unaryHandler(Relay_Authenticate_FullMethodName, RelayServer.Authenticate)},
		{MethodName: "Refresh", Handler: unaryHandler(Relay_Refresh_FullMethodName, RelayServer.Refresh)},
		{MethodName: "Logout", Handler: unaryHandler(Relay_Logout_FullMethodName, RelayServer.Logout)},
		{MethodName: "Send", Handler: unaryHandler(Relay_Send_FullMethodName, RelayServer.Send)},
		{MethodName: "Fetch", Handler: unaryHandler(Relay_Fetch_FullMethodName, RelayServer.Fetch)},
		{MethodName: "DeleteMessages", Handler: unaryHandler(Relay_DeleteMessages_FullMethodName, RelayServer.DeleteMessages)},
		{MethodName: "ChangePassword", Handler: unaryHandler(Relay_ChangePassword_FullMethodName, RelayServer.ChangePassword)},
		{MethodName: "DeleteAccount", Handler: unaryHandler(Relay_DeleteAccount_FullMethodName, RelayServer.DeleteAccount)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "relay/v1/relay",
}

// RelayClient is the client API for the relay service.
type RelayClient interface {
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error)
	Authenticate(ctx context.Context, in *AuthenticateRequest, opts ...grpc.CallOption) (*AuthenticateResponse, error)
	Refresh(ctx context.Context, in *RefreshRequest, opts ...grpc.CallOption) (*RefreshResponse, error)
	Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error)
	Send(ctx context.Context, in *SendRequest, opts ...grpc.CallOption) (*SendResponse, error)
	Fetch(ctx context.Context, in *FetchRequest, opts ...grpc.CallOption) (*FetchResponse, error)
	DeleteMessages(ctx context.Context, in *DeleteMessagesRequest, opts ...grpc.CallOption) (*DeleteMessagesResponse, error)
	ChangePassword(ctx context.Context, in *ChangePasswordRequest, opts ...grpc.CallOption) (*ChangePasswordResponse, error)
	DeleteAccount(ctx context.Context, in *DeleteAccountRequest, opts ...grpc.CallOption) (*DeleteAccountResponse, error)
}

type relayClient struct {
	cc grpc.ClientConnInterface
}

// NewRelayClient returns a client whose calls use the CBOR content subtype.
func NewRelayClient(cc grpc.ClientConnInterface) RelayClient {
	return &relayClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *relayClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, Relay_Register_FullMethodName, in, opts)
}

func (c *relayClient) Authenticate(ctx context.Context, in *AuthenticateRequest, opts ...grpc.CallOption) (*AuthenticateResponse, error) {
	return invoke[AuthenticateResponse](ctx, c.cc, Relay_Authenticate_FullMethodName, in, opts)
}

func (c *relayClient) Refresh(ctx context.Context, in *RefreshRequest, opts ...grpc.CallOption) (*RefreshResponse, error) {
	return invoke[RefreshResponse](ctx, c.cc, Relay_Refresh_FullMethodName, in, opts)
}

func (c *relayClient) Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error) {
	return invoke[LogoutResponse](ctx, c.cc, Relay_Logout_FullMethodName, in, opts)
}

func (c *relayClient) Send(ctx context.Context, in *SendRequest, opts ...grpc.CallOption) (*SendResponse, error) {
	return invoke[SendResponse](ctx, c.cc, Relay_Send_FullMethodName, in, opts)
}

func (c *relayClient) Fetch(ctx context.Context, in *FetchRequest, opts ...grpc.CallOption) (*FetchResponse, error) {
	return invoke[FetchResponse](ctx, c.cc, Relay_Fetch_FullMethodName, in, opts)
}

func (c *relayClient) DeleteMessages(ctx context.Context, in *DeleteMessagesRequest, opts ...grpc.CallOption) (*DeleteMessagesResponse, error) {
	return invoke[DeleteMessagesResponse](ctx, c.cc, Relay_DeleteMessages_FullMethodName, in, opts)
}

func (c *relayClient) ChangePassword(ctx context.Context, in *ChangePasswordRequest, opts ...grpc.CallOption) (*ChangePasswordResponse, error) {
	return invoke[ChangePasswordResponse](ctx, c.cc, Relay_ChangePassword_FullMethodName, in, opts)
}

func (c *relayClient) DeleteAccount(ctx context.Context, in *DeleteAccountRequest, opts ...grpc.CallOption) (*DeleteAccountResponse, error) {
	return invoke[DeleteAccountResponse](ctx, c.cc, Relay_DeleteAccount_FullMethodName, in, opts)
}
