package router

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/envelope-relay/internal/api/grpc/handler"
	"github.com/dtroode/envelope-relay/internal/api/grpc/middleware"
	"github.com/dtroode/envelope-relay/internal/api/relayapi"
	"github.com/dtroode/envelope-relay/internal/logger"
	"github.com/dtroode/envelope-relay/internal/model"
)

// publicMethods are reachable without a session.
var publicMethods = map[string]struct{}{
	relayapi.Relay_Register_FullMethodName:     {},
	relayapi.Relay_Authenticate_FullMethodName: {},
	relayapi.Relay_Refresh_FullMethodName:      {},
	relayapi.Relay_Logout_FullMethodName:       {},
}

// Router represents a gRPC router for relay operations.
// It manages gRPC service registration and middleware configuration.
type Router struct {
	identityService  handler.IdentityService
	authService      handler.AuthService
	exchangeService  handler.ExchangeService
	authenticator    middleware.Authenticator
	contextManager   model.ContextManager
	handleCapability bool
	logger           *logger.Logger
}

// New creates new gRPC Router instance.
func New(
	identityService handler.IdentityService,
	authService handler.AuthService,
	exchangeService handler.ExchangeService,
	authenticator middleware.Authenticator,
	contextManager model.ContextManager,
	handleCapability bool,
	logger *logger.Logger,
) *Router {
	return &Router{
		identityService:  identityService,
		authService:      authService,
		exchangeService:  exchangeService,
		authenticator:    authenticator,
		contextManager:   contextManager,
		handleCapability: handleCapability,
		logger:           logger,
	}
}

func requiresSession(_ context.Context, c interceptors.CallMeta) bool {
	_, public := publicMethods[c.FullMethod()]
	return !public
}

// Register builds a gRPC server with logging, panic recovery and
// authentication interceptors and registers the relay service on it.
func (r *Router) Register(opts ...grpc.ServerOption) *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.authenticator, r.contextManager, r.handleCapability, r.logger)
	recoveryOpt := recovery.WithRecoveryHandler(func(p any) error {
		r.logger.Error("gRPC handler panicked",
			"panic", p)
		return status.Error(codes.Internal, "internal server error")
	})

	opts = append(opts,
		grpc.ChainUnaryInterceptor(
			logging.HandleGRPC,
			recovery.UnaryServerInterceptor(recoveryOpt),
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(requiresSession),
			),
		),
	)

	s := grpc.NewServer(opts...)
	relayapi.RegisterRelayServer(s, handler.NewRelay(
		r.identityService,
		r.authService,
		r.exchangeService,
		r.contextManager,
		r.logger,
	))

	return s
}
