package middleware

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dtroode/envelope-relay/internal/logger"
	"github.com/dtroode/envelope-relay/internal/model"
)

// HandleMetadataKey carries the caller's handle in handle-capability deployments.
const HandleMetadataKey = "x-relay-handle"

// Authenticator resolves callers from bearer tokens or handles.
type Authenticator interface {
	IdentityFromToken(ctx context.Context, token string) (int64, error)
	IdentityFromHandle(ctx context.Context, handle string) (int64, error)
}

// Authenticate validates bearer tokens and injects the identity ID into context.
type Authenticate struct {
	authenticator    Authenticator
	contextManager   model.ContextManager
	handleCapability bool
	logger           *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance. With
// handleCapability set, a request without a bearer token may identify its
// caller by handle alone.
func NewAuthenticate(authenticator Authenticator, contextManager model.ContextManager, handleCapability bool, logger *logger.Logger) *Authenticate {
	return &Authenticate{
		authenticator:    authenticator,
		contextManager:   contextManager,
		handleCapability: handleCapability,
		logger:           logger,
	}
}

// AuthFunc parses the authorization metadata and returns a context with the identity ID.
func (m *Authenticate) AuthFunc(ctx context.Context) (context.Context, error) {
	md, _ := metadata.FromIncomingContext(ctx)

	identityID, err := m.authenticate(ctx, md)
	if err != nil {
		if _, ok := status.FromError(err); ok {
			return nil, err
		}
		m.logger.Debug("Authenticate middleware: request rejected",
			"error", err.Error())
		return nil, status.Error(codes.Unauthenticated, err.Error())
	}

	return m.contextManager.SetIdentityIDToContext(ctx, identityID), nil
}

func (m *Authenticate) authenticate(ctx context.Context, md metadata.MD) (int64, error) {
	if headers := md.Get("authorization"); len(headers) > 0 {
		token, ok := strings.CutPrefix(headers[0], "Bearer ")
		if !ok || token == "" {
			return 0, errors.New("malformed authorization token")
		}
		id, err := m.authenticator.IdentityFromToken(ctx, token)
		if err != nil || id <= 0 {
			return 0, errors.New("invalid authorization token")
		}
		return id, nil
	}

	if m.handleCapability {
		if handles := md.Get(HandleMetadataKey); len(handles) > 0 && handles[0] != "" {
			id, err := m.authenticator.IdentityFromHandle(ctx, handles[0])
			if errors.Is(err, model.ErrInvalidCredential) {
				return 0, errors.New("unknown handle")
			}
			if err != nil {
				m.logger.Error("Authenticate middleware: failed to resolve handle",
					"error", err.Error())
				return 0, status.Error(codes.Internal, "internal server error")
			}
			return id, nil
		}
	}

	return 0, errors.New("missing authorization token")
}
