package handler

import (
	"context"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/envelope-relay/internal/api/relayapi"
	"github.com/dtroode/envelope-relay/internal/logger"
	"github.com/dtroode/envelope-relay/internal/model"
)

// IdentityService registers identities.
type IdentityService interface {
	Register(ctx context.Context, externalID, password string) (int64, error)
}

// AuthService defines session and credential operations.
type AuthService interface {
	Authenticate(ctx context.Context, externalID, password string) (model.Session, error)
	Refresh(ctx context.Context, refreshToken string) (accessToken string, newRefreshToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
	ChangePassword(ctx context.Context, callerID int64, ref model.IdentityRef, oldPassword, newPassword string) error
	DeleteAccount(ctx context.Context, callerID int64, ref model.IdentityRef, password string) (int64, error)
}

// ExchangeService defines mailbox operations.
type ExchangeService interface {
	Send(ctx context.Context, callerID int64, senderRef model.IdentityRef, draft model.EnvelopeDraft) (time.Time, error)
	Fetch(ctx context.Context, callerID int64, ref model.IdentityRef, mode model.FetchMode) (model.FetchResult, error)
	Delete(ctx context.Context, callerID int64, ref model.IdentityRef, selection model.DeleteSelection) (int64, error)
}

// Relay handles gRPC endpoints of the relay service.
type Relay struct {
	relayapi.UnimplementedRelayServer
	identityService IdentityService
	authService     AuthService
	exchangeService ExchangeService
	contextManager  model.ContextManager
	logger          *logger.Logger
}

var _ relayapi.RelayServer = (*Relay)(nil)

// NewRelay creates a new Relay handler.
func NewRelay(
	identityService IdentityService,
	authService AuthService,
	exchangeService ExchangeService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Relay {
	return &Relay{
		identityService: identityService,
		authService:     authService,
		exchangeService: exchangeService,
		contextManager:  contextManager,
		logger:          logger,
	}
}

func (h *Relay) Register(ctx context.Context, req *relayapi.RegisterRequest) (*relayapi.RegisterResponse, error) {
	h.logger.Debug("Relay handler: processing register request",
		"external_id", req.ExternalID)

	id, err := h.identityService.Register(ctx, req.ExternalID, req.Password)
	if err != nil {
		return nil, h.handleError(err)
	}

	return &relayapi.RegisterResponse{ID: id}, nil
}

func (h *Relay) Authenticate(ctx context.Context, req *relayapi.AuthenticateRequest) (*relayapi.AuthenticateResponse, error) {
	h.logger.Debug("Relay handler: processing authenticate request",
		"external_id", req.ExternalID)

	session, err := h.authService.Authenticate(ctx, req.ExternalID, req.Password)
	if err != nil {
		return nil, h.handleError(err)
	}

	return &relayapi.AuthenticateResponse{
		IdentityID:   session.IdentityID,
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
	}, nil
}

func (h *Relay) Refresh(ctx context.Context, req *relayapi.RefreshRequest) (*relayapi.RefreshResponse, error) {
	if req.RefreshToken == "" {
		return nil, status.Error(codes.InvalidArgument, "refresh token is required")
	}

	access, refresh, err := h.authService.Refresh(ctx, req.RefreshToken)
	if err != nil {
		return nil, h.handleError(err)
	}

	return &relayapi.RefreshResponse{AccessToken: access, RefreshToken: refresh}, nil
}

func (h *Relay) Logout(ctx context.Context, req *relayapi.LogoutRequest) (*relayapi.LogoutResponse, error) {
	if req.RefreshToken == "" {
		return nil, status.Error(codes.InvalidArgument, "refresh token is required")
	}

	if err := h.authService.Logout(ctx, req.RefreshToken); err != nil {
		return nil, h.handleError(err)
	}

	return &relayapi.LogoutResponse{}, nil
}

func (h *Relay) Send(ctx context.Context, req *relayapi.SendRequest) (*relayapi.SendResponse, error) {
	callerID, err := h.callerID(ctx)
	if err != nil {
		return nil, err
	}

	savedAt, err := h.exchangeService.Send(ctx, callerID, toIdentityRef(req.Sender), toEnvelopeDraft(req.Envelope))
	if err != nil {
		return nil, h.handleError(err)
	}

	return &relayapi.SendResponse{SavedAt: savedAt}, nil
}

func (h *Relay) Fetch(ctx context.Context, req *relayapi.FetchRequest) (*relayapi.FetchResponse, error) {
	callerID, err := h.callerID(ctx)
	if err != nil {
		return nil, err
	}

	result, err := h.exchangeService.Fetch(ctx, callerID, toIdentityRef(req.Identity), model.FetchMode(req.Mode))
	if err != nil {
		return nil, h.handleError(err)
	}

	return &relayapi.FetchResponse{
		Messages:          fromEnvelopes(result.Envelopes),
		WatermarkAdvanced: result.WatermarkAdvanced,
	}, nil
}

func (h *Relay) DeleteMessages(ctx context.Context, req *relayapi.DeleteMessagesRequest) (*relayapi.DeleteMessagesResponse, error) {
	callerID, err := h.callerID(ctx)
	if err != nil {
		return nil, err
	}

	deleted, err := h.exchangeService.Delete(ctx, callerID, toIdentityRef(req.Identity), model.DeleteSelection{
		All: req.All,
		IDs: req.IDs,
	})
	if err != nil {
		return nil, h.handleError(err)
	}

	return &relayapi.DeleteMessagesResponse{DeletedCount: deleted}, nil
}

func (h *Relay) ChangePassword(ctx context.Context, req *relayapi.ChangePasswordRequest) (*relayapi.ChangePasswordResponse, error) {
	callerID, err := h.callerID(ctx)
	if err != nil {
		return nil, err
	}

	err = h.authService.ChangePassword(ctx, callerID, toIdentityRef(req.Identity), req.OldPassword, req.NewPassword)
	if err != nil {
		return nil, h.handleError(err)
	}

	return &relayapi.ChangePasswordResponse{}, nil
}

func (h *Relay) DeleteAccount(ctx context.Context, req *relayapi.DeleteAccountRequest) (*relayapi.DeleteAccountResponse, error) {
	callerID, err := h.callerID(ctx)
	if err != nil {
		return nil, err
	}

	deletedID, err := h.authService.DeleteAccount(ctx, callerID, toIdentityRef(req.Identity), req.Password)
	if err != nil {
		return nil, h.handleError(err)
	}

	return &relayapi.DeleteAccountResponse{DeletedIdentityID: deletedID}, nil
}

func (h *Relay) callerID(ctx context.Context) (int64, error) {
	id, ok := h.contextManager.GetIdentityIDFromContext(ctx)
	if !ok {
		return 0, status.Error(codes.Unauthenticated, "missing caller identity")
	}
	return id, nil
}

func (h *Relay) handleError(err error) error {
	mapped := handleError(err)
	if status.Code(mapped) == codes.Internal {
		h.logger.Error("Relay handler: request failed",
			"error", err.Error())
	}
	return mapped
}
