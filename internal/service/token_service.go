package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/envelope-relay/internal/logger"
	"github.com/dtroode/envelope-relay/internal/model"
)

// TokenService provides high-level operations for issuing, refreshing,
// and revoking tokens. It composes the TokenManager and RefreshTokenStore.
type TokenService struct {
	manager    model.TokenManager
	store      model.RefreshTokenStore
	refreshTTL time.Duration
	logger     *logger.Logger
	now        func() time.Time
}

// NewTokenService creates a token service. refreshTTL must match the manager's
// refresh lifetime; it is only used for the persisted expiry.
func NewTokenService(manager model.TokenManager, store model.RefreshTokenStore, refreshTTL time.Duration, logger *logger.Logger) *TokenService {
	return &TokenService{
		manager:    manager,
		store:      store,
		refreshTTL: refreshTTL,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *TokenService) Issue(ctx context.Context, identityID int64) (accessToken string, refreshToken string, err error) {
	return s.issue(ctx, identityID, nil)
}

// Refresh rotates the presented refresh token: the old one is revoked and a
// new pair is issued.
func (s *TokenService) Refresh(ctx context.Context, presentedRefresh string) (newAccess string, newRefresh string, err error) {
	identityID, jti, err := s.manager.ParseRefreshToken(presentedRefresh)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", model.ErrInvalidToken, err)
	}

	rt, err := s.store.GetByJTI(ctx, jti)
	if errors.Is(err, model.ErrNotFound) {
		return "", "", model.ErrTokenRevoked
	}
	if err != nil {
		return "", "", fmt.Errorf("failed to get refresh token: %w", err)
	}

	if err := validateRecord(rt, identityID, hashRefresh(presentedRefresh), s.now()); err != nil {
		s.logger.Info("Token service: refresh rejected",
			"identity_id", identityID,
			"error", err.Error())
		return "", "", err
	}

	if err := s.store.RevokeByJTI(ctx, jti); err != nil {
		return "", "", fmt.Errorf("revoke old refresh: %w", err)
	}

	return s.issue(ctx, identityID, &rt.JTI)
}

func (s *TokenService) RevokeByToken(ctx context.Context, presentedRefresh string) error {
	_, jti, err := s.manager.ParseRefreshToken(presentedRefresh)
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrInvalidToken, err)
	}
	return s.store.RevokeByJTI(ctx, jti)
}

func (s *TokenService) RevokeAllForIdentity(ctx context.Context, identityID int64) error {
	return s.store.RevokeAllByIdentity(ctx, identityID)
}

// GetIdentityID returns the identity an access token was issued to.
func (s *TokenService) GetIdentityID(token string) (int64, error) {
	id, err := s.manager.ParseAccessToken(token)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", model.ErrInvalidToken, err)
	}
	return id, nil
}

func (s *TokenService) issue(ctx context.Context, identityID int64, rotatedFrom *string) (string, string, error) {
	access, err := s.manager.GenerateAccessToken(identityID)
	if err != nil {
		return "", "", fmt.Errorf("issue access: %w", err)
	}

	refresh, jti, err := s.manager.GenerateRefreshToken(identityID)
	if err != nil {
		return "", "", fmt.Errorf("issue refresh: %w", err)
	}

	now := s.now()
	rt := model.RefreshToken{
		ID:             uuid.New(),
		JTI:            jti,
		IdentityID:     identityID,
		TokenHash:      hashRefresh(refresh),
		IssuedAt:       now,
		ExpiresAt:      now.Add(s.refreshTTL),
		RotatedFromJTI: rotatedFrom,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.store.Create(ctx, rt); err != nil {
		return "", "", fmt.Errorf("persist refresh: %w", err)
	}

	return access, refresh, nil
}

func hashRefresh(token string) []byte {
	h := sha256.Sum256([]byte(token))
	return h[:]
}

func validateRecord(rt model.RefreshToken, identityID int64, presentedHash []byte, now time.Time) error {
	if rt.RevokedAt != nil {
		return model.ErrTokenRevoked
	}
	if now.After(rt.ExpiresAt) {
		return model.ErrTokenExpired
	}
	if rt.IdentityID != identityID || subtle.ConstantTimeCompare(rt.TokenHash, presentedHash) != 1 {
		return model.ErrTokenMismatch
	}
	return nil
}
