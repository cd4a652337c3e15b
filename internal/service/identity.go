package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"regexp"

	"github.com/dtroode/envelope-relay/internal/logger"
	"github.com/dtroode/envelope-relay/internal/model"
	"github.com/dtroode/envelope-relay/internal/password"
)

var handlePattern = regexp.MustCompile(`^[A-Za-z0-9._-]{10,20}$`)

// Identity registers identities and resolves identity references.
type Identity struct {
	store             model.IdentityStore
	hasher            model.PasswordHasher
	kind              model.IdentifierKind
	minPasswordLength int
	logger            *logger.Logger
}

func NewIdentity(
	store model.IdentityStore,
	hasher model.PasswordHasher,
	kind model.IdentifierKind,
	minPasswordLength int,
	logger *logger.Logger,
) *Identity {
	return &Identity{
		store:             store,
		hasher:            hasher,
		kind:              kind,
		minPasswordLength: minPasswordLength,
		logger:            logger,
	}
}

// Register creates an identity. An empty password registers an identity
// without a credential, which only handle deployments allow.
func (s *Identity) Register(ctx context.Context, externalID, pass string) (int64, error) {
	if err := s.ValidateExternalID(externalID); err != nil {
		return 0, err
	}
	if pass == "" && s.kind == model.IdentifierKindEmail {
		return 0, model.NewValidationError("password", "is required")
	}
	if pass != "" {
		if err := s.ValidatePassword(pass); err != nil {
			return 0, err
		}
	}

	_, err := s.store.GetByExternalID(ctx, externalID)
	if err == nil {
		s.logger.Info("Identity service: external id already registered",
			"external_id", externalID)
		return 0, model.ErrDuplicateIdentity
	}
	if !errors.Is(err, model.ErrNotFound) {
		return 0, fmt.Errorf("failed to get identity by external id: %w", err)
	}

	var hash []byte
	if pass != "" {
		hash, err = s.hasher.Hash(pass)
		if err != nil {
			return 0, fmt.Errorf("failed to hash password: %w", err)
		}
	}

	_, err = s.store.Create(ctx, model.Identity{
		ExternalID:     externalID,
		CredentialHash: hash,
	})
	if errors.Is(err, model.ErrDuplicateIdentity) {
		s.logger.Info("Identity service: concurrent registration lost",
			"external_id", externalID)
		return 0, err
	}
	if err != nil {
		return 0, fmt.Errorf("failed to create identity: %w", err)
	}

	confirmed, err := s.store.GetByExternalID(ctx, externalID)
	if errors.Is(err, model.ErrNotFound) {
		s.logger.Error("Identity service: registered identity not found on re-read",
			"external_id", externalID)
		return 0, model.ErrRegistrationFailed
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %w", model.ErrRegistrationFailed, err)
	}

	s.logger.Info("Identity service: identity registered",
		"identity_id", confirmed.ID,
		"external_id", externalID)

	return confirmed.ID, nil
}

// Resolve translates a reference into an existing identity id.
func (s *Identity) Resolve(ctx context.Context, ref model.IdentityRef) (int64, error) {
	identity, err := s.Lookup(ctx, ref)
	if err != nil {
		return 0, err
	}
	return identity.ID, nil
}

// Lookup returns the identity a reference points to.
func (s *Identity) Lookup(ctx context.Context, ref model.IdentityRef) (model.Identity, error) {
	var (
		identity model.Identity
		err      error
	)
	if ref.ID != 0 {
		identity, err = s.store.GetByID(ctx, ref.ID)
	} else {
		identity, err = s.store.GetByExternalID(ctx, ref.ExternalID)
	}
	if errors.Is(err, model.ErrNotFound) {
		return model.Identity{}, model.ErrUnknownIdentity
	}
	if err != nil {
		return model.Identity{}, fmt.Errorf("failed to resolve identity: %w", err)
	}

	return identity, nil
}

// ExternalID returns the external identifier of an identity.
func (s *Identity) ExternalID(ctx context.Context, id int64) (string, error) {
	identity, err := s.Lookup(ctx, model.RefByID(id))
	if err != nil {
		return "", err
	}
	return identity.ExternalID, nil
}

// ValidateExternalID checks the identifier against the configured kind.
func (s *Identity) ValidateExternalID(externalID string) error {
	switch s.kind {
	case model.IdentifierKindEmail:
		addr, err := mail.ParseAddress(externalID)
		if err != nil || addr.Address != externalID {
			return model.NewValidationError("external_id", "must be an email address")
		}
	default:
		if !handlePattern.MatchString(externalID) {
			return model.NewValidationError("external_id", "must be 10-20 letters, digits, '.', '_' or '-'")
		}
	}
	return nil
}

// ValidatePassword checks password length bounds.
func (s *Identity) ValidatePassword(pass string) error {
	if len(pass) < s.minPasswordLength {
		return model.NewValidationError("password", fmt.Sprintf("must be at least %d bytes", s.minPasswordLength))
	}
	if len(pass) > password.MaxLength {
		return model.NewValidationError("password", fmt.Sprintf("must be at most %d bytes", password.MaxLength))
	}
	return nil
}
