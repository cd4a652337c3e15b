package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dtroode/envelope-relay/internal/logger"
	"github.com/dtroode/envelope-relay/internal/model"
)

// dummyPassword is hashed once and compared against when an identifier has
// no credential, so unknown and known identifiers take the same time.
const dummyPassword = "envelope-relay-dummy-credential"

// Auth is the authorization gate: it authenticates identities, decides who
// may act on which mailbox and manages the credential lifecycle.
type Auth struct {
	identities   *Identity
	store        model.IdentityStore
	accounts     model.AccountStore
	hasher       model.PasswordHasher
	tokenService *TokenService
	logger       *logger.Logger
	dummyHash    func() ([]byte, error)
}

var _ model.Authorizer = (*Auth)(nil)

func NewAuth(
	identities *Identity,
	store model.IdentityStore,
	accounts model.AccountStore,
	hasher model.PasswordHasher,
	tokenService *TokenService,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		identities:   identities,
		store:        store,
		accounts:     accounts,
		hasher:       hasher,
		tokenService: tokenService,
		logger:       logger,
		dummyHash: sync.OnceValues(func() ([]byte, error) {
			return hasher.Hash(dummyPassword)
		}),
	}
}

// Authenticate verifies the password of an identity and opens a session.
// Unknown identifiers, identities without a credential and wrong passwords
// all yield model.ErrInvalidCredential.
func (a *Auth) Authenticate(ctx context.Context, externalID, password string) (model.Session, error) {
	a.logger.Debug("Auth service: authenticating",
		"external_id", externalID)

	identity, err := a.store.GetByExternalID(ctx, externalID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.Session{}, fmt.Errorf("failed to get identity by external id: %w", err)
	}

	if err := a.verifyPassword(identity, password); err != nil {
		if errors.Is(err, model.ErrInvalidCredential) {
			a.logger.Info("Auth service: authentication failed",
				"external_id", externalID)
		}
		return model.Session{}, err
	}

	access, refresh, err := a.tokenService.Issue(ctx, identity.ID)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: authenticated",
		"identity_id", identity.ID)

	return model.Session{
		IdentityID:   identity.ID,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// Authorize grants access only to the caller's own identity.
func (a *Auth) Authorize(callerID, targetID int64) error {
	if callerID <= 0 || callerID != targetID {
		return model.ErrAuthorizationDenied
	}
	return nil
}

// AuthorizeRef resolves ref and authorizes the caller for it. A target that
// does not resolve is denied rather than reported missing.
func (a *Auth) AuthorizeRef(ctx context.Context, callerID int64, ref model.IdentityRef) (int64, error) {
	if err := ref.Validate("identity"); err != nil {
		return 0, err
	}
	if ref.ID != 0 {
		if err := a.Authorize(callerID, ref.ID); err != nil {
			return 0, err
		}
	}

	targetID, err := a.identities.Resolve(ctx, ref)
	if errors.Is(err, model.ErrUnknownIdentity) {
		return 0, model.ErrAuthorizationDenied
	}
	if err != nil {
		return 0, err
	}

	if err := a.Authorize(callerID, targetID); err != nil {
		a.logger.Info("Auth service: access denied",
			"caller_id", callerID,
			"target_id", targetID)
		return 0, err
	}

	return targetID, nil
}

// ChangePassword replaces the credential of the referenced identity and
// revokes all of its refresh tokens.
func (a *Auth) ChangePassword(ctx context.Context, callerID int64, ref model.IdentityRef, oldPassword, newPassword string) error {
	identityID, err := a.AuthorizeRef(ctx, callerID, ref)
	if err != nil {
		return err
	}

	if err := a.identities.ValidatePassword(newPassword); err != nil {
		return err
	}

	identity, err := a.identities.Lookup(ctx, model.RefByID(identityID))
	if err != nil {
		return denyVanished(err)
	}
	if err := a.verifyOwnPassword(identity, oldPassword); err != nil {
		return err
	}

	hash, err := a.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := a.store.UpdateCredentialHash(ctx, identityID, hash); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrAuthorizationDenied
		}
		return fmt.Errorf("failed to update credential: %w", err)
	}

	if err := a.tokenService.RevokeAllForIdentity(ctx, identityID); err != nil {
		a.logger.Error("Auth service: failed to revoke sessions after password change",
			"identity_id", identityID,
			"error", err.Error())
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}

	a.logger.Info("Auth service: password changed",
		"identity_id", identityID)

	return nil
}

// DeleteAccount removes the referenced identity, its mailbox and its
// sessions after re-verifying the password.
func (a *Auth) DeleteAccount(ctx context.Context, callerID int64, ref model.IdentityRef, password string) (int64, error) {
	identityID, err := a.AuthorizeRef(ctx, callerID, ref)
	if err != nil {
		return 0, err
	}

	identity, err := a.identities.Lookup(ctx, model.RefByID(identityID))
	if err != nil {
		return 0, denyVanished(err)
	}
	if err := a.verifyOwnPassword(identity, password); err != nil {
		return 0, err
	}

	deleted, err := a.accounts.Delete(ctx, identityID)
	if err != nil {
		return 0, denyVanished(fmt.Errorf("failed to delete account: %w", err))
	}

	a.logger.Info("Auth service: account deleted",
		"identity_id", identityID,
		"deleted_messages", deleted)

	return identityID, nil
}

// Refresh rotates a refresh token.
func (a *Auth) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	return a.tokenService.Refresh(ctx, refreshToken)
}

// Logout revokes a refresh token.
func (a *Auth) Logout(ctx context.Context, refreshToken string) error {
	return a.tokenService.RevokeByToken(ctx, refreshToken)
}

// IdentityFromToken returns the identity an access token belongs to.
func (a *Auth) IdentityFromToken(ctx context.Context, token string) (int64, error) {
	return a.tokenService.GetIdentityID(token)
}

// IdentityFromHandle resolves a bearer handle in handle-capability deployments.
// Only identities registered without a password can be reached this way;
// the others need a session token.
func (a *Auth) IdentityFromHandle(ctx context.Context, handle string) (int64, error) {
	identity, err := a.identities.Lookup(ctx, model.RefByExternalID(handle))
	if errors.Is(err, model.ErrUnknownIdentity) {
		return 0, model.ErrInvalidCredential
	}
	if err != nil {
		return 0, err
	}
	if identity.HasCredential() {
		a.logger.Info("Auth service: handle presented for identity with a credential",
			"identity_id", identity.ID)
		return 0, model.ErrInvalidCredential
	}
	return identity.ID, nil
}

// verifyPassword compares against the dummy hash when identity has no credential.
func (a *Auth) verifyPassword(identity model.Identity, password string) error {
	if !identity.HasCredential() {
		dummy, err := a.dummyHash()
		if err != nil {
			return fmt.Errorf("failed to prepare dummy hash: %w", err)
		}
		_ = a.hasher.Compare(dummy, password)
		return model.ErrInvalidCredential
	}

	return a.hasher.Compare(identity.CredentialHash, password)
}

// verifyOwnPassword is verifyPassword for an already authorized caller. An
// identity without a credential is accepted when no password is presented.
func (a *Auth) verifyOwnPassword(identity model.Identity, password string) error {
	if !identity.HasCredential() && password == "" {
		return nil
	}
	return a.verifyPassword(identity, password)
}
