package model

import (
	"context"
	"time"
)

// IdentityStore defines persistence operations for identities.
type IdentityStore interface {
	Create(ctx context.Context, identity Identity) (Identity, error)
	GetByID(ctx context.Context, id int64) (Identity, error)
	GetByExternalID(ctx context.Context, externalID string) (Identity, error)
	UpdateCredentialHash(ctx context.Context, id int64, hash []byte) error
	GetWatermark(ctx context.Context, id int64) (time.Time, error)
	SetWatermark(ctx context.Context, id int64, at time.Time) error
}

// AccountStore removes an identity together with the data it owns.
type AccountStore interface {
	Delete(ctx context.Context, id int64) (deletedMessages int64, err error)
}

// Identity is a registered user of the relay.
type Identity struct {
	ID                    int64
	ExternalID            string
	CredentialHash        []byte
	RegisteredAt          time.Time
	MessagesLastCheckedAt time.Time
}

// HasCredential reports whether the identity can authenticate with a password.
func (i Identity) HasCredential() bool {
	return len(i.CredentialHash) > 0
}

// IdentifierKind selects how external identifiers look in a deployment.
type IdentifierKind string

const (
	// IdentifierKindHandle is a 10-20 character contact handle.
	IdentifierKindHandle IdentifierKind = "handle"
	// IdentifierKindEmail is an RFC 5322 email address.
	IdentifierKindEmail IdentifierKind = "email"
)

// IdentityRef addresses an identity by exactly one of its id or external identifier.
type IdentityRef struct {
	ID         int64
	ExternalID string
}

// RefByID returns a reference to the identity with the given id.
func RefByID(id int64) IdentityRef {
	return IdentityRef{ID: id}
}

// RefByExternalID returns a reference to the identity with the given external identifier.
func RefByExternalID(externalID string) IdentityRef {
	return IdentityRef{ExternalID: externalID}
}

// Validate checks that exactly one of the fields is set.
func (r IdentityRef) Validate(field string) error {
	switch {
	case r.ID != 0 && r.ExternalID != "":
		return NewValidationError(field, "either id or external id must be set, not both")
	case r.ID == 0 && r.ExternalID == "":
		return NewValidationError(field, "id or external id is required")
	case r.ID < 0:
		return NewValidationError(field, "id must be positive")
	}
	return nil
}

// Session is the result of a successful authentication.
type Session struct {
	IdentityID   int64
	AccessToken  string
	RefreshToken string
}

// IdentityResolver translates identity references into ids.
type IdentityResolver interface {
	Resolve(ctx context.Context, ref IdentityRef) (int64, error)
}

// Authorizer decides whether a caller may act as the referenced identity.
type Authorizer interface {
	AuthorizeRef(ctx context.Context, callerID int64, ref IdentityRef) (int64, error)
}
