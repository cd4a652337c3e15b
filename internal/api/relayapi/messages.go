package relayapi

import "time"

// IdentityRef carries exactly one of ID or ExternalID.
type IdentityRef struct {
	ID         int64  `cbor:"id,omitempty"`
	ExternalID string `cbor:"external_id,omitempty"`
}

type RegisterRequest struct {
	ExternalID string `cbor:"external_id"`
	Password   string `cbor:"password,omitempty"`
}

type RegisterResponse struct {
	ID int64 `cbor:"id"`
}

type AuthenticateRequest struct {
	ExternalID string `cbor:"external_id"`
	Password   string `cbor:"password"`
}

type AuthenticateResponse struct {
	IdentityID   int64  `cbor:"identity_id"`
	AccessToken  string `cbor:"access_token"`
	RefreshToken string `cbor:"refresh_token"`
}

type RefreshRequest struct {
	RefreshToken string `cbor:"refresh_token"`
}

type RefreshResponse struct {
	AccessToken  string `cbor:"access_token"`
	RefreshToken string `cbor:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `cbor:"refresh_token"`
}

type LogoutResponse struct{}

// EnvelopeDraft is the sender-controlled part of an envelope.
type EnvelopeDraft struct {
	Recipient        IdentityRef `cbor:"recipient"`
	UniqueID         string      `cbor:"unique_id"`
	SentFromSenderAt time.Time   `cbor:"sent_from_sender_at"`
	IsEncrypted      *bool       `cbor:"is_encrypted"`
	EncryptedID      string      `cbor:"encrypted_id,omitempty"`
	HMAC             []byte      `cbor:"hmac,omitempty"`
	Body             []byte      `cbor:"body"`
}

type SendRequest struct {
	Sender   IdentityRef   `cbor:"sender"`
	Envelope EnvelopeDraft `cbor:"envelope"`
}

type SendResponse struct {
	SavedAt time.Time `cbor:"saved_at"`
}

// Envelope is a stored envelope as returned to its recipient.
type Envelope struct {
	ID               int64     `cbor:"id"`
	SenderID         int64     `cbor:"sender_id"`
	RecipientID      int64     `cbor:"recipient_id"`
	UniqueID         string    `cbor:"unique_id"`
	SentFromSenderAt time.Time `cbor:"sent_from_sender_at"`
	IsEncrypted      bool      `cbor:"is_encrypted"`
	EncryptedID      string    `cbor:"encrypted_id,omitempty"`
	HMAC             []byte    `cbor:"hmac,omitempty"`
	Body             []byte    `cbor:"body"`
	SavedAt          time.Time `cbor:"saved_at"`
}

// Fetch modes.
const (
	FetchModeIncremental = "incremental"
	FetchModeAll         = "all"
)

type FetchRequest struct {
	Identity IdentityRef `cbor:"identity"`
	Mode     string      `cbor:"mode,omitempty"`
}

type FetchResponse struct {
	Messages          []Envelope `cbor:"messages"`
	WatermarkAdvanced bool       `cbor:"watermark_advanced"`
}

type DeleteMessagesRequest struct {
	Identity IdentityRef `cbor:"identity"`
	IDs      []int64     `cbor:"ids,omitempty"`
	All      bool        `cbor:"all,omitempty"`
}

type DeleteMessagesResponse struct {
	DeletedCount int64 `cbor:"deleted_count"`
}

type ChangePasswordRequest struct {
	Identity    IdentityRef `cbor:"identity"`
	OldPassword string      `cbor:"old_password,omitempty"`
	NewPassword string      `cbor:"new_password"`
}

type ChangePasswordResponse struct{}

type DeleteAccountRequest struct {
	Identity IdentityRef `cbor:"identity"`
	Password string      `cbor:"password,omitempty"`
}

type DeleteAccountResponse struct {
	DeletedIdentityID int64 `cbor:"deleted_identity_id"`
}
