package model

import (
	"context"
	"time"
)

// EnvelopeStore defines persistence operations for envelopes.
type EnvelopeStore interface {
	Create(ctx context.Context, envelope Envelope) (Envelope, error)
	ListByRecipient(ctx context.Context, recipientID int64, savedSince *time.Time) ([]Envelope, error)
	DeleteByIDs(ctx context.Context, recipientID int64, ids []int64) (int64, error)
	DeleteAllByRecipient(ctx context.Context, recipientID int64) (int64, error)
	SyncPoint(ctx context.Context, recipientID int64) (time.Time, error)
}

// Envelope is one opaque encrypted message stored for its recipient.
type Envelope struct {
	ID               int64
	SenderID         int64
	RecipientID      int64
	UniqueID         string
	SentFromSenderAt time.Time
	IsEncrypted      bool
	EncryptedID      string
	HMAC             []byte
	Body             []byte
	// SavedAt is assigned by the store on Create.
	SavedAt          time.Time
}

// EnvelopeDraft is what a sender submits. Server-assigned fields are absent.
type EnvelopeDraft struct {
	Recipient        IdentityRef
	UniqueID         string
	SentFromSenderAt time.Time
	IsEncrypted      *bool
	EncryptedID      string
	HMAC             []byte
	Body             []byte
}

// FetchMode selects between incremental and full mailbox reads.
type FetchMode string

const (
	// FetchModeIncremental returns envelopes saved at or after the watermark.
	FetchModeIncremental FetchMode = "incremental"
	// FetchModeAll returns the whole mailbox.
	FetchModeAll FetchMode = "all"
)

// FetchResult is the outcome of a mailbox read.
type FetchResult struct {
	Envelopes []Envelope
	// WatermarkAdvanced is false when the read succeeded but the watermark
	// could not be stored.
	WatermarkAdvanced bool
}

// DeleteSelection picks the envelopes removed from a mailbox.
type DeleteSelection struct {
	All bool
	IDs []int64
}
