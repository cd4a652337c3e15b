package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dtroode/envelope-relay/internal/logger"
	"github.com/dtroode/envelope-relay/internal/model"
)

const maxUniqueIDLength = 255

// Exchange stores envelopes for their recipients and hands them out again.
type Exchange struct {
	authorizer   model.Authorizer
	resolver     model.IdentityResolver
	envelopes    model.EnvelopeStore
	watermark    *Watermark
	maxBodyBytes int
	logger       *logger.Logger
}

func NewExchange(
	authorizer model.Authorizer,
	resolver model.IdentityResolver,
	envelopes model.EnvelopeStore,
	watermark *Watermark,
	maxBodyBytes int,
	logger *logger.Logger,
) *Exchange {
	return &Exchange{
		authorizer:   authorizer,
		resolver:     resolver,
		envelopes:    envelopes,
		watermark:    watermark,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
}

// Send validates the draft, resolves both parties and stores the envelope.
// It returns the server time the envelope was saved at.
func (s *Exchange) Send(ctx context.Context, callerID int64, senderRef model.IdentityRef, draft model.EnvelopeDraft) (time.Time, error) {
	if err := senderRef.Validate("sender"); err != nil {
		return time.Time{}, err
	}
	if err := s.validateDraft(draft); err != nil {
		return time.Time{}, err
	}

	senderID, err := s.authorizer.AuthorizeRef(ctx, callerID, senderRef)
	if err != nil {
		return time.Time{}, err
	}

	recipientID, err := s.resolver.Resolve(ctx, draft.Recipient)
	if err != nil {
		if errors.Is(err, model.ErrUnknownIdentity) {
			s.logger.Info("Exchange service: unknown recipient",
				"sender_id", senderID)
		}
		return time.Time{}, err
	}

	if senderID == recipientID {
		return time.Time{}, model.ErrSelfSend
	}

	envelope := model.Envelope{
		SenderID:         senderID,
		RecipientID:      recipientID,
		UniqueID:         draft.UniqueID,
		SentFromSenderAt: draft.SentFromSenderAt,
		IsEncrypted:      *draft.IsEncrypted,
		EncryptedID:      draft.EncryptedID,
		HMAC:             draft.HMAC,
		Body:             draft.Body,
	}

	saved, err := s.envelopes.Create(ctx, envelope)
	if errors.Is(err, model.ErrDuplicateMessage) {
		s.logger.Info("Exchange service: duplicate envelope ignored",
			"sender_id", senderID,
			"unique_id", draft.UniqueID)
		return time.Time{}, err
	}
	if errors.Is(err, model.ErrUnknownIdentity) {
		return time.Time{}, err
	}
	if err != nil {
		s.logger.Error("Exchange service: failed to store envelope",
			"sender_id", senderID,
			"recipient_id", recipientID,
			"error", err.Error())
		return time.Time{}, fmt.Errorf("failed to create envelope: %w", err)
	}

	s.logger.Debug("Exchange service: envelope stored",
		"envelope_id", saved.ID,
		"sender_id", senderID,
		"recipient_id", recipientID)

	return saved.SavedAt, nil
}

// Fetch returns the caller's mailbox and advances its watermark to the
// mailbox sync point taken before the read.
func (s *Exchange) Fetch(ctx context.Context, callerID int64, ref model.IdentityRef, mode model.FetchMode) (model.FetchResult, error) {
	if mode == "" {
		mode = model.FetchModeIncremental
	}
	if mode != model.FetchModeIncremental && mode != model.FetchModeAll {
		return model.FetchResult{}, model.NewValidationError("mode", "must be incremental or all")
	}

	recipientID, err := s.authorizer.AuthorizeRef(ctx, callerID, ref)
	if err != nil {
		return model.FetchResult{}, err
	}

	startedAt, err := s.envelopes.SyncPoint(ctx, recipientID)
	if err != nil {
		return model.FetchResult{}, denyVanished(fmt.Errorf("failed to sync mailbox: %w", err))
	}

	var since *time.Time
	if mode == model.FetchModeIncremental {
		wm, err := s.watermark.Current(ctx, recipientID)
		if err != nil {
			return model.FetchResult{}, denyVanished(err)
		}
		since = &wm
	}

	envelopes, err := s.envelopes.ListByRecipient(ctx, recipientID, since)
	if err != nil {
		return model.FetchResult{}, fmt.Errorf("failed to list envelopes: %w", err)
	}

	result := model.FetchResult{Envelopes: envelopes, WatermarkAdvanced: true}
	if err := s.watermark.Advance(ctx, recipientID, startedAt); err != nil {
		s.logger.Error("Exchange service: failed to advance watermark",
			"recipient_id", recipientID,
			"error", err.Error())
		result.WatermarkAdvanced = false
	}

	return result, nil
}

// Delete removes envelopes from the caller's mailbox and returns how many were removed.
func (s *Exchange) Delete(ctx context.Context, callerID int64, ref model.IdentityRef, selection model.DeleteSelection) (int64, error) {
	if !selection.All && len(selection.IDs) == 0 {
		return 0, model.NewValidationError("ids", "must not be empty unless all is set")
	}
	if selection.All && len(selection.IDs) > 0 {
		return 0, model.NewValidationError("ids", "must be empty when all is set")
	}
	for _, id := range selection.IDs {
		if id <= 0 {
			return 0, model.NewValidationError("ids", "must be positive")
		}
	}

	recipientID, err := s.authorizer.AuthorizeRef(ctx, callerID, ref)
	if err != nil {
		return 0, err
	}

	var deleted int64
	if selection.All {
		deleted, err = s.envelopes.DeleteAllByRecipient(ctx, recipientID)
	} else {
		deleted, err = s.envelopes.DeleteByIDs(ctx, recipientID, selection.IDs)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to delete envelopes: %w", err)
	}

	s.logger.Debug("Exchange service: envelopes deleted",
		"recipient_id", recipientID,
		"count", deleted)

	return deleted, nil
}

func (s *Exchange) validateDraft(draft model.EnvelopeDraft) error {
	if err := draft.Recipient.Validate("recipient"); err != nil {
		return err
	}
	if strings.TrimSpace(draft.UniqueID) == "" {
		return model.NewValidationError("unique_id", "is required")
	}
	if len(draft.UniqueID) > maxUniqueIDLength {
		return model.NewValidationError("unique_id", fmt.Sprintf("must be at most %d bytes", maxUniqueIDLength))
	}
	if draft.SentFromSenderAt.IsZero() {
		return model.NewValidationError("sent_from_sender_at", "is required")
	}
	if draft.IsEncrypted == nil {
		return model.NewValidationError("is_encrypted", "is required")
	}
	if !*draft.IsEncrypted {
		return model.NewValidationError("is_encrypted", "must be set")
	}
	if draft.EncryptedID == "" {
		return model.NewValidationError("encrypted_id", "is required")
	}
	if len(draft.HMAC) == 0 {
		return model.NewValidationError("hmac", "is required")
	}
	if len(draft.Body) == 0 {
		return model.NewValidationError("body", "is required")
	}
	if s.maxBodyBytes > 0 && len(draft.Body) > s.maxBodyBytes {
		return model.NewValidationError("body", fmt.Sprintf("must be at most %d bytes", s.maxBodyBytes))
	}
	return nil
}

// denyVanished reports an identity that disappeared after authorization as
// a denial, so mailbox operations never disclose whether it exists.
func denyVanished(err error) error {
	if errors.Is(err, model.ErrUnknownIdentity) || errors.Is(err, model.ErrNotFound) {
		return model.ErrAuthorizationDenied
	}
	return err
}
