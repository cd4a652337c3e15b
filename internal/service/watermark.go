package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dtroode/envelope-relay/internal/model"
)

// Watermark tracks when each identity last checked its mailbox.
type Watermark struct {
	store model.IdentityStore
}

func NewWatermark(store model.IdentityStore) *Watermark {
	return &Watermark{store: store}
}

// Current returns the stored watermark of the identity.
func (w *Watermark) Current(ctx context.Context, identityID int64) (time.Time, error) {
	at, err := w.store.GetWatermark(ctx, identityID)
	if errors.Is(err, model.ErrNotFound) {
		return time.Time{}, model.ErrUnknownIdentity
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get watermark: %w", err)
	}
	return at, nil
}

// Advance stores at as the new watermark unless a later one is already stored.
func (w *Watermark) Advance(ctx context.Context, identityID int64, at time.Time) error {
	err := w.store.SetWatermark(ctx, identityID, at)
	if errors.Is(err, model.ErrNotFound) {
		return model.ErrUnknownIdentity
	}
	if err != nil {
		return fmt.Errorf("failed to set watermark: %w", err)
	}
	return nil
}
