package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/envelope-relay/internal/mocks"
	"github.com/dtroode/envelope-relay/internal/model"
)

func TestWatermark_Current(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewIdentityStore(t)
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	store.On("GetWatermark", ctx, int64(1)).Return(at, nil).Once()
	store.On("GetWatermark", ctx, int64(2)).Return(time.Time{}, model.ErrNotFound).Once()

	w := NewWatermark(store)

	got, err := w.Current(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, at, got)

	_, err = w.Current(ctx, 2)
	require.ErrorIs(t, err, model.ErrUnknownIdentity)
}

func TestWatermark_Advance(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewIdentityStore(t)
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	store.On("SetWatermark", ctx, int64(1), at).Return(nil).Once()
	store.On("SetWatermark", ctx, int64(2), at).Return(model.ErrNotFound).Once()
	store.On("SetWatermark", ctx, int64(3), at).Return(model.ErrPersistence).Once()

	w := NewWatermark(store)

	require.NoError(t, w.Advance(ctx, 1, at))
	require.ErrorIs(t, w.Advance(ctx, 2, at), model.ErrUnknownIdentity)
	require.ErrorIs(t, w.Advance(ctx, 3, at), model.ErrPersistence)
}
