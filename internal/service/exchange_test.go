package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/envelope-relay/internal/mocks"
	"github.com/dtroode/envelope-relay/internal/model"
	"github.com/dtroode/envelope-relay/internal/testutil"
)

var fixedNow = time.Date(2024, 6, 1, 9, 30, 0, 123456789, time.UTC)

type exchangeFixture struct {
	exchange   *Exchange
	authorizer *mocks.Authorizer
	resolver   *mocks.IdentityResolver
	envelopes  *mocks.EnvelopeStore
	identities *mocks.IdentityStore
}

func newExchangeFixture(t *testing.T) exchangeFixture {
	f := exchangeFixture{
		authorizer: mocks.NewAuthorizer(t),
		resolver:   mocks.NewIdentityResolver(t),
		envelopes:  mocks.NewEnvelopeStore(t),
		identities: mocks.NewIdentityStore(t),
	}
	f.exchange = NewExchange(f.authorizer, f.resolver, f.envelopes, NewWatermark(f.identities), 16, testutil.MakeNoopLogger())
	return f
}

func boolPtr(b bool) *bool { return &b }

func validDraft() model.EnvelopeDraft {
	return model.EnvelopeDraft{
		Recipient:        model.RefByExternalID("contact9999"),
		UniqueID:         "msg-1",
		SentFromSenderAt: fixedNow.Add(-time.Minute),
		IsEncrypted:      boolPtr(true),
		EncryptedID:      "enc-1",
		HMAC:             []byte{1, 2, 3},
		Body:             []byte("ciphertext"),
	}
}

func TestExchange_Send_Success(t *testing.T) {
	ctx := context.Background()
	f := newExchangeFixture(t)

	f.authorizer.On("AuthorizeRef", ctx, int64(1), model.RefByID(1)).Return(int64(1), nil).Once()
	f.resolver.On("Resolve", ctx, model.RefByExternalID("contact9999")).Return(int64(2), nil).Once()
	f.envelopes.On("Create", ctx, mock.MatchedBy(func(e model.Envelope) bool {
		return e.SenderID == 1 && e.RecipientID == 2 && e.UniqueID == "msg-1" &&
			e.IsEncrypted && e.EncryptedID == "enc-1" &&
			bytes.Equal(e.Body, []byte("ciphertext")) && e.SavedAt.IsZero()
	})).Return(func(_ context.Context, e model.Envelope) (model.Envelope, error) {
		e.ID = 10
		e.SavedAt = fixedNow
		return e, nil
	}).Once()

	savedAt, err := f.exchange.Send(ctx, 1, model.RefByID(1), validDraft())
	require.NoError(t, err)
	assert.True(t, savedAt.Equal(fixedNow))
}

func TestExchange_Send_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *model.EnvelopeDraft)
		field  string
	}{
		{name: "no recipient", mutate: func(d *model.EnvelopeDraft) { d.Recipient = model.IdentityRef{} }, field: "recipient"},
		{name: "both recipient forms", mutate: func(d *model.EnvelopeDraft) { d.Recipient = model.IdentityRef{ID: 2, ExternalID: "contact9999"} }, field: "recipient"},
		{name: "no unique id", mutate: func(d *model.EnvelopeDraft) { d.UniqueID = "" }, field: "unique_id"},
		{name: "no sent time", mutate: func(d *model.EnvelopeDraft) { d.SentFromSenderAt = time.Time{} }, field: "sent_from_sender_at"},
		{name: "no encryption flag", mutate: func(d *model.EnvelopeDraft) { d.IsEncrypted = nil }, field: "is_encrypted"},
		{name: "encryption flag false", mutate: func(d *model.EnvelopeDraft) { d.IsEncrypted = boolPtr(false) }, field: "is_encrypted"},
		{name: "no encrypted id", mutate: func(d *model.EnvelopeDraft) { d.EncryptedID = "" }, field: "encrypted_id"},
		{name: "no hmac", mutate: func(d *model.EnvelopeDraft) { d.HMAC = nil }, field: "hmac"},
		{name: "empty body", mutate: func(d *model.EnvelopeDraft) { d.Body = nil }, field: "body"},
		{name: "body too large", mutate: func(d *model.EnvelopeDraft) { d.Body = make([]byte, 17) }, field: "body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newExchangeFixture(t)
			draft := validDraft()
			tt.mutate(&draft)

			_, err := f.exchange.Send(context.Background(), 1, model.RefByID(1), draft)
			require.ErrorIs(t, err, model.ErrValidation)

			var verr *model.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestExchange_Send_SenderNotCaller(t *testing.T) {
	ctx := context.Background()
	f := newExchangeFixture(t)

	f.authorizer.On("AuthorizeRef", ctx, int64(1), model.RefByID(3)).Return(int64(0), model.ErrAuthorizationDenied).Once()

	_, err := f.exchange.Send(ctx, 1, model.RefByID(3), validDraft())
	require.ErrorIs(t, err, model.ErrAuthorizationDenied)
}

func TestExchange_Send_UnknownRecipient(t *testing.T) {
	ctx := context.Background()
	f := newExchangeFixture(t)

	f.authorizer.On("AuthorizeRef", ctx, int64(1), model.RefByID(1)).Return(int64(1), nil).Once()
	f.resolver.On("Resolve", ctx, model.RefByExternalID("contact9999")).Return(int64(0), model.ErrUnknownIdentity).Once()

	_, err := f.exchange.Send(ctx, 1, model.RefByID(1), validDraft())
	require.ErrorIs(t, err, model.ErrUnknownIdentity)
}

func TestExchange_Send_SelfSend(t *testing.T) {
	ctx := context.Background()
	f := newExchangeFixture(t)

	f.authorizer.On("AuthorizeRef", ctx, int64(1), model.RefByID(1)).Return(int64(1), nil).Once()
	f.resolver.On("Resolve", ctx, model.RefByExternalID("contact9999")).Return(int64(1), nil).Once()

	_, err := f.exchange.Send(ctx, 1, model.RefByID(1), validDraft())
	require.ErrorIs(t, err, model.ErrSelfSend)
}

func TestExchange_Send_StoreErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "duplicate", err: model.ErrDuplicateMessage},
		{name: "recipient vanished", err: model.ErrUnknownIdentity},
		{name: "persistence", err: model.ErrPersistence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := newExchangeFixture(t)

			f.authorizer.On("AuthorizeRef", ctx, int64(1), model.RefByID(1)).Return(int64(1), nil).Once()
			f.resolver.On("Resolve", ctx, mock.Anything).Return(int64(2), nil).Once()
			f.envelopes.On("Create", ctx, mock.Anything).Return(model.Envelope{}, tt.err).Once()

			savedAt, err := f.exchange.Send(ctx, 1, model.RefByID(1), validDraft())
			require.ErrorIs(t, err, tt.err)
			assert.True(t, savedAt.IsZero())
		})
	}
}

func TestExchange_Fetch_Incremental(t *testing.T) {
	ctx := context.Background()
	f := newExchangeFixture(t)
	watermark := fixedNow.Add(-time.Hour)
	envelopes := []model.Envelope{{ID: 1, RecipientID: 2}}

	f.authorizer.On("AuthorizeRef", ctx, int64(2), model.RefByID(2)).Return(int64(2), nil).Once()
	f.envelopes.On("SyncPoint", ctx, int64(2)).Return(fixedNow, nil).Once()
	f.identities.On("GetWatermark", ctx, int64(2)).Return(watermark, nil).Once()
	f.envelopes.On("ListByRecipient", ctx, int64(2), mock.MatchedBy(func(since *time.Time) bool {
		return since != nil && since.Equal(watermark)
	})).Return(envelopes, nil).Once()
	f.identities.On("SetWatermark", ctx, int64(2), fixedNow).Return(nil).Once()

	result, err := f.exchange.Fetch(ctx, 2, model.RefByID(2), model.FetchModeIncremental)
	require.NoError(t, err)
	assert.Equal(t, envelopes, result.Envelopes)
	assert.True(t, result.WatermarkAdvanced)
}

func TestExchange_Fetch_AllAdvancesWatermark(t *testing.T) {
	ctx := context.Background()
	f := newExchangeFixture(t)

	f.authorizer.On("AuthorizeRef", ctx, int64(2), model.RefByID(2)).Return(int64(2), nil).Once()
	f.envelopes.On("SyncPoint", ctx, int64(2)).Return(fixedNow, nil).Once()
	f.envelopes.On("ListByRecipient", ctx, int64(2), (*time.Time)(nil)).Return([]model.Envelope{}, nil).Once()
	f.identities.On("SetWatermark", ctx, int64(2), mock.Anything).Return(nil).Once()

	result, err := f.exchange.Fetch(ctx, 2, model.RefByID(2), model.FetchModeAll)
	require.NoError(t, err)
	assert.Empty(t, result.Envelopes)
	assert.True(t, result.WatermarkAdvanced)
}

func TestExchange_Fetch_DefaultsToIncremental(t *testing.T) {
	ctx := context.Background()
	f := newExchangeFixture(t)

	f.authorizer.On("AuthorizeRef", ctx, int64(2), model.RefByID(2)).Return(int64(2), nil).Once()
	f.envelopes.On("SyncPoint", ctx, int64(2)).Return(fixedNow, nil).Once()
	f.identities.On("GetWatermark", ctx, int64(2)).Return(fixedNow, nil).Once()
	f.envelopes.On("ListByRecipient", ctx, int64(2), mock.AnythingOfType("*time.Time")).Return([]model.Envelope{}, nil).Once()
	f.identities.On("SetWatermark", ctx, int64(2), mock.Anything).Return(nil).Once()

	_, err := f.exchange.Fetch(ctx, 2, model.RefByID(2), "")
	require.NoError(t, err)
}

func TestExchange_Fetch_ReadFailureKeepsWatermark(t *testing.T) {
	ctx := context.Background()
	f := newExchangeFixture(t)

	f.authorizer.On("AuthorizeRef", ctx, int64(2), model.RefByID(2)).Return(int64(2), nil).Once()
	f.envelopes.On("SyncPoint", ctx, int64(2)).Return(fixedNow, nil).Once()
	f.identities.On("GetWatermark", ctx, int64(2)).Return(fixedNow, nil).Once()
	f.envelopes.On("ListByRecipient", ctx, int64(2), mock.Anything).Return(nil, model.ErrPersistence).Once()

	_, err := f.exchange.Fetch(ctx, 2, model.RefByID(2), model.FetchModeIncremental)
	require.ErrorIs(t, err, model.ErrPersistence)
	f.identities.AssertNotCalled(t, "SetWatermark", mock.Anything, mock.Anything, mock.Anything)
}

func TestExchange_Fetch_AdvanceFailureStillReturnsEnvelopes(t *testing.T) {
	ctx := context.Background()
	f := newExchangeFixture(t)
	envelopes := []model.Envelope{{ID: 1}}

	f.authorizer.On("AuthorizeRef", ctx, int64(2), model.RefByID(2)).Return(int64(2), nil).Once()
	f.envelopes.On("SyncPoint", ctx, int64(2)).Return(fixedNow, nil).Once()
	f.identities.On("GetWatermark", ctx, int64(2)).Return(fixedNow, nil).Once()
	f.envelopes.On("ListByRecipient", ctx, int64(2), mock.Anything).Return(envelopes, nil).Once()
	f.identities.On("SetWatermark", ctx, int64(2), mock.Anything).Return(model.ErrPersistence).Once()

	result, err := f.exchange.Fetch(ctx, 2, model.RefByID(2), model.FetchModeIncremental)
	require.NoError(t, err)
	assert.Equal(t, envelopes, result.Envelopes)
	assert.False(t, result.WatermarkAdvanced)
}

func TestExchange_Fetch_MailboxVanished(t *testing.T) {
	ctx := context.Background()

	t.Run("sync point", func(t *testing.T) {
		f := newExchangeFixture(t)
		f.authorizer.On("AuthorizeRef", ctx, int64(2), model.RefByID(2)).Return(int64(2), nil).Once()
		f.envelopes.On("SyncPoint", ctx, int64(2)).Return(time.Time{}, model.ErrNotFound).Once()

		_, err := f.exchange.Fetch(ctx, 2, model.RefByID(2), model.FetchModeAll)
		require.ErrorIs(t, err, model.ErrAuthorizationDenied)
		assert.NotErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("watermark", func(t *testing.T) {
		f := newExchangeFixture(t)
		f.authorizer.On("AuthorizeRef", ctx, int64(2), model.RefByID(2)).Return(int64(2), nil).Once()
		f.envelopes.On("SyncPoint", ctx, int64(2)).Return(fixedNow, nil).Once()
		f.identities.On("GetWatermark", ctx, int64(2)).Return(time.Time{}, model.ErrNotFound).Once()

		_, err := f.exchange.Fetch(ctx, 2, model.RefByID(2), model.FetchModeIncremental)
		require.ErrorIs(t, err, model.ErrAuthorizationDenied)
		assert.NotErrorIs(t, err, model.ErrUnknownIdentity)
	})
}

func TestExchange_Fetch_SyncPointFailure(t *testing.T) {
	ctx := context.Background()
	f := newExchangeFixture(t)

	f.authorizer.On("AuthorizeRef", ctx, int64(2), model.RefByID(2)).Return(int64(2), nil).Once()
	f.envelopes.On("SyncPoint", ctx, int64(2)).Return(time.Time{}, model.ErrPersistence).Once()

	_, err := f.exchange.Fetch(ctx, 2, model.RefByID(2), model.FetchModeIncremental)
	require.ErrorIs(t, err, model.ErrPersistence)
	f.envelopes.AssertNotCalled(t, "ListByRecipient", mock.Anything, mock.Anything, mock.Anything)
}

func TestExchange_Fetch_Rejected(t *testing.T) {
	ctx := context.Background()
	f := newExchangeFixture(t)

	_, err := f.exchange.Fetch(ctx, 2, model.RefByID(2), "newest")
	require.ErrorIs(t, err, model.ErrValidation)

	f.authorizer.On("AuthorizeRef", ctx, int64(2), model.RefByID(1)).Return(int64(0), model.ErrAuthorizationDenied).Once()
	_, err = f.exchange.Fetch(ctx, 2, model.RefByID(1), model.FetchModeAll)
	require.ErrorIs(t, err, model.ErrAuthorizationDenied)
}

func TestExchange_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("by ids", func(t *testing.T) {
		f := newExchangeFixture(t)
		f.authorizer.On("AuthorizeRef", ctx, int64(2), model.RefByID(2)).Return(int64(2), nil).Once()
		f.envelopes.On("DeleteByIDs", ctx, int64(2), []int64{4, 5}).Return(int64(1), nil).Once()

		n, err := f.exchange.Delete(ctx, 2, model.RefByID(2), model.DeleteSelection{IDs: []int64{4, 5}})
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("all", func(t *testing.T) {
		f := newExchangeFixture(t)
		f.authorizer.On("AuthorizeRef", ctx, int64(2), model.RefByID(2)).Return(int64(2), nil).Once()
		f.envelopes.On("DeleteAllByRecipient", ctx, int64(2)).Return(int64(7), nil).Once()

		n, err := f.exchange.Delete(ctx, 2, model.RefByID(2), model.DeleteSelection{All: true})
		require.NoError(t, err)
		assert.Equal(t, int64(7), n)
	})

	t.Run("invalid selections", func(t *testing.T) {
		f := newExchangeFixture(t)
		for _, sel := range []model.DeleteSelection{
			{},
			{IDs: []int64{}},
			{All: true, IDs: []int64{1}},
			{IDs: []int64{0}},
		} {
			_, err := f.exchange.Delete(ctx, 2, model.RefByID(2), sel)
			require.ErrorIs(t, err, model.ErrValidation)
		}
	})

	t.Run("store error", func(t *testing.T) {
		f := newExchangeFixture(t)
		f.authorizer.On("AuthorizeRef", ctx, int64(2), model.RefByID(2)).Return(int64(2), nil).Once()
		f.envelopes.On("DeleteAllByRecipient", ctx, int64(2)).Return(int64(0), model.ErrPersistence).Once()

		_, err := f.exchange.Delete(ctx, 2, model.RefByID(2), model.DeleteSelection{All: true})
		require.ErrorIs(t, err, model.ErrPersistence)
	})
}
