package handler

import (
	"github.com/dtroode/envelope-relay/internal/api/relayapi"
	"github.com/dtroode/envelope-relay/internal/model"
)

func toIdentityRef(ref relayapi.IdentityRef) model.IdentityRef {
	return model.IdentityRef{ID: ref.ID, ExternalID: ref.ExternalID}
}

func toEnvelopeDraft(d relayapi.EnvelopeDraft) model.EnvelopeDraft {
	return model.EnvelopeDraft{
		Recipient:        toIdentityRef(d.Recipient),
		UniqueID:         d.UniqueID,
		SentFromSenderAt: d.SentFromSenderAt,
		IsEncrypted:      d.IsEncrypted,
		EncryptedID:      d.EncryptedID,
		HMAC:             d.HMAC,
		Body:             d.Body,
	}
}

func fromEnvelopes(envelopes []model.Envelope) []relayapi.Envelope {
	out := make([]relayapi.Envelope, 0, len(envelopes))
	for _, e := range envelopes {
		out = append(out, relayapi.Envelope{
			ID:               e.ID,
			SenderID:         e.SenderID,
			RecipientID:      e.RecipientID,
			UniqueID:         e.UniqueID,
			SentFromSenderAt: e.SentFromSenderAt,
			IsEncrypted:      e.IsEncrypted,
			EncryptedID:      e.EncryptedID,
			HMAC:             e.HMAC,
			Body:             e.Body,
			SavedAt:          e.SavedAt,
		})
	}
	return out
}
