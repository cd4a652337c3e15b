package router_test

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/dtroode/envelope-relay/internal/model"
)

// memStore keeps identities, envelopes and refresh tokens in memory with the
// same conflict and cascade rules as the postgres repositories.
type memStore struct {
	mu         sync.Mutex
	identities map[int64]model.Identity
	envelopes  map[int64]model.Envelope
	tokens     map[string]model.RefreshToken
	nextID     int64
	lastTick   time.Time
}

func newMemStore() *memStore {
	return &memStore{
		identities: make(map[int64]model.Identity),
		envelopes:  make(map[int64]model.Envelope),
		tokens:     make(map[string]model.RefreshToken),
	}
}

func (s *memStore) seq() int64 {
	s.nextID++
	return s.nextID
}

// tick stands in for the database clock. Every call returns a strictly
// later instant.
func (s *memStore) tick() time.Time {
	now := time.Now().UTC().Truncate(time.Microsecond)
	if !now.After(s.lastTick) {
		now = s.lastTick.Add(time.Microsecond)
	}
	s.lastTick = now
	return now
}

type memIdentities struct{ *memStore }

func (s memIdentities) Create(_ context.Context, identity model.Identity) (model.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.identities {
		if existing.ExternalID == identity.ExternalID {
			return model.Identity{}, model.ErrDuplicateIdentity
		}
	}
	identity.ID = s.seq()
	identity.RegisteredAt = s.tick()
	identity.MessagesLastCheckedAt = identity.RegisteredAt
	s.identities[identity.ID] = identity
	return identity, nil
}

func (s memIdentities) GetByID(_ context.Context, id int64) (model.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	identity, ok := s.identities[id]
	if !ok {
		return model.Identity{}, model.ErrNotFound
	}
	return identity, nil
}

func (s memIdentities) GetByExternalID(_ context.Context, externalID string) (model.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, identity := range s.identities {
		if identity.ExternalID == externalID {
			return identity, nil
		}
	}
	return model.Identity{}, model.ErrNotFound
}

func (s memIdentities) UpdateCredentialHash(_ context.Context, id int64, hash []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	identity, ok := s.identities[id]
	if !ok {
		return model.ErrNotFound
	}
	identity.CredentialHash = hash
	s.identities[id] = identity
	return nil
}

func (s memIdentities) GetWatermark(_ context.Context, id int64) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	identity, ok := s.identities[id]
	if !ok {
		return time.Time{}, model.ErrNotFound
	}
	return identity.MessagesLastCheckedAt, nil
}

func (s memIdentities) SetWatermark(_ context.Context, id int64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	identity, ok := s.identities[id]
	if !ok {
		return model.ErrNotFound
	}
	if at.After(identity.MessagesLastCheckedAt) {
		identity.MessagesLastCheckedAt = at
		s.identities[id] = identity
	}
	return nil
}

type memEnvelopes struct{ *memStore }

func (s memEnvelopes) Create(_ context.Context, envelope model.Envelope) (model.Envelope, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.identities[envelope.RecipientID]; !ok {
		return model.Envelope{}, model.ErrUnknownIdentity
	}
	for _, existing := range s.envelopes {
		if existing.SenderID == envelope.SenderID && existing.UniqueID == envelope.UniqueID {
			return model.Envelope{}, model.ErrDuplicateMessage
		}
	}
	envelope.ID = s.seq()
	envelope.SavedAt = s.tick()
	s.envelopes[envelope.ID] = envelope
	return envelope, nil
}

func (s memEnvelopes) SyncPoint(_ context.Context, recipientID int64) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.identities[recipientID]; !ok {
		return time.Time{}, model.ErrNotFound
	}
	return s.tick(), nil
}

func (s memEnvelopes) ListByRecipient(_ context.Context, recipientID int64, savedSince *time.Time) ([]model.Envelope, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Envelope
	for _, envelope := range s.envelopes {
		if envelope.RecipientID != recipientID {
			continue
		}
		if savedSince != nil && envelope.SavedAt.Before(*savedSince) {
			continue
		}
		out = append(out, envelope)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SavedAt.Equal(out[j].SavedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].SavedAt.Before(out[j].SavedAt)
	})
	return out, nil
}

func (s memEnvelopes) DeleteByIDs(_ context.Context, recipientID int64, ids []int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, envelope := range s.envelopes {
		if envelope.RecipientID == recipientID && slices.Contains(ids, id) {
			delete(s.envelopes, id)
			deleted++
		}
	}
	return deleted, nil
}

func (s memEnvelopes) DeleteAllByRecipient(_ context.Context, recipientID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.deleteMailbox(recipientID), nil
}

func (s *memStore) deleteMailbox(recipientID int64) int64 {
	var deleted int64
	for id, envelope := range s.envelopes {
		if envelope.RecipientID == recipientID {
			delete(s.envelopes, id)
			deleted++
		}
	}
	return deleted
}

type memAccounts struct{ *memStore }

func (s memAccounts) Delete(_ context.Context, id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.identities[id]; !ok {
		return 0, model.ErrNotFound
	}
	deleted := s.deleteMailbox(id)
	for jti, token := range s.tokens {
		if token.IdentityID == id {
			delete(s.tokens, jti)
		}
	}
	delete(s.identities, id)
	return deleted, nil
}

type memRefreshTokens struct{ *memStore }

func (s memRefreshTokens) Create(_ context.Context, token model.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens[token.JTI] = token
	return nil
}

func (s memRefreshTokens) GetByJTI(_ context.Context, jti string) (model.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.tokens[jti]
	if !ok {
		return model.RefreshToken{}, model.ErrNotFound
	}
	return token, nil
}

func (s memRefreshTokens) RevokeByJTI(_ context.Context, jti string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token, ok := s.tokens[jti]; ok && token.RevokedAt == nil {
		now := time.Now()
		token.RevokedAt = &now
		s.tokens[jti] = token
	}
	return nil
}

func (s memRefreshTokens) RevokeAllByIdentity(_ context.Context, identityID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for jti, token := range s.tokens {
		if token.IdentityID == identityID && token.RevokedAt == nil {
			token.RevokedAt = &now
			s.tokens[jti] = token
		}
	}
	return nil
}
