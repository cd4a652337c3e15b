package context

import (
	"context"

	"github.com/dtroode/envelope-relay/internal/model"
)

type identityIDKey struct{}

// Manager stores the authenticated caller identity in a request context.
type Manager struct{}

var _ model.ContextManager = (*Manager)(nil)

// NewManager creates a new context manager.
func NewManager() *Manager {
	return &Manager{}
}

// SetIdentityIDToContext returns a context carrying the caller identity ID.
func (m *Manager) SetIdentityIDToContext(ctx context.Context, identityID int64) context.Context {
	return context.WithValue(ctx, identityIDKey{}, identityID)
}

// GetIdentityIDFromContext returns the caller identity ID and whether it was set.
func (m *Manager) GetIdentityIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(identityIDKey{}).(int64)
	if !ok || id <= 0 {
		return 0, false
	}
	return id, true
}
