package model

import (
	"context"
)

type ContextManager interface {
	SetIdentityIDToContext(ctx context.Context, identityID int64) context.Context
	GetIdentityIDFromContext(ctx context.Context) (int64, bool)
}
