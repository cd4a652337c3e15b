package handler

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/envelope-relay/internal/model"
)

func TestHandleError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       error
		wantCode codes.Code
		wantMsg  string
	}{
		{
			name:     "validation error carries field",
			in:       fmt.Errorf("send: %w", model.NewValidationError("unique_id", "is required")),
			wantCode: codes.InvalidArgument,
			wantMsg:  "invalid unique_id: is required",
		},
		{name: "unknown identity", in: model.ErrUnknownIdentity, wantCode: codes.NotFound},
		{name: "self send", in: model.ErrSelfSend, wantCode: codes.FailedPrecondition},
		{name: "duplicate message", in: model.ErrDuplicateMessage, wantCode: codes.AlreadyExists},
		{name: "duplicate identity", in: model.ErrDuplicateIdentity, wantCode: codes.AlreadyExists},
		{name: "invalid credential", in: model.ErrInvalidCredential, wantCode: codes.Unauthenticated},
		{name: "revoked refresh token", in: model.ErrTokenRevoked, wantCode: codes.Unauthenticated},
		{name: "unparseable token", in: fmt.Errorf("%w: bad", model.ErrInvalidToken), wantCode: codes.Unauthenticated},
		{name: "authorization denied", in: model.ErrAuthorizationDenied, wantCode: codes.PermissionDenied},
		{name: "canceled", in: fmt.Errorf("list: %w", context.Canceled), wantCode: codes.Canceled},
		{
			name:     "persistence hides details",
			in:       fmt.Errorf("%w: failed to create envelope: %w", model.ErrPersistence, errors.New("pq: relation missing")),
			wantCode: codes.Internal,
			wantMsg:  "internal server error",
		},
		{name: "registration failed", in: model.ErrRegistrationFailed, wantCode: codes.Internal},
		{name: "other", in: errors.New("boom"), wantCode: codes.Internal, wantMsg: "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := handleError(tt.in)
			st, ok := status.FromError(err)
			assert.True(t, ok)
			assert.Equal(t, tt.wantCode, st.Code())
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, st.Message())
			}
		})
	}
}
