package handler

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/envelope-relay/internal/model"
)

func handleError(err error) error {
	var verr *model.ValidationError

	switch {
	case errors.As(err, &verr):
		return status.Error(codes.InvalidArgument, verr.Error())
	case errors.Is(err, model.ErrValidation):
		return status.Error(codes.InvalidArgument, "invalid request")
	case errors.Is(err, model.ErrUnknownIdentity):
		return status.Error(codes.NotFound, "unknown identity")
	case errors.Is(err, model.ErrSelfSend):
		return status.Error(codes.FailedPrecondition, "sender and recipient must differ")
	case errors.Is(err, model.ErrDuplicateMessage):
		return status.Error(codes.AlreadyExists, "message already stored")
	case errors.Is(err, model.ErrDuplicateIdentity):
		return status.Error(codes.AlreadyExists, "identity already registered")
	case errors.Is(err, model.ErrInvalidCredential):
		return status.Error(codes.Unauthenticated, "invalid credentials")
	case errors.Is(err, model.ErrInvalidToken),
		errors.Is(err, model.ErrTokenRevoked),
		errors.Is(err, model.ErrTokenExpired),
		errors.Is(err, model.ErrTokenMismatch):
		return status.Error(codes.Unauthenticated, "invalid refresh token")
	case errors.Is(err, model.ErrAuthorizationDenied):
		return status.Error(codes.PermissionDenied, "access denied")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	default:
		return status.Error(codes.Internal, "internal server error")
	}
}
