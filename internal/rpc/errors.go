package rpc

import (
	"context"
	"errors"

	"github.com/fekuna/protrack-service/internal/auth"
	"github.com/fekuna/protrack-service/internal/pkg/validate"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Error maps errors shared by every service to status codes. Handlers check
// their own domain sentinels first and fall back to this. Unknown errors
// become codes.Internal.
func Error(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, auth.ErrUnauthenticated):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, auth.ErrForbidden):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, validate.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}
