package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	apperrors "github.com/Aixtrade/Tally/pkg/errors"
)

// StatusCode maps a domain error to a gRPC code.
func StatusCode(err error) codes.Code {
	switch {
	case err == nil:
		return codes.OK
	case errors.Is(err, apperrors.ErrInvalidNumericElement),
		errors.Is(err, apperrors.ErrInvalidRequest),
		errors.Is(err, apperrors.ErrInvalidPayload):
		return codes.InvalidArgument
	case errors.Is(err, apperrors.ErrIntegerOverflow):
		return codes.OutOfRange
	case errors.Is(err, context.Canceled):
		return codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded
	default:
		return codes.Internal
	}
}

// ToStatus converts err to a status error. Status errors pass through unchanged.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	code := StatusCode(err)
	if code == codes.Internal {
		return status.Error(code, "internal error")
	}
	return status.Error(code, err.Error())
}

func IsInvalidArgument(err error) bool {
	return status.Code(err) == codes.InvalidArgument
}

func IsOutOfRange(err error) bool {
	return status.Code(err) == codes.OutOfRange
}
