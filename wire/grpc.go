package wire

import (
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// gRPC transports report failure through grpc-status/grpc-message rather
// than the HTTP status line. Protobuf endpoints render taxonomy errors with
// both so that plain HTTP and grpc-web clients each see something sensible.

// GRPCCode maps a surface HTTP status to the closest gRPC status code.
func GRPCCode(httpStatus int) codes.Code {
	switch httpStatus {
	case http.StatusOK:
		return codes.OK
	case http.StatusBadRequest:
		return codes.InvalidArgument
	case http.StatusUnauthorized:
		return codes.Unauthenticated
	case http.StatusForbidden:
		return codes.PermissionDenied
	case http.StatusNotFound:
		return codes.NotFound
	case http.StatusConflict:
		return codes.AlreadyExists
	case http.StatusTooManyRequests:
		return codes.ResourceExhausted
	case http.StatusNotImplemented:
		return codes.Unimplemented
	case http.StatusServiceUnavailable:
		return codes.Unavailable
	case http.StatusGatewayTimeout:
		return codes.DeadlineExceeded
	case http.StatusUnsupportedMediaType:
		return codes.InvalidArgument
	default:
		return codes.Internal
	}
}

// GRPCStatus builds the gRPC status for a taxonomy error.
func GRPCStatus(err *Error) *status.Status {
	return status.New(GRPCCode(err.Status), err.Reason)
}
