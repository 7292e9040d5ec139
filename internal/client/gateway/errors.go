package gateway

import (
	"strings"

	"github.com/dmitrijs2005/wghub/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// mapError converts a gRPC failure into the common error taxonomy.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return common.Unknown(err)
	}

	msg := strings.ToLower(st.Message())
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		if strings.Contains(msg, "invalid credentials") || strings.Contains(msg, "wrong password") {
			return common.ErrInvalidCredentials
		}
		return common.ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return common.ErrNetworkUnavailable
	case codes.NotFound:
		return common.ErrNotFound
	case codes.AlreadyExists:
		if strings.Contains(msg, "email") {
			return common.ErrEmailInUse
		}
		return common.ErrAlreadyExists
	case codes.InvalidArgument:
		if strings.Contains(msg, "weak") || strings.Contains(msg, "password") {
			return common.ErrWeakCredentials
		}
		return common.Unknown(err)
	case codes.ResourceExhausted:
		return common.ErrRateLimited
	default:
		return common.Unknown(err)
	}
}
