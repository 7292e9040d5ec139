// Package gateway is the client side of the wghub backend API.
//
// # Overview
//
// Gateway is the transport-agnostic contract consumed by the repositories,
// the lifecycle controller and the application services. GRPCGateway
// implements it over gRPC: messages are JSON encoded (see codec.go), every
// call carries the session token and the device id as metadata, and gRPC
// status codes are mapped to the sentinel errors of package common.
//
// EntityClient is the per-family create/update/get/delete API. It always
// returns the canonical entity as stored by the backend, including the
// backend-resolved list of affected users.
//
// # Error Handling
//
//   - codes.Unauthenticated, codes.PermissionDenied: common.ErrUnauthorized
//     (common.ErrInvalidCredentials when the backend says so)
//   - codes.Unavailable, codes.DeadlineExceeded: common.ErrNetworkUnavailable
//   - codes.NotFound: common.ErrNotFound
//   - codes.AlreadyExists: common.ErrAlreadyExists or common.ErrEmailInUse
//   - codes.InvalidArgument about the password: common.ErrWeakCredentials
//   - codes.ResourceExhausted: common.ErrRateLimited
//   - anything else: *common.UnknownError
package gateway
