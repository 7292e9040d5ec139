// Package common contains shared constants and sentinel errors used across
// wghub components.
package common

// AuthorizationHeaderName is the gRPC metadata key used to carry the
// session token on outbound requests.
const AuthorizationHeaderName = "authorization"

// DeviceIDHeaderName is the gRPC metadata key identifying the calling device.
const DeviceIDHeaderName = "device-id"

// BearerPrefix prefixes the session token inside AuthorizationHeaderName.
const BearerPrefix = "Bearer "
