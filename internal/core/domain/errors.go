package domain

import "errors"

// Stable error codes shared with API clients. Clients branch on these
// numbers, never on message text, so values must not be reused or changed.
const (
	CodeGatewayBadParameter = 10400
	CodeGatewayUnauthorized = 10401
	CodeGatewayForbidden    = 10403
	CodeGatewayNoData       = 10404
	CodeGatewayRateLimited  = 10429

	CodeAuthUnauthorized = 20401
	CodeAuthCredNotFound = 20404
	CodeAuthCredExists   = 20409

	CodeUserNotFound       = 30404
	CodeUserUsernameExists = 30409

	CodeTweetNotFound = 40404

	CodeUpstreamUnavailable = 50502
	CodeUpstreamTimeout     = 50504

	CodeInternalUnexpected = 99500
)

// Sentinel errors used across the gateway. The HTTP error handler maps
// each one to a status code and a stable taxonomy code.
var (
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrForbidden           = errors.New("access forbidden")
	ErrMissingIdentity     = errors.New("identity claim missing from request context")
	ErrUserNotFound        = errors.New("user not found")
	ErrUsernameExists      = errors.New("username already exists")
	ErrTweetNotFound       = errors.New("tweet not found")
	ErrCredentialNotFound  = errors.New("user credential not found")
	ErrCredentialExists    = errors.New("user credential already exists")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")
)
