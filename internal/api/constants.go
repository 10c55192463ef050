package api

import (
	"net/http"
	"time"
)

// Client defaults. Overridden by config.APIConfig in the CLI.
const (
	DefaultBaseURL   = "http://localhost:5000/api"
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "storefront-go/0.1"
)

// Durable storage slots. The refresh slot is written by callers (the auth
// service) and only removed by the client, in ClearToken.
const (
	TokenKey        = "auth_token"
	RefreshTokenKey = "refresh_token" //nolint:gosec // G101: storage key name, not a credential
)

// Sentinel statuses for failures that never produced an HTTP response.
// They share the HTTP status space so callers can switch on a single field.
const (
	StatusTimeout        = http.StatusRequestTimeout
	StatusGenericFailure = http.StatusInternalServerError
)

// Fallback messages for failures without a backend-supplied message.
const (
	MsgTimeout = "Request timed out. Please try again."
	MsgNetwork = "Network error. Please check your connection and try again."
	MsgUnknown = "An unexpected error occurred. Please try again."
)

// Header names set by the client.
const (
	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
	headerAccept        = "Accept"
	headerUserAgent     = "User-Agent"
	headerRequestID     = "X-Request-ID"

	contentTypeJSON = "application/json"
)
