package sentinel

import "errors"

// Sentinel errors for facts reported by the remote API or the transport.
// The gateway and stores return these (optionally wrapped) so callers can
// branch with errors.Is without inspecting HTTP status codes.
//
// These represent factual states, not validation failures:
// - ErrUnauthorized: the credential was rejected (HTTP 401); the session is gone
// - ErrForbidden: the credential is valid but lacks the required role
// - ErrNotFound: the resource does not exist remotely
// - ErrUnavailable: the backend could not be reached (network, timeout)
//
// For server-side validation failures use gateway.APIError, which carries the
// structured notification list verbatim.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrUnavailable  = errors.New("unavailable")
)
