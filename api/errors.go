package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies adapter failures so callers can react without string matching:
// prompt for credentials on auth failures, back off on quota exhaustion, and
// simply report the rest.
type Kind int

const (
	// KindConfig - a required credential or setting is missing; raised before any network call.
	KindConfig Kind = iota
	// KindAuth - credential present but rejected by the upstream (HTTP 401 equivalent).
	KindAuth
	// KindRateLimit - upstream quota exhausted (HTTP 429 equivalent).
	KindRateLimit
	// KindUpstream - any other non-2xx status, or an error payload inside a 2xx envelope.
	KindUpstream
	// KindTransport - network failure or timeout before a status was received.
	KindTransport
	// KindNotFound - unknown adapter name or unknown id at the coordinator level.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindAuth:
		return "auth"
	case KindRateLimit:
		return "rate limit"
	case KindUpstream:
		return "upstream"
	case KindTransport:
		return "transport"
	case KindNotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// Error is the single error type adapters and the coordinator surface.
// It always names the adapter it originated from.
type Error struct {
	API     string
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s error", e.API, e.Kind)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ConfigError reports a missing credential or setting, before any network call.
func ConfigError(apiName, message string) error {
	return &Error{API: apiName, Kind: KindConfig, Message: message}
}

// AuthError reports a rejected credential.
func AuthError(apiName string, status int) error {
	return &Error{API: apiName, Kind: KindAuth, Status: status, Message: "missing or invalid credential"}
}

// RateLimitError reports upstream quota exhaustion.
func RateLimitError(apiName string, status int) error {
	return &Error{API: apiName, Kind: KindRateLimit, Status: status, Message: "quota exhausted, retry later"}
}

// UpstreamError reports any other upstream-declared failure.
func UpstreamError(apiName string, status int, message string) error {
	return &Error{API: apiName, Kind: KindUpstream, Status: status, Message: message}
}

// TransportError reports a network-level failure.
func TransportError(apiName string, err error) error {
	return &Error{API: apiName, Kind: KindTransport, Err: err}
}

// NotFoundError reports an unknown adapter name or id pairing.
func NotFoundError(apiName, message string) error {
	return &Error{API: apiName, Kind: KindNotFound, Message: message}
}

// statusError classifies a non-2xx HTTP status into the taxonomy.
func statusError(apiName, status string, code int) error {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return AuthError(apiName, code)
	case http.StatusTooManyRequests:
		return RateLimitError(apiName, code)
	default:
		return UpstreamError(apiName, code, status)
	}
}

// ErrorKind extracts the taxonomy kind from an adapter error chain.
func ErrorKind(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// Classification predicates for callers that only care about one failure class.

func IsConfig(err error) bool    { return isKind(err, KindConfig) }
func IsAuth(err error) bool      { return isKind(err, KindAuth) }
func IsRateLimit(err error) bool { return isKind(err, KindRateLimit) }
func IsUpstream(err error) bool  { return isKind(err, KindUpstream) }
func IsTransport(err error) bool { return isKind(err, KindTransport) }
func IsNotFound(err error) bool  { return isKind(err, KindNotFound) }

func isKind(err error, kind Kind) bool {
	k, ok := ErrorKind(err)
	return ok && k == kind
}
