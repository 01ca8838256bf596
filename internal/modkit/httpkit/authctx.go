package httpkit

import (
	"net/http"
	"strings"

	perr "braindump/internal/platform/errors"
	pnet "braindump/internal/platform/net"
)

// User returns the authenticated user id from the request context
func User(r *http.Request) (string, error) {
	uid := pnet.UserID(r.Context())
	if uid == "" {
		return "", perr.Unauthorizedf("missing bearer token")
	}
	return uid, nil
}

// MustUser returns the authenticated user id or panics.
// only use on routes protected by the auth middleware
func MustUser(r *http.Request) string {
	uid, err := User(r)
	if err != nil {
		panic(err)
	}
	return uid
}

// TokenFunc parses a bearer token and returns a user id
type TokenFunc func(token string) (userID string, err error)

// Port implements middleware.AuthPort by reading Authorization and delegating to a TokenFunc
type Port struct {
	parse TokenFunc
}

// NewPortFunc builds a Port from a simple parser function
func NewPortFunc(fn TokenFunc) *Port {
	return &Port{parse: fn}
}

// Parse extracts the user id from an Authorization Bearer token.
// returns unauthorized when the header is missing, malformed, or the parser rejects it
func (p *Port) Parse(r *http.Request) (string, error) {
	s := strings.TrimSpace(r.Header.Get("Authorization"))
	if s == "" {
		return "", perr.Unauthorizedf("missing bearer token")
	}
	const prefix = "bearer"
	if !strings.HasPrefix(strings.ToLower(s), prefix) {
		return "", perr.Unauthorizedf("missing bearer token")
	}
	raw := strings.TrimSpace(s[len(prefix):])
	if raw == "" {
		return "", perr.Unauthorizedf("missing bearer token")
	}
	if p.parse == nil {
		return "", perr.Unauthorizedf("invalid bearer token")
	}
	uid, err := p.parse(raw)
	if err != nil {
		return "", perr.Unauthorizedf("invalid bearer token")
	}
	return uid, nil
}
