// Package identity derives a user id for an inbound request.
//
// Ids are a coarse, unauthenticated session proxy. Anyone behind the same
// address shares a vibe and the address can be spoofed; swap in another
// Identifier to introduce real authentication.
package identity

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// DebugUserID is the id every request maps to in debug mode.
const DebugUserID = "debug_user"

// ErrNoAddress is returned when the request carries no usable address.
var ErrNoAddress = errors.New("request has no remote address")

// Identifier maps a request to a stable user id.
type Identifier interface {
	Identify(r *http.Request) (string, error)
}

// AddressIdentifier hashes the client IP. Run it behind chi's RealIP
// middleware so proxies are accounted for.
type AddressIdentifier struct{}

// NewAddressIdentifier creates an AddressIdentifier.
func NewAddressIdentifier() *AddressIdentifier {
	return &AddressIdentifier{}
}

// Identify returns the decimal xxhash64 of the client IP.
func (AddressIdentifier) Identify(r *http.Request) (string, error) {
	host := hostOnly(r.RemoteAddr)
	if host == "" {
		return "", ErrNoAddress
	}
	return strconv.FormatUint(xxhash.Sum64String(host), 10), nil
}

// FixedIdentifier maps every request to the same id.
type FixedIdentifier struct {
	ID string
}

// NewFixedIdentifier returns an Identifier that always yields id,
// or DebugUserID when id is empty.
func NewFixedIdentifier(id string) *FixedIdentifier {
	if id == "" {
		id = DebugUserID
	}
	return &FixedIdentifier{ID: id}
}

// Identify returns the fixed id.
func (f *FixedIdentifier) Identify(*http.Request) (string, error) {
	return f.ID, nil
}

// New picks the identifier for the given mode.
func New(debug bool) Identifier {
	if debug {
		return NewFixedIdentifier(DebugUserID)
	}
	return NewAddressIdentifier()
}

// hostOnly strips the port; RealIP leaves a bare IP while the default
// server sets host:port.
func hostOnly(addr string) string {
	addr = strings.TrimSpace(addr)
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return strings.Trim(addr, "[]")
}
