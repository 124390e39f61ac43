package address

import (
	"fmt"
	"net/netip"
	"strconv"
	"strings"
)

const (
	// MinPort is the lowest accepted TCP port
	MinPort = 1
	// MaxPort is the highest accepted TCP port
	MaxPort = 65535
)

// Address is a validated "A.B.C.D:P" endpoint.
type Address string

// Parse extracts a canonical endpoint from token.
//
// The split happens at the last colon so that tokens with several colons
// still produce an IP candidate and a port candidate. The IP part must be
// a strict dotted-quad IPv4 address and the port part a decimal integer
// in [MinPort, MaxPort]. The returned Address is rebuilt from the parsed
// values, so "10.0.0.1:05555" canonicalizes to "10.0.0.1:5555".
func Parse(token string) (Address, bool) {
	idx := strings.LastIndexByte(token, ':')
	if idx < 0 {
		return "", false
	}

	ip, ok := parseIPv4(token[:idx])
	if !ok {
		return "", false
	}

	port, ok := parsePort(token[idx+1:])
	if !ok {
		return "", false
	}

	return Address(ip.String() + ":" + strconv.Itoa(port)), true
}

// MustParse is like Parse but panics on invalid input. Intended for tests
// and constants.
func MustParse(token string) Address {
	addr, ok := Parse(token)
	if !ok {
		panic(fmt.Sprintf("address: invalid endpoint %q", token))
	}
	return addr
}

// String implements fmt.Stringer
func (a Address) String() string {
	return string(a)
}

// Host returns the IPv4 part of the address
func (a Address) Host() string {
	s := string(a)
	if idx := strings.LastIndexByte(s, ':'); idx >= 0 {
		return s[:idx]
	}
	return s
}

// Port returns the port part of the address, or 0 for a zero Address
func (a Address) Port() int {
	s := string(a)
	idx := strings.LastIndexByte(s, ':')
	if idx < 0 {
		return 0
	}
	port, err := strconv.Atoi(s[idx+1:])
	if err != nil {
		return 0
	}
	return port
}

// parseIPv4 accepts only four decimal octets separated by dots.
// netip rejects leading zeros, IPv6 forms and zones for us.
func parseIPv4(s string) (netip.Addr, bool) {
	if strings.Count(s, ".") != 3 {
		return netip.Addr{}, false
	}
	ip, err := netip.ParseAddr(s)
	if err != nil || !ip.Is4() {
		return netip.Addr{}, false
	}
	return ip, true
}

func parsePort(s string) (int, bool) {
	if s == "" || len(s) > 5 {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	port, err := strconv.Atoi(s)
	if err != nil || port < MinPort || port > MaxPort {
		return 0, false
	}
	return port, true
}
