// Package ipaddr classifies operator-supplied IPv4 tokens before they reach the registry.
package ipaddr

import (
	"net/netip"
	"regexp"
	"strconv"
	"strings"
)

// Class is the outcome of classifying a token.
type Class int

const (
	// Invalid means the token is not a strict dotted-quad IPv4 address.
	Invalid Class = iota
	// Loopback is the single address 127.0.0.1, which is always rejected.
	Loopback
	// Private covers the RFC1918 blocks 10/8, 172.16/12 and 192.168/16.
	Private
	// Public is any other valid address.
	Public
)

// LoopbackAddr is the only address classified as Loopback.
const LoopbackAddr = "127.0.0.1"

var (
	octet    = `(25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)`
	quadRe   = regexp.MustCompile(`^` + octet + `\.` + octet + `\.` + octet + `\.` + octet + `$`)
	loopback = netip.MustParseAddr(LoopbackAddr)

	privateRanges = []netip.Prefix{
		netip.MustParsePrefix("10.0.0.0/8"),
		netip.MustParsePrefix("172.16.0.0/12"),
		netip.MustParsePrefix("192.168.0.0/16"),
	}
)

// String returns a lower-case name used in logs.
func (c Class) String() string {
	switch c {
	case Loopback:
		return "loopback"
	case Private:
		return "private"
	case Public:
		return "public"
	default:
		return "invalid"
	}
}

// Classify reports which class the token belongs to. It never fails.
func Classify(token string) Class {
	_, class := Parse(token)
	return class
}

// Parse classifies token and, unless it is Invalid, returns the canonical
// dotted-quad form (leading zeros stripped) suitable for storage.
func Parse(token string) (string, Class) {
	m := quadRe.FindStringSubmatch(token)
	if m == nil {
		return "", Invalid
	}
	var b [4]byte
	for i := 0; i < 4; i++ {
		n, err := strconv.ParseUint(m[i+1], 10, 8)
		if err != nil {
			return "", Invalid
		}
		b[i] = byte(n)
	}
	addr := netip.AddrFrom4(b)
	canonical := addr.String()

	if addr == loopback {
		return canonical, Loopback
	}
	for _, p := range privateRanges {
		if p.Contains(addr) {
			return canonical, Private
		}
	}
	return canonical, Public
}

// Valid reports whether token is any syntactically valid address, loopback included.
func Valid(token string) bool {
	return Classify(strings.TrimSpace(token)) != Invalid
}
