// Package ipcalc computes minimal "allowed minus disallowed" CIDR sets for
// WireGuard AllowedIPs lines. The pipeline is text -> networks -> inclusive
// integer ranges -> subtracted ranges -> minimal CIDR networks -> formatted
// string, with IPv4 and IPv6 processed independently throughout.
package ipcalc

import (
	"net/netip"
	"strings"
	"unicode"
)

// Family selects one of the two independently processed address spaces.
type Family int

const (
	FamilyIPv4 Family = 4
	FamilyIPv6 Family = 6
)

func (f Family) width() int {
	if f == FamilyIPv4 {
		return 32
	}
	return 128
}

// ParseList parses a comma- and/or whitespace-separated list of addresses
// and CIDR networks. Bare addresses become /32 (IPv4) or /128 (IPv6)
// networks. Prefix tokens are accepted with host bits set and normalized to
// the masked network address. First-seen order is preserved.
//
// The first invalid token aborts parsing with a *ParseError naming it.
func ParseList(text string) ([]netip.Prefix, error) {
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})

	nets := make([]netip.Prefix, 0, len(tokens))
	for _, tok := range tokens {
		p, err := parseToken(tok)
		if err != nil {
			return nil, err
		}
		nets = append(nets, p)
	}
	return nets, nil
}

func parseToken(tok string) (netip.Prefix, error) {
	if strings.Contains(tok, "/") {
		p, err := netip.ParsePrefix(tok)
		if err != nil {
			return netip.Prefix{}, &ParseError{Token: tok}
		}
		return p.Masked(), nil
	}

	a, err := netip.ParseAddr(tok)
	if err != nil || a.Zone() != "" {
		return netip.Prefix{}, &ParseError{Token: tok}
	}
	a = a.Unmap()

	bits := 128
	if a.Is4() {
		bits = 32
	}
	return netip.PrefixFrom(a, bits), nil
}

// SplitFamilies splits nets into the IPv4 and IPv6 subsequences. The split
// is stable: each subsequence keeps the input order, nothing is sorted.
func SplitFamilies(nets []netip.Prefix) (v4, v6 []netip.Prefix) {
	for _, p := range nets {
		if p.Addr().Is4() {
			v4 = append(v4, p)
		} else {
			v6 = append(v6, p)
		}
	}
	return v4, v6
}
