package ipcalc

import (
	"net/netip"
	"strings"
)

// Result holds the minimal allowed networks per family, each list sorted
// ascending by start address.
type Result struct {
	V4 []netip.Prefix
	V6 []netip.Prefix
}

// Calculate computes "allowed minus disallowed" over both address families
// from free-form text and returns the minimal covering networks.
//
// allowedText must parse to at least one network (ErrEmptyAllowed
// otherwise); disallowedText may be empty. A disallowed set that covers the
// whole allowed space yields an empty Result, not an error. The function is
// pure: identical inputs always produce identical output.
func Calculate(allowedText, disallowedText string) (Result, error) {
	allowed, err := ParseList(allowedText)
	if err != nil {
		return Result{}, err
	}
	if len(allowed) == 0 {
		return Result{}, ErrEmptyAllowed
	}

	disallowed, err := ParseList(disallowedText)
	if err != nil {
		return Result{}, err
	}

	allowedV4, allowedV6 := SplitFamilies(allowed)
	cutV4, cutV6 := SplitFamilies(disallowed)

	return Result{
		V4: synthesize(subtract(rangesOf(allowedV4), rangesOf(cutV4)), FamilyIPv4),
		V6: synthesize(subtract(rangesOf(allowedV6), rangesOf(cutV6)), FamilyIPv6),
	}, nil
}

// String renders the WireGuard peer line, IPv4 networks before IPv6.
func (r Result) String() string {
	parts := make([]string, 0, len(r.V4)+len(r.V6))
	for _, p := range r.V4 {
		parts = append(parts, p.String())
	}
	for _, p := range r.V6 {
		parts = append(parts, p.String())
	}
	return "AllowedIPs = " + strings.Join(parts, ", ")
}
