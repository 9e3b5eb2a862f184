package ipcalc

import (
	"encoding/binary"
	"net/netip"
	"sort"
)

// addrRange is a closed interval [lo, hi] in one family's integer space.
// Ranges never mix families; the family travels alongside in the pipeline.
type addrRange struct {
	lo, hi uint128
}

func addrValue(a netip.Addr) uint128 {
	if a.Is4() {
		b := a.As4()
		return uint128{0, uint64(binary.BigEndian.Uint32(b[:]))}
	}
	b := a.As16()
	return uint128{binary.BigEndian.Uint64(b[:8]), binary.BigEndian.Uint64(b[8:])}
}

func valueAddr(u uint128, f Family) netip.Addr {
	if f == FamilyIPv4 {
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], uint32(u.lo))
		return netip.AddrFrom4(b)
	}
	var b [16]byte
	binary.BigEndian.PutUint64(b[:8], u.hi)
	binary.BigEndian.PutUint64(b[8:], u.lo)
	return netip.AddrFrom16(b)
}

// rangeOf maps a network to its inclusive address range: the base address
// through the base with all host bits set.
func rangeOf(p netip.Prefix) addrRange {
	f := FamilyIPv6
	if p.Addr().Is4() {
		f = FamilyIPv4
	}
	base := addrValue(p.Addr())
	return addrRange{lo: base, hi: base.or(lowMask(f.width() - p.Bits()))}
}

func rangesOf(nets []netip.Prefix) []addrRange {
	out := make([]addrRange, 0, len(nets))
	for _, p := range nets {
		out = append(out, rangeOf(p))
	}
	return out
}

// subtract removes every cut from the allowed ranges. Cuts are applied one
// at a time against the current working list, so overlapping cuts behave as
// iterated set subtraction. The result may be unsorted and may contain
// adjacent-but-unmerged ranges; synthesis fixes that up.
func subtract(allowed, cuts []addrRange) []addrRange {
	work := allowed
	for _, c := range cuts {
		work = subtractOne(work, c)
	}
	return work
}

// subtractOne removes the closed interval cut from every range in the list.
// Each range survives as zero, one, or two ranges.
func subtractOne(ranges []addrRange, cut addrRange) []addrRange {
	c, d := cut.lo, cut.hi

	out := make([]addrRange, 0, len(ranges))
	for _, r := range ranges {
		a, b := r.lo, r.hi
		switch {
		case d.less(a) || b.less(c):
			// Disjoint.
			out = append(out, r)
		case c.cmp(a) <= 0 && d.cmp(b) >= 0:
			// Fully covered: drop.
		case c.cmp(a) <= 0:
			// Left cut: c <= a <= d < b.
			out = append(out, addrRange{d.addOne(), b})
		case d.cmp(b) >= 0:
			// Right cut: a < c <= b <= d.
			out = append(out, addrRange{a, c.subOne()})
		default:
			// Middle split: a < c and d < b.
			out = append(out, addrRange{a, c.subOne()}, addrRange{d.addOne(), b})
		}
	}
	return out
}

// coalesce sorts ranges by start and merges overlapping or touching ones,
// returning a disjoint ascending list.
func coalesce(ranges []addrRange) []addrRange {
	if len(ranges) == 0 {
		return nil
	}

	sorted := make([]addrRange, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].lo.less(sorted[j].lo) })

	out := sorted[:1]
	for _, r := range sorted[1:] {
		last := &out[len(out)-1]
		// r.lo > last.hi implies r.lo > 0, so subOne cannot underflow.
		if r.lo.cmp(last.hi) <= 0 || r.lo.subOne().cmp(last.hi) == 0 {
			if last.hi.less(r.hi) {
				last.hi = r.hi
			}
			continue
		}
		out = append(out, r)
	}
	return out
}
