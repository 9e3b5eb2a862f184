package ipcalc

import "net/netip"

// synthesize converts the surviving ranges of one family into the minimal
// set of CIDR networks covering exactly their union, sorted ascending by
// start address.
func synthesize(ranges []addrRange, f Family) []netip.Prefix {
	var nets []netip.Prefix
	for _, r := range ranges {
		nets = appendBlocks(nets, r, f)
	}
	return collapse(nets, f)
}

// appendBlocks appends the minimal CIDR networks covering [r.lo, r.hi]. At
// each step the block is the largest power-of-two run that is both aligned
// at the cursor (bounded by its trailing zero bits) and contained in the
// remaining interval; greediness here is what makes the count minimal.
func appendBlocks(dst []netip.Prefix, r addrRange, f Family) []netip.Prefix {
	width := f.width()

	cur := r.lo
	for {
		size := cur.trailingZeros()
		if size > width {
			size = width
		}
		// The cursor is aligned to 2^size, so the candidate block ends at
		// cur with the low size bits set. Shrink until that fits.
		for size > 0 && r.hi.less(cur.or(lowMask(size))) {
			size--
		}

		dst = append(dst, netip.PrefixFrom(valueAddr(cur, f), width-size))

		end := cur.or(lowMask(size))
		if !end.less(r.hi) {
			return dst
		}
		cur = end.addOne()
	}
}

// collapse merges adjacent and nested networks into the fewest aggregated
// networks: the covered ranges are coalesced and re-synthesized. Running it
// on its own output changes nothing.
func collapse(nets []netip.Prefix, f Family) []netip.Prefix {
	if len(nets) == 0 {
		return nil
	}

	out := make([]netip.Prefix, 0, len(nets))
	for _, r := range coalesce(rangesOf(nets)) {
		out = appendBlocks(out, r, f)
	}
	return out
}
