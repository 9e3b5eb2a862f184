package ipcalc

import (
	"errors"
	"net/netip"
	"testing"
)

func prefixStrings(nets []netip.Prefix) []string {
	out := make([]string, 0, len(nets))
	for _, p := range nets {
		out = append(out, p.String())
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestParseList(t *testing.T) {
	t.Parallel()

	t.Run("bare IPv4 becomes /32", func(t *testing.T) {
		t.Parallel()

		got, err := ParseList("10.0.0.1")
		if err != nil {
			t.Fatalf("err = %v, want nil", err)
		}
		if want := []string{"10.0.0.1/32"}; !equalStrings(prefixStrings(got), want) {
			t.Fatalf("got = %v, want %v", prefixStrings(got), want)
		}
	})

	t.Run("bare IPv6 becomes /128", func(t *testing.T) {
		t.Parallel()

		got, err := ParseList("2001:db8::1")
		if err != nil {
			t.Fatalf("err = %v, want nil", err)
		}
		if want := []string{"2001:db8::1/128"}; !equalStrings(prefixStrings(got), want) {
			t.Fatalf("got = %v, want %v", prefixStrings(got), want)
		}
	})

	t.Run("host bits are masked off", func(t *testing.T) {
		t.Parallel()

		got, err := ParseList("10.0.0.1/24")
		if err != nil {
			t.Fatalf("err = %v, want nil", err)
		}
		if want := []string{"10.0.0.0/24"}; !equalStrings(prefixStrings(got), want) {
			t.Fatalf("got = %v, want %v", prefixStrings(got), want)
		}
	})

	t.Run("splits on commas and whitespace", func(t *testing.T) {
		t.Parallel()

		got, err := ParseList(" 10.0.0.0/24,192.168.1.1\n\t::1 ,, 2001:db8::/32 ")
		if err != nil {
			t.Fatalf("err = %v, want nil", err)
		}
		want := []string{"10.0.0.0/24", "192.168.1.1/32", "::1/128", "2001:db8::/32"}
		if !equalStrings(prefixStrings(got), want) {
			t.Fatalf("got = %v, want %v", prefixStrings(got), want)
		}
	})

	t.Run("empty text yields no networks", func(t *testing.T) {
		t.Parallel()

		got, err := ParseList("  \n ")
		if err != nil {
			t.Fatalf("err = %v, want nil", err)
		}
		if len(got) != 0 {
			t.Fatalf("got = %v, want empty", prefixStrings(got))
		}
	})

	t.Run("invalid token names the offender", func(t *testing.T) {
		t.Parallel()

		_, err := ParseList("10.0.0.0/24, not-an-ip")
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("err = %v, want *ParseError", err)
		}
		if perr.Token != "not-an-ip" {
			t.Fatalf("token = %q, want %q", perr.Token, "not-an-ip")
		}
	})

	t.Run("prefix length out of range", func(t *testing.T) {
		t.Parallel()

		for _, tok := range []string{"10.0.0.0/33", "2001:db8::/129", "10.0.0.0/-1"} {
			if _, err := ParseList(tok); err == nil {
				t.Fatalf("ParseList(%q) err = nil, want non-nil", tok)
			}
		}
	})

	t.Run("rejects zoned addresses", func(t *testing.T) {
		t.Parallel()

		if _, err := ParseList("fe80::1%eth0"); err == nil {
			t.Fatalf("err = nil, want non-nil")
		}
	})
}

func TestSplitFamilies(t *testing.T) {
	t.Parallel()

	nets, err := ParseList("::/0, 10.0.0.0/8, 2001:db8::1, 192.168.0.0/16")
	if err != nil {
		t.Fatalf("err = %v, want nil", err)
	}

	v4, v6 := SplitFamilies(nets)
	if want := []string{"10.0.0.0/8", "192.168.0.0/16"}; !equalStrings(prefixStrings(v4), want) {
		t.Fatalf("v4 = %v, want %v", prefixStrings(v4), want)
	}
	if want := []string{"::/0", "2001:db8::1/128"}; !equalStrings(prefixStrings(v6), want) {
		t.Fatalf("v6 = %v, want %v", prefixStrings(v6), want)
	}
}
