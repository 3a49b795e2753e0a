// Package hostaddr finds the IPv4 and IPv6 addresses to publish for a host.
package hostaddr

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
)

var (
	ErrInvalidAddress = errors.New("invalid address")
	ErrNotFound       = errors.New("host not found")
)

type Addresses struct {
	IPv4 string
	IPv6 string
}

func (a Addresses) Empty() bool { return a.IPv4 == "" && a.IPv6 == "" }

func (a Addresses) String() string {
	return fmt.Sprintf("ipv4: %s, ipv6: %s", orNone(a.IPv4), orNone(a.IPv6))
}

// Source looks addresses up somewhere outside the zone.
type Source interface {
	Addresses(ctx context.Context) (Addresses, error)
}

// Parse checks that each non-empty address belongs to its family. Addresses
// are kept as written since deletes compare them with record targets.
func Parse(ipv4, ipv6 string) (Addresses, error) {
	var res Addresses

	if ipv4 != "" {
		addr, err := netip.ParseAddr(ipv4)
		if err != nil || !addr.Is4() {
			return res, fmt.Errorf("%w: %q is not an IPv4 address", ErrInvalidAddress, ipv4)
		}
		res.IPv4 = ipv4
	}

	if ipv6 != "" {
		addr, err := netip.ParseAddr(ipv6)
		if err != nil || !addr.Is6() || addr.Is4In6() {
			return res, fmt.Errorf("%w: %q is not an IPv6 address", ErrInvalidAddress, ipv6)
		}
		res.IPv6 = ipv6
	}

	return res, nil
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
