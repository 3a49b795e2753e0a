package hostaddr

import (
	"context"
	"errors"
	"testing"

	"github.com/tailscale/tailscale-client-go/tailscale"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		ipv4, ipv6 string
		wantErr    bool
	}{
		{"both", "192.0.2.1", "2001:db8::1", false},
		{"none", "", "", false},
		{"ipv4 only", "192.0.2.1", "", false},
		{"ipv6 in ipv4 slot", "2001:db8::1", "", true},
		{"ipv4 in ipv6 slot", "", "192.0.2.1", true},
		{"mapped ipv4 in ipv6 slot", "", "::ffff:192.0.2.1", true},
		{"garbage", "not-an-ip", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.ipv4, tt.ipv6)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAddress) {
					t.Errorf("Expected ErrInvalidAddress, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if got.IPv4 != tt.ipv4 || got.IPv6 != tt.ipv6 {
				t.Errorf("Expected (%q, %q), got %s", tt.ipv4, tt.ipv6, got)
			}
		})
	}
}

type fakeDevices []tailscale.Device

func (f fakeDevices) Devices(context.Context) ([]tailscale.Device, error) { return f, nil }

func TestTailscaleSource(t *testing.T) {
	devices := fakeDevices{
		{Hostname: "laptop", Addresses: []string{"100.64.0.1", "fd7a:115c:a1e0::1"}},
		{Hostname: "web.tail1234.ts.net", Addresses: []string{"fd7a:115c:a1e0::2", "100.64.0.2", "100.64.0.3"}},
		{Hostname: "empty", Addresses: nil},
	}

	addrs, err := NewTailscaleSource(devices, "WEB").Addresses(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if addrs.IPv4 != "100.64.0.2" || addrs.IPv6 != "fd7a:115c:a1e0::2" {
		t.Errorf("Unexpected addresses: %s", addrs)
	}

	if _, err := NewTailscaleSource(devices, "missing").Addresses(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing device, got %v", err)
	}

	if _, err := NewTailscaleSource(devices, "empty").Addresses(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for device without addresses, got %v", err)
	}
}

func TestFromDeviceSameShortName(t *testing.T) {
	devices := fakeDevices{
		{Hostname: "web.tail1234.ts.net", Addresses: []string{"100.64.0.2"}},
		{Hostname: "web.other.ts.net", Addresses: []string{"100.64.0.9", "fd7a:115c:a1e0::9"}},
	}

	for i, want := range []Addresses{
		{IPv4: "100.64.0.2"},
		{IPv4: "100.64.0.9", IPv6: "fd7a:115c:a1e0::9"},
	} {
		got, err := FromDevice(devices[i])
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if got != want {
			t.Errorf("Device %d: expected %s, got %s", i, want, got)
		}
	}

	if _, err := FromDevice(tailscale.Device{Hostname: "empty"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestAddressesString(t *testing.T) {
	if got := (Addresses{IPv4: "192.0.2.1"}).String(); got != "ipv4: 192.0.2.1, ipv6: none" {
		t.Errorf("Unexpected string %q", got)
	}
}
