package hostaddr

import (
	"context"
	"fmt"
	"net/netip"
	"strings"

	"github.com/tailscale/tailscale-client-go/tailscale"
)

type DeviceLister interface {
	Devices(ctx context.Context) ([]tailscale.Device, error)
}

// TailscaleSource takes addresses from a device of a tailnet, matched on the
// first label of its hostname.
type TailscaleSource struct {
	devices DeviceLister
	name    string
}

func NewTailscaleSource(devices DeviceLister, deviceName string) *TailscaleSource {
	return &TailscaleSource{devices: devices, name: deviceName}
}

// NewTailscaleClient connects to the Tailscale API for tailnet.
func NewTailscaleClient(apiKey, tailnet string) (*tailscale.Client, error) {
	return tailscale.NewClient(apiKey, tailnet, tailscale.WithUserAgent("zone-helper"))
}

func (s *TailscaleSource) Addresses(ctx context.Context) (Addresses, error) {
	devices, err := s.devices.Devices(ctx)
	if err != nil {
		return Addresses{}, fmt.Errorf("listing tailscale devices: %w", err)
	}

	return DeviceAddresses(devices, s.name)
}

// DeviceAddresses picks the first IPv4 and first IPv6 address of the first
// device named name.
func DeviceAddresses(devices []tailscale.Device, name string) (Addresses, error) {
	for _, device := range devices {
		hostname, _, _ := strings.Cut(device.Hostname, ".")
		if strings.EqualFold(hostname, name) {
			return FromDevice(device)
		}
	}

	return Addresses{}, fmt.Errorf("%w: no tailscale device named %q", ErrNotFound, name)
}

// FromDevice picks the first IPv4 and first IPv6 address of device.
func FromDevice(device tailscale.Device) (Addresses, error) {
	var res Addresses
	for _, a := range device.Addresses {
		addr, err := netip.ParseAddr(a)
		if err != nil {
			continue
		}
		if addr.Is4() && res.IPv4 == "" {
			res.IPv4 = a
		}
		if addr.Is6() && res.IPv6 == "" {
			res.IPv6 = a
		}
	}

	if res.Empty() {
		return res, fmt.Errorf("%w: device %q has no address", ErrNotFound, device.Hostname)
	}
	return res, nil
}
