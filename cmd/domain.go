package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tempusbreve/zone-helper/internal/hostaddr"
	"github.com/tempusbreve/zone-helper/internal/zone"
)

var domainCmd = &cobra.Command{
	Use:     "domain",
	Aliases: []string{"dom", "d"},
	Short:   "Manage the domains of a zone",
	GroupID: zoneGroup,
}

var domOpts = domainOpts{}

type domainOpts struct {
	zone            string
	domain          string
	hostname        string
	ipv4            string
	ipv6            string
	tailscaleDevice string
	api             bool
	fromIMDS        bool
	dryRun          bool
}

func init() {
	rootCmd.AddCommand(domainCmd)

	domainCmd.PersistentFlags().StringVarP(&domOpts.zone, "zone", "z", "", "Zone name")
	_ = domainCmd.MarkPersistentFlagRequired("zone")
}

// addDomainFlags registers the flags shared by add and delete.
func addDomainFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&domOpts.domain, "domain", "d", "", "Domain name, relative to the zone")
	f.StringVarP(&domOpts.hostname, "hostname", "n", "", "Take the addresses of this zone host")
	f.BoolVarP(&domOpts.api, "api", "a", false, "Also handle the api. sub domain")
	f.StringVarP(&domOpts.ipv4, "ipv4", "4", "", "The IPv4 address")
	f.StringVarP(&domOpts.ipv6, "ipv6", "6", "", "The IPv6 address")
	f.BoolVar(&domOpts.fromIMDS, "from-imds", false, "Take the addresses of this EC2 instance")
	f.StringVar(&domOpts.tailscaleDevice, "tailscale-device", "", "Take the addresses of this Tailscale device")
	f.BoolVar(&domOpts.dryRun, "dry-run", false, "Log the changes without applying them")

	_ = cmd.MarkFlagRequired("domain")
	cmd.MarkFlagsMutuallyExclusive("hostname", "from-imds", "tailscale-device")
}

// addresses resolves the addresses to work with. Explicit --ipv4/--ipv6
// values are replaced by those of a host source when one is given.
func (o domainOpts) addresses(ctx context.Context, idx *zone.Index) (hostaddr.Addresses, error) {
	addrs, err := hostaddr.Parse(o.ipv4, o.ipv6)
	if err != nil {
		return addrs, err
	}

	var source hostaddr.Source
	switch {
	case o.hostname != "":
		ipv4, ipv6 := zone.Resolve(idx, o.hostname)
		addrs = hostaddr.Addresses{IPv4: ipv4, IPv6: ipv6}
		logger.Info("hostname resolved", "hostname", o.hostname, "ipv4", addrs.IPv4, "ipv6", addrs.IPv6)
		return addrs, nil
	case o.fromIMDS:
		source = hostaddr.NewIMDSClient()
	case o.tailscaleDevice != "":
		cl, err := hostaddr.NewTailscaleClient(cfg.Tailscale.APIKey, cfg.Tailscale.Tailnet)
		if err != nil {
			return addrs, fmt.Errorf("connecting to tailscale: %w", err)
		}
		source = hostaddr.NewTailscaleSource(cl, o.tailscaleDevice)
	default:
		return addrs, nil
	}

	addrs, err = source.Addresses(ctx)
	if err != nil {
		return addrs, err
	}

	logger.Info("host addresses found", "ipv4", addrs.IPv4, "ipv6", addrs.IPv6)
	return addrs, nil
}

func (o domainOpts) desired(addrs hostaddr.Addresses) zone.Desired {
	return zone.Desired{
		Domain:    o.domain,
		IPv4:      addrs.IPv4,
		IPv6:      addrs.IPv6,
		MirrorAPI: o.api,
	}
}

// loadZone builds the record index of the zone named by --zone.
func loadZone(ctx context.Context) (*zone.Engine, *zone.Index, error) {
	client, err := zoneClient()
	if err != nil {
		return nil, nil, err
	}

	idx, err := zone.Build(ctx, client, domOpts.zone)
	if err != nil {
		return nil, nil, fmt.Errorf("loading zone %q: %w", domOpts.zone, err)
	}
	logger.V(1).Info("zone loaded", "zone", domOpts.zone, "domains", idx.Len(), "records", idx.Total())

	engine := zone.NewEngine(client, domOpts.zone,
		zone.WithLogger(logger.WithName("engine")),
		zone.WithDryRun(domOpts.dryRun),
	)

	return engine, idx, nil
}

func printChanges(cmd *cobra.Command, changes []zone.Change) {
	for _, c := range changes {
		if c.Action == zone.ActionSkip {
			cmd.Printf("%s %s: already present\n", c.Action, c.Record.SubDomain)
			continue
		}

		status := "ok"
		switch {
		case c.Err != nil:
			status = c.Err.Error()
		case domOpts.dryRun:
			status = "dry run"
		}
		cmd.Printf("%s %s %s %s: %s\n", c.Action, c.Record.Type, c.Record.SubDomain, c.Record.Target, status)
	}
}
