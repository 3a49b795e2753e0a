package cmd

import (
	"github.com/spf13/cobra"
)

var domainAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add the A and AAAA records of a domain",
	Long: `Add the A and AAAA records of a domain when it holds no record yet.

Examples:
  # Point www at explicit addresses
  zone-helper domain add -z example.com -d www -4 203.0.113.7 -6 2001:db8::7

  # Give blog, and api.blog, the addresses of the existing host web
  zone-helper domain add -z example.com -d blog -n web --api

  # Use the public addresses of this EC2 instance
  zone-helper domain add -z example.com -d node1 --from-imds`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		engine, idx, err := loadZone(ctx)
		if err != nil {
			return err
		}

		addrs, err := domOpts.addresses(ctx, idx)
		if err != nil {
			return err
		}

		logger.Info("adding domain", "domain", domOpts.domain, "ipv4", addrs.IPv4, "ipv6", addrs.IPv6, "api", domOpts.api)
		changes, err := engine.Add(ctx, idx, domOpts.desired(addrs))
		printChanges(cmd, changes)
		return err
	},
}

func init() {
	domainCmd.AddCommand(domainAddCmd)
	addDomainFlags(domainAddCmd)
}
