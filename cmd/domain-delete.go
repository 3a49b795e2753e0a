package cmd

import (
	"github.com/spf13/cobra"
)

var domainDeleteCmd = &cobra.Command{
	Use:     "delete",
	Aliases: []string{"del", "rm"},
	Short:   "Delete the A and AAAA records of a domain",
	Long: `Delete the A and AAAA records of a domain whose target is one of the
given addresses. Records pointing elsewhere are left alone.

Examples:
  zone-helper domain delete -z example.com -d www -4 203.0.113.7
  zone-helper domain delete -z example.com -d blog -n web --api`,
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

		logger.Info("deleting domain", "domain", domOpts.domain, "ipv4", addrs.IPv4, "ipv6", addrs.IPv6, "api", domOpts.api)
		changes, err := engine.Delete(ctx, idx, domOpts.desired(addrs))
		printChanges(cmd, changes)
		return err
	},
}

func init() {
	domainCmd.AddCommand(domainDeleteCmd)
	addDomainFlags(domainDeleteCmd)
}
