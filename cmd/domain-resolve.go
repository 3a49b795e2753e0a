package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tempusbreve/zone-helper/internal/hostaddr"
	"github.com/tempusbreve/zone-helper/internal/zone"
)

var domainResolveCmd = &cobra.Command{
	Use:   "resolve HOST",
	Short: "Show the addresses the zone holds for a host",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		_, idx, err := loadZone(ctx)
		if err != nil {
			return err
		}

		ipv4, ipv6 := zone.Resolve(idx, args[0])
		cmd.Printf("%s: %s\n", args[0], hostaddr.Addresses{IPv4: ipv4, IPv6: ipv6})
		return nil
	},
}

func init() {
	domainCmd.AddCommand(domainResolveCmd)
}
