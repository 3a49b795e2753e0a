package cmd

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/tempusbreve/zone-helper/internal/hostaddr"
)

var tailscaleDevicesCmd = &cobra.Command{
	Use:     "devices [NAME...]",
	Aliases: []string{"ls", "inspect"},
	Short:   "Show the addresses of tailnet devices",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		nameFilter := newFilter(args)
		cl := mustConnectTailscale()

		devices, err := cl.Devices(ctx)
		if err != nil {
			return err
		}

		for _, device := range devices {
			hostname, _, _ := strings.Cut(device.Hostname, ".")
			if !nameFilter.Match(hostname) || !device.Authorized {
				continue
			}

			addrs, err := hostaddr.FromDevice(device)
			if err != nil {
				cmd.Printf("%s: %v\n", hostname, err)
				continue
			}
			cmd.Printf("%s: %s; last seen %s\n", hostname, addrs, humanize.Time(device.LastSeen.Time))
		}
		return nil
	},
}

func init() {
	tailscaleCmd.AddCommand(tailscaleDevicesCmd)
}
