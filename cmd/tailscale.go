package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tailscale/tailscale-client-go/tailscale"

	"github.com/tempusbreve/zone-helper/internal/hostaddr"
)

var tailscaleCmd = &cobra.Command{
	Use:     "tailscale",
	Aliases: []string{"ts"},
	Short:   "Tailscale devices usable with --tailscale-device",
	GroupID: toolsGroup,
}

func init() {
	rootCmd.AddCommand(tailscaleCmd)
}

func mustConnectTailscale() *tailscale.Client {
	cl, err := hostaddr.NewTailscaleClient(cfg.Tailscale.APIKey, cfg.Tailscale.Tailnet)
	cobra.CheckErr(err)
	return cl
}

type filter map[string]bool

func newFilter(args []string) filter {
	var f filter = filter{}
	for _, arg := range args {
		f[arg] = true
	}
	return f
}

func (f filter) Match(name string) bool {
	if len(f) == 0 {
		return true
	}

	_, ok := f[name]
	return ok
}
