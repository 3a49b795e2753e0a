package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tempusbreve/zone-helper/internal/hostaddr"
)

var imdsCmd = &cobra.Command{
	Use:     "imds",
	Short:   "AWS Instance Metadata Service (IMDSv2) addresses used by --from-imds",
	GroupID: toolsGroup,
}

var imdsAddressesCmd = &cobra.Command{
	Use:   "addresses",
	Short: "Show the public addresses of this instance",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		addrs, err := hostaddr.NewIMDSClient().Addresses(ctx)
		if err != nil {
			return err
		}

		cmd.Println(addrs)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(imdsCmd)
	imdsCmd.AddCommand(imdsAddressesCmd)
}
