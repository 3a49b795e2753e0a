package cmd

import (
	"github.com/spf13/cobra"
)

var accountVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that the configured consumer key is validated",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		acct, err := ovhAccount()
		if err != nil {
			return err
		}

		cred, err := acct.Verify(ctx)
		if err != nil {
			return err
		}

		cmd.Printf("Consumer key %d is %s", cred.ID, cred.Status)
		if cred.Expiration != "" {
			cmd.Printf(" until %s", cred.Expiration)
		}
		cmd.Println()

		name, err := acct.Greetings(ctx)
		if err != nil {
			return err
		}
		cmd.Printf("Welcome %s\n", name)
		return nil
	},
}

func init() {
	accountCmd.AddCommand(accountVerifyCmd)
}
