package cmd

import (
	"github.com/spf13/cobra"
)

var accountRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Request a new consumer key",
	Long: `Request a new consumer key allowed to manage zone records.

The key must be validated by visiting the printed URL, then stored as
ovh.consumer-key in the configuration (or OVH_CONSUMER_KEY). Run
'zone-helper account verify' once done.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		acct, err := ovhAccount()
		if err != nil {
			return err
		}

		v, err := acct.Register(ctx, registerRedirect)
		if err != nil {
			return err
		}

		cmd.Printf("Please visit %s to authenticate the request\n", v.ValidationURL)
		cmd.Printf("The consumerKey is: %s (%s)\n", v.ConsumerKey, v.State)
		return nil
	},
}

var registerRedirect string

func init() {
	accountCmd.AddCommand(accountRegisterCmd)

	accountRegisterCmd.Flags().StringVar(&registerRedirect, "redirect", "", "URL to go to once the key is validated")
}
