package cmd

import (
	"fmt"

	"github.com/ovh/go-ovh/ovh"
	"github.com/spf13/cobra"

	"github.com/tempusbreve/zone-helper/internal/account"
	"github.com/tempusbreve/zone-helper/internal/dns"
)

var accountCmd = &cobra.Command{
	Use:     "account",
	Aliases: []string{"acct"},
	Short:   "Manage the OVH account",
	GroupID: accountGroup,
}

var accountGreetingsCmd = &cobra.Command{
	Use:   "greetings",
	Short: "Greet the account owner",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		acct, err := ovhAccount()
		if err != nil {
			return err
		}

		name, err := acct.Greetings(ctx)
		if err != nil {
			return err
		}

		cmd.Printf("Welcome %s\n", name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(accountCmd)
	accountCmd.AddCommand(accountGreetingsCmd)
}

func ovhAPI() (*ovh.Client, error) {
	api, err := dns.NewOVHAPI(cfg.OVH.Endpoint, cfg.OVH.ApplicationKey, cfg.OVH.ApplicationSecret, cfg.OVH.ConsumerKey)
	if err != nil {
		return nil, fmt.Errorf("creating OVH client: %w", err)
	}
	return api, nil
}

func ovhAccount() (*account.Account, error) {
	api, err := ovhAPI()
	if err != nil {
		return nil, err
	}
	return account.New(api, account.WithLogger(logger.WithName("account"))), nil
}
