package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tempusbreve/zone-helper/internal/config"
	"github.com/tempusbreve/zone-helper/internal/dns"
)

const (
	zoneGroup    = "zone"
	accountGroup = "account"
	toolsGroup   = "tools"
)

var rootCmd = &cobra.Command{
	Use:          "zone-helper",
	Short:        "Manage the address records of a DNS zone",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(viper.GetViper())
		if err != nil {
			return err
		}

		logger = newLogger(rootOpts.verbose)
		logger.V(2).Info("configuration loaded", "file", viper.ConfigFileUsed(), "provider", cfg.Provider)
		return nil
	},
}

var rootOpts = struct {
	configFile string
	provider   string
	verbose    int
	timeout    time.Duration
}{
	timeout: 30 * time.Second,
}

var (
	cfg    config.Config
	logger = logr.Discard()
)

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddGroup(
		&cobra.Group{ID: zoneGroup, Title: "Zone Commands:"},
		&cobra.Group{ID: accountGroup, Title: "Account Commands:"},
		&cobra.Group{ID: toolsGroup, Title: "Address Source Commands:"},
	)

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&rootOpts.configFile, "config", "c", "", "Config file (default $HOME/.zone-helper.yaml)")
	pf.StringVar(&rootOpts.provider, "provider", dns.ProviderOVH, "DNS provider (ovh, cloudflare)")
	pf.CountVarP(&rootOpts.verbose, "verbose", "v", "Increase log verbosity")
	pf.DurationVar(&rootOpts.timeout, "timeout", rootOpts.timeout, "Timeout for a whole command")
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		cobra.CheckErr(fmt.Errorf("loading .env: %w", err))
	}

	if rootOpts.configFile != "" {
		viper.SetConfigFile(rootOpts.configFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigName(".zone-helper")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if rootOpts.configFile != "" || !errors.As(err, &notFound) {
			cobra.CheckErr(fmt.Errorf("reading config: %w", err))
		}
	}

	config.Bind(viper.GetViper())
	viperHackEnv(rootCmd)
	viperHack(rootCmd.Commands())
}

func viperHack(commands []*cobra.Command) {
	for _, cmd := range commands {
		viper.BindPFlags(cmd.Flags())
		viperHackEnv(cmd)
		if cmd.HasSubCommands() {
			viperHack(cmd.Commands())
		}
	}
}

func viperHackEnv(cmd *cobra.Command) {
	viper.BindPFlags(cmd.Flags())
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		viper.BindPFlag(f.Name, f)
		if viper.IsSet(f.Name) && viper.GetString(f.Name) != "" {
			cmd.Flags().Set(f.Name, viper.GetString(f.Name))
		}
	})
}

func newLogger(verbosity int) logr.Logger {
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(os.Stderr, "%s: %s\n", prefix, args)
			return
		}
		fmt.Fprintln(os.Stderr, args)
	}, funcr.Options{Verbosity: verbosity})
}

// commandContext bounds a command by --timeout.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, rootOpts.timeout)
}

func zoneClient() (dns.ZoneClient, error) {
	switch cfg.Provider {
	case dns.ProviderOVH:
		api, err := ovhAPI()
		if err != nil {
			return nil, err
		}
		return dns.NewOVH(dns.WithOVHClient(api), dns.WithOVHLogger(logger.WithName("ovh"))), nil
	case dns.ProviderCloudflare:
		return dns.NewCloudFlareDNS(
			dns.WithCFToken(cfg.Cloudflare.Token),
			dns.WithCFLogger(logger.WithName("cloudflare")),
		), nil
	}

	return nil, fmt.Errorf("%w: %q", dns.ErrUnknownProvider, cfg.Provider)
}
