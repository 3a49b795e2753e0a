// Package config loads the zone-helper settings from flags, environment and
// the optional YAML configuration file.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/tempusbreve/zone-helper/internal/dns"
)

type OVH struct {
	Endpoint          string `mapstructure:"endpoint" yaml:"endpoint"`
	ApplicationKey    string `mapstructure:"application-key" yaml:"application-key"`
	ApplicationSecret string `mapstructure:"application-secret" yaml:"application-secret"`
	ConsumerKey       string `mapstructure:"consumer-key" yaml:"consumer-key"`
}

type Cloudflare struct {
	Token string `mapstructure:"token" yaml:"token"`
}

type Tailscale struct {
	APIKey  string `mapstructure:"api-key" yaml:"api-key"`
	Tailnet string `mapstructure:"tailnet" yaml:"tailnet"`
}

type Config struct {
	Provider   string     `mapstructure:"provider" yaml:"provider"`
	OVH        OVH        `mapstructure:"ovh" yaml:"ovh"`
	Cloudflare Cloudflare `mapstructure:"cloudflare" yaml:"cloudflare"`
	Tailscale  Tailscale  `mapstructure:"tailscale" yaml:"tailscale"`
}

// EnvPrefix prefixes the environment variables read for every setting and
// flag, e.g. ZONE_HELPER_PROVIDER or ZONE_HELPER_ZONE.
const EnvPrefix = "ZONE_HELPER"

// keys are also read from their unprefixed variables, such as
// OVH_APPLICATION_KEY, the names go-ovh and the other tools use.
var keys = []string{
	"ovh.endpoint",
	"ovh.application-key",
	"ovh.application-secret",
	"ovh.consumer-key",
	"cloudflare.token",
	"tailscale.api-key",
	"tailscale.tailnet",
}

var envReplacer = strings.NewReplacer("-", "_", ".", "_")

// Bind prepares v for Load: prefixed environment lookup with "-" and "."
// mapped to "_", unprefixed names for the credential keys, and defaults for
// every known key.
func Bind(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envReplacer)
	v.AutomaticEnv()

	v.SetDefault("provider", dns.ProviderOVH)
	for _, key := range keys {
		env := strings.ToUpper(envReplacer.Replace(key))
		_ = v.BindEnv(key, EnvPrefix+"_"+env, env)
		v.SetDefault(key, "")
	}
}

// Load reads the configuration from v. The provider defaults to OVH.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}

	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	switch cfg.Provider {
	case "":
		cfg.Provider = dns.ProviderOVH
	case dns.ProviderOVH, dns.ProviderCloudflare:
	default:
		return cfg, fmt.Errorf("%w: %q", dns.ErrUnknownProvider, cfg.Provider)
	}

	return cfg, nil
}
