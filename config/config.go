package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"euclid-dex/pkg/catalog"
	"euclid-dex/pkg/client"
)

// Config holds the application configuration
type Config struct {
	BaseURL         string
	APIKey          string
	HTTPTimeout     time.Duration
	DefaultSlippage float64
	SessionFile     string
	Cosmos          CosmosConfig
	EVM             EVMConfig
	Chains          []catalog.Chain
}

// CosmosConfig configures the Keplr-style wallet
type CosmosConfig struct {
	Mnemonic     string
	RESTEndpoint string
	DefaultChain string
}

// EVMConfig configures the injected-provider wallet
type EVMConfig struct {
	RPCURL     string
	PrivateKey string
	ChainID    string
}

// Load reads configuration from environment variables and an optional config
// file. An empty path searches $HOME and the working directory for
// .euclid-dex.yaml.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".euclid-dex")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME")
		v.AddConfigPath(".")
	}

	// Set default values
	v.SetDefault("base_url", client.DefaultBaseURL)
	v.SetDefault("http_timeout", 30*time.Second)
	v.SetDefault("default_slippage", 1.0)
	v.SetDefault("cosmos.rest_endpoint", "https://lcd.osmotest5.osmosis.zone")
	v.SetDefault("cosmos.default_chain", "osmosis")
	v.SetDefault("evm.chain_id", "11155111")

	// EUCLID_DEX_COSMOS_MNEMONIC -> cosmos.mnemonic
	v.SetEnvPrefix("EUCLID_DEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, errors.Wrap(err, "failed to read config file")
		}
	}

	cfg := &Config{
		BaseURL:         v.GetString("base_url"),
		APIKey:          v.GetString("api_key"),
		HTTPTimeout:     v.GetDuration("http_timeout"),
		DefaultSlippage: v.GetFloat64("default_slippage"),
		SessionFile:     v.GetString("session_file"),
		Cosmos: CosmosConfig{
			Mnemonic:     v.GetString("cosmos.mnemonic"),
			RESTEndpoint: v.GetString("cosmos.rest_endpoint"),
			DefaultChain: v.GetString("cosmos.default_chain"),
		},
		EVM: EVMConfig{
			RPCURL:     v.GetString("evm.rpc_url"),
			PrivateKey: v.GetString("evm.private_key"),
			ChainID:    v.GetString("evm.chain_id"),
		},
	}

	if err := v.UnmarshalKey("chains", &cfg.Chains); err != nil {
		return nil, errors.Wrap(err, "invalid chains section")
	}

	if cfg.HTTPTimeout <= 0 {
		return nil, errors.Errorf("http_timeout must be positive, got %s", cfg.HTTPTimeout)
	}

	return cfg, nil
}

// Catalog builds the chain catalog, falling back to the built-in chains
func (c *Config) Catalog() *catalog.Catalog {
	return catalog.New(c.Chains)
}
