package app

import (
	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the application configuration, loadable from environment
// variables (STARBUZZ_ prefix) or YAML config files.
type Config struct {
	Pricing PricingConfig
}

// PricingConfig controls how order totals are rendered.
type PricingConfig struct {
	LegacyFloatTotals bool `default:"false" usage:"Print totals as the legacy float64 sum instead of the exact decimal sum"`
}

// LoadConfig loads configuration from environment variables and YAML config
// files. Command-line flags are not consulted.
func LoadConfig() (*Config, error) {
	return loadConfig(aconfig.Config{
		SkipFlags: true,
		EnvPrefix: "STARBUZZ",
		Files:     []string{"starbuzz.yaml", "/etc/starbuzz/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
}

func loadConfig(acfg aconfig.Config) (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, acfg)
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	return &cfg, nil
}
