package config

import (
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"

	"github.com/apisnip/apisnip/internal/codec"
)

// Default output destinations when the user supplies none.
const (
	DefaultOutput     = "apisnip.out.yaml"
	DefaultOutputJSON = "apisnip.out.json"
)

type Config struct {
	Output   string       `koanf:"output"`
	Format   string       `koanf:"format"`
	Validate bool         `koanf:"validate"`
	Search   SearchConfig `koanf:"search"`
}

type SearchConfig struct {
	PathWeight        float64 `koanf:"path-weight"`
	DescriptionWeight float64 `koanf:"description-weight"`
}

// BindFlags binds the shared flags to the command.
func BindFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	flags.StringP("config", "c", "", "Config file path (default: apisnip.yaml)")
	flags.StringP("output", "o", "", "Output file path")
	flags.StringP("format", "f", "", "Output format: yaml, json (default: inferred)")
	flags.Bool("validate", false, "Validate the trimmed document before writing")
}

// Load merges defaults, the optional config file and flag overrides, in that
// order.
func Load(cmd *cobra.Command) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]any{
		"search.path-weight":        2.0,
		"search.description-weight": 1.0,
	}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	configFile, _ := cmd.Flags().GetString("config")
	if configFile == "" {
		if _, err := os.Stat("apisnip.yaml"); err == nil {
			configFile = "apisnip.yaml"
		}
	}
	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	flagsMap := buildFlagsMap(cmd)
	if len(flagsMap) > 0 {
		if err := k.Load(confmap.Provider(flagsMap, "."), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Check(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func buildFlagsMap(cmd *cobra.Command) map[string]any {
	m := make(map[string]any)

	if v, err := cmd.Flags().GetString("output"); err == nil && v != "" {
		m["output"] = v
	}
	if v, err := cmd.Flags().GetString("format"); err == nil && v != "" {
		m["format"] = v
	}
	if cmd.Flags().Changed("validate") {
		v, _ := cmd.Flags().GetBool("validate")
		m["validate"] = v
	}

	return m
}

func (c *Config) Check() error {
	if _, err := codec.ParseFormat(c.Format); err != nil {
		return err
	}
	if c.Search.PathWeight <= 0 || c.Search.DescriptionWeight <= 0 {
		return fmt.Errorf("search weights must be positive")
	}
	if c.Search.PathWeight < c.Search.DescriptionWeight {
		return fmt.Errorf("path weight must not be below description weight")
	}
	return nil
}

// OutputPath resolves the destination, falling back to the fixed default for
// the chosen format.
func (c *Config) OutputPath(format codec.Format) string {
	if c.Output != "" {
		return c.Output
	}
	if format == codec.FormatJSON {
		return DefaultOutputJSON
	}
	return DefaultOutput
}
