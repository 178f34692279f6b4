package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/apisnip/apisnip/internal/codec"
)

func newCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "apisnip"}
	BindFlags(cmd)
	return cmd
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(newCmd())
	require.NoError(t, err)

	require.Equal(t, "", cfg.Output)
	require.Equal(t, "", cfg.Format)
	require.False(t, cfg.Validate)
	require.Equal(t, 2.0, cfg.Search.PathWeight)
	require.Equal(t, 1.0, cfg.Search.DescriptionWeight)
}

func TestLoadFlagOverrides(t *testing.T) {
	cmd := newCmd()
	require.NoError(t, cmd.Flags().Set("output", "small.yaml"))
	require.NoError(t, cmd.Flags().Set("format", "json"))
	require.NoError(t, cmd.Flags().Set("validate", "true"))

	cfg, err := Load(cmd)
	require.NoError(t, err)
	require.Equal(t, "small.yaml", cfg.Output)
	require.Equal(t, "json", cfg.Format)
	require.True(t, cfg.Validate)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "apisnip.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`output: from-file.yaml
search:
  path-weight: 5
  description-weight: 2
`), 0o644))

	cmd := newCmd()
	require.NoError(t, cmd.Flags().Set("config", path))

	cfg, err := Load(cmd)
	require.NoError(t, err)
	require.Equal(t, "from-file.yaml", cfg.Output)
	require.Equal(t, 5.0, cfg.Search.PathWeight)
	require.Equal(t, 2.0, cfg.Search.DescriptionWeight)
}

func TestLoadFlagsWinOverFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "apisnip.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: from-file.yaml\n"), 0o644))

	cmd := newCmd()
	require.NoError(t, cmd.Flags().Set("config", path))
	require.NoError(t, cmd.Flags().Set("output", "from-flag.yaml"))

	cfg, err := Load(cmd)
	require.NoError(t, err)
	require.Equal(t, "from-flag.yaml", cfg.Output)
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		errContains string
	}{
		{
			name:   "valid",
			config: Config{Format: "yaml", Search: SearchConfig{PathWeight: 2, DescriptionWeight: 1}},
		},
		{
			name:        "invalid format",
			config:      Config{Format: "toml", Search: SearchConfig{PathWeight: 2, DescriptionWeight: 1}},
			errContains: "unsupported format",
		},
		{
			name:        "zero weight",
			config:      Config{Search: SearchConfig{PathWeight: 0, DescriptionWeight: 1}},
			errContains: "must be positive",
		},
		{
			name:        "description outweighs path",
			config:      Config{Search: SearchConfig{PathWeight: 1, DescriptionWeight: 2}},
			errContains: "must not be below",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Check()
			if tt.errContains == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestOutputPath(t *testing.T) {
	cfg := &Config{}
	require.Equal(t, DefaultOutput, cfg.OutputPath(codec.FormatYAML))
	require.Equal(t, DefaultOutputJSON, cfg.OutputPath(codec.FormatJSON))

	cfg.Output = "chosen.yaml"
	require.Equal(t, "chosen.yaml", cfg.OutputPath(codec.FormatJSON))
}
