package cli

import (
	"github.com/spf13/cobra"

	"github.com/apisnip/apisnip/internal/config"
)

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "apisnip <input> [output]",
		Short: "Trim an API surface down to size",
		Long: `apisnip loads an OpenAPI document from a file or URL, lets you pick the
endpoints to keep, and writes a self-contained document containing those
endpoints and every component they transitively reference.

Without --select it opens an interactive picker; with --select it trims
directly.`,
		Version: "1.0.0",
		Args:    cobra.RangeArgs(1, 2),
		RunE:    run,

		SilenceUsage: true,
	}

	config.BindFlags(root)
	root.Flags().StringArrayP("select", "s", nil, `Endpoint to keep, as "METHOD /path" (repeatable; skips the picker)`)

	return root
}
