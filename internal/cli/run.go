package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/apisnip/apisnip/internal/codec"
	"github.com/apisnip/apisnip/internal/config"
	"github.com/apisnip/apisnip/internal/loader"
	"github.com/apisnip/apisnip/internal/rank"
	"github.com/apisnip/apisnip/internal/spec"
	"github.com/apisnip/apisnip/internal/tui"
	"github.com/apisnip/apisnip/internal/validate"
)

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd)
	if err != nil {
		return err
	}
	if len(args) > 1 {
		cfg.Output = args[1]
	}

	src, err := loader.Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	root, err := codec.Decode(src.Data)
	if err != nil {
		return err
	}
	doc, err := spec.Load(root)
	if err != nil {
		return err
	}

	selects, _ := cmd.Flags().GetStringArray("select")

	var selection map[spec.Endpoint]bool
	if len(selects) > 0 {
		selection, err = parseSelection(doc, selects)
		if err != nil {
			return err
		}
	} else {
		selection, err = pick(doc, args[0], cfg)
		if err != nil || selection == nil {
			return err
		}
	}

	return write(doc, selection, src, cfg)
}

// pick runs the interactive picker. A nil selection means the user quit
// without writing.
func pick(doc *spec.Document, infile string, cfg *config.Config) (map[spec.Endpoint]bool, error) {
	weights := rank.Weights{
		Path:        cfg.Search.PathWeight,
		Description: cfg.Search.DescriptionWeight,
	}

	program := tea.NewProgram(
		tui.New(doc, infile, weights),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("running picker: %w", err)
	}

	model, ok := final.(tui.Model)
	if !ok || !model.ShouldWrite() {
		return nil, nil
	}
	return model.Selection(), nil
}

// parseSelection resolves "METHOD /path" arguments against the document.
func parseSelection(doc *spec.Document, selects []string) (map[spec.Endpoint]bool, error) {
	selection := make(map[spec.Endpoint]bool)
	for _, s := range selects {
		fields := strings.Fields(s)
		if len(fields) != 2 {
			return nil, fmt.Errorf("invalid selection %q (expected \"METHOD /path\")", s)
		}
		e := spec.Endpoint{Method: strings.ToUpper(fields[0]), Path: fields[1]}
		if _, ok := doc.Operation(e); !ok {
			return nil, fmt.Errorf("no such endpoint: %s", e)
		}
		selection[e] = true
	}
	return selection, nil
}

func write(doc *spec.Document, selection map[spec.Endpoint]bool, src *loader.Source, cfg *config.Config) error {
	trimmed, diags := spec.Trim(doc, selection)
	for _, d := range diags {
		fmt.Fprintf(os.Stderr, "warning: %s reference %s in %s\n", d.Kind, d.Ref, d.Context)
	}

	format, err := codec.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	if format == "" {
		if cfg.Output != "" {
			format = codec.DetectFormat(cfg.Output, nil)
		} else {
			// No destination and no format requested: keep the input's.
			format = src.Format
		}
	}
	outPath := cfg.OutputPath(format)

	data, err := codec.Encode(trimmed.Root(), format)
	if err != nil {
		return err
	}

	if cfg.Validate {
		if err := validate.Document(data); err != nil {
			return err
		}
	}

	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	fmt.Printf("wrote %d of %d endpoints to %s\n",
		len(selection), len(doc.Endpoints()), outPath)
	return nil
}
