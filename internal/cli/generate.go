package cli

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/voidshard/citylayout"
)

type generateOptions struct {
	config     string
	out        string
	bordersSVG string
	seed       int64
	size       int
	districts  int
}

func (c *CLI) generateCommand() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a city & write it out as a PNG",
		Example: `  citylayout generate --seed 42 --out city.png
  citylayout generate --config city.toml --borders-svg borders.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "toml config file (default: built in district types)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "city.png", "output PNG path")
	cmd.Flags().StringVar(&opts.bordersSVG, "borders-svg", "", "also write the main road graph as SVG")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "random seed (overrides config)")
	cmd.Flags().IntVar(&opts.size, "size", 0, "grid size in pixels (overrides config)")
	cmd.Flags().IntVar(&opts.districts, "districts", 0, "desired number of districts (overrides config)")

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, w io.Writer, opts *generateOptions) error {
	cfg, err := loadConfig(opts.config)
	if err != nil {
		return err
	}
	if opts.seed != 0 {
		cfg.Seed = opts.seed
	}
	if opts.size != 0 {
		cfg.GridSize = opts.size
	}
	if opts.districts != 0 {
		cfg.Districts = opts.districts
	}

	gen, err := citylayout.New(cfg, citylayout.WithLogger(c.Logger))
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	city, err := gen.Generate(ctx)
	if err != nil {
		return err
	}
	prog.done("Generated city")

	if err := city.SavePNG(opts.out, citylayout.DefaultScheme()); err != nil {
		return errors.Wrapf(err, "writing %s", opts.out)
	}

	if opts.bordersSVG != "" {
		svg, err := citylayout.BorderGraphSVG(ctx, city.MainRoads)
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.bordersSVG, svg, 0644); err != nil {
			return errors.Wrapf(err, "writing %s", opts.bordersSVG)
		}
	}

	printSummary(w, city, opts)
	return nil
}
