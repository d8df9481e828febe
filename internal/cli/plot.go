package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/matzehuels/inflate/pkg/chart"
	"github.com/matzehuels/inflate/pkg/errors"
	"github.com/matzehuels/inflate/pkg/growth"
	"github.com/matzehuels/inflate/pkg/pipeline"
)

// plotOpts holds the command-line flags for the plot command.
type plotOpts struct {
	inputs  inputFlags
	solver  solverFlags
	kind    string  // chart kind: "residual" or "layers"
	output  string  // output file; the extension selects the format
	width   float64 // chart width in inches
	height  float64 // chart height in inches
	samples int     // residual curve resolution
}

// plotCommand creates the plot command.
func (c *CLI) plotCommand() *cobra.Command {
	opts := plotOpts{
		kind:    chart.KindResidual,
		width:   6,
		height:  4,
		samples: chart.DefaultSamples,
	}

	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Chart the residual curve or the layer heights of a solve",
		Example: `  inflate plot --first-cell 0.001 --layers 10 --total 0.05 -o residual.png
  inflate plot --first-cell 0.001 --layers 10 --total 0.05 --kind layers -o layers.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := chart.ValidateKind(opts.kind); err != nil {
				return err
			}
			if opts.output == "" {
				return errors.New(errors.ErrCodeInvalidFormat, "an output file is required (-o chart.png)")
			}
			if err := chart.ValidateFormat(opts.output); err != nil {
				return err
			}
			req := opts.inputs.request(cmd, c.cfg.Inputs)
			solverOpts := opts.solver.options(cmd, c.cfg.Solver)
			return c.runPlot(cmd.Context(), req, solverOpts, &opts)
		},
	}

	opts.inputs.register(cmd)
	opts.solver.register(cmd)
	cmd.Flags().StringVar(&opts.kind, "kind", opts.kind, "chart kind: residual, layers")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (.png, .svg or .pdf)")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "chart width in inches")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "chart height in inches")
	cmd.Flags().IntVar(&opts.samples, "samples", opts.samples, "points on the residual curve")

	return cmd
}

func (c *CLI) runPlot(ctx context.Context, req growth.Request, solverOpts growth.Options, opts *plotOpts) error {
	logger := loggerFromContext(ctx)
	runner := pipeline.NewRunner(logger)

	out, err := runner.Solve(ctx, req, pipeline.Options{
		Options:       solverOpts,
		IncludeLayers: opts.kind == chart.KindLayers,
	})
	if err != nil {
		return err
	}

	prog := newProgress(logger, "wrote chart")
	var spinner *Spinner
	if isTerminal(c.Err) {
		spinner = newSpinnerWithContext(ctx, c.Err, fmt.Sprintf("Drawing %s chart...", opts.kind))
		spinner.Start()
	}

	err = c.drawChart(out, opts)
	if spinner != nil {
		if err != nil {
			spinner.StopWithError("Chart failed")
		} else {
			spinner.Stop()
		}
	}
	if err != nil {
		return err
	}

	prog.done("kind", opts.kind, "path", opts.output)
	c.printSuccess("Growth ratio %s", StyleNumber.Render(formatFloat(out.Solution.GrowthRatio)))
	c.printFile(opts.output)
	return nil
}

func (c *CLI) drawChart(out *pipeline.Result, opts *plotOpts) error {
	var (
		p   *plot.Plot
		err error
	)
	switch opts.kind {
	case chart.KindLayers:
		p, err = chart.LayerHeights(out.Layers)
	default:
		p, err = chart.ResidualCurve(out.Request, out.Solution, opts.samples)
	}
	if err != nil {
		return err
	}
	return chart.Save(p, opts.output, vg.Length(opts.width)*vg.Inch, vg.Length(opts.height)*vg.Inch)
}
