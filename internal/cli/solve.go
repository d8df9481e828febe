package cli

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/matzehuels/inflate/pkg/errors"
	"github.com/matzehuels/inflate/pkg/growth"
	"github.com/matzehuels/inflate/pkg/pipeline"
)

// solveOpts holds the command-line flags for the solve command.
type solveOpts struct {
	inputs inputFlags
	solver solverFlags
	table  bool   // print the per-layer table
	format string // output format: "text" or "json"
}

// solveCommand creates the one-shot solve command.
func (c *CLI) solveCommand() *cobra.Command {
	opts := solveOpts{format: pipeline.FormatText}

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve for the growth ratio of one layer stack",
		Example: `  inflate solve --first-cell 0.001 --layers 10 --total 0.05
  inflate solve --first-cell 0.001 --layers 10 --total 0.05 --table
  inflate solve --first-cell 0.001 --layers 10 --total 0.05 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormat(opts.format); err != nil {
				return err
			}
			req := opts.inputs.request(cmd, c.cfg.Inputs)
			solverOpts := opts.solver.options(cmd, c.cfg.Solver)
			return c.runSolve(cmd.Context(), req, solverOpts, &opts)
		},
	}

	opts.inputs.register(cmd)
	opts.solver.register(cmd)
	cmd.Flags().BoolVar(&opts.table, "table", false, "include the height of every layer")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: text, json")

	return cmd
}

func (c *CLI) runSolve(ctx context.Context, req growth.Request, solverOpts growth.Options, opts *solveOpts) error {
	logger := loggerFromContext(ctx)
	runner := pipeline.NewRunner(logger)

	out, err := runner.Solve(ctx, req, pipeline.Options{
		Options:       solverOpts,
		IncludeLayers: opts.table,
	})
	if err != nil {
		return err
	}

	if opts.format == pipeline.FormatJSON {
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "result cannot be written as JSON")
		}
		_, err = c.Out.Write(append(data, '\n'))
		return err
	}

	c.printSolution(out)
	if opts.table {
		c.printNewline()
		c.printRaw(layerTable(out.Layers))
	}
	return nil
}

// printSolution prints the text summary of a solve.
func (c *CLI) printSolution(out *pipeline.Result) {
	if out.Solution.Converged {
		c.printSuccess("Growth ratio %s", StyleNumber.Render(formatFloat(out.Solution.GrowthRatio)))
	} else {
		c.printWarning("Iteration cap reached; growth ratio is an estimate")
	}
	for _, kv := range solutionLines(out.Solution, out.Summary) {
		c.printKeyValue(kv[0], kv[1])
	}
}
