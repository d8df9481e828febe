package cli

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/inflate/pkg/config"
	"github.com/matzehuels/inflate/pkg/errors"
	"github.com/matzehuels/inflate/pkg/growth"
	"github.com/matzehuels/inflate/pkg/pipeline"
)

// sessionField is one value asked for by the interactive session.
type sessionField struct {
	label       string
	placeholder string
}

// sessionFields lists the prompts in the order they are asked.
var sessionFields = []sessionField{
	{label: "Number of layers", placeholder: "10"},
	{label: "First layer height", placeholder: "0.001"},
	{label: "Total height", placeholder: "0.05"},
}

// sessionValues holds one answer per entry of sessionFields.
type sessionValues [3]float64

// inputDefaults orders the config file inputs like sessionFields.
func inputDefaults(in config.Inputs) sessionValues {
	return sessionValues{in.Layers, in.FirstCellHeight, in.TotalHeight}
}

func (v sessionValues) request() growth.Request {
	return growth.Request{Layers: v[0], FirstCellHeight: v[1], TotalHeight: v[2]}
}

// parseField reads one numeric answer. An empty answer takes def when def is
// set.
func parseField(s string, def float64) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		if def > 0 {
			return def, nil
		}
		return 0, stderrors.New("a value is required")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return v, nil
}

// interactiveCommand creates the interactive session command. The root
// command runs the same session when no subcommand is given.
func (c *CLI) interactiveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"i"},
		Short:   "Prompt for inputs and solve until a ratio is accepted",
		Long: `Prompt for the number of layers, the first layer height and the total height,
solve for the growth ratio and ask whether to accept it. Declining starts
over with the previous answers as defaults.

On a terminal the session is a full-screen form; with piped input it reads
one answer per line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInteractive(cmd.Context())
		},
	}
}

func (c *CLI) runInteractive(ctx context.Context) error {
	if isTerminal(c.In) && isTerminal(c.Out) {
		return c.runTUI(ctx)
	}
	return c.runPrompt(ctx)
}

// isTerminal reports whether v is a file attached to a terminal.
func isTerminal(v any) bool {
	f, ok := v.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// =============================================================================
// Line Prompt
// =============================================================================

// runPrompt runs the session over plain lines of input. End of input ends
// the session without error.
func (c *CLI) runPrompt(ctx context.Context) error {
	err := c.promptLoop(ctx, newLineReader(c.In))
	if stderrors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (c *CLI) promptLoop(ctx context.Context, lr *lineReader) error {
	runner := pipeline.NewRunner(loggerFromContext(ctx))
	defaults := inputDefaults(c.cfg.Inputs)

	c.printRaw(StyleTitle.Render("Boundary-layer growth ratio"))
	for {
		var vals sessionValues
		for i, f := range sessionFields {
			v, err := c.promptFloat(ctx, lr, f.label, defaults[i])
			if err != nil {
				return err
			}
			vals[i] = v
		}
		defaults = vals

		out, err := runner.Solve(ctx, vals.request(), pipeline.Options{Options: c.cfg.Solver})
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.printError("%s", errors.UserMessage(err))
			again, err := c.promptYesNo(ctx, lr, "Try again?")
			if err != nil || !again {
				return err
			}
			continue
		}

		c.printSolution(out)
		ok, err := c.promptYesNo(ctx, lr, "Accept this ratio?")
		if err != nil {
			return err
		}
		if ok {
			c.printInfo("Using growth ratio %s", formatFloat(out.Solution.GrowthRatio))
			return nil
		}
	}
}

// promptFloat asks for a number until a valid one is entered.
func (c *CLI) promptFloat(ctx context.Context, lr *lineReader, label string, def float64) (float64, error) {
	hint := ""
	if def > 0 {
		hint = " " + StyleDim.Render("["+formatFloat(def)+"]")
	}
	for {
		fmt.Fprintf(c.Out, "%s%s: ", label, hint)
		line, err := lr.next(ctx)
		if err != nil {
			return 0, err
		}
		v, err := parseField(line, def)
		if err != nil {
			c.printError("%s", err)
			continue
		}
		return v, nil
	}
}

// promptYesNo asks a y/n question until it gets an answer.
func (c *CLI) promptYesNo(ctx context.Context, lr *lineReader, question string) (bool, error) {
	for {
		fmt.Fprintf(c.Out, "%s (y/n): ", question)
		line, err := lr.next(ctx)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		c.printWarning("Please answer y or n")
	}
}

// lineReader reads lines in the background so a blocked read does not
// delay cancellation.
type lineReader struct {
	lines chan string
	err   error // set before lines is closed
}

func newLineReader(r io.Reader) *lineReader {
	lr := &lineReader{lines: make(chan string)}
	go func() {
		defer close(lr.lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			lr.lines <- sc.Text()
		}
		lr.err = sc.Err()
	}()
	return lr
}

// next returns the next line, io.EOF at end of input, or the context error.
func (lr *lineReader) next(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-lr.lines:
		if !ok {
			if lr.err != nil {
				return "", lr.err
			}
			return "", io.EOF
		}
		return line, nil
	}
}

// =============================================================================
// Terminal Form
// =============================================================================

// runTUI runs the session as a bubbletea form.
func (c *CLI) runTUI(ctx context.Context) error {
	// Solver logs would corrupt the form; the result is shown in the form.
	runner := pipeline.NewRunner(log.New(io.Discard))
	m := newSessionModel(ctx, runner, c.cfg.Solver, inputDefaults(c.cfg.Inputs))

	final, err := runSessionProgram(ctx, m, c.In, c.Out)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return err
	}
	if sm, ok := final.(sessionModel); ok && sm.accepted {
		c.printSuccess("Using growth ratio %s", StyleNumber.Render(formatFloat(sm.result.Solution.GrowthRatio)))
	}
	return nil
}
