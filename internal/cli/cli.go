package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/inflate/pkg/buildinfo"
	"github.com/matzehuels/inflate/pkg/config"
	"github.com/matzehuels/inflate/pkg/growth"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "inflate"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// In and Out are the interactive session's input and every command's
	// standard output. They default to os.Stdin and os.Stdout.
	In  io.Reader
	Out io.Writer

	// Err receives progress indicators; logs go to the logger's writer.
	Err io.Writer

	configPath string
	cfg        *config.Config
}

// New creates a new CLI instance with a logger writing to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		In:     os.Stdin,
		Out:    os.Stdout,
		Err:    w,
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// Running the root command without a subcommand starts the interactive
// session.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Inflate computes boundary-layer growth ratios",
		Long: `Inflate finds the geometric growth ratio of a mesh inflation stack: given the
height of the first cell, the number of layers and the total height, it
solves for the ratio between consecutive layer heights.`,
		Version:      buildinfo.Resolve().Version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInteractive(cmd.Context())
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/inflate/config.toml)")

	root.AddCommand(c.solveCommand())
	root.AddCommand(c.interactiveCommand())
	root.AddCommand(c.plotCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file and attaches the logger to the command
// context.
func (c *CLI) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.Logger.Debug("loaded config", "path", c.resolvedConfigPath())
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

func (c *CLI) resolvedConfigPath() string {
	if c.configPath != "" {
		return c.configPath
	}
	p, err := config.DefaultPath()
	if err != nil {
		return ""
	}
	return p
}

// =============================================================================
// Shared Flags
// =============================================================================

// inputFlags holds the physical inputs of a solve.
type inputFlags struct {
	firstCell float64 // height of the wall-adjacent cell
	layers    float64 // number of layers
	total     float64 // total stack height
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.firstCell, "first-cell", 0, "height of the first (wall-adjacent) layer")
	cmd.Flags().Float64Var(&f.layers, "layers", 0, "number of layers")
	cmd.Flags().Float64Var(&f.total, "total", 0, "total height of the layer stack")
}

// request merges the flags over the config file inputs.
func (f *inputFlags) request(cmd *cobra.Command, defaults config.Inputs) growth.Request {
	req := defaults.Request()
	if cmd.Flags().Changed("first-cell") {
		req.FirstCellHeight = f.firstCell
	}
	if cmd.Flags().Changed("layers") {
		req.Layers = f.layers
	}
	if cmd.Flags().Changed("total") {
		req.TotalHeight = f.total
	}
	return req
}

// solverFlags holds the solver tuning flags.
type solverFlags struct {
	tolerance     float64
	maxIterations int
	maxUpper      float64
}

func (f *solverFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.tolerance, "tolerance", growth.DefaultTolerance, "bracket width on the ratio at which bisection stops")
	cmd.Flags().IntVar(&f.maxIterations, "max-iterations", growth.DefaultMaxIterations, "maximum number of bisection steps")
	cmd.Flags().Float64Var(&f.maxUpper, "max-upper", growth.DefaultMaxUpperBound, "largest ratio the bracket search may try")
}

// options merges the flags over the config file solver settings.
func (f *solverFlags) options(cmd *cobra.Command, defaults growth.Options) growth.Options {
	opts := defaults
	if cmd.Flags().Changed("tolerance") {
		opts.Tolerance = f.tolerance
	}
	if cmd.Flags().Changed("max-iterations") {
		opts.MaxIterations = f.maxIterations
	}
	if cmd.Flags().Changed("max-upper") {
		opts.MaxUpperBound = f.maxUpper
	}
	return opts
}
