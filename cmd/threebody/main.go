package main

import (
	"os"

	"github.com/san-kum/threebody/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dataDir    string
	verbose    bool
	configFile string
	preset     string
	dt         float64
	numSteps   int
	dm1        float64
	dm2        float64
	dm3        float64
	frameMs    int
	save       bool
	rows       int
	showRows   int
	// Renderer
	canvasW   int
	canvasH   int
	radius    float64
	allBodies bool
	// Plot / svg
	body   int
	output string
	static bool

	logger = zap.NewNop()
)

// main wires the threebody CLI: simulation runs, the run store, and the
// text, plot, animation and SVG presenters built on top of it.
func main() {
	rootCmd := &cobra.Command{
		Use:           "threebody",
		Short:         "three-body gravity simulator",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.New(verbose)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".threebody", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run simulation and print trajectories",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addConfigFlags(runCmd)
	runCmd.Flags().BoolVar(&save, "save", false, "save run to the data directory")
	runCmd.Flags().IntVar(&rows, "rows", 20, "rows per trajectory table (0 = all, -1 = none)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print saved trajectories as tables",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().IntVar(&showRows, "rows", 0, "rows per trajectory table (0 = all)")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot x and y against step",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&body, "body", 0, "body to plot (1-3, 0 = all)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "render a saved run as an animated SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	svgCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <run_id>.svg)")
	svgCmd.Flags().BoolVar(&static, "static", false, "draw paths instead of timed markers")
	svgCmd.Flags().BoolVar(&allBodies, "all-bodies", false, "also draw the test body")
	svgCmd.Flags().IntVar(&frameMs, "frame-ms", 0, "frame duration override in milliseconds")

	animateCmd := &cobra.Command{
		Use:   "animate [run_id]",
		Short: "play a run in the terminal",
		Long:  "Play a saved run, or simulate from --preset/--config when no run id is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  animate,
	}
	addConfigFlags(animateCmd)
	animateCmd.Flags().IntVar(&canvasW, "width", 60, "canvas width in characters")
	animateCmd.Flags().IntVar(&canvasH, "height", 20, "canvas height in characters")
	animateCmd.Flags().Float64Var(&radius, "radius", 1.5, "marker radius in braille dots")
	animateCmd.Flags().BoolVar(&allBodies, "all-bodies", false, "also draw the test body")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write a config file to edit",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}
	initCmd.Flags().StringVar(&preset, "preset", "", "start from a preset")

	rootCmd.AddCommand(runCmd, listCmd, showCmd, plotCmd, exportJSONCmd, exportCSVCmd, svgCmd, animateCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&dt, "dt", 0, "timestep in seconds")
	cmd.Flags().IntVar(&numSteps, "steps", 0, "number of steps")
	cmd.Flags().Float64Var(&dm1, "dm1", 0, "mass delta per step for body 1 (kg)")
	cmd.Flags().Float64Var(&dm2, "dm2", 0, "mass delta per step for body 2 (kg)")
	cmd.Flags().Float64Var(&dm3, "dm3", 0, "mass delta per step for body 3 (kg)")
	cmd.Flags().IntVar(&frameMs, "frame-ms", 0, "frame duration in milliseconds")
}
