package main

import (
	"fmt"
	"math"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/threebody/internal/config"
	"github.com/san-kum/threebody/internal/dynamo"
	"github.com/san-kum/threebody/internal/export"
	"github.com/san-kum/threebody/internal/physics"
	"github.com/san-kum/threebody/internal/report"
	"github.com/san-kum/threebody/internal/storage"
	"github.com/san-kum/threebody/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// resolveConfig layers preset, config file and explicitly set flags, in
// that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return nil, err
		}
		cfg = p
	}

	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = c
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("steps") {
		cfg.NumSteps = numSteps
	}
	if flags.Changed("dm1") || flags.Changed("dm2") || flags.Changed("dm3") {
		d := cfg.Deltas()
		if flags.Changed("dm1") {
			d[0] = dm1
		}
		if flags.Changed("dm2") {
			d[1] = dm2
		}
		if flags.Changed("dm3") {
			d[2] = dm3
		}
		cfg.MassDeltas = d[:]
	}
	if flags.Changed("frame-ms") {
		cfg.FrameMs = frameMs
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func simulate(cfg *config.Config) (*physics.ThreeBody, dynamo.Histories, error) {
	sim, err := physics.New(cfg.Physics(), physics.WithLogger(logger))
	if err != nil {
		return nil, dynamo.Histories{}, err
	}

	start := time.Now()
	hist := sim.Run(cfg.NumSteps, cfg.Deltas())
	logger.Debug("simulation finished",
		zap.String("name", cfg.Name),
		zap.Int("steps", cfg.NumSteps),
		zap.Duration("elapsed", time.Since(start)),
	)
	return sim, hist, nil
}

func runMetadata(cfg *config.Config, sim *physics.ThreeBody) storage.RunMetadata {
	meta := storage.RunMetadata{
		Name:       cfg.Name,
		Dt:         cfg.Dt,
		NumSteps:   cfg.NumSteps,
		G:          sim.GetParams()["g"],
		BodyNames:  cfg.BodyNames(),
		MassDeltas: cfg.Deltas(),
		FrameMs:    cfg.FrameMs,
	}
	for i, b := range cfg.Bodies {
		meta.Masses[i] = b.Mass
	}
	for i, b := range sim.Bodies() {
		meta.FinalMasses[i] = b.Mass
	}
	return meta
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	sim, hist, err := simulate(cfg)
	if err != nil {
		return err
	}

	printTables(cfg.BodyNames(), hist, rows)

	final := sim.Bodies()
	fmt.Printf("%s: %d steps of %gs (t = %gs)\n", cfg.Name, sim.StepCount(), sim.Dt(), sim.Time())
	for i, name := range cfg.BodyNames() {
		fmt.Printf("  %-12s m=%-12g p=%s\n", name, final[i].Mass, final[i].Position)
	}

	if !save {
		return nil
	}

	store := storage.New(dataDir, logger)
	if err := store.Init(); err != nil {
		return err
	}
	runID, err := store.Save(runMetadata(cfg, sim), hist)
	if err != nil {
		return err
	}
	fmt.Printf("saved: %s\n", runID)
	return nil
}

// printTables prints one position table per body. limit 0 prints every
// row and a negative limit prints nothing.
func printTables(names [3]string, hist dynamo.Histories, limit int) {
	if limit < 0 {
		return
	}
	for i, t := range hist {
		title := fmt.Sprintf("%s positions", names[i])
		if limit > 0 && len(t) > limit {
			title = fmt.Sprintf("%s positions (first %d of %d)", names[i], limit, len(t))
			t = t[:limit]
		}
		fmt.Println(report.TrajectoryTable(title, t))
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir, logger)
	runs, err := store.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tSTEPS\tDT\tFINITE")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%gs\t%t\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.NumSteps,
			run.Dt,
			run.Finite,
		)
	}
	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, dynamo.Histories, error) {
	store := storage.New(dataDir, logger)
	meta, err := store.Load(runID)
	if err != nil {
		return nil, dynamo.Histories{}, err
	}
	hist, err := store.LoadTrajectories(runID)
	if err != nil {
		return nil, dynamo.Histories{}, err
	}
	return meta, hist, nil
}

func showRun(cmd *cobra.Command, args []string) error {
	meta, hist, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s (%s)\n", meta.ID, meta.Name)
	fmt.Printf("dt: %gs  steps: %d  G: %g\n", meta.Dt, meta.NumSteps, meta.G)
	fmt.Printf("mass deltas: %v\n\n", meta.MassDeltas)
	printTables(meta.BodyNames, hist, showRows)
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	if body < 0 || body > dynamo.NumBodies {
		return fmt.Errorf("body must be between 1 and %d", dynamo.NumBodies)
	}

	meta, hist, err := loadRun(args[0])
	if err != nil {
		return err
	}

	for i, t := range hist {
		if body != 0 && body != i+1 {
			continue
		}
		m := t.Matrix()
		for axis, label := range []string{"x", "y"} {
			data := make([]float64, len(m))
			for k, p := range m {
				v := p[axis]
				if math.IsInf(v, 0) {
					v = math.NaN()
				}
				data[k] = v
			}
			graph := asciigraph.Plot(data,
				asciigraph.Height(10),
				asciigraph.Width(80),
				asciigraph.Caption(fmt.Sprintf("%s %s (m) per step", meta.BodyNames[i], label)),
			)
			fmt.Println(graph)
			fmt.Println()
		}
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, hist, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.WriteJSON(os.Stdout, *meta, hist)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	meta, hist, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.WriteCSV(os.Stdout, meta.Dt, hist)
}

func frameDuration(ms int) time.Duration {
	if ms <= 0 {
		return config.DefaultFrameDuration
	}
	return time.Duration(ms) * time.Millisecond
}

func bodiesDrawn() int {
	if allBodies {
		return dynamo.NumBodies
	}
	return viz.DefaultRenderer().Bodies
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	meta, hist, err := loadRun(runID)
	if err != nil {
		return err
	}

	ms := meta.FrameMs
	if frameMs > 0 {
		ms = frameMs
	}

	r := viz.DefaultRenderer()
	r.Bodies = bodiesDrawn()
	anim, err := r.Plan(hist, frameDuration(ms))
	if err != nil {
		return err
	}

	path := output
	if path == "" {
		path = runID + ".svg"
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.WriteSVG(f, anim, !static); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Info("svg written", zap.String("path", path), zap.Int("frames", len(anim.Frames)))
	fmt.Printf("wrote %s\n", path)
	return nil
}

func animate(cmd *cobra.Command, args []string) error {
	var (
		title string
		names [3]string
		hist  dynamo.Histories
		ms    int
	)

	if len(args) == 1 {
		meta, h, err := loadRun(args[0])
		if err != nil {
			return err
		}
		title, names, hist, ms = meta.ID, meta.BodyNames, h, meta.FrameMs
		if frameMs > 0 {
			ms = frameMs
		}
	} else {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		_, h, err := simulate(cfg)
		if err != nil {
			return err
		}
		title, names, hist, ms = cfg.Name, cfg.BodyNames(), h, cfg.FrameMs
	}

	canvas := viz.NewCanvas(canvasW, canvasH)
	w, h := canvas.PixelSize()
	r := viz.Renderer{
		Width:  float64(w),
		Height: float64(h),
		Radius: radius,
		Margin: 2,
		Bodies: bodiesDrawn(),
	}
	anim, err := r.Plan(hist, frameDuration(ms))
	if err != nil {
		return err
	}

	return viz.Play(viz.NewPlayer(title, anim, canvas, names[:r.Bodies]))
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDT\tSTEPS\tBODIES")
	for _, name := range config.ListPresets() {
		cfg, err := config.GetPreset(name)
		if err != nil {
			return err
		}
		names := cfg.BodyNames()
		fmt.Fprintf(w, "%s\t%gs\t%d\t%s\n", name, cfg.Dt, cfg.NumSteps, strings.Join(names[:], ", "))
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return err
		}
		cfg = p
	}

	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}
