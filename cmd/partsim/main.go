package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/partsim/internal/config"
	"github.com/san-kum/partsim/internal/metrics"
	"github.com/san-kum/partsim/internal/scene"
	"github.com/san-kum/partsim/internal/sim"
	"github.com/san-kum/partsim/internal/storage"
	"github.com/san-kum/partsim/internal/viz"
)

var (
	dataDir     string
	dt          float64
	duration    float64
	maxContacts int
	iterations  int
	mass        float64
	damping     float64
	gravityY    float64
	restitution float64
	configFile  string
	preset      string
	frameRate   int
	particleIdx int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "partsim",
		Short: "particle physics playground",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".partsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scene]",
		Short: "run a scene and save the result",
		Args:  cobra.ExactArgs(1),
		RunE:  runScene,
	}
	addSceneFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&particleIdx, "particle", 0, "particle index to plot")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	scenesCmd := &cobra.Command{
		Use:   "scenes",
		Short: "list available scenes",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range scene.List() {
				fmt.Println(name)
			}
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [scene]",
		Short: "list available presets for a scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets(args[0])
			if len(names) == 0 {
				fmt.Printf("no presets for scene: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range names {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live [scene]",
		Short: "run a scene with live visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addSceneFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 60, "frame rate")

	benchCmd := &cobra.Command{
		Use:   "bench [scene]",
		Short: "benchmark a scene",
		Args:  cobra.ExactArgs(1),
		RunE:  benchScene,
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, scenesCmd, presetsCmd, liveCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSceneFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().IntVar(&maxContacts, "max-contacts", 0, "contact buffer size (0 = scene default)")
	cmd.Flags().IntVar(&iterations, "iterations", 0, "resolver iteration budget (0 = derived)")
	cmd.Flags().Float64Var(&mass, "mass", 0, "particle mass (0 = scene default)")
	cmd.Flags().Float64Var(&damping, "damping", 0, "velocity damping (0 = scene default)")
	cmd.Flags().Float64Var(&gravityY, "gravity", 0, "gravity y component (0 = scene default)")
	cmd.Flags().Float64Var(&restitution, "restitution", 0, "ground restitution")
}

// applyConfig merges preset, config file, and flags. Presets apply
// first, the config file next, and explicitly changed flags win.
func applyConfig(cmd *cobra.Command, sceneName string) error {
	if preset != "" {
		cfg := config.GetPreset(sceneName, preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(sceneName))
		}
		applyFileConfig(cmd, cfg)
	}

	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		applyFileConfig(cmd, cfg)
	}

	return nil
}

func applyFileConfig(cmd *cobra.Command, cfg *config.Config) {
	if !cmd.Flags().Changed("dt") && cfg.Dt != 0 {
		dt = cfg.Dt
	}
	if !cmd.Flags().Changed("time") && cfg.Duration != 0 {
		duration = cfg.Duration
	}
	if !cmd.Flags().Changed("max-contacts") {
		maxContacts = cfg.MaxContacts
	}
	if !cmd.Flags().Changed("iterations") {
		iterations = cfg.Iterations
	}
	if !cmd.Flags().Changed("mass") {
		mass = cfg.Params.Mass
	}
	if !cmd.Flags().Changed("damping") {
		damping = cfg.Params.Damping
	}
	if !cmd.Flags().Changed("gravity") {
		gravityY = cfg.Params.GravityY
	}
	if !cmd.Flags().Changed("restitution") {
		restitution = cfg.Params.Restitution
	}
}

func sceneParams() scene.Params {
	return scene.Params{
		Mass:        mass,
		Damping:     damping,
		GravityY:    gravityY,
		Restitution: restitution,
		MaxContacts: maxContacts,
		Iterations:  iterations,
	}
}

func runScene(cmd *cobra.Command, args []string) error {
	sceneName := args[0]

	if err := applyConfig(cmd, sceneName); err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	sc, err := scene.Build(sceneName, sceneParams())
	if err != nil {
		return err
	}

	runner := sim.NewRunner()
	runner.AddMetric(metrics.NewKineticEnergy())
	runner.AddMetric(metrics.NewContactLoad())
	runner.AddMetric(metrics.NewResolverEffort())

	fmt.Printf("running %s...\n", sceneName)
	start := time.Now()

	result, err := runner.Run(context.Background(), sc.World, sim.Config{
		Dt:            dt,
		Duration:      duration,
		ValidateState: true,
	})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(sceneName, dt, duration, maxContacts, iterations, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("peak contacts: %d\n", result.PeakContacts)
	fmt.Printf("peak iterations: %d\n", result.PeakIterations)
	for _, err := range result.Errors {
		fmt.Printf("warning: %v\n", err)
	}
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tTIME\tDURATION\tDT\tSTEPS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\n",
			run.ID,
			run.Scene,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Steps,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, _, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s\n", meta.Scene)
	fmt.Printf("samples: %d\n\n", len(frames))

	out, err := viz.PlotTrajectory(frames, particleIdx, 80, 10)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func runLive(cmd *cobra.Command, args []string) error {
	sceneName := args[0]

	if err := applyConfig(cmd, sceneName); err != nil {
		return err
	}

	m, err := viz.NewModel(sceneName, sceneParams(), dt, frameRate)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func benchScene(cmd *cobra.Command, args []string) error {
	sceneName := args[0]

	durations := []float64{1.0, 5.0, 10.0}
	dts := []float64{0.004, 0.016, 0.064}

	fmt.Printf("benchmarking %s\n\n", sceneName)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DURATION\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, dur := range durations {
		for _, step := range dts {
			sc, err := scene.Build(sceneName, scene.Params{})
			if err != nil {
				return err
			}

			runner := sim.NewRunner()
			start := time.Now()
			result, err := runner.Run(context.Background(), sc.World, sim.Config{
				Dt:       step,
				Duration: dur,
			})
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			stepsPerSec := float64(result.StepsTaken) / elapsed.Seconds()
			fmt.Fprintf(w, "%.1fs\t%.4fs\t%d\t%v\t%.0f\n",
				dur, step, result.StepsTaken, elapsed, stepsPerSec)
		}
	}

	return w.Flush()
}
