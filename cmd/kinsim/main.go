package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/enzymekit/kinsim/internal/config"
	"github.com/enzymekit/kinsim/internal/kin"
	"github.com/enzymekit/kinsim/internal/metrics"
	"github.com/enzymekit/kinsim/internal/model"
	"github.com/enzymekit/kinsim/internal/sample"
	"github.com/enzymekit/kinsim/internal/store"
	"github.com/enzymekit/kinsim/internal/tui"
)

var (
	dataDir    string
	configFile string
	preset     string
	integrator string
	endTime    float64
	steps      int
	maxSteps   int
	runs       int
	seed       int64
	species    string
	outFile    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "kinsim",
		Short: "enzyme kinetics simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".kinsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and persist the result",
		RunE:  runSimulation,
	}
	addDefinitionFlags(runCmd)

	sampleCmd := &cobra.Command{
		Use:   "sample",
		Short: "run a monte carlo uncertainty sweep",
		RunE:  runSweep,
	}
	addDefinitionFlags(sampleCmd)
	sampleCmd.Flags().IntVar(&runs, "runs", 0, "number of samples")
	sampleCmd.Flags().Int64Var(&seed, "seed", 0, "random seed")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot stored concentration curves",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&species, "species", "", "plot a single species")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVar(&outFile, "out", "", "write to a file instead of stdout")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a stored run as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a simulation and replay it in the terminal",
		RunE:  runLive,
	}
	addDefinitionFlags(liveCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in run definitions",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	mechanismsCmd := &cobra.Command{
		Use:   "mechanisms",
		Short: "list supported rate-law mechanisms",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.NewRegistry().ListMechanisms() {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, sampleCmd, listCmd, plotCmd,
		exportJSONCmd, exportCSVCmd, liveCmd, presetsCmd, mechanismsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addDefinitionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "run definition file (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "built-in run definition")
	cmd.Flags().StringVar(&integrator, "integrator", "", "integrator (rk4, rk45)")
	cmd.Flags().Float64Var(&endTime, "time", 0, "simulation end time")
	cmd.Flags().IntVar(&steps, "steps", 0, "number of output samples")
	cmd.Flags().IntVar(&maxSteps, "max-steps", 0, "internal step budget")
}

// loadDefinition resolves the run definition from --preset or --config,
// with explicit flags overriding either source.
func loadDefinition(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config

	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	default:
		return nil, fmt.Errorf("either --config or --preset is required")
	}

	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integrator
	}
	if cmd.Flags().Changed("time") {
		cfg.Time.End = endTime
	}
	if cmd.Flags().Changed("steps") {
		cfg.Time.Steps = steps
	}
	if cmd.Flags().Changed("max-steps") {
		cfg.Time.MaxSteps = maxSteps
	}
	if cmd.Flags().Changed("runs") {
		cfg.Sampling.Runs = runs
	}
	if cmd.Flags().Changed("seed") {
		cfg.Sampling.Seed = seed
	}
	return cfg, nil
}

func buildAndSetup(cfg *config.Config) (*model.Model, error) {
	m, err := config.NewRegistry().Build(cfg)
	if err != nil {
		return nil, err
	}

	report, err := m.Setup()
	if err != nil {
		return nil, err
	}
	for _, name := range report.DefaultedSpecies {
		fmt.Printf("note: species %s defaulted to 0\n", name)
	}
	for _, name := range report.DefaultedParams {
		fmt.Printf("note: parameter %s defaulted to its distribution mean\n", name)
	}
	return m, nil
}

// runMetrics reduces a trajectory to the process numbers the run
// definition asks for. Reductions whose metadata is missing are skipped.
func runMetrics(cfg *config.Config, traj *kin.Trajectory) map[string]float64 {
	out := make(map[string]float64)
	mc := cfg.Metrics
	meta := cfg.Meta()

	if mc.Product != "" && mc.Substrate != "" {
		if y, err := metrics.Yield(traj, mc.Product, mc.Substrate); err == nil {
			out["yield_pct"] = y
		}
	}
	if mc.Product != "" && mc.VolumeL > 0 {
		if sty, err := metrics.SpaceTimeYield(traj, mc.Product, meta); err == nil {
			out["space_time_yield_g_l_day"] = sty
		}
		if ef, err := metrics.EFactor(traj, mc.Product, meta); err == nil {
			out["e_factor"] = ef
		}
		if mc.Enzyme != "" {
			if p, err := metrics.Productivity(traj, mc.Product, mc.Enzyme, meta); err == nil {
				out["productivity_g_g_h"] = p
			}
		}
	}
	return out
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadDefinition(cmd)
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	m, err := buildAndSetup(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("running %s...\n", cfg.Name)
	start := time.Now()

	traj, err := m.Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	results := runMetrics(cfg, traj)
	runID, err := st.Save(cfg.Name, cfg.Integrator, m.Params(), results, traj)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", traj.Len())

	if len(results) > 0 {
		fmt.Println("\nmetrics:")
		for name, val := range results {
			fmt.Printf("  %s: %.6f\n", name, val)
		}
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadDefinition(cmd)
	if err != nil {
		return err
	}

	m, err := config.NewRegistry().Build(cfg)
	if err != nil {
		return err
	}

	sw := &sample.Sweep{
		Runs:     cfg.Sampling.Runs,
		Seed:     cfg.Sampling.Seed,
		MaxDraws: cfg.Sampling.MaxDraws,
	}

	fmt.Printf("sampling %s, %d runs...\n", cfg.Name, sw.Runs)
	start := time.Now()

	res, err := sw.Run(context.Background(), m)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("trajectories: %d\n", len(res.Trajectories))
	fmt.Printf("rejected draws: %d\n", res.Rejected)
	fmt.Printf("failed runs: %d\n", res.Failed)
	fmt.Printf("skipped samples: %d\n", res.Skipped)

	if len(res.Trajectories) == 0 {
		return fmt.Errorf("no surviving trajectories")
	}

	product := cfg.Metrics.Product
	if product == "" {
		product = res.Trajectories[0].SpeciesNames()[0]
	}

	spread, err := metrics.Spread(res.Trajectories, product, cfg.Sampling.QLow, cfg.Sampling.QHigh)
	if err != nil {
		return err
	}
	fmt.Printf("\nfinal %s spread (q%.2f..q%.2f): %.6f\n",
		product, cfg.Sampling.QLow, cfg.Sampling.QHigh, spread)

	for _, q := range []float64{cfg.Sampling.QLow, 0.5, cfg.Sampling.QHigh} {
		band, err := sample.Band(res.Trajectories, product, q)
		if err != nil {
			return err
		}
		graph := asciigraph.Plot(band,
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s, q=%.2f", product, q)),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	storedRuns, err := st.List()
	if err != nil {
		return err
	}

	if len(storedRuns) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tWINDOW\tSAMPLES\tINTEG\tSPECIES")

	for _, run := range storedRuns {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f-%.1f\t%d\t%s\t%d\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Start,
			run.End,
			run.Steps,
			run.Integrator,
			len(run.Species),
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("name: %s\n", meta.Name)
	fmt.Printf("samples: %d\n\n", traj.Len())

	names := traj.SpeciesNames()
	if species != "" {
		names = []string{species}
	}

	for _, name := range names {
		data, err := traj.Series(name)
		if err != nil {
			return err
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	if outFile != "" {
		return store.ExportJSON(outFile, meta.Name, meta.Integrator, meta.Params, meta.Metrics, traj)
	}
	return store.ExportJSONStdout(meta.Name, meta.Integrator, meta.Params, meta.Metrics, traj)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write(append([]string{"time"}, traj.SpeciesNames()...)); err != nil {
		return err
	}
	times := traj.Times()
	for i := 0; i < traj.Len(); i++ {
		row := []string{strconv.FormatFloat(times[i], 'g', -1, 64)}
		for _, val := range traj.At(i) {
			row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadDefinition(cmd)
	if err != nil {
		return err
	}

	m, err := buildAndSetup(cfg)
	if err != nil {
		return err
	}

	traj, err := m.Run(context.Background())
	if err != nil {
		return err
	}

	return tui.Run(cfg.Name, traj)
}
