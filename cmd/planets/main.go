package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/san-kum/planets/internal/automation"
	"github.com/san-kum/planets/internal/config"
	"github.com/san-kum/planets/internal/sim"
	"github.com/san-kum/planets/internal/storage"
	"github.com/spf13/cobra"
)

var (
	dataDir     string
	configFile  string
	preset      string
	numBodies   int
	seed        int64
	ticks       int
	sampleEvery int
	speed       float64
	spread      float64
	gravityG    float64
	minDistance float64
	workers     int
	validate    bool
	frameRate   int
	trailLength int
	addr        string
	verbose     bool
	progress    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "planets",
		Short:        "deterministic 2D gravitational n-body simulator",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".planets", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run simulation and save it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().IntVar(&sampleEvery, "sample-every", config.DefaultConfig().Run.SampleEvery, "ticks between saved snapshots")
	runCmd.Flags().BoolVar(&validate, "validate", true, "reject non-positive masses and stop on NaN/Inf")
	runCmd.Flags().IntVar(&progress, "progress", 0, "print progress every n ticks (0 disables)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tBODIES\tSEED\tSPREAD\tSPEED\tTICKS\tWORKERS")
			for _, name := range config.ListPresets() {
				c := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%d\t%.0f\t%.2f\t%d\t%d\n",
					name, c.Scenario.Count, c.Scenario.Seed, c.Scenario.Spread,
					c.Scenario.InitialSpeed, c.Run.Ticks, c.Physics.Workers)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "configuration files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a config file with default values",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "planets.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			cfg := config.DefaultConfig()
			if preset != "" {
				if cfg = config.GetPreset(preset); cfg == nil {
					return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
				}
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}
	configInitCmd.Flags().StringVar(&preset, "preset", "", "start from preset")
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(runCmd, listCmd, presetsCmd, configCmd)
	rootCmd.AddCommand(plotCommands()...)
	rootCmd.AddCommand(exportCommands()...)
	rootCmd.AddCommand(interactiveCommands()...)
	rootCmd.AddCommand(batchCommands()...)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	def := config.DefaultConfig()
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().IntVar(&numBodies, "bodies", def.Scenario.Count, "number of bodies")
	cmd.Flags().Int64Var(&seed, "seed", def.Scenario.Seed, "random seed")
	cmd.Flags().IntVar(&ticks, "ticks", def.Run.Ticks, "number of ticks")
	cmd.Flags().Float64Var(&speed, "speed", def.Scenario.InitialSpeed, "initial speed per body")
	cmd.Flags().Float64Var(&spread, "spread", def.Scenario.Spread, "half-width of the spawn square")
	cmd.Flags().Float64Var(&gravityG, "g", def.Physics.G, "gravitational constant")
	cmd.Flags().Float64Var(&minDistance, "min-distance", def.Physics.MinDistance, "softening floor on pair distance")
	cmd.Flags().IntVar(&workers, "workers", def.Physics.Workers, "force workers (parallel above 64 bodies)")
	cmd.MarkFlagsMutuallyExclusive("config", "preset")
}

// resolveConfig starts from a preset or a config file, never both, then
// applies explicitly set flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	if preset != "" && configFile != "" {
		return nil, fmt.Errorf("--preset and --config are mutually exclusive")
	}
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("bodies") {
		cfg.Scenario.Count = numBodies
	}
	if flags.Changed("seed") {
		cfg.Scenario.Seed = seed
	}
	if flags.Changed("ticks") {
		cfg.Run.Ticks = ticks
	}
	if flags.Changed("speed") {
		cfg.Scenario.InitialSpeed = speed
	}
	if flags.Changed("spread") {
		cfg.Scenario.Spread = spread
	}
	if flags.Changed("g") {
		cfg.Physics.G = gravityG
	}
	if flags.Changed("min-distance") {
		cfg.Physics.MinDistance = minDistance
	}
	if flags.Changed("workers") {
		cfg.Physics.Workers = workers
	}
	if flags.Changed("sample-every") {
		cfg.Run.SampleEvery = sampleEvery
	}
	if flags.Changed("validate") {
		cfg.Run.Validate = validate
	}
	if flags.Changed("fps") {
		cfg.Live.FPS = frameRate
		cfg.Stream.FPS = frameRate
	}
	if flags.Changed("trail") {
		cfg.Live.TrailLength = trailLength
	}
	if flags.Changed("addr") {
		cfg.Stream.Addr = addr
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("running %d bodies for %d ticks...\n", cfg.Scenario.Count, cfg.Run.Ticks)
	start := time.Now()

	var observers []sim.Observer
	if progress > 0 {
		observers = append(observers, &automation.Progress{Out: os.Stdout, Every: progress, Total: cfg.Run.Ticks})
	}

	runID, result, err := automation.Execute(context.Background(), cfg, preset, st, observers...)
	if err != nil {
		if result != nil {
			fmt.Printf("stopped after %d ticks\n", result.TicksTaken)
		}
		return err
	}

	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("snapshots: %d\n", len(result.Snapshots))
	printMetrics(result.Metrics)

	return nil
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, m[name])
	}
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
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tBODIES\tSEED\tTICKS\tG")

	for _, run := range runs {
		p := run.Preset
		if p == "" {
			p = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%g\n",
			run.ID,
			p,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Bodies,
			run.Seed,
			run.Ticks,
			run.G,
		)
	}

	return w.Flush()
}
