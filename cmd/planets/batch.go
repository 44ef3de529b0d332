package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/san-kum/planets/internal/automation"
	"github.com/san-kum/planets/internal/dynamo"
	"github.com/san-kum/planets/internal/metrics"
	"github.com/san-kum/planets/internal/physics"
	"github.com/san-kum/planets/internal/scenario"
	"github.com/san-kum/planets/internal/sim"
	"github.com/san-kum/planets/internal/storage"
	"github.com/spf13/cobra"
)

var (
	benchSizes   []int
	benchTicks   int
	benchWorkers int
	numRuns      int
	trials       int
	perturbation float64
	radius       float64
)

func batchCommands() []*cobra.Command {
	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "ticks per second for a range of body counts",
		Args:  cobra.NoArgs,
		RunE:  benchBodies,
	}
	benchCmd.Flags().IntSliceVar(&benchSizes, "sizes", []int{10, 50, 100, 200, 500}, "body counts")
	benchCmd.Flags().IntVar(&benchTicks, "ticks", 100, "ticks per measurement")
	benchCmd.Flags().IntVar(&benchWorkers, "workers", runtime.NumCPU(), "workers for the parallel column")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run one scenario over consecutive seeds in parallel",
		Args:  cobra.NoArgs,
		RunE:  runEnsemble,
	}
	addScenarioFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 8, "number of seeds")

	batchCmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "run a scripted sequence of simulations",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "stability under random position perturbations",
		Args:  cobra.NoArgs,
		RunE:  runMonteCarlo,
	}
	addScenarioFlags(monteCarloCmd)
	monteCarloCmd.Flags().IntVar(&trials, "trials", 50, "number of trials")
	monteCarloCmd.Flags().Float64Var(&perturbation, "perturbation", 10, "max position offset per axis")
	monteCarloCmd.Flags().Float64Var(&radius, "radius", metrics.DefaultStabilityRadius, "escape radius from the center of mass")

	return []*cobra.Command{benchCmd, ensembleCmd, batchCmd, monteCarloCmd}
}

func benchBodies(cmd *cobra.Command, args []string) error {
	if benchTicks <= 0 {
		return fmt.Errorf("ticks must be positive")
	}

	fmt.Printf("benchmarking %d ticks, %d workers\n\n", benchTicks, benchWorkers)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODIES\tSERIAL\tTICKS/SEC\tPARALLEL\tTICKS/SEC")

	for _, n := range benchSizes {
		cfg := scenario.DefaultConfig()
		cfg.Count = n

		serial := timeTicks(physics.NewGravity(), scenario.Generate(cfg), benchTicks)

		g := physics.NewGravity()
		g.Workers = benchWorkers
		parallel := timeTicks(g, scenario.Generate(cfg), benchTicks)

		fmt.Fprintf(w, "%d\t%v\t%.0f\t%v\t%.0f\n",
			n,
			serial, float64(benchTicks)/serial.Seconds(),
			parallel, float64(benchTicks)/parallel.Seconds())
	}

	return w.Flush()
}

func timeTicks(s sim.Stepper, pop dynamo.Population, n int) time.Duration {
	start := time.Now()
	for i := 0; i < n; i++ {
		s.Step(pop)
	}
	return time.Since(start)
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if numRuns < 1 {
		return fmt.Errorf("runs must be positive")
	}

	ens := sim.NewEnsemble(cfg.Scenario, numRuns, cfg.Scenario.Seed,
		func() sim.Stepper { return cfg.NewGravity() },
		func() []sim.Metric { return metrics.Defaults(cfg.NewGravity()) },
	)

	fmt.Printf("running %d seeds x %d bodies x %d ticks...\n", numRuns, cfg.Scenario.Count, cfg.Run.Ticks)
	start := time.Now()

	simCfg := cfg.SimConfig()
	simCfg.SampleEvery = simCfg.Ticks
	results, err := ens.Run(context.Background(), simCfg)
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	var names []string
	for name := range results[0].Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "SEED")
	for _, name := range names {
		fmt.Fprintf(w, "\t%s", name)
	}
	fmt.Fprintln(w)

	for i, seed := range ens.Seeds() {
		fmt.Fprintf(w, "%d", seed)
		for _, name := range names {
			fmt.Fprintf(w, "\t%.6g", results[i].Metrics[name])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func runBatch(cmd *cobra.Command, args []string) error {
	b, err := automation.LoadBatch(args[0])
	if err != nil {
		return err
	}

	if b.Name != "" {
		fmt.Printf("batch: %s\n", b.Name)
	}
	if b.Description != "" {
		fmt.Printf("%s\n", b.Description)
	}

	ids, err := automation.RunBatch(context.Background(), b, storage.New(dataDir), os.Stdout)
	for _, id := range ids {
		fmt.Printf("run id: %s\n", id)
	}
	return err
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	results, err := automation.RunMonteCarlo(context.Background(), &automation.MonteCarloConfig{
		Base:         cfg,
		Perturbation: perturbation,
		Trials:       trials,
		Seed:         cfg.Scenario.Seed,
		Radius:       radius,
	}, os.Stdout)
	if err != nil {
		return err
	}

	stable, unstable := automation.MonteCarloStats(results)
	fmt.Printf("\nstable: %d\nunstable: %d\n", stable, unstable)
	if len(results) > 0 {
		fmt.Printf("stable fraction: %.2f\n", float64(stable)/float64(len(results)))
	}
	return nil
}
