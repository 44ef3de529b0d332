package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/planets/internal/analysis"
	"github.com/san-kum/planets/internal/dynamo"
	"github.com/san-kum/planets/internal/physics"
	"github.com/san-kum/planets/internal/scenario"
	"github.com/san-kum/planets/internal/storage"
	"github.com/spf13/cobra"
)

var (
	bodyIndex  int
	gMin       float64
	gMax       float64
	sweepSteps int
	lyapTicks  int
)

func plotCommands() []*cobra.Command {
	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot energy and one body's coordinates",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&bodyIndex, "body", 0, "body index")

	orbitCmd := &cobra.Command{
		Use:   "orbit [run_id]",
		Short: "trajectory plot of one body",
		Args:  cobra.ExactArgs(1),
		RunE:  orbitPlot,
	}
	orbitCmd.Flags().IntVar(&bodyIndex, "body", 0, "body index")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "periodicity and sensitivity analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&bodyIndex, "body", 0, "body index")
	analyzeCmd.Flags().IntVar(&lyapTicks, "lyapunov-ticks", 0, "ticks for the Lyapunov estimate (default: run length)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "final spread across a range of G",
		Args:  cobra.NoArgs,
		RunE:  sweepG,
	}
	addScenarioFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&gMin, "g-min", 0, "lowest G")
	sweepCmd.Flags().Float64Var(&gMax, "g-max", 4*physics.DefaultG, "highest G")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 20, "number of G values")

	return []*cobra.Command{plotCmd, orbitCmd, analyzeCmd, sweepCmd}
}

func loadRun(runID string) (*storage.RunMetadata, []dynamo.Population, []int, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, nil, err
	}

	snaps, ticks, err := st.LoadSnapshots(runID)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(snaps) == 0 {
		return nil, nil, nil, fmt.Errorf("no data in run %s", runID)
	}
	return meta, snaps, ticks, nil
}

func gravityFor(meta *storage.RunMetadata) *physics.Gravity {
	g := physics.NewGravity()
	g.G = meta.G
	g.MinDistance = meta.MinDistance
	g.Workers = meta.Workers
	return g
}

func checkBody(meta *storage.RunMetadata) error {
	if bodyIndex < 0 || bodyIndex >= meta.Bodies {
		return fmt.Errorf("body %d out of range (run has %d bodies)", bodyIndex, meta.Bodies)
	}
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, snaps, _, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if err := checkBody(meta); err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("bodies: %d\n", meta.Bodies)
	fmt.Printf("samples: %d\n\n", len(snaps))

	g := gravityFor(meta)
	energy := make([]float64, len(snaps))
	xs := make([]float64, len(snaps))
	ys := make([]float64, len(snaps))
	for i, pop := range snaps {
		energy[i] = g.Energy(pop)
		xs[i] = pop[bodyIndex].Position.X
		ys[i] = pop[bodyIndex].Position.Y
	}

	series := []struct {
		data    []float64
		caption string
	}{
		{energy, "total energy"},
		{xs, fmt.Sprintf("body %d x", bodyIndex)},
		{ys, fmt.Sprintf("body %d y", bodyIndex)},
	}
	for _, s := range series {
		graph := asciigraph.Plot(s.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func orbitPlot(cmd *cobra.Command, args []string) error {
	meta, snaps, _, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if err := checkBody(meta); err != nil {
		return err
	}

	tr := analysis.TrajectoryOf(snaps, bodyIndex)
	lo, hi := tr.Bounds()

	fmt.Printf("orbit: %s\n", meta.ID)
	fmt.Printf("body: %d (mass %.0f)\n", bodyIndex, meta.Masses[bodyIndex])
	fmt.Printf("x: [%.2f, %.2f]  y: [%.2f, %.2f]\n\n", lo.X, hi.X, lo.Y, hi.Y)
	fmt.Print(analysis.TrajectoryToASCII(tr, 70, 20))
	fmt.Printf("\nLegend: . = early, o = middle, • = late\n")
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, snaps, ticks, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if err := checkBody(meta); err != nil {
		return err
	}

	fmt.Printf("analysis: %s\n", meta.ID)
	fmt.Printf("body: %d\n\n", bodyIndex)

	xs := make([]float64, len(snaps))
	for i, pop := range snaps {
		xs[i] = pop[bodyIndex].Position.X
	}

	ps := analysis.PowerSpectrum(xs)
	if len(ps) > 4 {
		graph := asciigraph.Plot(ps,
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("power spectrum (body %d x)", bodyIndex)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	interval := 1
	if len(ticks) > 1 {
		interval = ticks[1] - ticks[0]
	}
	if period := analysis.DominantPeriod(xs); period > 0 {
		fmt.Printf("dominant period: %.1f ticks\n", period*float64(interval))
	} else {
		fmt.Println("dominant period: none")
	}

	n := lyapTicks
	if n <= 0 {
		n = meta.Ticks
	}
	g := gravityFor(meta)
	lambda := analysis.LyapunovExponent(g, snaps[0], n, 1e-6)
	fmt.Printf("lyapunov exponent: %.6f per tick over %d ticks\n", lambda, n)
	if lambda > 0 {
		fmt.Println("sensitive to initial conditions")
	}

	return nil
}

func sweepG(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if sweepSteps < 1 {
		return fmt.Errorf("steps must be positive")
	}

	pop := scenario.Generate(cfg.Scenario)
	fmt.Printf("sweeping G in [%g, %g] over %d ticks, %d bodies\n\n", gMin, gMax, cfg.Run.Ticks, len(pop))

	points := analysis.SweepG(cfg.NewGravity(), pop, gMin, gMax, sweepSteps, cfg.Run.Ticks)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "G\tSPREAD")
	spreads := make([]float64, len(points))
	for i, p := range points {
		fmt.Fprintf(w, "%.6f\t%.2f\n", p.G, p.Spread)
		spreads[i] = p.Spread
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(spreads) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(spreads,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("final spread vs G"),
		))
	}
	return nil
}
