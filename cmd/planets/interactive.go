package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/san-kum/planets/internal/config"
	"github.com/san-kum/planets/internal/dynamo"
	"github.com/san-kum/planets/internal/scenario"
	"github.com/san-kum/planets/internal/stream"
	"github.com/san-kum/planets/internal/viz"
	"github.com/spf13/cobra"
)

func interactiveCommands() []*cobra.Command {
	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run simulation with live terminal visualization",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate (one tick per frame)")
	liveCmd.Flags().IntVar(&trailLength, "trail", config.DefaultTrailLength, "trail length per body")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "stream simulation frames over WebSocket",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	addScenarioFlags(serveCmd)
	serveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "ticks per second")
	serveCmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address")
	serveCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	return []*cobra.Command{liveCmd, serveCmd}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	pop := scenario.Generate(cfg.Scenario)
	if len(pop) == 0 {
		return fmt.Errorf("live view: %w", dynamo.ErrEmptyPopulation)
	}
	if err := pop.Validate(); err != nil {
		return err
	}

	opts := viz.DefaultOptions()
	opts.FPS = cfg.Live.FPS
	opts.TrailLength = cfg.Live.TrailLength
	opts.HalfExtent = cfg.Scenario.Spread * 1.5
	if preset != "" {
		opts.Title = "planets · " + preset
	}

	return viz.Run(cfg.NewGravity(), pop, opts)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	pop := scenario.Generate(cfg.Scenario)
	if len(pop) == 0 {
		return fmt.Errorf("serve: %w", dynamo.ErrEmptyPopulation)
	}
	if err := pop.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := stream.NewServer(cfg.NewGravity(), pop, cfg.Stream.FPS, logger)
	if err := srv.ListenAndServe(ctx, cfg.Stream.Addr); err != nil {
		logger.Error("server stopped", "err", err)
		return err
	}
	logger.Info("shutdown complete")
	return nil
}
