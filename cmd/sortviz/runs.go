package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/sortviz/internal/algorithms"
	"github.com/san-kum/sortviz/internal/automation"
	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/export"
	"github.com/san-kum/sortviz/internal/log"
	"github.com/san-kum/sortviz/internal/metrics"
	"github.com/san-kum/sortviz/internal/player"
	"github.com/san-kum/sortviz/internal/storage"
	"github.com/san-kum/sortviz/internal/trace"
	"github.com/san-kum/sortviz/internal/viz"
)

func openStore() (*storage.Store, error) {
	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}
	return store, nil
}

func recordRun(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, argOr(args, ""))
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	values, err := cfg.Array()
	if err != nil {
		return err
	}
	tr, err := algorithms.Generate(cfg.Algorithm, values)
	if err != nil {
		return err
	}
	if err := automation.Verify(cmd.Context(), tr); err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	runID, err := store.Save(tr, storage.RunOptions{Seed: cfg.Seed, Shape: cfg.Shape, Speed: cfg.Speed})
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	logger.Info("run saved", log.RunIDKey, runID, log.AlgorithmKey, tr.Algorithm, log.EventsKey, tr.Len())

	fmt.Printf("recorded %s: %d events\n", runID, tr.Len())
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	runs, err := store.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tALGORITHM\tSIZE\tSHAPE\tEVENTS\tCOMPARISONS\tSWAPS\tTIMESTAMP")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\t%.0f\t%.0f\t%s\n",
			run.ID,
			run.Algorithm,
			run.Size,
			run.Shape,
			run.Events,
			run.Metrics["comparisons"],
			run.Metrics["swaps"],
			run.Timestamp.Format("2006-01-02 15:04:05"),
		)
	}
	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, trace.Trace, error) {
	store, err := openStore()
	if err != nil {
		return nil, trace.Trace{}, err
	}
	meta, err := store.Load(runID)
	if err != nil {
		return nil, trace.Trace{}, err
	}
	tr, err := store.LoadTrace(runID)
	if err != nil {
		return nil, trace.Trace{}, err
	}
	return meta, tr, nil
}

func deleteRuns(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	for _, runID := range args {
		if err := store.Delete(runID); err != nil {
			return err
		}
		fmt.Printf("deleted %s\n", runID)
	}
	return nil
}

func replayRun(cmd *cobra.Command, args []string) error {
	meta, tr, err := loadRun(args[0])
	if err != nil {
		return err
	}

	cfg := config.DefaultConfig()
	if configFile != "" {
		if cfg, err = config.Load(configFile); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}
	playSpeed := meta.Speed
	if cmd.Flags().Changed("speed") || playSpeed == 0 {
		playSpeed = speed
	}

	logger, closeLog, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	opts := append(cfg.PlayerOptions(), player.WithLogger(logger))
	return playPlain(meta.ID, func(e *player.Engine) error { return e.Load(tr, playSpeed) }, opts...)
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, tr, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s (%s, %d values, %d events)\n\n", meta.ID, meta.Algorithm, meta.Size, meta.Events)

	if len(tr.Initial) > 1 {
		fmt.Println(asciigraph.Plot(toFloats(tr.Initial),
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption("initial"),
		))
		fmt.Println()
		fmt.Println(asciigraph.Plot(toFloats(tr.Final),
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption("final"),
		))
		fmt.Println()
	}

	if ops := metrics.Operations(tr.Events); len(ops) > 1 {
		fmt.Println(asciigraph.Plot(ops,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption("cumulative comparisons + swaps"),
		))
	}
	return nil
}

func toFloats(values []int) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}

func benchAlgorithms(cmd *cobra.Command, args []string) error {
	sweep := &automation.Sweep{
		Algorithms: args,
		Sizes:      sizes,
		Shape:      shape,
		Trials:     trials,
		Seed:       benchSeed,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.NewRunner(nil, nil).RunSweep(ctx, sweep)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALGORITHM\tSIZE\tTRIALS\tAVG CMP\tAVG SWP\tMAX CMP\tMAX SWP")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%d\t%d\t%.1f\t%.1f\t%d\t%d\n",
			r.Algorithm, r.Size, r.Trials, r.AvgComparisons, r.AvgSwaps, r.MaxComparisons, r.MaxSwaps)
	}
	return w.Flush()
}

// output returns stdout or the file named by --out.
func output() (io.WriteCloser, error) {
	if outPath == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(outPath)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, tr, err := loadRun(args[0])
	if err != nil {
		return err
	}
	data := export.NewExportData(meta, tr)
	if outPath != "" {
		if err := export.ExportJSON(outPath, data); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "exported to %s\n", outPath)
		return nil
	}
	return export.WriteJSON(os.Stdout, data)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	if !slices.Contains(viz.ThemeNames(), theme) {
		return fmt.Errorf("unknown theme: %s (available: %v)", theme, viz.ThemeNames())
	}
	meta, tr, err := loadRun(args[0])
	if err != nil {
		return err
	}

	if series {
		return writeSVG(export.SeriesToSVG(metrics.Operations(tr.Events), 800, 300, viz.GetTheme(theme).Palette("").Comparing), "operations")
	}

	e := player.New(player.WithScheduler(player.NewManualScheduler()))
	if err := e.Load(tr, config.DefaultSpeed); err != nil {
		return err
	}
	n := step
	if n < 0 || n > tr.Len() {
		n = tr.Len()
	}
	for i := 0; i < n; i++ {
		if err := e.Step(); err != nil {
			return err
		}
	}

	palette := viz.GetTheme(theme).Palette(export.DefaultPalette.Bar)
	if info, err := algorithms.Lookup(meta.Algorithm); err == nil {
		palette = palette.WithBar(info.Color)
	}

	return writeSVG(export.FrameToSVG(e.State(), palette, 800, 400), fmt.Sprintf("step %d/%d", n, tr.Len()))
}

func writeSVG(svg, what string) error {
	w, err := output()
	if err != nil {
		return err
	}
	defer w.Close()

	if _, err := io.WriteString(w, svg); err != nil {
		return err
	}
	if outPath != "" {
		fmt.Fprintf(os.Stderr, "exported %s to %s\n", what, outPath)
	}
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(config.DefaultConfig(), false)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := openStore()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := automation.NewRunner(store, logger)
	err = runScenario(ctx, runner, scenario)
	if !watch {
		return err
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
	}

	return runner.WatchScenario(ctx, args[0], func(sc *automation.Scenario, err error) {
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			return
		}
		if err := runScenario(ctx, runner, sc); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
	})
}

func runScenario(ctx context.Context, runner *automation.Runner, scenario *automation.Scenario) error {
	fmt.Printf("running scenario: %s\n", scenario.Name)
	if scenario.Description != "" {
		fmt.Printf("  %s\n", scenario.Description)
	}

	results, runErr := runner.RunScenario(ctx, scenario)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tALGORITHM\tSIZE\tEVENTS\tCOMPARISONS\tSWAPS\tVERIFIED\tRUN")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%.0f\t%.0f\t%t\t%s\n",
			r.Step, r.Algorithm, r.Size, r.Events,
			r.Metrics["comparisons"], r.Metrics["swaps"], r.Verified, dash(r.RunID))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return runErr
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
