package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/sortviz/internal/algorithms"
	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/log"
	"github.com/san-kum/sortviz/internal/metrics"
	"github.com/san-kum/sortviz/internal/player"
	"github.com/san-kum/sortviz/internal/tui"
	"github.com/san-kum/sortviz/internal/viz"
)

var (
	dataDir    string
	configFile string
	logFile    string
	logLevel   string

	size   int
	speed  int
	seed   int64
	shape  string
	preset string
	theme  string

	plain     bool
	frameRate int
	outPath   string
	step      int
	sizes     []int
	trials    int
	benchSeed int64
	watch     bool
	series    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "sortviz",
		Short:         "sorting algorithm visualizer",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, "")
			if err != nil {
				return err
			}
			logger, closeLog, err := newLogger(cfg, true)
			if err != nil {
				return err
			}
			defer closeLog()
			return viz.RunInteractive(cfg, player.WithLogger(logger))
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".sortviz", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "append logs to this file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	addInputFlags(rootCmd)

	playCmd := &cobra.Command{
		Use:   "play [algorithm]",
		Short: "play an algorithm in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPlay,
	}
	addInputFlags(playCmd)
	playCmd.Flags().BoolVar(&plain, "plain", false, "plain ANSI output without the interactive UI")
	playCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate for plain output")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list algorithms",
		RunE:  listAlgorithms,
	}

	infoCmd := &cobra.Command{
		Use:   "info [algorithm]",
		Short: "describe an algorithm",
		Args:  cobra.ExactArgs(1),
		RunE:  showInfo,
	}

	traceCmd := &cobra.Command{
		Use:   "trace [algorithm]",
		Short: "print the event trace of an algorithm",
		Args:  cobra.MaximumNArgs(1),
		RunE:  printTrace,
	}
	addInputFlags(traceCmd)

	recordCmd := &cobra.Command{
		Use:   "record [algorithm]",
		Short: "generate a trace and save it as a run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  recordRun,
	}
	addInputFlags(recordCmd)

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [run_id...]",
		Short: "delete saved runs",
		Args:  cobra.MinimumNArgs(1),
		RunE:  deleteRuns,
	}

	replayCmd := &cobra.Command{
		Use:   "replay [run_id]",
		Short: "play a saved run with plain output",
		Args:  cobra.ExactArgs(1),
		RunE:  replayRun,
	}
	replayCmd.Flags().IntVar(&speed, "speed", config.DefaultSpeed, "playback speed (1-100)")
	replayCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [algorithm...]",
		Short: "compare comparisons and swaps across algorithms",
		RunE:  benchAlgorithms,
	}
	benchCmd.Flags().IntSliceVar(&sizes, "sizes", []int{16, 32, 64, 128}, "array sizes")
	benchCmd.Flags().IntVar(&trials, "trials", 5, "trials per size")
	benchCmd.Flags().Int64Var(&benchSeed, "seed", 1, "random seed")
	benchCmd.Flags().StringVar(&shape, "shape", config.DefaultShape, "array shape")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a saved run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a frame of a saved run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().IntVar(&step, "step", -1, "events to apply before rendering (default all)")
	exportSVGCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "colour theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	exportSVGCmd.Flags().BoolVar(&series, "series", false, "render the cumulative operations curve instead of a frame")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scripted scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().BoolVar(&watch, "watch", false, "re-run the scenario whenever the file changes")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tALGORITHM\tSIZE\tSPEED\tSHAPE")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%d\t%d%%\t%s\n", name, p.Algorithm, p.ArraySize, p.Speed, p.Shape)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(playCmd, listCmd, infoCmd, traceCmd, recordCmd, runsCmd, deleteCmd, replayCmd,
		plotCmd, benchCmd, exportJSONCmd, exportSVGCmd, batchCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&size, "size", config.DefaultArraySize, "array size")
	cmd.Flags().IntVar(&speed, "speed", config.DefaultSpeed, "playback speed (1-100)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (default: time-based)")
	cmd.Flags().StringVar(&shape, "shape", config.DefaultShape, "array shape ("+strings.Join(algorithms.Shapes, ", ")+")")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "colour theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
}

// resolveConfig layers defaults, the config file, a preset, the algorithm
// argument and explicitly set flags, in that order.
func resolveConfig(cmd *cobra.Command, algorithm string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.Apply(p)
	}

	if algorithm != "" {
		cfg.Algorithm = algorithm
	}
	flags := cmd.Flags()
	if flags.Changed("size") {
		cfg.ArraySize = size
	}
	if flags.Changed("speed") {
		cfg.Speed = speed
	}
	if flags.Changed("shape") {
		cfg.Shape = shape
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the process logger. Interactive screens log only to
// --log-file so the alternate screen stays clean.
func newLogger(cfg *config.Config, interactive bool) (*slog.Logger, func(), error) {
	var out io.Writer = os.Stderr
	closer := func() {}

	if logFile != "" {
		f, err := log.OpenFile(logFile)
		if err != nil {
			return nil, nil, err
		}
		out, closer = f, func() { f.Close() }
	} else if interactive {
		out = nil
	}

	lc := log.FromEnv()
	if configFile != "" {
		lc = cfg.LoggerConfig(out)
	}
	lc.Output = out
	if logLevel != "" {
		lc.Level = logLevel
	}
	return log.New(lc), closer, nil
}

func argOr(args []string, fallback string) string {
	if len(args) > 0 {
		return args[0]
	}
	return fallback
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, argOr(args, ""))
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg, !plain)
	if err != nil {
		return err
	}
	defer closeLog()

	if !plain {
		return viz.RunPlayer(cfg, player.WithLogger(logger))
	}
	opts := append(cfg.PlayerOptions(), player.WithLogger(logger))

	values, err := cfg.Array()
	if err != nil {
		return err
	}
	tr, err := algorithms.Generate(cfg.Algorithm, values)
	if err != nil {
		return err
	}
	return playPlain(tr.Algorithm, func(e *player.Engine) error { return e.Load(tr, cfg.Speed) }, opts...)
}

// playPlain runs a headless engine with the ANSI renderer attached until
// playback completes or the process is interrupted.
func playPlain(name string, load func(*player.Engine) error, opts ...player.Option) error {
	renderer := tui.NewLiveRenderer(os.Stdout, frameRate, true)
	e := player.New(append(opts, player.WithObserver(renderer.OnState))...)
	if err := load(e); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	renderer.Start()
	defer renderer.Stop()

	start := time.Now()
	s, err := player.Run(ctx, e)
	if err != nil {
		if ctx.Err() != nil {
			fmt.Printf("\ninterrupted %s at step %d/%d\n", name, s.Cursor, s.Total)
			return nil
		}
		return err
	}
	fmt.Printf("completed %d steps in %v\n", s.Total, time.Since(start).Round(time.Millisecond))
	return nil
}

func listAlgorithms(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTITLE\tBEST\tAVERAGE\tWORST\tSPACE\tSTABLE")
	for _, name := range algorithms.Names() {
		info, err := algorithms.Lookup(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%t\n",
			name,
			info.Name,
			info.TimeComplexity.Best,
			info.TimeComplexity.Average,
			info.TimeComplexity.Worst,
			info.SpaceComplexity,
			info.Stable,
		)
	}
	return w.Flush()
}

func showInfo(cmd *cobra.Command, args []string) error {
	info, err := algorithms.Lookup(args[0])
	if err != nil {
		return fmt.Errorf("%w (available: %v)", err, algorithms.Names())
	}

	fmt.Printf("%s\n\n%s\n\n", info.Name, info.Description)
	fmt.Printf("time:   best %s, average %s, worst %s\n", info.TimeComplexity.Best, info.TimeComplexity.Average, info.TimeComplexity.Worst)
	fmt.Printf("space:  %s\n", info.SpaceComplexity)
	fmt.Printf("stable: %t\n\n", info.Stable)
	for i, s := range info.Steps {
		fmt.Printf("  %d. %s\n", i+1, s)
	}
	return nil
}

func printTrace(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, argOr(args, ""))
	if err != nil {
		return err
	}
	values, err := cfg.Array()
	if err != nil {
		return err
	}
	tr, err := algorithms.Generate(cfg.Algorithm, values)
	if err != nil {
		return err
	}

	fmt.Printf("algorithm: %s\n", tr.Algorithm)
	fmt.Printf("initial:   %v\n", tr.Initial)
	fmt.Printf("final:     %v\n\n", tr.Final)
	for i, ev := range tr.Events {
		fmt.Printf("%5d  %s\n", i, ev)
	}

	counts := metrics.Collect(tr.Events, metrics.Default()...)
	fmt.Printf("\ncomparisons: %.0f  swaps: %.0f  sorted: %.0f\n", counts["comparisons"], counts["swaps"], counts["sorted"])
	return nil
}
