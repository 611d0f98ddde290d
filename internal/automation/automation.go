package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/sortviz/internal/algorithms"
	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/log"
	"github.com/san-kum/sortviz/internal/metrics"
	"github.com/san-kum/sortviz/internal/player"
	"github.com/san-kum/sortviz/internal/storage"
	"github.com/san-kum/sortviz/internal/trace"
)

var ErrVerify = errors.New("automation: playback did not sort the array")

// Scenario defines a scripted batch of trace generations.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep generates one trace. Preset, when set, supplies the
// algorithm, size, shape and speed; explicit fields override it.
type ScenarioStep struct {
	Preset    string `yaml:"preset"`
	Algorithm string `yaml:"algorithm"`
	Size      int    `yaml:"size"`
	Shape     string `yaml:"shape"`
	Seed      int64  `yaml:"seed"`
	Speed     int    `yaml:"speed"`
	Verify    bool   `yaml:"verify"`
	Save      bool   `yaml:"save"`
}

type StepResult struct {
	Step      int
	Algorithm string
	Size      int
	Events    int
	Metrics   map[string]float64
	Verified  bool
	RunID     string
}

// Runner executes scenarios. A nil Store disables saving.
type Runner struct {
	Registry *algorithms.Registry
	Store    *storage.Store
	Logger   *slog.Logger
}

func NewRunner(store *storage.Store, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{
		Registry: algorithms.NewRegistry(),
		Store:    store,
		Logger:   log.WithComponent(logger, "automation"),
	}
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("automation: parse %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("automation: scenario %q has no steps", scenario.Name)
	}
	return &scenario, nil
}

// Resolve merges the step with its preset and the defaults and validates
// the result.
func (s ScenarioStep) Resolve() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		p := config.GetPreset(s.Preset)
		if p == nil {
			return nil, fmt.Errorf("%w: unknown preset %q", config.ErrInvalidConfig, s.Preset)
		}
		cfg.Apply(p)
	}
	if s.Algorithm != "" {
		cfg.Algorithm = s.Algorithm
	}
	if s.Size != 0 {
		cfg.ArraySize = s.Size
	}
	if s.Shape != "" {
		cfg.Shape = s.Shape
	}
	if s.Speed != 0 {
		cfg.Speed = s.Speed
	}
	cfg.Seed = s.Seed
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RunScenario executes all steps in order and stops at the first error,
// returning the results gathered so far.
func (r *Runner) RunScenario(ctx context.Context, scenario *Scenario) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		cfg, err := step.Resolve()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		r.Logger.Info("running step",
			"step", i+1,
			"of", len(scenario.Steps),
			log.AlgorithmKey, cfg.Algorithm,
			log.SizeKey, cfg.ArraySize,
		)

		values, err := cfg.Array()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		tr, err := r.Registry.Generate(cfg.Algorithm, values)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		res := StepResult{
			Step:      i + 1,
			Algorithm: cfg.Algorithm,
			Size:      cfg.ArraySize,
			Events:    tr.Len(),
			Metrics:   metrics.Collect(tr.Events, metrics.Default()...),
		}

		if step.Verify {
			if err := Verify(ctx, tr); err != nil {
				return results, fmt.Errorf("step %d verify: %w", i+1, err)
			}
			res.Verified = true
		}

		if step.Save && r.Store != nil {
			runID, err := r.Store.Save(tr, storage.RunOptions{Seed: cfg.Seed, Shape: cfg.Shape, Speed: cfg.Speed})
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			res.RunID = runID
			r.Logger.Info("run saved", log.RunIDKey, runID)
		}

		results = append(results, res)
	}

	return results, nil
}

// Verify plays tr to completion on a manual scheduler and checks the
// engine ends on the trace's final array with every index sorted.
func Verify(ctx context.Context, tr trace.Trace) error {
	sched := player.NewManualScheduler()
	e := player.New(player.WithScheduler(sched))
	if err := e.Load(tr, player.MaxSpeed); err != nil {
		return err
	}
	if err := e.Start(); err != nil {
		return err
	}

	for sched.Advance() {
		if err := ctx.Err(); err != nil {
			return err
		}
	}

	s := e.State()
	if s.Status != player.Completed {
		return fmt.Errorf("%w: stopped %s at %d/%d", ErrVerify, s.Status, s.Cursor, s.Total)
	}
	if !slices.Equal(s.Array, tr.Final) || !slices.IsSorted(s.Array) {
		return fmt.Errorf("%w: got %v", ErrVerify, s.Array)
	}
	if len(s.Sorted) != len(s.Array) {
		return fmt.Errorf("%w: %d of %d indices marked sorted", ErrVerify, len(s.Sorted), len(s.Array))
	}
	return nil
}

// Sweep compares algorithms across array sizes, averaging several seeded
// trials per size.
type Sweep struct {
	Algorithms []string
	Sizes      []int
	Shape      string
	Trials     int
	Seed       int64
}

type SweepResult struct {
	Algorithm      string
	Size           int
	Trials         int
	AvgComparisons float64
	AvgSwaps       float64
	MaxComparisons int
	MaxSwaps       int
}

// RunSweep executes a sweep. Each (size, trial) pair uses the same input
// for every algorithm; algorithms of one size run concurrently.
func (r *Runner) RunSweep(ctx context.Context, sweep *Sweep) ([]SweepResult, error) {
	trials := max(sweep.Trials, 1)
	names := sweep.Algorithms
	if len(names) == 0 {
		names = r.Registry.Names()
	}

	results := make([]SweepResult, 0, len(names)*len(sweep.Sizes))
	rng := rand.New(rand.NewSource(sweep.Seed))

	for _, size := range sweep.Sizes {
		seeds := make([]int64, trials)
		for t := range seeds {
			seeds[t] = rng.Int63()
		}

		if err := ctx.Err(); err != nil {
			return results, err
		}

		batch := make([]SweepResult, len(names))
		errs := make([]error, len(names))

		var wg sync.WaitGroup
		for i, name := range names {
			wg.Add(1)
			go func(idx int, name string) {
				defer wg.Done()
				batch[idx], errs[idx] = r.sweepOne(sweep.Shape, name, size, seeds)
			}(i, name)
		}
		wg.Wait()

		for _, err := range errs {
			if err != nil {
				return nil, err
			}
		}
		results = append(results, batch...)

		r.Logger.Debug("sweep size done", log.SizeKey, size)
	}

	return results, nil
}

// sweepOne averages the counts of one algorithm over the given seeds.
func (r *Runner) sweepOne(shape, name string, size int, seeds []int64) (SweepResult, error) {
	res := SweepResult{Algorithm: name, Size: size, Trials: len(seeds)}
	cmp, swp := metrics.NewComparisons(), metrics.NewSwaps()
	for _, seed := range seeds {
		values, err := algorithms.Shape(shape, size, seed)
		if err != nil {
			return res, err
		}
		tr, err := r.Registry.Generate(name, values)
		if err != nil {
			return res, err
		}

		cmp.Reset()
		swp.Reset()
		metrics.Collect(tr.Events, cmp, swp)
		res.AvgComparisons += cmp.Value()
		res.AvgSwaps += swp.Value()
		res.MaxComparisons = max(res.MaxComparisons, cmp.Count())
		res.MaxSwaps = max(res.MaxSwaps, swp.Count())
	}
	res.AvgComparisons /= float64(len(seeds))
	res.AvgSwaps /= float64(len(seeds))
	return res, nil
}
