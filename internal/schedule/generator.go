package schedule

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/derekprior/lineup/internal/metrics"
)

// CoveragePolicy decides what happens when the repair pass cannot bring
// every pair of players together.
type CoveragePolicy string

const (
	// CoverageBestEffort keeps the repaired schedule and reports the missing pairs.
	CoverageBestEffort CoveragePolicy = "best_effort"
	// CoverageRequired returns the repaired schedule together with a *CoverageError.
	CoverageRequired CoveragePolicy = "required"
	// CoverageOff skips the repair pass.
	CoverageOff CoveragePolicy = "off"
)

// ParseCoveragePolicy accepts "", best_effort, required and off.
func ParseCoveragePolicy(s string) (CoveragePolicy, error) {
	switch CoveragePolicy(s) {
	case "", CoverageBestEffort:
		return CoverageBestEffort, nil
	case CoverageRequired, CoverageOff:
		return CoveragePolicy(s), nil
	default:
		return "", fmt.Errorf("unknown coverage policy: %q", s)
	}
}

// Options configure a Generator. Zero values fall back to the defaults.
type Options struct {
	MaxAttempts       int
	MaxSwapIterations int
	ProgressEvery     int
	Coverage          CoveragePolicy

	// Seed makes runs reproducible. Zero seeds from the clock.
	Seed int64

	Logger  logrus.FieldLogger
	Metrics metrics.GenerationMetrics
}

// Request is one schedule to generate.
type Request struct {
	GameType  string
	Locations []string
	Players   []Player
	Rules     Rules

	// OnProgress receives the number of finished attempts.
	OnProgress func(attempts int)
}

// Result is a generated schedule.
type Result struct {
	Assignment Assignment
	Attempts   int
	Covered    bool
	Swaps      int
	Missing    []Pair
	Summaries  []PlayerSummary
	Seed       int64
}

// Generator validates input, fills every location and repairs pair
// coverage. It holds no per-run state and is safe for concurrent use.
type Generator struct {
	opts Options
}

// New returns a Generator with defaults applied to opts.
func New(opts Options) *Generator {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if opts.MaxSwapIterations <= 0 {
		opts.MaxSwapIterations = DefaultMaxSwapIterations
	}
	if opts.ProgressEvery <= 0 {
		opts.ProgressEvery = DefaultProgressEvery
	}
	if opts.Coverage == "" {
		opts.Coverage = CoverageBestEffort
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewNop()
	}
	return &Generator{opts: opts}
}

// Generate produces a schedule for req. On a *CoverageError the best-effort
// result is returned alongside the error.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	seed := g.opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log := g.opts.Logger.WithFields(logrus.Fields{
		"run_id":    uuid.NewString(),
		"game_type": req.GameType,
		"seed":      seed,
	})

	if err := Validate(req.Locations, req.Players, req.Rules); err != nil {
		g.opts.Metrics.AddOutcome(req.GameType, metrics.OutcomeInvalidInput)
		log.WithError(err).Warn("rejected schedule input")
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		g.opts.Metrics.AddOutcome(req.GameType, metrics.OutcomeCanceled)
		return nil, fmt.Errorf("%w: %w", ErrCanceled, err)
	}

	rng := rand.New(rand.NewSource(seed))
	started := time.Now()
	at, attempts, err := fill(ctx, req.Locations, req.Players, req.Rules, rng, fillLimits{
		maxAttempts:   g.opts.MaxAttempts,
		progressEvery: g.opts.ProgressEvery,
		onProgress:    req.OnProgress,
	}, log)
	g.opts.Metrics.ObserveAttempts(req.GameType, attempts)
	if err != nil {
		outcome := metrics.OutcomeMaxRetries
		if errors.Is(err, ErrCanceled) {
			outcome = metrics.OutcomeCanceled
		}
		g.opts.Metrics.AddOutcome(req.GameType, outcome)
		log.WithError(err).WithField("attempts", attempts).Warn("schedule generation failed")
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"attempts": attempts,
		"elapsed":  time.Since(started),
	}).Info("filled every location")

	result := &Result{
		Assignment: at.assignment(),
		Attempts:   attempts,
		Seed:       seed,
	}
	names := playerNames(req.Players)

	if g.opts.Coverage == CoverageOff {
		result.Missing = MissingPairs(result.Assignment, names)
		result.Covered = len(result.Missing) == 0
	} else {
		repaired := Repair(result.Assignment, req.Locations, req.Players, req.Rules, RepairOptions{
			MaxIterations: g.opts.MaxSwapIterations,
			Rand:          rng,
		})
		result.Assignment = repaired.Assignment
		result.Covered = repaired.Covered
		result.Swaps = repaired.Swaps
		result.Missing = repaired.Missing
		g.opts.Metrics.ObserveSwaps(req.GameType, repaired.Swaps)
		log.WithFields(logrus.Fields{
			"swaps":      repaired.Swaps,
			"iterations": repaired.Iterations,
			"missing":    len(repaired.Missing),
		}).Debug("pair coverage repair finished")
	}
	g.opts.Metrics.SetMissingPairs(req.GameType, len(result.Missing))
	result.Summaries = Summarize(result.Assignment, req.Locations, names, req.Rules.homePrefix())

	if !result.Covered && g.opts.Coverage == CoverageRequired {
		g.opts.Metrics.AddOutcome(req.GameType, metrics.OutcomeCoverageIncomplete)
		return result, &CoverageError{Missing: result.Missing}
	}
	g.opts.Metrics.AddOutcome(req.GameType, metrics.OutcomeSuccess)
	return result, nil
}
