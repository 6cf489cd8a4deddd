// Package sim runs batches of independent playouts over a seed range.
package sim

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/nathoo/spirecore/engine/agent"
	"github.com/nathoo/spirecore/engine/battle"
	"github.com/nathoo/spirecore/engine/game"
	"github.com/nathoo/spirecore/engine/monsters"
	"github.com/nathoo/spirecore/types"
)

// Config describes one batch.
type Config struct {
	Threads   int
	StartSeed uint64
	Count     int
	Print     bool

	Encounter monsters.Encounter
	Ascension int
	// Floor reseeds the per-floor streams when positive.
	Floor     int
	TurnLimit int
}

// Stats aggregates the outcomes of a batch.
type Stats struct {
	Wins     int
	Losses   int
	FloorSum int
	Turns    int
}

// Playouts is the number of playouts counted.
func (s Stats) Playouts() int { return s.Wins + s.Losses }

// WinRate is the fraction of playouts won.
func (s Stats) WinRate() float64 {
	if s.Playouts() == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Playouts())
}

// AvgFloor is the mean floor reached.
func (s Stats) AvgFloor() float64 {
	if s.Playouts() == 0 {
		return 0
	}
	return float64(s.FloorSum) / float64(s.Playouts())
}

// Result is a finished batch.
type Result struct {
	RunID   string
	Stats   Stats
	Elapsed time.Duration
}

// Factory builds the policy a worker owns for its whole range.
type Factory func() (agent.Policy, error)

// SeedRange is the half-open seed interval [Start, End).
type SeedRange struct {
	Start uint64
	End   uint64
}

// Len is the number of seeds in r.
func (r SeedRange) Len() int { return int(r.End - r.Start) }

var (
	ErrNoThreads = errors.New("thread count must be positive")
	ErrNoSeeds   = errors.New("playout count must not be negative")
)

// Ranges splits count seeds starting at start into at most threads
// contiguous, disjoint ranges. Earlier ranges absorb the remainder.
func Ranges(start uint64, count, threads int) []SeedRange {
	if threads <= 0 || count <= 0 {
		return nil
	}
	threads = min(threads, count)
	per, extra := count/threads, count%threads

	out := make([]SeedRange, 0, threads)
	next := start
	for w := 0; w < threads; w++ {
		n := per
		if w < extra {
			n++
		}
		out = append(out, SeedRange{Start: next, End: next + uint64(n)})
		next += uint64(n)
	}
	return out
}

// aggregate is the only state shared between workers.
type aggregate struct {
	mu    sync.Mutex
	stats Stats
}

func (a *aggregate) add(outcome types.Outcome, floor, turns int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if outcome == types.PlayerVictory {
		a.stats.Wins++
	} else {
		a.stats.Losses++
	}
	a.stats.FloorSum += floor
	a.stats.Turns += turns
}

// Run plays every seed in the configured range and returns the totals.
// Each worker owns its contexts and policy; nothing mutable is shared except
// the aggregate.
func Run(ctx context.Context, cfg Config, factory Factory, log logrus.FieldLogger) (Result, error) {
	if cfg.Threads <= 0 {
		return Result{}, ErrNoThreads
	}
	if cfg.Count < 0 {
		return Result{}, ErrNoSeeds
	}
	if !cfg.Encounter.Supported() {
		return Result{}, fmt.Errorf("sim: %s: %w", cfg.Encounter, battle.ErrUnsupportedEncounter)
	}

	runID := uuid.NewString()
	log = log.WithField("run_id", runID)
	start := time.Now()

	var agg aggregate
	g, ctx := errgroup.WithContext(ctx)
	for w, r := range Ranges(cfg.StartSeed, cfg.Count, cfg.Threads) {
		g.Go(func() error {
			return runWorker(ctx, w, r, cfg, factory, &agg, log.WithField("worker", w))
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	res := Result{RunID: runID, Stats: agg.stats, Elapsed: time.Since(start)}
	log.WithFields(logrus.Fields{
		"playouts": res.Stats.Playouts(),
		"wins":     res.Stats.Wins,
		"losses":   res.Stats.Losses,
		"elapsed":  res.Elapsed,
	}).Info("batch finished")
	return res, nil
}

func runWorker(ctx context.Context, w int, r SeedRange, cfg Config, factory Factory,
	agg *aggregate, log logrus.FieldLogger) error {

	p, err := factory()
	if err != nil {
		return fmt.Errorf("worker %d: %w", w, err)
	}
	a := agent.New(p)
	if cfg.TurnLimit > 0 {
		a.TurnLimit = cfg.TurnLimit
	}

	var bc battle.BattleContext
	for seed := r.Start; seed < r.End; seed++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		floor, turns, outcome, err := playout(&bc, a, seed, cfg)
		if err != nil {
			return fmt.Errorf("worker %d seed %d: %w", w, seed, err)
		}
		agg.add(outcome, floor, turns)

		if cfg.Print {
			log.WithFields(logrus.Fields{
				"seed":    seed,
				"outcome": outcome.String(),
				"hp":      bc.Player.CurHp,
				"turns":   turns,
				"actions": len(a.History),
			}).Info("playout")
		}
	}
	return nil
}

// playout runs one seed in bc, which the worker reuses between seeds. A
// won fight counts as reaching the next floor.
func playout(bc *battle.BattleContext, a *agent.Agent, seed uint64, cfg Config) (floor, turns int, outcome types.Outcome, err error) {
	gc := game.NewRun(types.Ironclad, seed, cfg.Ascension)
	if cfg.Floor > 0 {
		gc.SetFloor(cfg.Floor)
	}
	gc.EnterBattle(cfg.Encounter)
	if err := bc.Init(gc, cfg.Encounter); err != nil {
		return 0, 0, types.Undecided, err
	}

	outcome = a.PlayoutBattle(bc)
	bc.ExitBattle(gc)

	floor = gc.FloorNum
	if outcome == types.PlayerVictory {
		floor++
	}
	return floor, bc.Turn, outcome, nil
}
