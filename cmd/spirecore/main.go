// Spirecore is a deterministic battle simulator for the Ironclad's first act.
// Usage: spirecore [-version] [-mode sim|snapshot|play] [flags]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"

	"github.com/nathoo/spirecore/cli"
	"github.com/nathoo/spirecore/config"
	"github.com/nathoo/spirecore/engine"
	"github.com/nathoo/spirecore/engine/agent"
	"github.com/nathoo/spirecore/engine/game"
	"github.com/nathoo/spirecore/engine/monsters"
	"github.com/nathoo/spirecore/engine/sim"
	"github.com/nathoo/spirecore/loader"
	"github.com/nathoo/spirecore/tui"
	"github.com/nathoo/spirecore/types"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		config.Exitf("Error: %v", err)
	}

	fs := flag.NewFlagSet("spirecore", flag.ExitOnError)
	showVersion := fs.Bool("version", false, "print the version and exit")
	cfg, err := config.ParseConfig(fs, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	if *showVersion {
		fmt.Printf("spirecore %s (commit %s, built %s)\n", version, commit, date)
		return
	}

	log := cfg.NewLogger(os.Stderr)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch cfg.Mode {
	case config.ModeSim:
		err = runSim(ctx, cfg, log)
	case config.ModeSnapshot:
		err = runSnapshot(cfg, log)
	case config.ModePlay:
		err = runPlay(cfg, log)
	}
	if err != nil {
		config.Exitf("Error: %v", err)
	}
}

func runSim(ctx context.Context, cfg config.Config, log *logrus.Logger) error {
	res, err := sim.Run(ctx, cfg.Sim(), cfg.PolicyFactory(), log)
	if err != nil {
		return err
	}
	s := res.Stats
	fmt.Printf("%s %s seeds %d..%d: %d playouts, %d wins, %d losses, win rate %.4f, avg floor %.4f, avg turns %.2f, %s\n",
		cfg.Agent, cfg.EncounterID(), cfg.StartSeed, cfg.StartSeed+uint64(cfg.Count),
		s.Playouts(), s.Wins, s.Losses, s.WinRate(), s.AvgFloor(), avgTurns(s), res.Elapsed)
	return nil
}

func avgTurns(s sim.Stats) float64 {
	if s.Playouts() == 0 {
		return 0
	}
	return float64(s.Turns) / float64(s.Playouts())
}

// loadScenarios reads the scenario directory, narrowed to one scenario when
// a name is configured. Warnings are logged, not fatal.
func loadScenarios(cfg config.Config, log logrus.FieldLogger) ([]*loader.Scenario, error) {
	scs, err := loader.LoadDir(cfg.ScenarioDir)
	if err != nil {
		return nil, err
	}
	if cfg.Scenario != "" {
		sc, ok := loader.Find(scs, cfg.Scenario)
		if !ok {
			return nil, fmt.Errorf("no scenario named %q in %s", cfg.Scenario, cfg.ScenarioDir)
		}
		scs = []*loader.Scenario{sc}
	}
	for _, sc := range scs {
		for _, w := range sc.Warnings {
			log.WithFields(logrus.Fields{"scenario": sc.Def.Name, "source": sc.Def.Source}).Warn(w)
		}
	}
	return scs, nil
}

func runSnapshot(cfg config.Config, log *logrus.Logger) error {
	scs, err := loadScenarios(cfg, log)
	if err != nil {
		return err
	}
	for i, sc := range scs {
		p, err := agent.FromName(cfg.Agent)
		if err != nil {
			return err
		}
		out, err := cli.Snapshot(sc, p)
		if err != nil {
			return fmt.Errorf("%s: %w", sc.Def.Name, err)
		}
		if i > 0 {
			fmt.Println()
		}
		fmt.Print(out)
	}
	return nil
}

func runPlay(cfg config.Config, log *logrus.Logger) error {
	newGame, encounter, err := playSetup(cfg, log)
	if err != nil {
		return err
	}
	eng, err := engine.New(newGame(), encounter)
	if err != nil {
		return err
	}
	if eng.Policy, err = agent.FromName(cfg.Agent); err != nil {
		return err
	}

	// Script mode: read commands from the file, force plain, echo input.
	if cfg.Script != "" {
		f, err := os.Open(cfg.Script)
		if err != nil {
			return fmt.Errorf("open script: %w", err)
		}
		defer f.Close()
		c := cli.New(eng, newGame)
		c.In = f
		c.EchoInput = true
		c.Trace = cfg.Trace
		c.Run()
		return nil
	}

	// Use the plain CLI if asked to or stdout is not a terminal.
	if cfg.Plain || !isTerminal() {
		c := cli.New(eng, newGame)
		c.Trace = cfg.Trace
		c.Run()
		return nil
	}
	return tui.Run(eng, newGame)
}

// playSetup picks the run a played battle starts from: a named scenario, or
// a fresh Ironclad run at the configured seed.
func playSetup(cfg config.Config, log logrus.FieldLogger) (func() *game.GameContext, monsters.Encounter, error) {
	if cfg.Scenario != "" {
		scs, err := loadScenarios(cfg, log)
		if err != nil {
			return nil, monsters.EncounterInvalid, err
		}
		return scs[0].Game, scs[0].Encounter, nil
	}
	newGame := func() *game.GameContext {
		gc := game.NewRun(types.Ironclad, cfg.StartSeed, cfg.Ascension)
		if cfg.Floor > 0 {
			gc.SetFloor(cfg.Floor)
		}
		return gc
	}
	return newGame, cfg.EncounterID(), nil
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
