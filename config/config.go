// Package config parses the runtime configuration of the spirecore
// command from SPIRECORE_* environment variables, an optional .env file,
// and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/nathoo/spirecore/engine/agent"
	"github.com/nathoo/spirecore/engine/monsters"
	"github.com/nathoo/spirecore/engine/sim"
	"github.com/nathoo/spirecore/loader"
)

// Modes select what the command does.
const (
	ModeSim      = "sim"
	ModeSnapshot = "snapshot"
	ModePlay     = "play"
)

// Config holds the command configuration.
type Config struct {
	Mode string `env:"SPIRECORE_MODE" envDefault:"sim"`

	Threads   int    `env:"SPIRECORE_THREADS"    envDefault:"1"`
	StartSeed uint64 `env:"SPIRECORE_START_SEED" envDefault:"1"`
	Count     int    `env:"SPIRECORE_COUNT"      envDefault:"100"`
	Print     bool   `env:"SPIRECORE_PRINT"`

	Encounter string `env:"SPIRECORE_ENCOUNTER"  envDefault:"JAW_WORM"`
	Ascension int    `env:"SPIRECORE_ASCENSION"`
	Floor     int    `env:"SPIRECORE_FLOOR"`
	Agent     string `env:"SPIRECORE_AGENT"      envDefault:"simple"`
	TurnLimit int    `env:"SPIRECORE_TURN_LIMIT" envDefault:"100"`

	ScenarioDir string `env:"SPIRECORE_SCENARIO_DIR" envDefault:"scenarios"`
	Scenario    string `env:"SPIRECORE_SCENARIO"`

	Plain    bool   `env:"SPIRECORE_PLAIN"`
	Script   string `env:"SPIRECORE_SCRIPT"`
	Trace    bool   `env:"SPIRECORE_TRACE"`
	LogLevel string `env:"SPIRECORE_LOG_LEVEL" envDefault:"info"`
}

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// LoadDotEnv loads path into the environment. A missing file is not an
// error. Variables already set win over the file.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ParseConfig reads env defaults into a Config, then parses flags over them.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "sim, snapshot or play")
	fs.IntVar(&cfg.Threads, "threads", cfg.Threads, "worker goroutines for sim")
	fs.Uint64Var(&cfg.StartSeed, "seed", cfg.StartSeed, "first seed (the seed of a played battle)")
	fs.IntVar(&cfg.Count, "count", cfg.Count, "playouts for sim")
	fs.BoolVar(&cfg.Print, "print", cfg.Print, "log every playout")
	fs.StringVar(&cfg.Encounter, "encounter", cfg.Encounter, "encounter name, e.g. JAW_WORM")
	fs.IntVar(&cfg.Ascension, "ascension", cfg.Ascension, "ascension level")
	fs.IntVar(&cfg.Floor, "floor", cfg.Floor, "floor to reseed the per-floor streams for")
	fs.StringVar(&cfg.Agent, "agent", cfg.Agent, "policy: "+strings.Join(agent.Names(), ", "))
	fs.IntVar(&cfg.TurnLimit, "turn-limit", cfg.TurnLimit, "turns before a playout concedes")
	fs.StringVar(&cfg.ScenarioDir, "scenarios", cfg.ScenarioDir, "scenario directory")
	fs.StringVar(&cfg.Scenario, "scenario", cfg.Scenario, "scenario name, or all scenarios when empty")
	fs.BoolVar(&cfg.Plain, "plain", cfg.Plain, "plain line interface instead of the TUI")
	fs.StringVar(&cfg.Script, "script", cfg.Script, "play commands from a file through the plain interface")
	fs.BoolVar(&cfg.Trace, "trace", cfg.Trace, "trace every action")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "panic, fatal, error, warn, info, debug or trace")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and names.
func (c Config) Validate() error {
	switch c.Mode {
	case ModeSim, ModeSnapshot, ModePlay:
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalid, c.Mode)
	}
	if c.Threads < 1 {
		return fmt.Errorf("%w: threads must be positive, got %d", ErrInvalid, c.Threads)
	}
	if c.Count < 0 {
		return fmt.Errorf("%w: count must not be negative, got %d", ErrInvalid, c.Count)
	}
	if c.Ascension < 0 || c.Ascension > loader.MaxAscension {
		return fmt.Errorf("%w: ascension %d out of range 0..%d", ErrInvalid, c.Ascension, loader.MaxAscension)
	}
	if c.Floor < 0 {
		return fmt.Errorf("%w: floor must not be negative, got %d", ErrInvalid, c.Floor)
	}
	if c.TurnLimit < 1 {
		return fmt.Errorf("%w: turn limit must be positive, got %d", ErrInvalid, c.TurnLimit)
	}
	if _, err := agent.FromName(c.Agent); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if e := c.EncounterID(); !e.Supported() {
		return fmt.Errorf("%w: encounter %q has no battle implementation", ErrInvalid, c.Encounter)
	}
	return nil
}

// EncounterID resolves the configured encounter name.
func (c Config) EncounterID() monsters.Encounter {
	return monsters.EncounterFromName(c.Encounter)
}

// Sim converts the batch settings for the sim runner.
func (c Config) Sim() sim.Config {
	return sim.Config{
		Threads:   c.Threads,
		StartSeed: c.StartSeed,
		Count:     c.Count,
		Print:     c.Print,
		Encounter: c.EncounterID(),
		Ascension: c.Ascension,
		Floor:     c.Floor,
		TurnLimit: c.TurnLimit,
	}
}

// PolicyFactory builds a fresh policy of the configured kind per call.
func (c Config) PolicyFactory() sim.Factory {
	name := c.Agent
	return func() (agent.Policy, error) { return agent.FromName(name) }
}

// NewLogger returns a text logger at the configured level writing to out.
func (c Config) NewLogger(out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if lvl, err := logrus.ParseLevel(c.LogLevel); err == nil {
		log.SetLevel(lvl)
	}
	return log
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
