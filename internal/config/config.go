// Package config loads runtime configuration from the environment, with an
// optional .env file for local runs.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/djpetti/hearts-pomdp/engine"
	"github.com/djpetti/hearts-pomdp/engine/agent"
)

// Config holds every tunable of a session: RNG seeding, planner search
// parameters, and the reward constants.
type Config struct {
	// Seed seeds the session RNG. 0 lets the session derive one.
	Seed uint64 `env:"HEARTS_SEED" envDefault:"0"`
	// Hands is the number of hands to play in one run.
	Hands int `env:"HEARTS_HANDS" envDefault:"1"`

	// Particles is the belief particle count.
	Particles int `env:"HEARTS_PARTICLES" envDefault:"2000"`
	// Simulations is the per-decision planner budget.
	Simulations int `env:"HEARTS_SIMULATIONS" envDefault:"2000"`
	// MaxDepth bounds planner lookahead, in model transitions.
	MaxDepth int `env:"HEARTS_MAX_DEPTH" envDefault:"13"`
	// Exploration is the UCB1 exploration constant.
	Exploration float64 `env:"HEARTS_EXPLORATION" envDefault:"40"`
	// Discount is the planner's per-step reward discount.
	Discount float64 `env:"HEARTS_DISCOUNT" envDefault:"1.0"`

	// Reward constants. See engine.RewardConfig.
	HeartValue    float64 `env:"HEARTS_HEART_VALUE" envDefault:"-1"`
	QueenValue    float64 `env:"HEARTS_QUEEN_VALUE" envDefault:"-13"`
	NopPenalty    float64 `env:"HEARTS_NOP_PENALTY" envDefault:"-20"`
	MoonshotBonus float64 `env:"HEARTS_MOONSHOT_BONUS" envDefault:"20"`

	// LogLevel is a logrus level name: debug, info, warn, error.
	LogLevel string `env:"HEARTS_LOG_LEVEL" envDefault:"info"`
}

// Load reads an optional .env file, then parses the environment. A missing
// .env file is not an error; a malformed environment is.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Hands < 1 {
		return fmt.Errorf("HEARTS_HANDS must be at least 1, got %d", c.Hands)
	}
	if c.Particles < 1 {
		return fmt.Errorf("HEARTS_PARTICLES must be at least 1, got %d", c.Particles)
	}
	if c.Simulations < 1 {
		return fmt.Errorf("HEARTS_SIMULATIONS must be at least 1, got %d", c.Simulations)
	}
	if c.MaxDepth < 1 {
		return fmt.Errorf("HEARTS_MAX_DEPTH must be at least 1, got %d", c.MaxDepth)
	}
	return nil
}

// RewardConfig maps the scoring constants into the engine's config type.
func (c Config) RewardConfig() engine.RewardConfig {
	return engine.RewardConfig{
		HeartValue:    c.HeartValue,
		QueenValue:    c.QueenValue,
		NopPenalty:    c.NopPenalty,
		MoonshotBonus: c.MoonshotBonus,
	}
}

// PlannerConfig maps the search parameters into the agent's config type.
func (c Config) PlannerConfig() agent.PlannerConfig {
	return agent.PlannerConfig{
		MaxDepth:         c.MaxDepth,
		Simulations:      c.Simulations,
		ExplorationConst: c.Exploration,
		Discount:         c.Discount,
	}
}
