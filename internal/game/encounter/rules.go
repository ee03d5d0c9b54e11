// Package encounter implements the biome, spawn, and combat state machine and
// the session that drives it with a wall-clock timer.
package encounter

import (
	"fmt"
	"time"

	"github.com/cory-johannsen/forsaken/internal/config"
	"github.com/cory-johannsen/forsaken/internal/game/dice"
)

// Rules holds the encounter loop constants.
type Rules struct {
	SpawnInterval    time.Duration
	SpawnThreshold   time.Duration
	SpawnCooldown    time.Duration
	AttackCooldown   time.Duration
	MaxActiveEnemies int
	GoldReward       dice.Expression
}

// RulesFromConfig converts validated simulation settings into Rules.
//
// Postcondition: Returns an error iff GoldReward is not a single-die expression.
func RulesFromConfig(cfg config.SimulationConfig) (Rules, error) {
	gold, err := dice.ParseUniform(cfg.GoldReward)
	if err != nil {
		return Rules{}, fmt.Errorf("gold reward: %w", err)
	}
	return Rules{
		SpawnInterval:    cfg.SpawnInterval,
		SpawnThreshold:   cfg.SpawnThreshold,
		SpawnCooldown:    cfg.SpawnCooldown,
		AttackCooldown:   cfg.AttackCooldown,
		MaxActiveEnemies: cfg.MaxActiveEnemies,
		GoldReward:       gold,
	}, nil
}

// DefaultRules returns the rules built from config.Default.
func DefaultRules() Rules {
	r, err := RulesFromConfig(config.Default().Simulation)
	if err != nil {
		panic(fmt.Sprintf("encounter.DefaultRules: %v", err))
	}
	return r
}
