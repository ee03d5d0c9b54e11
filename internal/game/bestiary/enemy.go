// Package bestiary provides enemy templates, biomes, weather, and the live
// enemy instances spawned from them.
package bestiary

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Size is the enemy size class.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
	SizeBoss   Size = "boss"
)

// Valid reports whether s is a known size class.
func (s Size) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge, SizeBoss:
		return true
	}
	return false
}

// TimeOfDay is either a world clock value (day, night) or, on a spawn
// requirement, the wildcard any.
type TimeOfDay string

const (
	Day   TimeOfDay = "day"
	Night TimeOfDay = "night"
	Any   TimeOfDay = "any"
)

// Valid reports whether t is day, night, or any.
func (t TimeOfDay) Valid() bool {
	return t == Day || t == Night || t == Any
}

// Toggle flips day and night. Any is returned unchanged.
func (t TimeOfDay) Toggle() TimeOfDay {
	switch t {
	case Day:
		return Night
	case Night:
		return Day
	}
	return t
}

// Allows reports whether a requirement of t is satisfied at world time now.
func (t TimeOfDay) Allows(now TimeOfDay) bool {
	return t == Any || t == now
}

// SpawnConditions restricts where and when an enemy may appear.
// Weather is recorded but not used as a filter.
type SpawnConditions struct {
	TimeOfDay TimeOfDay `yaml:"time_of_day"`
	Weather   []string  `yaml:"weather"`
	Biomes    []string  `yaml:"biomes"`
}

// Enemy is a spawnable template loaded from YAML or authored at runtime.
type Enemy struct {
	ID              string             `yaml:"id"`
	Name            string             `yaml:"name"`
	Description     string             `yaml:"description,omitempty"`
	Image           string             `yaml:"image,omitempty"`
	Health          float64            `yaml:"health"`
	MaxHealth       float64            `yaml:"max_health"`
	Damage          float64            `yaml:"damage"`
	Armor           float64            `yaml:"armor"`
	Size            Size               `yaml:"size"`
	SpawnConditions SpawnConditions    `yaml:"spawn_conditions"`
	LootTable       []LootEntry        `yaml:"loot_table"`
	Behavior        string             `yaml:"behavior"`
	SpawnWeight     int                `yaml:"spawn_weight"`
	CustomStats     map[string]float64 `yaml:"custom_stats,omitempty"`
}

// Validate checks that the template satisfies basic invariants.
//
// Postcondition: Returns nil iff ID and Name are non-empty, 0 < Health <= MaxHealth,
// Damage, Armor and SpawnWeight are non-negative, Size and TimeOfDay are known,
// and every loot entry validates.
func (e Enemy) Validate() error {
	var errs []error
	if e.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if e.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if e.MaxHealth <= 0 {
		errs = append(errs, errors.New("max_health must be > 0"))
	}
	if e.Health <= 0 || e.Health > e.MaxHealth {
		errs = append(errs, fmt.Errorf("health %v must be in (0, max_health]", e.Health))
	}
	if e.Damage < 0 || e.Armor < 0 {
		errs = append(errs, errors.New("damage and armor must be >= 0"))
	}
	if e.SpawnWeight < 0 {
		errs = append(errs, errors.New("spawn_weight must be >= 0"))
	}
	if !e.Size.Valid() {
		errs = append(errs, fmt.Errorf("size %q must be one of small, medium, large, boss", e.Size))
	}
	if !e.SpawnConditions.TimeOfDay.Valid() {
		errs = append(errs, fmt.Errorf("time_of_day %q must be one of day, night, any", e.SpawnConditions.TimeOfDay))
	}
	for i, l := range e.LootTable {
		if err := l.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("loot_table[%d]: %w", i, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("enemy %q: %w", e.ID, errors.Join(errs...))
	}
	return nil
}

// Clone returns a deep copy of e.
func (e Enemy) Clone() Enemy {
	out := e
	out.SpawnConditions.Weather = slices.Clone(e.SpawnConditions.Weather)
	out.SpawnConditions.Biomes = slices.Clone(e.SpawnConditions.Biomes)
	out.LootTable = slices.Clone(e.LootTable)
	for i := range out.LootTable {
		out.LootTable[i].Conditions = slices.Clone(out.LootTable[i].Conditions)
	}
	out.CustomStats = maps.Clone(e.CustomStats)
	return out
}

// CanSpawn reports whether e may appear in biomeID at world time now.
func (e Enemy) CanSpawn(biomeID string, now TimeOfDay) bool {
	return slices.Contains(e.SpawnConditions.Biomes, biomeID) && e.SpawnConditions.TimeOfDay.Allows(now)
}

// Eligible returns the templates that may spawn in biomeID at world time now,
// preserving catalog order.
func Eligible(enemies []Enemy, biomeID string, now TimeOfDay) []Enemy {
	var out []Enemy
	for _, e := range enemies {
		if e.CanSpawn(biomeID, now) {
			out = append(out, e)
		}
	}
	return out
}

// FindEnemy returns the template with id.
func FindEnemy(enemies []Enemy, id string) (Enemy, bool) {
	i := slices.IndexFunc(enemies, func(e Enemy) bool { return e.ID == id })
	if i < 0 {
		return Enemy{}, false
	}
	return enemies[i], true
}
