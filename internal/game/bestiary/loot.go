package bestiary

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/cory-johannsen/forsaken/internal/game/dice"
)

// Quantity is an inclusive drop count range.
type Quantity struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// LootEntry is one possible drop in an enemy's loot table.
type LootEntry struct {
	ItemID     string   `yaml:"item_id"`
	DropChance float64  `yaml:"drop_chance"`
	Quantity   Quantity `yaml:"quantity"`
	Conditions []string `yaml:"conditions,omitempty"`
}

// Validate checks the entry's invariants.
//
// Postcondition: Returns nil iff ItemID is non-empty, DropChance is in (0, 1],
// and 1 <= Quantity.Min <= Quantity.Max.
func (l LootEntry) Validate() error {
	if l.ItemID == "" {
		return errors.New("item_id must not be empty")
	}
	if l.DropChance <= 0 || l.DropChance > 1.0 {
		return fmt.Errorf("drop_chance must be in (0, 1.0], got %f", l.DropChance)
	}
	if l.Quantity.Min < 1 {
		return fmt.Errorf("quantity min must be >= 1, got %d", l.Quantity.Min)
	}
	if l.Quantity.Min > l.Quantity.Max {
		return fmt.Errorf("quantity min (%d) must be <= max (%d)", l.Quantity.Min, l.Quantity.Max)
	}
	return nil
}

// Drop is a single rolled loot result.
type Drop struct {
	ItemID     string
	InstanceID string
	Quantity   int
}

// GenerateLoot rolls every entry against src.
//
// Precondition: every entry must have passed Validate.
// Postcondition: each returned Drop has Quantity in [Min, Max] of its entry and a
// fresh InstanceID.
func GenerateLoot(entries []LootEntry, src dice.Source) []Drop {
	var drops []Drop
	for _, l := range entries {
		if dice.Float64(src) >= l.DropChance {
			continue
		}
		drops = append(drops, Drop{
			ItemID:     l.ItemID,
			InstanceID: uuid.New().String(),
			Quantity:   dice.IntRange(src, l.Quantity.Min, l.Quantity.Max),
		})
	}
	return drops
}
