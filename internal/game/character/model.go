// Package character defines the player character, its equipment loadout, and
// the pure functions that derive combat statistics from them.
package character

import "github.com/cory-johannsen/forsaken/internal/game/stats"

// Default identity of the session's character.
const (
	DefaultID   = "player-1"
	DefaultName = "Forsaken Warrior"
)

// Character is the player's identity, progression, base stats, and loadout.
//
// Character is a value: Equip, Unequip and the simulator's reward resolution
// return a new Character rather than editing a shared one.
type Character struct {
	ID         string
	Name       string
	Level      int
	Experience int
	BaseStats  stats.CharacterStats
	Equipment  Loadout
}

// NewDefault returns the level-1 character a session starts with.
//
// Postcondition: the loadout is empty and BaseStats equals stats.Baseline().
func NewDefault() Character {
	return Character{
		ID:        DefaultID,
		Name:      DefaultName,
		Level:     1,
		BaseStats: stats.Baseline(),
	}
}

// Clone returns a copy of c that shares no mutable state with it.
func (c Character) Clone() Character {
	out := c
	out.BaseStats = c.BaseStats.Clone()
	return out
}

// Equal reports whether c and o have the same identity, stats, and equipped item ids.
func (c Character) Equal(o Character) bool {
	return c.ID == o.ID && c.Name == o.Name &&
		c.Level == o.Level && c.Experience == o.Experience &&
		c.BaseStats.Equal(o.BaseStats) &&
		c.Equipment.IDs() == o.Equipment.IDs()
}

// AddGold returns a copy of c with amount added to its gold.
func (c Character) AddGold(amount float64) Character {
	out := c.Clone()
	out.BaseStats.Gold += amount
	return out
}
