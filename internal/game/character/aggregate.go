package character

import (
	"github.com/cory-johannsen/forsaken/internal/game/item"
	"github.com/cory-johannsen/forsaken/internal/game/stats"
)

// ComputeStats derives the character's final combat statistics.
//
// Weapons add their intrinsic damage and crit chance, armor adds its armor
// value, and every stat effect on an equipped item is applied. All operations
// are additive; nothing is clamped.
//
// Postcondition: c is not modified; with an empty loadout the result equals c.BaseStats.
func ComputeStats(c Character) stats.CharacterStats {
	out := c.BaseStats.Clone()
	for _, it := range c.Equipment.Items() {
		switch v := it.(type) {
		case item.Weapon:
			out.Damage += v.Damage
			out.CriticalChance += v.CritChance
		case item.Armor:
			out.Armor += v.ArmorValue
		case item.Accessory:
			// effects only
		}
		for _, e := range item.Effects(it) {
			stats.Apply(&out, e)
		}
	}
	return out
}

// ActiveEffects flattens the effect lists of every equipped item in slot order.
func ActiveEffects(c Character) []stats.ItemEffect {
	var out []stats.ItemEffect
	for _, it := range c.Equipment.Items() {
		out = append(out, item.Effects(it)...)
	}
	return out
}
