// Package stats defines the numeric combat attributes of a character and the
// item effects that modify them.
package stats

import (
	"maps"
	"math"
	"strconv"
)

// CharacterStats is the flat bag of combat attributes shared by base stats and
// aggregated stats.
//
// Invariant: all numeric fields are finite. Health <= MaxHealth is expected but
// not enforced here.
type CharacterStats struct {
	Health              float64            `yaml:"health"`
	MaxHealth           float64            `yaml:"max_health"`
	Armor               float64            `yaml:"armor"`
	Damage              float64            `yaml:"damage"`
	CriticalChance      float64            `yaml:"critical_chance"`
	CriticalDamage      float64            `yaml:"critical_damage"`
	MovementSpeed       float64            `yaml:"movement_speed"`
	JumpHeight          float64            `yaml:"jump_height"`
	Lifesteal           float64            `yaml:"lifesteal"`
	ElementalResistance map[string]float64 `yaml:"elemental_resistance"`
	Gold                float64            `yaml:"gold"`
}

// Clone returns a deep copy of s; the resistance map is not shared.
func (s CharacterStats) Clone() CharacterStats {
	out := s
	if s.ElementalResistance != nil {
		out.ElementalResistance = maps.Clone(s.ElementalResistance)
	}
	return out
}

// Equal reports whether s and o hold identical values, treating a nil and an
// empty resistance map as equal.
func (s CharacterStats) Equal(o CharacterStats) bool {
	return s.scalars() == o.scalars() && maps.Equal(s.ElementalResistance, o.ElementalResistance)
}

func (s CharacterStats) scalars() [10]float64 {
	return [10]float64{
		s.Health, s.MaxHealth, s.Armor, s.Damage, s.CriticalChance,
		s.CriticalDamage, s.MovementSpeed, s.JumpHeight, s.Lifesteal, s.Gold,
	}
}

// DamageTypes lists the resistance keys every new character starts with.
var DamageTypes = []string{"fire", "ice", "lightning", "poison", "holy", "dark"}

// Baseline returns the starting stats of a fresh character.
//
// Postcondition: Health == MaxHealth == 100; every DamageTypes key maps to 0.
func Baseline() CharacterStats {
	res := make(map[string]float64, len(DamageTypes))
	for _, dt := range DamageTypes {
		res[dt] = 0
	}
	return CharacterStats{
		Health:              100,
		MaxHealth:           100,
		Armor:               0,
		Damage:              10,
		CriticalChance:      0.05,
		CriticalDamage:      1.5,
		MovementSpeed:       100,
		JumpHeight:          100,
		Lifesteal:           0,
		ElementalResistance: res,
		Gold:                0,
	}
}

// FormatNumber renders integral values without decimals and every other value
// with exactly two decimal places.
func FormatNumber(v float64) string {
	if v == math.Trunc(v) && !math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
