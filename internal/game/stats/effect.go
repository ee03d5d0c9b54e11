package stats

import (
	"errors"
	"fmt"
)

// EffectKind classifies how an effect is resolved.
type EffectKind string

const (
	// KindStat effects add Value to a named stat during aggregation.
	KindStat EffectKind = "stat"
	// KindPassive, KindActive and KindConditional effects are carried as data;
	// the aggregator never applies them.
	KindPassive     EffectKind = "passive"
	KindActive      EffectKind = "active"
	KindConditional EffectKind = "conditional"
)

// Trigger names the moment a non-stat effect would fire.
type Trigger string

const (
	TriggerOnHit    Trigger = "onHit"
	TriggerOnCrit   Trigger = "onCrit"
	TriggerOnDamage Trigger = "onDamage"
	TriggerOnIdle   Trigger = "onIdle"
	TriggerOnMove   Trigger = "onMove"
	TriggerOnTime   Trigger = "onTime"
)

var validKinds = map[EffectKind]bool{
	KindStat: true, KindPassive: true, KindActive: true, KindConditional: true,
}

var validTriggers = map[Trigger]bool{
	TriggerOnHit: true, TriggerOnCrit: true, TriggerOnDamage: true,
	TriggerOnIdle: true, TriggerOnMove: true, TriggerOnTime: true,
}

// ItemEffect is a named modifier attached to an item, a biome, or a weather entry.
type ItemEffect struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Kind        EffectKind `yaml:"type"`
	Trigger     Trigger    `yaml:"trigger,omitempty"`
	Value       float64    `yaml:"value"`
	// Duration and Cooldown are in seconds; zero means unset.
	Duration   float64  `yaml:"duration,omitempty"`
	Cooldown   float64  `yaml:"cooldown,omitempty"`
	Conditions []string `yaml:"conditions,omitempty"`
}

// Validate checks the effect's tags.
//
// Postcondition: Returns nil iff Name is non-empty, Kind is known, and Trigger is
// empty or known.
func (e ItemEffect) Validate() error {
	var errs []error
	if e.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if !validKinds[e.Kind] {
		errs = append(errs, fmt.Errorf("type %q must be one of stat, passive, active, conditional", e.Kind))
	}
	if e.Trigger != "" && !validTriggers[e.Trigger] {
		errs = append(errs, fmt.Errorf("trigger %q is not a known trigger", e.Trigger))
	}
	if e.Duration < 0 || e.Cooldown < 0 {
		errs = append(errs, errors.New("duration and cooldown must be >= 0"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("effect %q: %w", e.ID, errors.Join(errs...))
	}
	return nil
}

// statFields maps an effect name to the stat it modifies. "health" raises the
// ceiling, not current health.
var statFields = map[string]func(*CharacterStats) *float64{
	"health":         func(s *CharacterStats) *float64 { return &s.MaxHealth },
	"armor":          func(s *CharacterStats) *float64 { return &s.Armor },
	"damage":         func(s *CharacterStats) *float64 { return &s.Damage },
	"criticalChance": func(s *CharacterStats) *float64 { return &s.CriticalChance },
	"criticalDamage": func(s *CharacterStats) *float64 { return &s.CriticalDamage },
	"movementSpeed":  func(s *CharacterStats) *float64 { return &s.MovementSpeed },
	"jumpHeight":     func(s *CharacterStats) *float64 { return &s.JumpHeight },
	"lifesteal":      func(s *CharacterStats) *float64 { return &s.Lifesteal },
}

// IsStatName reports whether name is mapped to a stat field.
func IsStatName(name string) bool {
	_, ok := statFields[name]
	return ok
}

// Apply adds a stat effect's Value to the mapped field of s.
// Effects of any other kind, and stat effects with an unmapped name, are ignored.
//
// Precondition: s must not be nil.
// Postcondition: Returns true iff a field of s was modified.
func Apply(s *CharacterStats, e ItemEffect) bool {
	if e.Kind != KindStat {
		return false
	}
	field, ok := statFields[e.Name]
	if !ok {
		return false
	}
	*field(s) += e.Value
	return true
}
