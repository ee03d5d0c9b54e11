package bestiary

import (
	"fmt"
	"time"
)

// Instance is a live enemy spawned from a template.
type Instance struct {
	// ID is unique among spawns of every template.
	ID string
	// Template is a copy of the source template taken at spawn time.
	Template Enemy
	// Health is the instance's current health.
	Health float64
}

// NewInstance spawns tmpl at now.
//
// Postcondition: ID is "<template id>-<unix millis>"; Health equals tmpl.Health.
func NewInstance(tmpl Enemy, now time.Time) Instance {
	return Instance{
		ID:       fmt.Sprintf("%s-%d", tmpl.ID, now.UnixMilli()),
		Template: tmpl.Clone(),
		Health:   tmpl.Health,
	}
}

// Name returns the template name.
func (i Instance) Name() string { return i.Template.Name }

// IsDead reports whether the instance has no health left.
func (i Instance) IsDead() bool {
	return i.Health <= 0
}

// HealthDescription returns a visible health state string.
//
// Postcondition: Returns a non-empty string.
func (i Instance) HealthDescription() string {
	if i.Health <= 0 {
		return "dead"
	}
	if i.Template.MaxHealth <= 0 {
		return "unharmed"
	}
	pct := i.Health / i.Template.MaxHealth
	switch {
	case pct >= 1.0:
		return "unharmed"
	case pct >= 0.85:
		return "barely scratched"
	case pct >= 0.60:
		return "lightly wounded"
	case pct >= 0.40:
		return "moderately wounded"
	case pct >= 0.20:
		return "heavily wounded"
	default:
		return "critically wounded"
	}
}
