package bestiary

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/forsaken/internal/game/stats"
)

// Biome is a travel destination with its own enemy and weather whitelists.
type Biome struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Image       string `yaml:"image,omitempty"`
	// Rarity is the number of tickets the biome holds in a teleport draw.
	Rarity               int                `yaml:"rarity"`
	Enemies              []string           `yaml:"enemies"`
	Weather              []string           `yaml:"weather"`
	SpecialEvents        []string           `yaml:"special_events,omitempty"`
	EnvironmentalEffects []stats.ItemEffect `yaml:"environmental_effects,omitempty"`
}

// Validate checks the biome's invariants.
func (b Biome) Validate() error {
	var errs []error
	if b.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if b.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if b.Rarity < 0 {
		errs = append(errs, errors.New("rarity must be >= 0"))
	}
	for _, e := range b.EnvironmentalEffects {
		if err := e.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("biome %q: %w", b.ID, errors.Join(errs...))
	}
	return nil
}

// Weather is an environmental condition. Its effects are display data only.
type Weather struct {
	ID          string             `yaml:"id"`
	Name        string             `yaml:"name"`
	Description string             `yaml:"description"`
	Image       string             `yaml:"image,omitempty"`
	Effects     []stats.ItemEffect `yaml:"effects"`
	Conditions  []string           `yaml:"conditions,omitempty"`
	Atmospheric bool               `yaml:"atmospheric,omitempty"`
}

// Validate checks the weather's invariants.
func (w Weather) Validate() error {
	var errs []error
	if w.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if w.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	for _, e := range w.Effects {
		if err := e.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("weather %q: %w", w.ID, errors.Join(errs...))
	}
	return nil
}
