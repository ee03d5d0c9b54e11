package encounter

import (
	"slices"
	"time"

	"github.com/cory-johannsen/forsaken/internal/game/bestiary"
)

// State is the encounter state of one session. Transitions never modify a
// State in place; they return a new one.
type State struct {
	// CurrentBiome is nil until the first teleport.
	CurrentBiome *bestiary.Biome
	// CurrentWeather is nil until the first weather change.
	CurrentWeather   *bestiary.Weather
	TimeOfDay        bestiary.TimeOfDay
	ActiveEnemies    []bestiary.Instance
	DiscoveredBiomes []bestiary.Biome
	LastSpawnTime    time.Time
	// LastActionTime is the time of the last accepted player action.
	LastActionTime time.Time
	// SpawnElapsed counts biome time since the last spawn check fired.
	SpawnElapsed     time.Duration
	SpawnCooldown    time.Duration
	MaxActiveEnemies int
}

// Clone returns a copy of s whose slices are not shared with s.
// Biome and weather values are treated as immutable and stay shared.
func (s State) Clone() State {
	out := s
	out.ActiveEnemies = slices.Clone(s.ActiveEnemies)
	out.DiscoveredBiomes = slices.Clone(s.DiscoveredBiomes)
	return out
}

// HasBiome reports whether a biome is selected.
func (s State) HasBiome() bool { return s.CurrentBiome != nil }

// Enemy returns the active instance with id.
func (s State) Enemy(id string) (bestiary.Instance, bool) {
	i := s.enemyIndex(id)
	if i < 0 {
		return bestiary.Instance{}, false
	}
	return s.ActiveEnemies[i], true
}

func (s State) enemyIndex(id string) int {
	return slices.IndexFunc(s.ActiveEnemies, func(e bestiary.Instance) bool { return e.ID == id })
}

// AtCapacity reports whether no further enemy may spawn.
func (s State) AtCapacity() bool {
	return len(s.ActiveEnemies) >= s.MaxActiveEnemies
}
