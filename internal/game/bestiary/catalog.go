package bestiary

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/forsaken/internal/game/stats"
)

// Catalog holds the reference tables the encounter simulator reads.
// Biome whitelists may name enemies or weather that the catalog does not define;
// such ids are ignored at spawn and weather time.
type Catalog struct {
	Enemies []Enemy
	Biomes  []Biome
	Weather []Weather
}

// Validate checks each table for per-entry validity and unique ids.
func (c Catalog) Validate() error {
	if err := uniqueIDs("enemy", c.Enemies, func(e Enemy) string { return e.ID }); err != nil {
		return err
	}
	if err := uniqueIDs("biome", c.Biomes, func(b Biome) string { return b.ID }); err != nil {
		return err
	}
	return uniqueIDs("weather", c.Weather, func(w Weather) string { return w.ID })
}

func uniqueIDs[T interface{ Validate() error }](kind string, list []T, id func(T) string) error {
	seen := make(map[string]bool, len(list))
	for _, v := range list {
		if err := v.Validate(); err != nil {
			return err
		}
		if seen[id(v)] {
			return fmt.Errorf("duplicate %s id %q", kind, id(v))
		}
		seen[id(v)] = true
	}
	return nil
}

// Biome returns the biome with id.
func (c Catalog) Biome(id string) (Biome, bool) {
	i := slices.IndexFunc(c.Biomes, func(b Biome) bool { return b.ID == id })
	if i < 0 {
		return Biome{}, false
	}
	return c.Biomes[i], true
}

// WeatherByID returns the weather entry with id.
func (c Catalog) WeatherByID(id string) (Weather, bool) {
	i := slices.IndexFunc(c.Weather, func(w Weather) bool { return w.ID == id })
	if i < 0 {
		return Weather{}, false
	}
	return c.Weather[i], true
}

// WithEnemies returns a copy of c using enemies as the bestiary.
func (c Catalog) WithEnemies(enemies []Enemy) Catalog {
	c.Enemies = slices.Clone(enemies)
	return c
}

// LoadEnemies reads every *.yaml file in dir as one Enemy.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns the templates sorted by ID, or the first parse or
// validation error annotated with its file path.
func LoadEnemies(dir string) ([]Enemy, error) {
	return loadDir(dir, "enemy", func(e Enemy) string { return e.ID })
}

// LoadBiomes reads every *.yaml file in dir as one Biome.
func LoadBiomes(dir string) ([]Biome, error) {
	return loadDir(dir, "biome", func(b Biome) string { return b.ID })
}

// LoadWeather reads every *.yaml file in dir as one Weather entry.
func LoadWeather(dir string) ([]Weather, error) {
	return loadDir(dir, "weather", func(w Weather) string { return w.ID })
}

// LoadCatalog loads all three tables and validates the result.
func LoadCatalog(enemiesDir, biomesDir, weatherDir string) (Catalog, error) {
	var (
		c   Catalog
		err error
	)
	if c.Enemies, err = LoadEnemies(enemiesDir); err != nil {
		return Catalog{}, err
	}
	if c.Biomes, err = LoadBiomes(biomesDir); err != nil {
		return Catalog{}, err
	}
	if c.Weather, err = LoadWeather(weatherDir); err != nil {
		return Catalog{}, err
	}
	if err := c.Validate(); err != nil {
		return Catalog{}, fmt.Errorf("LoadCatalog: %w", err)
	}
	return c, nil
}

func loadDir[T interface{ Validate() error }](dir, kind string, id func(T) string) ([]T, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s dir %q: %w", kind, dir, err)
	}

	var out []T
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		var v T
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("parsing %s YAML %q: %w", kind, path, err)
		}
		if err := v.Validate(); err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b T) int { return strings.Compare(id(a), id(b)) })
	return out, nil
}

// DefaultCatalog returns the built-in world used when no content directory is
// configured. The same data ships under content/.
func DefaultCatalog() Catalog {
	return Catalog{
		Enemies: []Enemy{
			{
				ID: "goblin", Name: "Forest Goblin",
				Health: 25, MaxHealth: 25, Damage: 5, Armor: 1,
				Size: SizeSmall,
				SpawnConditions: SpawnConditions{
					TimeOfDay: Any, Weather: []string{}, Biomes: []string{"forest"},
				},
				LootTable: []LootEntry{}, Behavior: "aggressive", SpawnWeight: 10,
			},
			{
				ID: "wolf", Name: "Shadow Wolf",
				Health: 40, MaxHealth: 40, Damage: 8, Armor: 2,
				Size: SizeMedium,
				SpawnConditions: SpawnConditions{
					TimeOfDay: Night, Weather: []string{}, Biomes: []string{"forest"},
				},
				LootTable: []LootEntry{}, Behavior: "pack", SpawnWeight: 6,
			},
			{
				ID: "skeleton", Name: "Ancient Skeleton",
				Health: 35, MaxHealth: 35, Damage: 12, Armor: 3,
				Size: SizeMedium,
				SpawnConditions: SpawnConditions{
					TimeOfDay: Any, Weather: []string{}, Biomes: []string{"dungeon"},
				},
				LootTable: []LootEntry{}, Behavior: "guard", SpawnWeight: 8,
			},
		},
		Biomes: []Biome{
			{
				ID: "forest", Name: "Mystic Forest", Description: "A lush forest filled with ancient magic",
				Rarity: 8, Enemies: []string{"goblin", "wolf"}, Weather: []string{"clear", "rain"},
			},
			{
				ID: "desert", Name: "Scorching Desert", Description: "An endless expanse of burning sand",
				Rarity: 5, Enemies: []string{"scorpion", "sandworm"}, Weather: []string{"clear", "sandstorm"},
			},
			{
				ID: "dungeon", Name: "Ancient Dungeon", Description: "Dark corridors filled with forgotten treasures",
				Rarity: 2, Enemies: []string{"skeleton", "lich"}, Weather: []string{"dark"},
			},
		},
		Weather: []Weather{
			{ID: "clear", Name: "Clear Skies", Description: "Perfect weather for adventuring", Effects: []stats.ItemEffect{}},
			{
				ID: "rain", Name: "Heavy Rain",
				Description: "Rain reduces movement speed but increases magic regeneration",
				Effects: []stats.ItemEffect{{
					ID: "rain-movement", Name: "Reduced Movement",
					Description: "Movement speed reduced by 25%", Kind: stats.KindStat, Value: -0.25,
				}},
			},
			{
				ID: "sandstorm", Name: "Raging Sandstorm",
				Description: "Reduces visibility and increases critical hit chance",
				Effects: []stats.ItemEffect{{
					ID: "sandstorm-crit", Name: "Sharp Sand",
					Description: "Critical hit chance increased by 15%", Kind: stats.KindStat, Value: 0.15,
				}},
			},
		},
	}
}
