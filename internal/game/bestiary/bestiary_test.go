package bestiary_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/forsaken/internal/game/bestiary"
	"github.com/cory-johannsen/forsaken/internal/game/dice"
)

// fixedSource returns v % n on every draw.
type fixedSource struct{ v int }

func (f fixedSource) Intn(n int) int { return f.v % n }

func ids(enemies []bestiary.Enemy) []string {
	out := make([]string, 0, len(enemies))
	for _, e := range enemies {
		out = append(out, e.ID)
	}
	return out
}

func TestEligible_SampleBestiary(t *testing.T) {
	enemies := bestiary.DefaultCatalog().Enemies

	assert.Equal(t, []string{"goblin", "wolf"}, ids(bestiary.Eligible(enemies, "forest", bestiary.Night)))
	assert.Equal(t, []string{"goblin"}, ids(bestiary.Eligible(enemies, "forest", bestiary.Day)))
	assert.Equal(t, []string{"skeleton"}, ids(bestiary.Eligible(enemies, "dungeon", bestiary.Day)))
	assert.Equal(t, []string{"skeleton"}, ids(bestiary.Eligible(enemies, "dungeon", bestiary.Night)))
	assert.Empty(t, bestiary.Eligible(enemies, "desert", bestiary.Day))
}

func TestEligible_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		biomes := []string{"forest", "desert", "dungeon"}
		times := []bestiary.TimeOfDay{bestiary.Day, bestiary.Night, bestiary.Any}
		n := rapid.IntRange(0, 8).Draw(rt, "n")
		var enemies []bestiary.Enemy
		for i := 0; i < n; i++ {
			enemies = append(enemies, bestiary.Enemy{
				ID: rapid.StringMatching(`[a-z]{1,6}`).Draw(rt, "id"),
				SpawnConditions: bestiary.SpawnConditions{
					TimeOfDay: rapid.SampledFrom(times).Draw(rt, "tod"),
					Biomes:    rapid.SliceOfDistinct(rapid.SampledFrom(biomes), func(s string) string { return s }).Draw(rt, "biomes"),
				},
			})
		}
		biome := rapid.SampledFrom(biomes).Draw(rt, "biome")
		now := rapid.SampledFrom([]bestiary.TimeOfDay{bestiary.Day, bestiary.Night}).Draw(rt, "now")

		got := bestiary.Eligible(enemies, biome, now)
		for _, e := range got {
			assert.Contains(rt, e.SpawnConditions.Biomes, biome)
			assert.True(rt, e.SpawnConditions.TimeOfDay == bestiary.Any || e.SpawnConditions.TimeOfDay == now)
		}
		want := 0
		for _, e := range enemies {
			if e.CanSpawn(biome, now) {
				want++
			}
		}
		assert.Len(rt, got, want)
	})
}

func TestTimeOfDay(t *testing.T) {
	assert.Equal(t, bestiary.Night, bestiary.Day.Toggle())
	assert.Equal(t, bestiary.Day, bestiary.Night.Toggle())
	assert.Equal(t, bestiary.Any, bestiary.Any.Toggle())
	assert.True(t, bestiary.Any.Allows(bestiary.Night))
	assert.False(t, bestiary.Day.Allows(bestiary.Night))
	assert.False(t, bestiary.TimeOfDay("dusk").Valid())
}

func TestEnemy_Validate(t *testing.T) {
	for _, e := range bestiary.DefaultCatalog().Enemies {
		assert.NoError(t, e.Validate(), e.ID)
	}

	base := bestiary.DefaultCatalog().Enemies[0]
	mutations := map[string]func(*bestiary.Enemy){
		"empty id":        func(e *bestiary.Enemy) { e.ID = "" },
		"empty name":      func(e *bestiary.Enemy) { e.Name = "" },
		"zero max":        func(e *bestiary.Enemy) { e.MaxHealth = 0 },
		"health over max": func(e *bestiary.Enemy) { e.Health = e.MaxHealth + 1 },
		"negative damage": func(e *bestiary.Enemy) { e.Damage = -1 },
		"bad size":        func(e *bestiary.Enemy) { e.Size = "huge" },
		"bad time":        func(e *bestiary.Enemy) { e.SpawnConditions.TimeOfDay = "" },
		"negative weight": func(e *bestiary.Enemy) { e.SpawnWeight = -1 },
		"bad loot": func(e *bestiary.Enemy) {
			e.LootTable = []bestiary.LootEntry{{ItemID: "x", DropChance: 2, Quantity: bestiary.Quantity{Min: 1, Max: 1}}}
		},
	}
	for name, mutate := range mutations {
		e := base.Clone()
		mutate(&e)
		assert.Error(t, e.Validate(), name)
	}
}

func TestEnemy_CloneIsDeep(t *testing.T) {
	e := bestiary.DefaultCatalog().Enemies[0]
	e.CustomStats = map[string]float64{"stealth": 3}
	c := e.Clone()
	c.SpawnConditions.Biomes[0] = "desert"
	c.CustomStats["stealth"] = 9
	assert.Equal(t, "forest", e.SpawnConditions.Biomes[0])
	assert.Equal(t, 3.0, e.CustomStats["stealth"])
}

func TestFindEnemy(t *testing.T) {
	enemies := bestiary.DefaultCatalog().Enemies
	e, ok := bestiary.FindEnemy(enemies, "wolf")
	require.True(t, ok)
	assert.Equal(t, "Shadow Wolf", e.Name)
	_, ok = bestiary.FindEnemy(enemies, "lich")
	assert.False(t, ok)
}

func TestNewInstance(t *testing.T) {
	tmpl := bestiary.DefaultCatalog().Enemies[0]
	now := time.UnixMilli(1_700_000_000_123)
	inst := bestiary.NewInstance(tmpl, now)

	assert.Equal(t, "goblin-1700000000123", inst.ID)
	assert.Equal(t, 25.0, inst.Health)
	assert.Equal(t, "Forest Goblin", inst.Name())
	assert.False(t, inst.IsDead())
	assert.Equal(t, "unharmed", inst.HealthDescription())

	later := bestiary.NewInstance(tmpl, now.Add(time.Second))
	assert.NotEqual(t, inst.ID, later.ID)
}

func TestInstance_HealthDescription(t *testing.T) {
	inst := bestiary.NewInstance(bestiary.DefaultCatalog().Enemies[0], time.Now())
	cases := []struct {
		health float64
		want   string
	}{
		{25, "unharmed"}, {22, "barely scratched"}, {15, "lightly wounded"},
		{10, "moderately wounded"}, {5, "heavily wounded"}, {1, "critically wounded"}, {0, "dead"},
	}
	for _, c := range cases {
		inst.Health = c.health
		assert.Equal(t, c.want, inst.HealthDescription(), "health %v", c.health)
	}
}

func TestLootEntry_Validate(t *testing.T) {
	ok := bestiary.LootEntry{ItemID: "fang", DropChance: 0.5, Quantity: bestiary.Quantity{Min: 1, Max: 3}}
	assert.NoError(t, ok.Validate())

	bad := []bestiary.LootEntry{
		{DropChance: 0.5, Quantity: bestiary.Quantity{Min: 1, Max: 1}},
		{ItemID: "x", DropChance: 0, Quantity: bestiary.Quantity{Min: 1, Max: 1}},
		{ItemID: "x", DropChance: 1.5, Quantity: bestiary.Quantity{Min: 1, Max: 1}},
		{ItemID: "x", DropChance: 0.5, Quantity: bestiary.Quantity{Min: 0, Max: 1}},
		{ItemID: "x", DropChance: 0.5, Quantity: bestiary.Quantity{Min: 3, Max: 1}},
	}
	for i, l := range bad {
		assert.Error(t, l.Validate(), "case %d", i)
	}
}

func TestGenerateLoot_CertainDrop(t *testing.T) {
	entries := []bestiary.LootEntry{{ItemID: "fang", DropChance: 1.0, Quantity: bestiary.Quantity{Min: 2, Max: 2}}}
	drops := bestiary.GenerateLoot(entries, fixedSource{v: 999_999})
	require.Len(t, drops, 1)
	assert.Equal(t, "fang", drops[0].ItemID)
	assert.Equal(t, 2, drops[0].Quantity)
	assert.NotEmpty(t, drops[0].InstanceID)
}

func TestGenerateLoot_MissedRoll(t *testing.T) {
	entries := []bestiary.LootEntry{{ItemID: "fang", DropChance: 0.25, Quantity: bestiary.Quantity{Min: 1, Max: 1}}}
	assert.Empty(t, bestiary.GenerateLoot(entries, fixedSource{v: 500_000}))
}

func TestGenerateLoot_QuantityInRange_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		lo := rapid.IntRange(1, 5).Draw(rt, "min")
		hi := rapid.IntRange(lo, 10).Draw(rt, "max")
		entries := []bestiary.LootEntry{{ItemID: "x", DropChance: 1.0, Quantity: bestiary.Quantity{Min: lo, Max: hi}}}
		src := dice.NewSeededSource(rapid.Uint64().Draw(rt, "seed"))
		drops := bestiary.GenerateLoot(entries, src)
		require.Len(rt, drops, 1)
		assert.GreaterOrEqual(rt, drops[0].Quantity, lo)
		assert.LessOrEqual(rt, drops[0].Quantity, hi)
	})
}

func TestCatalog_LookupsAndValidate(t *testing.T) {
	c := bestiary.DefaultCatalog()
	require.NoError(t, c.Validate())

	b, ok := c.Biome("forest")
	require.True(t, ok)
	assert.Equal(t, 8, b.Rarity)
	_, ok = c.Biome("swamp")
	assert.False(t, ok)

	w, ok := c.WeatherByID("rain")
	require.True(t, ok)
	require.Len(t, w.Effects, 1)
	assert.Equal(t, -0.25, w.Effects[0].Value)

	dup := c
	dup.Biomes = append(dup.Biomes, c.Biomes[0])
	assert.Error(t, dup.Validate())
}

func TestCatalog_WithEnemiesCopies(t *testing.T) {
	c := bestiary.DefaultCatalog()
	list := c.Enemies[:1]
	next := c.WithEnemies(list)
	require.Len(t, next.Enemies, 1)
	next.Enemies[0].Name = "changed"
	assert.Equal(t, "Forest Goblin", c.Enemies[0].Name)
	assert.Len(t, c.Enemies, 3)
}

func TestLoadEnemies_ReportsPath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("id: x\nname: X\n"), 0644))
	_, err := bestiary.LoadEnemies(dir)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "broken.yaml"))

	_, err = bestiary.LoadEnemies(filepath.Join(dir, "nope"))
	assert.Error(t, err)
}

func TestContent_MatchesDefaultCatalog(t *testing.T) {
	c, err := bestiary.LoadCatalog(
		"../../../content/enemies",
		"../../../content/biomes",
		"../../../content/weather",
	)
	require.NoError(t, err)

	def := bestiary.DefaultCatalog()
	assert.ElementsMatch(t, def.Enemies, c.Enemies)
	assert.ElementsMatch(t, def.Biomes, c.Biomes)
	assert.ElementsMatch(t, def.Weather, c.Weather)
}
