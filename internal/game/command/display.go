package command

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cory-johannsen/forsaken/internal/game/bestiary"
	"github.com/cory-johannsen/forsaken/internal/game/character"
	"github.com/cory-johannsen/forsaken/internal/game/encounter"
	"github.com/cory-johannsen/forsaken/internal/game/item"
	"github.com/cory-johannsen/forsaken/internal/game/stats"
)

// RenderStatus renders the biome, weather, time of day and gold of snap.
func RenderStatus(snap encounter.Snapshot) string {
	biome, weather := "none", "none"
	if b := snap.State.CurrentBiome; b != nil {
		biome = b.Name
	}
	if w := snap.State.CurrentWeather; w != nil {
		weather = w.Name
	}
	return fmt.Sprintf("%s (level %d) | Biome: %s | Weather: %s | Time: %s | Enemies: %d/%d | Gold: %s",
		snap.Character.Name, snap.Character.Level, biome, weather, snap.State.TimeOfDay,
		len(snap.State.ActiveEnemies), snap.State.MaxActiveEnemies,
		stats.FormatNumber(snap.Stats.Gold))
}

// RenderStats renders the computed stats of snap, resistances sorted by damage type.
func RenderStats(snap encounter.Snapshot) string {
	s := snap.Stats
	rows := [][2]string{
		{"Health", stats.FormatNumber(s.Health) + "/" + stats.FormatNumber(s.MaxHealth)},
		{"Armor", stats.FormatNumber(s.Armor)},
		{"Damage", stats.FormatNumber(s.Damage)},
		{"Critical chance", stats.FormatNumber(s.CriticalChance)},
		{"Critical damage", stats.FormatNumber(s.CriticalDamage)},
		{"Movement speed", stats.FormatNumber(s.MovementSpeed)},
		{"Jump height", stats.FormatNumber(s.JumpHeight)},
		{"Lifesteal", stats.FormatNumber(s.Lifesteal)},
		{"Gold", stats.FormatNumber(s.Gold)},
	}
	var b strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&b, "%-16s %s\n", r[0], r[1])
	}
	keys := make([]string, 0, len(s.ElementalResistance))
	for k := range s.ElementalResistance {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "%-16s %s\n", k+" resist", stats.FormatNumber(s.ElementalResistance[k]))
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderEffects lists the active effects of snap in aggregation order.
func RenderEffects(snap encounter.Snapshot) string {
	if len(snap.Effects) == 0 {
		return "No active effects."
	}
	lines := make([]string, 0, len(snap.Effects))
	for _, e := range snap.Effects {
		line := fmt.Sprintf("%s [%s] %s", e.Name, e.Kind, stats.FormatNumber(e.Value))
		if e.Trigger != "" {
			line += " on " + string(e.Trigger)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// RenderEnemies lists the active enemies of snap with their health state.
func RenderEnemies(snap encounter.Snapshot) string {
	if len(snap.State.ActiveEnemies) == 0 {
		return "No enemies in sight."
	}
	lines := make([]string, 0, len(snap.State.ActiveEnemies))
	for _, e := range snap.State.ActiveEnemies {
		lines = append(lines, fmt.Sprintf("%s  %s (%s, %s/%s)", e.ID, e.Name(), e.HealthDescription(),
			stats.FormatNumber(e.Health), stats.FormatNumber(e.Template.MaxHealth)))
	}
	return strings.Join(lines, "\n")
}

// RenderBestiary lists enemy templates in bestiary order with where and when they spawn.
func RenderBestiary(enemies []bestiary.Enemy) string {
	if len(enemies) == 0 {
		return "The bestiary is empty."
	}
	lines := make([]string, 0, len(enemies))
	for _, e := range enemies {
		roams := strings.Join(e.SpawnConditions.Biomes, ", ")
		if roams == "" {
			roams = "nowhere"
		}
		lines = append(lines, fmt.Sprintf("%s  %s (%s, %s)", e.ID, e.Name, roams, e.SpawnConditions.TimeOfDay))
	}
	return strings.Join(lines, "\n")
}

// RenderItems lists every item in reg and marks the slots it currently occupies.
func RenderItems(reg *item.Registry, snap encounter.Snapshot) string {
	all := reg.All()
	if len(all) == 0 {
		return "No items known."
	}
	worn := map[string][]string{}
	for _, ref := range character.AllSlots() {
		if it := snap.Character.Equipment.Equipped(ref); it != nil {
			id := it.Info().ID
			worn[id] = append(worn[id], ref.String())
		}
	}
	lines := make([]string, 0, len(all))
	for _, it := range all {
		info := it.Info()
		line := fmt.Sprintf("%s  %s [%s %s]", info.ID, info.Name, info.Rarity, it.Kind())
		if slots := worn[info.ID]; len(slots) > 0 {
			line += " equipped: " + strings.Join(slots, ", ")
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
