package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cory-johannsen/forsaken/internal/game/authoring"
	"github.com/cory-johannsen/forsaken/internal/game/encounter"
	"github.com/cory-johannsen/forsaken/internal/game/item"
	"github.com/cory-johannsen/forsaken/internal/game/stats"
)

const (
	forgeUsage    = "Usage: forge <weapon|armor|accessory> <name>: <description>"
	enchantUsage  = "Usage: enchant <item_id> <stat> <value>: <description>"
	bestiaryUsage = "Usage: bestiary [add <name>[: <biome>, ...] | delete <enemy_id>]"
)

// HandleForge processes the "forge" command. raw is the text after the
// command word: "<kind> <name>: <description>".
//
// Precondition: reg must not be nil.
// Postcondition: On success the new item is in reg under "<kind>-<unix millis of now>".
func HandleForge(reg *item.Registry, raw string, now time.Time) string {
	kindWord, rest, _ := strings.Cut(strings.TrimSpace(raw), " ")
	kind := item.Type(strings.ToLower(kindWord))
	if !kind.Valid() {
		return forgeUsage
	}
	name, desc, _ := strings.Cut(rest, ":")
	draft := authoring.ItemDraft{Name: strings.TrimSpace(name), Description: strings.TrimSpace(desc)}

	it, err := authoring.NewItem(kind, draft, now)
	if err != nil {
		if errors.Is(err, authoring.ErrIncompleteItem) {
			return "An item needs a name and a description. " + forgeUsage
		}
		return err.Error()
	}
	if err := reg.Replace(authoring.CreateOrUpdateItem(reg.All(), it)); err != nil {
		return err.Error()
	}
	info := it.Info()
	return fmt.Sprintf("Forged %s (%s).", info.Name, info.ID)
}

// HandleEnchant processes the "enchant" command, adding a stat effect to a
// catalog item. Copies already equipped keep their old effects.
//
// Precondition: reg must not be nil.
func HandleEnchant(reg *item.Registry, raw string) string {
	head, desc, _ := strings.Cut(raw, ":")
	fields := strings.Fields(head)
	if len(fields) != 3 {
		return enchantUsage
	}
	it, ok := reg.Get(fields[0])
	if !ok {
		return fmt.Sprintf("%s: no such item", fields[0])
	}
	if !stats.IsStatName(fields[1]) {
		return fmt.Sprintf("%s is not a stat.", fields[1])
	}
	value, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return fmt.Sprintf("%s is not a number.", fields[2])
	}

	effect, err := authoring.NewEffect(authoring.EffectDraft{
		Name:        fields[1],
		Description: strings.TrimSpace(desc),
		Value:       value,
	})
	if err != nil {
		if errors.Is(err, authoring.ErrIncompleteItem) {
			return "An effect needs a description. " + enchantUsage
		}
		return err.Error()
	}
	if err := reg.Replace(authoring.CreateOrUpdateItem(reg.All(), authoring.WithEffect(it, effect))); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("%s gains %s %+g.", it.Info().Name, effect.Name, effect.Value)
}

// HandleScrap processes the "scrap" command. Equipped copies are kept.
//
// Precondition: reg must not be nil.
func HandleScrap(reg *item.Registry, args []string) string {
	if len(args) < 1 {
		return "Usage: scrap <item_id>"
	}
	it, ok := reg.Get(args[0])
	if !ok {
		return fmt.Sprintf("%s: no such item", args[0])
	}
	if err := reg.Replace(authoring.DeleteItem(reg.All(), args[0])); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("Scrapped %s.", it.Info().Name)
}

// HandleBestiary processes the "bestiary" command: with no arguments it lists
// the enemy templates, "add" creates one from the editor defaults and
// "delete" removes one. Changes apply to later spawns only.
//
// Precondition: sess must not be nil.
func HandleBestiary(sess *encounter.Session, args []string, raw string) string {
	if len(args) == 0 {
		return RenderBestiary(sess.Enemies())
	}
	rest := strings.TrimSpace(strings.TrimPrefix(raw, args[0]))
	switch strings.ToLower(args[0]) {
	case "list":
		return RenderBestiary(sess.Enemies())
	case "add":
		return addEnemy(sess, rest)
	case "delete", "remove":
		return deleteEnemy(sess, args[1:])
	}
	return bestiaryUsage
}

func addEnemy(sess *encounter.Session, rest string) string {
	name, biomeList, _ := strings.Cut(rest, ":")
	name = strings.TrimSpace(name)
	var biomes []string
	for _, b := range strings.Split(biomeList, ",") {
		if b = strings.TrimSpace(b); b != "" {
			biomes = append(biomes, strings.ToLower(b))
		}
	}
	if len(biomes) == 0 {
		if state := sess.Snapshot().State; state.HasBiome() {
			biomes = []string{state.CurrentBiome.ID}
		} else if name != "" {
			return "Name a biome for it to roam: bestiary add <name>: <biome>[, <biome>]"
		}
	}

	draft := authoring.NewEnemyDraft()
	draft.Name = name
	draft.SpawnConditions.Biomes = biomes
	enemies, err := authoring.CreateOrUpdateEnemy(sess.Enemies(), draft)
	if err != nil {
		var conflict *authoring.ConflictError
		switch {
		case errors.As(err, &conflict):
			return fmt.Sprintf("Cannot add %s: %v.", name, err)
		case errors.Is(err, authoring.ErrNameRequired):
			return bestiaryUsage
		}
		return err.Error()
	}
	sess.ReplaceEnemies(enemies)
	return fmt.Sprintf("Added %s (%s); it roams %s.", name, authoring.DeriveEnemyID(name), strings.Join(biomes, ", "))
}

func deleteEnemy(sess *encounter.Session, args []string) string {
	if len(args) < 1 {
		return bestiaryUsage
	}
	enemies := sess.Enemies()
	for _, e := range enemies {
		if e.ID == args[0] {
			sess.ReplaceEnemies(authoring.DeleteEnemy(enemies, e.ID))
			return fmt.Sprintf("Removed %s from the bestiary.", e.Name)
		}
	}
	return fmt.Sprintf("The bestiary has no %q.", args[0])
}
