package authoring

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/cory-johannsen/forsaken/internal/game/item"
	"github.com/cory-johannsen/forsaken/internal/game/stats"
)

// ErrIncompleteItem is returned when a draft lacks a name or description.
var ErrIncompleteItem = errors.New("name and description are required")

// ItemDraft is what the item editor collects before a kind is chosen.
type ItemDraft struct {
	Name        string
	Description string
	Rarity      item.Rarity
	Value       float64
	Effects     []stats.ItemEffect
}

// NewItem builds an item of kind from draft with kind-specific defaults.
// The id is "<kind>-<unix millis of now>".
//
// Postcondition: returns ErrIncompleteItem when Name or Description is empty,
// and an error for an unknown kind.
func NewItem(kind item.Type, draft ItemDraft, now time.Time) (item.Item, error) {
	if draft.Name == "" || draft.Description == "" {
		return nil, ErrIncompleteItem
	}
	base := item.Base{
		ID:          fmt.Sprintf("%s-%d", kind, now.UnixMilli()),
		Name:        draft.Name,
		Description: draft.Description,
		Rarity:      draft.Rarity,
		Value:       draft.Value,
		Effects:     slices.Clone(draft.Effects),
	}
	if !base.Rarity.Valid() {
		base.Rarity = item.Common
	}

	var it item.Item
	switch kind {
	case item.TypeWeapon:
		it = item.Weapon{
			Base:        base,
			WeaponType:  item.WeaponSword,
			Damage:      10,
			CritChance:  0.05,
			AttackSpeed: 1,
			Range:       100,
		}
	case item.TypeArmor:
		it = item.Armor{Base: base, Slot: item.SlotHelmet, ArmorValue: 5}
	case item.TypeAccessory:
		it = item.Accessory{Base: base, Slot: 1}
	default:
		return nil, fmt.Errorf("unknown item kind %q", kind)
	}
	if err := it.Validate(); err != nil {
		return nil, err
	}
	return it, nil
}

// EffectDraft is what the effect editor collects.
type EffectDraft struct {
	Name        string
	Description string
	Kind        stats.EffectKind
	Trigger     stats.Trigger
	Value       float64
	Duration    float64
	Cooldown    float64
	Conditions  []string
}

// NewEffect builds an effect with a fresh id. An empty Kind defaults to stat.
//
// Postcondition: returns ErrIncompleteItem when Name or Description is empty.
func NewEffect(d EffectDraft) (stats.ItemEffect, error) {
	if d.Name == "" || d.Description == "" {
		return stats.ItemEffect{}, ErrIncompleteItem
	}
	if d.Kind == "" {
		d.Kind = stats.KindStat
	}
	e := stats.ItemEffect{
		ID:          "effect-" + uuid.NewString(),
		Name:        d.Name,
		Description: d.Description,
		Kind:        d.Kind,
		Trigger:     d.Trigger,
		Value:       d.Value,
		Duration:    d.Duration,
		Cooldown:    d.Cooldown,
		Conditions:  slices.Clone(d.Conditions),
	}
	if err := e.Validate(); err != nil {
		return stats.ItemEffect{}, err
	}
	return e, nil
}

// WithEffect returns a copy of it with e appended to its effects.
func WithEffect(it item.Item, e stats.ItemEffect) item.Item {
	switch v := it.(type) {
	case item.Weapon:
		v.Effects = append(slices.Clone(v.Effects), e)
		return v
	case item.Armor:
		v.Effects = append(slices.Clone(v.Effects), e)
		return v
	case item.Accessory:
		v.Effects = append(slices.Clone(v.Effects), e)
		return v
	}
	return it
}

// CreateOrUpdateItem returns a copy of list with it replacing the entry of the
// same id in place, or appended when the id is new.
func CreateOrUpdateItem(list []item.Item, it item.Item) []item.Item {
	out := slices.Clone(list)
	id := it.Info().ID
	if i := slices.IndexFunc(out, func(x item.Item) bool { return x.Info().ID == id }); i >= 0 {
		out[i] = it
		return out
	}
	return append(out, it)
}

// DeleteItem returns a copy of list without the entry id. An absent id is a no-op.
func DeleteItem(list []item.Item, id string) []item.Item {
	return slices.DeleteFunc(slices.Clone(list), func(x item.Item) bool { return x.Info().ID == id })
}
