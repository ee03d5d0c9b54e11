package command

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/forsaken/internal/game/character"
	"github.com/cory-johannsen/forsaken/internal/game/encounter"
	"github.com/cory-johannsen/forsaken/internal/game/item"
)

// HandleEquip processes the "equip" command.
// args are expected to be "<item_id> <slot>", slot as accepted by character.ParseSlot.
//
// Precondition: sess and reg must not be nil.
// Postcondition: On success the item occupies the slot and a confirmation is
// returned. On failure the loadout is unchanged.
func HandleEquip(sess *encounter.Session, reg *item.Registry, args []string) string {
	if len(args) < 2 {
		return "Usage: equip <item_id> <slot>"
	}
	it, ok := reg.Get(args[0])
	if !ok {
		return fmt.Sprintf("%s: no such item", args[0])
	}
	ref, err := character.ParseSlot(args[1])
	if err != nil {
		return fmt.Sprintf("%s is not a slot (weapon1-3, helmet, chestplate, leggings, accessory1-8)", args[1])
	}

	if _, err := sess.Equip(it, ref); err != nil {
		if errors.Is(err, character.ErrSlotMismatch) {
			return fmt.Sprintf("%s cannot go in %s.", it.Info().Name, ref)
		}
		return err.Error()
	}
	return fmt.Sprintf("Equipped %s in %s.", it.Info().Name, ref)
}

// HandleUnequip processes the "unequip" command.
//
// Precondition: sess must not be nil.
// Postcondition: On success the slot is empty.
func HandleUnequip(sess *encounter.Session, args []string) string {
	if len(args) < 1 {
		return "Usage: unequip <slot>"
	}
	ref, err := character.ParseSlot(args[0])
	if err != nil {
		return fmt.Sprintf("%s is not a slot (weapon1-3, helmet, chestplate, leggings, accessory1-8)", args[0])
	}
	prev := sess.Snapshot().Character.Equipment.Equipped(ref)
	if prev == nil {
		return fmt.Sprintf("Nothing is equipped in %s.", ref)
	}
	if _, err := sess.Unequip(ref); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("Removed %s from %s.", prev.Info().Name, ref)
}
