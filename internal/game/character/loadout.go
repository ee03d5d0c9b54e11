package character

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cory-johannsen/forsaken/internal/game/item"
)

// WeaponSlots is the number of weapon slots.
const WeaponSlots = 3

var (
	// ErrInvalidSlot is returned for a slot reference outside the loadout.
	ErrInvalidSlot = errors.New("invalid equipment slot")
	// ErrSlotMismatch is returned when an item's kind does not match the slot category.
	ErrSlotMismatch = errors.New("item type does not match slot")
)

// ArmorSet holds the three named armor slots.
type ArmorSet struct {
	Helmet     *item.Armor
	Chestplate *item.Armor
	Leggings   *item.Armor
}

func (a *ArmorSet) slot(s item.ArmorSlot) **item.Armor {
	switch s {
	case item.SlotHelmet:
		return &a.Helmet
	case item.SlotChestplate:
		return &a.Chestplate
	case item.SlotLeggings:
		return &a.Leggings
	}
	return nil
}

// Loadout is the character's equipment. A nil slot is empty.
// Equipped items are never modified through these pointers.
type Loadout struct {
	Weapons     [WeaponSlots]*item.Weapon
	Armor       ArmorSet
	Accessories [item.AccessorySlots]*item.Accessory
}

// Items returns every equipped item in aggregation order: weapons, then
// helmet, chestplate and leggings, then accessories. Empty slots are skipped.
func (l Loadout) Items() []item.Item {
	var out []item.Item
	for _, w := range l.Weapons {
		if w != nil {
			out = append(out, *w)
		}
	}
	for _, s := range item.ArmorSlots {
		if a := *l.Armor.slot(s); a != nil {
			out = append(out, *a)
		}
	}
	for _, a := range l.Accessories {
		if a != nil {
			out = append(out, *a)
		}
	}
	return out
}

// IDs returns the equipped item ids joined in slot order, with "-" for empty slots.
func (l Loadout) IDs() string {
	var b strings.Builder
	for _, ref := range AllSlots() {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		if it := l.Equipped(ref); it != nil {
			b.WriteString(it.Info().ID)
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}

// Equipped returns the item in ref, or nil when the slot is empty or ref is invalid.
func (l Loadout) Equipped(ref SlotRef) item.Item {
	if ref.Validate() != nil {
		return nil
	}
	switch ref.Kind {
	case item.TypeWeapon:
		if w := l.Weapons[ref.Index]; w != nil {
			return *w
		}
	case item.TypeArmor:
		if a := *l.Armor.slot(ref.Armor); a != nil {
			return *a
		}
	case item.TypeAccessory:
		if a := l.Accessories[ref.Index]; a != nil {
			return *a
		}
	}
	return nil
}

// SlotRef identifies one loadout slot. Index is zero-based and used by weapon
// and accessory slots; Armor is used by armor slots.
type SlotRef struct {
	Kind  item.Type
	Index int
	Armor item.ArmorSlot
}

// WeaponSlot refers to weapon slot i (0-2).
func WeaponSlot(i int) SlotRef { return SlotRef{Kind: item.TypeWeapon, Index: i} }

// ArmorSlot refers to the named armor slot.
func ArmorSlot(s item.ArmorSlot) SlotRef { return SlotRef{Kind: item.TypeArmor, Armor: s} }

// AccessorySlot refers to accessory slot i (0-7).
func AccessorySlot(i int) SlotRef { return SlotRef{Kind: item.TypeAccessory, Index: i} }

// AllSlots lists every slot in aggregation order.
func AllSlots() []SlotRef {
	out := make([]SlotRef, 0, WeaponSlots+len(item.ArmorSlots)+item.AccessorySlots)
	for i := 0; i < WeaponSlots; i++ {
		out = append(out, WeaponSlot(i))
	}
	for _, s := range item.ArmorSlots {
		out = append(out, ArmorSlot(s))
	}
	for i := 0; i < item.AccessorySlots; i++ {
		out = append(out, AccessorySlot(i))
	}
	return out
}

// Validate reports ErrInvalidSlot when ref lies outside the loadout.
func (r SlotRef) Validate() error {
	switch r.Kind {
	case item.TypeWeapon:
		if r.Index >= 0 && r.Index < WeaponSlots {
			return nil
		}
	case item.TypeArmor:
		if r.Armor.Valid() {
			return nil
		}
	case item.TypeAccessory:
		if r.Index >= 0 && r.Index < item.AccessorySlots {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidSlot, r)
}

// String renders ref in the form accepted by ParseSlot: weapon1..weapon3,
// helmet, chestplate, leggings, accessory1..accessory8.
func (r SlotRef) String() string {
	switch r.Kind {
	case item.TypeArmor:
		return string(r.Armor)
	case item.TypeWeapon, item.TypeAccessory:
		return string(r.Kind) + strconv.Itoa(r.Index+1)
	}
	return fmt.Sprintf("%s[%d]", r.Kind, r.Index)
}

// ParseSlot parses the slot names produced by SlotRef.String.
func ParseSlot(s string) (SlotRef, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if as := item.ArmorSlot(s); as.Valid() {
		return ArmorSlot(as), nil
	}
	for _, kind := range []item.Type{item.TypeWeapon, item.TypeAccessory} {
		rest, ok := strings.CutPrefix(s, string(kind))
		if !ok {
			continue
		}
		n, err := strconv.Atoi(rest)
		if err != nil {
			break
		}
		ref := SlotRef{Kind: kind, Index: n - 1}
		if err := ref.Validate(); err != nil {
			return SlotRef{}, err
		}
		return ref, nil
	}
	return SlotRef{}, fmt.Errorf("%w: %q", ErrInvalidSlot, s)
}

// Equip returns a copy of c with it placed in ref, discarding any previous occupant.
// Each slot holds its own copy of the catalog item, so one item id may occupy
// several slots at once and its effects count once per slot.
//
// Postcondition: on error the returned Character equals c; the error wraps
// ErrInvalidSlot or ErrSlotMismatch.
func Equip(c Character, it item.Item, ref SlotRef) (Character, error) {
	if err := ref.Validate(); err != nil {
		return c, err
	}
	if it == nil || it.Kind() != ref.Kind {
		return c, fmt.Errorf("%w: cannot place %s in %s", ErrSlotMismatch, kindOf(it), ref)
	}

	out := c.Clone()
	switch v := it.(type) {
	case item.Weapon:
		out.Equipment.Weapons[ref.Index] = &v
	case item.Armor:
		*out.Equipment.Armor.slot(ref.Armor) = &v
	case item.Accessory:
		out.Equipment.Accessories[ref.Index] = &v
	}
	return out, nil
}

// Unequip returns a copy of c with ref cleared. Clearing an empty slot is allowed.
//
// Postcondition: on error the returned Character equals c.
func Unequip(c Character, ref SlotRef) (Character, error) {
	if err := ref.Validate(); err != nil {
		return c, err
	}
	out := c.Clone()
	switch ref.Kind {
	case item.TypeWeapon:
		out.Equipment.Weapons[ref.Index] = nil
	case item.TypeArmor:
		*out.Equipment.Armor.slot(ref.Armor) = nil
	case item.TypeAccessory:
		out.Equipment.Accessories[ref.Index] = nil
	}
	return out, nil
}

func kindOf(it item.Item) string {
	if it == nil {
		return "nothing"
	}
	return string(it.Kind())
}
