// Package item defines equippable items as a closed variant over weapons,
// armor, and accessories sharing a common base record.
package item

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/forsaken/internal/game/stats"
)

// Type is the discriminator of the Item variant.
type Type string

const (
	TypeWeapon    Type = "weapon"
	TypeArmor     Type = "armor"
	TypeAccessory Type = "accessory"
)

// Valid reports whether t names one of the three item kinds.
func (t Type) Valid() bool {
	return t == TypeWeapon || t == TypeArmor || t == TypeAccessory
}

// Base holds the fields shared by every item kind.
type Base struct {
	ID          string             `yaml:"id"`
	Name        string             `yaml:"name"`
	Description string             `yaml:"description"`
	Image       string             `yaml:"image,omitempty"`
	Rarity      Rarity             `yaml:"rarity"`
	Value       float64            `yaml:"value"` // gold value
	Effects     []stats.ItemEffect `yaml:"effects"`
	CustomStats map[string]float64 `yaml:"custom_stats,omitempty"`
}

// Validate checks the shared invariants.
//
// Postcondition: Returns nil iff ID and Name are non-empty, Rarity is known, Value
// is non-negative, and every effect validates.
func (b Base) Validate() error {
	var errs []error
	if b.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if b.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if !b.Rarity.Valid() {
		errs = append(errs, fmt.Errorf("rarity %d is not a known tier", b.Rarity))
	}
	if b.Value < 0 {
		errs = append(errs, errors.New("value must be >= 0"))
	}
	for _, e := range b.Effects {
		if err := e.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Item is implemented only by Weapon, Armor, and Accessory.
type Item interface {
	// Kind returns the variant tag.
	Kind() Type
	// Info returns the shared base record.
	Info() Base
	// Validate checks the base and kind-specific invariants.
	Validate() error
	isItem()
}

// WeaponType is display metadata for weapons.
type WeaponType string

const (
	WeaponSword  WeaponType = "sword"
	WeaponBow    WeaponType = "bow"
	WeaponStaff  WeaponType = "staff"
	WeaponDagger WeaponType = "dagger"
	WeaponHammer WeaponType = "hammer"
	WeaponSpear  WeaponType = "spear"
	WeaponCustom WeaponType = "custom"
)

// Weapon adds intrinsic damage and critical chance.
type Weapon struct {
	Base            `yaml:",inline"`
	WeaponType      WeaponType         `yaml:"weapon_type"`
	Damage          float64            `yaml:"damage"`
	CritChance      float64            `yaml:"crit_chance"`
	AttackSpeed     float64            `yaml:"attack_speed"`
	Range           float64            `yaml:"range"`
	Projectile      bool               `yaml:"projectile"`
	ElementalDamage map[string]float64 `yaml:"elemental_damage,omitempty"`
}

func (Weapon) Kind() Type   { return TypeWeapon }
func (w Weapon) Info() Base { return w.Base }
func (Weapon) isItem()      {}

// Validate checks the weapon's invariants.
func (w Weapon) Validate() error {
	errs := []error{w.Base.Validate()}
	if w.AttackSpeed < 0 {
		errs = append(errs, errors.New("attack_speed must be >= 0"))
	}
	if w.Range < 0 {
		errs = append(errs, errors.New("range must be >= 0"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("weapon %q: %w", w.ID, err)
	}
	return nil
}

// ArmorSlot names one of the three body-armor slots.
type ArmorSlot string

const (
	SlotHelmet     ArmorSlot = "helmet"
	SlotChestplate ArmorSlot = "chestplate"
	SlotLeggings   ArmorSlot = "leggings"
)

// ArmorSlots lists the armor slots in loadout order.
var ArmorSlots = [3]ArmorSlot{SlotHelmet, SlotChestplate, SlotLeggings}

// Valid reports whether s is one of ArmorSlots.
func (s ArmorSlot) Valid() bool {
	return s == SlotHelmet || s == SlotChestplate || s == SlotLeggings
}

// Armor adds an intrinsic armor value.
type Armor struct {
	Base       `yaml:",inline"`
	Slot       ArmorSlot          `yaml:"slot"`
	ArmorValue float64            `yaml:"armor_value"`
	SetName    string             `yaml:"set_name,omitempty"`
	SetBonus   []stats.ItemEffect `yaml:"set_bonus,omitempty"`
}

func (Armor) Kind() Type   { return TypeArmor }
func (a Armor) Info() Base { return a.Base }
func (Armor) isItem()      {}

// Validate checks the armor's invariants.
func (a Armor) Validate() error {
	errs := []error{a.Base.Validate()}
	if !a.Slot.Valid() {
		errs = append(errs, fmt.Errorf("slot %q must be one of helmet, chestplate, leggings", a.Slot))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("armor %q: %w", a.ID, err)
	}
	return nil
}

// AccessorySlots is the number of numbered accessory slots.
const AccessorySlots = 8

// Accessory contributes only through its effects.
type Accessory struct {
	Base `yaml:",inline"`
	// Slot is the preferred accessory slot, 1 through AccessorySlots.
	Slot int `yaml:"slot"`
}

func (Accessory) Kind() Type   { return TypeAccessory }
func (a Accessory) Info() Base { return a.Base }
func (Accessory) isItem()      {}

// Validate checks the accessory's invariants.
func (a Accessory) Validate() error {
	errs := []error{a.Base.Validate()}
	if a.Slot < 1 || a.Slot > AccessorySlots {
		errs = append(errs, fmt.Errorf("slot %d must be in [1, %d]", a.Slot, AccessorySlots))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("accessory %q: %w", a.ID, err)
	}
	return nil
}

// Effects returns the effect list of it, or nil when it is nil.
func Effects(it Item) []stats.ItemEffect {
	if it == nil {
		return nil
	}
	return it.Info().Effects
}
