package item

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Rarity is an ordered tier shown next to an item's name.
type Rarity int

const (
	Common Rarity = iota
	Uncommon
	Rare
	Epic
	Legendary
	Mythic
)

var rarityNames = [...]string{"common", "uncommon", "rare", "epic", "legendary", "mythic"}

// Valid reports whether r is one of the six tiers.
func (r Rarity) Valid() bool {
	return r >= Common && r <= Mythic
}

// String returns the lower-case tier name.
func (r Rarity) String() string {
	if !r.Valid() {
		return fmt.Sprintf("rarity(%d)", int(r))
	}
	return rarityNames[r]
}

// ParseRarity maps a tier name to its Rarity.
func ParseRarity(s string) (Rarity, error) {
	for i, name := range rarityNames {
		if name == s {
			return Rarity(i), nil
		}
	}
	return Common, fmt.Errorf("unknown rarity %q", s)
}

// MarshalYAML encodes r as its tier name.
func (r Rarity) MarshalYAML() (any, error) {
	return r.String(), nil
}

// UnmarshalYAML decodes a tier name; an empty value decodes as Common.
func (r *Rarity) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	if s == "" {
		*r = Common
		return nil
	}
	parsed, err := ParseRarity(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
