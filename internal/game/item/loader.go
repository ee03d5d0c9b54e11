package item

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Each record pairs the discriminator with the concrete payload so that strict
// decoding still accepts the "type" key.
type weaponRecord struct {
	Type   Type `yaml:"type"`
	Weapon `yaml:",inline"`
}

type armorRecord struct {
	Type  Type `yaml:"type"`
	Armor `yaml:",inline"`
}

type accessoryRecord struct {
	Type      Type `yaml:"type"`
	Accessory `yaml:",inline"`
}

// Decode parses one item definition, dispatching on its "type" key.
// Unknown keys are rejected.
//
// Postcondition: Returns a validated Item or an error.
func Decode(data []byte) (Item, error) {
	var head struct {
		Type Type `yaml:"type"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("parsing item YAML: %w", err)
	}

	var it Item
	switch head.Type {
	case TypeWeapon:
		var rec weaponRecord
		if err := strictDecode(data, &rec); err != nil {
			return nil, err
		}
		it = rec.Weapon
	case TypeArmor:
		var rec armorRecord
		if err := strictDecode(data, &rec); err != nil {
			return nil, err
		}
		it = rec.Armor
	case TypeAccessory:
		var rec accessoryRecord
		if err := strictDecode(data, &rec); err != nil {
			return nil, err
		}
		it = rec.Accessory
	default:
		return nil, fmt.Errorf("item type %q must be one of weapon, armor, accessory", head.Type)
	}

	if err := it.Validate(); err != nil {
		return nil, err
	}
	return it, nil
}

func strictDecode(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("parsing item YAML: %w", err)
	}
	return nil
}

// Encode renders it as YAML including its "type" key.
func Encode(it Item) ([]byte, error) {
	var rec any
	switch v := it.(type) {
	case Weapon:
		rec = weaponRecord{Type: TypeWeapon, Weapon: v}
	case Armor:
		rec = armorRecord{Type: TypeArmor, Armor: v}
	case Accessory:
		rec = accessoryRecord{Type: TypeAccessory, Accessory: v}
	default:
		return nil, fmt.Errorf("item: cannot encode %T", it)
	}
	return yaml.Marshal(rec)
}

// LoadItems reads all *.yaml and *.yml files from dir and decodes each as an Item.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid items sorted by ID, or the first encountered error.
func LoadItems(dir string) ([]Item, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadItems: cannot read directory %q: %w", dir, err)
	}

	var items []Item
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadItems: cannot read file %q: %w", path, err)
		}
		it, err := Decode(data)
		if err != nil {
			return nil, fmt.Errorf("LoadItems: invalid item in %q: %w", path, err)
		}
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Info().ID < items[j].Info().ID })
	return items, nil
}
