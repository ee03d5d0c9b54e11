// Package authoring implements the create, update, and delete operations the
// world and item editors apply to enemy and item collections.
package authoring

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/cory-johannsen/forsaken/internal/game/bestiary"
)

// ConflictError reports that a new enemy's derived id is already taken.
type ConflictError struct {
	ID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("an enemy with id %q already exists", e.ID)
}

// ErrNameRequired is returned for an enemy whose name is blank.
var ErrNameRequired = errors.New("enemy name is required")

var whitespace = regexp.MustCompile(`\s+`)

// DeriveEnemyID lower-cases name and replaces each whitespace run with a hyphen.
func DeriveEnemyID(name string) string {
	return whitespace.ReplaceAllString(strings.ToLower(name), "-")
}

// CreateOrUpdateEnemy returns a copy of list with candidate applied.
//
// A candidate whose ID matches an entry replaces it in place. A candidate with
// an unknown ID is appended. A candidate without an ID is given
// DeriveEnemyID(Name) and is rejected with *ConflictError when that id is taken.
// Only a blank name is rejected otherwise; stat ranges are left to the editor
// and to bestiary.Enemy.Validate at load time.
//
// Postcondition: on error list is returned unchanged.
func CreateOrUpdateEnemy(list []bestiary.Enemy, candidate bestiary.Enemy) ([]bestiary.Enemy, error) {
	if strings.TrimSpace(candidate.Name) == "" {
		return list, ErrNameRequired
	}
	if candidate.ID == "" {
		candidate.ID = DeriveEnemyID(candidate.Name)
		if indexOf(list, candidate.ID) >= 0 {
			return list, &ConflictError{ID: candidate.ID}
		}
	}

	out := slices.Clone(list)
	if i := indexOf(out, candidate.ID); i >= 0 {
		out[i] = candidate.Clone()
		return out, nil
	}
	return append(out, candidate.Clone()), nil
}

// DeleteEnemy returns a copy of list without the entry id. An absent id is a no-op.
func DeleteEnemy(list []bestiary.Enemy, id string) []bestiary.Enemy {
	return slices.DeleteFunc(slices.Clone(list), func(e bestiary.Enemy) bool { return e.ID == id })
}

// NewEnemyDraft returns the defaults the enemy editor starts from.
func NewEnemyDraft() bestiary.Enemy {
	return bestiary.Enemy{
		Health:    100,
		MaxHealth: 100,
		Damage:    10,
		Armor:     0,
		Size:      bestiary.SizeMedium,
		SpawnConditions: bestiary.SpawnConditions{
			TimeOfDay: bestiary.Any,
			Weather:   []string{},
			Biomes:    []string{},
		},
		LootTable:   []bestiary.LootEntry{},
		Behavior:    "aggressive",
		SpawnWeight: 5,
	}
}

func indexOf(list []bestiary.Enemy, id string) int {
	return slices.IndexFunc(list, func(e bestiary.Enemy) bool { return e.ID == id })
}
