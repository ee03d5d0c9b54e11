package command

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/forsaken/internal/game/encounter"
	"github.com/cory-johannsen/forsaken/internal/game/stats"
)

// HandleTeleport processes the "teleport" command.
//
// Precondition: sess must not be nil.
func HandleTeleport(sess *encounter.Session) string {
	snap, msgs, err := sess.Teleport()
	if err != nil {
		return err.Error()
	}
	if !snap.State.HasBiome() {
		return "There is nowhere to go."
	}
	b := snap.State.CurrentBiome
	return joinLines(fmt.Sprintf("You arrive in %s. %s", b.Name, b.Description), msgs)
}

// HandleLeave processes the "leave" command.
func HandleLeave(sess *encounter.Session) string {
	if !sess.Snapshot().State.HasBiome() {
		return "You are not in a biome."
	}
	if _, err := sess.LeaveBiome(); err != nil {
		return err.Error()
	}
	return "You leave the biome behind."
}

// HandleTime processes the "time" command.
func HandleTime(sess *encounter.Session) string {
	snap, msgs, err := sess.ToggleTime()
	if err != nil {
		return err.Error()
	}
	return joinLines(fmt.Sprintf("It is now %s.", snap.State.TimeOfDay), msgs)
}

// HandleWeather processes the "weather" command.
func HandleWeather(sess *encounter.Session) string {
	snap, err := sess.ChangeWeather()
	if err != nil {
		return err.Error()
	}
	w := snap.State.CurrentWeather
	if w == nil {
		return "The sky does not change."
	}
	return fmt.Sprintf("The weather turns: %s. %s", w.Name, w.Description)
}

// HandleAttack processes the "attack" command.
//
// Precondition: sess must not be nil.
// Postcondition: Returns a line describing the outcome; rejected attacks leave state unchanged.
func HandleAttack(sess *encounter.Session, args []string) string {
	if len(args) < 1 {
		return "Usage: attack <enemy_id>"
	}
	res, err := sess.Attack(args[0])
	if err != nil {
		return err.Error()
	}
	var head string
	switch res.Outcome {
	case encounter.OutcomeNoTarget:
		return fmt.Sprintf("There is no enemy %q here.", args[0])
	case encounter.OutcomeCooldown:
		return "You are still recovering from your last action."
	case encounter.OutcomeHit:
		head = fmt.Sprintf("You hit %s for %s damage (%s health left).",
			res.EnemyName, stats.FormatNumber(res.Damage), stats.FormatNumber(res.Remaining))
	case encounter.OutcomeDefeated:
		head = fmt.Sprintf("You defeated %s and earned %d gold.", res.EnemyName, res.Gold)
		for _, d := range res.Loot {
			res.Messages = append(res.Messages, fmt.Sprintf("Loot: %dx %s", d.Quantity, d.ItemID))
		}
	}
	return joinLines(head, res.Messages)
}

func joinLines(head string, rest []string) string {
	if len(rest) == 0 {
		return head
	}
	return head + "\n" + strings.Join(rest, "\n")
}
