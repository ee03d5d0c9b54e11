package command_test

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/forsaken/internal/game/bestiary"
	"github.com/cory-johannsen/forsaken/internal/game/character"
	"github.com/cory-johannsen/forsaken/internal/game/command"
	"github.com/cory-johannsen/forsaken/internal/game/dice"
	"github.com/cory-johannsen/forsaken/internal/game/encounter"
	"github.com/cory-johannsen/forsaken/internal/game/item"
)

// zeroSource always picks the first option and rolls 1 on every die.
type zeroSource struct{}

func (zeroSource) Intn(int) int { return 0 }

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func ironSword() item.Weapon {
	return item.Weapon{
		Base:       item.Base{ID: "iron-sword", Name: "Iron Sword", Rarity: item.Uncommon},
		WeaponType: item.WeaponSword,
		Damage:     12,
	}
}

type fixture struct {
	shell   *command.Shell
	session *encounter.Session
	items   *item.Registry
	clock   *fakeClock
}

func newFixture(t *testing.T, rules encounter.Rules) fixture {
	t.Helper()
	logger := zap.NewNop()
	clock := &fakeClock{now: time.UnixMilli(1_700_000_000_000)}
	sim := encounter.NewSimulator(bestiary.DefaultCatalog(), rules, dice.NewLoggedRoller(zeroSource{}, logger), logger,
		encounter.WithClock(clock.Now))
	sess := encounter.NewSession(sim, character.NewDefault(), logger)
	t.Cleanup(sess.Close)

	items, err := item.NewRegistry(ironSword(),
		item.Armor{Base: item.Base{ID: "warden-helm", Name: "Warden Helm"}, Slot: item.SlotHelmet, ArmorValue: 4})
	require.NoError(t, err)
	return fixture{
		shell:   command.NewShell(command.DefaultRegistry(), sess, items, logger, command.WithShellClock(clock.Now)),
		session: sess,
		items:   items,
		clock:   clock,
	}
}

// idleRules never reaches the spawn threshold during a test.
func idleRules() encounter.Rules {
	r := encounter.DefaultRules()
	r.SpawnInterval = time.Hour
	r.SpawnThreshold = 24 * time.Hour
	return r
}

func TestShell_EmptyAndUnknown(t *testing.T) {
	f := newFixture(t, idleRules())
	out, quit := f.shell.Execute("   ")
	assert.Empty(t, out)
	assert.False(t, quit)

	out, quit = f.shell.Execute("dance")
	assert.Contains(t, out, `Unknown command "dance"`)
	assert.False(t, quit)
}

func TestShell_QuitAndHelp(t *testing.T) {
	f := newFixture(t, idleRules())
	out, quit := f.shell.Execute("help")
	assert.False(t, quit)
	assert.Contains(t, out, "teleport")

	_, quit = f.shell.Execute("exit")
	assert.True(t, quit)
}

func TestShell_TeleportStatusLeave(t *testing.T) {
	f := newFixture(t, idleRules())

	out, _ := f.shell.Execute("leave")
	assert.Equal(t, "You are not in a biome.", out)

	out, _ = f.shell.Execute("tp")
	assert.Contains(t, out, "You arrive in Mystic Forest")

	out, _ = f.shell.Execute("status")
	assert.Contains(t, out, "Biome: Mystic Forest")
	assert.Contains(t, out, "Time: day")
	assert.Contains(t, out, "Enemies: 0/3")

	out, _ = f.shell.Execute("enemies")
	assert.Equal(t, "No enemies in sight.", out)

	out, _ = f.shell.Execute("leave")
	assert.Equal(t, "You leave the biome behind.", out)
	assert.False(t, f.session.Snapshot().State.HasBiome())
}

func TestShell_TimeAndWeather(t *testing.T) {
	f := newFixture(t, idleRules())
	out, _ := f.shell.Execute("time")
	assert.Equal(t, "It is now night.", out)
	out, _ = f.shell.Execute("time")
	assert.Equal(t, "It is now day.", out)

	out, _ = f.shell.Execute("weather")
	assert.Contains(t, out, "The weather turns: Clear Skies.")
	out, _ = f.shell.Execute("status")
	assert.Contains(t, out, "Weather: Clear Skies")
}

func TestShell_EquipFlow(t *testing.T) {
	f := newFixture(t, idleRules())

	out, _ := f.shell.Execute("equip")
	assert.Equal(t, "Usage: equip <item_id> <slot>", out)
	out, _ = f.shell.Execute("equip axe weapon1")
	assert.Equal(t, "axe: no such item", out)
	out, _ = f.shell.Execute("equip iron-sword boots")
	assert.Contains(t, out, "boots is not a slot")
	out, _ = f.shell.Execute("equip iron-sword helmet")
	assert.Equal(t, "Iron Sword cannot go in helmet.", out)

	out, _ = f.shell.Execute("equip iron-sword weapon2")
	assert.Equal(t, "Equipped Iron Sword in weapon2.", out)
	out, _ = f.shell.Execute("eq warden-helm helmet")
	assert.Equal(t, "Equipped Warden Helm in helmet.", out)

	assert.Equal(t, 22.0, f.session.Snapshot().Stats.Damage)
	out, _ = f.shell.Execute("stats")
	assert.Contains(t, out, "Damage")
	assert.Contains(t, out, "22")
	assert.Contains(t, out, "fire resist")

	out, _ = f.shell.Execute("items")
	assert.Contains(t, out, "iron-sword  Iron Sword [uncommon weapon] equipped: weapon2")
	assert.Contains(t, out, "equipped: helmet")

	out, _ = f.shell.Execute("unequip weapon2")
	assert.Equal(t, "Removed Iron Sword from weapon2.", out)
	out, _ = f.shell.Execute("unequip weapon2")
	assert.Equal(t, "Nothing is equipped in weapon2.", out)
	assert.Equal(t, 10.0, f.session.Snapshot().Stats.Damage)

	out, _ = f.shell.Execute("effects")
	assert.Equal(t, "No active effects.", out)
}

func TestShell_SameItemInTwoSlots(t *testing.T) {
	f := newFixture(t, idleRules())
	f.shell.Execute("equip iron-sword weapon1")
	out, _ := f.shell.Execute("equip iron-sword weapon3")
	assert.Equal(t, "Equipped Iron Sword in weapon3.", out)
	assert.Equal(t, 34.0, f.session.Snapshot().Stats.Damage)

	out, _ = f.shell.Execute("items")
	assert.Contains(t, out, "iron-sword  Iron Sword [uncommon weapon] equipped: weapon1, weapon3")
}

func TestShell_AttackUntilDefeated(t *testing.T) {
	rules := encounter.DefaultRules()
	rules.SpawnInterval = 2 * time.Millisecond
	rules.SpawnThreshold = 2 * time.Millisecond
	rules.SpawnCooldown = 0
	rules.MaxActiveEnemies = 1
	f := newFixture(t, rules)

	out, _ := f.shell.Execute("attack")
	assert.Equal(t, "Usage: attack <enemy_id>", out)
	out, _ = f.shell.Execute("attack ghost")
	assert.Equal(t, `There is no enemy "ghost" here.`, out)

	f.shell.Execute("teleport")
	require.Eventually(t, func() bool {
		return len(f.session.Snapshot().State.ActiveEnemies) == 1
	}, 2*time.Second, 2*time.Millisecond)
	id := f.session.Snapshot().State.ActiveEnemies[0].ID

	out, _ = f.shell.Execute("enemies")
	assert.Contains(t, out, id+"  Forest Goblin (unharmed, 25/25)")

	out, _ = f.shell.Execute("attack " + id)
	assert.Equal(t, "You are still recovering from your last action.", out)

	f.clock.Advance(time.Second)
	out, _ = f.shell.Execute("attack " + id)
	assert.Equal(t, "You hit Forest Goblin for 10 damage (15 health left).", out)
	f.clock.Advance(time.Second)
	f.shell.Execute("attack " + id)
	f.clock.Advance(time.Second)
	out, _ = f.shell.Execute("kill " + id)
	assert.True(t, strings.HasPrefix(out, "You defeated Forest Goblin and earned 1 gold."), out)
	assert.Equal(t, 1.0, f.session.Snapshot().Stats.Gold)
}

func TestShell_ForgeEquipAndScrap(t *testing.T) {
	f := newFixture(t, idleRules())

	out, _ := f.shell.Execute("forge")
	assert.Equal(t, "Usage: forge <weapon|armor|accessory> <name>: <description>", out)
	out, _ = f.shell.Execute("forge potion Elixir: heals")
	assert.Contains(t, out, "Usage: forge")
	out, _ = f.shell.Execute("forge weapon Ember Blade")
	assert.Contains(t, out, "An item needs a name and a description.")
	assert.Equal(t, 2, f.items.Len())

	out, _ = f.shell.Execute("forge weapon Ember Blade: still warm from the coals")
	assert.Equal(t, "Forged Ember Blade (weapon-1700000000000).", out)
	forged, ok := f.items.Get("weapon-1700000000000")
	require.True(t, ok)
	assert.Equal(t, "still warm from the coals", forged.Info().Description)
	assert.Equal(t, item.Common, forged.Info().Rarity)

	out, _ = f.shell.Execute("items")
	assert.Contains(t, out, "weapon-1700000000000  Ember Blade [common weapon]")

	out, _ = f.shell.Execute("enchant weapon-1700000000000 damage 5: honed edge")
	assert.Equal(t, "Ember Blade gains damage +5.", out)
	out, _ = f.shell.Execute("enchant weapon-1700000000000 luck 5: clover")
	assert.Equal(t, "luck is not a stat.", out)
	out, _ = f.shell.Execute("enchant weapon-1700000000000 damage lots: x")
	assert.Equal(t, "lots is not a number.", out)
	out, _ = f.shell.Execute("enchant weapon-1700000000000 damage 5")
	assert.Contains(t, out, "An effect needs a description.")

	out, _ = f.shell.Execute("equip weapon-1700000000000 weapon1")
	assert.Equal(t, "Equipped Ember Blade in weapon1.", out)
	assert.Equal(t, 25.0, f.session.Snapshot().Stats.Damage, "base 10, blade 10, enchantment 5")

	f.clock.Advance(time.Millisecond)
	out, _ = f.shell.Execute("forge armor Bark Helm: smells of moss")
	assert.Equal(t, "Forged Bark Helm (armor-1700000000001).", out)
	assert.Equal(t, 4, f.items.Len())

	out, _ = f.shell.Execute("scrap weapon-1700000000000")
	assert.Equal(t, "Scrapped Ember Blade.", out)
	_, ok = f.items.Get("weapon-1700000000000")
	assert.False(t, ok)
	assert.Equal(t, 25.0, f.session.Snapshot().Stats.Damage, "the equipped copy stays")
	out, _ = f.shell.Execute("scrap weapon-1700000000000")
	assert.Equal(t, "weapon-1700000000000: no such item", out)
	out, _ = f.shell.Execute("scrap")
	assert.Equal(t, "Usage: scrap <item_id>", out)
}

func TestShell_BestiaryAddConflictDelete(t *testing.T) {
	f := newFixture(t, idleRules())

	out, _ := f.shell.Execute("bestiary")
	assert.Contains(t, out, "goblin  Forest Goblin (forest, any)")
	assert.Contains(t, out, "wolf  Shadow Wolf (forest, night)")

	out, _ = f.shell.Execute("bestiary add Shadow Stalker")
	assert.Contains(t, out, "Name a biome")
	assert.Len(t, f.session.Enemies(), 3)

	out, _ = f.shell.Execute("bestiary add Shadow Stalker: Dungeon, forest")
	assert.Equal(t, "Added Shadow Stalker (shadow-stalker); it roams dungeon, forest.", out)
	enemies := f.session.Enemies()
	require.Len(t, enemies, 4)
	assert.Equal(t, "shadow-stalker", enemies[3].ID)
	assert.Equal(t, 100.0, enemies[3].Health)

	out, _ = f.shell.Execute("bestiary add Shadow Stalker: desert")
	assert.Equal(t, `Cannot add Shadow Stalker: an enemy with id "shadow-stalker" already exists.`, out)
	assert.Len(t, f.session.Enemies(), 4)

	out, _ = f.shell.Execute("bestiary add")
	assert.Equal(t, "Usage: bestiary [add <name>[: <biome>, ...] | delete <enemy_id>]", out)
	out, _ = f.shell.Execute("bestiary tame goblin")
	assert.Contains(t, out, "Usage: bestiary")

	out, _ = f.shell.Execute("be delete shadow-stalker")
	assert.Equal(t, "Removed Shadow Stalker from the bestiary.", out)
	out, _ = f.shell.Execute("bestiary delete shadow-stalker")
	assert.Equal(t, `The bestiary has no "shadow-stalker".`, out)
	assert.Len(t, f.session.Enemies(), 3)
}

func TestShell_BestiaryAddUsesCurrentBiome(t *testing.T) {
	rules := encounter.DefaultRules()
	rules.SpawnInterval = 2 * time.Millisecond
	rules.SpawnThreshold = 2 * time.Millisecond
	rules.SpawnCooldown = 0
	rules.MaxActiveEnemies = 1
	f := newFixture(t, rules)

	out, _ := f.shell.Execute("bestiary delete goblin")
	require.Equal(t, "Removed Forest Goblin from the bestiary.", out)
	f.shell.Execute("bestiary delete wolf")
	f.shell.Execute("teleport")
	out, _ = f.shell.Execute("bestiary add Moss Lurker")
	assert.Equal(t, "Added Moss Lurker (moss-lurker); it roams forest.", out)

	require.Eventually(t, func() bool {
		enemies := f.session.Snapshot().State.ActiveEnemies
		return len(enemies) == 1 && enemies[0].Template.ID == "moss-lurker"
	}, 2*time.Second, 2*time.Millisecond)
}

func TestShell_ClosedSession(t *testing.T) {
	f := newFixture(t, idleRules())
	f.session.Close()
	out, _ := f.shell.Execute("time")
	assert.Equal(t, encounter.ErrClosed.Error(), out)
	out, _ = f.shell.Execute("attack x")
	assert.Equal(t, encounter.ErrClosed.Error(), out)
}
