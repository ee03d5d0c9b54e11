package encounter

import (
	"fmt"
	"math"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/forsaken/internal/game/bestiary"
	"github.com/cory-johannsen/forsaken/internal/game/character"
	"github.com/cory-johannsen/forsaken/internal/game/dice"
)

// Outcome classifies the result of an attack.
type Outcome int

const (
	// OutcomeNoTarget means the instance id was not active. The cooldown is not consumed.
	OutcomeNoTarget Outcome = iota
	// OutcomeCooldown means the attack arrived inside the attack cooldown and was dropped.
	OutcomeCooldown
	// OutcomeHit means the enemy took damage and is still active.
	OutcomeHit
	// OutcomeDefeated means the enemy reached zero health and was removed.
	OutcomeDefeated
)

// String returns a lower-case label for o.
func (o Outcome) String() string {
	switch o {
	case OutcomeNoTarget:
		return "no target"
	case OutcomeCooldown:
		return "cooldown"
	case OutcomeHit:
		return "hit"
	case OutcomeDefeated:
		return "defeated"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Accepted reports whether the attack was applied.
func (o Outcome) Accepted() bool {
	return o == OutcomeHit || o == OutcomeDefeated
}

// AttackResult reports what an attack did.
type AttackResult struct {
	Outcome   Outcome
	EnemyID   string
	EnemyName string
	Damage    float64
	// Remaining is the enemy's health after the hit.
	Remaining float64
	// Gold and Loot are set only when Outcome is OutcomeDefeated.
	Gold int
	Loot []bestiary.Drop
	// Messages holds narration produced by trigger hooks.
	Messages []string
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithClock replaces time.Now as the simulator's clock.
func WithClock(clock func() time.Time) Option {
	return func(s *Simulator) { s.clock = clock }
}

// Simulator applies the encounter rules to State values. It holds only
// immutable configuration and is safe for concurrent use.
type Simulator struct {
	catalog bestiary.Catalog
	rules   Rules
	roller  *dice.Roller
	clock   func() time.Time
	logger  *zap.Logger
}

// NewSimulator creates a Simulator over catalog.
//
// Precondition: roller and logger must be non-nil.
func NewSimulator(catalog bestiary.Catalog, rules Rules, roller *dice.Roller, logger *zap.Logger, opts ...Option) *Simulator {
	s := &Simulator{
		catalog: catalog,
		rules:   rules,
		roller:  roller,
		clock:   time.Now,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog returns the reference tables the simulator reads.
func (sim *Simulator) Catalog() bestiary.Catalog { return sim.catalog }

// Rules returns the simulator's rules.
func (sim *Simulator) Rules() Rules { return sim.rules }

// WithEnemies returns a Simulator identical to sim but spawning from enemies.
func (sim *Simulator) WithEnemies(enemies []bestiary.Enemy) *Simulator {
	next := *sim
	next.catalog = sim.catalog.WithEnemies(enemies)
	return &next
}

// NewState returns the state a session starts in: daytime, no biome, no
// weather, every catalog biome discovered.
func (sim *Simulator) NewState() State {
	return State{
		TimeOfDay:        bestiary.Day,
		ActiveEnemies:    []bestiary.Instance{},
		DiscoveredBiomes: slices.Clone(sim.catalog.Biomes),
		SpawnCooldown:    sim.rules.SpawnCooldown,
		MaxActiveEnemies: sim.rules.MaxActiveEnemies,
	}
}

// Teleport moves to a discovered biome drawn with probability proportional to
// its rarity weight. Active enemies are abandoned and the spawn counter resets.
// Travel counts as an action for the attack cooldown.
//
// Postcondition: when no biome has a positive weight the state is returned unchanged.
func (sim *Simulator) Teleport(s State) State {
	weights := make([]int, len(s.DiscoveredBiomes))
	for i, b := range s.DiscoveredBiomes {
		weights[i] = b.Rarity
	}
	i, ok := sim.roller.PickWeighted("teleport", weights)
	if !ok {
		sim.logger.Debug("teleport ignored: no discovered biome")
		return s
	}

	out := s.Clone()
	biome := s.DiscoveredBiomes[i]
	out.CurrentBiome = &biome
	out.ActiveEnemies = []bestiary.Instance{}
	out.SpawnElapsed = 0
	out.LastActionTime = sim.clock()
	sim.logger.Info("teleported", zap.String("biome", biome.ID))
	return out
}

// Leave deselects the current biome and abandons its enemies.
func (sim *Simulator) Leave(s State) State {
	out := s.Clone()
	out.CurrentBiome = nil
	out.ActiveEnemies = []bestiary.Instance{}
	out.SpawnElapsed = 0
	return out
}

// SpawnTick advances the spawn counter by one spawn interval. Once the counter
// reaches the spawn threshold with room for another enemy, a spawn is
// attempted and the counter resets whether or not it succeeded.
//
// Postcondition: with no biome selected the state is returned unchanged.
func (sim *Simulator) SpawnTick(s State) State {
	if !s.HasBiome() {
		return s
	}
	out := s.Clone()
	out.SpawnElapsed += sim.rules.SpawnInterval
	if out.SpawnElapsed >= sim.rules.SpawnThreshold && !out.AtCapacity() {
		out, _ = sim.TrySpawn(out)
		out.SpawnElapsed = 0
	}
	return out
}

// TrySpawn attempts to add one enemy eligible for the current biome and time
// of day, chosen uniformly.
//
// Postcondition: returns (s, false) when no biome is selected, the state is at
// capacity, the spawn cooldown has not elapsed, or no template is eligible.
func (sim *Simulator) TrySpawn(s State) (State, bool) {
	if !s.HasBiome() || s.AtCapacity() {
		return s, false
	}
	now := sim.clock()
	if now.Sub(s.LastSpawnTime) < s.SpawnCooldown {
		sim.logger.Debug("spawn rejected: cooldown", zap.Duration("since_last", now.Sub(s.LastSpawnTime)))
		return s, false
	}
	eligible := bestiary.Eligible(sim.catalog.Enemies, s.CurrentBiome.ID, s.TimeOfDay)
	if len(eligible) == 0 {
		sim.logger.Debug("spawn skipped: no eligible enemy",
			zap.String("biome", s.CurrentBiome.ID),
			zap.String("time_of_day", string(s.TimeOfDay)),
		)
		return s, false
	}

	tmpl := eligible[sim.roller.Pick("spawn", len(eligible))]
	inst := bestiary.NewInstance(tmpl, now)
	inst.ID = uniqueInstanceID(s, inst.ID)

	out := s.Clone()
	out.ActiveEnemies = append(out.ActiveEnemies, inst)
	out.LastSpawnTime = now
	sim.logger.Debug("enemy spawned",
		zap.String("instance", inst.ID),
		zap.String("biome", s.CurrentBiome.ID),
		zap.Int("active", len(out.ActiveEnemies)),
	)
	return out, true
}

// uniqueInstanceID suffixes id when an active instance already uses it, which
// only happens when two spawns share a millisecond.
func uniqueInstanceID(s State, id string) string {
	candidate := id
	for n := 1; s.enemyIndex(candidate) >= 0; n++ {
		candidate = fmt.Sprintf("%s-%d", id, n)
	}
	return candidate
}

// Attack strikes the active enemy id with c's aggregated damage.
//
// An attack within the attack cooldown of the last accepted action is dropped.
// A defeated enemy is removed and c is awarded a gold roll; its loot table is
// rolled and reported.
//
// Postcondition: unless the outcome is accepted, s and c are returned unchanged.
func (sim *Simulator) Attack(s State, c character.Character, id string) (State, character.Character, AttackResult) {
	now := sim.clock()
	if now.Sub(s.LastActionTime) < sim.rules.AttackCooldown {
		sim.logger.Debug("attack dropped: cooldown", zap.String("target", id))
		return s, c, AttackResult{Outcome: OutcomeCooldown, EnemyID: id}
	}
	idx := s.enemyIndex(id)
	if idx < 0 {
		sim.logger.Debug("attack ignored: no such enemy", zap.String("target", id))
		return s, c, AttackResult{Outcome: OutcomeNoTarget, EnemyID: id}
	}

	out := s.Clone()
	out.LastActionTime = now
	enemy := out.ActiveEnemies[idx]
	damage := character.ComputeStats(c).Damage
	enemy.Health = math.Max(0, enemy.Health-damage)
	res := AttackResult{
		Outcome:   OutcomeHit,
		EnemyID:   id,
		EnemyName: enemy.Name(),
		Damage:    damage,
		Remaining: enemy.Health,
	}

	if !enemy.IsDead() {
		out.ActiveEnemies[idx] = enemy
		sim.logger.Debug("enemy hit", zap.String("target", id), zap.Float64("damage", damage), zap.Float64("remaining", enemy.Health))
		return out, c, res
	}

	out.ActiveEnemies = slices.Delete(out.ActiveEnemies, idx, idx+1)
	res.Outcome = OutcomeDefeated
	res.Gold = sim.roller.Roll(sim.rules.GoldReward).Total()
	res.Loot = bestiary.GenerateLoot(enemy.Template.LootTable, sim.roller)
	sim.logger.Info("enemy defeated",
		zap.String("target", id),
		zap.Int("gold", res.Gold),
		zap.Int("drops", len(res.Loot)),
	)
	return out, c.AddGold(float64(res.Gold)), res
}

// ToggleTime flips day and night and removes every active enemy whose time of
// day requirement no longer holds.
func (sim *Simulator) ToggleTime(s State) State {
	out := s.Clone()
	out.TimeOfDay = s.TimeOfDay.Toggle()
	out.ActiveEnemies = slices.DeleteFunc(out.ActiveEnemies, func(e bestiary.Instance) bool {
		return !e.Template.SpawnConditions.TimeOfDay.Allows(out.TimeOfDay)
	})
	sim.logger.Debug("time of day changed",
		zap.String("time_of_day", string(out.TimeOfDay)),
		zap.Int("removed", len(s.ActiveEnemies)-len(out.ActiveEnemies)),
	)
	return out
}

// ChangeWeather sets the current weather to a uniformly chosen catalog entry.
//
// Postcondition: with an empty weather table the state is returned unchanged.
func (sim *Simulator) ChangeWeather(s State) State {
	if len(sim.catalog.Weather) == 0 {
		return s
	}
	w := sim.catalog.Weather[sim.roller.Pick("weather", len(sim.catalog.Weather))]
	out := s.Clone()
	out.CurrentWeather = &w
	sim.logger.Info("weather changed", zap.String("weather", w.ID))
	return out
}
