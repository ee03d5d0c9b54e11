package encounter_test

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/forsaken/internal/game/bestiary"
	"github.com/cory-johannsen/forsaken/internal/game/dice"
	"github.com/cory-johannsen/forsaken/internal/game/encounter"
)

// seqSource returns successive vals modulo n, repeating the last value once exhausted.
type seqSource struct {
	mu   sync.Mutex
	vals []int
	i    int
}

func (s *seqSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.vals) == 0 {
		return 0
	}
	v := s.vals[min(s.i, len(s.vals)-1)]
	s.i++
	return v % n
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.UnixMilli(1_700_000_000_000)}
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

func newSim(src dice.Source, clock *fakeClock, catalog bestiary.Catalog) *encounter.Simulator {
	return newSimWithRules(src, clock, catalog, encounter.DefaultRules())
}

func newSimWithRules(src dice.Source, clock *fakeClock, catalog bestiary.Catalog, rules encounter.Rules) *encounter.Simulator {
	logger := zap.NewNop()
	return encounter.NewSimulator(catalog, rules, dice.NewLoggedRoller(src, logger), logger, encounter.WithClock(clock.Now))
}

func enemyTemplate(id string) bestiary.Enemy {
	e, ok := bestiary.FindEnemy(bestiary.DefaultCatalog().Enemies, id)
	if !ok {
		panic("unknown enemy " + id)
	}
	return e
}

func forest() *bestiary.Biome {
	b, _ := bestiary.DefaultCatalog().Biome("forest")
	return &b
}
