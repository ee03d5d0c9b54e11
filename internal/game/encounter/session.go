package encounter

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/cory-johannsen/forsaken/internal/game/bestiary"
	"github.com/cory-johannsen/forsaken/internal/game/character"
	"github.com/cory-johannsen/forsaken/internal/game/item"
	"github.com/cory-johannsen/forsaken/internal/game/stats"
)

// ErrClosed is returned by Session operations after Close.
var ErrClosed = errors.New("session closed")

// Narrator turns triggered non-stat effects into flavor lines. It never
// changes state.
type Narrator interface {
	Narrate(trigger stats.Trigger, effects []stats.ItemEffect, event map[string]string) []string
}

// Snapshot is the read model published after every transition.
type Snapshot struct {
	State     State
	Character character.Character
	Stats     stats.CharacterStats
	Effects   []stats.ItemEffect
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithNarrator attaches trigger hooks to the session.
func WithNarrator(n Narrator) SessionOption {
	return func(s *Session) { s.narrator = n }
}

// Session owns one player's encounter state and character and runs the spawn
// timer while a biome is selected. It is safe for concurrent use.
type Session struct {
	mu          sync.Mutex
	sim         *Simulator
	state       State
	char        character.Character
	narrator    Narrator
	logger      *zap.Logger
	subscribers map[chan<- Snapshot]struct{}
	stopTimer   func()
	timerGen    uint64
	closed      bool
}

// NewSession starts a session for c in sim's initial state.
//
// Precondition: sim and logger must be non-nil.
func NewSession(sim *Simulator, c character.Character, logger *zap.Logger, opts ...SessionOption) *Session {
	s := &Session{
		sim:         sim,
		state:       sim.NewState(),
		char:        c,
		logger:      logger,
		subscribers: make(map[chan<- Snapshot]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers ch to receive a Snapshot after each transition.
// If ch is full, the snapshot is dropped for that subscriber.
//
// Precondition: ch must not be nil.
func (s *Session) Subscribe(ch chan<- Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers[ch] = struct{}{}
}

// Unsubscribe removes ch from the subscriber list.
func (s *Session) Unsubscribe(ch chan<- Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subscribers, ch)
}

// Snapshot returns the current read model.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		State:     s.state.Clone(),
		Character: s.char.Clone(),
		Stats:     character.ComputeStats(s.char),
		Effects:   character.ActiveEffects(s.char),
	}
}

// commitLocked installs next and character and notifies subscribers.
func (s *Session) commitLocked(next State, c character.Character) Snapshot {
	s.state = next
	s.char = c
	snap := s.snapshotLocked()
	for ch := range s.subscribers {
		select {
		case ch <- snap:
		default:
		}
	}
	return snap
}

// Teleport travels to a weighted-random discovered biome and starts the spawn timer.
// Returned messages come from onMove hooks.
func (s *Session) Teleport() (Snapshot, []string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Snapshot{}, nil, ErrClosed
	}
	next := s.sim.Teleport(s.state)
	if !next.HasBiome() {
		return s.snapshotLocked(), nil, nil
	}
	snap := s.commitLocked(next, s.char)
	s.startTimerLocked()
	msgs := s.narrateLocked(stats.TriggerOnMove, map[string]string{"biome": next.CurrentBiome.ID})
	return snap, msgs, nil
}

// LeaveBiome deselects the biome and stops the spawn timer.
func (s *Session) LeaveBiome() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Snapshot{}, ErrClosed
	}
	s.stopTimerLocked()
	return s.commitLocked(s.sim.Leave(s.state), s.char), nil
}

// Attack strikes the active enemy id. Accepted hits also fire onHit hooks.
func (s *Session) Attack(id string) (AttackResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return AttackResult{}, ErrClosed
	}
	next, c, res := s.sim.Attack(s.state, s.char, id)
	if !res.Outcome.Accepted() {
		return res, nil
	}
	s.commitLocked(next, c)
	res.Messages = s.narrateLocked(stats.TriggerOnHit, map[string]string{
		"target":  res.EnemyName,
		"outcome": res.Outcome.String(),
	})
	return res, nil
}

// ToggleTime flips day and night and fires onTime hooks.
func (s *Session) ToggleTime() (Snapshot, []string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Snapshot{}, nil, ErrClosed
	}
	next := s.sim.ToggleTime(s.state)
	snap := s.commitLocked(next, s.char)
	msgs := s.narrateLocked(stats.TriggerOnTime, map[string]string{"time_of_day": string(next.TimeOfDay)})
	return snap, msgs, nil
}

// ChangeWeather picks a new weather entry.
func (s *Session) ChangeWeather() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Snapshot{}, ErrClosed
	}
	return s.commitLocked(s.sim.ChangeWeather(s.state), s.char), nil
}

// Equip places it in ref. On error the character is unchanged.
func (s *Session) Equip(it item.Item, ref character.SlotRef) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Snapshot{}, ErrClosed
	}
	c, err := character.Equip(s.char, it, ref)
	if err != nil {
		return s.snapshotLocked(), err
	}
	return s.commitLocked(s.state, c), nil
}

// Unequip clears ref. On error the character is unchanged.
func (s *Session) Unequip(ref character.SlotRef) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Snapshot{}, ErrClosed
	}
	c, err := character.Unequip(s.char, ref)
	if err != nil {
		return s.snapshotLocked(), err
	}
	return s.commitLocked(s.state, c), nil
}

// Enemies returns a copy of the bestiary later spawns draw from.
func (s *Session) Enemies() []bestiary.Enemy {
	s.mu.Lock()
	defer s.mu.Unlock()
	enemies := s.sim.Catalog().Enemies
	out := make([]bestiary.Enemy, len(enemies))
	for i, e := range enemies {
		out[i] = e.Clone()
	}
	return out
}

// ReplaceEnemies swaps the bestiary used by later spawns. Enemies already
// active are kept.
func (s *Session) ReplaceEnemies(enemies []bestiary.Enemy) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sim = s.sim.WithEnemies(enemies)
	s.logger.Info("bestiary replaced", zap.Int("enemies", len(enemies)))
}

// Close stops the spawn timer. Later operations return ErrClosed. Safe to call
// multiple times.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimerLocked()
	s.closed = true
}

// tick runs one spawn tick for the timer started as generation gen.
func (s *Session) tick(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.stopTimer == nil || gen != s.timerGen || !s.state.HasBiome() {
		return
	}
	before := len(s.state.ActiveEnemies)
	next := s.sim.SpawnTick(s.state)
	if len(next.ActiveEnemies) > before {
		s.logger.Info("enemy appeared", zap.String("instance", next.ActiveEnemies[len(next.ActiveEnemies)-1].ID))
	}
	s.commitLocked(next, s.char)
}

func (s *Session) narrateLocked(trigger stats.Trigger, event map[string]string) []string {
	if s.narrator == nil {
		return nil
	}
	var fired []stats.ItemEffect
	for _, e := range character.ActiveEffects(s.char) {
		if e.Kind != stats.KindStat && e.Trigger == trigger {
			fired = append(fired, e)
		}
	}
	if len(fired) == 0 {
		return nil
	}
	return s.narrator.Narrate(trigger, fired, event)
}
