package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/forsaken/internal/game/dice"
	"github.com/cory-johannsen/forsaken/internal/game/stats"
)

// hookNames maps each trigger to the Lua global it calls.
var hookNames = map[stats.Trigger]string{
	stats.TriggerOnHit:    "on_hit",
	stats.TriggerOnCrit:   "on_crit",
	stats.TriggerOnDamage: "on_damage",
	stats.TriggerOnIdle:   "on_idle",
	stats.TriggerOnMove:   "on_move",
	stats.TriggerOnTime:   "on_time",
}

// HookName returns the Lua function name called for trigger.
func HookName(trigger stats.Trigger) (string, bool) {
	name, ok := hookNames[trigger]
	return name, ok
}

// Manager owns one sandboxed LState loaded with hook scripts.
//
// Manager is safe for concurrent use; calls into the VM are serialized.
type Manager struct {
	mu        sync.Mutex
	L         *lua.LState
	instLimit int
	roller    *dice.Roller
	logger    *zap.Logger
}

// NewManager creates a Manager with no scripts loaded. Narrate returns nothing
// until Load succeeds.
//
// Precondition: roller and logger must be non-nil.
func NewManager(roller *dice.Roller, logger *zap.Logger) *Manager {
	return &Manager{roller: roller, logger: logger}
}

// Load creates a fresh sandboxed VM, registers the engine module, then
// executes every *.lua file in scriptDir in lexicographic order. A previously
// loaded VM is replaced only on success.
//
// Precondition: scriptDir must be a readable directory.
func (m *Manager) Load(scriptDir string, instLimit int) error {
	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q: %w", scriptDir, err)
	}
	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	L := NewSandboxedState(instLimit)
	m.RegisterModules(L)
	for _, path := range luaFiles {
		release := armLimit(L, instLimit)
		err := L.DoFile(path)
		release()
		if err != nil {
			L.Close()
			return fmt.Errorf("scripting: loading %q: %w", path, err)
		}
	}

	m.mu.Lock()
	if m.L != nil {
		m.L.Close()
	}
	m.L = L
	m.instLimit = instLimit
	m.mu.Unlock()
	m.logger.Info("scripting: hooks loaded", zap.String("dir", scriptDir), zap.Int("files", len(luaFiles)))
	return nil
}

// Close releases the VM. Safe to call multiple times.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.L != nil {
		m.L.Close()
		m.L = nil
	}
}

// Narrate calls the hook for trigger once per effect with (effect, event)
// tables and collects every string it returns. Missing hooks, non-string
// returns, and Lua errors produce no line; errors are logged at Warn level.
func (m *Manager) Narrate(trigger stats.Trigger, effects []stats.ItemEffect, event map[string]string) []string {
	hook, ok := hookNames[trigger]
	if !ok {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.L == nil {
		return nil
	}
	fn := m.L.GetGlobal(hook)
	if fn.Type() != lua.LTFunction {
		return nil
	}

	var lines []string
	for _, e := range effects {
		ret, err := m.call(fn, effectTable(m.L, e), stringTable(m.L, event))
		if err != nil {
			m.logger.Warn("scripting: Lua runtime error",
				zap.String("hook", hook),
				zap.String("effect", e.ID),
				zap.Error(err),
			)
			continue
		}
		if s, ok := ret.(lua.LString); ok && s != "" {
			lines = append(lines, string(s))
		}
	}
	return lines
}

// call runs fn under a fresh instruction budget.
//
// Precondition: m.mu is held and m.L is non-nil.
func (m *Manager) call(fn lua.LValue, args ...lua.LValue) (lua.LValue, error) {
	release := armLimit(m.L, m.instLimit)
	defer release()
	if err := m.L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, args...); err != nil {
		return lua.LNil, err
	}
	ret := m.L.Get(-1)
	m.L.Pop(1)
	return ret, nil
}

func effectTable(L *lua.LState, e stats.ItemEffect) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("id", lua.LString(e.ID))
	t.RawSetString("name", lua.LString(e.Name))
	t.RawSetString("description", lua.LString(e.Description))
	t.RawSetString("type", lua.LString(e.Kind))
	t.RawSetString("trigger", lua.LString(e.Trigger))
	t.RawSetString("value", lua.LNumber(e.Value))
	t.RawSetString("duration", lua.LNumber(e.Duration))
	conds := L.NewTable()
	for _, c := range e.Conditions {
		conds.Append(lua.LString(c))
	}
	t.RawSetString("conditions", conds)
	return t
}

func stringTable(L *lua.LState, m map[string]string) *lua.LTable {
	t := L.NewTable()
	for k, v := range m {
		t.RawSetString(k, lua.LString(v))
	}
	return t
}
