package scripting_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/forsaken/internal/game/dice"
	"github.com/cory-johannsen/forsaken/internal/game/stats"
	"github.com/cory-johannsen/forsaken/internal/scripting"
)

type constSource struct{ v int }

func (c constSource) Intn(n int) int { return c.v % n }

func newTestManager(t testing.TB) (*scripting.Manager, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)
	mgr := scripting.NewManager(dice.NewLoggedRoller(constSource{v: 2}, logger), logger)
	t.Cleanup(mgr.Close)
	return mgr, logs
}

func writeTempLua(t testing.TB, filename, src string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte(src), 0644))
	return dir
}

var ignite = stats.ItemEffect{
	ID: "ignite", Name: "Ignite", Kind: stats.KindPassive, Trigger: stats.TriggerOnHit, Value: 2,
}

func TestHookName(t *testing.T) {
	name, ok := scripting.HookName(stats.TriggerOnHit)
	require.True(t, ok)
	assert.Equal(t, "on_hit", name)
	_, ok = scripting.HookName("onSneeze")
	assert.False(t, ok)
}

func TestManager_NarrateCallsHookPerEffect(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "hooks.lua", `
		function on_hit(effect, event)
			return effect.name .. " scorches " .. event.target .. " for " .. effect.value
		end
	`)
	require.NoError(t, mgr.Load(dir, 0))

	second := ignite
	second.Name = "Frost"
	lines := mgr.Narrate(stats.TriggerOnHit, []stats.ItemEffect{ignite, second}, map[string]string{"target": "Forest Goblin"})
	assert.Equal(t, []string{"Ignite scorches Forest Goblin for 2", "Frost scorches Forest Goblin for 2"}, lines)
}

func TestManager_EngineRoll(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "roll.lua", `
		function on_move(effect, event)
			return "rolled " .. engine.roll("1d6+1")
		end
	`)
	require.NoError(t, mgr.Load(dir, 0))
	// constSource yields 2, so 1d6 rolls 3.
	assert.Equal(t, []string{"rolled 4"}, mgr.Narrate(stats.TriggerOnMove, []stats.ItemEffect{ignite}, nil))
}

func TestManager_MissingHookOrVM_NoLines(t *testing.T) {
	mgr, _ := newTestManager(t)
	assert.Nil(t, mgr.Narrate(stats.TriggerOnHit, []stats.ItemEffect{ignite}, nil), "no VM loaded")

	require.NoError(t, mgr.Load(writeTempLua(t, "empty.lua", `-- no functions`), 0))
	assert.Nil(t, mgr.Narrate(stats.TriggerOnHit, []stats.ItemEffect{ignite}, nil))
	assert.Nil(t, mgr.Narrate("onSneeze", []stats.ItemEffect{ignite}, nil))
}

func TestManager_NonStringReturnIgnored(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.Load(writeTempLua(t, "n.lua", `function on_time(e, ev) return 42 end`), 0))
	assert.Empty(t, mgr.Narrate(stats.TriggerOnTime, []stats.ItemEffect{ignite}, nil))
}

func TestManager_RuntimeError_WarnLogNoPanic(t *testing.T) {
	mgr, logs := newTestManager(t)
	dir := writeTempLua(t, "bad.lua", `
		function on_hit(effect, event)
			error("intentional error")
		end
	`)
	require.NoError(t, mgr.Load(dir, 0))
	assert.Empty(t, mgr.Narrate(stats.TriggerOnHit, []stats.ItemEffect{ignite}, nil))
	assert.NotZero(t, logs.FilterLevelExact(zap.WarnLevel).Len())
}

func TestManager_InstructionLimitIsPerCall(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "loop.lua", `
		function on_hit(effect, event)
			if effect.name == "spin" then
				while true do end
			end
			return "ok"
		end
	`)
	require.NoError(t, mgr.Load(dir, 1000))

	spin := ignite
	spin.Name = "spin"
	assert.Empty(t, mgr.Narrate(stats.TriggerOnHit, []stats.ItemEffect{spin}, nil))
	for i := 0; i < 50; i++ {
		require.Equal(t, []string{"ok"}, mgr.Narrate(stats.TriggerOnHit, []stats.ItemEffect{ignite}, nil))
	}
}

func TestManager_Load_Errors(t *testing.T) {
	mgr, _ := newTestManager(t)
	assert.Error(t, mgr.Load(filepath.Join(t.TempDir(), "missing"), 0))
	assert.Error(t, mgr.Load(writeTempLua(t, "syntax.lua", `function (`), 0))
	assert.Error(t, mgr.Load(writeTempLua(t, "spin.lua", `while true do end`), 100))
}

func TestManager_FailedReloadKeepsPreviousVM(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.Load(writeTempLua(t, "a.lua", `function on_hit() return "old" end`), 0))
	require.Error(t, mgr.Load(writeTempLua(t, "b.lua", `function (`), 0))
	assert.Equal(t, []string{"old"}, mgr.Narrate(stats.TriggerOnHit, []stats.ItemEffect{ignite}, nil))
}

func TestManager_ConcurrentNarrate(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.Load(writeTempLua(t, "a.lua", `function on_hit(e) return e.id end`), 0))
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				assert.Equal(t, []string{"ignite"}, mgr.Narrate(stats.TriggerOnHit, []stats.ItemEffect{ignite}, nil))
			}
		}()
	}
	wg.Wait()
}

func TestContent_ScriptsLoad(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.Load("../../content/scripts", 0))
	lines := mgr.Narrate(stats.TriggerOnHit, []stats.ItemEffect{ignite}, map[string]string{"target": "Forest Goblin"})
	assert.NotEmpty(t, lines)
}
