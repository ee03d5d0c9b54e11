package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/forsaken/internal/game/dice"
)

// RegisterModules registers the engine table into L:
//
//	engine.roll(expr) -> total    rolls a dice expression such as "1d6+1"
//	engine.log(msg)               writes msg to the debug log
//
// Precondition: L must be from NewSandboxedState.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()
	L.SetFuncs(engine, map[string]lua.LGFunction{
		"roll": m.luaRoll,
		"log":  m.luaLog,
	})
	L.SetGlobal("engine", engine)
}

func (m *Manager) luaRoll(L *lua.LState) int {
	expr, err := dice.Parse(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	L.Push(lua.LNumber(m.roller.Roll(expr).Total()))
	return 1
}

func (m *Manager) luaLog(L *lua.LState) int {
	m.logger.Debug("scripting: lua", zap.String("msg", L.CheckString(1)))
	return 0
}
