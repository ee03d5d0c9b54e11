package command

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/forsaken/internal/game/encounter"
	"github.com/cory-johannsen/forsaken/internal/game/item"
)

// Shell resolves text lines against a Registry and runs them on a Session.
type Shell struct {
	registry *Registry
	session  *encounter.Session
	items    *item.Registry
	logger   *zap.Logger
	clock    func() time.Time
}

// ShellOption configures a Shell.
type ShellOption func(*Shell)

// WithShellClock overrides time.Now as the source of forged item ids.
func WithShellClock(clock func() time.Time) ShellOption {
	return func(sh *Shell) { sh.clock = clock }
}

// NewShell creates a Shell.
//
// Precondition: all arguments must be non-nil.
func NewShell(registry *Registry, session *encounter.Session, items *item.Registry, logger *zap.Logger, opts ...ShellOption) *Shell {
	sh := &Shell{registry: registry, session: session, items: items, logger: logger, clock: time.Now}
	for _, opt := range opts {
		opt(sh)
	}
	return sh
}

// Execute runs one input line and returns the text to show.
//
// Postcondition: quit is true only for the quit command. An empty line returns ("", false).
func (sh *Shell) Execute(line string) (out string, quit bool) {
	parsed := Parse(line)
	if parsed.Command == "" {
		return "", false
	}
	cmd, ok := sh.registry.Resolve(parsed.Command)
	if !ok {
		return fmt.Sprintf("Unknown command %q. Type help for a list.", parsed.Command), false
	}
	sh.logger.Debug("command", zap.String("name", cmd.Name), zap.Strings("args", parsed.Args))

	switch cmd.Handler {
	case HandlerTeleport:
		return HandleTeleport(sh.session), false
	case HandlerLeave:
		return HandleLeave(sh.session), false
	case HandlerTime:
		return HandleTime(sh.session), false
	case HandlerWeather:
		return HandleWeather(sh.session), false
	case HandlerStatus:
		return RenderStatus(sh.session.Snapshot()), false
	case HandlerEnemies:
		return RenderEnemies(sh.session.Snapshot()), false
	case HandlerAttack:
		return HandleAttack(sh.session, parsed.Args), false
	case HandlerStats:
		return RenderStats(sh.session.Snapshot()), false
	case HandlerEffects:
		return RenderEffects(sh.session.Snapshot()), false
	case HandlerItems:
		return RenderItems(sh.items, sh.session.Snapshot()), false
	case HandlerEquip:
		return HandleEquip(sh.session, sh.items, parsed.Args), false
	case HandlerUnequip:
		return HandleUnequip(sh.session, parsed.Args), false
	case HandlerForge:
		return HandleForge(sh.items, parsed.RawArgs, sh.clock()), false
	case HandlerEnchant:
		return HandleEnchant(sh.items, parsed.RawArgs), false
	case HandlerScrap:
		return HandleScrap(sh.items, parsed.Args), false
	case HandlerBestiary:
		return HandleBestiary(sh.session, parsed.Args, parsed.RawArgs), false
	case HandlerHelp:
		return sh.registry.HelpText(), false
	case HandlerQuit:
		return "Farewell.", true
	}
	return fmt.Sprintf("%s is not implemented.", cmd.Name), false
}
