// Package command provides the command registry, parser, and handlers of the
// text shell.
package command

// Categories for organizing commands.
const (
	CategoryWorld     = "world"
	CategoryCombat    = "combat"
	CategoryEquipment = "equipment"
	CategoryAuthoring = "authoring"
	CategorySystem    = "system"
)

// Handler identifiers mapping commands to Shell handlers.
const (
	HandlerTeleport = "teleport"
	HandlerLeave    = "leave"
	HandlerTime     = "time"
	HandlerWeather  = "weather"
	HandlerStatus   = "status"
	HandlerEnemies  = "enemies"
	HandlerAttack   = "attack"
	HandlerStats    = "stats"
	HandlerEffects  = "effects"
	HandlerItems    = "items"
	HandlerEquip    = "equip"
	HandlerUnequip  = "unequip"
	HandlerForge    = "forge"
	HandlerEnchant  = "enchant"
	HandlerScrap    = "scrap"
	HandlerBestiary = "bestiary"
	HandlerHelp     = "help"
	HandlerQuit     = "quit"
)

// Command defines a player-invocable command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Help is the short help text displayed to players.
	Help string
	// Category groups the command (world, combat, equipment, authoring, system).
	Category string
	// Handler names the Shell handler that runs the command.
	Handler string
}

// BuiltinCommands returns all built-in commands of the shell.
func BuiltinCommands() []Command {
	return []Command{
		// World commands
		{Name: "teleport", Aliases: []string{"tp"}, Help: "Travel to a random discovered biome", Category: CategoryWorld, Handler: HandlerTeleport},
		{Name: "leave", Aliases: nil, Help: "Leave the current biome", Category: CategoryWorld, Handler: HandlerLeave},
		{Name: "time", Aliases: []string{"t"}, Help: "Toggle between day and night", Category: CategoryWorld, Handler: HandlerTime},
		{Name: "weather", Aliases: []string{"w"}, Help: "Roll new weather for the biome", Category: CategoryWorld, Handler: HandlerWeather},
		{Name: "status", Aliases: []string{"st"}, Help: "Show biome, weather, time of day and gold", Category: CategoryWorld, Handler: HandlerStatus},
		{Name: "enemies", Aliases: []string{"en"}, Help: "List active enemies", Category: CategoryWorld, Handler: HandlerEnemies},

		// Combat commands
		{Name: "attack", Aliases: []string{"att", "kill"}, Help: "Attack an enemy (attack <enemy_id>)", Category: CategoryCombat, Handler: HandlerAttack},
		{Name: "stats", Aliases: nil, Help: "Show computed character stats", Category: CategoryCombat, Handler: HandlerStats},
		{Name: "effects", Aliases: []string{"fx"}, Help: "Show effects of all equipped items", Category: CategoryCombat, Handler: HandlerEffects},

		// Equipment commands
		{Name: "items", Aliases: []string{"i"}, Help: "List items available to equip", Category: CategoryEquipment, Handler: HandlerItems},
		{Name: "equip", Aliases: []string{"eq"}, Help: "Equip an item (equip <item_id> <slot>)", Category: CategoryEquipment, Handler: HandlerEquip},
		{Name: "unequip", Aliases: []string{"ueq"}, Help: "Clear a slot (unequip <slot>)", Category: CategoryEquipment, Handler: HandlerUnequip},

		// Authoring commands
		{Name: "forge", Aliases: nil, Help: "Create an item (forge <weapon|armor|accessory> <name>: <description>)", Category: CategoryAuthoring, Handler: HandlerForge},
		{Name: "enchant", Aliases: nil, Help: "Add a stat effect (enchant <item_id> <stat> <value>: <description>)", Category: CategoryAuthoring, Handler: HandlerEnchant},
		{Name: "scrap", Aliases: nil, Help: "Remove an item from the catalog (scrap <item_id>)", Category: CategoryAuthoring, Handler: HandlerScrap},
		{Name: "bestiary", Aliases: []string{"be"}, Help: "List, add or delete enemies (bestiary [add <name>[: <biome>, ...] | delete <id>])", Category: CategoryAuthoring, Handler: HandlerBestiary},

		// System commands
		{Name: "help", Aliases: []string{"?"}, Help: "Show available commands", Category: CategorySystem, Handler: HandlerHelp},
		{Name: "quit", Aliases: []string{"exit", "q"}, Help: "Leave the game", Category: CategorySystem, Handler: HandlerQuit},
	}
}
