// Package main provides the forsaken binary: a line-oriented shell over a
// single-player encounter session.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/forsaken/internal/config"
	"github.com/cory-johannsen/forsaken/internal/game/bestiary"
	"github.com/cory-johannsen/forsaken/internal/game/character"
	"github.com/cory-johannsen/forsaken/internal/game/command"
	"github.com/cory-johannsen/forsaken/internal/game/dice"
	"github.com/cory-johannsen/forsaken/internal/game/encounter"
	"github.com/cory-johannsen/forsaken/internal/game/item"
	"github.com/cory-johannsen/forsaken/internal/lifecycle"
	"github.com/cory-johannsen/forsaken/internal/observability"
	"github.com/cory-johannsen/forsaken/internal/scripting"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	catalog, err := bestiary.LoadCatalog(cfg.Content.EnemiesDir, cfg.Content.BiomesDir, cfg.Content.WeatherDir)
	if err != nil {
		logger.Fatal("loading catalog", zap.Error(err))
	}
	logger.Info("catalog loaded",
		zap.Int("enemies", len(catalog.Enemies)),
		zap.Int("biomes", len(catalog.Biomes)),
		zap.Int("weather", len(catalog.Weather)),
	)

	var items []item.Item
	if cfg.Content.ItemsDir != "" {
		items, err = item.LoadItems(cfg.Content.ItemsDir)
		if err != nil {
			logger.Fatal("loading items", zap.Error(err))
		}
	}
	itemReg, err := item.NewRegistry(items...)
	if err != nil {
		logger.Fatal("building item registry", zap.Error(err))
	}
	logger.Info("items loaded", zap.Int("count", itemReg.Len()))

	rules, err := encounter.RulesFromConfig(cfg.Simulation)
	if err != nil {
		logger.Fatal("building rules", zap.Error(err))
	}
	roller := dice.NewLoggedRoller(dice.NewCryptoSource(), logger)
	sim := encounter.NewSimulator(catalog, rules, roller, logger)

	lc := lifecycle.New(logger)

	var opts []encounter.SessionOption
	if cfg.Scripting.Dir != "" {
		hooks := scripting.NewManager(roller, logger)
		if err := hooks.Load(cfg.Scripting.Dir, cfg.Scripting.InstructionLimit); err != nil {
			logger.Fatal("loading effect scripts", zap.Error(err))
		}
		lc.Add("scripting", lifecycle.Resource(hooks.Close))
		opts = append(opts, encounter.WithNarrator(hooks))
	}

	sess := encounter.NewSession(sim, character.NewDefault(), logger, opts...)
	lc.Add("session", lifecycle.Resource(sess.Close))

	updates := make(chan encounter.Snapshot, 16)
	sess.Subscribe(updates)
	go announceSpawns(os.Stdout, updates)

	shell := command.NewShell(command.DefaultRegistry(), sess, itemReg, logger)
	lc.AddDetached("shell", &lifecycle.FuncService{
		StartFn: func() error {
			fmt.Println("Welcome, wanderer. Type help for a list of commands.")
			run(os.Stdin, os.Stdout, shell)
			return nil
		},
		StopFn: func() { sess.Unsubscribe(updates) },
	})
	logger.Info("forsaken ready", zap.Duration("startup", time.Since(start)))

	if err := lc.Run(context.Background()); err != nil {
		logger.Error("forsaken stopped with error", zap.Error(err))
	}
}

// run reads commands from in until EOF or quit.
func run(in io.Reader, out io.Writer, shell *command.Shell) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}
		text, quit := shell.Execute(scanner.Text())
		if text != "" {
			fmt.Fprintln(out, text)
		}
		if quit {
			return
		}
	}
}

// announceSpawns prints each enemy that appears in a published snapshot.
// It returns when updates is closed.
func announceSpawns(out io.Writer, updates <-chan encounter.Snapshot) {
	seen := map[string]bool{}
	for snap := range updates {
		active := make(map[string]bool, len(snap.State.ActiveEnemies))
		for _, e := range snap.State.ActiveEnemies {
			active[e.ID] = true
			if !seen[e.ID] {
				fmt.Fprintf(out, "\n%s appears! (%s)\n> ", e.Name(), e.ID)
			}
		}
		seen = active
	}
}
