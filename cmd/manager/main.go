// Command manager runs a football season from the terminal.
//
// Usage:
//
//	manager new --club kes --name "Alex"
//	manager advance -n 3
//	manager table
//	manager simulate --seed 2025
//	manager saves list
//	manager serve
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/utakatalp/season-manager/internal/config"
	"github.com/utakatalp/season-manager/internal/game"
	"github.com/utakatalp/season-manager/internal/season"
	"github.com/utakatalp/season-manager/internal/store"
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:           "manager",
		Short:         "Football season manager",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	var slot string
	root.PersistentFlags().StringVar(&slot, "slot", "", "Save slot (defaults to SEASON_SAVE_SLOT)")

	root.AddCommand(newCmd(&slot))
	root.AddCommand(advanceCmd(&slot))
	root.AddCommand(tableCmd(&slot))
	root.AddCommand(scheduleCmd(&slot))
	root.AddCommand(resultsCmd(&slot))
	root.AddCommand(simulateCmd())
	root.AddCommand(savesCmd())
	root.AddCommand(serveCmd(&slot))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// env bundles what every stored-season command needs.
type env struct {
	cfg    config.Config
	logger *slog.Logger
	store  *store.Store
}

func (e *env) slot(flag string) string {
	if flag != "" {
		return flag
	}
	return e.cfg.SaveSlot
}

// run loads config, opens the store and calls fn with a signal-aware context.
func run(fn func(ctx context.Context, e *env) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	st, err := store.Open(ctx, cfg.DBDriver, cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.Migrate(ctx); err != nil {
		return err
	}
	return fn(ctx, &env{cfg: cfg, logger: logger, store: st})
}

// load resumes the season in slot with autosave back into the same slot.
func (e *env) load(ctx context.Context, slot string) (*game.Manager, error) {
	st, err := e.store.LoadState(ctx, slot)
	if errors.Is(err, store.ErrSlotNotFound) {
		return nil, fmt.Errorf("no season in slot %q, start one with `manager new --club ID`", slot)
	}
	if errors.Is(err, season.ErrIncompatibleSnapshot) {
		return nil, fmt.Errorf("slot %q held an incompatible save and was cleared: %w", slot, err)
	}
	if err != nil {
		return nil, err
	}
	return game.NewManager(st, game.NewRNG(e.cfg.Seed), game.Options{
		Logger: e.logger,
		Saver:  e.store,
		Slot:   slot,
	}), nil
}
