// Package game drives a season: it schedules fixtures, advances matchdays,
// picks lineups for AI clubs and exposes every user action as a single entry
// point that validates, mutates, notifies and reports an outcome.
package game

import (
	"context"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/utakatalp/season-manager/internal/league"
	"github.com/utakatalp/season-manager/internal/season"
	"github.com/utakatalp/season-manager/internal/training"
	"github.com/utakatalp/season-manager/internal/transfer"
)

// AutosaveSlot is the slot written after every matchday.
const AutosaveSlot = "auto"

// Saver persists snapshots of a running season.
type Saver interface {
	SaveState(ctx context.Context, slot string, st *season.State) error
}

// Options configures a Manager. Zero values are usable: no saver means no
// autosave, a nil logger discards output.
type Options struct {
	Logger *slog.Logger
	Saver  Saver
	Bus    *season.Bus
	Slot   string
}

// Manager owns one season and the components that mutate it. It is not safe
// for concurrent use.
type Manager struct {
	state     *season.State
	rng       *rand.Rand
	forecast  *rand.Rand
	sim       *league.Simulator
	trainer   *training.Resolver
	transfers *transfer.Negotiator
	bus       *season.Bus
	saver     Saver
	slot      string
	logger    *slog.Logger
}

// NewRNG returns a random source for seed. Seed 0 picks a time-based seed.
func NewRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// NewManager wraps an existing state, e.g. one loaded from a save slot.
func NewManager(st *season.State, rng *rand.Rand, opts Options) *Manager {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	bus := opts.Bus
	if bus == nil {
		bus = season.NewBus()
	}
	slot := opts.Slot
	if slot == "" {
		slot = AutosaveSlot
	}
	return &Manager{
		state:       st,
		rng:         rng,
		forecast:    rand.New(rand.NewSource(rng.Int63())),
		sim:         league.NewSimulator(rng),
		trainer:     training.NewResolver(rng),
		transfers:   transfer.NewNegotiator(rng),
		bus:         bus,
		saver:       opts.Saver,
		slot:        slot,
		logger:      logger,
	}
}

// NewGame creates a season from seed with the user managing userClubID. The
// fixture list is generated, the summer window opens and every club gets an
// automatic lineup.
func NewGame(seed season.Seed, userClubID, managerName string, rng *rand.Rand, opts Options) (*Manager, error) {
	st, err := season.New(seed, userClubID, managerName, time.Now())
	if err != nil {
		return nil, err
	}
	m := NewManager(st, rng, opts)

	st.Schedule(league.GenerateFullSeason(st.ClubIDs()))
	st.SetTransferWindow(league.WindowSummer)
	for _, id := range st.ClubIDs() {
		m.autoLineup(id)
	}

	m.logger.Info("New game created",
		"club", userClubID,
		"clubs", len(st.Clubs),
		"players", len(st.Players),
		"matchdays", st.TotalMatchdays(),
	)
	m.bus.Publish(season.Event{
		Kind:    season.EventStateInitialized,
		Payload: season.StateInitializedPayload{UserClubID: userClubID, Label: st.Label},
	})
	return m, nil
}

// State exposes the season for read access.
func (m *Manager) State() *season.State { return m.state }

// Bus is where the manager publishes notifications.
func (m *Manager) Bus() *season.Bus { return m.bus }

func (m *Manager) changed(clubID, playerID, field string) {
	m.bus.Publish(season.Event{
		Kind:    season.EventStateChanged,
		Payload: season.StateChangedPayload{ClubID: clubID, PlayerID: playerID, Field: field},
	})
}

// Save writes the season to slot through the configured saver.
func (m *Manager) Save(ctx context.Context, slot string) error {
	if m.saver == nil {
		return nil
	}
	m.state.LastSaved = time.Now()
	return m.saver.SaveState(ctx, slot, m.state)
}
