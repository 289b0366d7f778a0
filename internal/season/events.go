package season

import (
	"sync"

	"github.com/utakatalp/season-manager/internal/league"
)

// EventKind identifies a notification emitted by the core.
type EventKind string

const (
	EventStateInitialized  EventKind = "state_initialized"
	EventStateChanged      EventKind = "state_changed"
	EventMatchdayCompleted EventKind = "matchday_completed"
	EventTransferCompleted EventKind = "transfer_completed"
	EventStadiumUpgraded   EventKind = "stadium_upgraded"
)

// Event is a notification with a kind-specific payload.
type Event struct {
	Kind    EventKind
	Payload any
}

// StateInitializedPayload announces a new game.
type StateInitializedPayload struct {
	UserClubID string
	Label      string
}

// StateChangedPayload names the entity and field that changed, e.g.
// ClubID "c01" and Field "stadium.ticketPrice".
type StateChangedPayload struct {
	ClubID   string
	PlayerID string
	Field    string
}

// MatchdayCompletedPayload carries every result of a played matchday.
type MatchdayCompletedPayload struct {
	Matchday int
	Matches  []league.MatchResult
}

// TransferCompletedPayload describes a completed transfer. FromClub is empty for free agents.
type TransferCompletedPayload struct {
	PlayerID string
	FromClub string
	ToClub   string
	Fee      int64
}

// StadiumUpgradedPayload names the upgrade bought and what it cost.
type StadiumUpgradedPayload struct {
	ClubID  string
	Upgrade string
	Cost    int64
}

// Handler receives published events.
type Handler func(Event)

// Bus dispatches events synchronously to subscribers in subscription order.
type Bus struct {
	mu       sync.Mutex
	nextID   int
	handlers map[EventKind][]subscription
}

type subscription struct {
	id int
	fn Handler
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[EventKind][]subscription)}
}

// Subscribe registers fn for kind and returns a function that removes it.
func (b *Bus) Subscribe(kind EventKind, fn Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[kind] = append(b.handlers[kind], subscription{id: id, fn: fn})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.handlers[kind]
		for i, s := range subs {
			if s.id == id {
				b.handlers[kind] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers e to every handler subscribed to its kind. Handlers may
// subscribe or unsubscribe while being called.
func (b *Bus) Publish(e Event) {
	if b == nil {
		return
	}
	b.mu.Lock()
	subs := append([]subscription(nil), b.handlers[e.Kind]...)
	b.mu.Unlock()

	for _, s := range subs {
		s.fn(e)
	}
}
