// Package season owns the mutable state of one campaign: clubs, players,
// fixtures, results and the transfer-window phase. Every change goes through
// a named mutator that keeps the aggregate's invariants.
package season

import (
	"fmt"
	"time"

	"github.com/utakatalp/season-manager/internal/league"
)

// New-game defaults.
const (
	DefaultLabel       = "2025/26"
	DefaultYear        = 2025
	DefaultBudget      = 10_000_000
	DefaultTicketPrice = 35
	DefaultManagerName = "Manager"
)

// Phase is the coarse lifecycle of a season.
type Phase string

const (
	PhasePreSeason  Phase = "pre-season"
	PhaseInProgress Phase = "in-progress"
	PhaseComplete   Phase = "complete"
)

// State is the aggregate root of a campaign.
type State struct {
	Version         int                     `json:"version"`
	Label           string                  `json:"label"`
	Year            int                     `json:"year"`
	ManagerName     string                  `json:"managerName"`
	UserClubID      string                  `json:"userClubId"`
	CurrentMatchday int                     `json:"currentMatchday"`
	TransferWindow  league.TransferWindow   `json:"transferWindow"`
	Clubs           []*league.Club          `json:"clubs"`
	Players         []*league.Player        `json:"players"`
	Fixtures        [][]league.Fixture      `json:"fixtures"`
	Results         []league.MatchdayResult `json:"results"`
	Created         time.Time               `json:"created"`
	LastSaved       time.Time               `json:"lastSaved"`

	// SubstitutionsMatchday is the matchday whose substitutions were
	// already applied; 0 means none.
	SubstitutionsMatchday int `json:"substitutionsMatchday"`

	clubs   map[string]*league.Club
	players map[string]*league.Player
}

// ClubSeed is the static description of a club in the seed dataset.
type ClubSeed struct {
	ID              string
	Name            string
	ShortName       string
	Strength        int
	StadiumName     string
	StadiumCapacity int
	Budget          int64
}

// Seed is the dataset a new game is built from.
type Seed struct {
	Clubs   []ClubSeed
	Players []league.Player
}

// New builds a fresh campaign for the user managing userClubID. Fixtures are
// not generated here; the orchestrator schedules the season.
func New(seed Seed, userClubID, managerName string, now time.Time) (*State, error) {
	if len(seed.Clubs) < 2 || len(seed.Clubs)%2 != 0 {
		return nil, fmt.Errorf("seed needs an even number of clubs, got %d", len(seed.Clubs))
	}
	if managerName == "" {
		managerName = DefaultManagerName
	}

	s := &State{
		Version:        SnapshotVersion,
		Label:          DefaultLabel,
		Year:           DefaultYear,
		ManagerName:    managerName,
		UserClubID:     userClubID,
		TransferWindow: league.WindowClosed,
		Created:        now,
		LastSaved:      now,
	}

	for _, cs := range seed.Clubs {
		s.Clubs = append(s.Clubs, newClub(cs))
	}
	for i := range seed.Players {
		p := seed.Players[i]
		s.Players = append(s.Players, &p)
	}
	if err := s.reindex(); err != nil {
		return nil, err
	}
	if s.Club(userClubID) == nil {
		return nil, fmt.Errorf("unknown user club %q", userClubID)
	}
	return s, nil
}

func newClub(cs ClubSeed) *league.Club {
	budget := cs.Budget
	if budget == 0 {
		budget = DefaultBudget
	}
	return &league.Club{
		ID:        cs.ID,
		Name:      cs.Name,
		ShortName: cs.ShortName,
		Strength:  cs.Strength,
		Form:      []league.Result{},
		Budget:    budget,
		Formation: league.DefaultFormation,
		Lineup:    []string{},
		Stadium: league.Stadium{
			Name:        cs.StadiumName,
			Capacity:    cs.StadiumCapacity,
			TicketPrice: DefaultTicketPrice,
			Roof:        cs.StadiumCapacity > 40000,
			FanShop:     cs.StadiumCapacity > 30000,
			Floodlights: true,
			Parking:     cs.StadiumCapacity / 10,
			VIPBoxes:    cs.StadiumCapacity / 500,
		},
		Finances: league.Finances{
			Income:            []league.LedgerEntry{},
			Expenses:          []league.LedgerEntry{},
			IncomeByCategory:  map[league.LedgerCategory]int64{},
			ExpenseByCategory: map[league.LedgerCategory]int64{},
			TVMoney:           TVEntitlement(cs.Strength),
			SponsorIncome:     budget * 3 / 10,
		},
	}
}

// TVEntitlement is the season TV money for a club of the given strength.
func TVEntitlement(strength int) int64 {
	return 15_000_000 + int64(strength-60)*1_200_000
}

func (s *State) reindex() error {
	s.clubs = make(map[string]*league.Club, len(s.Clubs))
	for _, c := range s.Clubs {
		if _, dup := s.clubs[c.ID]; dup {
			return fmt.Errorf("duplicate club id %q", c.ID)
		}
		s.clubs[c.ID] = c
	}
	s.players = make(map[string]*league.Player, len(s.Players))
	for _, p := range s.Players {
		if _, dup := s.players[p.ID]; dup {
			return fmt.Errorf("duplicate player id %q", p.ID)
		}
		if p.ClubID != "" && s.clubs[p.ClubID] == nil {
			return fmt.Errorf("player %q references unknown club %q", p.ID, p.ClubID)
		}
		s.players[p.ID] = p
	}
	return nil
}

// Club returns the club with id, or nil.
func (s *State) Club(id string) *league.Club {
	return s.clubs[id]
}

// Player returns the player with id, or nil.
func (s *State) Player(id string) *league.Player {
	return s.players[id]
}

// UserClub returns the club the user manages.
func (s *State) UserClub() *league.Club {
	return s.clubs[s.UserClubID]
}

// ClubIDs returns club IDs in seed order.
func (s *State) ClubIDs() []string {
	ids := make([]string, len(s.Clubs))
	for i, c := range s.Clubs {
		ids[i] = c.ID
	}
	return ids
}

// ClubName resolves an ID to a display name, falling back to the ID.
func (s *State) ClubName(id string) string {
	if c := s.clubs[id]; c != nil {
		return c.Name
	}
	return id
}

// Roster returns every player affiliated with clubID.
func (s *State) Roster(clubID string) []*league.Player {
	var out []*league.Player
	for _, p := range s.Players {
		if p.ClubID == clubID {
			out = append(out, p)
		}
	}
	return out
}

// FreeAgents returns players without a club.
func (s *State) FreeAgents() []*league.Player {
	return s.Roster("")
}

// Lineup resolves a club's starting lineup to players, skipping empty slots.
func (s *State) Lineup(clubID string) []*league.Player {
	c := s.clubs[clubID]
	if c == nil {
		return nil
	}
	out := make([]*league.Player, 0, len(c.Lineup))
	for _, id := range c.Lineup {
		if p := s.players[id]; p != nil {
			out = append(out, p)
		}
	}
	return out
}

// InLineup reports whether playerID starts for clubID.
func (s *State) InLineup(clubID, playerID string) bool {
	c := s.clubs[clubID]
	if c == nil || playerID == "" {
		return false
	}
	for _, id := range c.Lineup {
		if id == playerID {
			return true
		}
	}
	return false
}

// Standings returns the sorted league table.
func (s *State) Standings() []league.TableEntry {
	return league.Standings(s.Clubs)
}

// TotalMatchdays is the number of scheduled rounds.
func (s *State) TotalMatchdays() int {
	return len(s.Fixtures)
}

// IsComplete reports whether every matchday has been played.
func (s *State) IsComplete() bool {
	return len(s.Fixtures) > 0 && s.CurrentMatchday >= len(s.Fixtures)
}

// Phase derives the lifecycle phase from the matchday counter.
func (s *State) Phase() Phase {
	switch {
	case s.IsComplete():
		return PhaseComplete
	case s.CurrentMatchday == 0:
		return PhasePreSeason
	default:
		return PhaseInProgress
	}
}

// CurrentFixtures returns the fixtures of the next matchday to be played.
func (s *State) CurrentFixtures() []league.Fixture {
	if s.CurrentMatchday < 0 || s.CurrentMatchday >= len(s.Fixtures) {
		return nil
	}
	return s.Fixtures[s.CurrentMatchday]
}

// ClubFixtures lists a club's fixtures with their matchday numbers.
func (s *State) ClubFixtures(clubID string) []league.ClubFixture {
	return league.ClubFixtures(s.Fixtures, clubID)
}

// MatchdayResult returns the results of a 1-based matchday.
func (s *State) MatchdayResult(matchday int) (league.MatchdayResult, bool) {
	for _, r := range s.Results {
		if r.Matchday == matchday {
			return r, true
		}
	}
	return league.MatchdayResult{}, false
}

// LastUserMatch returns the user's match from the most recent matchday.
func (s *State) LastUserMatch() (league.MatchResult, bool) {
	if len(s.Results) == 0 {
		return league.MatchResult{}, false
	}
	for _, m := range s.Results[len(s.Results)-1].Matches {
		if m.Involves(s.UserClubID) {
			return m, true
		}
	}
	return league.MatchResult{}, false
}
