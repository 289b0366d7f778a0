package season

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/utakatalp/season-manager/internal/league"
)

var testNow = time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

// testSeed builds two clubs with a keeper, four defenders, four midfielders,
// two strikers and two reserves each, plus one free agent.
func testSeed() Seed {
	roles := []league.Position{
		league.GK, league.CB, league.CB, league.LB, league.RB,
		league.CM, league.CM, league.LM, league.RM,
		league.ST, league.ST, league.GK, league.CDM,
	}
	seed := Seed{Clubs: []ClubSeed{
		{ID: "ams", Name: "Amsel FC", ShortName: "AMS", Strength: 80, StadiumName: "Nest", StadiumCapacity: 50000},
		{ID: "bru", Name: "Brunnen SV", ShortName: "BRU", Strength: 70, StadiumName: "Quelle", StadiumCapacity: 20000, Budget: 5_000_000},
	}}
	for _, c := range seed.Clubs {
		for i, pos := range roles {
			seed.Players = append(seed.Players, league.Player{
				ID:       fmt.Sprintf("%s-%02d", c.ID, i),
				Name:     fmt.Sprintf("%s Player %d", c.Name, i),
				Position: pos,
				Age:      25,
				Speed:    60, Shooting: 60, Passing: 60, Defense: 60, Goalkeeper: 60,
				Overall: 60, Fitness: 90, Morale: 70,
				MarketValue: 1_000_000, Salary: 10_000,
				ClubID: c.ID,
			})
		}
	}
	seed.Players = append(seed.Players, league.Player{ID: "free-01", Name: "Free Agent", Position: league.ST, Overall: 65, Fitness: 90})
	return seed
}

func newTestState(t *testing.T) *State {
	t.Helper()
	s, err := New(testSeed(), "ams", "", testNow)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestNewDefaults(t *testing.T) {
	s := newTestState(t)

	if s.ManagerName != DefaultManagerName || s.Label != DefaultLabel || s.Year != DefaultYear {
		t.Fatalf("defaults not applied: %+v", s)
	}
	if s.TransferWindow != league.WindowClosed || s.Phase() != PhasePreSeason {
		t.Fatalf("window %s phase %s", s.TransferWindow, s.Phase())
	}

	ams := s.Club("ams")
	if ams.Budget != DefaultBudget {
		t.Fatalf("budget %d, want default", ams.Budget)
	}
	if !ams.Stadium.Roof || !ams.Stadium.FanShop || ams.Stadium.Parking != 5000 || ams.Stadium.VIPBoxes != 100 {
		t.Fatalf("stadium %+v", ams.Stadium)
	}
	if ams.Finances.TVMoney != 15_000_000+20*1_200_000 || ams.Finances.SponsorIncome != 3_000_000 {
		t.Fatalf("entitlements %+v", ams.Finances)
	}

	bru := s.Club("bru")
	if bru.Stadium.Roof || bru.Stadium.FanShop || bru.Finances.SponsorIncome != 1_500_000 {
		t.Fatalf("small club %+v", bru)
	}
	if len(s.Roster("ams")) != 13 || len(s.FreeAgents()) != 1 {
		t.Fatalf("rosters %d/%d", len(s.Roster("ams")), len(s.FreeAgents()))
	}
}

func TestNewRejectsBadSeeds(t *testing.T) {
	odd := testSeed()
	odd.Clubs = odd.Clubs[:1]

	dupClub := testSeed()
	dupClub.Clubs[1].ID = "ams"

	dupPlayer := testSeed()
	dupPlayer.Players[1].ID = dupPlayer.Players[0].ID

	orphan := testSeed()
	orphan.Players[0].ClubID = "nowhere"

	tests := []struct {
		name string
		seed Seed
		user string
	}{
		{"odd club count", odd, "ams"},
		{"duplicate club", dupClub, "ams"},
		{"duplicate player", dupPlayer, "ams"},
		{"orphan player", orphan, "ams"},
		{"unknown user club", testSeed(), "zzz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.seed, tt.user, "", testNow); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestSetFormationClearsLineup(t *testing.T) {
	s := newTestState(t)
	s.SetLineup("ams", []string{"ams-00", "ams-01"})

	if out := s.SetFormation("ams", "9-0-1"); out.Success || out.Reason != ReasonInvalidFormation {
		t.Fatalf("unknown formation accepted: %+v", out)
	}
	if len(s.Club("ams").Lineup) != 2 {
		t.Fatal("rejected formation change touched the lineup")
	}
	if out := s.SetFormation("ams", "4-3-3"); !out.Success {
		t.Fatalf("SetFormation: %+v", out)
	}
	if c := s.Club("ams"); c.Formation != "4-3-3" || len(c.Lineup) != 0 {
		t.Fatalf("formation %s lineup %v", c.Formation, c.Lineup)
	}
}

func TestSetLineupSlot(t *testing.T) {
	tests := []struct {
		name     string
		slot     int
		playerID string
		want     Reason
	}{
		{"keeper in goal", 0, "ams-00", ""},
		{"slot too high", 11, "ams-00", ReasonInvalidSlot},
		{"negative slot", -1, "ams-00", ReasonInvalidSlot},
		{"unknown player", 1, "ghost", ReasonPlayerNotFound},
		{"other club", 1, "bru-01", ReasonNotOnRoster},
		{"free agent", 9, "free-01", ReasonNotOnRoster},
		{"striker in goal", 0, "ams-09", ReasonIncompatiblePosition},
		{"midfielder at the back", 1, "ams-05", ReasonIncompatiblePosition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState(t)
			out := s.SetLineupSlot("ams", tt.slot, tt.playerID)
			if out.Success != (tt.want == "") || out.Reason != tt.want {
				t.Fatalf("got %+v, want reason %q", out, tt.want)
			}
		})
	}
}

func TestSetLineupSlotMovesPlayer(t *testing.T) {
	s := newTestState(t)
	// 4-4-2: slots 2 and 3 are both CB.
	if out := s.SetLineupSlot("ams", 3, "ams-01"); !out.Success {
		t.Fatalf("slot 3: %+v", out)
	}
	if got := s.Club("ams").Lineup; len(got) != 4 || got[0] != "" || got[3] != "ams-01" {
		t.Fatalf("lineup %q", got)
	}
	if out := s.SetLineupSlot("ams", 2, "ams-01"); !out.Success {
		t.Fatalf("slot 2: %+v", out)
	}
	if got := s.Club("ams").Lineup; len(got) != 3 || got[2] != "ams-01" {
		t.Fatalf("player not moved: %q", got)
	}
	if out := s.ClearLineupSlot("ams", 2); !out.Success || len(s.Club("ams").Lineup) != 0 {
		t.Fatalf("clear: %+v lineup %q", out, s.Club("ams").Lineup)
	}
}

func TestSetLineup(t *testing.T) {
	s := newTestState(t)
	if out := s.SetLineup("ams", []string{"ams-00", "bru-00"}); out.Success {
		t.Fatal("foreign player accepted")
	}
	ids := make([]string, 12)
	for i := range ids {
		ids[i] = fmt.Sprintf("ams-%02d", i)
	}
	if out := s.SetLineup("ams", ids); out.Success {
		t.Fatal("twelve players accepted")
	}
	if out := s.SetLineup("ams", ids[:11]); !out.Success {
		t.Fatalf("SetLineup: %+v", out)
	}
	if len(s.Lineup("ams")) != 11 || !s.InLineup("ams", "ams-10") || s.InLineup("ams", "ams-11") {
		t.Fatalf("lineup %v", s.Club("ams").Lineup)
	}
}

func TestSetTicketPrice(t *testing.T) {
	tests := []struct {
		price int
		ok    bool
	}{
		{9, false}, {10, true}, {35, true}, {150, true}, {151, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.price), func(t *testing.T) {
			s := newTestState(t)
			out := s.SetTicketPrice("ams", tt.price)
			if out.Success != tt.ok {
				t.Fatalf("price %d: %+v", tt.price, out)
			}
			want := DefaultTicketPrice
			if tt.ok {
				want = tt.price
			}
			if got := s.Club("ams").Stadium.TicketPrice; got != want {
				t.Fatalf("ticket price %d, want %d", got, want)
			}
		})
	}
}

func TestTransferPlayer(t *testing.T) {
	s := newTestState(t)
	s.SetLineup("bru", []string{"bru-00", "bru-01", "bru-02"})

	if !s.TransferPlayer("bru-01", "ams", 2_000_000) {
		t.Fatal("transfer failed")
	}
	p := s.Player("bru-01")
	if p.ClubID != "ams" || p.ContractUntil != DefaultYear+ContractYears {
		t.Fatalf("player %+v", p)
	}
	if s.Club("ams").Budget != DefaultBudget-2_000_000 || s.Club("bru").Budget != 7_000_000 {
		t.Fatalf("budgets %d/%d", s.Club("ams").Budget, s.Club("bru").Budget)
	}
	if s.InLineup("bru", "bru-01") {
		t.Fatal("player still in seller lineup")
	}
	if got := s.Club("bru").Lineup; len(got) != 3 || got[1] != "" {
		t.Fatalf("seller lineup %q", got)
	}
	if s.Club("ams").Finances.ExpenseByCategory[league.CategoryTransferOut] != 2_000_000 ||
		s.Club("bru").Finances.IncomeByCategory[league.CategoryTransferIn] != 2_000_000 {
		t.Fatal("transfer not in ledger")
	}

	if s.TransferPlayer("ghost", "ams", 1) || s.TransferPlayer("bru-02", "nowhere", 1) {
		t.Fatal("transfer with missing references succeeded")
	}
}

func TestRecordMatchdayAndPhase(t *testing.T) {
	s := newTestState(t)
	s.Schedule(league.GenerateFullSeason(s.ClubIDs()))
	if s.TotalMatchdays() != 2 || s.Phase() != PhasePreSeason {
		t.Fatalf("matchdays %d phase %s", s.TotalMatchdays(), s.Phase())
	}

	r := s.RecordMatchday([]league.MatchResult{{Home: "ams", Away: "bru", HomeGoals: 1}})
	if r.Matchday != 1 || s.CurrentMatchday != 1 || s.Phase() != PhaseInProgress {
		t.Fatalf("after first: %+v phase %s", r, s.Phase())
	}
	if m, ok := s.LastUserMatch(); !ok || m.HomeGoals != 1 {
		t.Fatalf("LastUserMatch %+v %v", m, ok)
	}
	s.RecordMatchday(nil)
	if !s.IsComplete() || s.Phase() != PhaseComplete || s.CurrentFixtures() != nil {
		t.Fatal("season not complete")
	}
	if _, ok := s.MatchdayResult(3); ok {
		t.Fatal("matchday 3 should not exist")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := newTestState(t)
	s.Schedule(league.GenerateFullSeason(s.ClubIDs()))
	s.SetLineup("ams", []string{"ams-00"})

	data, err := s.MarshalSnapshot()
	if err != nil {
		t.Fatal(err)
	}
	got, err := UnmarshalSnapshot(data)
	if err != nil {
		t.Fatalf("UnmarshalSnapshot: %v", err)
	}
	if got.UserClub() == nil || got.Player("ams-00") == nil || got.TotalMatchdays() != 2 {
		t.Fatal("lookups not rebuilt")
	}
	if !got.InLineup("ams", "ams-00") || !got.Created.Equal(testNow) {
		t.Fatal("state not preserved")
	}
}

func TestUnmarshalSnapshotRejectsVersion(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing", `{"userClubId":"ams"}`},
		{"old", `{"version":1,"userClubId":"ams"}`},
		{"future", `{"version":99}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalSnapshot([]byte(tt.data))
			if !errors.Is(err, ErrIncompatibleSnapshot) {
				t.Fatalf("got %v, want ErrIncompatibleSnapshot", err)
			}
		})
	}
	if _, err := UnmarshalSnapshot([]byte("not json")); err == nil || errors.Is(err, ErrIncompatibleSnapshot) {
		t.Fatalf("garbage: %v", err)
	}
}

func TestBus(t *testing.T) {
	b := NewBus()
	var got []EventKind
	unsubscribe := b.Subscribe(EventMatchdayCompleted, func(e Event) { got = append(got, e.Kind) })
	b.Subscribe(EventStadiumUpgraded, func(e Event) { got = append(got, e.Kind) })

	b.Publish(Event{Kind: EventMatchdayCompleted, Payload: MatchdayCompletedPayload{Matchday: 1}})
	b.Publish(Event{Kind: EventStateChanged})
	unsubscribe()
	b.Publish(Event{Kind: EventMatchdayCompleted})
	b.Publish(Event{Kind: EventStadiumUpgraded})

	want := []EventKind{EventMatchdayCompleted, EventStadiumUpgraded}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	var nilBus *Bus
	nilBus.Publish(Event{Kind: EventStateChanged})
}
