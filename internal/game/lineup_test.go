package game

import (
	"context"
	"fmt"
	"testing"

	"github.com/utakatalp/season-manager/internal/league"
)

func squad(positions ...league.Position) []*league.Player {
	out := make([]*league.Player, len(positions))
	for i, pos := range positions {
		out[i] = &league.Player{ID: fmt.Sprintf("p%02d", i), Position: pos, Overall: 50 + i, Fitness: 90, Morale: 70}
	}
	return out
}

func TestPickLineup(t *testing.T) {
	t.Run("balanced squad", func(t *testing.T) {
		roster := squad(
			league.GK, league.GK,
			league.CB, league.CB, league.LB, league.RB, league.CB,
			league.CM, league.CM, league.LM, league.RM, league.CDM,
			league.ST, league.ST, league.LW,
		)
		got := PickLineup(roster)
		if len(got) != league.LineupSize {
			t.Fatalf("lineup %v", got)
		}
		if got[0] != "p01" {
			t.Fatalf("best keeper should start first, got %s", got[0])
		}
		seen := map[string]bool{}
		for _, id := range got {
			if seen[id] {
				t.Fatalf("duplicate %s in %v", id, got)
			}
			seen[id] = true
		}
		// Best two attackers: LW (p14) and ST (p13).
		if !seen["p14"] || !seen["p13"] || seen["p12"] {
			t.Fatalf("attackers not chosen by rating: %v", got)
		}
	})

	t.Run("skips injured and tired", func(t *testing.T) {
		roster := squad(league.GK, league.CB, league.CB, league.CB, league.CB,
			league.CM, league.CM, league.CM, league.CM, league.ST, league.ST, league.ST, league.GK)
		roster[12].Injured = true
		roster[11].Fitness = 30
		got := PickLineup(roster)
		for _, id := range got {
			if id == "p12" || id == "p11" {
				t.Fatalf("%s should not start: %v", id, got)
			}
		}
		if got[0] != "p00" {
			t.Fatalf("fit keeper should start, got %v", got)
		}
	})

	t.Run("fills from best remaining", func(t *testing.T) {
		// No midfielders or attackers at all.
		roster := squad(league.GK, league.CB, league.CB, league.CB, league.CB, league.CB,
			league.CB, league.CB, league.CB, league.CB, league.CB, league.CB)
		got := PickLineup(roster)
		if len(got) != league.LineupSize || got[0] != "p00" {
			t.Fatalf("lineup %v", got)
		}
		if got[len(got)-1] == "p01" {
			t.Fatal("lowest rated defender should be left out")
		}
	})

	t.Run("short squad", func(t *testing.T) {
		got := PickLineup(squad(league.GK, league.CB, league.ST))
		if len(got) != 3 {
			t.Fatalf("lineup %v", got)
		}
	})
}

func TestEffectiveStrength(t *testing.T) {
	lineup := func(overall, fitness, morale int) []*league.Player {
		out := make([]*league.Player, league.LineupSize)
		for i := range out {
			out[i] = &league.Player{Overall: overall, Fitness: fitness, Morale: morale}
		}
		return out
	}

	if got := EffectiveStrength(77, lineup(80, 100, 100)[:10]); got != 77 {
		t.Fatalf("short lineup %d, want base strength", got)
	}
	// 80 × 1.0 × (0.8 + 100/500)
	if got := EffectiveStrength(0, lineup(80, 100, 100)); got != 80 {
		t.Fatalf("full fitness %d", got)
	}
	prev := EffectiveStrength(0, lineup(80, 100, 70))
	for fitness := 99; fitness >= 0; fitness-- {
		got := EffectiveStrength(0, lineup(80, fitness, 70))
		if got < 0 || got > prev {
			t.Fatalf("fitness %d: strength %d after %d", fitness, got, prev)
		}
		prev = got
	}
	if prev != 0 {
		t.Fatalf("zero fitness strength %d", prev)
	}
}

func TestAutoLineupUser(t *testing.T) {
	m := newGame(t, Options{})
	m.State().SetLineup("kes", nil)
	if out := m.AutoLineup(); !out.Success || len(m.State().Lineup("kes")) != league.LineupSize {
		t.Fatalf("auto lineup %+v", out)
	}
	if m.EffectiveStrength("kes") <= 0 || m.EffectiveStrength("nobody") != 0 {
		t.Fatal("effective strength lookup")
	}
}

func TestUserLineupIsKept(t *testing.T) {
	m := newGame(t, Options{})
	st := m.State()
	st.SetFormation("kes", "4-3-3")
	keeper := ""
	for _, p := range st.Roster("kes") {
		if p.Position == league.GK {
			keeper = p.ID
			break
		}
	}
	if out := st.SetLineupSlot("kes", 0, keeper); !out.Success {
		t.Fatalf("slot: %+v", out)
	}
	m.AdvanceMatchday(context.Background())
	if got := st.Club("kes").Lineup; len(got) != 1 || got[0] != keeper {
		t.Fatalf("user lineup replaced: %v", got)
	}
	if _, ok := st.LastUserMatch(); !ok {
		t.Fatal("user club did not play")
	}
}

func TestAvailableDropsInjured(t *testing.T) {
	lineup := []*league.Player{{ID: "a"}, {ID: "b", Injured: true}, {ID: "c"}}
	got := available(lineup)
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Fatalf("available = %v", got)
	}
	if len(lineup) != 3 || lineup[1].ID != "b" {
		t.Fatal("input lineup modified")
	}
}

func TestEffectiveStrengthSkipsInjuredStarters(t *testing.T) {
	m := newGame(t, Options{})
	st := m.State()
	club := st.Club("kes")
	if m.EffectiveStrength("kes") == 0 {
		t.Fatal("full lineup rated 0")
	}
	st.Player(club.Lineup[0]).Injured = true
	if got := m.EffectiveStrength("kes"); got != club.Strength {
		t.Fatalf("strength with an injured starter %d, want base %d", got, club.Strength)
	}
}
