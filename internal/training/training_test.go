package training

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/utakatalp/season-manager/internal/league"
	"github.com/utakatalp/season-manager/internal/season"
)

func newState(t *testing.T, budget int64) *season.State {
	t.Helper()
	seed := season.Seed{
		Clubs: []season.ClubSeed{
			{ID: "u", Name: "User FC", Strength: 70, StadiumCapacity: 20000, Budget: budget},
			{ID: "o", Name: "Other FC", Strength: 70, StadiumCapacity: 20000},
		},
		Players: []league.Player{
			{ID: "st", ShortName: "Striker", ClubID: "u", Position: league.ST, Age: 25, Speed: 70, Shooting: 70, Passing: 70, Defense: 70, Fitness: 90, Morale: 70},
			{ID: "gk", ShortName: "Keeper", ClubID: "u", Position: league.GK, Age: 25, Goalkeeper: 70, Fitness: 90, Morale: 70},
			{ID: "hurt", ShortName: "Hurt", ClubID: "u", Position: league.CB, Age: 25, Fitness: 90, Morale: 50, Injured: true, InjuryDays: 2},
			{ID: "away", ShortName: "Away", ClubID: "o", Position: league.CB, Fitness: 90},
		},
	}
	st, err := season.New(seed, "u", "", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	return st
}

func mustType(t *testing.T, id string) Type {
	t.Helper()
	tt, ok := Lookup(id)
	if !ok {
		t.Fatalf("no training type %q", id)
	}
	return tt
}

func TestCatalog(t *testing.T) {
	if len(Types()) != 7 {
		t.Fatalf("%d training types", len(Types()))
	}
	if _, ok := Lookup("juggling"); ok {
		t.Fatal("unknown type found")
	}
	m := mustType(t, "morale")
	if !m.Team || m.Cost != 200_000 {
		t.Fatalf("morale type %+v", m)
	}
}

func TestSuccessChance(t *testing.T) {
	speed := Type{Attribute: league.AttrSpeed, BaseChance: 0.50}
	fitness := Type{Attribute: league.AttrFitness, BaseChance: 0.80}
	tests := []struct {
		name  string
		age   int
		value int
		typ   Type
		want  float64
	}{
		{"teen", 19, 50, speed, 0.65},
		{"young", 22, 50, speed, 0.60},
		{"prime", 26, 50, speed, 0.50},
		{"late twenties", 29, 50, speed, 0.45},
		{"veteran", 33, 50, speed, 0.35},
		{"value 70", 26, 70, speed, 0.45},
		{"value 85", 26, 85, speed, 0.40},
		{"value 95 veteran", 33, 95, speed, 0.15},
		{"fitness ignores value", 19, 95, fitness, 0.95},
		{"floor", 35, 95, Type{Attribute: league.AttrSpeed, BaseChance: 0.2}, 0.10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &league.Player{Age: tt.age, Speed: tt.value, Fitness: tt.value}
			if got := SuccessChance(p, tt.typ); math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("chance %.3f, want %.3f", got, tt.want)
			}
		})
	}
}

func TestCanTrainGateOrder(t *testing.T) {
	speed := mustType(t, "speed")
	rich := &league.Club{Budget: 1_000_000}
	tests := []struct {
		name   string
		player league.Player
		typ    Type
		club   *league.Club
		want   season.Reason
	}{
		{"injured beats tired", league.Player{Injured: true, Fitness: 5, Position: league.ST}, speed, rich, season.ReasonInjured},
		{"tired", league.Player{Fitness: 19, Position: league.ST}, speed, rich, season.ReasonTooTired},
		{"tired may do fitness", league.Player{Fitness: 5, Position: league.ST}, mustType(t, "fitness"), rich, ""},
		{"already trained", league.Player{Fitness: 80, TrainedThisMatchday: true, Position: league.GK}, mustType(t, "goalkeeper"), &league.Club{}, season.ReasonAlreadyTrained},
		{"wrong position", league.Player{Fitness: 80, Position: league.ST}, mustType(t, "goalkeeper"), &league.Club{}, season.ReasonWrongPosition},
		{"no money", league.Player{Fitness: 80, Position: league.ST, Speed: 99}, speed, &league.Club{Budget: 99_999}, season.ReasonInsufficientFunds},
		{"maxed", league.Player{Fitness: 80, Position: league.ST, Speed: 99}, speed, rich, season.ReasonAttributeMaxed},
		{"morale not capped", league.Player{Fitness: 80, Position: league.ST, Morale: 99}, mustType(t, "morale"), rich, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.player
			out := CanTrain(&p, tt.typ, tt.club)
			if out.Success != (tt.want == "") || out.Reason != tt.want {
				t.Fatalf("got %+v, want %q", out, tt.want)
			}
		})
	}
}

func TestTrainChargesOnEveryRoll(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		st := newState(t, 1_000_000)
		r := NewResolver(rand.New(rand.NewSource(seed)))
		p := st.Player("st")
		before := p.Speed

		res := r.Train(st, "st", "speed")
		if res.Reason != "" && res.Reason != season.ReasonTrainingFailed {
			t.Fatalf("seed %d: unexpected rejection %+v", seed, res)
		}
		if st.UserClub().Budget != 900_000 {
			t.Fatalf("seed %d: budget %d", seed, st.UserClub().Budget)
		}
		if st.UserClub().Finances.ExpenseByCategory[league.CategoryTraining] != 100_000 {
			t.Fatalf("seed %d: training not in ledger", seed)
		}
		if p.Fitness != 86 || !p.TrainedThisMatchday {
			t.Fatalf("seed %d: fitness %d trained %v", seed, p.Fitness, p.TrainedThisMatchday)
		}
		if res.Success {
			if res.Gain < 1 || res.Gain > 2 || p.Speed != before+res.Gain {
				t.Fatalf("seed %d: gain %d speed %d", seed, res.Gain, p.Speed)
			}
			want := int(math.Round(float64(p.Speed+p.Shooting+p.Passing+p.Defense) / 4))
			if p.Overall != want {
				t.Fatalf("seed %d: overall %d, want %d", seed, p.Overall, want)
			}
		} else if p.Speed != before || res.Gain != 0 {
			t.Fatalf("seed %d: failed roll changed speed", seed)
		}
	}
}

func TestTrainTwiceInOneMatchday(t *testing.T) {
	st := newState(t, 1_000_000)
	r := NewResolver(rand.New(rand.NewSource(7)))
	r.Train(st, "st", "passing")
	budget := st.UserClub().Budget

	res := r.Train(st, "st", "shooting")
	if res.Success || res.Reason != season.ReasonAlreadyTrained {
		t.Fatalf("second session: %+v", res)
	}
	if st.UserClub().Budget != budget {
		t.Fatal("rejected session was charged")
	}

	st.ResetTrainingFlags()
	if res := r.Train(st, "st", "shooting"); res.Reason == season.ReasonAlreadyTrained {
		t.Fatal("flag survived the reset")
	}
}

func TestTrainNeverExceedsCap(t *testing.T) {
	st := newState(t, 1_000_000_000)
	r := NewResolver(rand.New(rand.NewSource(3)))
	p := st.Player("st")
	p.Speed = 97
	for i := 0; i < 200; i++ {
		p.Fitness = 90
		st.ResetTrainingFlags()
		res := r.Train(st, "st", "speed")
		if p.Speed > league.MaxAttribute {
			t.Fatalf("speed %d after %d sessions", p.Speed, i)
		}
		if p.Speed == league.MaxAttribute && i > 0 && res.Reason == season.ReasonAttributeMaxed {
			return
		}
	}
	t.Fatalf("speed stuck at %d", p.Speed)
}

func TestTeamMorale(t *testing.T) {
	st := newState(t, 1_000_000)
	r := NewResolver(rand.New(rand.NewSource(11)))

	res := r.Train(st, "gk", "morale")
	if !res.Success || res.Gain < 2 || res.Gain > 5 {
		t.Fatalf("team session %+v", res)
	}
	if st.Player("st").Morale != 70+res.Gain || st.Player("gk").Morale != 70+res.Gain {
		t.Fatal("squad morale not raised")
	}
	if st.Player("hurt").Morale != 50 || st.Player("away").Morale != 0 {
		t.Fatal("injured or foreign player affected")
	}
	if !st.Player("gk").TrainedThisMatchday || st.Player("st").TrainedThisMatchday {
		t.Fatal("only the session leader is marked as trained")
	}
	if st.Player("gk").Fitness != 87 {
		t.Fatalf("leader fitness %d", st.Player("gk").Fitness)
	}
}

func TestTrainRejectsBadInput(t *testing.T) {
	st := newState(t, 1_000_000)
	r := NewResolver(rand.New(rand.NewSource(1)))
	tests := []struct {
		player, typ string
		want        season.Reason
	}{
		{"ghost", "speed", season.ReasonPlayerNotFound},
		{"away", "speed", season.ReasonNotOnRoster},
		{"st", "juggling", season.ReasonInvalidType},
		{"hurt", "speed", season.ReasonInjured},
	}
	for _, tt := range tests {
		if res := r.Train(st, tt.player, tt.typ); res.Success || res.Reason != tt.want {
			t.Errorf("%s/%s: %+v, want %s", tt.player, tt.typ, res, tt.want)
		}
	}
	if st.UserClub().Budget != 1_000_000 {
		t.Fatal("rejected sessions were charged")
	}
}
