// Package training resolves training sessions for the user's squad.
package training

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/utakatalp/season-manager/internal/league"
	"github.com/utakatalp/season-manager/internal/season"
)

// Session constraints.
const (
	MinFitnessToTrain = 20
	FitnessFloor      = 10
	MinChance         = 0.10
	MaxChance         = 0.95
)

// Type describes one kind of training session.
type Type struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Attribute   league.Attribute  `json:"attribute"`
	Cost        int64             `json:"cost"`
	FitnessLoss int               `json:"fitnessLoss"`
	BaseChance  float64           `json:"baseChance"`
	MinGain     int               `json:"minGain"`
	MaxGain     int               `json:"maxGain"`
	Positions   []league.Position `json:"positions,omitempty"` // empty = any
	Team        bool              `json:"team,omitempty"`
}

var types = []Type{
	{ID: "speed", Name: "Speed", Attribute: league.AttrSpeed, Cost: 100_000, FitnessLoss: 4, BaseChance: 0.50, MinGain: 1, MaxGain: 2},
	{ID: "shooting", Name: "Shooting", Attribute: league.AttrShooting, Cost: 120_000, FitnessLoss: 3, BaseChance: 0.45, MinGain: 1, MaxGain: 2},
	{ID: "passing", Name: "Passing", Attribute: league.AttrPassing, Cost: 100_000, FitnessLoss: 3, BaseChance: 0.50, MinGain: 1, MaxGain: 2},
	{ID: "defense", Name: "Defending", Attribute: league.AttrDefense, Cost: 100_000, FitnessLoss: 4, BaseChance: 0.45, MinGain: 1, MaxGain: 2},
	{ID: "goalkeeper", Name: "Goalkeeping", Attribute: league.AttrGoalkeeper, Cost: 80_000, FitnessLoss: 3, BaseChance: 0.50, MinGain: 1, MaxGain: 2, Positions: []league.Position{league.GK}},
	{ID: "fitness", Name: "Fitness", Attribute: league.AttrFitness, Cost: 50_000, FitnessLoss: 0, BaseChance: 0.80, MinGain: 5, MaxGain: 10},
	{ID: "morale", Name: "Team session", Attribute: league.AttrMorale, Cost: 200_000, FitnessLoss: 3, BaseChance: 0.90, MinGain: 2, MaxGain: 5, Team: true},
}

// Types returns the training catalog.
func Types() []Type {
	out := make([]Type, len(types))
	copy(out, types)
	return out
}

// Lookup finds a training type by id.
func Lookup(id string) (Type, bool) {
	for _, t := range types {
		if t.ID == id {
			return t, true
		}
	}
	return Type{}, false
}

func (t Type) capped() bool {
	return t.Attribute != league.AttrFitness && t.Attribute != league.AttrMorale
}

// SuccessChance is the probability that t improves p.
func SuccessChance(p *league.Player, t Type) float64 {
	chance := t.BaseChance
	switch {
	case p.Age < 21:
		chance += 0.15
	case p.Age < 24:
		chance += 0.10
	case p.Age < 28:
	case p.Age < 31:
		chance -= 0.05
	default:
		chance -= 0.15
	}

	if t.capped() {
		switch v := p.Attribute(t.Attribute); {
		case v >= 90:
			chance -= 0.20
		case v >= 80:
			chance -= 0.10
		case v >= 70:
			chance -= 0.05
		}
	}
	return math.Max(MinChance, math.Min(MaxChance, chance))
}

// CanTrain checks eligibility. The first failing gate decides the reason.
func CanTrain(p *league.Player, t Type, c *league.Club) season.Outcome {
	switch {
	case p.Injured:
		return season.Fail(season.ReasonInjured, fmt.Sprintf("%s is injured.", p.ShortName))
	case p.Fitness < MinFitnessToTrain && t.Attribute != league.AttrFitness:
		return season.Fail(season.ReasonTooTired, fmt.Sprintf("%s is too tired (fitness < %d).", p.ShortName, MinFitnessToTrain))
	case p.TrainedThisMatchday:
		return season.Fail(season.ReasonAlreadyTrained, fmt.Sprintf("%s has already trained this matchday.", p.ShortName))
	case len(t.Positions) > 0 && !containsPosition(t.Positions, p.Position):
		return season.Fail(season.ReasonWrongPosition, fmt.Sprintf("%s training is for %v only.", t.Name, t.Positions))
	case c.Budget < t.Cost:
		return season.Fail(season.ReasonInsufficientFunds, fmt.Sprintf("%s costs %s.", t.Name, league.FormatMoney(t.Cost)))
	case t.capped() && p.Attribute(t.Attribute) >= league.MaxAttribute:
		return season.Fail(season.ReasonAttributeMaxed, fmt.Sprintf("%s is already at %d.", t.Attribute, league.MaxAttribute))
	}
	return season.Ok("")
}

func containsPosition(list []league.Position, p league.Position) bool {
	for _, x := range list {
		if x == p {
			return true
		}
	}
	return false
}

// Result reports a training attempt.
type Result struct {
	season.Outcome
	PlayerID  string           `json:"playerId"`
	Type      string           `json:"type"`
	Attribute league.Attribute `json:"attribute,omitempty"`
	Gain      int              `json:"gain"`
}

// Resolver runs training sessions.
type Resolver struct {
	rng *rand.Rand
}

// NewResolver returns a Resolver drawing from rng.
func NewResolver(rng *rand.Rand) *Resolver {
	return &Resolver{rng: rng}
}

// Train runs typeID on a player of the user's club. Once eligible the cost is
// paid and the fitness cost applied whatever the roll decides.
func (r *Resolver) Train(st *season.State, playerID, typeID string) Result {
	res := Result{PlayerID: playerID, Type: typeID}
	club := st.UserClub()
	p := st.Player(playerID)
	t, ok := Lookup(typeID)
	switch {
	case club == nil:
		res.Outcome = season.Fail(season.ReasonClubNotFound, "No club selected.")
		return res
	case p == nil:
		res.Outcome = season.Fail(season.ReasonPlayerNotFound, "Player not found.")
		return res
	case p.ClubID != club.ID:
		res.Outcome = season.Fail(season.ReasonNotOnRoster, fmt.Sprintf("%s is not in the squad.", p.Name))
		return res
	case !ok:
		res.Outcome = season.Fail(season.ReasonInvalidType, fmt.Sprintf("Unknown training type %q.", typeID))
		return res
	}
	if out := CanTrain(p, t, club); !out.Success {
		res.Outcome = out
		return res
	}
	res.Attribute = t.Attribute

	season.PostExpense(club, league.CategoryTraining, t.Cost, st.CurrentMatchday)
	if t.FitnessLoss > 0 {
		p.Fitness = max(FitnessFloor, p.Fitness-t.FitnessLoss)
	}
	p.TrainedThisMatchday = true

	if t.Team {
		// Team sessions always land once paid for.
		res.Gain = r.gain(t)
		for _, mate := range st.Roster(club.ID) {
			if !mate.Injured {
				mate.SetAttribute(league.AttrMorale, mate.Morale+res.Gain)
			}
		}
		res.Outcome = season.Ok(fmt.Sprintf("%s: squad morale +%d.", t.Name, res.Gain))
		return res
	}

	if r.rng.Float64() >= SuccessChance(p, t) {
		res.Outcome = season.Fail(season.ReasonTrainingFailed, fmt.Sprintf("%s made no progress in %s.", p.ShortName, t.Name))
		return res
	}
	res.Gain = r.gain(t)
	p.SetAttribute(t.Attribute, p.Attribute(t.Attribute)+res.Gain)
	res.Outcome = season.Ok(fmt.Sprintf("%s improved %s by %d.", p.ShortName, t.Attribute, res.Gain))
	return res
}

func (r *Resolver) gain(t Type) int {
	return t.MinGain + r.rng.Intn(t.MaxGain-t.MinGain+1)
}
