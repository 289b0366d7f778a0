package seed

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/utakatalp/season-manager/internal/league"
	"github.com/utakatalp/season-manager/internal/season"
)

// DefaultSeed makes Default reproducible.
const DefaultSeed = 2025

// FreeAgentCount is the size of the unattached player pool.
const FreeAgentCount = 30

// squad is the positional make-up of every generated roster.
var squad = []league.Position{
	league.GK, league.GK,
	league.CB, league.CB, league.CB, league.CB, league.LB, league.RB,
	league.CDM, league.CDM, league.CM, league.CM, league.CM, league.CAM, league.LM, league.RM,
	league.ST, league.ST, league.ST, league.LW, league.RW,
	league.CM,
}

// profile offsets speed, shooting, passing and defense from a target rating.
var profiles = map[league.Position][4]int{
	league.GK:  {-10, -25, -5, 0},
	league.CB:  {-5, -20, -5, 12},
	league.LB:  {5, -15, 0, 8},
	league.RB:  {5, -15, 0, 8},
	league.CDM: {-5, -10, 5, 8},
	league.CM:  {0, -5, 8, 0},
	league.CAM: {3, 5, 10, -15},
	league.LM:  {8, 0, 5, -10},
	league.RM:  {8, 0, 5, -10},
	league.LW:  {10, 5, 0, -20},
	league.RW:  {10, 5, 0, -20},
	league.ST:  {5, 12, -5, -25},
}

var secondaries = map[league.Position][]league.Position{
	league.CB:  {league.CDM},
	league.LB:  {league.LM},
	league.RB:  {league.RM},
	league.CDM: {league.CB, league.CM},
	league.CM:  {league.CDM, league.CAM},
	league.CAM: {league.CM, league.ST},
	league.LM:  {league.LW, league.LB},
	league.RM:  {league.RW, league.RB},
	league.LW:  {league.LM, league.ST},
	league.RW:  {league.RM, league.ST},
	league.ST:  {league.CAM},
}

var firstNames = []string{
	"Adam", "Ben", "Carl", "Dario", "Emil", "Felix", "Goran", "Hugo", "Ivan", "Jonas",
	"Kai", "Luca", "Mats", "Nico", "Oskar", "Pavel", "Rafael", "Sami", "Tomas", "Uwe",
	"Viktor", "Wim", "Yann", "Zoran", "Alex", "Bruno", "Cesar", "Dennis", "Erik", "Filip",
}

var lastNames = []string{
	"Abbott", "Brandt", "Costa", "Dahl", "Ekström", "Fischer", "Garcia", "Holm", "Ivić", "Jansen",
	"Kovač", "Lindqvist", "Moreau", "Novak", "Okafor", "Petrov", "Quinn", "Rossi", "Silva", "Thorsen",
	"Ulrich", "Varga", "Weller", "Yilmaz", "Zeller", "Barros", "Carter", "Dvořák", "Engel", "Ferreira",
	"Gomez", "Haas", "Jovanović", "Kruger", "Larsen", "Meyer", "Nilsen", "Ortega", "Pohl", "Richter",
}

// Default returns the standard dataset.
func Default() season.Seed {
	return Generate(rand.New(rand.NewSource(DefaultSeed)))
}

// Generate builds rosters for Clubs and a free-agent pool from rng.
func Generate(rng *rand.Rand) season.Seed {
	g := generator{rng: rng}
	s := season.Seed{Clubs: append([]season.ClubSeed(nil), Clubs...)}
	for _, c := range Clubs {
		for i, pos := range squad {
			// First-choice players sit near the club rating, reserves below.
			target := c.Strength - 2 + rng.Intn(7)
			if i >= league.LineupSize {
				target -= 6
			}
			s.Players = append(s.Players, g.player(fmt.Sprintf("%s-%02d", c.ID, i+1), c.ID, pos, target))
		}
	}
	for i := 0; i < FreeAgentCount; i++ {
		pos := squad[rng.Intn(len(squad))]
		s.Players = append(s.Players, g.player(fmt.Sprintf("fa-%02d", i+1), "", pos, 52+rng.Intn(18)))
	}
	return s
}

type generator struct {
	rng *rand.Rand
}

func (g generator) player(id, clubID string, pos league.Position, target int) league.Player {
	first := firstNames[g.rng.Intn(len(firstNames))]
	last := lastNames[g.rng.Intn(len(lastNames))]
	off := profiles[pos]
	attr := func(delta int) int {
		return league.Clamp(target+delta+g.rng.Intn(9)-4, 20, league.MaxAttribute)
	}

	p := league.Player{
		ID:            id,
		Name:          first + " " + last,
		ShortName:     last,
		Age:           18 + g.rng.Intn(17),
		Position:      pos,
		Speed:         attr(off[0]),
		Shooting:      attr(off[1]),
		Passing:       attr(off[2]),
		Defense:       attr(off[3]),
		Goalkeeper:    league.Clamp(10+g.rng.Intn(15), 0, league.MaxAttribute),
		Fitness:       85 + g.rng.Intn(16),
		Morale:        60 + g.rng.Intn(21),
		ContractUntil: season.DefaultYear + 1 + g.rng.Intn(4),
		ClubID:        clubID,
	}
	if pos == league.GK {
		p.Goalkeeper = attr(12)
	}
	if alts := secondaries[pos]; len(alts) > 0 && g.rng.Float64() < 0.3 {
		p.SecondaryPosition = alts[g.rng.Intn(len(alts))]
	}
	p.RecalcOverall()
	p.MarketValue = marketValue(p.Overall, p.Age)
	p.Salary = p.MarketValue / 200
	return p
}

// marketValue grows quadratically with rating and peaks in the mid twenties.
func marketValue(overall, age int) int64 {
	v := math.Pow(float64(max(overall-40, 1)), 2) * 4000
	switch {
	case age < 21:
		v *= 1.3
	case age > 30:
		v *= 0.6
	}
	return int64(math.Round(v/10_000) * 10_000)
}
