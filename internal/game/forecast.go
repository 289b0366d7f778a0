package game

import (
	"math"
	"math/rand"
	"sort"

	"github.com/utakatalp/season-manager/internal/league"
	"github.com/utakatalp/season-manager/internal/season"
)

// Prediction is a club's chance of finishing top.
type Prediction struct {
	ClubID      string  `json:"clubId"`
	Name        string  `json:"name"`
	Points      int     `json:"points"`
	Probability float64 `json:"probability"` // percent, two decimals
}

// Forecast estimates title chances by playing out the remaining fixtures
// runs times from the current table. The season itself is not touched.
func (m *Manager) Forecast(runs int) []Prediction {
	return Forecast(m.state, runs, m.forecast)
}

// Forecast is the Monte Carlo behind Manager.Forecast.
func Forecast(st *season.State, runs int, rng *rand.Rand) []Prediction {
	if runs < 1 {
		runs = 1
	}
	sim := league.NewSimulator(rng)
	wins := make(map[string]int, len(st.Clubs))
	for i := 0; i < runs; i++ {
		wins[simulateChampion(st, sim)]++
	}

	preds := make([]Prediction, 0, len(st.Clubs))
	for _, c := range st.Clubs {
		p := float64(wins[c.ID]) / float64(runs) * 100
		preds = append(preds, Prediction{
			ClubID:      c.ID,
			Name:        c.Name,
			Points:      c.Points,
			Probability: math.Round(p*100) / 100,
		})
	}
	sort.SliceStable(preds, func(i, j int) bool {
		if preds[i].Probability != preds[j].Probability {
			return preds[i].Probability > preds[j].Probability
		}
		return preds[i].Points > preds[j].Points
	})
	return preds
}

type record struct {
	points, gd, gf int
}

func simulateChampion(st *season.State, sim *league.Simulator) string {
	table := make(map[string]*record, len(st.Clubs))
	for _, c := range st.Clubs {
		table[c.ID] = &record{points: c.Points, gd: c.GoalDiff(), gf: c.GoalsFor}
	}

	for md := st.CurrentMatchday; md < len(st.Fixtures); md++ {
		for _, f := range st.Fixtures[md] {
			home, away := st.Club(f.Home), st.Club(f.Away)
			hg, ag := sim.Score(home.Strength, away.Strength)

			h, a := table[f.Home], table[f.Away]
			h.gf += hg
			a.gf += ag
			h.gd += hg - ag
			a.gd += ag - hg
			switch {
			case hg > ag:
				h.points += 3
			case ag > hg:
				a.points += 3
			default:
				h.points++
				a.points++
			}
		}
	}

	var best *league.Club
	for _, c := range st.Clubs {
		if best == nil || ahead(table[c.ID], table[best.ID], c.Name, best.Name) {
			best = c
		}
	}
	if best == nil {
		return ""
	}
	return best.ID
}

// ahead applies the standings order: points, goal difference, goals for, name.
func ahead(a, b *record, nameA, nameB string) bool {
	switch {
	case a.points != b.points:
		return a.points > b.points
	case a.gd != b.gd:
		return a.gd > b.gd
	case a.gf != b.gf:
		return a.gf > b.gf
	}
	return nameA < nameB
}
