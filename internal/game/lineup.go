package game

import (
	"math"
	"sort"

	"github.com/utakatalp/season-manager/internal/league"
	"github.com/utakatalp/season-manager/internal/season"
)

// Auto-lineup shape and eligibility.
const (
	MinLineupFitness = 30
	autoDefenders    = 4
	autoMidfielders  = 4
	autoAttackers    = 2
)

// PickLineup chooses up to eleven starters from roster: the best keeper,
// four defenders, four midfielders and two attackers by overall rating,
// topped up with the best remaining players. Injured and exhausted players
// are left out.
func PickLineup(roster []*league.Player) []string {
	var eligible []*league.Player
	for _, p := range roster {
		if !p.Injured && p.Fitness > MinLineupFitness {
			eligible = append(eligible, p)
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].Overall > eligible[j].Overall
	})

	if len(eligible) < league.LineupSize {
		ids := make([]string, len(eligible))
		for i, p := range eligible {
			ids[i] = p.ID
		}
		return ids
	}

	picked := make(map[string]bool, league.LineupSize)
	lineup := make([]string, 0, league.LineupSize)
	take := func(filter func(*league.Player) bool, n int) {
		// n counts candidates, duplicates included
		for _, p := range eligible {
			if n == 0 {
				return
			}
			if !filter(p) {
				continue
			}
			n--
			if !picked[p.ID] {
				picked[p.ID] = true
				lineup = append(lineup, p.ID)
			}
		}
	}

	take(func(p *league.Player) bool { return p.Position == league.GK }, 1)
	take(func(p *league.Player) bool { return p.PlaysIn(league.Defenders) }, autoDefenders)
	take(func(p *league.Player) bool { return p.PlaysIn(league.Midfielders) }, autoMidfielders)
	take(func(p *league.Player) bool { return p.PlaysIn(league.Attackers) }, autoAttackers)
	for _, p := range eligible {
		if len(lineup) >= league.LineupSize {
			break
		}
		if !picked[p.ID] {
			picked[p.ID] = true
			lineup = append(lineup, p.ID)
		}
	}
	return lineup
}

func (m *Manager) autoLineup(clubID string) {
	m.state.SetLineup(clubID, PickLineup(m.state.Roster(clubID)))
}

// AutoLineup picks the user's lineup automatically.
func (m *Manager) AutoLineup() season.Outcome {
	club := m.state.UserClub()
	if club == nil {
		return season.Fail(season.ReasonClubNotFound, "No club selected.")
	}
	out := m.state.SetLineup(club.ID, PickLineup(m.state.Roster(club.ID)))
	if out.Success {
		m.changed(club.ID, "", "lineup")
	}
	return out
}

// EffectiveStrength rates a club's current lineup, without injured starters,
// for match simulation:
// average overall scaled by average fitness and a morale multiplier. Short
// lineups fall back to the club's base strength.
func (m *Manager) EffectiveStrength(clubID string) int {
	club := m.state.Club(clubID)
	if club == nil {
		return 0
	}
	return EffectiveStrength(club.Strength, available(m.state.Lineup(clubID)))
}

// EffectiveStrength computes the rating of lineup, or base when the lineup
// is incomplete.
func EffectiveStrength(base int, lineup []*league.Player) int {
	if len(lineup) < league.LineupSize {
		return base
	}
	var overall, fitness, morale float64
	for _, p := range lineup {
		overall += float64(p.Overall)
		fitness += float64(p.Fitness)
		morale += float64(p.Morale)
	}
	n := float64(len(lineup))
	overall, fitness, morale = overall/n, fitness/n, morale/n

	return max(0, int(math.Round(overall*(fitness/100)*(0.8+morale/500))))
}
