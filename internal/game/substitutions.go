package game

import (
	"fmt"

	"github.com/utakatalp/season-manager/internal/league"
	"github.com/utakatalp/season-manager/internal/season"
)

// Substitution limits.
const (
	MaxSubstitutions = 3
	MinSubMinute     = 1
	MaxSubMinute     = 89
)

// Substitution replaces a starter with a bench player at Minute.
type Substitution struct {
	OutID  string `json:"outId"`
	InID   string `json:"inId"`
	Minute int    `json:"minute"`
}

// ApplySubstitutions corrects fitness for the user's substitutions in the
// last played match. The score and events stay as simulated. Starters that
// came off get back part of the fitness the full match cost them; bench
// players that came on lose part of their rest. Each matchday accepts one
// batch.
func (m *Manager) ApplySubstitutions(subs []Substitution) season.Outcome {
	st := m.state
	club := st.UserClub()
	if club == nil {
		return season.Fail(season.ReasonClubNotFound, "No club selected.")
	}
	if _, ok := st.LastUserMatch(); !ok {
		return season.Fail(season.ReasonInvalidSubstitution, "No match has been played yet.")
	}
	if st.SubstitutionsMatchday == st.CurrentMatchday {
		return season.Fail(season.ReasonInvalidSubstitution, "Substitutions for this match are already in.")
	}
	if len(subs) > MaxSubstitutions {
		return season.Fail(season.ReasonTooManySubstitutions, fmt.Sprintf("At most %d substitutions.", MaxSubstitutions))
	}

	// Starters may leave once; bench players may enter once.
	used := make(map[string]bool, 2*len(subs))
	for _, s := range subs {
		out, in := st.Player(s.OutID), st.Player(s.InID)
		switch {
		case out == nil || in == nil:
			return season.Fail(season.ReasonPlayerNotFound, "Player not found.")
		case out.ClubID != club.ID || in.ClubID != club.ID:
			return season.Fail(season.ReasonNotOnRoster, "Both players must belong to your squad.")
		case !st.InLineup(club.ID, s.OutID):
			return season.Fail(season.ReasonInvalidSubstitution, fmt.Sprintf("%s did not start.", out.ShortName))
		case st.InLineup(club.ID, s.InID):
			return season.Fail(season.ReasonInvalidSubstitution, fmt.Sprintf("%s was already on the pitch.", in.ShortName))
		case s.Minute < MinSubMinute || s.Minute > MaxSubMinute:
			return season.Fail(season.ReasonInvalidSubstitution, fmt.Sprintf("Minute %d is outside %d-%d.", s.Minute, MinSubMinute, MaxSubMinute))
		case used[s.OutID] || used[s.InID]:
			return season.Fail(season.ReasonInvalidSubstitution, "A player can only be substituted once.")
		}
		used[s.OutID], used[s.InID] = true, true
	}

	for _, s := range subs {
		share := float64(league.RegulationMinutes-s.Minute) / league.RegulationMinutes
		out, in := st.Player(s.OutID), st.Player(s.InID)
		out.Fitness = min(league.MaxFitness, out.Fitness+int(share*(3+m.rng.Float64()*5)))
		in.Fitness = max(MatchFitnessFloor, in.Fitness-int(share*(3+m.rng.Float64()*5)))
	}
	st.SubstitutionsMatchday = st.CurrentMatchday
	if len(subs) > 0 {
		m.changed(club.ID, "", "fitness")
	}
	return season.Ok(fmt.Sprintf("%d substitutions applied.", len(subs)))
}
