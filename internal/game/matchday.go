package game

import (
	"context"
	"fmt"

	"github.com/utakatalp/season-manager/internal/finance"
	"github.com/utakatalp/season-manager/internal/league"
	"github.com/utakatalp/season-manager/internal/season"
)

// Player condition rules applied after each match.
const (
	RecoveredFitness  = 60
	MatchFitnessFloor = 40
	BenchRecovery     = 5
	GoalMoraleBoost   = 3
	ResultMorale      = 3
	MinMorale         = 30
	MaxInjuryDays     = 4
)

// windowChanges maps a just-completed matchday to the window that follows.
var windowChanges = map[int]league.TransferWindow{
	1:  league.WindowSummer,
	5:  league.WindowClosed,
	17: league.WindowWinter,
	21: league.WindowClosed,
}

// AdvanceMatchday plays the next matchday. Injuries heal, AI clubs pick
// lineups, every fixture is simulated and folded into standings and player
// condition, finances are posted, training flags reset, the transfer window
// moves and the season is autosaved.
func (m *Manager) AdvanceMatchday(ctx context.Context) (league.MatchdayResult, season.Outcome) {
	st := m.state
	if st.TotalMatchdays() == 0 {
		return league.MatchdayResult{}, season.Fail(season.ReasonSeasonComplete, "No fixtures are scheduled.")
	}
	if st.IsComplete() {
		return league.MatchdayResult{}, season.Fail(season.ReasonSeasonComplete, "The season is over.")
	}
	fixtures := st.CurrentFixtures()
	matchday := st.CurrentMatchday + 1

	m.healInjuries()
	for _, c := range st.Clubs {
		if c.ID != st.UserClubID {
			m.autoLineup(c.ID)
		}
	}

	matches := make([]league.MatchResult, 0, len(fixtures))
	for _, f := range fixtures {
		home, away := st.Club(f.Home), st.Club(f.Away)
		homeLineup, awayLineup := available(st.Lineup(f.Home)), available(st.Lineup(f.Away))

		result := m.sim.Simulate(
			league.Team{ID: home.ID, Strength: EffectiveStrength(home.Strength, homeLineup), Lineup: homeLineup},
			league.Team{ID: away.ID, Strength: EffectiveStrength(away.Strength, awayLineup), Lineup: awayLineup},
		)
		league.RecordResult(home, away, result.HomeGoals, result.AwayGoals)
		m.applyMatch(result, homeLineup, awayLineup)
		matches = append(matches, result)
	}

	md := st.RecordMatchday(matches)
	finance.ProcessMatchday(st, matchday, fixtures)
	st.ResetTrainingFlags()
	if w, ok := windowChanges[matchday]; ok && w != st.TransferWindow {
		st.SetTransferWindow(w)
		m.logger.Info("Transfer window changed", "matchday", matchday, "window", w)
	}

	if err := m.Save(ctx, m.slot); err != nil {
		m.logger.Error("Autosave failed", "slot", m.slot, "matchday", matchday, "error", err)
	}
	m.logger.Info("Matchday completed", "matchday", matchday, "matches", len(matches))
	m.bus.Publish(season.Event{
		Kind:    season.EventMatchdayCompleted,
		Payload: season.MatchdayCompletedPayload{Matchday: matchday, Matches: matches},
	})

	msg := fmt.Sprintf("Matchday %d of %d played.", matchday, st.TotalMatchdays())
	if st.IsComplete() {
		msg += " The season is over."
	}
	return md, season.Ok(msg)
}

// available drops injured players from a lineup at kickoff.
func available(lineup []*league.Player) []*league.Player {
	out := lineup[:0:0]
	for _, p := range lineup {
		if !p.Injured {
			out = append(out, p)
		}
	}
	return out
}

func (m *Manager) healInjuries() {
	for _, p := range m.state.Players {
		if !p.Injured || p.InjuryDays <= 0 {
			continue
		}
		p.InjuryDays--
		if p.InjuryDays == 0 {
			p.Injured = false
			p.Fitness = max(p.Fitness, RecoveredFitness)
		}
	}
}

// applyMatch updates the condition and statistics of everyone involved in
// one match.
func (m *Manager) applyMatch(r league.MatchResult, homeLineup, awayLineup []*league.Player) {
	st := m.state
	starters := make(map[string]bool, len(homeLineup)+len(awayLineup))
	for _, p := range append(append([]*league.Player(nil), homeLineup...), awayLineup...) {
		starters[p.ID] = true
		p.Fitness = max(MatchFitnessFloor, p.Fitness-(3+m.rng.Intn(5)))
	}
	for _, clubID := range []string{r.Home, r.Away} {
		for _, p := range st.Roster(clubID) {
			if !starters[p.ID] {
				p.Fitness = min(league.MaxFitness, p.Fitness+BenchRecovery)
			}
		}
	}

	for _, e := range r.Events {
		p := st.Player(e.PlayerID)
		if p == nil {
			continue
		}
		switch e.Type {
		case league.EventGoal:
			p.Goals++
			p.Morale = min(league.MaxMorale, p.Morale+GoalMoraleBoost)
			if a := st.Player(e.AssistID); a != nil {
				a.Assists++
			}
		case league.EventYellow:
			p.YellowCards++
		case league.EventRed:
			p.RedCards++
		case league.EventInjury:
			p.Injured = true
			p.InjuryDays = 1 + m.rng.Intn(MaxInjuryDays)
		}
	}

	homeDelta, awayDelta := 0, 0
	switch {
	case r.HomeGoals > r.AwayGoals:
		homeDelta, awayDelta = ResultMorale, -ResultMorale
	case r.AwayGoals > r.HomeGoals:
		homeDelta, awayDelta = -ResultMorale, ResultMorale
	}
	for _, p := range homeLineup {
		p.Morale = league.Clamp(p.Morale+homeDelta, MinMorale, league.MaxMorale)
	}
	for _, p := range awayLineup {
		p.Morale = league.Clamp(p.Morale+awayDelta, MinMorale, league.MaxMorale)
	}
}
