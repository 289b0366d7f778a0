package league

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// Match model constants.
const (
	HomeExpectedGoals = 1.6
	AwayExpectedGoals = 1.2
	NeutralStrength   = 75.0
	MinExpectedGoals  = 0.3
	MaxExpectedGoals  = 4.5

	MinYellowCards    = 2
	MaxYellowCards    = 6
	AssistChance      = 0.7
	RedCardChance     = 0.05
	InjuryChance      = 0.03
	MaxAddedTime      = 3
	RegulationMinutes = 90
)

// Team is one side of a fixture as the simulator sees it.
type Team struct {
	ID       string
	Strength int
	Lineup   []*Player
}

// Simulator resolves fixtures. It owns no state besides its random source.
type Simulator struct {
	rng *rand.Rand
}

// NewSimulator returns a Simulator drawing from rng.
func NewSimulator(rng *rand.Rand) *Simulator {
	return &Simulator{rng: rng}
}

// ExpectedGoals returns the clamped Poisson means for both sides.
func ExpectedGoals(homeStrength, awayStrength int) (home, away float64) {
	hs := math.Max(1, float64(homeStrength))
	as := math.Max(1, float64(awayStrength))

	home = HomeExpectedGoals * (hs / NeutralStrength) * (NeutralStrength / as)
	away = AwayExpectedGoals * (as / NeutralStrength) * (NeutralStrength / hs)

	return clampFloat(home, MinExpectedGoals, MaxExpectedGoals),
		clampFloat(away, MinExpectedGoals, MaxExpectedGoals)
}

// Score draws only a scoreline, without events.
func (s *Simulator) Score(homeStrength, awayStrength int) (homeGoals, awayGoals int) {
	lambdaHome, lambdaAway := ExpectedGoals(homeStrength, awayStrength)
	return s.Poisson(lambdaHome), s.Poisson(lambdaAway)
}

// Simulate resolves a fixture into a score and a minute-ordered event list.
func (s *Simulator) Simulate(home, away Team) MatchResult {
	homeGoals, awayGoals := s.Score(home.Strength, away.Strength)
	return MatchResult{
		Home:      home.ID,
		Away:      away.ID,
		HomeGoals: homeGoals,
		AwayGoals: awayGoals,
		Events:    s.generateEvents(home, away, homeGoals, awayGoals),
	}
}

// Poisson samples a Poisson variate with mean lambda (Knuth).
func (s *Simulator) Poisson(lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	L := math.Exp(-lambda)
	p := 1.0
	k := 0
	for {
		k++
		p *= s.rng.Float64()
		if p <= L {
			break
		}
	}
	return k - 1
}

func (s *Simulator) generateEvents(home, away Team, homeGoals, awayGoals int) []MatchEvent {
	// 1) goals with scorers biased to attacking roles
	goals := make([]MatchEvent, 0, homeGoals+awayGoals)
	for i := 0; i < homeGoals; i++ {
		goals = append(goals, s.goal(Home, home))
	}
	for i := 0; i < awayGoals; i++ {
		goals = append(goals, s.goal(Away, away))
	}

	// 2) order goals and stamp the running score
	sortEvents(goals)
	h, a := 0, 0
	for i := range goals {
		if goals[i].Side == Home {
			h++
		} else {
			a++
		}
		goals[i].HomeScore, goals[i].AwayScore = h, a
	}
	events := goals

	// 3) yellow cards
	cards := MinYellowCards + s.rng.Intn(MaxYellowCards-MinYellowCards+1)
	for i := 0; i < cards; i++ {
		side, team := s.pickSide(home, away)
		events = append(events, s.newEvent(EventYellow, side, team, s.pickPlayer(team.Lineup, nil)))
	}

	// 4) rare red card
	if s.rng.Float64() < RedCardChance {
		side, team := s.pickSide(home, away)
		events = append(events, s.newEvent(EventRed, side, team, s.pickPlayer(team.Lineup, nil)))
	}

	// 5) injuries, independently per starter
	for _, p := range home.Lineup {
		if s.rng.Float64() < InjuryChance {
			events = append(events, s.newEvent(EventInjury, Home, home, p))
		}
	}
	for _, p := range away.Lineup {
		if s.rng.Float64() < InjuryChance {
			events = append(events, s.newEvent(EventInjury, Away, away, p))
		}
	}

	// 6) final order
	sortEvents(events)
	return events
}

func (s *Simulator) newEvent(typ EventType, side Side, team Team, p *Player) MatchEvent {
	minute, added := s.randomMinute()
	e := MatchEvent{
		Minute:    minute,
		AddedTime: added,
		Type:      typ,
		Side:      side,
		ClubID:    team.ID,
	}
	if p != nil {
		e.PlayerID = p.ID
	}
	return e
}

// goal builds a goal event; most goals also credit a teammate's assist.
func (s *Simulator) goal(side Side, team Team) MatchEvent {
	e := s.newEvent(EventGoal, side, team, s.pickPlayer(team.Lineup, ScorerPositions))
	if e.PlayerID == "" || s.rng.Float64() >= AssistChance {
		return e
	}
	var mates []*Player
	for _, p := range team.Lineup {
		if p.ID != e.PlayerID {
			mates = append(mates, p)
		}
	}
	if len(mates) > 0 {
		e.AssistID = mates[s.rng.Intn(len(mates))].ID
	}
	return e
}

func (s *Simulator) pickSide(home, away Team) (Side, Team) {
	if s.rng.Float64() < 0.5 {
		return Home, home
	}
	return Away, away
}

// pickPlayer chooses uniformly from lineup players in positions, falling
// back to the whole lineup. Returns nil for an empty lineup.
func (s *Simulator) pickPlayer(lineup []*Player, positions []Position) *Player {
	if len(lineup) == 0 {
		return nil
	}
	pool := lineup
	if positions != nil {
		var candidates []*Player
		for _, p := range lineup {
			if containsPosition(positions, p.Position) {
				candidates = append(candidates, p)
			}
		}
		if len(candidates) > 0 {
			pool = candidates
		}
	}
	return pool[s.rng.Intn(len(pool))]
}

// randomMinute draws a minute uniformly within a random half. The last
// minute of each half may carry up to MaxAddedTime stoppage minutes.
func (s *Simulator) randomMinute() (minute, added int) {
	half := 0
	if s.rng.Float64() >= 0.5 {
		half = 45
	}
	minute = half + 1 + s.rng.Intn(45)
	if minute == 45 || minute == RegulationMinutes {
		added = s.rng.Intn(MaxAddedTime + 1)
	}
	return minute, added
}

func sortEvents(events []MatchEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Minute != events[j].Minute {
			return events[i].Minute < events[j].Minute
		}
		return events[i].AddedTime < events[j].AddedTime
	})
}

// Clock renders the event minute the way a ticker shows it, e.g. 45+2'.
func (e MatchEvent) Clock() string {
	if e.AddedTime > 0 {
		return fmt.Sprintf("%d+%d'", e.Minute, e.AddedTime)
	}
	return fmt.Sprintf("%d'", e.Minute)
}

// ScoreLine formats the final score using name to resolve club IDs.
func (m MatchResult) ScoreLine(name func(string) string) string {
	return fmt.Sprintf("%s %d - %d %s",
		name(m.Home), m.HomeGoals,
		m.AwayGoals, name(m.Away),
	)
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
