package league

import (
	"fmt"
	"io"
	"sort"
)

// RecordResult folds a final score into both clubs' season records.
func RecordResult(home, away *Club, homeGoals, awayGoals int) {
	home.GoalsFor += homeGoals
	home.GoalsAgainst += awayGoals
	away.GoalsFor += awayGoals
	away.GoalsAgainst += homeGoals

	switch {
	case homeGoals > awayGoals:
		home.Points += 3
		home.Won++
		away.Lost++
		home.pushForm(Win)
		away.pushForm(Loss)
	case homeGoals < awayGoals:
		away.Points += 3
		away.Won++
		home.Lost++
		home.pushForm(Loss)
		away.pushForm(Win)
	default:
		home.Points++
		away.Points++
		home.Drawn++
		away.Drawn++
		home.pushForm(Draw)
		away.pushForm(Draw)
	}
}

func (c *Club) pushForm(r Result) {
	c.Form = append(c.Form, r)
	if len(c.Form) > FormLength {
		c.Form = append([]Result(nil), c.Form[len(c.Form)-FormLength:]...)
	}
}

// TableEntry holds the standings info for one club.
type TableEntry struct {
	Position     int      `json:"position"`
	ClubID       string   `json:"clubId"`
	Name         string   `json:"name"`
	Played       int      `json:"played"`
	Wins         int      `json:"wins"`
	Draws        int      `json:"draws"`
	Losses       int      `json:"losses"`
	GoalsFor     int      `json:"goalsFor"`
	GoalsAgainst int      `json:"goalsAgainst"`
	GoalDiff     int      `json:"goalDiff"`
	Points       int      `json:"points"`
	Form         []Result `json:"form"`
}

// Standings returns clubs ordered by points, goal difference, goals for,
// then name.
func Standings(clubs []*Club) []TableEntry {
	sorted := make([]*Club, len(clubs))
	copy(sorted, clubs)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDiff() != b.GoalDiff() {
			return a.GoalDiff() > b.GoalDiff()
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.Name < b.Name
	})

	entries := make([]TableEntry, len(sorted))
	for i, c := range sorted {
		entries[i] = TableEntry{
			Position:     i + 1,
			ClubID:       c.ID,
			Name:         c.Name,
			Played:       c.Played(),
			Wins:         c.Won,
			Draws:        c.Drawn,
			Losses:       c.Lost,
			GoalsFor:     c.GoalsFor,
			GoalsAgainst: c.GoalsAgainst,
			GoalDiff:     c.GoalDiff(),
			Points:       c.Points,
			Form:         append([]Result(nil), c.Form...),
		}
	}
	return entries
}

// PrintTable writes a fixed-width league table.
func PrintTable(w io.Writer, label string, table []TableEntry) {
	fmt.Fprintln(w, label)
	fmt.Fprintf(w, "%3s %-24s %2s %2s %2s %2s %3s %3s %4s %3s\n",
		"#", "Club", "P", "W", "D", "L", "GF", "GA", "GD", "Pts")
	for _, e := range table {
		fmt.Fprintf(w, "%3d %-24s %2d %2d %2d %2d %3d %3d %+4d %3d\n",
			e.Position,
			e.Name,
			e.Played,
			e.Wins,
			e.Draws,
			e.Losses,
			e.GoalsFor,
			e.GoalsAgainst,
			e.GoalDiff,
			e.Points,
		)
	}
}
