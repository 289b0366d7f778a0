package league

import (
	"fmt"
	"io"
)

// GenerateFullSeason returns a double round-robin: the first half from
// GenerateSchedule, then every matchday again with home and away swapped.
func GenerateFullSeason(clubIDs []string) [][]Fixture {
	// First half schedule
	firstHalf := GenerateSchedule(clubIDs)
	// Second half with swapped home/away
	secondHalf := make([][]Fixture, len(firstHalf))
	for i, rnd := range firstHalf {
		swapped := make([]Fixture, len(rnd))
		for j, f := range rnd {
			swapped[j] = Fixture{Home: f.Away, Away: f.Home}
		}
		secondHalf[i] = swapped
	}
	// Combine both halves
	return append(firstHalf, secondHalf...)
}

// GenerateSchedule returns a single round-robin for an even number of clubs
// using the circle method: clubIDs[0] stays fixed while the rest rotate, the
// last rotating club moving to the front after each round. Home and away
// alternate by round parity for the fixed club and by pair index against
// round parity for the others. The result is undefined for odd or empty input.
func GenerateSchedule(clubIDs []string) [][]Fixture {
	n := len(clubIDs)
	if n < 2 {
		return nil
	}

	fixed := clubIDs[0]
	rotating := make([]string, n-1)
	copy(rotating, clubIDs[1:])

	rounds := make([][]Fixture, 0, n-1)
	for r := 0; r < n-1; r++ {
		round := make([]Fixture, 0, n/2)
		if r%2 == 0 {
			round = append(round, Fixture{Home: fixed, Away: rotating[0]})
		} else {
			round = append(round, Fixture{Home: rotating[0], Away: fixed})
		}

		for i := 1; i <= (n-2)/2; i++ {
			home := rotating[i]
			away := rotating[n-1-i]
			if i%2 == r%2 {
				round = append(round, Fixture{Home: home, Away: away})
			} else {
				round = append(round, Fixture{Home: away, Away: home})
			}
		}
		rounds = append(rounds, round)

		// Rotate: move last to front
		last := rotating[len(rotating)-1]
		copy(rotating[1:], rotating[:len(rotating)-1])
		rotating[0] = last
	}

	return rounds
}

// ClubFixture is a fixture tagged with its 1-based matchday.
type ClubFixture struct {
	Matchday int `json:"matchday"`
	Fixture
}

// ClubFixtures returns every fixture involving clubID in matchday order.
func ClubFixtures(season [][]Fixture, clubID string) []ClubFixture {
	var out []ClubFixture
	for i, round := range season {
		for _, f := range round {
			if f.Home == clubID || f.Away == clubID {
				out = append(out, ClubFixture{Matchday: i + 1, Fixture: f})
				break
			}
		}
	}
	return out
}

// PrintSchedule writes the fixture list one matchday per block, resolving
// club IDs through name.
func PrintSchedule(w io.Writer, label string, season [][]Fixture, name func(string) string) {
	fmt.Fprintln(w, label)
	for i, round := range season {
		fmt.Fprintf(w, "Matchday %d:\n", i+1)
		for _, f := range round {
			fmt.Fprintf(w, "  %s vs %s\n", name(f.Home), name(f.Away))
		}
	}
}
