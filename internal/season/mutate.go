package season

import (
	"fmt"

	"github.com/utakatalp/season-manager/internal/league"
)

// Ticket price bounds accepted by SetTicketPrice.
const (
	MinTicketPrice = 10
	MaxTicketPrice = 150
)

// ContractYears is the length of a contract signed on transfer.
const ContractYears = 3

// Schedule installs the season's fixture list and rewinds the matchday counter.
func (s *State) Schedule(fixtures [][]league.Fixture) {
	s.Fixtures = fixtures
	s.Results = []league.MatchdayResult{}
	s.CurrentMatchday = 0
}

// SetFormation switches a club's formation. The lineup is cleared because
// slot roles no longer line up.
func (s *State) SetFormation(clubID, formation string) Outcome {
	c := s.clubs[clubID]
	if c == nil {
		return Fail(ReasonClubNotFound, "Club not found.")
	}
	if _, ok := league.Formations[formation]; !ok {
		return Fail(ReasonInvalidFormation, fmt.Sprintf("Unknown formation %q.", formation))
	}
	if c.Formation == formation {
		return Ok(fmt.Sprintf("Formation is already %s.", formation))
	}
	c.Formation = formation
	c.Lineup = []string{}
	return Ok(fmt.Sprintf("Formation set to %s. Lineup cleared.", formation))
}

// SetLineupSlot puts a rostered player into a formation slot. A player who
// already starts elsewhere moves, leaving the old slot empty.
func (s *State) SetLineupSlot(clubID string, slot int, playerID string) Outcome {
	c := s.clubs[clubID]
	if c == nil {
		return Fail(ReasonClubNotFound, "Club not found.")
	}
	if slot < 0 || slot >= league.LineupSize {
		return Fail(ReasonInvalidSlot, fmt.Sprintf("Slot %d is out of range.", slot))
	}
	p := s.players[playerID]
	if p == nil {
		return Fail(ReasonPlayerNotFound, "Player not found.")
	}
	if p.ClubID != clubID {
		return Fail(ReasonNotOnRoster, fmt.Sprintf("%s is not in the squad.", p.Name))
	}
	role := league.Formations[c.Formation][slot]
	if !league.IsPositionCompatible(p.Position, role, p.SecondaryPosition) {
		return Fail(ReasonIncompatiblePosition,
			fmt.Sprintf("%s (%s) cannot play %s.", p.ShortName, p.Position, role))
	}

	lineup := append([]string(nil), c.Lineup...)
	for len(lineup) <= slot {
		lineup = append(lineup, "")
	}
	for i, id := range lineup {
		if id == playerID {
			lineup[i] = ""
		}
	}
	lineup[slot] = playerID
	c.Lineup = trimLineup(lineup)
	return Ok(fmt.Sprintf("%s starts as %s.", p.ShortName, role))
}

// ClearLineupSlot empties one formation slot.
func (s *State) ClearLineupSlot(clubID string, slot int) Outcome {
	c := s.clubs[clubID]
	if c == nil {
		return Fail(ReasonClubNotFound, "Club not found.")
	}
	if slot < 0 || slot >= league.LineupSize {
		return Fail(ReasonInvalidSlot, fmt.Sprintf("Slot %d is out of range.", slot))
	}
	if slot < len(c.Lineup) {
		lineup := append([]string(nil), c.Lineup...)
		lineup[slot] = ""
		c.Lineup = trimLineup(lineup)
	}
	return Ok(fmt.Sprintf("Slot %d cleared.", slot))
}

// SetLineup replaces the whole lineup. Every entry must be on the club's
// roster and there may be at most eleven.
func (s *State) SetLineup(clubID string, playerIDs []string) Outcome {
	c := s.clubs[clubID]
	if c == nil {
		return Fail(ReasonClubNotFound, "Club not found.")
	}
	if len(playerIDs) > league.LineupSize {
		return Fail(ReasonInvalidSlot, "A lineup has at most 11 players.")
	}
	for _, id := range playerIDs {
		if id == "" {
			continue
		}
		p := s.players[id]
		if p == nil {
			return Fail(ReasonPlayerNotFound, "Player not found.")
		}
		if p.ClubID != clubID {
			return Fail(ReasonNotOnRoster, fmt.Sprintf("%s is not in the squad.", p.Name))
		}
	}
	c.Lineup = trimLineup(append([]string(nil), playerIDs...))
	return Ok(fmt.Sprintf("Lineup set with %d players.", len(s.Lineup(clubID))))
}

func trimLineup(lineup []string) []string {
	for len(lineup) > 0 && lineup[len(lineup)-1] == "" {
		lineup = lineup[:len(lineup)-1]
	}
	return lineup
}

// SetTicketPrice changes a club's ticket price.
func (s *State) SetTicketPrice(clubID string, price int) Outcome {
	c := s.clubs[clubID]
	if c == nil {
		return Fail(ReasonClubNotFound, "Club not found.")
	}
	if price < MinTicketPrice || price > MaxTicketPrice {
		return Fail(ReasonInvalidPrice,
			fmt.Sprintf("Ticket price must be between %d and %d EUR.", MinTicketPrice, MaxTicketPrice))
	}
	c.Stadium.TicketPrice = price
	return Ok(fmt.Sprintf("Ticket price set to %d EUR.", price))
}

// TransferPlayer moves a player to toClubID for fee, settling both budgets
// and dropping the player from the seller's lineup. Free agents have no
// seller to credit. Callers validate window, budget and roster limits.
func (s *State) TransferPlayer(playerID, toClubID string, fee int64) bool {
	p := s.players[playerID]
	to := s.clubs[toClubID]
	if p == nil || to == nil {
		return false
	}
	matchday := s.CurrentMatchday

	from := s.clubs[p.ClubID]
	p.ClubID = toClubID
	p.ContractUntil = s.Year + ContractYears

	PostExpense(to, league.CategoryTransferOut, fee, matchday)
	if from != nil {
		PostIncome(from, league.CategoryTransferIn, fee, matchday)
		lineup := make([]string, 0, len(from.Lineup))
		for _, id := range from.Lineup {
			if id == playerID {
				id = ""
			}
			lineup = append(lineup, id)
		}
		from.Lineup = trimLineup(lineup)
	}
	return true
}

// SetTransferWindow moves the transfer window to w.
func (s *State) SetTransferWindow(w league.TransferWindow) {
	s.TransferWindow = w
}

// ResetTrainingFlags clears every player's per-matchday training marker.
func (s *State) ResetTrainingFlags() {
	for _, p := range s.Players {
		p.TrainedThisMatchday = false
	}
}

// RecordMatchday appends a played matchday and advances the counter.
func (s *State) RecordMatchday(matches []league.MatchResult) league.MatchdayResult {
	r := league.MatchdayResult{Matchday: s.CurrentMatchday + 1, Matches: matches}
	s.Results = append(s.Results, r)
	s.CurrentMatchday++
	return r
}
