package game

import (
	"github.com/utakatalp/season-manager/internal/finance"
	"github.com/utakatalp/season-manager/internal/season"
	"github.com/utakatalp/season-manager/internal/training"
	"github.com/utakatalp/season-manager/internal/transfer"
)

func (m *Manager) userClubID() string { return m.state.UserClubID }

// SetFormation changes the user's formation and clears the lineup.
func (m *Manager) SetFormation(formation string) season.Outcome {
	out := m.state.SetFormation(m.userClubID(), formation)
	if out.Success {
		m.changed(m.userClubID(), "", "formation")
	}
	return out
}

// SetLineupSlot assigns a player to a slot of the user's formation.
func (m *Manager) SetLineupSlot(slot int, playerID string) season.Outcome {
	out := m.state.SetLineupSlot(m.userClubID(), slot, playerID)
	if out.Success {
		m.changed(m.userClubID(), playerID, "lineup")
	}
	return out
}

// ClearLineupSlot empties a slot of the user's lineup.
func (m *Manager) ClearLineupSlot(slot int) season.Outcome {
	out := m.state.ClearLineupSlot(m.userClubID(), slot)
	if out.Success {
		m.changed(m.userClubID(), "", "lineup")
	}
	return out
}

// SetTicketPrice changes the user's ticket price.
func (m *Manager) SetTicketPrice(price int) season.Outcome {
	out := m.state.SetTicketPrice(m.userClubID(), price)
	if out.Success {
		m.changed(m.userClubID(), "", "stadium.ticketPrice")
	}
	return out
}

// Train runs a training session for one of the user's players.
func (m *Manager) Train(playerID, typeID string) training.Result {
	res := m.trainer.Train(m.state, playerID, typeID)
	if res.Reason == "" || res.Reason == season.ReasonTrainingFailed {
		m.logger.Debug("Training session",
			"player", playerID,
			"type", typeID,
			"success", res.Success,
			"gain", res.Gain,
		)
		m.changed(m.userClubID(), playerID, string(res.Attribute))
	}
	return res
}

// Buy signs a player for the user's club.
func (m *Manager) Buy(playerID string) transfer.Result {
	res := m.transfers.Buy(m.state, playerID, m.userClubID())
	m.transferDone(res)
	return res
}

// Sell sells one of the user's players to an AI club.
func (m *Manager) Sell(playerID string) transfer.Result {
	res := m.transfers.Sell(m.state, playerID)
	m.transferDone(res)
	return res
}

func (m *Manager) transferDone(res transfer.Result) {
	if !res.Success {
		return
	}
	m.logger.Info("Transfer completed",
		"player", res.PlayerID,
		"from", res.FromClub,
		"to", res.ToClub,
		"fee", res.Fee,
	)
	m.bus.Publish(season.Event{
		Kind: season.EventTransferCompleted,
		Payload: season.TransferCompletedPayload{
			PlayerID: res.PlayerID,
			FromClub: res.FromClub,
			ToClub:   res.ToClub,
			Fee:      res.Fee,
		},
	})
}

// Market lists players the user could buy.
func (m *Manager) Market(f transfer.Filter) []transfer.Listing {
	return transfer.Market(m.state, m.userClubID(), f)
}

// UpgradeStadium buys a stadium upgrade for the user's club.
func (m *Manager) UpgradeStadium(u finance.Upgrade) season.Outcome {
	club := m.state.UserClub()
	if club == nil {
		return season.Fail(season.ReasonClubNotFound, "No club selected.")
	}
	out, cost := finance.UpgradeStadium(club, u, m.state.CurrentMatchday)
	if out.Success {
		m.bus.Publish(season.Event{
			Kind:    season.EventStadiumUpgraded,
			Payload: season.StadiumUpgradedPayload{ClubID: club.ID, Upgrade: string(u), Cost: cost},
		})
	}
	return out
}

// Finances summarizes a club's ledger.
func (m *Manager) Finances(clubID string) (finance.Summary, bool) {
	c := m.state.Club(clubID)
	if c == nil {
		return finance.Summary{}, false
	}
	return finance.Summarize(c), true
}
