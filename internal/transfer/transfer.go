// Package transfer prices players and executes purchases and sales while the
// transfer window is open.
package transfer

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/utakatalp/season-manager/internal/league"
	"github.com/utakatalp/season-manager/internal/season"
)

// Squad limits and pricing constants.
const (
	MaxSquadSize   = 25
	MinSquadSize   = 11
	MinPrice       = 100_000
	SaleShare      = 0.85
	FreeAgentShare = 0.2
	GoalBonus      = 200_000
	AssistBonus    = 100_000
	MaxAcceptance  = 0.95
)

func ageFactor(age int) float64 {
	switch {
	case age < 22:
		return 1.2
	case age <= 29:
		return 1.0
	case age <= 32:
		return 0.7
	default:
		return 0.4
	}
}

func contractFactor(yearsLeft int) float64 {
	switch {
	case yearsLeft <= 1:
		return 0.5
	case yearsLeft <= 2:
		return 0.75
	default:
		return 1.0
	}
}

// EstimatePrice is what a club asks for p in the given season year.
func EstimatePrice(p *league.Player, year int) int64 {
	base := float64(p.MarketValue) * ageFactor(p.Age)
	base += float64(p.Goals*GoalBonus + p.Assists*AssistBonus)
	base *= contractFactor(p.ContractUntil - year)
	if p.IsFreeAgent() {
		base *= FreeAgentShare
	}
	return max(MinPrice, int64(math.Round(base)))
}

// SalePrice is what an AI club pays the user for p.
func SalePrice(p *league.Player, year int) int64 {
	return int64(math.Floor(float64(EstimatePrice(p, year)) * SaleShare))
}

// AcceptanceChance is the probability that a contracted player agrees to
// move to a buyer with the given budget.
func AcceptanceChance(budget, price int64) float64 {
	return math.Min(MaxAcceptance, 0.6+float64(budget)/float64(price)*0.1)
}

// Filter narrows a market listing. Zero fields do not filter.
type Filter struct {
	Position   league.Position `json:"position,omitempty"`
	MinOverall int             `json:"minOverall,omitempty"`
	MaxOverall int             `json:"maxOverall,omitempty"`
	MaxPrice   int64           `json:"maxPrice,omitempty"`
	MaxAge     int             `json:"maxAge,omitempty"`
}

// Listing is a player on the market with the current asking price.
type Listing struct {
	Player *league.Player `json:"player"`
	Price  int64          `json:"price"`
}

// Market lists every player not at excludeClubID that passes f, best first.
func Market(st *season.State, excludeClubID string, f Filter) []Listing {
	var out []Listing
	for _, p := range st.Players {
		if p.ClubID == excludeClubID {
			continue
		}
		if f.Position != "" && p.Position != f.Position {
			continue
		}
		if f.MinOverall > 0 && p.Overall < f.MinOverall {
			continue
		}
		if f.MaxOverall > 0 && p.Overall > f.MaxOverall {
			continue
		}
		if f.MaxAge > 0 && p.Age > f.MaxAge {
			continue
		}
		price := EstimatePrice(p, st.Year)
		if f.MaxPrice > 0 && price > f.MaxPrice {
			continue
		}
		out = append(out, Listing{Player: p, Price: price})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Player.Overall > out[j].Player.Overall
	})
	return out
}

// Result reports a transfer attempt.
type Result struct {
	season.Outcome
	PlayerID string `json:"playerId"`
	FromClub string `json:"fromClub,omitempty"`
	ToClub   string `json:"toClub,omitempty"`
	Fee      int64  `json:"fee,omitempty"`
}

// Negotiator executes transfers.
type Negotiator struct {
	rng *rand.Rand
}

// NewNegotiator returns a Negotiator drawing from rng.
func NewNegotiator(rng *rand.Rand) *Negotiator {
	return &Negotiator{rng: rng}
}

func windowOpen(st *season.State) bool {
	return st.TransferWindow != league.WindowClosed
}

// Buy signs playerID for buyerClubID at the estimated price. Contracted
// players may turn the move down.
func (n *Negotiator) Buy(st *season.State, playerID, buyerClubID string) Result {
	res := Result{PlayerID: playerID}
	if !windowOpen(st) {
		res.Outcome = season.Fail(season.ReasonWindowClosed, "The transfer window is closed.")
		return res
	}
	p := st.Player(playerID)
	if p == nil {
		res.Outcome = season.Fail(season.ReasonPlayerNotFound, "Player not found.")
		return res
	}
	buyer := st.Club(buyerClubID)
	if buyer == nil {
		res.Outcome = season.Fail(season.ReasonClubNotFound, "Club not found.")
		return res
	}
	if p.ClubID == buyerClubID {
		res.Outcome = season.Fail(season.ReasonAlreadyOwned, fmt.Sprintf("%s already plays for %s.", p.Name, buyer.Name))
		return res
	}

	price := EstimatePrice(p, st.Year)
	if buyer.Budget < price {
		res.Outcome = season.Fail(season.ReasonInsufficientFunds, fmt.Sprintf("Not enough budget. Price: %s.", league.FormatMoney(price)))
		return res
	}
	if len(st.Roster(buyerClubID)) >= MaxSquadSize {
		res.Outcome = season.Fail(season.ReasonRosterFull, fmt.Sprintf("Squad is full (max %d players).", MaxSquadSize))
		return res
	}

	free := p.IsFreeAgent()
	if !free && n.rng.Float64() > AcceptanceChance(buyer.Budget, price) {
		res.Outcome = season.Fail(season.ReasonPlayerDeclined, fmt.Sprintf("%s turned the move down. Try again later.", p.ShortName))
		return res
	}

	res.FromClub = p.ClubID
	res.ToClub = buyerClubID
	res.Fee = price
	st.TransferPlayer(playerID, buyerClubID, price)
	if free {
		res.Outcome = season.Ok(fmt.Sprintf("%s signed as a free agent (signing fee %s).", p.Name, league.FormatMoney(price)))
	} else {
		res.Outcome = season.Ok(fmt.Sprintf("%s signed from %s for %s.", p.Name, st.ClubName(res.FromClub), league.FormatMoney(price)))
	}
	return res
}

// Sell moves a user-club player to a random AI club that can afford the
// sale price and has room in its squad.
func (n *Negotiator) Sell(st *season.State, playerID string) Result {
	res := Result{PlayerID: playerID}
	if !windowOpen(st) {
		res.Outcome = season.Fail(season.ReasonWindowClosed, "The transfer window is closed.")
		return res
	}
	p := st.Player(playerID)
	if p == nil {
		res.Outcome = season.Fail(season.ReasonPlayerNotFound, "Player not found.")
		return res
	}
	if p.ClubID != st.UserClubID {
		res.Outcome = season.Fail(season.ReasonNotOnRoster, fmt.Sprintf("%s is not in your squad.", p.Name))
		return res
	}
	if len(st.Roster(st.UserClubID)) <= MinSquadSize {
		res.Outcome = season.Fail(season.ReasonRosterTooSmall, fmt.Sprintf("Squad too small (min %d players).", MinSquadSize))
		return res
	}

	price := SalePrice(p, st.Year)
	var buyers []*league.Club
	for _, c := range st.Clubs {
		if c.ID != st.UserClubID && c.Budget >= price && len(st.Roster(c.ID)) < MaxSquadSize {
			buyers = append(buyers, c)
		}
	}
	if len(buyers) == 0 {
		res.Outcome = season.Fail(season.ReasonNoBuyer, "No club is interested.")
		return res
	}
	buyer := buyers[n.rng.Intn(len(buyers))]

	res.FromClub = st.UserClubID
	res.ToClub = buyer.ID
	res.Fee = price
	st.TransferPlayer(playerID, buyer.ID, price)
	res.Outcome = season.Ok(fmt.Sprintf("%s sold to %s for %s.", p.Name, buyer.Name, league.FormatMoney(price)))
	return res
}
