package finance

import (
	"fmt"

	"github.com/utakatalp/season-manager/internal/league"
	"github.com/utakatalp/season-manager/internal/season"
)

// Upgrade names a stadium improvement.
type Upgrade string

const (
	UpgradeCapacity Upgrade = "capacity"
	UpgradeRoof     Upgrade = "roof"
	UpgradeFanShop  Upgrade = "fan_shop"
	UpgradeParking  Upgrade = "parking"
	UpgradeVIPBoxes Upgrade = "vip_boxes"
)

// Upgrade effects and prices.
const (
	CapacityCost    = 5_000_000
	CapacityStep    = 1000
	RoofCostPerSeat = 200
	FanShopCost     = 2_000_000
	ParkingCost     = 500_000
	ParkingStep     = 500
	VIPBoxesCost    = 1_000_000
	VIPBoxesStep    = 10
)

// UpgradeOption is one entry of a club's upgrade catalog.
type UpgradeOption struct {
	Upgrade     Upgrade `json:"upgrade"`
	Cost        int64   `json:"cost"`
	Description string  `json:"description"`
	Available   bool    `json:"available"`
	Affordable  bool    `json:"affordable"`
}

// UpgradeCatalog lists every upgrade in a fixed order with its current cost.
func UpgradeCatalog(c *league.Club) []UpgradeOption {
	st := c.Stadium
	opts := []UpgradeOption{
		{Upgrade: UpgradeCapacity, Cost: CapacityCost, Description: fmt.Sprintf("+%d seats", CapacityStep), Available: true},
		{Upgrade: UpgradeRoof, Cost: int64(st.Capacity) * RoofCostPerSeat, Description: "Covered stands", Available: !st.Roof},
		{Upgrade: UpgradeFanShop, Cost: FanShopCost, Description: "Merchandise income on match days", Available: !st.FanShop},
		{Upgrade: UpgradeParking, Cost: ParkingCost, Description: fmt.Sprintf("+%d parking spaces", ParkingStep), Available: true},
		{Upgrade: UpgradeVIPBoxes, Cost: VIPBoxesCost, Description: fmt.Sprintf("+%d VIP boxes", VIPBoxesStep), Available: true},
	}
	for i := range opts {
		opts[i].Affordable = c.Budget >= opts[i].Cost
	}
	return opts
}

// UpgradeStadium buys an upgrade for a club. Nothing changes unless the
// upgrade is valid, not yet owned and affordable.
func UpgradeStadium(c *league.Club, u Upgrade, matchday int) (season.Outcome, int64) {
	var opt *UpgradeOption
	catalog := UpgradeCatalog(c)
	for i := range catalog {
		if catalog[i].Upgrade == u {
			opt = &catalog[i]
		}
	}
	if opt == nil {
		return season.Fail(season.ReasonInvalidType, fmt.Sprintf("Unknown upgrade %q.", u)), 0
	}
	if !opt.Available {
		return season.Fail(season.ReasonAlreadyBuilt, fmt.Sprintf("%s is already built.", opt.Description)), 0
	}
	if !opt.Affordable {
		return season.Fail(season.ReasonInsufficientFunds,
			fmt.Sprintf("Upgrade costs %s, budget is %s.", league.FormatMoney(opt.Cost), league.FormatMoney(c.Budget))), 0
	}

	season.PostExpense(c, league.CategoryStadiumUpgrade, opt.Cost, matchday)
	switch u {
	case UpgradeCapacity:
		c.Stadium.Capacity += CapacityStep
	case UpgradeRoof:
		c.Stadium.Roof = true
	case UpgradeFanShop:
		c.Stadium.FanShop = true
	case UpgradeParking:
		c.Stadium.Parking += ParkingStep
	case UpgradeVIPBoxes:
		c.Stadium.VIPBoxes += VIPBoxesStep
	}
	return season.Ok(fmt.Sprintf("%s upgraded for %s.", opt.Description, league.FormatMoney(opt.Cost))), opt.Cost
}
