// Package finance posts per-matchday income and expenses and applies
// stadium upgrades.
package finance

import (
	"fmt"

	"github.com/utakatalp/season-manager/internal/league"
	"github.com/utakatalp/season-manager/internal/season"
)

// Attendance and revenue constants. Rates are in percent so attendance is
// computed exactly in integers.
const (
	BaseFillPct     = 75
	FormFillPct     = 15 // for five wins out of five
	RoofFillPct     = 5
	NeutralPrice    = 30
	MinPriceEffPct  = 50
	VIPBoxIncome    = 500
	maxFillPct      = 100
	priceEffBasePct = 100
)

// Attendance is the number of spectators a home match draws:
// capacity × min(1, base + form + roof) × max(0.5, 1 − (price − 30)/100).
func Attendance(c *league.Club) int {
	st := c.Stadium
	fill := BaseFillPct + c.FormWins()*FormFillPct/league.FormLength
	if st.Roof {
		fill += RoofFillPct
	}
	fill = min(fill, maxFillPct)
	priceEff := max(MinPriceEffPct, priceEffBasePct-(st.TicketPrice-NeutralPrice))
	return int(int64(st.Capacity) * int64(fill) * int64(priceEff) / 10000)
}

// MatchdayReport summarizes one club's postings for a matchday.
type MatchdayReport struct {
	ClubID     string `json:"clubId"`
	Attendance int    `json:"attendance,omitempty"`
	Income     int64  `json:"income"`
	Expenses   int64  `json:"expenses"`
}

// ProcessMatchday posts every club's income and expenses for the completed
// matchday. Only the home side of each fixture earns gate receipts.
func ProcessMatchday(st *season.State, matchday int, fixtures []league.Fixture) []MatchdayReport {
	home := make(map[string]bool, len(fixtures))
	for _, f := range fixtures {
		home[f.Home] = true
	}
	total := int64(st.TotalMatchdays())
	if total < 1 {
		total = 1
	}

	reports := make([]MatchdayReport, 0, len(st.Clubs))
	for _, c := range st.Clubs {
		r := MatchdayReport{ClubID: c.ID}
		income := func(cat league.LedgerCategory, amount int64) {
			if amount <= 0 {
				return
			}
			season.PostIncome(c, cat, amount, matchday)
			r.Income += amount
		}
		expense := func(cat league.LedgerCategory, amount int64) {
			if amount <= 0 {
				return
			}
			season.PostExpense(c, cat, amount, matchday)
			r.Expenses += amount
		}

		if home[c.ID] {
			r.Attendance = Attendance(c)
			income(league.CategoryTickets, int64(r.Attendance)*int64(c.Stadium.TicketPrice))
			if c.Stadium.FanShop {
				income(league.CategoryFanShop, int64(r.Attendance)*5/2) // 2.5 per fan
			}
			income(league.CategoryVIPBoxes, int64(c.Stadium.VIPBoxes)*VIPBoxIncome)
		}

		var wages int64
		for _, p := range st.Roster(c.ID) {
			wages += p.Salary
		}
		expense(league.CategoryWages, wages)
		income(league.CategoryTVMoney, c.Finances.TVMoney/total)
		income(league.CategorySponsor, c.Finances.SponsorIncome/total)
		expense(league.CategoryStadiumUpkeep, int64(c.Stadium.Capacity)/2) // 0.5 per seat

		reports = append(reports, r)
	}
	return reports
}

// Summary is a club's financial overview.
type Summary struct {
	ClubID            string                          `json:"clubId"`
	Budget            int64                           `json:"budget"`
	TotalIncome       int64                           `json:"totalIncome"`
	TotalExpenses     int64                           `json:"totalExpenses"`
	Balance           int64                           `json:"balance"`
	IncomeByCategory  map[league.LedgerCategory]int64 `json:"incomeByCategory"`
	ExpenseByCategory map[league.LedgerCategory]int64 `json:"expenseByCategory"`
	TVMoney           int64                           `json:"tvMoney"`
	SponsorIncome     int64                           `json:"sponsorIncome"`
}

// Summarize reads the incrementally maintained totals of a club.
func Summarize(c *league.Club) Summary {
	f := c.Finances
	s := Summary{
		ClubID:            c.ID,
		Budget:            c.Budget,
		TotalIncome:       f.TotalIncome,
		TotalExpenses:     f.TotalExpenses,
		Balance:           f.TotalIncome - f.TotalExpenses,
		IncomeByCategory:  make(map[league.LedgerCategory]int64, len(f.IncomeByCategory)),
		ExpenseByCategory: make(map[league.LedgerCategory]int64, len(f.ExpenseByCategory)),
		TVMoney:           f.TVMoney,
		SponsorIncome:     f.SponsorIncome,
	}
	for k, v := range f.IncomeByCategory {
		s.IncomeByCategory[k] = v
	}
	for k, v := range f.ExpenseByCategory {
		s.ExpenseByCategory[k] = v
	}
	return s
}

// Describe renders a summary line for CLI output.
func (s Summary) Describe() string {
	return fmt.Sprintf("budget %s, income %s, expenses %s",
		league.FormatMoney(s.Budget), league.FormatMoney(s.TotalIncome), league.FormatMoney(s.TotalExpenses))
}
