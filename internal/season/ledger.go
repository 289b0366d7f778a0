package season

import "github.com/utakatalp/season-manager/internal/league"

// PostIncome credits the club budget and records an income entry.
func PostIncome(c *league.Club, category league.LedgerCategory, amount int64, matchday int) {
	c.Budget += amount
	f := &c.Finances
	f.TotalIncome += amount
	f.Income = append(f.Income, league.LedgerEntry{Category: category, Amount: amount, Matchday: matchday})
	if f.IncomeByCategory == nil {
		f.IncomeByCategory = map[league.LedgerCategory]int64{}
	}
	f.IncomeByCategory[category] += amount
}

// PostExpense debits the club budget and records an expense entry.
func PostExpense(c *league.Club, category league.LedgerCategory, amount int64, matchday int) {
	c.Budget -= amount
	f := &c.Finances
	f.TotalExpenses += amount
	f.Expenses = append(f.Expenses, league.LedgerEntry{Category: category, Amount: amount, Matchday: matchday})
	if f.ExpenseByCategory == nil {
		f.ExpenseByCategory = map[league.LedgerCategory]int64{}
	}
	f.ExpenseByCategory[category] += amount
}
