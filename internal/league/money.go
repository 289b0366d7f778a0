package league

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var moneyPrinter = message.NewPrinter(language.English)

// FormatMoney renders an amount in euros with digit grouping, e.g. "4,000,000 EUR".
func FormatMoney(amount int64) string {
	return moneyPrinter.Sprintf("%d EUR", amount)
}
