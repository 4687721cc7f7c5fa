package output

import (
	"time"

	"github.com/rpgo/dca-calculator/pkg/dateutil"
	money "github.com/rpgo/dca-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

var decimalHundred = decimal.NewFromInt(100)

// FormatCurrency formats an amount as whole US dollars with separators, e.g. "$12,345".
func FormatCurrency(amount decimal.Decimal) string { return money.NewMoneyFromDecimal(amount).Format() }

// FormatPrice formats an index level with cents.
func FormatPrice(amount decimal.Decimal) string {
	return money.NewMoneyFromDecimal(amount).FormatCents()
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatRate formats a fractional rate such as 0.0927 as "9.27%".
func FormatRate(rate decimal.Decimal) string { return FormatPercentage(rate.Mul(decimalHundred)) }

// FormatUnits formats an accumulated unit count.
func FormatUnits(units decimal.Decimal) string { return units.StringFixed(4) }

// FormatDate formats a date as dd/mm/yyyy; the zero time renders as "-".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return dateutil.FormatDayMonthYear(t)
}
