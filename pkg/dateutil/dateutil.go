package dateutil

import (
	"fmt"
	"strings"
	"time"
)

// DaysPerYear is the average Julian year length used for age approximations.
const DaysPerYear = 365.25

// readLayout accepts single-digit day and month ("1/2/2000").
const readLayout = "2/1/2006"

// DayMonthYearLayout is the canonical write format for price file dates.
const DayMonthYearLayout = "02/01/2006"

// Date returns midnight UTC for the given calendar fields without validation.
func Date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// IsValidDate reports whether day/month/year name a real calendar date.
// Zero fields are treated as missing. Overflowed dates such as 30 February
// normalize to another day and are rejected.
func IsValidDate(day, month, year int) bool {
	if day == 0 || month == 0 || year == 0 {
		return false
	}
	t := Date(year, month, day)
	return t.Day() == day && int(t.Month()) == month && t.Year() == year
}

// ParseDayMonthYear parses a dd/mm/yyyy date. Single-digit fields are accepted.
func ParseDayMonthYear(s string) (time.Time, error) {
	t, err := time.Parse(readLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q want format dd/mm/yyyy: %w", s, err)
	}
	return t, nil
}

// FormatDayMonthYear formats t as dd/mm/yyyy.
func FormatDayMonthYear(t time.Time) string {
	return t.Format(DayMonthYearLayout)
}

// YearsUntilDate returns the elapsed days between two dates divided by 365.25.
// This is an approximation, not calendar-exact age.
func YearsUntilDate(fromDate, toDate time.Time) float64 {
	duration := toDate.Sub(fromDate)
	return duration.Hours() / 24 / DaysPerYear
}

// IsLeapYear checks if a year is a leap year
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// YearMonth identifies a calendar month.
type YearMonth struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// YearMonthOf returns the calendar month containing t.
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// String formats the key as yyyy-mm.
func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// IsZero reports whether ym is the zero value.
func (ym YearMonth) IsZero() bool { return ym.Year == 0 && ym.Month == 0 }

// Index returns a month count usable for ordering and differences.
func (ym YearMonth) Index() int { return ym.Year*12 + int(ym.Month) - 1 }

// Next returns the following calendar month.
func (ym YearMonth) Next() YearMonth {
	if ym.Month == time.December {
		return YearMonth{Year: ym.Year + 1, Month: time.January}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month + 1}
}

// MonthsBetween returns the number of months from a to b (negative if b precedes a).
func MonthsBetween(a, b YearMonth) int {
	return b.Index() - a.Index()
}
