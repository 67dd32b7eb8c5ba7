package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FiscalYear identifies an Indian tax year in the form "YYYY-YY",
// e.g. "2023-24" for April 1 2023 through March 31 2024.
type FiscalYear string

// ParseFiscalYear validates a fiscal year tag. The suffix must be the
// two-digit year immediately following the start year.
func ParseFiscalYear(s string) (FiscalYear, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 2 {
		return "", fmt.Errorf("%w: %q (expected YYYY-YY)", ErrInvalidFiscalYear, s)
	}

	start, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", fmt.Errorf("%w: %q: start year is not numeric", ErrInvalidFiscalYear, s)
	}
	suffix, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", fmt.Errorf("%w: %q: end year is not numeric", ErrInvalidFiscalYear, s)
	}

	// The short suffix is interpreted as 2000+suffix, so "2023-24" ends in
	// 2024. The end year must follow the start year directly.
	if (start+1)%100 != suffix {
		return "", fmt.Errorf("%w: %q: end year must follow start year", ErrInvalidFiscalYear, s)
	}

	return FiscalYear(s), nil
}

// FiscalYearForDate derives the fiscal year containing the given date.
// January through March belong to the fiscal year that started the
// previous calendar year.
func FiscalYearForDate(t time.Time) FiscalYear {
	year := t.Year()
	if t.Month() < time.April {
		year--
	}
	return FiscalYear(fmt.Sprintf("%d-%02d", year, (year+1)%100))
}

// CurrentFiscalYear derives the fiscal year from the wall clock.
func CurrentFiscalYear() FiscalYear {
	return FiscalYearForDate(time.Now())
}

// StartYear returns the calendar year in which the fiscal year begins.
// The receiver must be a valid fiscal year tag.
func (fy FiscalYear) StartYear() int {
	year, _ := strconv.Atoi(strings.SplitN(string(fy), "-", 2)[0])
	return year
}

// Dates returns the inclusive date range of the fiscal year: April 1 of
// the start year through March 31 23:59:59 of the following year.
func (fy FiscalYear) Dates() (start, end time.Time) {
	year := fy.StartYear()
	start = time.Date(year, time.April, 1, 0, 0, 0, 0, time.UTC)
	end = time.Date(year+1, time.March, 31, 23, 59, 59, 0, time.UTC)
	return start, end
}

func (fy FiscalYear) String() string {
	return string(fy)
}
