package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinYear is the earliest year the Department of Revenue publishes
// historical sales data for. Anything earlier is a typo, not a request.
const MinYear = 1990

// Period identifies one calendar month of published sales data.
type Period struct {
	// Year is the four-digit calendar year.
	Year int

	// Month is the calendar month, 1 through 12.
	Month time.Month
}

// ParsePeriod parses a period from its CLI form "YYYY-MM".
func ParsePeriod(s string) (Period, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return Period{}, fmt.Errorf("%w: %q is not in YYYY-MM form", ErrInvalidPeriod, s)
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Period{}, fmt.Errorf("%w: year %q is not a number", ErrInvalidPeriod, parts[0])
	}

	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return Period{}, fmt.Errorf("%w: month %q is not a number", ErrInvalidPeriod, parts[1])
	}

	p := Period{Year: year, Month: time.Month(month)}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}

// PeriodOf returns the period containing the given time.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// Validate checks the period describes a real calendar month.
func (p Period) Validate() error {
	if p.Year < MinYear {
		return fmt.Errorf("%w: year %d is before %d", ErrInvalidPeriod, p.Year, MinYear)
	}
	if p.Month < time.January || p.Month > time.December {
		return fmt.Errorf("%w: month %d is not in 1..12", ErrInvalidPeriod, int(p.Month))
	}
	return nil
}

// String returns the canonical YYYYMM form used in remote URLs and
// local filenames.
func (p Period) String() string {
	return fmt.Sprintf("%04d%02d", p.Year, int(p.Month))
}

// Display returns the human-readable YYYY-MM form.
func (p Period) Display() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Next returns the following calendar month, rolling December into
// January of the next year.
func (p Period) Next() Period {
	if p.Month == time.December {
		return Period{Year: p.Year + 1, Month: time.January}
	}
	return Period{Year: p.Year, Month: p.Month + 1}
}

// After reports whether p is strictly later than other.
func (p Period) After(other Period) bool {
	if p.Year != other.Year {
		return p.Year > other.Year
	}
	return p.Month > other.Month
}

// PeriodsThrough enumerates every calendar month from start to end
// inclusive, in ascending order. The result is empty when start is
// later than end.
func PeriodsThrough(start, end Period) []Period {
	if start.After(end) {
		return nil
	}

	var periods []Period
	for p := start; !p.After(end); p = p.Next() {
		periods = append(periods, p)
	}
	return periods
}
