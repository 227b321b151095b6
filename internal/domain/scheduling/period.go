package scheduling

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidPeriod = errors.New("invalid calendar period")

type PeriodKind string

const (
	PeriodYear  PeriodKind = "year"
	PeriodMonth PeriodKind = "month"
	PeriodDay   PeriodKind = "day"
)

// Period is a calendar year, month or day, independent of any location.
type Period struct {
	kind  PeriodKind
	year  int
	month time.Month
	day   int
}

func NewYearPeriod(year int) (Period, error) {
	if year < 1 || year > 9999 {
		return Period{}, ErrInvalidPeriod
	}
	return Period{kind: PeriodYear, year: year}, nil
}

func NewMonthPeriod(year int, month int) (Period, error) {
	if _, err := NewYearPeriod(year); err != nil {
		return Period{}, err
	}
	if month < 1 || month > 12 {
		return Period{}, ErrInvalidPeriod
	}
	return Period{kind: PeriodMonth, year: year, month: time.Month(month)}, nil
}

func NewDayPeriod(year, month, day int) (Period, error) {
	p, err := NewMonthPeriod(year, month)
	if err != nil {
		return Period{}, err
	}
	if day < 1 || day > daysIn(year, p.month) {
		return Period{}, ErrInvalidPeriod
	}
	return Period{kind: PeriodDay, year: year, month: p.month, day: day}, nil
}

// PeriodsContaining lists the day, month and year periods the date falls in.
func PeriodsContaining(date time.Time) []Period {
	y, m, d := date.Date()
	return []Period{
		{kind: PeriodDay, year: y, month: m, day: d},
		{kind: PeriodMonth, year: y, month: m},
		{kind: PeriodYear, year: y},
	}
}

func (p Period) Kind() PeriodKind  { return p.kind }
func (p Period) Year() int         { return p.year }
func (p Period) Month() time.Month { return p.month }
func (p Period) Day() int          { return p.day }

// Bounds returns the half-open interval [start, end) of the period in loc.
func (p Period) Bounds(loc *time.Location) (time.Time, time.Time) {
	switch p.kind {
	case PeriodDay:
		start := time.Date(p.year, p.month, p.day, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 0, 1)
	case PeriodMonth:
		start := time.Date(p.year, p.month, 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 1, 0)
	default:
		start := time.Date(p.year, time.January, 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(1, 0, 0)
	}
}

// Days returns local midnight of every date in the period, in order.
func (p Period) Days(loc *time.Location) []time.Time {
	start, end := p.Bounds(loc)
	var days []time.Time
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func (p Period) String() string {
	switch p.kind {
	case PeriodDay:
		return fmt.Sprintf("%04d-%02d-%02d", p.year, int(p.month), p.day)
	case PeriodMonth:
		return fmt.Sprintf("%04d-%02d", p.year, int(p.month))
	default:
		return fmt.Sprintf("%04d", p.year)
	}
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
