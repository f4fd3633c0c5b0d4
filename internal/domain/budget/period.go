package budget

import (
	"fmt"
	"strings"
	"time"
)

// Fixed day lengths per period unit. Months and years are deliberately not
// calendar-aware: a monthly budget always spans 30-day blocks so the
// inverse stays well-defined.
var periodDays = map[string]int{
	PeriodDaily:   1,
	PeriodWeekly:  7,
	PeriodMonthly: 30,
	PeriodYearly:  365,
}

const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodYearly  = "yearly"
)

// NormalizePeriod reports the canonical lowercase period key.
func NormalizePeriod(value string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(value))
	_, ok := periodDays[key]
	return key, ok
}

// PeriodEnd computes startDate + duration periods. Callers log the error
// and render a "--" placeholder; nothing downstream depends on a partial
// result.
func PeriodEnd(start time.Time, duration int, period string) (time.Time, error) {
	if start.IsZero() {
		return time.Time{}, fmt.Errorf("period end: start date missing")
	}
	if duration <= 0 {
		return time.Time{}, fmt.Errorf("period end: duration %d out of range", duration)
	}
	key, ok := NormalizePeriod(period)
	if !ok {
		return time.Time{}, fmt.Errorf("period end: unrecognized period %q", period)
	}
	return start.AddDate(0, 0, duration*periodDays[key]), nil
}

type PeriodSpan struct {
	Duration int
	Period   string
}

// InferPeriod recovers a duration and unit from a start/end pair, preferring
// the coarsest unit that divides the day span evenly. The result is lossy by
// design: a 60-day span reports as 2 months even though real months are not
// uniformly 30 days. Returns nil when the pair is unusable.
func InferPeriod(start, end time.Time) *PeriodSpan {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return nil
	}

	span := int(atMidnight(end).Sub(atMidnight(start)).Hours() / 24)

	switch {
	case span >= 365 && span%365 == 0:
		return &PeriodSpan{Duration: span / 365, Period: PeriodYearly}
	case span > 0 && span%30 == 0:
		return &PeriodSpan{Duration: span / 30, Period: PeriodMonthly}
	case span > 0 && span%7 == 0:
		return &PeriodSpan{Duration: span / 7, Period: PeriodWeekly}
	default:
		return &PeriodSpan{Duration: span, Period: PeriodDaily}
	}
}

func atMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
