package recur

import "time"

// AddPeriod returns anchor advanced by the rule's period.
//
// The anchor is normalized to UTC first. Days and weeks advance the date by
// fixed day counts; months use calendar arithmetic, so adding one month to
// Jan 31 yields the last day of February rather than overflowing into March.
// The result is UTC, truncated to whole seconds.
func AddPeriod(anchor time.Time, rule Rule) time.Time {
	base := anchor.UTC().Truncate(time.Second)

	switch rule.Unit {
	case Day:
		return base.AddDate(0, 0, rule.Count)
	case Week:
		return base.AddDate(0, 0, 7*rule.Count)
	case Month:
		return addMonths(base, rule.Count)
	default:
		return base
	}
}

// addMonths advances t by n calendar months, clamping the day of month to the
// last valid day of the target month. time.AddDate is not used here because it
// normalizes overflow (Jan 31 + 1 month would become Mar 2 or Mar 3).
func addMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()

	total := int(month) - 1 + n
	targetYear := year + total/12
	targetMonth := time.Month(total%12 + 1)
	if total < 0 {
		// Go's integer division truncates toward zero; shift negatives back.
		targetYear = year + (total-11)/12
		targetMonth = time.Month((total%12+12)%12 + 1)
	}

	if last := daysIn(targetYear, targetMonth); day > last {
		day = last
	}

	hour, min, sec := t.Clock()
	return time.Date(targetYear, targetMonth, day, hour, min, sec, 0, time.UTC)
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
