package leave

import "time"

// CalculateWorkDays counts the days in [start, end] inclusive. With
// businessDays set, Saturdays and Sundays are skipped; no holiday calendar is
// applied. Callers must pass start <= end.
func CalculateWorkDays(start, end time.Time, businessDays bool) int {
	start = truncateToDay(start)
	end = truncateToDay(end)

	if !businessDays {
		return int(end.Sub(start)/(24*time.Hour)) + 1
	}

	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			count++
		}
	}
	return count
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
