package openhours

import (
	"fmt"
	"sort"
	"strings"
)

// renderWeekdayText builds the 7-entry weekday summary. Entries are built
// Sunday-first (day index order) and then rotated so Sunday lands last,
// matching the legacy Monday-first display.
func renderWeekdayText(periods []Period, open247 bool) []string {
	entries := make([]string, 7)

	for day := 0; day < 7; day++ {
		if open247 {
			entries[day] = fmt.Sprintf("%s: Open 24 hours", weekdayNames[day])
			continue
		}

		var todays []Period
		for _, p := range periods {
			if p.Open.Day == day {
				todays = append(todays, p)
			}
		}
		sort.SliceStable(todays, func(i, j int) bool {
			if todays[i].Open.Hour != todays[j].Open.Hour {
				return todays[i].Open.Hour < todays[j].Open.Hour
			}
			return todays[i].Open.Minute < todays[j].Open.Minute
		})

		if len(todays) == 0 {
			entries[day] = fmt.Sprintf("%s: Closed", weekdayNames[day])
			continue
		}

		ranges := make([]string, 0, len(todays))
		for _, p := range todays {
			ranges = append(ranges, renderRange(p))
		}
		entries[day] = fmt.Sprintf("%s: %s", weekdayNames[day], strings.Join(ranges, ", "))
	}

	// Sunday moves to the end.
	return append(entries[1:], entries[0])
}

// renderRange prints one open-close span. The opening time drops its AM/PM
// suffix when both ends share a meridiem ("9:00 - 11:00 AM").
func renderRange(p Period) string {
	if p.Close == nil {
		return clock(p.Open.Hour, p.Open.Minute, true)
	}

	sameMeridiem := (p.Open.Hour < 12) == (p.Close.Hour < 12) && p.Open.Day == p.Close.Day
	return fmt.Sprintf("%s - %s",
		clock(p.Open.Hour, p.Open.Minute, !sameMeridiem),
		clock(p.Close.Hour, p.Close.Minute, true),
	)
}

func clock(hour, minute int, withSuffix bool) string {
	h12 := hour % 12
	if h12 == 0 {
		h12 = 12
	}
	if !withSuffix {
		return fmt.Sprintf("%d:%02d", h12, minute)
	}
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", h12, minute, suffix)
}
