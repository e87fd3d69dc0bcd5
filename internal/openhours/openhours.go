// Package openhours translates the backend's compact weekly recurrence
// encoding into the legacy opening-hours shape: structured open/close
// periods, next-occurrence timestamps, an open-state predicate, and the
// rendered weekday text list.
package openhours

import (
	"fmt"
	"log"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"maps-compat-service/internal/domain"
)

// Point is one side of an open/close pair.
type Point struct {
	Day    int // 0 = Sunday .. 6 = Saturday
	Hour   int
	Minute int
	// Next is the next absolute occurrence, populated only when the place
	// carries a UTC offset.
	Next time.Time
}

// Period is a weekly open interval. A nil Close marks the open-24-hours
// representation (exactly one period, day 0).
type Period struct {
	Open  Point
	Close *Point
}

// Hours is the translated opening-hours block.
type Hours struct {
	Periods     []Period
	WeekdayText []string
	Open247     bool
	// OpenNow is the backend's own "open now" flag, used when the open
	// predicate is queried without a date.
	OpenNow bool

	offsetSeconds *int
}

const recurrencePrefix = "FREQ:DAILY;BYDAY:"

var dayIndex = map[string]int{
	"SU": 0, "MO": 1, "TU": 2, "WE": 3, "TH": 4, "FR": 5, "SA": 6,
}

var weekdayNames = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

var durationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?$`)

// Translate converts raw backend hours components into the legacy shape.
// The UTC offset, when present, drives next-occurrence computation.
func Translate(data *domain.OpeningHoursData, utcOffsetSeconds *int) *Hours {
	return translateAt(data, utcOffsetSeconds, time.Now().UTC())
}

func translateAt(data *domain.OpeningHoursData, utcOffsetSeconds *int, now time.Time) *Hours {
	if data == nil {
		return nil
	}

	h := &Hours{OpenNow: data.IsOpen, offsetSeconds: utcOffsetSeconds}

	if isAlwaysOpen(data.Components) {
		h.Open247 = true
		h.Periods = []Period{{Open: Point{Day: 0}}}
		h.WeekdayText = renderWeekdayText(h.Periods, true)
		return h
	}

	for _, comp := range data.Components {
		openHour, openMinute, err := parseOpenTime(comp.OpenTime)
		if err != nil {
			log.Printf("openhours: skipping component open_time=%q err=%v", comp.OpenTime, err)
			continue
		}

		days, err := parseRecurrence(comp.Recurrence)
		if err != nil {
			log.Printf("openhours: skipping component recurrence=%q err=%v", comp.Recurrence, err)
			continue
		}

		var durH, durM int
		hasDuration := comp.Duration != ""
		if hasDuration {
			durH, durM, err = parseDuration(comp.Duration)
			if err != nil {
				log.Printf("openhours: skipping component duration=%q err=%v", comp.Duration, err)
				continue
			}
		}

		for _, day := range days {
			p := Period{Open: Point{Day: day, Hour: openHour, Minute: openMinute}}
			if hasDuration {
				closeHour := openHour + durH
				closeMinute := openMinute + durM
				if closeMinute >= 60 {
					closeHour++
					closeMinute -= 60
				}
				closeDay := day
				if closeHour >= 24 {
					closeHour -= 24
					closeDay = (day + 1) % 7
				}
				p.Close = &Point{Day: closeDay, Hour: closeHour, Minute: closeMinute}
			}
			h.Periods = append(h.Periods, p)
		}
	}

	// Components may arrive out of declared order.
	sort.SliceStable(h.Periods, func(i, j int) bool {
		return h.Periods[i].Open.Day < h.Periods[j].Open.Day
	})

	if utcOffsetSeconds != nil {
		for i := range h.Periods {
			nextOpen, nextClose := nextOccurrence(h.Periods[i], *utcOffsetSeconds, now)
			h.Periods[i].Open.Next = nextOpen
			if h.Periods[i].Close != nil {
				h.Periods[i].Close.Next = nextClose
			}
		}
	}

	h.WeekdayText = renderWeekdayText(h.Periods, false)
	return h
}

// IsOpenAt reports whether the place is open at the given instant. The
// second return is false when the answer is indeterminate (no timezone
// offset, or no periods), as opposed to a definite "closed".
func (h *Hours) IsOpenAt(at time.Time) (open bool, known bool) {
	if h == nil {
		return false, false
	}
	if h.Open247 {
		return true, true
	}
	if h.offsetSeconds == nil || len(h.Periods) == 0 {
		return false, false
	}

	for _, p := range h.Periods {
		if p.Close == nil {
			// A period without a close never satisfies the predicate.
			continue
		}

		openT, closeT := occurrenceNear(p, *h.offsetSeconds, at)
		if at.After(openT) && at.Before(closeT) {
			return true, true
		}
	}

	return false, true
}

// nextOccurrence returns the next absolute open/close instants at or after
// now for the period's weekday, in the place's fixed UTC offset.
func nextOccurrence(p Period, offsetSeconds int, now time.Time) (time.Time, time.Time) {
	openT, closeT := occurrenceNear(p, offsetSeconds, now)
	if openT.Before(now) {
		openT = openT.AddDate(0, 0, 7)
		closeT = closeT.AddDate(0, 0, 7)
	}
	return openT, closeT
}

// occurrenceNear realigns the period to the week containing the reference
// instant: the returned open is the latest weekday occurrence not after
// ref+7d such that open <= ref < open+7d.
func occurrenceNear(p Period, offsetSeconds int, ref time.Time) (time.Time, time.Time) {
	loc := time.FixedZone("place", offsetSeconds)
	local := ref.In(loc)

	openT := time.Date(local.Year(), local.Month(), local.Day(), p.Open.Hour, p.Open.Minute, 0, 0, loc)
	openT = openT.AddDate(0, 0, p.Open.Day-int(openT.Weekday()))

	var closeT time.Time
	if p.Close != nil {
		closeT = time.Date(local.Year(), local.Month(), local.Day(), p.Close.Hour, p.Close.Minute, 0, 0, loc)
		closeT = closeT.AddDate(0, 0, p.Close.Day-int(closeT.Weekday()))
		// Overnight periods close after they open, never six days before.
		if !closeT.After(openT) {
			closeT = closeT.AddDate(0, 0, 7)
		}
	} else {
		closeT = openT
	}

	for openT.After(ref) {
		openT = openT.AddDate(0, 0, -7)
		closeT = closeT.AddDate(0, 0, -7)
	}
	for ref.Sub(openT) >= 7*24*time.Hour {
		openT = openT.AddDate(0, 0, 7)
		closeT = closeT.AddDate(0, 0, 7)
	}

	return openT, closeT
}

// isAlwaysOpen detects the 24/7 encoding: one component, all seven days,
// midnight open, exactly 24h duration.
func isAlwaysOpen(components []domain.HoursComponent) bool {
	if len(components) != 1 {
		return false
	}
	c := components[0]

	hour, minute, err := parseOpenTime(c.OpenTime)
	if err != nil || hour != 0 || minute != 0 {
		return false
	}
	durH, durM, err := parseDuration(c.Duration)
	if err != nil || durH != 24 || durM != 0 {
		return false
	}
	days, err := parseRecurrence(c.Recurrence)
	if err != nil {
		return false
	}

	seen := make(map[int]struct{}, len(days))
	for _, d := range days {
		seen[d] = struct{}{}
	}
	return len(seen) == 7
}

func parseOpenTime(code string) (hour, minute int, err error) {
	if len(code) < 5 || code[0] != 'T' {
		return 0, 0, fmt.Errorf("malformed open time %q", code)
	}
	hour, err = strconv.Atoi(code[1:3])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed open time %q", code)
	}
	minute, err = strconv.Atoi(code[3:5])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed open time %q", code)
	}
	if hour > 23 || minute > 59 {
		return 0, 0, fmt.Errorf("open time %q out of range", code)
	}
	return hour, minute, nil
}

func parseDuration(code string) (hours, minutes int, err error) {
	m := durationPattern.FindStringSubmatch(code)
	if m == nil || (m[1] == "" && m[2] == "") {
		return 0, 0, fmt.Errorf("malformed duration %q", code)
	}
	if m[1] != "" {
		hours, _ = strconv.Atoi(m[1])
	}
	if m[2] != "" {
		minutes, _ = strconv.Atoi(m[2])
	}
	return hours, minutes, nil
}

func parseRecurrence(code string) ([]int, error) {
	if !strings.HasPrefix(code, recurrencePrefix) {
		return nil, fmt.Errorf("unrecognized recurrence prefix in %q", code)
	}

	letters := strings.Split(strings.TrimPrefix(code, recurrencePrefix), ",")
	days := make([]int, 0, len(letters))
	for _, l := range letters {
		idx, ok := dayIndex[strings.TrimSpace(l)]
		if !ok {
			return nil, fmt.Errorf("unknown day letters %q in %q", l, code)
		}
		days = append(days, idx)
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("no days in recurrence %q", code)
	}
	return days, nil
}
