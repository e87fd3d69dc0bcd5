// Package units renders distances and durations as the legacy API formats
// them: locale-grouped numbers, unit-system aware, ceiling minutes.
package units

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// System selects between metric and imperial distance rendering.
type System int

const (
	Metric System = iota
	Imperial
)

func (s System) String() string {
	if s == Imperial {
		return "IMPERIAL"
	}
	return "METRIC"
}

const (
	kmPerMile  = 0.621371
	feetPerMi  = 5280
	metersPerK = 1000
)

// The legacy output groups thousands the en way ("1,234 km") regardless of
// request language, so the printer is fixed.
var groupPrinter = message.NewPrinter(language.English)

// FormatDistance renders meters as the legacy human-readable distance text.
//
// Metric: whole meters under 1 km, one decimal km up to 999 km, grouped
// integer km beyond. Imperial: whole feet under 0.1 mi, one decimal miles up
// to 999 mi, grouped integer miles beyond.
func FormatDistance(meters float64, sys System) string {
	if sys == Imperial {
		miles := meters / metersPerK * kmPerMile
		switch {
		case miles < 0.1:
			return fmt.Sprintf("%d ft", int(math.Round(miles*feetPerMi)))
		case miles < 1000:
			return fmt.Sprintf("%.1f mi", miles)
		default:
			return groupPrinter.Sprintf("%d mi", int64(math.Round(miles)))
		}
	}

	switch {
	case meters < metersPerK:
		return fmt.Sprintf("%d m", int(math.Round(meters)))
	case meters < 1000*metersPerK:
		return fmt.Sprintf("%.1f km", meters/metersPerK)
	default:
		return groupPrinter.Sprintf("%d km", int64(math.Round(meters/metersPerK)))
	}
}

// FormatDuration renders seconds as "N days N hours N mins".
//
// Minutes are rounded up from the remaining seconds, so any positive
// remainder under a minute still reads "1 min". Zero-valued components are
// omitted entirely.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}

	days := seconds / 86400
	rem := seconds % 86400
	hours := rem / 3600
	rem %= 3600
	mins := (rem + 59) / 60

	parts := make([]string, 0, 3)
	if days > 0 {
		parts = append(parts, plural(days, "day"))
	}
	if hours > 0 {
		parts = append(parts, plural(hours, "hour"))
	}
	if mins > 0 {
		parts = append(parts, plural(mins, "min"))
	}

	return strings.Join(parts, " ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
