package units

import "testing"

func TestFormatDistanceMetric(t *testing.T) {
	cases := []struct {
		meters float64
		want   string
	}{
		{0, "0 m"},
		{750, "750 m"},
		{999, "999 m"},
		{1000, "1.0 km"},
		{1500, "1.5 km"},
		{12500, "12.5 km"},
		{999400, "999.4 km"},
		{1234000, "1,234 km"},
		{1000000, "1,000 km"},
	}

	for _, c := range cases {
		if got := FormatDistance(c.meters, Metric); got != c.want {
			t.Fatalf("FormatDistance(%v, Metric) = %q, want %q", c.meters, got, c.want)
		}
	}
}

func TestFormatDistanceImperial(t *testing.T) {
	cases := []struct {
		meters float64
		want   string
	}{
		{50, "164 ft"},     // 0.031 mi
		{1500, "0.9 mi"},   // 0.932 mi
		{160934, "100.0 mi"},
		{1609344, "1,000 mi"},
	}

	for _, c := range cases {
		if got := FormatDistance(c.meters, Imperial); got != c.want {
			t.Fatalf("FormatDistance(%v, Imperial) = %q, want %q", c.meters, got, c.want)
		}
	}
}

func TestFormatDistanceMetricNeverFractionalMeters(t *testing.T) {
	for meters := 1.0; meters < 1000; meters += 37.3 {
		got := FormatDistance(meters, Metric)
		for _, r := range got {
			if r == '.' {
				t.Fatalf("FormatDistance(%v, Metric) = %q contains a fraction", meters, got)
			}
		}
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, ""},
		{1, "1 min"},
		{59, "1 min"},
		{60, "1 min"},
		{61, "2 mins"},
		{3600, "1 hour"},
		{3661, "1 hour 2 mins"},
		{7200, "2 hours"},
		{86400, "1 day"},
		{90061, "1 day 1 hour 2 mins"},
		{172800, "2 days"},
	}

	for _, c := range cases {
		if got := FormatDuration(c.seconds); got != c.want {
			t.Fatalf("FormatDuration(%d) = %q, want %q", c.seconds, got, c.want)
		}
	}
}

func TestFormatDurationNeverTruncatesSubMinuteRemainders(t *testing.T) {
	// 3601..3659 all have a 1..59s remainder past the hour and must read
	// "1 hour 1 min", never "1 hour".
	for s := 3601; s < 3660; s++ {
		if got := FormatDuration(s); got != "1 hour 1 min" {
			t.Fatalf("FormatDuration(%d) = %q, want %q", s, got, "1 hour 1 min")
		}
	}
}
