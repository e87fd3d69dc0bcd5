package openhours

import (
	"testing"
	"time"

	"maps-compat-service/internal/domain"
)

func intptr(v int) *int { return &v }

func TestTranslateSingleComponent(t *testing.T) {
	data := &domain.OpeningHoursData{
		Components: []domain.HoursComponent{
			{OpenTime: "T090000", Duration: "PT08H00M", Recurrence: "FREQ:DAILY;BYDAY:FR"},
		},
	}

	h := translateAt(data, nil, time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC))
	if len(h.Periods) != 1 {
		t.Fatalf("got %d periods, want 1", len(h.Periods))
	}

	p := h.Periods[0]
	if p.Open.Day != 5 || p.Open.Hour != 9 || p.Open.Minute != 0 {
		t.Fatalf("open = %+v, want day 5 09:00", p.Open)
	}
	if p.Close == nil || p.Close.Day != 5 || p.Close.Hour != 17 || p.Close.Minute != 0 {
		t.Fatalf("close = %+v, want day 5 17:00", p.Close)
	}
}

func TestTranslateOvernightWrap(t *testing.T) {
	data := &domain.OpeningHoursData{
		Components: []domain.HoursComponent{
			{OpenTime: "T200000", Duration: "PT06H00M", Recurrence: "FREQ:DAILY;BYDAY:SA"},
		},
	}

	h := translateAt(data, nil, time.Now())
	p := h.Periods[0]
	if p.Open.Day != 6 || p.Open.Hour != 20 {
		t.Fatalf("open = %+v, want day 6 20:00", p.Open)
	}
	if p.Close == nil || p.Close.Day != 0 || p.Close.Hour != 2 {
		t.Fatalf("close = %+v, want day 0 02:00 (wrapped)", p.Close)
	}
}

func TestTranslateOpen24Hours(t *testing.T) {
	data := &domain.OpeningHoursData{
		Components: []domain.HoursComponent{
			{OpenTime: "T000000", Duration: "PT24H00M", Recurrence: "FREQ:DAILY;BYDAY:SU,MO,TU,WE,TH,FR,SA"},
		},
	}

	h := translateAt(data, nil, time.Now())
	if !h.Open247 {
		t.Fatal("expected Open247")
	}
	if len(h.Periods) != 1 || h.Periods[0].Close != nil || h.Periods[0].Open.Day != 0 {
		t.Fatalf("periods = %+v, want single day-0 period with no close", h.Periods)
	}
	for i, text := range h.WeekdayText {
		if !contains24(text) {
			t.Fatalf("weekday text[%d] = %q, want Open 24 hours", i, text)
		}
	}
}

func contains24(s string) bool {
	return len(s) > 0 && s[len(s)-len("Open 24 hours"):] == "Open 24 hours"
}

func TestTranslateSkipsUnrecognizedRecurrence(t *testing.T) {
	data := &domain.OpeningHoursData{
		Components: []domain.HoursComponent{
			{OpenTime: "T090000", Duration: "PT04H00M", Recurrence: "FREQ:WEEKLY;BYDAY:MO"},
			{OpenTime: "T100000", Duration: "PT02H00M", Recurrence: "FREQ:DAILY;BYDAY:TU"},
		},
	}

	h := translateAt(data, nil, time.Now())
	if len(h.Periods) != 1 {
		t.Fatalf("got %d periods, want 1 (unrecognized prefix skipped)", len(h.Periods))
	}
	if h.Periods[0].Open.Day != 2 {
		t.Fatalf("surviving period day = %d, want 2", h.Periods[0].Open.Day)
	}
}

func TestTranslateSortsPeriodsByOpenDay(t *testing.T) {
	data := &domain.OpeningHoursData{
		Components: []domain.HoursComponent{
			{OpenTime: "T090000", Duration: "PT08H00M", Recurrence: "FREQ:DAILY;BYDAY:FR,MO,WE"},
		},
	}

	h := translateAt(data, nil, time.Now())
	if len(h.Periods) != 3 {
		t.Fatalf("got %d periods, want 3", len(h.Periods))
	}
	for i := 1; i < len(h.Periods); i++ {
		if h.Periods[i].Open.Day < h.Periods[i-1].Open.Day {
			t.Fatalf("periods not sorted by open day: %+v", h.Periods)
		}
	}
}

func TestNextOccurrenceAdvancesPastNow(t *testing.T) {
	// Tuesday 2026-09-01 12:00 UTC; a Tuesday 09:00 opening is already past
	// and must advance a full week.
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	data := &domain.OpeningHoursData{
		Components: []domain.HoursComponent{
			{OpenTime: "T090000", Duration: "PT08H00M", Recurrence: "FREQ:DAILY;BYDAY:TU"},
		},
	}

	h := translateAt(data, intptr(0), now)
	open := h.Periods[0].Open.Next
	want := time.Date(2026, 9, 8, 9, 0, 0, 0, time.UTC)
	if !open.Equal(want) {
		t.Fatalf("next open = %v, want %v", open, want)
	}
	if h.Periods[0].Close == nil || !h.Periods[0].Close.Next.Equal(want.Add(8*time.Hour)) {
		t.Fatalf("next close = %+v, want %v", h.Periods[0].Close, want.Add(8*time.Hour))
	}
}

func TestNextOccurrenceRespectsOffset(t *testing.T) {
	// Tuesday 2026-09-01 06:00 UTC is Tuesday 08:00 at UTC+2, so an 09:00
	// opening is still ahead the same day.
	now := time.Date(2026, 9, 1, 6, 0, 0, 0, time.UTC)
	data := &domain.OpeningHoursData{
		Components: []domain.HoursComponent{
			{OpenTime: "T090000", Duration: "PT08H00M", Recurrence: "FREQ:DAILY;BYDAY:TU"},
		},
	}

	h := translateAt(data, intptr(7200), now)
	open := h.Periods[0].Open.Next
	want := time.Date(2026, 9, 1, 7, 0, 0, 0, time.UTC) // 09:00 at +02:00
	if !open.Equal(want) {
		t.Fatalf("next open = %v, want %v", open, want)
	}
}

func TestIsOpenAt(t *testing.T) {
	data := &domain.OpeningHoursData{
		Components: []domain.HoursComponent{
			{OpenTime: "T090000", Duration: "PT08H00M", Recurrence: "FREQ:DAILY;BYDAY:MO,TU,WE,TH,FR"},
		},
	}
	h := translateAt(data, intptr(0), time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))

	cases := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"tuesday noon", time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC), true},
		{"tuesday night", time.Date(2026, 9, 1, 22, 0, 0, 0, time.UTC), false},
		{"sunday", time.Date(2026, 9, 6, 12, 0, 0, 0, time.UTC), false},
		{"next monday", time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC), true},
	}

	for _, c := range cases {
		open, known := h.IsOpenAt(c.at)
		if !known {
			t.Fatalf("%s: indeterminate, want known", c.name)
		}
		if open != c.want {
			t.Fatalf("%s: open = %v, want %v", c.name, open, c.want)
		}
	}
}

func TestIsOpenAtOvernight(t *testing.T) {
	data := &domain.OpeningHoursData{
		Components: []domain.HoursComponent{
			{OpenTime: "T200000", Duration: "PT06H00M", Recurrence: "FREQ:DAILY;BYDAY:SA"},
		},
	}
	h := translateAt(data, intptr(0), time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))

	// Saturday 2026-09-05 23:00 and Sunday 2026-09-06 01:00 are both inside
	// the Saturday 20:00 -> Sunday 02:00 span.
	for _, at := range []time.Time{
		time.Date(2026, 9, 5, 23, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 6, 1, 0, 0, 0, time.UTC),
	} {
		open, known := h.IsOpenAt(at)
		if !known || !open {
			t.Fatalf("IsOpenAt(%v) = %v/%v, want open", at, open, known)
		}
	}

	if open, _ := h.IsOpenAt(time.Date(2026, 9, 6, 3, 0, 0, 0, time.UTC)); open {
		t.Fatal("Sunday 03:00 should be closed")
	}
}

func TestIsOpenAtIndeterminateWithoutOffset(t *testing.T) {
	data := &domain.OpeningHoursData{
		Components: []domain.HoursComponent{
			{OpenTime: "T090000", Duration: "PT08H00M", Recurrence: "FREQ:DAILY;BYDAY:MO"},
		},
	}
	h := translateAt(data, nil, time.Now())

	if _, known := h.IsOpenAt(time.Now()); known {
		t.Fatal("expected indeterminate result without a UTC offset")
	}
}

func TestIsOpenAtSkipsPeriodsWithoutClose(t *testing.T) {
	data := &domain.OpeningHoursData{
		Components: []domain.HoursComponent{
			{OpenTime: "T090000", Recurrence: "FREQ:DAILY;BYDAY:TU"},
		},
	}
	h := translateAt(data, intptr(0), time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))

	open, known := h.IsOpenAt(time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC))
	if !known || open {
		t.Fatalf("close-less period must never satisfy the predicate, got %v/%v", open, known)
	}
}

func TestWeekdayTextRotation(t *testing.T) {
	data := &domain.OpeningHoursData{
		Components: []domain.HoursComponent{
			{OpenTime: "T090000", Duration: "PT02H00M", Recurrence: "FREQ:DAILY;BYDAY:SU"},
		},
	}
	h := translateAt(data, nil, time.Now())

	if len(h.WeekdayText) != 7 {
		t.Fatalf("weekday text has %d entries, want 7", len(h.WeekdayText))
	}
	if h.WeekdayText[0] != "Monday: Closed" {
		t.Fatalf("first entry = %q, want Monday first", h.WeekdayText[0])
	}
	if h.WeekdayText[6] != "Sunday: 9:00 - 11:00 AM" {
		t.Fatalf("last entry = %q, want rotated Sunday with same-meridiem range", h.WeekdayText[6])
	}
}

func TestWeekdayTextMeridiemAndShifts(t *testing.T) {
	data := &domain.OpeningHoursData{
		Components: []domain.HoursComponent{
			{OpenTime: "T090000", Duration: "PT03H00M", Recurrence: "FREQ:DAILY;BYDAY:MO"},
			{OpenTime: "T140000", Duration: "PT04H00M", Recurrence: "FREQ:DAILY;BYDAY:MO"},
		},
	}
	h := translateAt(data, nil, time.Now())

	want := "Monday: 9:00 AM - 12:00 PM, 2:00 - 6:00 PM"
	if h.WeekdayText[0] != want {
		t.Fatalf("monday entry = %q, want %q", h.WeekdayText[0], want)
	}
}
