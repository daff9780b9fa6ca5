package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarDateValid(t *testing.T) {
	tests := []struct {
		name string
		date CalendarDate
		want bool
	}{
		{"normal date", CalendarDate{2024, 3, 10}, true},
		{"first of year", CalendarDate{2024, 1, 1}, true},
		{"end of year", CalendarDate{2024, 12, 31}, true},
		{"end of 30-day month", CalendarDate{2024, 4, 30}, true},
		{"day 31 in 30-day month", CalendarDate{2024, 4, 31}, false},
		{"feb 29 leap year", CalendarDate{2024, 2, 29}, true},
		{"feb 29 non-leap year", CalendarDate{2001, 2, 29}, false},
		{"feb 29 century non-leap", CalendarDate{1900, 2, 29}, false},
		{"feb 29 400-year leap", CalendarDate{2000, 2, 29}, true},
		{"feb 28 non-leap year", CalendarDate{2001, 2, 28}, true},
		{"feb 30", CalendarDate{2024, 2, 30}, false},
		{"month 13", CalendarDate{2024, 13, 1}, false},
		{"month 0", CalendarDate{2024, 0, 10}, false},
		{"negative month", CalendarDate{2024, -1, 10}, false},
		{"day 0", CalendarDate{2024, 6, 0}, false},
		{"negative day", CalendarDate{2024, 6, -5}, false},
		{"day 32", CalendarDate{2024, 1, 32}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.date.Valid())
		})
	}
}

func TestCalendarDateValid_AllMonthLengths(t *testing.T) {
	lengths := map[int]int{
		1: 31, 2: 28, 3: 31, 4: 30, 5: 31, 6: 30,
		7: 31, 8: 31, 9: 30, 10: 31, 11: 30, 12: 31,
	}
	for month, days := range lengths {
		// 2023 is not a leap year.
		assert.True(t, CalendarDate{2023, month, days}.Valid(), "month %d day %d", month, days)
		assert.False(t, CalendarDate{2023, month, days + 1}.Valid(), "month %d day %d", month, days+1)
	}
}

func TestAllSlots(t *testing.T) {
	slots := AllSlots()
	require.Len(t, slots, 24)
	for i, s := range slots {
		assert.Equal(t, TimeOfDay{Hour: i}, s)
	}

	// Mutating the returned slice must not change the catalog.
	slots[0] = TimeOfDay{Hour: 23, Minute: 59}
	again := AllSlots()
	assert.Equal(t, TimeOfDay{Hour: 0}, again[0])
}

func TestAnchorTo(t *testing.T) {
	date := CalendarDate{2024, 3, 10}
	anchored := AnchorTo(date)
	slots := AllSlots()
	require.Len(t, anchored, len(slots))
	for i, at := range anchored {
		assert.Equal(t, date.Year, at.Year())
		assert.Equal(t, time.Month(date.Month), at.Month())
		assert.Equal(t, date.Day, at.Day())
		assert.Equal(t, slots[i].Hour, at.Hour())
		assert.Equal(t, slots[i].Minute, at.Minute())
	}
}

func TestAnchorSlots(t *testing.T) {
	slots := []TimeOfDay{{Hour: 9}, {Hour: 13}}
	got := AnchorSlots(slots, CalendarDate{2024, 3, 10})
	want := []time.Time{
		time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 10, 13, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, want, got)
}

func TestAnchorSlots_LeapDay(t *testing.T) {
	got := AnchorSlots([]TimeOfDay{{Hour: 12}}, CalendarDate{2024, 2, 29})
	require.Len(t, got, 1)
	assert.Equal(t, time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC), got[0])
}

func TestCatalogContains(t *testing.T) {
	assert.True(t, CatalogContains(TimeOfDay{Hour: 0}))
	assert.True(t, CatalogContains(TimeOfDay{Hour: 23}))
	assert.False(t, CatalogContains(TimeOfDay{Hour: 9, Minute: 30}))
	assert.False(t, CatalogContains(TimeOfDay{Hour: 24}))
}

func TestTimeOfDayMinutesRoundTrip(t *testing.T) {
	for _, tod := range []TimeOfDay{{0, 0}, {9, 30}, {23, 59}} {
		assert.Equal(t, tod, TimeOfDayFromMinutes(tod.Minutes()))
	}
}

func TestEventAnchoredTimes(t *testing.T) {
	e := &Event{
		Date:         CalendarDate{2024, 3, 10},
		TimesAllowed: []TimeOfDay{{Hour: 9}, {Hour: 13}},
	}
	got := e.AnchoredTimes()
	assert.Equal(t, []time.Time{
		time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 10, 13, 0, 0, 0, time.UTC),
	}, got)
}
