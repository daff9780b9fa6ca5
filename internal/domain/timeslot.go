package domain

import (
	"fmt"
	"time"
)

// TimeOfDay is a time-of-day value with no date component.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// Minutes returns the value as minutes since midnight. Used as the storage
// representation for times_allowed.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// TimeOfDayFromMinutes converts minutes since midnight back to a TimeOfDay.
func TimeOfDayFromMinutes(m int) TimeOfDay {
	return TimeOfDay{Hour: m / 60, Minute: m % 60}
}

// String formats the value as HH:MM.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// CalendarDate is a calendar date as three components. It is deliberately not
// a time.Time: time.Date normalizes out-of-range components (Feb 30 becomes
// Mar 1), and the whole point of this type is to reject such input.
type CalendarDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// Valid reports whether the date denotes a real Gregorian calendar date:
// month in [1,12], day within the month's length for the year, with Feb 29
// allowed iff the year is a leap year.
func (d CalendarDate) Valid() bool {
	if d.Month < 1 || d.Month > 12 {
		return false
	}
	if d.Day < 1 || d.Day > daysInMonth(d.Year, d.Month) {
		return false
	}
	return true
}

func daysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if isLeapYear(year) {
			return 29
		}
		return 28
	default:
		return 0
	}
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// Time returns midnight UTC on the date. Callers must only pass valid dates.
func (d CalendarDate) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// DateOf extracts the calendar date components of t.
func DateOf(t time.Time) CalendarDate {
	y, m, day := t.Date()
	return CalendarDate{Year: y, Month: int(m), Day: day}
}

// String formats the date as YYYY-MM-DD.
func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// slotCatalog is the fixed universe of selectable times: one slot per hour.
// Built once at init and never mutated; insertion order is the display order.
var slotCatalog = buildCatalog()

func buildCatalog() []TimeOfDay {
	slots := make([]TimeOfDay, 0, 24)
	for h := 0; h < 24; h++ {
		slots = append(slots, TimeOfDay{Hour: h})
	}
	return slots
}

// AllSlots returns the slot catalog in its fixed order. The returned slice is
// a copy so callers cannot mutate the catalog.
func AllSlots() []TimeOfDay {
	out := make([]TimeOfDay, len(slotCatalog))
	copy(out, slotCatalog)
	return out
}

// CatalogContains reports whether t is a member of the slot catalog.
func CatalogContains(t TimeOfDay) bool {
	for _, s := range slotCatalog {
		if s == t {
			return true
		}
	}
	return false
}

// AnchorTo binds each slot in the catalog to the given date, producing full
// instants (UTC) sharing the date's year/month/day in catalog order. Pure;
// it does not revalidate the date.
func AnchorTo(date CalendarDate) []time.Time {
	return AnchorSlots(slotCatalog, date)
}

// AnchorSlots binds an arbitrary slot list to a date, preserving order.
func AnchorSlots(slots []TimeOfDay, date CalendarDate) []time.Time {
	out := make([]time.Time, len(slots))
	for i, s := range slots {
		out[i] = time.Date(date.Year, time.Month(date.Month), date.Day, s.Hour, s.Minute, 0, 0, time.UTC)
	}
	return out
}
