package helpers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseHourFormat(t *testing.T) {
	tests := []struct {
		url  string
		want int
	}{
		{"/events/ev-1", HourFormat12},
		{"/events/ev-1?hour_format=12", HourFormat12},
		{"/events/ev-1?hour_format=24", HourFormat24},
		{"/events/ev-1?hour_format=bogus", HourFormat12},
	}
	for _, tt := range tests {
		r := httptest.NewRequest("GET", tt.url, nil)
		assert.Equal(t, tt.want, ParseHourFormat(r), tt.url)
	}
}

func TestFormatTimes(t *testing.T) {
	times := []time.Time{
		time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 10, 13, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, []string{"2024-03-10 9:00 AM", "2024-03-10 1:00 PM"}, FormatTimes(times, HourFormat12))
	assert.Equal(t, []string{"2024-03-10 09:00", "2024-03-10 13:00"}, FormatTimes(times, HourFormat24))
}
