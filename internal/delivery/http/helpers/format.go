package helpers

import (
	"net/http"
	"time"
)

// Hour format values accepted from the hour_format query parameter. The
// preference only shapes display strings; the scheduling core never sees it.
const (
	HourFormat12 = 12
	HourFormat24 = 24
)

// ParseHourFormat reads hour_format from the request query string. Anything
// other than "24" falls back to the 12-hour default.
func ParseHourFormat(r *http.Request) int {
	if r.URL.Query().Get("hour_format") == "24" {
		return HourFormat24
	}
	return HourFormat12
}

// FormatTimes renders instants for display in the requested hour format.
func FormatTimes(times []time.Time, hourFormat int) []string {
	layout := "2006-01-02 3:04 PM"
	if hourFormat == HourFormat24 {
		layout = "2006-01-02 15:04"
	}
	out := make([]string, len(times))
	for i, t := range times {
		out[i] = t.Format(layout)
	}
	return out
}
