// Package ical renders an event's anchored allowed times as an iCalendar
// document, one VEVENT per slot.
package ical

import (
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"slotplanner/internal/domain"
)

// slotDuration is the length given to each exported VEVENT. Slots carry no
// explicit end; an hour matches the catalog's granularity.
const slotDuration = time.Hour

// Export renders the event as an ICS calendar. Each allowed time, anchored
// to the event's date, becomes a VEVENT named after the event.
func Export(event *domain.Event) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//slotplanner//EN")

	now := time.Now().UTC()
	for _, start := range event.AnchoredTimes() {
		ve := cal.AddEvent(uuid.New().String())
		ve.SetCreatedTime(now)
		ve.SetDtStampTime(now)
		ve.SetStartAt(start)
		ve.SetEndAt(start.Add(slotDuration))
		ve.SetSummary(event.Name)
	}
	return cal.Serialize()
}
