package domain

import (
	"context"
	"time"
)

// Event represents a proposed event: a date, a name, and the subset of the
// slot catalog the owner allows.
// swagger:model Event
type Event struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Date         CalendarDate `json:"date"`
	OwnerID      string       `json:"owner_id"`
	JoinCode     string       `json:"join_code"`
	TimesAllowed []TimeOfDay  `json:"times_allowed"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is typically set by the repository on create.
func NewEvent(name string, date CalendarDate, ownerID string, timesAllowed []TimeOfDay, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Name:         name,
		Date:         date,
		OwnerID:      ownerID,
		TimesAllowed: timesAllowed,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

// AnchoredTimes binds the event's allowed slots to its own date.
func (e *Event) AnchoredTimes() []time.Time {
	return AnchorSlots(e.TimesAllowed, e.Date)
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetByJoinCode(ctx context.Context, joinCode string) (*Event, error)
	ListAll(ctx context.Context) ([]*Event, error)
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id string) error
}

// EventDetail is the show payload: the event plus its date-anchored allowed
// times and the registered participants.
type EventDetail struct {
	Event        *Event      `json:"event"`
	AllowedTimes []time.Time `json:"allowed_times"`
	Participants []*User     `json:"participants"`
}

// EventService defines the event lifecycle: create, update, delete, list,
// and show, with date validation and ownership checks.
type EventService interface {
	// CreateEvent validates the date and fields, then persists a new event
	// owned by ownerID. Recoverable failures return *NeedsInputError with
	// the unanchored catalog.
	CreateEvent(ctx context.Context, ownerID, name string, date CalendarDate, timesAllowed []TimeOfDay) (*Event, error)
	// UpdateEvent applies new fields to an existing event. Only the owner
	// may update. Recoverable failures return *NeedsInputError with the
	// catalog anchored to the event's current date.
	UpdateEvent(ctx context.Context, eventID, actorID, name string, date CalendarDate, timesAllowed []TimeOfDay) (*Event, error)
	// DeleteEvent removes the event when actorID owns it. A delete by any
	// other user is a silent no-op: it returns nil without touching the
	// store, indistinguishable to the caller from a successful delete.
	DeleteEvent(ctx context.Context, eventID, actorID string) error
	// ListEvents returns all events ordered by date ascending, partitioned
	// into those owned by actorID and all others.
	ListEvents(ctx context.Context, actorID string) (mine, others []*Event, err error)
	// GetEvent returns the event with its anchored times and participants.
	GetEvent(ctx context.Context, eventID string) (*EventDetail, error)
}
